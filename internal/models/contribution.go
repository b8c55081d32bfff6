package models

import (
	"strings"
	"time"

	"github.com/classtally/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentMethod describes how a contribution was handed over.
type PaymentMethod string

const (
	MethodCash   PaymentMethod = "cash"
	MethodBank   PaymentMethod = "bank"
	MethodOnline PaymentMethod = "online"
	MethodOther  PaymentMethod = "other"
)

func (m PaymentMethod) Valid() bool {
	return m == MethodCash || m == MethodBank || m == MethodOnline || m == MethodOther
}

// ClearingStatus is caller-supplied metadata about bank clearance of a
// single record, e.g. a manual cash entry flagged pending until the money
// reaches the bank. It is not the derived payment status of a student's
// quota, which only the quota package computes.
type ClearingStatus string

const (
	ClearingPending ClearingStatus = "pending"
	ClearingCleared ClearingStatus = "cleared"
)

func (s ClearingStatus) Valid() bool {
	return s == ClearingPending || s == ClearingCleared
}

// Contribution is one recorded contribution event for a student.
//
// A contribution always applies to exactly one student and month, but there
// is no uniqueness on that pair: partial payments produce multiple records
// for the same month and are summed, never overwritten.
type Contribution struct {
	DefaultModel
	StudentID uuid.UUID
	Student   Student `json:"-"`

	// StudentName and GradeLevel are snapshotted from the student when the
	// record is written, so that a mid-year promotion does not shift
	// historical payments to the new grade.
	StudentName string
	GradeLevel  GradeLevel

	Amount         decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Month          types.Month     // The month the payment applies to
	PaymentDate    time.Time       // The time the payment was entered
	Method         PaymentMethod
	RecordedBy     uuid.UUID // Staff member who entered the record
	RecordedByName string
	Clearing       ClearingStatus
	ReceiptNumber  string `gorm:"uniqueIndex:contribution_receipt_number,where:receipt_number != ''"`
	Notes          string
}

func (Contribution) Self() string {
	return "Contribution"
}

// AfterFind enforces UTC timestamps, see DefaultModel.AfterFind.
func (c *Contribution) AfterFind(tx *gorm.DB) (err error) {
	err = c.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	c.PaymentDate = c.PaymentDate.In(time.UTC)
	return
}

func (c *Contribution) BeforeCreate(tx *gorm.DB) error {
	_ = c.DefaultModel.BeforeCreate(tx)

	student, err := c.referencedStudent(tx, c.StudentID)
	if err != nil {
		return err
	}

	c.StudentName = student.Name
	c.GradeLevel = student.GradeLevel
	return nil
}

// BeforeUpdate refreshes the snapshot when the record is reassigned to
// another student. The snapshot columns are set with SetColumn and added to
// the selected fields so that they are persisted even when the update is
// restricted to the fields the caller sent.
func (c *Contribution) BeforeUpdate(tx *gorm.DB) (err error) {
	if !tx.Statement.Changed("StudentID") {
		return nil
	}

	toSave := tx.Statement.Dest.(Contribution)
	student, err := c.referencedStudent(tx, toSave.StudentID)
	if err != nil {
		return err
	}

	tx.Statement.SetColumn("StudentName", student.Name)
	tx.Statement.SetColumn("GradeLevel", student.GradeLevel)

	// An update restricted to specific fields would drop the snapshot
	// columns again, so they are added to the selection
	if len(tx.Statement.Selects) > 0 {
		tx.Statement.Selects = append(tx.Statement.Selects, "StudentName", "GradeLevel")
	}

	return nil
}

// referencedStudent loads the student a record points at, to verify the
// reference and to denormalize the student's name and current grade level
// onto the record.
func (c *Contribution) referencedStudent(tx *gorm.DB, id uuid.UUID) (Student, error) {
	var student Student
	err := tx.First(&student, id).Error
	if err != nil {
		return Student{}, ErrStudentReferenceNotFound
	}

	return student, nil
}

// BeforeSave
//   - sets the timezone for the PaymentDate to UTC and defaults it to now
//   - defaults the Month to the month of the PaymentDate
//   - defaults the Clearing state to cleared
//   - validates the enumerated fields
//   - trims whitespace from string fields
func (c *Contribution) BeforeSave(_ *gorm.DB) (err error) {
	c.ReceiptNumber = strings.TrimSpace(c.ReceiptNumber)
	c.Notes = strings.TrimSpace(c.Notes)
	c.RecordedByName = strings.TrimSpace(c.RecordedByName)

	if c.PaymentDate.IsZero() {
		c.PaymentDate = time.Now().In(time.UTC)
	} else {
		c.PaymentDate = c.PaymentDate.In(time.UTC)
	}

	if c.Month.IsZero() {
		c.Month = types.MonthOf(c.PaymentDate)
	}

	if c.Clearing == "" {
		c.Clearing = ClearingCleared
	}

	if !c.Method.Valid() {
		return ErrMethodInvalid
	}

	if !c.Clearing.Valid() {
		return ErrClearingInvalid
	}

	return
}

func (c *Contribution) AfterSave(_ *gorm.DB) error {
	if !decimal.Decimal.IsPositive(c.Amount) {
		return ErrAmountNotPositive
	}

	return nil
}
