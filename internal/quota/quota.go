package quota

import (
	"time"

	"github.com/classtally/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the discrete payment status derived from a student's quota.
//
// It is derived here and only here. The clearing state stored on a single
// contribution record is unrelated metadata, see models.ClearingStatus.
type Status string

const (
	StatusNotPaid       Status = "not_paid"
	StatusPartiallyPaid Status = "partially_paid"
	StatusFullyPaid     Status = "fully_paid"
)

// Quota is the yearly contribution target and progress for one student.
// It is recomputed on every query and never stored.
type Quota struct {
	StudentID        uuid.UUID         `json:"studentId" example:"65392deb-5e92-4268-b114-297faad6cdce"` // The ID of the student
	StudentName      string            `json:"studentName" example:"Amina Nakato"`                       // The name of the student
	GradeLevel       models.GradeLevel `json:"gradeLevel" example:"Grade 7"`                             // The student's current grade level
	MonthlyAmount    decimal.Decimal   `json:"monthlyAmount" example:"500"`                              // The monthly rate the quota is based on
	YearlyQuota      decimal.Decimal   `json:"yearlyQuota" example:"6000"`                               // The yearly target, monthly rate times 12
	TotalPaid        decimal.Decimal   `json:"totalPaid" example:"3500"`                                 // Sum of the student's contributions in the year
	RemainingBalance decimal.Decimal   `json:"remainingBalance" example:"2500"`                          // The yearly target minus the total paid. Negative on overpayment unless clamping is enabled
	PaymentStatus    Status            `json:"paymentStatus" example:"partially_paid"`                   // Derived payment status
	LastUpdated      time.Time         `json:"lastUpdated" example:"2024-03-12T09:31:02.481279Z"`        // Last time one of the considered records changed. Zero when there are none
}

// Compute calculates the quota for one student in one year.
//
// records may be the complete snapshot for the school: filtering to the
// student and the year happens here, explicitly, so that a caller cannot
// silently pass a mis-scoped slice. Multiple records for the same month are
// summed, partial payments are legitimate.
func Compute(student models.Student, records []models.Contribution, year int, policy Policy) Quota {
	yearlyQuota := policy.YearlyQuota()

	totalPaid := decimal.Zero
	var lastUpdated time.Time

	for _, record := range records {
		if record.StudentID != student.ID || record.Month.Year() != year {
			continue
		}

		totalPaid = totalPaid.Add(record.Amount)
		if record.UpdatedAt.After(lastUpdated) {
			lastUpdated = record.UpdatedAt
		}
	}

	remaining := yearlyQuota.Sub(totalPaid)
	if policy.ClampRemainingBalance && remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return Quota{
		StudentID:        student.ID,
		StudentName:      student.Name,
		GradeLevel:       student.GradeLevel,
		MonthlyAmount:    policy.MonthlyAmount,
		YearlyQuota:      yearlyQuota,
		TotalPaid:        totalPaid,
		RemainingBalance: remaining,
		PaymentStatus:    status(totalPaid, yearlyQuota),
		LastUpdated:      lastUpdated,
	}
}

// status derives the discrete payment status by threshold.
func status(totalPaid, yearlyQuota decimal.Decimal) Status {
	switch {
	case totalPaid.IsZero():
		return StatusNotPaid
	case totalPaid.GreaterThanOrEqual(yearlyQuota):
		return StatusFullyPaid
	default:
		return StatusPartiallyPaid
	}
}
