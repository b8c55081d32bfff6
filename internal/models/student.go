package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GradeLevel is one of the fixed grade bands of the school.
type GradeLevel string

const (
	GradeKindergarten GradeLevel = "Kindergarten"
	Grade1            GradeLevel = "Grade 1"
	Grade2            GradeLevel = "Grade 2"
	Grade3            GradeLevel = "Grade 3"
	Grade4            GradeLevel = "Grade 4"
	Grade5            GradeLevel = "Grade 5"
	Grade6            GradeLevel = "Grade 6"
	Grade7            GradeLevel = "Grade 7"
	Grade8            GradeLevel = "Grade 8"
	Grade9            GradeLevel = "Grade 9"
	Grade10           GradeLevel = "Grade 10"
	Grade11           GradeLevel = "Grade 11"
	Grade12           GradeLevel = "Grade 12"
)

// GradeLevels is the canonical ordering of grade levels. It is used
// wherever output grouped by grade needs a stable order.
var GradeLevels = []GradeLevel{
	GradeKindergarten,
	Grade1, Grade2, Grade3, Grade4, Grade5, Grade6,
	Grade7, Grade8, Grade9, Grade10, Grade11, Grade12,
}

func (g GradeLevel) Valid() bool {
	for _, level := range GradeLevels {
		if g == level {
			return true
		}
	}

	return false
}

// Student represents one enrolled student for whom contributions are tracked.
//
// Students are created at enrollment and their grade level is updated at
// promotion. They are never hard-deleted mid-year, only archived.
type Student struct {
	DefaultModel
	Name       string     `gorm:"index"`
	GradeLevel GradeLevel `gorm:"index"`
	TeacherID  uuid.UUID  // The homeroom teacher. Staff identities are managed by the auth layer.
	Note       string
	Archived   bool
}

func (Student) Self() string {
	return "Student"
}

func (s *Student) BeforeSave(_ *gorm.DB) error {
	s.Name = strings.TrimSpace(s.Name)
	s.Note = strings.TrimSpace(s.Note)

	if !s.GradeLevel.Valid() {
		return ErrGradeLevelInvalid
	}

	return nil
}

// BeforeDelete blocks deletion as soon as contribution records reference the
// student. Enrollment mistakes can still be deleted, everyone else is
// archived so that their payment history stays intact.
func (s *Student) BeforeDelete(tx *gorm.DB) error {
	var count int64
	err := tx.Model(&Contribution{}).Where("student_id = ?", s.ID).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return ErrStudentHasContributions
	}

	return nil
}
