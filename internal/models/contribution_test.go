package models_test

import (
	"testing"
	"time"

	"github.com/classtally/backend/internal/models"
	"github.com/classtally/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestContributionAfterSave() {
	tests := []struct {
		amount decimal.Decimal
		err    error
	}{
		{decimal.NewFromFloat(-10), models.ErrAmountNotPositive},
		{decimal.Zero, models.ErrAmountNotPositive},
		{decimal.NewFromFloat(750), nil},
	}

	for _, tt := range tests {
		c := models.Contribution{
			Amount: tt.amount,
		}

		err := c.AfterSave(&gorm.DB{})
		assert.Equal(suite.T(), tt.err, err)
	}
}

func (suite *TestSuiteStandard) TestContributionSnapshot() {
	student := suite.createTestStudent(models.Student{
		Name:       "Amina Nakato",
		GradeLevel: models.Grade7,
	})

	contribution := suite.createTestContribution(models.Contribution{
		StudentID: student.ID,
	})

	assert.Equal(suite.T(), "Amina Nakato", contribution.StudentName)
	assert.Equal(suite.T(), models.Grade7, contribution.GradeLevel)
}

// TestContributionSnapshotImmutable verifies that promoting a student does
// not shift their already recorded payments to the new grade.
func (suite *TestSuiteStandard) TestContributionSnapshotImmutable() {
	student := suite.createTestStudent(models.Student{GradeLevel: models.Grade7})
	contribution := suite.createTestContribution(models.Contribution{StudentID: student.ID})

	err := models.DB.Model(&student).Updates(models.Student{GradeLevel: models.Grade8}).Error
	assert.Nil(suite.T(), err)

	var reloaded models.Contribution
	err = models.DB.First(&reloaded, contribution.ID).Error
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), models.Grade7, reloaded.GradeLevel)
}

// TestContributionReassign verifies that moving a record to another student
// refreshes the snapshot.
func (suite *TestSuiteStandard) TestContributionReassign() {
	student := suite.createTestStudent(models.Student{GradeLevel: models.Grade7})
	other := suite.createTestStudent(models.Student{Name: "Joseph Okello", GradeLevel: models.Grade9})

	contribution := suite.createTestContribution(models.Contribution{StudentID: student.ID})

	err := models.DB.Model(&contribution).Select("", "StudentID").Updates(models.Contribution{StudentID: other.ID}).Error
	assert.Nil(suite.T(), err)

	var reloaded models.Contribution
	err = models.DB.First(&reloaded, contribution.ID).Error
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), "Joseph Okello", reloaded.StudentName)
	assert.Equal(suite.T(), models.Grade9, reloaded.GradeLevel)
}

func (suite *TestSuiteStandard) TestContributionReassignStudentMissing() {
	student := suite.createTestStudent(models.Student{})
	contribution := suite.createTestContribution(models.Contribution{StudentID: student.ID})

	err := models.DB.Model(&contribution).Select("", "StudentID").Updates(models.Contribution{StudentID: uuid.New()}).Error
	assert.ErrorIs(suite.T(), err, models.ErrStudentReferenceNotFound)

	// The record still belongs to the original student
	var reloaded models.Contribution
	err = models.DB.First(&reloaded, contribution.ID).Error
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), student.ID, reloaded.StudentID)
}

func (suite *TestSuiteStandard) TestContributionStudentMissing() {
	contribution := models.Contribution{
		StudentID: uuid.New(),
		Amount:    decimal.NewFromInt(500),
		Method:    models.MethodCash,
	}

	err := models.DB.Create(&contribution).Error
	assert.ErrorIs(suite.T(), err, models.ErrStudentReferenceNotFound)
}

func (suite *TestSuiteStandard) TestContributionDefaults() {
	student := suite.createTestStudent(models.Student{})

	paymentDate := time.Date(2024, 3, 12, 9, 31, 2, 0, time.UTC)
	contribution := suite.createTestContribution(models.Contribution{
		StudentID:   student.ID,
		PaymentDate: paymentDate,
	})

	assert.Equal(suite.T(), types.NewMonth(2024, time.March), contribution.Month)
	assert.Equal(suite.T(), models.ClearingCleared, contribution.Clearing)
}

func (suite *TestSuiteStandard) TestContributionMonthOverride() {
	student := suite.createTestStudent(models.Student{})

	// A payment entered in April that applies to March
	contribution := suite.createTestContribution(models.Contribution{
		StudentID:   student.ID,
		PaymentDate: time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC),
		Month:       types.NewMonth(2024, time.March),
	})

	assert.Equal(suite.T(), types.NewMonth(2024, time.March), contribution.Month)
}

func (suite *TestSuiteStandard) TestContributionEnums() {
	student := suite.createTestStudent(models.Student{})

	tests := []struct {
		name     string
		method   models.PaymentMethod
		clearing models.ClearingStatus
		err      error
	}{
		{"Valid", models.MethodBank, models.ClearingPending, nil},
		{"Invalid method", "cheque", models.ClearingCleared, models.ErrMethodInvalid},
		{"Invalid clearing", models.MethodCash, "bounced", models.ErrClearingInvalid},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			contribution := models.Contribution{
				StudentID: student.ID,
				Amount:    decimal.NewFromInt(500),
				Method:    tt.method,
				Clearing:  tt.clearing,
			}

			err := models.DB.Create(&contribution).Error
			assert.ErrorIs(t, err, tt.err, "Error is: %s", err)
		})
	}
}

func (suite *TestSuiteStandard) TestContributionReceiptNumberUnique() {
	student := suite.createTestStudent(models.Student{})

	suite.createTestContribution(models.Contribution{
		StudentID:     student.ID,
		ReceiptNumber: "RCP-2024-0113",
	})

	contribution := models.Contribution{
		StudentID:     student.ID,
		Amount:        decimal.NewFromInt(500),
		Method:        models.MethodCash,
		ReceiptNumber: "RCP-2024-0113",
	}

	err := models.DB.Create(&contribution).Error
	assert.ErrorIs(suite.T(), err, models.ErrReceiptNumberNotUnique)

	// Records without a receipt number do not collide
	suite.createTestContribution(models.Contribution{StudentID: student.ID})
	suite.createTestContribution(models.Contribution{StudentID: student.ID})
}

func (suite *TestSuiteStandard) TestContributionPaymentDateUTC() {
	student := suite.createTestStudent(models.Student{})

	tz, err := time.LoadLocation("Africa/Kampala")
	if err != nil {
		suite.T().Skip("timezone database not available")
	}

	contribution := suite.createTestContribution(models.Contribution{
		StudentID:   student.ID,
		PaymentDate: time.Date(2024, 3, 12, 9, 31, 2, 0, tz),
	})

	var reloaded models.Contribution
	err = models.DB.First(&reloaded, contribution.ID).Error
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), time.UTC, reloaded.PaymentDate.Location())
}

func (suite *TestSuiteStandard) TestContributionSelf() {
	assert.Equal(suite.T(), "Contribution", models.Contribution{}.Self())
}
