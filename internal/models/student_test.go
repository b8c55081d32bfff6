package models_test

import (
	"strings"
	"testing"

	"github.com/classtally/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestStudentTrimWhitespace() {
	name := "  Amina Nakato \t"
	note := " Whitespace    "

	student := suite.createTestStudent(models.Student{
		Name:       name,
		GradeLevel: models.Grade7,
		Note:       note,
	})

	assert.Equal(suite.T(), strings.TrimSpace(name), student.Name)
	assert.Equal(suite.T(), strings.TrimSpace(note), student.Note)
}

func (suite *TestSuiteStandard) TestStudentGradeLevel() {
	tests := []struct {
		name  string
		grade models.GradeLevel
		err   error
	}{
		{"Kindergarten", models.GradeKindergarten, nil},
		{"Grade 12", models.Grade12, nil},
		{"Empty", "", models.ErrGradeLevelInvalid},
		{"Unknown grade", "Grade 13", models.ErrGradeLevelInvalid},
		{"Lowercase", "grade 7", models.ErrGradeLevelInvalid},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			student := models.Student{
				Name:       "Grade Level Test",
				GradeLevel: tt.grade,
			}

			err := models.DB.Create(&student).Error
			assert.ErrorIs(t, err, tt.err, "Error is: %s", err)
		})
	}
}

func (suite *TestSuiteStandard) TestStudentPromotion() {
	student := suite.createTestStudent(models.Student{GradeLevel: models.Grade7})

	err := models.DB.Model(&student).Updates(models.Student{GradeLevel: models.Grade8}).Error
	assert.Nil(suite.T(), err)

	var reloaded models.Student
	err = models.DB.First(&reloaded, student.ID).Error
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), models.Grade8, reloaded.GradeLevel)
}

func (suite *TestSuiteStandard) TestStudentDeleteRestricted() {
	student := suite.createTestStudent(models.Student{})
	suite.createTestContribution(models.Contribution{StudentID: student.ID})

	err := models.DB.Delete(&student).Error
	assert.ErrorIs(suite.T(), err, models.ErrStudentHasContributions)
}

func (suite *TestSuiteStandard) TestStudentDelete() {
	student := suite.createTestStudent(models.Student{})

	err := models.DB.Delete(&student).Error
	assert.Nil(suite.T(), err)

	err = models.DB.First(&models.Student{}, student.ID).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestStudentSelf() {
	assert.Equal(suite.T(), "Student", models.Student{}.Self())
}
