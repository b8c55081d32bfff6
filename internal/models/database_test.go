package models_test

import (
	"github.com/classtally/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestConnectInvalidPath() {
	err := models.Connect("/this/path/does/not/exist/database.db")
	assert.NotNil(suite.T(), err)

	// Reconnect so that TearDownTest has a database to close
	err = models.Connect(suite.T().TempDir() + "/database.db")
	assert.Nil(suite.T(), err)
}

// TestResourceNotFoundMessage verifies that the "record not found" error is
// rewritten to name the resource that was queried.
func (suite *TestSuiteStandard) TestResourceNotFoundMessage() {
	err := models.DB.First(&models.Student{}, uuid.New()).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
	assert.Equal(suite.T(), "there is no student matching your query", err.Error())

	err = models.DB.First(&models.Contribution{}, uuid.New()).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
	assert.Equal(suite.T(), "there is no contribution matching your query", err.Error())
}

func (suite *TestSuiteStandard) TestDatabaseClosed() {
	student := suite.createTestStudent(models.Student{})
	suite.CloseDB()

	err := models.DB.First(&models.Student{}, student.ID).Error
	assert.ErrorIs(suite.T(), err, models.ErrGeneral, "Error is: %s", err)
}
