package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/classtally/backend/internal/controllers/v1"
	"github.com/classtally/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCleanup() {
	student := createTestStudent(suite.T(), v1.StudentEditable{})
	_ = createTestContribution(suite.T(), v1.ContributionEditable{StudentID: student.Data.ID})

	tests := []string{
		"http://example.com/v1/students",
		"http://example.com/v1/contributions",
	}

	// Delete
	recorder := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	// Verify
	for _, tt := range tests {
		suite.T().Run(tt, func(t *testing.T) {
			recorder := test.Request(suite.T(), http.MethodGet, tt, "")
			test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

			var response struct {
				Data []any `json:"data"`
			}

			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, 0, "There are resources left for type %s", tt)
		})
	}
}

func (suite *TestSuiteStandard) TestCleanupFails() {
	tests := []struct {
		name string
		path string
	}{
		{"Invalid confirmation", "confirm=2"},
		{"Missing confirmation", ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodDelete, "http://example.com/v1?"+tt.path, "")
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)
		})
	}
}
