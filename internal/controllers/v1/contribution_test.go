package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	v1 "github.com/classtally/backend/internal/controllers/v1"
	"github.com/classtally/backend/internal/models"
	"github.com/classtally/backend/internal/types"
	"github.com/classtally/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// TestContributionsOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestContributionsOptions() {
	tests := []struct {
		name   string
		id     string // path at the contributions endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No contribution with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Contribution exists", createTestContribution(suite.T(), v1.ContributionEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/contributions", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestContributionsCreate() {
	student := createTestStudent(suite.T(), v1.StudentEditable{Name: "Amina Nakato", GradeLevel: models.Grade7})

	contribution := createTestContribution(suite.T(), v1.ContributionEditable{
		StudentID: student.Data.ID,
		Amount:    decimal.NewFromInt(500),
		Month:     types.NewMonth(2024, time.March),
		Method:    models.MethodBank,
	})

	assert.True(suite.T(), contribution.Data.Amount.Equal(decimal.NewFromInt(500)))
	assert.Equal(suite.T(), types.NewMonth(2024, time.March), contribution.Data.Month)

	// The student's name and grade are snapshotted onto the record
	assert.Equal(suite.T(), "Amina Nakato", contribution.Data.StudentName)
	assert.Equal(suite.T(), models.Grade7, contribution.Data.GradeLevel)

	// Clearing defaults to cleared
	assert.Equal(suite.T(), models.ClearingCleared, contribution.Data.Clearing)

	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/students/%s", student.Data.ID), contribution.Data.Links.Student)
}

func (suite *TestSuiteStandard) TestContributionsCreateErrors() {
	student := createTestStudent(suite.T(), v1.StudentEditable{})

	tests := []struct {
		name   string
		body   any
		status int
		err    string
	}{
		{
			"Student does not exist",
			[]v1.ContributionEditable{{StudentID: uuid.New(), Amount: decimal.NewFromInt(500), Method: models.MethodCash}},
			http.StatusBadRequest,
			models.ErrStudentReferenceNotFound.Error(),
		},
		{
			"Amount not positive",
			[]v1.ContributionEditable{{StudentID: student.Data.ID, Amount: decimal.NewFromInt(-100), Method: models.MethodCash}},
			http.StatusBadRequest,
			models.ErrAmountNotPositive.Error(),
		},
		{
			"Invalid method",
			[]v1.ContributionEditable{{StudentID: student.Data.ID, Amount: decimal.NewFromInt(500), Method: "cheque"}},
			http.StatusBadRequest,
			models.ErrMethodInvalid.Error(),
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/contributions", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.ContributionCreateResponse
			test.DecodeResponse(t, &r, &response)
			assert.Equal(t, tt.err, *response.Data[0].Error)
		})
	}
}

// TestContributionsCreateMixed verifies that a batch with one valid and one
// invalid record creates the valid one and reports the error for the other.
func (suite *TestSuiteStandard) TestContributionsCreateMixed() {
	student := createTestStudent(suite.T(), v1.StudentEditable{})

	body := []v1.ContributionEditable{
		{StudentID: student.Data.ID, Amount: decimal.NewFromInt(500), Method: models.MethodCash},
		{StudentID: uuid.New(), Amount: decimal.NewFromInt(500), Method: models.MethodCash},
	}

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/contributions", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.ContributionCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Len(suite.T(), response.Data, 2)
	assert.NotNil(suite.T(), response.Data[0].Data)
	assert.Equal(suite.T(), models.ErrStudentReferenceNotFound.Error(), *response.Data[1].Error)
}

func (suite *TestSuiteStandard) TestContributionsReceiptNumberConflict() {
	student := createTestStudent(suite.T(), v1.StudentEditable{})

	_ = createTestContribution(suite.T(), v1.ContributionEditable{StudentID: student.Data.ID, ReceiptNumber: "RCP-2024-0113"})
	response := createTestContribution(suite.T(), v1.ContributionEditable{StudentID: student.Data.ID, ReceiptNumber: "RCP-2024-0113"}, http.StatusBadRequest)

	assert.Nil(suite.T(), response.Data)
}

func (suite *TestSuiteStandard) TestContributionsGetFilter() {
	student := createTestStudent(suite.T(), v1.StudentEditable{GradeLevel: models.Grade7})
	other := createTestStudent(suite.T(), v1.StudentEditable{GradeLevel: models.Grade8})

	_ = createTestContribution(suite.T(), v1.ContributionEditable{StudentID: student.Data.ID, Amount: decimal.NewFromInt(200), Month: types.NewMonth(2024, time.March)})
	_ = createTestContribution(suite.T(), v1.ContributionEditable{StudentID: student.Data.ID, Amount: decimal.NewFromInt(300), Month: types.NewMonth(2024, time.April), Method: models.MethodBank})
	_ = createTestContribution(suite.T(), v1.ContributionEditable{StudentID: other.Data.ID, Amount: decimal.NewFromInt(500), Month: types.NewMonth(2023, time.December)})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Student", fmt.Sprintf("student=%s", student.Data.ID), 2},
		{"Year 2024", "year=2024", 2},
		{"Year 2023", "year=2023", 1},
		{"Month", "month=2024-04", 1},
		{"Grade level", "gradeLevel=Grade 8", 1},
		{"Method", "method=bank", 1},
		{"Amount", "amount=300", 1},
		{"Amount at least", "amountMoreOrEqual=300", 2},
		{"Amount at most", "amountLessOrEqual=200", 1},
		{"No match", "year=2022", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/contributions?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.ContributionListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len, "Response: %s", r.Body.String())
		})
	}
}

func (suite *TestSuiteStandard) TestContributionsUpdate() {
	contribution := createTestContribution(suite.T(), v1.ContributionEditable{Amount: decimal.NewFromInt(500)})

	r := test.Request(suite.T(), http.MethodPatch, contribution.Data.Links.Self, map[string]any{
		"amount": decimal.NewFromInt(750),
		"notes":  "Corrected amount",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ContributionResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.True(suite.T(), response.Data.Amount.Equal(decimal.NewFromInt(750)), "Amount is %s", response.Data.Amount)
	assert.Equal(suite.T(), "Corrected amount", response.Data.Notes)
}

// TestContributionsUpdateReassign verifies that moving a record to another
// student also moves the snapshotted name and grade, so that reports
// attribute the money to the student who actually paid.
func (suite *TestSuiteStandard) TestContributionsUpdateReassign() {
	other := createTestStudent(suite.T(), v1.StudentEditable{Name: "Joseph Okello", GradeLevel: models.Grade9})
	contribution := createTestContribution(suite.T(), v1.ContributionEditable{})

	r := test.Request(suite.T(), http.MethodPatch, contribution.Data.Links.Self, map[string]any{
		"studentId": other.Data.ID,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ContributionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), other.Data.ID, response.Data.StudentID)
	assert.Equal(suite.T(), "Joseph Okello", response.Data.StudentName)
	assert.Equal(suite.T(), models.Grade9, response.Data.GradeLevel)

	// The snapshot is persisted, not only echoed
	r = test.Request(suite.T(), http.MethodGet, contribution.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Joseph Okello", response.Data.StudentName)
	assert.Equal(suite.T(), models.Grade9, response.Data.GradeLevel)
}

func (suite *TestSuiteStandard) TestContributionsUpdateStudentMissing() {
	contribution := createTestContribution(suite.T(), v1.ContributionEditable{})

	r := test.Request(suite.T(), http.MethodPatch, contribution.Data.Links.Self, map[string]any{
		"studentId": uuid.New(),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.ContributionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrStudentReferenceNotFound.Error(), *response.Error)
}

func (suite *TestSuiteStandard) TestContributionsUpdateInvalidAmount() {
	contribution := createTestContribution(suite.T(), v1.ContributionEditable{})

	r := test.Request(suite.T(), http.MethodPatch, contribution.Data.Links.Self, map[string]any{
		"amount": decimal.NewFromInt(-10),
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestContributionsDelete() {
	contribution := createTestContribution(suite.T(), v1.ContributionEditable{})

	r := test.Request(suite.T(), http.MethodDelete, contribution.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, contribution.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
