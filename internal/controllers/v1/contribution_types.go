package v1

import (
	"fmt"
	"time"

	"github.com/classtally/backend/internal/models"
	"github.com/classtally/backend/internal/types"
	ez_uuid "github.com/classtally/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContributionEditable represents all user configurable parameters
type ContributionEditable struct {
	StudentID uuid.UUID `json:"studentId" example:"fd81dc45-a3a2-468e-a6fa-b2618f30aa45"` // ID of the student the contribution is for

	// The maximum value is "999999999999.99999999", swagger unfortunately rounds this.
	Amount decimal.Decimal `json:"amount" example:"500" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The contribution amount

	Month          types.Month           `json:"month" example:"2024-03"`                                   // The month the payment applies to. Defaults to the month of the payment date
	PaymentDate    time.Time             `json:"paymentDate" example:"2024-03-12T09:31:02.481279Z"`         // When the payment was handed over. Defaults to now
	Method         models.PaymentMethod  `json:"method" example:"cash"`                                     // How the payment was made
	RecordedBy     uuid.UUID             `json:"recordedBy" example:"8e16b456-a719-48ce-9fec-e115cfa7cbcc"` // ID of the staff member entering the record
	RecordedByName string                `json:"recordedByName" example:"J. Ochieng" default:""`            // Name of the staff member entering the record
	Clearing       models.ClearingStatus `json:"clearing" example:"cleared" default:"cleared"`              // Bank clearing state of this record
	ReceiptNumber  string                `json:"receiptNumber" example:"RCP-2024-0113" default:""`          // Receipt number, unique when set
	Notes          string                `json:"notes" example:"Paid for March and April" default:""`      // Notes about the contribution
}

// model returns the database resource for the API representation of the editable fields
func (editable ContributionEditable) model() models.Contribution {
	return models.Contribution{
		StudentID:      editable.StudentID,
		Amount:         editable.Amount,
		Month:          editable.Month,
		PaymentDate:    editable.PaymentDate,
		Method:         editable.Method,
		RecordedBy:     editable.RecordedBy,
		RecordedByName: editable.RecordedByName,
		Clearing:       editable.Clearing,
		ReceiptNumber:  editable.ReceiptNumber,
		Notes:          editable.Notes,
	}
}

type ContributionLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/contributions/d430d7c3-d14c-4712-9336-ee56965a6673"`   // The contribution itself
	Student string `json:"student" example:"https://example.com/api/v1/students/fd81dc45-a3a2-468e-a6fa-b2618f30aa45"` // The student the contribution is for
}

// Contribution is the representation of a contribution record in API v1.
type Contribution struct {
	models.DefaultModel
	ContributionEditable
	Links ContributionLinks `json:"links"`

	// These fields are snapshotted from the student when the record is written
	StudentName string            `json:"studentName" example:"Amina Nakato"` // Name of the student at the time of recording
	GradeLevel  models.GradeLevel `json:"gradeLevel" example:"Grade 7"`       // Grade level of the student at the time of recording
}

// newContribution returns the API v1 representation of the resource
func newContribution(c *gin.Context, model models.Contribution) Contribution {
	url := c.GetString(string(models.DBContextURL))

	return Contribution{
		DefaultModel: model.DefaultModel,
		ContributionEditable: ContributionEditable{
			StudentID:      model.StudentID,
			Amount:         model.Amount,
			Month:          model.Month,
			PaymentDate:    model.PaymentDate,
			Method:         model.Method,
			RecordedBy:     model.RecordedBy,
			RecordedByName: model.RecordedByName,
			Clearing:       model.Clearing,
			ReceiptNumber:  model.ReceiptNumber,
			Notes:          model.Notes,
		},
		Links: ContributionLinks{
			Self:    fmt.Sprintf("%s/v1/contributions/%s", url, model.ID),
			Student: fmt.Sprintf("%s/v1/students/%s", url, model.StudentID),
		},
		StudentName: model.StudentName,
		GradeLevel:  model.GradeLevel,
	}
}

type ContributionListResponse struct {
	Data       []Contribution `json:"data"`                                                          // List of contributions
	Error      *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination    `json:"pagination"`                                                    // Pagination information
}

type ContributionCreateResponse struct {
	Error *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []ContributionResponse `json:"data"`                                                          // List of created contributions
}

func (t *ContributionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, ContributionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type ContributionResponse struct {
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this contribution
	Data  *Contribution `json:"data"`                                                          // The contribution data, if creation was successful
}

type ContributionQueryFilter struct {
	StudentID         ez_uuid.UUID          `form:"student"`                               // ID of the student
	GradeLevel        models.GradeLevel     `form:"gradeLevel"`                            // Grade level snapshotted on the record
	Month             time.Time             `form:"month" time_format:"2006-01" time_utc:"1" filterField:"false"` // The month the payment applies to, in YYYY-MM format
	Year              int                   `form:"year" filterField:"false"`              // All payments applying to this calendar year
	FromDate          time.Time             `form:"fromDate" filterField:"false"`          // Payments entered at and after this date. Ignores exact time, matches on the day of the RFC3339 timestamp provided.
	UntilDate         time.Time             `form:"untilDate" filterField:"false"`         // Payments entered before and at this date. Ignores exact time, matches on the day of the RFC3339 timestamp provided.
	Amount            decimal.Decimal       `form:"amount"`                                // Exact amount
	AmountLessOrEqual decimal.Decimal       `form:"amountLessOrEqual" filterField:"false"` // Amount less than or equal to this
	AmountMoreOrEqual decimal.Decimal       `form:"amountMoreOrEqual" filterField:"false"` // Amount more than or equal to this
	Method            models.PaymentMethod  `form:"method"`                                // How the payment was made
	RecordedBy        ez_uuid.UUID          `form:"recordedBy"`                            // ID of the staff member who entered the record
	Clearing          models.ClearingStatus `form:"clearing"`                              // Bank clearing state of the record
	ReceiptNumber     string                `form:"receiptNumber"`                         // The receipt number
	Notes             string                `form:"notes" filterField:"false"`             // Notes contain this string
	Search            string                `form:"search" filterField:"false"`            // By string in student name or notes
	Offset            uint                  `form:"offset" filterField:"false"`            // The offset of the first contribution returned. Defaults to 0.
	Limit             int                   `form:"limit" filterField:"false"`             // Maximum number of contributions to return. Defaults to 50.
}

func (f ContributionQueryFilter) model() (models.Contribution, error) {
	// This does not set the string, date and meta fields since they are
	// handled in the controller function
	return models.Contribution{
		StudentID:     f.StudentID.UUID,
		GradeLevel:    f.GradeLevel,
		Amount:        f.Amount,
		Method:        f.Method,
		RecordedBy:    f.RecordedBy.UUID,
		Clearing:      f.Clearing,
		ReceiptNumber: f.ReceiptNumber,
	}, nil
}
