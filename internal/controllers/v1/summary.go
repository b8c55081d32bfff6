package v1

import (
	"net/http"
	"time"

	"github.com/classtally/backend/internal/httputil"
	"github.com/classtally/backend/internal/models"
	"github.com/classtally/backend/internal/quota"
	"github.com/classtally/backend/internal/types"
	"github.com/gin-gonic/gin"
)

// RegisterSummaryRoutes registers the routes for the collection summary
// with the RouterGroup that is passed.
func RegisterSummaryRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsSummary)
	r.GET("", GetSummary)
}

// SummaryResponse wraps the composed collection summary.
type SummaryResponse struct {
	Data  *quota.Summary `json:"data"`                                                 // The collection summary
	Error *string        `json:"error" example:"the year parameter must be a positive number"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Summary
// @Success		204
// @Router			/v1/summary [options]
func OptionsSummary(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get collection summary
// @Description	Returns the school-wide collection summary for a year, including the monthly and per-grade breakdowns
// @Tags			Summary
// @Produce		json
// @Success		200		{object}	SummaryResponse
// @Failure		400		{object}	SummaryResponse
// @Failure		500		{object}	SummaryResponse
// @Param			year	query		int	false	"The year to summarize. Defaults to the current year."
// @Router			/v1/summary [get]
func GetSummary(c *gin.Context) {
	year, err := queryYear(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &s,
		})
		return
	}

	policy, err := quota.PolicyFromEnv()
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusInternalServerError, SummaryResponse{
			Error: &s,
		})
		return
	}

	// Archived students are off the roster, but contributions they made
	// while enrolled still count towards the collected totals
	var students []models.Student
	err = models.DB.Where("archived = false").Find(&students).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &s,
		})
		return
	}

	var records []models.Contribution
	err = models.DB.
		Where("month >= ?", types.NewMonth(year, time.January)).
		Where("month < ?", types.NewMonth(year+1, time.January)).
		Find(&records).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &s,
		})
		return
	}

	data := quota.Compose(year, students, records, policy)
	c.JSON(http.StatusOK, SummaryResponse{Data: &data})
}
