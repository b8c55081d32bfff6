package v1

import (
	"net/http"
	"time"

	"github.com/classtally/backend/internal/httputil"
	"github.com/classtally/backend/internal/models"
	"github.com/classtally/backend/internal/types"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterContributionRoutes registers the routes for contributions with
// the RouterGroup that is passed.
func RegisterContributionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsContributionList)
		r.GET("", GetContributions)
		r.POST("", CreateContributions)
	}

	// Contribution with ID
	{
		r.OPTIONS("/:id", OptionsContributionDetail)
		r.GET("/:id", GetContribution)
		r.PATCH("/:id", UpdateContribution)
		r.DELETE("/:id", DeleteContribution)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Contributions
// @Success		204
// @Router			/v1/contributions [options]
func OptionsContributionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Contributions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/contributions/{id} [options]
func OptionsContributionDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Contribution{})
}

// @Summary		Create contributions
// @Description	Creates new contribution records
// @Tags			Contributions
// @Produce		json
// @Success		201				{object}	ContributionCreateResponse
// @Failure		400				{object}	ContributionCreateResponse
// @Failure		404				{object}	ContributionCreateResponse
// @Failure		500				{object}	ContributionCreateResponse
// @Param			contributions	body		[]ContributionEditable	true	"Contributions"
// @Router			/v1/contributions [post]
func CreateContributions(c *gin.Context) {
	var editables []ContributionEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ContributionCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := ContributionCreateResponse{}

	for _, editable := range editables {
		contribution := editable.model()

		err = models.DB.Create(&contribution).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newContribution(c, contribution)
		r.Data = append(r.Data, ContributionResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get contributions
// @Description	Returns a list of contribution records
// @Tags			Contributions
// @Produce		json
// @Success		200	{object}	ContributionListResponse
// @Failure		400	{object}	ContributionListResponse
// @Failure		500	{object}	ContributionListResponse
// @Router			/v1/contributions [get]
// @Param			student				query	string	false	"Filter by student ID"
// @Param			gradeLevel			query	string	false	"Filter by the grade level snapshotted on the record"
// @Param			month				query	string	false	"Filter by the month the payment applies to, in YYYY-MM format"
// @Param			year				query	int		false	"Filter by the calendar year the payment applies to"
// @Param			fromDate			query	string	false	"Payments entered at and after this date. Ignores exact time, matches on the day of the RFC3339 timestamp provided."
// @Param			untilDate			query	string	false	"Payments entered before and at this date. Ignores exact time, matches on the day of the RFC3339 timestamp provided."
// @Param			amount				query	string	false	"Filter by amount"
// @Param			amountLessOrEqual	query	string	false	"Amount less than or equal to this"
// @Param			amountMoreOrEqual	query	string	false	"Amount more than or equal to this"
// @Param			method				query	string	false	"Filter by payment method"
// @Param			recordedBy			query	string	false	"Filter by the staff member who entered the record"
// @Param			clearing			query	string	false	"Filter by bank clearing state"
// @Param			receiptNumber		query	string	false	"Filter by receipt number"
// @Param			notes				query	string	false	"Filter by notes"
// @Param			search				query	string	false	"Search for this text in student name and notes"
// @Param			offset				query	uint	false	"The offset of the first contribution returned. Defaults to 0."
// @Param			limit				query	int		false	"Maximum number of contributions to return. Defaults to 50."
func GetContributions(c *gin.Context) {
	var filter ContributionQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ContributionListResponse{
			Error: &s,
		})
		return
	}

	// Get the fields set in the filter
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	// Convert the QueryFilter to a Create struct
	model, err := filter.model()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ContributionListResponse{
			Error: &e,
		})
		return
	}

	var q *gorm.DB
	q = models.DB.Order("datetime(contributions.payment_date) DESC, datetime(contributions.created_at) DESC").Where(&model, queryFields...)

	// Filter for the month the payment applies to
	if !filter.Month.IsZero() {
		q = q.Where("contributions.month = ?", types.MonthOf(filter.Month))
	}

	// Filter for the calendar year the payment applies to
	if filter.Year != 0 {
		q = q.
			Where("contributions.month >= ?", types.NewMonth(filter.Year, time.January)).
			Where("contributions.month < ?", types.NewMonth(filter.Year+1, time.January))
	}

	if !filter.FromDate.IsZero() {
		q = q.Where("contributions.payment_date >= date(?)", time.Date(filter.FromDate.Year(), filter.FromDate.Month(), filter.FromDate.Day(), 0, 0, 0, 0, time.UTC))
	}

	if !filter.UntilDate.IsZero() {
		q = q.Where("contributions.payment_date < date(?)", time.Date(filter.UntilDate.Year(), filter.UntilDate.Month(), filter.UntilDate.Day()+1, 0, 0, 0, 0, time.UTC))
	}

	if slices.Contains(setFields, "AmountLessOrEqual") {
		q = q.Where("contributions.amount <= ?", filter.AmountLessOrEqual)
	}

	if slices.Contains(setFields, "AmountMoreOrEqual") {
		q = q.Where("contributions.amount >= ?", filter.AmountMoreOrEqual)
	}

	if filter.Notes != "" {
		q = q.Where("notes LIKE ?", "%"+filter.Notes+"%")
	} else if slices.Contains(setFields, "Notes") {
		q = q.Where("notes = ''")
	}

	if filter.Search != "" {
		q = q.Where(
			models.DB.Where("notes LIKE ?", "%"+filter.Search+"%").Or(
				models.DB.Where("student_name LIKE ?", "%"+filter.Search+"%"),
			),
		)
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 contributions and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var contributions []models.Contribution
	err = q.Find(&contributions).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContributionListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ContributionListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Contribution, 0)
	for _, contribution := range contributions {
		data = append(data, newContribution(c, contribution))
	}

	c.JSON(http.StatusOK, ContributionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get contribution
// @Description	Returns a specific contribution record
// @Tags			Contributions
// @Produce		json
// @Success		200	{object}	ContributionResponse
// @Failure		400	{object}	ContributionResponse
// @Failure		404	{object}	ContributionResponse
// @Failure		500	{object}	ContributionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/contributions/{id} [get]
func GetContribution(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ContributionResponse{
			Error: &e,
		})
		return
	}

	var contribution models.Contribution
	err = models.DB.First(&contribution, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ContributionResponse{
			Error: &e,
		})
		return
	}

	data := newContribution(c, contribution)
	c.JSON(http.StatusOK, ContributionResponse{Data: &data})
}

// @Summary		Update contribution
// @Description	Updates an existing contribution record. Only values to be updated need to be specified.
// @Tags			Contributions
// @Accept			json
// @Produce		json
// @Success		200				{object}	ContributionResponse
// @Failure		400				{object}	ContributionResponse
// @Failure		404				{object}	ContributionResponse
// @Failure		500				{object}	ContributionResponse
// @Param			id				path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			contribution	body		ContributionEditable	true	"Contribution"
// @Router			/v1/contributions/{id} [patch]
func UpdateContribution(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContributionResponse{
			Error: &s,
		})
		return
	}

	var contribution models.Contribution
	err = models.DB.First(&contribution, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContributionResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ContributionEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContributionResponse{
			Error: &s,
		})
		return
	}

	var data ContributionEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContributionResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&contribution).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContributionResponse{
			Error: &s,
		})
		return
	}

	r := newContribution(c, contribution)
	c.JSON(http.StatusOK, ContributionResponse{Data: &r})
}

// @Summary		Delete contribution
// @Description	Deletes a contribution record
// @Tags			Contributions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/contributions/{id} [delete]
func DeleteContribution(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var contribution models.Contribution
	err = models.DB.First(&contribution, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&contribution).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
