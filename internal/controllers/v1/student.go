package v1

import (
	"net/http"
	"time"

	"github.com/classtally/backend/internal/httputil"
	"github.com/classtally/backend/internal/models"
	"github.com/classtally/backend/internal/quota"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterStudentRoutes registers the routes for students with
// the RouterGroup that is passed.
func RegisterStudentRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsStudentList)
		r.GET("", GetStudents)
		r.POST("", CreateStudents)
	}

	// Student with ID
	{
		r.OPTIONS("/:id", OptionsStudentDetail)
		r.GET("/:id", GetStudent)
		r.PATCH("/:id", UpdateStudent)
		r.DELETE("/:id", DeleteStudent)
	}

	// Computed quota for a student
	{
		r.OPTIONS("/:id/quota", OptionsStudentQuota)
		r.GET("/:id/quota", GetStudentQuota)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Students
// @Success		204
// @Router			/v1/students [options]
func OptionsStudentList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Students
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/students/{id} [options]
func OptionsStudentDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Student{})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Students
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/students/{id}/quota [options]
func OptionsStudentQuota(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Student{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Create students
// @Description	Creates new students
// @Tags			Students
// @Produce		json
// @Success		201			{object}	StudentCreateResponse
// @Failure		400			{object}	StudentCreateResponse
// @Failure		500			{object}	StudentCreateResponse
// @Param			students	body		[]StudentEditable	true	"Students"
// @Router			/v1/students [post]
func CreateStudents(c *gin.Context) {
	var editables []StudentEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), StudentCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := StudentCreateResponse{}

	for _, editable := range editables {
		student := editable.model()

		err = models.DB.Create(&student).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newStudent(c, student)
		r.Data = append(r.Data, StudentResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get students
// @Description	Returns a list of students
// @Tags			Students
// @Produce		json
// @Success		200	{object}	StudentListResponse
// @Failure		400	{object}	StudentListResponse
// @Failure		500	{object}	StudentListResponse
// @Router			/v1/students [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			gradeLevel	query	string	false	"Filter by grade level"
// @Param			teacher		query	string	false	"Filter by homeroom teacher ID"
// @Param			note		query	string	false	"Filter by note"
// @Param			archived	query	bool	false	"Is the student archived?"
// @Param			search		query	string	false	"Search for this text in name and note"
// @Param			offset		query	uint	false	"The offset of the first student returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of students to return. Defaults to 50."
func GetStudents(c *gin.Context) {
	var filter StudentQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	// Convert the QueryFilter to a Create struct
	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StudentListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("name ASC").
		Where(&filterModel, queryFields...)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 students and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var students []models.Student
	err = q.Find(&students).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StudentListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), StudentListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Student, 0)
	for _, student := range students {
		data = append(data, newStudent(c, student))
	}

	c.JSON(http.StatusOK, StudentListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get student
// @Description	Returns a specific student
// @Tags			Students
// @Produce		json
// @Success		200	{object}	StudentResponse
// @Failure		400	{object}	StudentResponse
// @Failure		404	{object}	StudentResponse
// @Failure		500	{object}	StudentResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/students/{id} [get]
func GetStudent(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StudentResponse{
			Error: &s,
		})
		return
	}

	var student models.Student
	err = models.DB.First(&student, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StudentResponse{
			Error: &s,
		})
		return
	}

	data := newStudent(c, student)
	c.JSON(http.StatusOK, StudentResponse{Data: &data})
}

// QuotaResponse wraps the computed quota for one student.
type QuotaResponse struct {
	Data  *quota.Quota `json:"data"`                                                          // The computed quota
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// @Summary		Get student quota
// @Description	Returns the yearly quota and payment progress for a specific student
// @Tags			Students
// @Produce		json
// @Success		200		{object}	QuotaResponse
// @Failure		400		{object}	QuotaResponse
// @Failure		404		{object}	QuotaResponse
// @Failure		500		{object}	QuotaResponse
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			year	query		int		false	"The year to compute the quota for. Defaults to the current year."
// @Router			/v1/students/{id}/quota [get]
func GetStudentQuota(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), QuotaResponse{
			Error: &s,
		})
		return
	}

	var student models.Student
	err = models.DB.First(&student, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), QuotaResponse{
			Error: &s,
		})
		return
	}

	year, err := queryYear(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), QuotaResponse{
			Error: &s,
		})
		return
	}

	policy, err := quota.PolicyFromEnv()
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusInternalServerError, QuotaResponse{
			Error: &s,
		})
		return
	}

	var records []models.Contribution
	err = models.DB.Where(&models.Contribution{StudentID: student.ID}).Find(&records).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), QuotaResponse{
			Error: &s,
		})
		return
	}

	data := quota.Compute(student, records, year, policy)
	c.JSON(http.StatusOK, QuotaResponse{Data: &data})
}

// queryYear reads the year query parameter, defaulting to the current year.
func queryYear(c *gin.Context) (int, error) {
	var query QueryYear
	if err := c.Bind(&query); err != nil {
		return 0, errYearInvalid
	}

	if query.Year < 0 {
		return 0, errYearInvalid
	}

	if query.Year == 0 {
		return time.Now().UTC().Year(), nil
	}

	return query.Year, nil
}

// @Summary		Update student
// @Description	Update an existing student. Only values to be updated need to be specified.
// @Tags			Students
// @Accept			json
// @Produce		json
// @Success		200		{object}	StudentResponse
// @Failure		400		{object}	StudentResponse
// @Failure		404		{object}	StudentResponse
// @Failure		500		{object}	StudentResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			student	body		StudentEditable	true	"Student"
// @Router			/v1/students/{id} [patch]
func UpdateStudent(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StudentResponse{
			Error: &s,
		})
		return
	}

	var student models.Student
	err = models.DB.First(&student, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StudentResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, StudentEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StudentResponse{
			Error: &s,
		})
		return
	}

	var data StudentEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StudentResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&student).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StudentResponse{
			Error: &s,
		})
		return
	}

	r := newStudent(c, student)
	c.JSON(http.StatusOK, StudentResponse{Data: &r})
}

// @Summary		Delete student
// @Description	Deletes a student
// @Tags			Students
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/students/{id} [delete]
func DeleteStudent(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var student models.Student
	err = models.DB.First(&student, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&student).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
