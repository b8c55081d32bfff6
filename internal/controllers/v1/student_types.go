package v1

import (
	"fmt"

	"github.com/classtally/backend/internal/models"
	ez_uuid "github.com/classtally/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StudentEditable represents all user configurable parameters
type StudentEditable struct {
	Name       string            `json:"name" example:"Amina Nakato" default:""`                  // Name of the student
	GradeLevel models.GradeLevel `json:"gradeLevel" example:"Grade 7"`                            // Grade level the student is currently enrolled in
	TeacherID  uuid.UUID         `json:"teacherId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the homeroom teacher
	Note       string            `json:"note" example:"Sibling of Joseph Nakato" default:""`      // Notes about the student
	Archived   bool              `json:"archived" example:"true" default:"false"`                 // Is the student archived?
}

func (editable StudentEditable) model() models.Student {
	return models.Student{
		Name:       editable.Name,
		GradeLevel: editable.GradeLevel,
		TeacherID:  editable.TeacherID,
		Note:       editable.Note,
		Archived:   editable.Archived,
	}
}

type StudentLinks struct {
	Self          string `json:"self" example:"https://example.com/api/v1/students/3b1ea324-d438-4419-882a-2fc91d71772f"`                       // The student itself
	Contributions string `json:"contributions" example:"https://example.com/api/v1/contributions?student=3b1ea324-d438-4419-882a-2fc91d71772f"` // Contributions for this student
	Quota         string `json:"quota" example:"https://example.com/api/v1/students/3b1ea324-d438-4419-882a-2fc91d71772f/quota"`                // The student's yearly quota
}

type Student struct {
	models.DefaultModel
	StudentEditable
	Links StudentLinks `json:"links"`
}

func newStudent(c *gin.Context, model models.Student) Student {
	url := c.GetString(string(models.DBContextURL))

	return Student{
		DefaultModel: model.DefaultModel,
		StudentEditable: StudentEditable{
			Name:       model.Name,
			GradeLevel: model.GradeLevel,
			TeacherID:  model.TeacherID,
			Note:       model.Note,
			Archived:   model.Archived,
		},
		Links: StudentLinks{
			Self:          fmt.Sprintf("%s/v1/students/%s", url, model.ID),
			Contributions: fmt.Sprintf("%s/v1/contributions?student=%s", url, model.ID),
			Quota:         fmt.Sprintf("%s/v1/students/%s/quota", url, model.ID),
		},
	}
}

type StudentListResponse struct {
	Data       []Student   `json:"data"`                                                          // List of students
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type StudentCreateResponse struct {
	Data  []StudentResponse `json:"data"`                                                          // List of the created students or their respective error
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (s *StudentCreateResponse) appendError(err error, currentStatus int) int {
	e := err.Error()
	s.Data = append(s.Data, StudentResponse{Error: &e})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type StudentResponse struct {
	Data  *Student `json:"data"`                                                          // Data for the student
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type StudentQueryFilter struct {
	Name       string            `form:"name" filterField:"false"`   // By name
	GradeLevel models.GradeLevel `form:"gradeLevel"`                 // By grade level
	TeacherID  ez_uuid.UUID      `form:"teacher"`                    // By ID of the homeroom teacher
	Note       string            `form:"note" filterField:"false"`   // By note
	Archived   bool              `form:"archived"`                   // Is the student archived?
	Search     string            `form:"search" filterField:"false"` // By string in name or note
	Offset     uint              `form:"offset" filterField:"false"` // The offset of the first student returned. Defaults to 0.
	Limit      int               `form:"limit" filterField:"false"`  // Maximum number of students to return. Defaults to 50.
}

func (f StudentQueryFilter) model() (models.Student, error) {
	return models.Student{
		GradeLevel: f.GradeLevel,
		TeacherID:  f.TeacherID.UUID,
		Archived:   f.Archived,
	}, nil
}
