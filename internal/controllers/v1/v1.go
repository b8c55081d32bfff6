package v1

import (
	"net/http"

	"github.com/classtally/backend/internal/httputil"
	"github.com/classtally/backend/internal/models"
	"github.com/gin-gonic/gin"
)

type V1Response struct {
	Links V1Links `json:"links"` // Links for the v1 API
}

type V1Links struct {
	Students      string `json:"students" example:"https://example.com/api/v1/students"`           // URL of the student list endpoint
	Contributions string `json:"contributions" example:"https://example.com/api/v1/contributions"` // URL of the contribution list endpoint
	Summary       string `json:"summary" example:"https://example.com/api/v1/summary"`             // URL of the collection summary endpoint
}

// GetV1 returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	V1Response
//	@Router			/v1 [get]
func GetV1(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Students:      url + "/v1/students",
			Contributions: url + "/v1/contributions",
			Summary:       url + "/v1/summary",
		},
	})
}

// OptionsV1 returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func OptionsV1(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}
