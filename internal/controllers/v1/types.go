package v1

import (
	ez_uuid "github.com/classtally/backend/internal/uuid"
)

type URIID struct {
	ID ez_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

// QueryYear is the year selector shared by all reporting endpoints.
// A zero year means "the current year".
type QueryYear struct {
	Year int `form:"year" example:"2024"` // The calendar year, defaults to the current year
}

type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}
