package httputil

import "errors"

// Errors that are returned to API clients verbatim, so they are phrased as
// instructions to the person reading the response.
var (
	ErrInvalidBody      = errors.New("the body of your request contains invalid or un-parseable data. Please check and try again")
	ErrRequestBodyEmpty = errors.New("the request body must not be empty")
	ErrInvalidUUID      = errors.New("the specified resource ID is not a valid UUID")
)
