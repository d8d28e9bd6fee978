package violationapi

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx answer from the violation API. Error returns the
// server's message unchanged so it can be shown to the user as is.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("violation api: %s", http.StatusText(e.StatusCode))
	}
	return e.Message
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// ErrorBody is the JSON envelope the API uses for failures.
type ErrorBody struct {
	Error string `json:"error"`
}

// StatusBody is the PATCH request payload.
type StatusBody struct {
	Resolved bool `json:"resolved"`
}
