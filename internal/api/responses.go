// Package api holds the JSON shapes and request validation shared by every
// handler.
package api

// ErrorResponse is the body of every non-2xx response. Details is set only for
// request validation failures.
type ErrorResponse struct {
	Error   string            `json:"error" example:"something went wrong"`
	Details []ValidationError `json:"details,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
