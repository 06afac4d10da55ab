// pkg/models/api.go
package models

import "encoding/json"

// Laravel-style validation error response
type ValidationErrorResponse struct {
	Message string              `json:"message" example:"Validation failed"`
	Errors  map[string][]string `json:"errors"`
}

// Generic error response (403/404/409/500)
type ErrorResponse struct {
	Error   bool   `json:"error" example:"true"`
	Message string `json:"message" example:"Forbidden"`
	Code    string `json:"code,omitempty" example:"FORBIDDEN"`
}

// Envelope wraps responses of the validation endpoints.
type Envelope struct {
	Flag     bool            `json:"flag"`
	Message  string          `json:"message"`
	Response json.RawMessage `json:"response,omitempty"`
}

// NewEnvelope marshals v into a successful envelope.
func NewEnvelope(message string, v any) Envelope {
	b, _ := json.Marshal(v)
	return Envelope{Flag: true, Message: message, Response: b}
}
