// file: internal/server/response_types.go
// version: 1.1.0
// guid: 0a1b2c3d-4e5f-6a7b-8c9d-0e1f2a3b4cfa

package server

import "errors"

// MessageResponse provides a consistent format for status messages
type MessageResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// StatusResponse provides a consistent format for status check responses
type StatusResponse struct {
	Status string `json:"status"` // "ok", "degraded", "error"
	Code   string `json:"code,omitempty"`
	Data   any    `json:"data,omitempty"`
}

var errAnalysisDisabled = errors.New("analysis disabled: no API key configured")
