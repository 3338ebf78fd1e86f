// file: internal/server/logger.go
// version: 1.1.0
// guid: 1b2c3d4e-5f6a-7b8c-9d0e-1f2a3b4c5dfb

package server

import (
	"fmt"
	"log"
	"time"
)

// OperationLogger tracks the lifecycle of a handler operation
type OperationLogger struct {
	handler   string
	method    string
	path      string
	startTime time.Time
	requestID string
	details   map[string]any
}

// NewOperationLogger creates a new operation logger
func NewOperationLogger(handler, method, path, requestID string) *OperationLogger {
	return &OperationLogger{
		handler:   handler,
		method:    method,
		path:      path,
		startTime: time.Now(),
		requestID: requestID,
		details:   make(map[string]any),
	}
}

// AddDetail adds a contextual detail to the operation log
func (ol *OperationLogger) AddDetail(key string, value any) {
	ol.details[key] = value
}

// LogStart logs the start of the operation
func (ol *OperationLogger) LogStart() {
	log.Printf("[INFO] [START] %s %s [request-id: %s]", ol.method, ol.path, ol.requestID)
}

// LogSuccess logs the successful completion of the operation
func (ol *OperationLogger) LogSuccess(statusCode int) {
	duration := time.Since(ol.startTime)
	msg := fmt.Sprintf("[SUCCESS] %s %s (%d) in %v", ol.method, ol.path, statusCode, duration)
	if len(ol.details) > 0 {
		msg = fmt.Sprintf("%s %v", msg, ol.details)
	}
	log.Printf("[INFO] %s [request-id: %s]", msg, ol.requestID)
}

// LogError logs an error that occurred during the operation
func (ol *OperationLogger) LogError(statusCode int, err error) {
	duration := time.Since(ol.startTime)
	log.Printf("[ERROR] %s %s (%d) in %v: %v [request-id: %s]",
		ol.method, ol.path, statusCode, duration, err, ol.requestID)
}

// LogDebug logs a debug message
func (ol *OperationLogger) LogDebug(message string) {
	log.Printf("[DEBUG] %s: %s [request-id: %s]", ol.handler, message, ol.requestID)
}
