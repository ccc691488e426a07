// Package response defines the envelope consumed by external drivers of
// the taskboard core. The core itself never produces envelopes; commands
// wrap results and failures before presenting them.
package response

import (
	"errors"
	"time"

	"github.com/mesh-intelligence/taskboard/pkg/apperr"
)

// Envelope statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusCreated = "created"
	StatusUpdated = "updated"
	StatusDeleted = "deleted"
)

// Envelope is the uniform driver-facing result shape.
type Envelope struct {
	Status    string    `json:"status"`
	Data      any       `json:"data"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`

	// ErrorCode is set only on error envelopes.
	ErrorCode string `json:"error_code,omitempty"`
}

func newEnvelope(status string, data any, message string) Envelope {
	return Envelope{
		Status:    status,
		Data:      data,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Success wraps a successful read result.
func Success(data any, message string) Envelope {
	if message == "" {
		message = "Success"
	}
	return newEnvelope(StatusSuccess, data, message)
}

// Created wraps a successful creation.
func Created(data any, message string) Envelope {
	return newEnvelope(StatusCreated, data, message)
}

// Updated wraps a successful update.
func Updated(data any, message string) Envelope {
	return newEnvelope(StatusUpdated, data, message)
}

// Deleted wraps a successful deletion.
func Deleted(message string) Envelope {
	return newEnvelope(StatusDeleted, nil, message)
}

// Error wraps a failure. The error code is taken from the structured
// failure taxonomy; plain errors map to the base APP_ERROR code.
func Error(err error) Envelope {
	env := newEnvelope(StatusError, nil, err.Error())
	env.ErrorCode = apperr.CodeOf(err)

	var e *apperr.Error
	if errors.As(err, &e) {
		env.Message = e.Message
		env.Data = e.ToMap()
	}
	return env
}

// ToMap converts the envelope to its wire form with an RFC 3339 timestamp.
func (e Envelope) ToMap() map[string]any {
	m := map[string]any{
		"status":    e.Status,
		"data":      e.Data,
		"message":   e.Message,
		"timestamp": e.Timestamp.Format(time.RFC3339),
	}
	if e.ErrorCode != "" {
		m["error_code"] = e.ErrorCode
	}
	return m
}
