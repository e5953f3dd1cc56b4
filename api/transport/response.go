package transport

import (
	"encoding/json"

	"github.com/taskdeck/backend/domain"
)

// Envelope wraps every API response. Success payloads carry Data;
// failures carry the domain error code and a human-readable Error.
type Envelope struct {
	Status string           `json:"status"`
	Code   domain.ErrorCode `json:"code,omitempty"`
	Data   interface{}      `json:"data,omitempty"`
	Error  interface{}      `json:"error,omitempty"`
	Meta   interface{}      `json:"meta,omitempty"`
}

// NewSuccess wraps data in a success envelope.
func NewSuccess(data interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "success",
		Data:   data,
		Meta:   meta,
	}
}

// NewError wraps a classified failure. The code is the machine-readable
// contract; clients switch on it, not on the message.
func NewError(code domain.ErrorCode, err interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "error",
		Code:   code,
		Error:  err,
		Meta:   meta,
	}
}

// String renders the envelope as JSON for logging, best effort.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}
