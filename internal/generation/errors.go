package generation

import "strconv"

// APIError is returned by every Client call that does not end in a usable 2xx response
type APIError struct {
	Status int
	Code   string
	Detail string
	Err    error
}

func (e *APIError) Error() string {
	msg := "generation service error: " + e.Code
	if e.Status != 0 {
		msg += " (status " + strconv.Itoa(e.Status) + ")"
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += " (" + e.Err.Error() + ")"
	}
	return msg
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Error codes
const (
	ErrCodeHTTP            = "http_error"
	ErrCodeUnavailable     = "unavailable"
	ErrCodeInvalidResponse = "invalid_response"
	ErrCodeInvalidRequest  = "invalid_request"
)
