package client

import (
	"context"
)

// UnknownError is the message of a failure that carried no text.
const UnknownError = "Unknown error"

// Response is the uniform result of every API call. When Success is false,
// Data is the zero value and must not be used.
type Response[T any] struct {
	Data    T      `json:"data"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	// Status is the HTTP status code, 0 when no response was received.
	Status int `json:"status,omitempty"`
	// Canceled is set when the caller's context ended before the call
	// finished. Such responses should be dropped, not shown.
	Canceled bool `json:"-"`
}

// OK builds a successful response.
func OK[T any](data T, status int) Response[T] {
	return Response[T]{Data: data, Success: true, Status: status}
}

// Fail builds a failed response. An empty message becomes UnknownError.
func Fail[T any](message string, status int) Response[T] {
	if message == "" {
		message = UnknownError
	}
	return Response[T]{Message: message, Status: status}
}

// Err returns nil on success and an *Error describing the failure otherwise.
func (r Response[T]) Err() error {
	if r.Success {
		return nil
	}
	return &Error{Status: r.Status, Message: r.Message, Canceled: r.Canceled}
}

// Map converts a successful response's data. A conversion error turns the
// response into a failure carrying the error text; failures pass through.
func Map[T, U any](r Response[T], fn func(T) (U, error)) Response[U] {
	if !r.Success {
		return Forward[U](r)
	}
	data, err := fn(r.Data)
	if err != nil {
		return Fail[U](err.Error(), r.Status)
	}
	return OK(data, r.Status)
}

// Forward carries a failed response over to another data type.
func Forward[U, T any](r Response[T]) Response[U] {
	return Response[U]{Message: r.Message, Status: r.Status, Canceled: r.Canceled}
}

// Error is a failed Response as a Go error.
type Error struct {
	Status   int
	Message  string
	Canceled bool
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap lets errors.Is(err, context.Canceled) detect dropped calls.
func (e *Error) Unwrap() error {
	if e.Canceled {
		return context.Canceled
	}
	return nil
}
