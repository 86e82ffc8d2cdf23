package models

import (
	"errors"
	"fmt"
)

var (
	ErrNetwork       = errors.New("network failure")
	ErrValidation    = errors.New("validation failed")
	ErrNotLoggedIn   = errors.New("not logged in")
	ErrEmptyCart     = errors.New("cart is empty")
	ErrNoIdentifier  = errors.New("token carries no identifier")
	ErrUnknownStatus = errors.New("unknown order status")
)

// ErrorBody is the normalized error payload of a non-2xx response. Message
// holds the raw text when the body is not JSON.
type ErrorBody struct {
	Message string `json:"message,omitempty"`
	Title   string `json:"title,omitempty"`
}

// APIError wraps a non-2xx response as {response:{status,data}}.
type APIError struct {
	Status int       `json:"status"`
	Data   ErrorBody `json:"data"`
}

func (e *APIError) Error() string {
	switch {
	case e.Data.Message != "":
		return fmt.Sprintf("api error %d: %s", e.Status, e.Data.Message)
	case e.Data.Title != "":
		return fmt.Sprintf("api error %d: %s", e.Status, e.Data.Title)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }
