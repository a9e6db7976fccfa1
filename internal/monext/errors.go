package monext

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx answer from the Monext checkout API. Write calls
// (session creation, capture/cancel/refund) surface it to the caller; read
// calls swallow it and degrade to a problem document instead.
type APIError struct {
	StatusCode int
	Title      string
	Code       string
	Detail     string
}

type apiErrorBody struct {
	Title  string `json:"title"`
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("monext error [%s]: %s (status: %d)", e.Code, e.Detail, e.StatusCode)
}

func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

func (e *APIError) IsRetryable() bool {
	return e.StatusCode >= 500
}

func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}
