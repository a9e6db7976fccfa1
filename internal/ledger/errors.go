package ledger

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx answer from the ledger API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

type apiErrorBody struct {
	Err     string `json:"error"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ledger error [%s]: %s (status: %d)", e.Code, e.Message, e.StatusCode)
}

func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

// IsNotFound reports whether err is a ledger 404.
func IsNotFound(err error) bool {
	apiErr, ok := IsAPIError(err)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// IsConflict reports whether err is a ledger conditional-update conflict,
// i.e. the IfFirstTransactionState precondition did not hold.
func IsConflict(err error) bool {
	apiErr, ok := IsAPIError(err)
	return ok && apiErr.StatusCode == http.StatusConflict
}
