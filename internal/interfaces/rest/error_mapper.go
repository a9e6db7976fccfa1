package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/commercekit/monext-connector/internal/ledger"
	"github.com/commercekit/monext-connector/internal/monext"
)

type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteError maps collaborator and internal errors to HTTP responses.
func WriteError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	errorCode := "INTERNAL_ERROR"

	switch {
	case ledger.IsNotFound(err):
		statusCode = http.StatusNotFound
		errorCode = "NOT_FOUND"
	case ledger.IsConflict(err):
		statusCode = http.StatusConflict
		errorCode = "CONFLICT"
	case errors.Is(err, context.DeadlineExceeded):
		statusCode = http.StatusRequestTimeout
		errorCode = "TIMEOUT"
	default:
		if _, ok := monext.IsAPIError(err); ok {
			statusCode = http.StatusBadGateway
			errorCode = "PSP_ERROR"
		}
	}

	response := ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Code:    errorCode,
			Message: err.Error(),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}

// WriteJSON writes a 2xx JSON body.
func WriteJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}
