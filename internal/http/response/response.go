package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fadeyibigbolahan/mbjobs-backend/internal/common"
)

// ErrorCollector is notified of every error response, so the metrics
// collector can count failures without importing this package's
// callers.
type ErrorCollector interface {
	ObserveError(code common.Code)
}

var errorCollector ErrorCollector

func SetErrorCollector(collector ErrorCollector) {
	errorCollector = collector
}

type errorBody struct {
	Success bool              `json:"success"`
	Code    common.Code       `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func Error(w http.ResponseWriter, err error) {
	var appErr *common.Error
	if !errors.As(err, &appErr) {
		appErr = common.NewError(common.CodeInternal, "internal error", err)
	}
	if errorCollector != nil {
		errorCollector.ObserveError(appErr.Code)
	}
	body := errorBody{Code: appErr.Code, Message: appErr.Message, Fields: appErr.Fields}
	if appErr.Code == common.CodeInternal {
		// Do not leak infrastructure details to clients.
		body.Message = "internal error"
	}
	JSON(w, StatusOf(appErr.Code), body)
}

// StatusOf maps error codes to HTTP statuses. Quota denials are 403s,
// matching the employer-facing contract.
func StatusOf(code common.Code) int {
	switch code {
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeForbidden, common.CodeQuotaExceeded:
		return http.StatusForbidden
	case common.CodeConflict:
		return http.StatusConflict
	case common.CodeValidation:
		return http.StatusBadRequest
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
