package response

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"studentgigs/internal/common"
)

type ErrorCollector interface {
	IncErrors()
}

var errorCollector ErrorCollector

func SetErrorCollector(collector ErrorCollector) {
	errorCollector = collector
}

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func Error(w http.ResponseWriter, err error) {
	status, body := classify(err)
	if status >= http.StatusInternalServerError {
		log.Printf("request failed: %v", err)
		if errorCollector != nil {
			errorCollector.IncErrors()
		}
	}
	JSON(w, status, body)
}

func classify(err error) (int, errorBody) {
	var coded *common.Error
	if !errors.As(err, &coded) {
		return http.StatusInternalServerError, errorBody{Error: "internal server error"}
	}
	status := statusFor(coded.Code)
	body := errorBody{Error: coded.Message, Fields: coded.Fields}
	if status == http.StatusInternalServerError {
		// Never leak the underlying cause.
		body = errorBody{Error: "internal server error"}
	}
	return status, body
}

func statusFor(code common.Code) int {
	switch code {
	case common.CodeValidation:
		return http.StatusBadRequest
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeForbidden:
		return http.StatusForbidden
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeConflict:
		return http.StatusConflict
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	case common.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
