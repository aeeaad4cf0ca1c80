package shared

import (
	"encoding/json"
	"errors"
	"net/http"

	"staffdesk/internal/platform/validate"
	"staffdesk/internal/transport/http/api"
)

type ValidationIssue = validate.Issue

// Reject writes a validation failure when issues is non-empty and reports whether it did.
func Reject(w http.ResponseWriter, requestID string, issues []ValidationIssue) bool {
	if len(issues) == 0 {
		return false
	}
	FailValidation(w, requestID, issues)
	return true
}

func FailValidation(w http.ResponseWriter, requestID string, issues []ValidationIssue) {
	api.FailWithDetails(
		w,
		http.StatusBadRequest,
		api.CodeValidation,
		"payload validation failed",
		map[string]any{"fields": issues},
		requestID,
	)
}

// DecodeJSON reads a single JSON object from the request body into dst. On
// failure it writes the error response and returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, requestID string, dst any) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			api.Fail(w, http.StatusRequestEntityTooLarge, api.CodePayloadTooLarge, "request body too large", requestID)
			return false
		}
		api.Fail(w, http.StatusBadRequest, api.CodeInvalidPayload, "invalid request payload", requestID)
		return false
	}
	return true
}
