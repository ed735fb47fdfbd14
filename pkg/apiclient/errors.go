package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError represents an RFC 7807 problem response from the API.
type APIError struct {
	StatusCode int    `json:"status"`
	Title      string `json:"title"`
	Detail     string `json:"detail,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Title, e.Detail)
	}
	return e.Title
}

// IsAuthError returns true if this is an authentication or authorization error.
func (e *APIError) IsAuthError() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsNotFound returns true if this is a not found error.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsConflict returns true if this is a conflict error.
func (e *APIError) IsConflict() bool {
	return e.StatusCode == http.StatusConflict
}

// QuotaExceededError is returned when an upload is rejected because the
// tenant's storage quota cannot accommodate it, even after cleanup.
type QuotaExceededError struct {
	Message          string  `json:"error"`
	CleanupPerformed bool    `json:"cleanupPerformed"`
	FilesDeleted     int     `json:"filesDeleted"`
	FreedSpace       float64 `json:"freedSpace"`
}

// Error implements the error interface.
func (e *QuotaExceededError) Error() string {
	if e.CleanupPerformed {
		return fmt.Sprintf("%s (cleanup deleted %d files, freed %.2f GB)",
			e.Message, e.FilesDeleted, e.FreedSpace)
	}
	return e.Message
}

// decodeError converts an error response body into a typed error.
// 413 bodies carry the quota rejection shape instead of a problem document.
func decodeError(statusCode int, body []byte) error {
	if statusCode == http.StatusRequestEntityTooLarge {
		var quotaErr QuotaExceededError
		if json.Unmarshal(body, &quotaErr) == nil && quotaErr.Message != "" {
			return &quotaErr
		}
	}

	var apiErr APIError
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Title != "" {
		apiErr.StatusCode = statusCode
		return &apiErr
	}

	return &APIError{
		StatusCode: statusCode,
		Title:      http.StatusText(statusCode),
		Detail:     string(body),
	}
}
