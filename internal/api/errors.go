package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// APIError is a non-2xx backend response. Detail carries the backend's
// human-readable message when one was provided.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %s (HTTP %d)", e.Detail, e.Status)
	}
	return fmt.Sprintf("api: HTTP %d", e.Status)
}

// errorEnvelope matches the backend's {"detail": ...} error body.
// Detail is usually a string, but quota errors nest an object.
type errorEnvelope struct {
	Detail json.RawMessage `json:"detail"`
}

type quotaDetail struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return apiErr
	}

	var env errorEnvelope
	if json.Unmarshal(body, &env) == nil && len(env.Detail) > 0 {
		var s string
		if json.Unmarshal(env.Detail, &s) == nil {
			apiErr.Detail = s
			return apiErr
		}
		var qd quotaDetail
		if json.Unmarshal(env.Detail, &qd) == nil && qd.Message != "" {
			apiErr.Detail = qd.Message
			return apiErr
		}
	}
	return apiErr
}

// IsAuthError reports whether err is a 401/403 backend rejection.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
	}
	return false
}

// IsQuotaError reports whether err is a 429 quota-exceeded rejection.
func IsQuotaError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusTooManyRequests
	}
	return false
}

// IsNotFound reports whether err is a 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusNotFound
	}
	return false
}
