package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
)

// errorBody is the backend's error envelope. FastAPI-style backends put
// the human-readable reason under "detail".
type errorBody struct {
	Detail string `json:"detail"`
}

// readDetail extracts the backend's reason from an error response body,
// falling back to the raw body when it is not the expected envelope.
func readDetail(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err == nil && eb.Detail != "" {
		return eb.Detail
	}
	return string(raw)
}

// statusError maps a non-success response to the domain error taxonomy.
// Auth failures and server-side failures must stay distinguishable so the
// core can decide between re-login and retry.
func statusError(op string, resp *http.Response) error {
	detail := readDetail(resp.Body)

	var base error
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		base = domain.ErrAuthRequired
	case resp.StatusCode == http.StatusNotFound:
		base = domain.ErrNotFound
	case resp.StatusCode == http.StatusUnprocessableEntity || resp.StatusCode == http.StatusBadRequest:
		base = domain.ErrInvalidInput
	case resp.StatusCode >= 500:
		base = domain.ErrServiceUnavailable
	default:
		base = domain.ErrServiceUnavailable
	}

	if detail != "" {
		return fmt.Errorf("%s: %w: %s (status %d)", op, base, detail, resp.StatusCode)
	}
	return fmt.Errorf("%s: %w (status %d)", op, base, resp.StatusCode)
}
