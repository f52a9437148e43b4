package api

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for the two status codes the views branch on.
var (
	// ErrNotFound marks detail lookups for resources that do not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrUnauthorized marks a rejected bearer token. The app reacts by
	// downgrading the session to anonymous.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a non-2xx response. Fields carries Laravel-style validation
// errors ({"errors": {"field": ["msg", ...]}}); Message carries the flat
// form ({"message": "..."}).
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string][]string
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], "; ")))
		}
		return fmt.Sprintf("api error %d: %s", e.StatusCode, strings.Join(parts, ", "))
	}
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// Is maps 404 and 401 onto the package sentinels so callers can use
// errors.Is without digging into the struct.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == 404
	case ErrUnauthorized:
		return e.StatusCode == 401
	}
	return false
}

// FieldError returns the first validation message for a form field, or "".
func (e *APIError) FieldError(field string) string {
	if msgs, ok := e.Fields[field]; ok && len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// AsAPIError unwraps err into an *APIError if there is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
