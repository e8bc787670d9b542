package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

const networkMessage = "no se pudo conectar con el servidor"

// APIError is the single failure shape of every backend call. Status 0 means
// the request never got a response.
type APIError struct {
	Status   int
	Message  string
	Details  map[string]string
	Endpoint string

	cause error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("backend %s: %s: %v", e.Endpoint, e.Message, e.cause)
	}
	return fmt.Sprintf("backend %s: %d %s", e.Endpoint, e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return e.cause }

func (e *APIError) IsNetwork() bool { return e.Status == 0 }

func (e *APIError) IsUnauthorized() bool { return e.Status == http.StatusUnauthorized }

// DetailLines renders Details as sorted "field: message" lines.
func (e *APIError) DetailLines() []string {
	if len(e.Details) == 0 {
		return nil
	}
	fields := make([]string, 0, len(e.Details))
	for f := range e.Details {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, f+": "+e.Details[f])
	}
	return lines
}

// AsAPIError unwraps err into an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsStatus reports whether err is an *APIError with the given status.
func IsStatus(err error, status int) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == status
}

type errorBody struct {
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Details json.RawMessage `json:"details"`
}

type fieldDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func parseAPIError(endpoint string, status int, raw []byte) *APIError {
	apiErr := &APIError{Status: status, Endpoint: endpoint}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		apiErr.Message = http.StatusText(status)
		return apiErr
	}
	switch {
	case strings.TrimSpace(body.Message) != "":
		apiErr.Message = body.Message
	case strings.TrimSpace(body.Error) != "":
		apiErr.Message = body.Error
	default:
		apiErr.Message = http.StatusText(status)
	}
	apiErr.Details = parseDetails(body.Details)
	return apiErr
}

func parseDetails(raw json.RawMessage) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	var asMap map[string]string
	if err := json.Unmarshal(raw, &asMap); err == nil && len(asMap) > 0 {
		return asMap
	}
	var asList []fieldDetail
	if err := json.Unmarshal(raw, &asList); err == nil && len(asList) > 0 {
		out := make(map[string]string, len(asList))
		for _, d := range asList {
			if d.Field == "" {
				continue
			}
			out[d.Field] = d.Message
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}
