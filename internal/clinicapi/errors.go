package clinicapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	ErrBackendRequest = errors.New("clinic backend request failed")
	ErrNotFound       = errors.New("not found")
)

// GenericDetail is shown when a non-2xx body carries no usable detail field.
const GenericDetail = "Unknown error"

// APIError is a non-2xx answer from the backend. Detail is the body's
// "detail" field and is safe to show to the user verbatim.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("clinic backend: status %d: %s", e.Status, e.Detail)
}

// decodeAPIError extracts the detail field from an error response body.
// FastAPI validation errors carry an object or array detail; those are
// re-serialized so the message is still a string.
func decodeAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode, Detail: GenericDetail}

	body, err := io.ReadAll(resp.Body)
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return apiErr
	}

	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err == nil {
		if detail != "" {
			apiErr.Detail = detail
		}
		return apiErr
	}

	apiErr.Detail = string(payload.Detail)
	return apiErr
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == status
	}
	return false
}
