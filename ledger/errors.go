package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/jeovahfialho/banking-frontend/types"
)

// APIError is a non-2xx answer from the ledger. Message holds the server's
// "error" field and is empty when the body carried none.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("ledger responded %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("ledger responded %d", e.Status)
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}
	var eb types.ErrorBody
	if json.Unmarshal(body, &eb) == nil {
		apiErr.Message = eb.Error
	}
	return apiErr
}

func StatusOf(err error) (int, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status, true
	}
	return 0, false
}

// ServerMessage returns the ledger's own error text, if err carries one.
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

func IsNotFound(err error) bool {
	status, ok := StatusOf(err)
	return ok && status == http.StatusNotFound
}

func IsAuthFailure(err error) bool {
	status, ok := StatusOf(err)
	return ok && (status == http.StatusUnauthorized || status == http.StatusForbidden)
}
