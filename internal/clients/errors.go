package clients

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNotFound is returned by Get and Update when no row has the requested id.
var ErrNotFound = errors.New("record not found")

// StoreError is a non-2xx reply from the record store.
type StoreError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Hint    string `json:"hint,omitempty"`
}

func (e *StoreError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("record store: %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("record store: %d: %s", e.Status, e.Message)
}

func parseStoreError(status int, body []byte) *StoreError {
	storeErr := &StoreError{}
	if err := json.Unmarshal(body, storeErr); err != nil || storeErr.Message == "" {
		storeErr.Message = strings.TrimSpace(string(body))
		if storeErr.Message == "" {
			storeErr.Message = http.StatusText(status)
		}
	}
	storeErr.Status = status
	return storeErr
}
