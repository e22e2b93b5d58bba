package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error codes returned in the code field, following PostgREST and Postgres.
const (
	codeBadQuery      = "PGRST100"
	codeInvalidBody   = "PGRST102"
	codeUnknownColumn = "PGRST204"
	codeUnknownTable  = "PGRST205"
	codeBadAPIKey     = "PGRST301"
	codeMissingFilter = "21000"
	codeNotNull       = "23502"
	codeCheck         = "23514"
	codeUndefinedCol  = "42703"
	codeInternal      = "XX000"
)

// apiError is the JSON error body of the store.
type apiError struct {
	Status  int     `json:"-"`
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Details *string `json:"details"`
	Hint    *string `json:"hint"`
}

func (e *apiError) Error() string {
	return e.Code + ": " + e.Message
}

func newAPIError(status int, code, format string, args ...any) *apiError {
	return &apiError{Status: status, Code: code, Message: fmt.Sprintf(format, args...)}
}

func writeError(w http.ResponseWriter, e *apiError) {
	writeJSON(w, e.Status, e)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeError maps a json decoding failure of a row of table to an apiError.
func decodeError(table string, err error) *apiError {
	const unknownField = "json: unknown field "
	if msg := err.Error(); strings.HasPrefix(msg, unknownField) {
		column := strings.Trim(strings.TrimPrefix(msg, unknownField), `"`)
		return newAPIError(http.StatusBadRequest, codeUnknownColumn,
			"Could not find the '%s' column of '%s' in the schema cache", column, table)
	}
	return newAPIError(http.StatusBadRequest, codeInvalidBody, "Empty or invalid json")
}

// validationError maps the first failed rule of a row to the constraint
// violation the database would report.
func validationError(table string, err error) *apiError {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return newAPIError(http.StatusBadRequest, codeInvalidBody, "%s", err.Error())
	}

	fe := fieldErrs[0]
	if fe.Tag() == "required" {
		return newAPIError(http.StatusBadRequest, codeNotNull,
			`null value in column "%s" of relation "%s" violates not-null constraint`, fe.Field(), table)
	}
	return newAPIError(http.StatusBadRequest, codeCheck,
		`new row for relation "%s" violates check constraint "%s_%s_check"`, table, table, fe.Field())
}
