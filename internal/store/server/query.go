package server

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/LangApex/alumni-platform/internal/store/repository"
)

// parseListQuery reads the select, order, id, limit and offset parameters.
// Any other parameter is rejected.
func parseListQuery(table string, values url.Values, hasColumn func(string) bool) (repository.ListQuery, *apiError) {
	var q repository.ListQuery

	for key, vals := range values {
		value := vals[len(vals)-1]
		switch key {
		case "select":
			if value != "*" {
				return q, newAPIError(http.StatusBadRequest, codeBadQuery, "only select=* is supported")
			}
		case "order":
			column, dir, _ := strings.Cut(value, ".")
			if !hasColumn(column) {
				return q, newAPIError(http.StatusBadRequest, codeUndefinedCol,
					"column %s.%s does not exist", table, column)
			}
			switch dir {
			case "", "asc":
			case "desc":
				q.Descending = true
			default:
				return q, newAPIError(http.StatusBadRequest, codeBadQuery, "invalid order direction %q", dir)
			}
			q.OrderBy = column
		case "id":
			id, ok := strings.CutPrefix(value, "eq.")
			if !ok || id == "" {
				return q, newAPIError(http.StatusBadRequest, codeBadQuery, "only eq filters on id are supported")
			}
			q.ID = id
		case "limit", "offset":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return q, newAPIError(http.StatusBadRequest, codeBadQuery, "%s must be a non-negative integer", key)
			}
			if key == "limit" {
				q.Limit = n
			} else {
				q.Offset = n
			}
		default:
			return q, newAPIError(http.StatusBadRequest, codeBadQuery, "unsupported query parameter %q", key)
		}
	}

	return q, nil
}

// prefersRepresentation reports whether the client asked for the affected
// rows in the response body.
func prefersRepresentation(r *http.Request) bool {
	for _, pref := range strings.Split(r.Header.Get("Prefer"), ",") {
		if strings.TrimSpace(pref) == "return=representation" {
			return true
		}
	}
	return false
}
