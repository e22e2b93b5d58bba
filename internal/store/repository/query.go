package repository

import (
	"fmt"
	"math"
	"strings"
)

// ListQuery narrows a list call. Zero values mean no filter, default order
// and no paging.
type ListQuery struct {
	ID         string
	OrderBy    string
	Descending bool
	Limit      int
	Offset     int
}

// buildList appends the WHERE, ORDER BY and LIMIT clauses of q to base. Only
// columns present in allowed can be ordered by.
func buildList(base string, q ListQuery, allowed map[string]bool) (string, []any, error) {
	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(base)

	if q.ID != "" {
		args = append(args, q.ID)
		fmt.Fprintf(&sb, " WHERE id = $%d", len(args))
	}

	column := q.OrderBy
	if column == "" {
		column = "created_at"
	}
	if !allowed[column] {
		return "", nil, fmt.Errorf("%w: %s", ErrUnknownColumn, column)
	}
	direction := "ASC"
	if q.Descending {
		direction = "DESC"
	}
	fmt.Fprintf(&sb, ` ORDER BY "%s" %s, id %s`, column, direction, direction)

	if q.Limit > 0 || q.Offset > 0 {
		limit := q.Limit
		if limit <= 0 {
			limit = math.MaxInt32
		}
		args = append(args, limit, q.Offset)
		fmt.Fprintf(&sb, " LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	return sb.String(), args, nil
}
