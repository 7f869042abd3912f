package postgres

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/communehq/commune/internal/domain/apperr"
	repo "github.com/communehq/commune/internal/domain/repository"
)

// Translation of the repository query shape into SQL. Each repository
// passes the columns its callers may filter and sort on; anything else
// is rejected as an illegal value rather than interpolated.

var opSQL = map[repo.Op]string{
	repo.OpEq: "=",
	repo.OpNe: "<>",
	repo.OpLt: "<",
	repo.OpGt: ">",
}

// buildWhere renders the filter into a WHERE fragment (without the
// keyword) plus its arguments, numbering placeholders from argOffset+1.
func buildWhere(filter repo.Filter, allowed map[string]string, argOffset int) (string, []any, error) {
	if len(filter) == 0 {
		return "", nil, nil
	}
	var clauses []string
	var args []any
	n := argOffset
	for field, conditions := range filter {
		column, ok := allowed[field]
		if !ok {
			return "", nil, apperr.IllegalValue(fmt.Sprintf("cannot filter on %q", field))
		}
		for _, cond := range conditions {
			op, ok := opSQL[cond.Op]
			if !ok {
				return "", nil, apperr.IllegalValue(fmt.Sprintf("unknown operator %q", cond.Op))
			}
			n++
			clauses = append(clauses, fmt.Sprintf("%s %s $%d", column, op, n))
			args = append(args, cond.Value)
		}
	}
	return strings.Join(clauses, " AND "), args, nil
}

// buildTail renders ORDER BY / LIMIT / OFFSET. A cursor previously
// handed out by encodeCursor wins over the plain offset.
func buildTail(options repo.Options, allowed map[string]string, defaultSort string) (string, error) {
	column := defaultSort
	if options.SortBy != "" {
		c, ok := allowed[options.SortBy]
		if !ok {
			return "", apperr.IllegalValue(fmt.Sprintf("cannot sort on %q", options.SortBy))
		}
		column = c
	}
	dir := "ASC"
	if options.Direction == repo.Desc {
		dir = "DESC"
	}

	offset := options.Offset
	if options.Cursor != "" {
		decoded, err := decodeCursor(options.Cursor)
		if err != nil {
			return "", err
		}
		offset = decoded
	}

	limit := options.Limit
	if limit <= 0 {
		limit = 50
	}

	tail := fmt.Sprintf(" ORDER BY %s %s LIMIT %d", column, dir, limit)
	if offset > 0 {
		tail += fmt.Sprintf(" OFFSET %d", offset)
	}
	return tail, nil
}

func encodeCursor(offset int) string {
	return base64.RawURLEncoding.EncodeToString([]byte("o:" + strconv.Itoa(offset)))
}

func decodeCursor(cursor string) (int, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return 0, apperr.IllegalValue("malformed cursor")
	}
	s, ok := strings.CutPrefix(string(raw), "o:")
	if !ok {
		return 0, apperr.IllegalValue("malformed cursor")
	}
	offset, err := strconv.Atoi(s)
	if err != nil || offset < 0 {
		return 0, apperr.IllegalValue("malformed cursor")
	}
	return offset, nil
}

// wrap maps storage errors into the domain's error vocabulary.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFoundOnRepository("")
	}
	return apperr.Dao(err)
}
