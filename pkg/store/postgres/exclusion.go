package postgres

import (
	"fmt"
	"strings"
)

// binder numbers positional placeholders and accumulates their arguments so
// query fragments can be composed without tracking indices by hand.
type binder struct {
	args []any
}

// bind registers one argument and returns its placeholder.
func (b *binder) bind(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

// notIn builds an exclusion predicate with one bound placeholder per value.
// An empty list yields an empty fragment rather than a degenerate NOT IN ().
// Values are never interpolated into the SQL text.
func (b *binder) notIn(field string, values []string) string {
	if len(values) == 0 {
		return ""
	}
	placeholders := make([]string, 0, len(values))
	for _, v := range values {
		placeholders = append(placeholders, b.bind(v))
	}
	return fmt.Sprintf("AND %s NOT IN (%s)", field, strings.Join(placeholders, ", "))
}
