package sqlite

import (
	"fmt"
	"strings"

	"github.com/mongolearn/lessons-api/internal/odm"
)

// plan translates an odm.Query into SQL fragments: a WHERE clause with
// placeholder args, and a trailing ORDER BY / LIMIT / OFFSET string.
// A nil or empty query plans to no WHERE at all.
func plan(q *odm.Query) (where string, args []any, tail string) {
	if q == nil {
		return "", nil, ""
	}

	clauses := make([]string, 0, len(q.Conditions()))
	for _, c := range q.Conditions() {
		clause, clauseArgs := planCondition(c)
		clauses = append(clauses, clause)
		args = append(args, clauseArgs...)
	}
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	var b strings.Builder
	if sorts := q.Sorts(); len(sorts) > 0 {
		orders := make([]string, 0, len(sorts))
		for _, s := range sorts {
			dir := "ASC"
			if s.Dir == odm.Desc {
				dir = "DESC"
			}
			orders = append(orders, s.Field+" "+dir)
		}
		b.WriteString(" ORDER BY " + strings.Join(orders, ", "))
	}
	if q.LimitValue() > 0 {
		fmt.Fprintf(&b, " LIMIT %d", q.LimitValue())
	}
	if q.SkipValue() > 0 {
		// SQLite requires a LIMIT before OFFSET; -1 means unlimited.
		if q.LimitValue() <= 0 {
			b.WriteString(" LIMIT -1")
		}
		fmt.Fprintf(&b, " OFFSET %d", q.SkipValue())
	}

	return where, args, b.String()
}

// planCondition maps one condition onto a SQL clause.
//
// The keywords field is stored as a JSON array in a text column, so
// equality there means containment: we match the quoted element inside
// the serialized array.
func planCondition(c odm.Condition) (string, []any) {
	if c.Field == "keywords" {
		return `keywords LIKE ?`, []any{`%"` + fmt.Sprint(c.Value) + `"%`}
	}

	switch c.Op {
	case odm.OpEq:
		return c.Field + " = ?", []any{c.Value}
	case odm.OpNe:
		return c.Field + " != ?", []any{c.Value}
	case odm.OpGt:
		return c.Field + " > ?", []any{c.Value}
	case odm.OpGte:
		return c.Field + " >= ?", []any{c.Value}
	case odm.OpLt:
		return c.Field + " < ?", []any{c.Value}
	case odm.OpLte:
		return c.Field + " <= ?", []any{c.Value}
	case odm.OpIn:
		values, _ := c.Value.([]any)
		if len(values) == 0 {
			// IN over nothing matches nothing.
			return "1 = 0", nil
		}
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(values)), ", ")
		return c.Field + " IN (" + placeholders + ")", values
	case odm.OpRegex:
		// Approximated with LIKE; good enough for the substring searches
		// the handlers issue.
		return c.Field + " LIKE ?", []any{"%" + fmt.Sprint(c.Value) + "%"}
	default:
		return "1 = 0", nil
	}
}
