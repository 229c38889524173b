package sqldb

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/campusbot/internal/domain/search/filter"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Placeholder returns the n-th (1-based) bind marker.
func (d Dialect) Placeholder(n int) string {
	if d == Postgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Where renders expr as a WHERE clause (with leading space) plus its args.
// Placeholders are numbered from start. An empty expression renders "".
// column maps a filter field to its quoted column and reports whether it exists.
func (d Dialect) Where(expr filter.Expression, start int, column func(string) (string, bool)) (string, []any, error) {
	if expr.IsEmpty() {
		return "", nil, nil
	}

	n := start
	var args []any
	groups := make([]string, 0, len(expr.Groups()))
	for _, g := range expr.Groups() {
		col, ok := column(g.Field())
		if !ok {
			return "", nil, fmt.Errorf("unknown filter field %q", g.Field())
		}
		conds := make([]string, 0, len(g.Conditions()))
		for _, c := range g.Conditions() {
			conds = append(conds, d.contains(col, n))
			args = append(args, "%"+likeEscaper.Replace(c.Match())+"%")
			n++
		}
		clause := strings.Join(conds, " OR ")
		if len(conds) > 1 {
			clause = "(" + clause + ")"
		}
		groups = append(groups, clause)
	}
	return " WHERE " + strings.Join(groups, " AND "), args, nil
}

func (d Dialect) contains(col string, n int) string {
	if d == Postgres {
		return fmt.Sprintf(`%s ILIKE %s ESCAPE '\'`, col, d.Placeholder(n))
	}
	// LIKE folds ASCII case only; casefold is registered in sqldb.go.
	return fmt.Sprintf(`casefold(%s) LIKE casefold(%s) ESCAPE '\'`, col, d.Placeholder(n))
}
