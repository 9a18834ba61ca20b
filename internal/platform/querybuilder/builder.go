// Package querybuilder assembles parameterized Postgres statements for the
// repository layer. It covers the handful of shapes the league repositories
// need and nothing more.
package querybuilder

import (
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

// sqlWriter accumulates SQL text together with its positional arguments.
// Placeholders are numbered from $1 in the order they are written.
type sqlWriter struct {
	sql  strings.Builder
	args []any
}

func (w *sqlWriter) raw(text string) {
	w.sql.WriteString(text)
}

func (w *sqlWriter) arg(value any) {
	w.args = append(w.args, value)
	w.sql.WriteString("$")
	w.sql.WriteString(strconv.Itoa(len(w.args)))
}

// bindExpr copies expr into the writer, replacing each ? with the next
// positional placeholder. Surplus ? marks are left as-is.
func (w *sqlWriter) bindExpr(expr string, exprArgs []any) {
	if len(exprArgs) == 0 {
		w.raw(expr)
		return
	}

	next := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] != '?' || next >= len(exprArgs) {
			w.sql.WriteByte(expr[i])
			continue
		}
		w.arg(exprArgs[next])
		next++
	}
}

// Condition renders one WHERE term into the writer.
type Condition func(w *sqlWriter)

func Eq(column string, value any) Condition {
	return func(w *sqlWriter) {
		w.raw(column)
		w.raw(" = ")
		w.arg(value)
	}
}

func In(column string, values []any) Condition {
	return func(w *sqlWriter) {
		// An empty IN list matches nothing.
		if len(values) == 0 {
			w.raw("1=0")
			return
		}
		w.raw(column)
		w.raw(" IN (")
		for i, v := range values {
			if i > 0 {
				w.raw(", ")
			}
			w.arg(v)
		}
		w.raw(")")
	}
}

func IsNull(column string) Condition {
	return func(w *sqlWriter) {
		w.raw(column)
		w.raw(" IS NULL")
	}
}

func Expr(expr string, args ...any) Condition {
	return func(w *sqlWriter) {
		w.bindExpr(expr, args)
	}
}

// EqLiteral inlines a quoted string constant. Only for values the caller
// controls, never for user input.
func EqLiteral(column, value string) Condition {
	quoted := "'" + strings.ReplaceAll(value, "'", "''") + "'"
	return func(w *sqlWriter) {
		w.raw(column)
		w.raw(" = ")
		w.raw(quoted)
	}
}

func writeWhere(w *sqlWriter, conditions []Condition) {
	if len(conditions) == 0 {
		return
	}
	w.raw(" WHERE ")
	for i, c := range conditions {
		if i > 0 {
			w.raw(" AND ")
		}
		c(w)
	}
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	groupBy []string
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) GroupBy(parts ...string) *SelectBuilder {
	b.groupBy = append(b.groupBy, parts...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, crerr.New("select: columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, crerr.New("select: table is required")
	}

	w := &sqlWriter{}
	w.raw("SELECT ")
	w.raw(strings.Join(b.columns, ", "))
	w.raw(" FROM ")
	w.raw(b.table)
	writeWhere(w, b.where)
	if len(b.groupBy) > 0 {
		w.raw(" GROUP BY ")
		w.raw(strings.Join(b.groupBy, ", "))
	}
	if len(b.orderBy) > 0 {
		w.raw(" ORDER BY ")
		w.raw(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.raw(" LIMIT ")
		w.raw(strconv.Itoa(b.limit))
	}

	return w.sql.String(), w.args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix appends trailing SQL such as ON CONFLICT or RETURNING clauses.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, crerr.New("insert: table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, crerr.New("insert: columns are required")
	}
	if len(b.rows) == 0 {
		return "", nil, crerr.New("insert: values are required")
	}

	w := &sqlWriter{}
	w.raw("INSERT INTO ")
	w.raw(b.table)
	w.raw(" (")
	w.raw(strings.Join(b.columns, ", "))
	w.raw(") VALUES ")

	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, crerr.Newf("insert: row %d has %d values, expected %d", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			w.raw(", ")
		}
		w.raw("(")
		for colIdx, value := range row {
			if colIdx > 0 {
				w.raw(", ")
			}
			w.arg(value)
		}
		w.raw(")")
	}

	if b.suffix != "" {
		w.raw(" ")
		w.raw(b.suffix)
	}

	return w.sql.String(), w.args, nil
}

type assignment struct {
	column   string
	value    any
	expr     string
	exprArgs []any
	isExpr   bool
}

type UpdateBuilder struct {
	table  string
	sets   []assignment
	where  []Condition
	suffix string
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: value})
	return b
}

// SetExpr assigns a raw SQL expression, with ? marks bound positionally.
func (b *UpdateBuilder) SetExpr(column, expr string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, expr: expr, exprArgs: args, isExpr: true})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) Suffix(sql string) *UpdateBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, crerr.New("update: table is required")
	}
	if len(b.sets) == 0 {
		return "", nil, crerr.New("update: assignments are required")
	}

	w := &sqlWriter{}
	w.raw("UPDATE ")
	w.raw(b.table)
	w.raw(" SET ")

	for i, set := range b.sets {
		if i > 0 {
			w.raw(", ")
		}
		w.raw(set.column)
		w.raw(" = ")
		if set.isExpr {
			w.bindExpr(set.expr, set.exprArgs)
			continue
		}
		w.arg(set.value)
	}

	writeWhere(w, b.where)
	if b.suffix != "" {
		w.raw(" ")
		w.raw(b.suffix)
	}

	return w.sql.String(), w.args, nil
}
