package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// writer accumulates SQL text and ordinal $n arguments.
type writer struct {
	buf  strings.Builder
	args []any
}

func (w *writer) text(s string) {
	w.buf.WriteString(s)
}

func (w *writer) arg(value any) {
	w.args = append(w.args, value)
	w.buf.WriteString("$")
	w.buf.WriteString(strconv.Itoa(len(w.args)))
}

// expr copies raw SQL, binding each ? to the next expression argument.
func (w *writer) expr(sql string, exprArgs []any) {
	if len(exprArgs) == 0 {
		w.buf.WriteString(sql)
		return
	}

	next := 0
	for i := 0; i < len(sql); i++ {
		if sql[i] == '?' && next < len(exprArgs) {
			w.arg(exprArgs[next])
			next++
			continue
		}
		w.buf.WriteByte(sql[i])
	}
}

// Condition renders one WHERE predicate.
type Condition func(w *writer)

func Eq(column string, value any) Condition {
	return func(w *writer) {
		w.text(column)
		w.text(" = ")
		w.arg(value)
	}
}

func In(column string, values []any) Condition {
	return func(w *writer) {
		if len(values) == 0 {
			w.text("1=0")
			return
		}
		w.text(column)
		w.text(" IN (")
		for i, v := range values {
			if i > 0 {
				w.text(", ")
			}
			w.arg(v)
		}
		w.text(")")
	}
}

func IsNull(column string) Condition {
	return func(w *writer) {
		w.text(column)
		w.text(" IS NULL")
	}
}

func Expr(sql string, args ...any) Condition {
	return func(w *writer) {
		w.expr(sql, args)
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
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var w writer
	w.text("SELECT ")
	w.text(strings.Join(b.columns, ", "))
	w.text(" FROM ")
	w.text(b.table)
	writeWhere(&w, b.where)
	if len(b.groupBy) > 0 {
		w.text(" GROUP BY ")
		w.text(strings.Join(b.groupBy, ", "))
	}
	if len(b.orderBy) > 0 {
		w.text(" ORDER BY ")
		w.text(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.text(" LIMIT ")
		w.text(strconv.Itoa(b.limit))
	}

	return w.buf.String(), w.args, nil
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

// Suffix appends raw SQL after the VALUES list, e.g. an ON CONFLICT clause.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}

	var w writer
	w.text("INSERT INTO ")
	w.text(b.table)
	w.text(" (")
	w.text(strings.Join(b.columns, ", "))
	w.text(") VALUES ")

	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			w.text(", ")
		}
		w.text("(")
		for colIdx, value := range row {
			if colIdx > 0 {
				w.text(", ")
			}
			w.arg(value)
		}
		w.text(")")
	}

	if b.suffix != "" {
		w.text(" ")
		w.text(b.suffix)
	}

	return w.buf.String(), w.args, nil
}

type UpdateBuilder struct {
	table string
	sets  []func(w *writer)
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, func(w *writer) {
		w.text(column)
		w.text(" = ")
		w.arg(value)
	})
	return b
}

func (b *UpdateBuilder) SetExpr(column, sql string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, func(w *writer) {
		w.text(column)
		w.text(" = ")
		w.expr(sql, args)
	})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update table is required")
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update sets are required")
	}

	var w writer
	w.text("UPDATE ")
	w.text(b.table)
	w.text(" SET ")
	for i, set := range b.sets {
		if i > 0 {
			w.text(", ")
		}
		set(&w)
	}
	writeWhere(&w, b.where)

	return w.buf.String(), w.args, nil
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("delete table is required")
	}
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("delete requires at least one condition")
	}

	var w writer
	w.text("DELETE FROM ")
	w.text(b.table)
	writeWhere(&w, b.where)

	return w.buf.String(), w.args, nil
}

func writeWhere(w *writer, conditions []Condition) {
	if len(conditions) == 0 {
		return
	}
	w.text(" WHERE ")
	for i, c := range conditions {
		if i > 0 {
			w.text(" AND ")
		}
		c(w)
	}
}
