package query

import (
	"fmt"
	"reflect"
	"strings"
)

// paramSlot marks where a positional parameter number is spliced in once
// the final parameter order is known.
const paramSlot = "$%d"

type condition struct {
	clause string
	args   []any
}

// SortField represents a single column in an ORDER BY clause. Field is the
// logical field name resolved through the ProjectionMap.
type SortField struct {
	Field      string
	Descending bool
}

// Builder constructs SQL queries using a fluent API with automatic
// parameter numbering.
type Builder struct {
	projection  *ProjectionMap
	conditions  []condition
	sort        []SortField
	defaultSort []SortField
}

// NewBuilder creates a Builder for the given projection with optional
// default sort fields.
func NewBuilder(projection *ProjectionMap, defaultSort ...SortField) *Builder {
	return &Builder{
		projection:  projection,
		conditions:  make([]condition, 0),
		defaultSort: defaultSort,
	}
}

// ParseSortFields parses a comma-separated sort string into a SortField
// slice. Fields prefixed with "-" are descending, e.g. "name,-uploadedAt".
// Returns nil for empty input.
func ParseSortFields(s string) []SortField {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	fields := make([]SortField, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		field, desc := strings.CutPrefix(part, "-")
		fields = append(fields, SortField{
			Field:      field,
			Descending: desc,
		})
	}

	return fields
}

// Build returns a SELECT query with the current conditions and ordering.
func (b *Builder) Build() (string, []any) {
	where, args := b.buildWhere()
	return b.selectSQL() + where + b.buildOrderBy(), args
}

// BuildCount returns a COUNT(*) query with the current conditions.
func (b *Builder) BuildCount() (string, []any) {
	where, args := b.buildWhere()
	return "SELECT COUNT(*) FROM " + b.projection.From() + where, args
}

// BuildPage returns a paginated SELECT query with ordering, limit, and offset.
func (b *Builder) BuildPage(page, pageSize int) (string, []any) {
	where, args := b.buildWhere()
	offset := (page - 1) * pageSize

	sql := fmt.Sprintf(
		"%s%s%s LIMIT %d OFFSET %d",
		b.selectSQL(),
		where,
		b.buildOrderBy(),
		pageSize,
		offset,
	)

	return sql, args
}

// BuildSingle returns a SELECT query for a single record by ID.
func (b *Builder) BuildSingle(idField string, id any) (string, []any) {
	sql := fmt.Sprintf(
		"%s WHERE %s = $1",
		b.selectSQL(),
		b.projection.Column(idField),
	)
	return sql, []any{id}
}

// BuildSingleOrNull returns a SELECT query limited to one row with the
// current conditions.
func (b *Builder) BuildSingleOrNull() (string, []any) {
	where, args := b.buildWhere()
	return b.selectSQL() + where + " LIMIT 1", args
}

// OrderByFields sets the sort order, overriding default sort fields.
func (b *Builder) OrderByFields(fields []SortField) *Builder {
	b.sort = fields
	return b
}

// WhereContains adds a case-insensitive ILIKE condition. No-op for nil or
// empty values.
func (b *Builder) WhereContains(field string, value *string) *Builder {
	if value == nil || *value == "" {
		return b
	}
	return b.where(
		b.projection.Column(field)+" ILIKE "+paramSlot,
		"%"+*value+"%",
	)
}

// WhereEquals adds an equality condition. No-op for nil values.
func (b *Builder) WhereEquals(field string, value any) *Builder {
	if isNil(value) {
		return b
	}
	return b.where(b.projection.Column(field)+" = "+paramSlot, value)
}

// WhereIn adds an IN condition for multiple values. No-op for empty slices.
func (b *Builder) WhereIn(field string, values []any) *Builder {
	if len(values) == 0 {
		return b
	}

	slots := make([]string, len(values))
	for i := range values {
		slots[i] = paramSlot
	}

	clause := fmt.Sprintf(
		"%s IN (%s)",
		b.projection.Column(field),
		strings.Join(slots, ", "),
	)
	return b.where(clause, values...)
}

// WhereNotNull adds an IS NOT NULL condition.
func (b *Builder) WhereNotNull(field string) *Builder {
	return b.where(b.projection.Column(field) + " IS NOT NULL")
}

// WhereNullable adds an equality condition, or IS NULL when value is nil.
func (b *Builder) WhereNullable(field string, value any) *Builder {
	col := b.projection.Column(field)
	if isNil(value) {
		return b.where(col + " IS NULL")
	}
	return b.where(col+" = "+paramSlot, value)
}

// WhereSearch adds an OR condition across multiple fields with ILIKE.
// No-op for nil or empty search.
func (b *Builder) WhereSearch(search *string, fields ...string) *Builder {
	if search == nil || *search == "" || len(fields) == 0 {
		return b
	}

	clauses := make([]string, len(fields))
	args := make([]any, len(fields))
	pattern := "%" + *search + "%"

	for i, field := range fields {
		clauses[i] = b.projection.Column(field) + " ILIKE " + paramSlot
		args[i] = pattern
	}

	return b.where("("+strings.Join(clauses, " OR ")+")", args...)
}

func (b *Builder) where(clause string, args ...any) *Builder {
	b.conditions = append(b.conditions, condition{clause: clause, args: args})
	return b
}

func (b *Builder) selectSQL() string {
	return "SELECT " + b.projection.Columns() + " FROM " + b.projection.From()
}

func (b *Builder) buildOrderBy() string {
	fields := b.sort
	if len(fields) == 0 {
		fields = b.defaultSort
	}

	if len(fields) == 0 {
		return ""
	}

	parts := make([]string, len(fields))
	for i, f := range fields {
		dir := "ASC"
		if f.Descending {
			dir = "DESC"
		}
		parts[i] = b.projection.Column(f.Field) + " " + dir
	}

	return " ORDER BY " + strings.Join(parts, ", ")
}

// buildWhere joins the accumulated conditions with AND and numbers the
// parameter slots in order of appearance.
func (b *Builder) buildWhere() (string, []any) {
	if len(b.conditions) == 0 {
		return "", nil
	}

	clauses := make([]string, 0, len(b.conditions))
	args := make([]any, 0)
	param := 1

	for _, cond := range b.conditions {
		clause := cond.clause
		for _, arg := range cond.args {
			clause = strings.Replace(clause, paramSlot, fmt.Sprintf("$%d", param), 1)
			args = append(args, arg)
			param++
		}
		clauses = append(clauses, clause)
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}

func isNil(value any) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	}

	return false
}
