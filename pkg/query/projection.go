// Package query provides SQL query building utilities with projection mapping.
package query

import (
	"fmt"
	"strings"
)

type joinClause struct {
	kind  string
	table string
	on    string
}

// ProjectionMap maps view property names to qualified column references (alias.column).
// It defines the table, alias, column mappings, and joins for SQL query construction.
type ProjectionMap struct {
	schema     string
	table      string
	alias      string
	current    string
	columns    map[string]string
	columnList []string
	joins      []joinClause
}

// NewProjectionMap creates a ProjectionMap for the given schema, table, and alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema:     schema,
		table:      table,
		alias:      alias,
		current:    alias,
		columns:    make(map[string]string),
		columnList: make([]string, 0),
	}
}

// Project adds a column mapping from database column to view property name.
// Columns added after a Join call are qualified with the joined table's alias.
func (p *ProjectionMap) Project(column, viewName string) *ProjectionMap {
	qualified := fmt.Sprintf("%s.%s", p.current, column)
	p.columns[viewName] = qualified
	p.columnList = append(p.columnList, qualified)
	return p
}

// Join adds a join clause and switches the projection target to the joined alias.
func (p *ProjectionMap) Join(schema, table, alias, kind, on string) *ProjectionMap {
	p.joins = append(p.joins, joinClause{
		kind:  kind,
		table: fmt.Sprintf("%s.%s %s", schema, table, alias),
		on:    on,
	})
	p.current = alias
	return p
}

// Alias returns the base table alias.
func (p *ProjectionMap) Alias() string {
	return p.alias
}

// Table returns the fully qualified base table reference with alias (schema.table alias).
func (p *ProjectionMap) Table() string {
	return fmt.Sprintf("%s.%s %s", p.schema, p.table, p.alias)
}

// From returns the full FROM target: the base table plus any join clauses.
func (p *ProjectionMap) From() string {
	var sb strings.Builder
	sb.WriteString(p.Table())

	for _, j := range p.joins {
		sb.WriteString(fmt.Sprintf(" %s %s ON %s", j.kind, j.table, j.on))
	}

	return sb.String()
}

// Column returns the qualified column for a view property name, or the input if not mapped.
func (p *ProjectionMap) Column(viewName string) string {
	if col, ok := p.columns[viewName]; ok {
		return col
	}
	return viewName
}

// Columns returns all mapped columns as a comma-separated string.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.columnList, ", ")
}

// ColumnList returns all mapped columns as a slice.
func (p *ProjectionMap) ColumnList() []string {
	return p.columnList
}
