package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Statement builders. Identifiers are expected to have passed the
// Validator already; values and WHERE fragments are spliced in verbatim.

// BuildCreate returns the CREATE TABLE statement for a definition
func BuildCreate(def *TableDefinition) (string, error) {
	if !def.HasName() {
		return "", errors.Wrap(ErrValidation, "table name is not set")
	}
	if len(def.Columns) == 0 {
		return "", errors.Wrapf(ErrValidation, "table %s has no columns", def.Name)
	}
	cols := make([]string, 0, len(def.Columns))
	for _, c := range def.Columns {
		cols = append(cols, c.Name+" "+c.SQLType)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s(%s)", def.Name, strings.Join(cols, ",")), nil
}

// BuildInsert returns an INSERT with one raw literal per column
func BuildInsert(table string, values []string) string {
	return fmt.Sprintf("INSERT INTO %s VALUES (%s)", table, strings.Join(values, ","))
}

// BuildConsecutiveInsert derives the next row from the current maximum of
// every column. (x+1)||1 yields a fresh value for numeric and text columns
// alike: 'a'+1 is 1 and x'00'||1 alone would be NULL.
func BuildConsecutiveInsert(table string, columns []Column) string {
	exprs := make([]string, 0, len(columns))
	for _, c := range columns {
		exprs = append(exprs, fmt.Sprintf("MAX((%s+1)||1)", c.Name))
	}
	return fmt.Sprintf("INSERT INTO %s SELECT %s FROM %s", table, strings.Join(exprs, ","), table)
}

// BuildSelect returns one page of the table. The second LIMIT operand is
// (page+1)*size, so later pages list more rows than earlier ones.
func BuildSelect(table string, page, size int, sort *SortSpec) string {
	var sb strings.Builder
	sb.WriteString("SELECT * FROM ")
	sb.WriteString(table)
	if sort != nil && sort.Len() > 0 {
		keys := sort.Keys()
		terms := make([]string, 0, len(keys))
		for _, k := range keys {
			terms = append(terms, k.Column+" "+k.Direction.String())
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(terms, ", "))
	}
	fmt.Fprintf(&sb, " LIMIT %d, %d", page*size, (page+1)*size)
	return sb.String()
}

// BuildDelete returns a DELETE with the where fragment spliced in verbatim
func BuildDelete(table, where string) string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s", table, where)
}

// BuildProbe returns a zero-row query used to read column metadata
func BuildProbe(table string) string {
	return fmt.Sprintf("SELECT * FROM %s LIMIT 0", table)
}

// BuildCatalogLookup returns a query yielding one row when table name
// exists. The name comparison is case-sensitive.
func BuildCatalogLookup(name string) string {
	return fmt.Sprintf("SELECT name FROM sqlite_master WHERE type='table' AND name='%s'", name)
}
