package main

import (
	"github.com/pkg/errors"
)

// FieldType represents a SQL column type offered as a hint when defining columns
type FieldType string

const (
	TypeInt  FieldType = "INTEGER"
	TypeReal FieldType = "REAL"
	TypeText FieldType = "TEXT"
	TypeBlob FieldType = "BLOB"
	TypeNum  FieldType = "NUMERIC"
)

var suggestedTypes = []FieldType{TypeInt, TypeReal, TypeText, TypeBlob, TypeNum}

// ColumnDefinition is a column of a table that has not been created yet
type ColumnDefinition struct {
	Name    string
	SQLType string
}

// TableDefinition is built up by the define-table flow
type TableDefinition struct {
	Name    string
	named   bool
	Columns []ColumnDefinition
	pending bool
}

// DefineState is where a TableDefinition is in the define-table flow
type DefineState int

const (
	StateEmpty DefineState = iota
	StateNamed
	StateColumnsPending
	StateReady
)

func (s DefineState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateNamed:
		return "named"
	case StateColumnsPending:
		return "columns-pending"
	case StateReady:
		return "ready"
	}
	return "unknown"
}

// SetName names the table. An empty name still counts as set.
func (d *TableDefinition) SetName(name string) {
	d.Name = name
	d.named = true
}

func (d *TableDefinition) HasName() bool { return d.named }

// State reports the flow state. A column opened with BeginColumn keeps the
// definition in ColumnsPending until it is added or discarded.
func (d *TableDefinition) State() DefineState {
	switch {
	case !d.named:
		return StateEmpty
	case d.pending:
		return StateColumnsPending
	case len(d.Columns) == 0:
		return StateNamed
	default:
		return StateReady
	}
}

// BeginColumn marks a column as being collected.
func (d *TableDefinition) BeginColumn() { d.pending = true }

// DiscardColumn drops the column opened with BeginColumn.
func (d *TableDefinition) DiscardColumn() { d.pending = false }

// AddColumn appends col and closes any pending column.
func (d *TableDefinition) AddColumn(col ColumnDefinition) {
	d.Columns = append(d.Columns, col)
	d.pending = false
}

// IndexOf returns the position of the named column.
func (d *TableDefinition) IndexOf(name string) (int, bool) {
	for i, c := range d.Columns {
		if c.Name == name {
			return i, true
		}
	}
	return -1, false
}

// ReplaceColumn overwrites the named column in place.
func (d *TableDefinition) ReplaceColumn(name string, col ColumnDefinition) error {
	i, ok := d.IndexOf(name)
	if !ok {
		return errors.Wrapf(ErrInternal, "column %q is not in the definition", name)
	}
	d.Columns[i] = col
	return nil
}

// RemoveColumn deletes the named column, keeping the order of the rest.
func (d *TableDefinition) RemoveColumn(name string) error {
	i, ok := d.IndexOf(name)
	if !ok {
		return errors.Wrapf(ErrInternal, "column %q is not in the definition", name)
	}
	d.Columns = append(d.Columns[:i], d.Columns[i+1:]...)
	return nil
}

// Column is a column read back from the catalog of an existing table
type Column struct {
	Name    string
	SQLType string
}

// Direction is a sort direction. The zero value means no ordering.
type Direction int

const (
	Unsorted Direction = iota
	Ascending
	Descending
)

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "ASC"
	case Descending:
		return "DESC"
	}
	return ""
}

// SortKey is one ORDER BY term.
type SortKey struct {
	Column    string
	Direction Direction
}

// SortSpec is the ordered list of ORDER BY keys for a browsing session.
// Keys keep the position at which they were first toggled on.
type SortSpec struct {
	keys []SortKey
}

// Toggle cycles the column through none -> ASC -> DESC -> none and
// returns its new direction.
func (s *SortSpec) Toggle(column string) Direction {
	for i, k := range s.keys {
		if k.Column != column {
			continue
		}
		if k.Direction == Ascending {
			s.keys[i].Direction = Descending
			return Descending
		}
		s.keys = append(s.keys[:i], s.keys[i+1:]...)
		return Unsorted
	}
	s.keys = append(s.keys, SortKey{Column: column, Direction: Ascending})
	return Ascending
}

// Direction returns how column is currently sorted.
func (s *SortSpec) Direction(column string) Direction {
	for _, k := range s.keys {
		if k.Column == column {
			return k.Direction
		}
	}
	return Unsorted
}

// Keys returns a copy of the keys in ORDER BY order.
func (s *SortSpec) Keys()  []SortKey {
	out := make([]SortKey, len(s.keys))
	copy(out, s.keys)
	return out
}

// Len is the number of active keys.
func (s *SortSpec) Len() int { return len(s.keys) }
