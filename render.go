package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
)

const cellWidth = 20

func newTable(w io.Writer) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetAutoFormatHeaders(false)
	t.SetAutoWrapText(false)
	t.SetBorder(false)
	t.SetRowLine(false)
	t.SetHeaderLine(true)
	return t
}

// renderDefinition previews a table that is being defined: column names
// over their types. Nothing is printed until the table has a name and a column.
func renderDefinition(w io.Writer, def *TableDefinition) {
	if !def.HasName() || len(def.Columns) == 0 {
		return
	}
	fmt.Fprintln(w, colorName(def.Name))
	t := newTable(w)
	names := make([]string, len(def.Columns))
	types := make([]string, len(def.Columns))
	for i, c := range def.Columns {
		names[i] = c.Name
		types[i] = c.SQLType
	}
	t.SetHeader(names)
	t.Append(types)
	t.Render()
}

// renderResult prints rows under name:TYPE titles
func renderResult(w io.Writer, rs *ResultSet) {
	t := newTable(w)
	titles := make([]string, len(rs.Columns))
	for i, c := range rs.Columns {
		decl := c.DeclType
		if decl == "" {
			decl = "none"
		}
		titles[i] = c.Name + ":" + decl
	}
	t.SetHeader(titles)
	for _, row := range rs.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = valueRepr(v)
		}
		t.Append(cells)
	}
	t.Render()
}

func valueRepr(v interface{}) string {
	var s string
	switch vv := v.(type) {
	case nil:
		s = "NULL"
	case []byte:
		s = fmt.Sprintf("%v", vv)
	case string:
		s = vv
	case time.Time:
		s = vv.Format(time.RFC3339)
	default:
		s = fmt.Sprintf("%v", vv)
	}
	return truncate(strings.TrimLeft(s, " \t\r\n"), cellWidth)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
