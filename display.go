package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
)

type displayAction int

const (
	displayNext displayAction = iota
	displayPrevious
	displaySort
	displayDelete
	displayBack
)

var displayMenu = []Choice[displayAction]{
	{"Next page", displayNext},
	{"Previous page", displayPrevious},
	{"Define sorting", displaySort},
	{"Delete rows", displayDelete},
	{"Go back", displayBack},
}

// browser is the state of one display flow
type browser struct {
	table   string
	columns []Column
	page    int
	sort    SortSpec
}

func (b *browser) next() { b.page++ }

func (b *browser) previous() {
	if b.page > 0 {
		b.page--
	}
}

func (a *App) displayTable(ctx context.Context) error {
	a.console.Clear()
	table, err := a.session.RequireTable()
	if err != nil {
		return a.report("Could not display table! %v", err)
	}
	cols, err := a.session.Columns(ctx)
	if err != nil {
		return a.report("Could not display table! %v", err)
	}
	b := &browser{table: table, columns: cols}

	for {
		a.console.Clear()
		if err := a.drawPage(ctx, b); err != nil {
			return a.report("Could not display table! %v", err)
		}
		fmt.Fprintln(a.out)

		action, err := Choose(a.console, a.out, displayMenu, 0)
		if err != nil {
			return err
		}
		switch action {
		case displayNext:
			b.next()
		case displayPrevious:
			b.previous()
		case displaySort:
			err = a.defineSorting(b)
		case displayDelete:
			err = a.deleteRows(ctx, b.table)
		case displayBack:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (a *App) drawPage(ctx context.Context, b *browser) error {
	rs, err := a.session.Query(ctx, BuildSelect(b.table, b.page, a.pageSize, &b.sort))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s page %d", colorName(b.table), b.page+1)
	if b.sort.Len() > 0 {
		fmt.Fprintf(a.out, ", sorted by %s", sortSummary(&b.sort))
	}
	fmt.Fprintln(a.out)
	renderResult(a.out, rs)
	return nil
}

func sortSummary(s *SortSpec) string {
	keys := s.Keys()
	terms := make([]string, len(keys))
	for i, k := range keys {
		terms[i] = k.Column + " " + k.Direction.String()
	}
	return strings.Join(terms, ", ")
}

func (a *App) defineSorting(b *browser) error {
	for {
		a.console.Clear()
		fmt.Fprintln(a.out, "Toggle sorting of a column")
		fmt.Fprintln(a.out)

		choices := make([]Choice[*Column], 0, len(b.columns)+1)
		for i := range b.columns {
			c := &b.columns[i]
			label := c.Name
			if d := b.sort.Direction(c.Name); d != Unsorted {
				label += " " + color.YellowString("[%s]", d)
			}
			choices = append(choices, Choice[*Column]{Label: label, Value: c})
		}
		choices = append(choices, Choice[*Column]{Label: "Back", Value: nil})

		picked, err := Choose(a.console, a.out, choices, len(choices)-1)
		if err != nil {
			return err
		}
		// Back
		if picked == nil {
			return nil
		}
		b.sort.Toggle(picked.Name)
	}
}

// deleteRows runs DELETE with a WHERE fragment typed by the operator.
func (a *App) deleteRows(ctx context.Context, table string) error {
	a.console.Clear()
	fmt.Fprintf(a.out, "Delete rows from %s\n\n", colorName(table))
	where, err := Input(a.console, a.out, "WHERE", "", nil, "")
	if err != nil {
		return err
	}
	query := BuildDelete(table, where)
	ok, err := Confirm(a.console, a.out, query)
	if err != nil || !ok {
		return err
	}
	n, err := a.session.Exec(ctx, query)
	if err != nil {
		return a.report("Could not delete rows. Error: %v", err)
	}
	fmt.Fprintf(a.out, "Deleted %d rows\n", n)
	return a.console.WaitForKey()
}
