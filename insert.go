package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/pkg/errors"
)

type insertAction int

const (
	insertManual insertAction = iota
	insertConsecutive
	insertBack
)

var insertMenu = []Choice[insertAction]{
	{"User defined insert row", insertManual},
	{"Add consecutive row", insertConsecutive},
	{"Back", insertBack},
}

func (a *App) insertRow(ctx context.Context) error {
	a.console.Clear()
	if _, err := a.session.RequireTable(); err != nil {
		fmt.Fprintln(a.out, "No active table selected")
		fmt.Fprintln(a.out)
		return a.console.WaitForKey()
	}

	for {
		action, err := Choose(a.console, a.out, insertMenu, 0)
		if err != nil {
			return err
		}
		switch action {
		case insertManual:
			err = a.userDefinedInsert(ctx)
		case insertConsecutive:
			err = a.consecutiveInsert(ctx)
		case insertBack:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// userDefinedInsert asks for one literal per column, in catalog order.
// Literals go into the statement untouched.
func (a *App) userDefinedInsert(ctx context.Context) error {
	a.console.Clear()
	table, err := a.session.RequireTable()
	if err != nil {
		return err
	}
	cols, err := a.session.Columns(ctx)
	if err != nil {
		return a.report("%v", err)
	}

	values := make([]string, 0, len(cols))
	for _, c := range cols {
		a.console.Clear()
		fmt.Fprintf(a.out, "Your query: %s\n", BuildInsert(table, values))
		v, err := Input(a.console, a.out, fmt.Sprintf("Set value for column %s (type %s)", c.Name, c.SQLType), "", nil, "")
		if err != nil {
			return err
		}
		values = append(values, v)
	}

	query := BuildInsert(table, values)
	a.console.Clear()
	ok, err := Confirm(a.console, a.out, query)
	if err != nil || !ok {
		return err
	}
	if _, err := a.session.Exec(ctx, query); err != nil {
		return a.report("Could not insert rows. Error: %v", err)
	}
	return nil
}

func (a *App) consecutiveInsert(ctx context.Context) error {
	a.console.Clear()
	if err := a.insertConsecutiveRow(ctx); err != nil {
		if errors.Is(err, ErrInternal) {
			return err
		}
		fmt.Fprintf(a.out, "%s %v\n\n", color.RedString("Failed to insert consecutive row."), err)
	} else {
		fmt.Fprintln(a.out, color.GreenString("Inserted row"))
	}
	return a.console.WaitForKey()
}

// insertConsecutiveRow adds one row derived from the current column maxima.
func (a *App) insertConsecutiveRow(ctx context.Context) error {
	table, err := a.session.RequireTable()
	if err != nil {
		return err
	}
	cols, err := a.session.Columns(ctx)
	if err != nil {
		return err
	}
	query := BuildConsecutiveInsert(table, cols)
	n, err := a.session.Exec(ctx, query)
	if err != nil {
		return err
	}
	if n != 1 {
		return newStatementError(query, errors.Errorf("row was not inserted (%d rows affected)", n))
	}
	return nil
}
