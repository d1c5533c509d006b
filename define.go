package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// defineAction is a define-table menu entry
type defineAction interface{ defineAction() }

type (
	setNameAction      struct{}
	addColumnAction    struct{}
	selectColumnAction struct{ column string }
	createTableAction  struct{}
	cancelDefineAction struct{}
)

func (setNameAction) defineAction()      {}
func (addColumnAction) defineAction()    {}
func (selectColumnAction) defineAction() {}
func (createTableAction) defineAction()  {}
func (cancelDefineAction) defineAction() {}

type columnAction int

const (
	columnModify columnAction = iota
	columnDelete
	columnNothing
)

var columnMenu = []Choice[columnAction]{
	{"Modify definition", columnModify},
	{"Delete", columnDelete},
	{"Nothing", columnNothing},
}

// defineMenu lists what the definition allows next. Create only shows up
// once the table is Ready.
func defineMenu(def *TableDefinition) ([]Choice[defineAction], int) {
	if !def.HasName() {
		return []Choice[defineAction]{
			{"Set name", setNameAction{}},
			{"Cancel", cancelDefineAction{}},
		}, 0
	}
	choices := []Choice[defineAction]{
		{"Change name", setNameAction{}},
		{"Add column", addColumnAction{}},
	}
	for _, c := range def.Columns {
		choices = append(choices, Choice[defineAction]{
			Label: fmt.Sprintf("Modify or remove '%s' column", c.Name),
			Value: selectColumnAction{column: c.Name},
		})
	}
	if def.State() == StateReady {
		choices = append(choices, Choice[defineAction]{"Create table", createTableAction{}})
	}
	choices = append(choices, Choice[defineAction]{"Cancel", cancelDefineAction{}})
	return choices, 1
}

func (a *App) defineTable(ctx context.Context) error {
	def := &TableDefinition{}

	for {
		a.console.Clear()
		fmt.Fprintln(a.out, "Create new table")
		fmt.Fprintln(a.out)
		renderDefinition(a.out, def)
		fmt.Fprintln(a.out)

		choices, dflt := defineMenu(def)
		action, err := Choose(a.console, a.out, choices, dflt)
		if err != nil {
			return err
		}

		switch act := action.(type) {
		case setNameAction:
			err = a.setTableName(def)
		case addColumnAction:
			err = a.addColumn(def)
		case selectColumnAction:
			a.console.Clear()
			err = a.updateOrDeleteColumn(def, act.column)
		case createTableAction:
			var done bool
			done, err = a.createTable(ctx, def)
			if err == nil && done {
				return nil
			}
		case cancelDefineAction:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (a *App) setTableName(def *TableDefinition) error {
	fmt.Fprintln(a.out, "Set name for a table")
	fmt.Fprintln(a.out)
	name, err := Input(a.console, a.out, "Set name", def.Name, a.validator.IsValidIdentifier, "Table name must be alphanumeric")
	if err != nil {
		return err
	}
	def.SetName(name)
	return nil
}

func (a *App) readColumn(current ColumnDefinition) (ColumnDefinition, error) {
	var col ColumnDefinition
	var err error
	col.Name, err = Input(a.console, a.out, "Set column name", current.Name, a.validator.IsValidIdentifier, "Column name must be alphanumeric")
	if err != nil {
		return col, err
	}
	col.SQLType, err = Input(a.console, a.out, "Set column type with associated keywords", current.SQLType, a.validator.IsValidType, "SQL type must be alphanumeric words")
	if err != nil {
		return col, err
	}
	col.SQLType = strings.Join(strings.Fields(col.SQLType), " ")
	return col, nil
}

func (a *App) addColumn(def *TableDefinition) error {
	fmt.Fprintln(a.out, "Adding new column")
	hints := make([]string, len(suggestedTypes))
	for i, t := range suggestedTypes {
		hints[i] = string(t)
	}
	fmt.Fprintf(a.out, "Common types: %s\n\n", strings.Join(hints, ", "))

	def.BeginColumn()
	a.log.Debug("collecting column", "table", def.Name, "state", def.State())
	col, err := a.readColumn(ColumnDefinition{})
	if err != nil {
		def.DiscardColumn()
		return err
	}
	def.AddColumn(col)
	return nil
}

func (a *App) updateOrDeleteColumn(def *TableDefinition, column string) error {
	fmt.Fprintf(a.out, "What do you want to do with %q column?\n\n", column)
	action, err := Choose(a.console, a.out, columnMenu, 0)
	if err != nil {
		return err
	}
	switch action {
	case columnModify:
		a.console.Clear()
		return a.setColumn(def, column)
	case columnDelete:
		return def.RemoveColumn(column)
	}
	return nil
}

func (a *App) setColumn(def *TableDefinition, column string) error {
	i, ok := def.IndexOf(column)
	if !ok {
		return errors.Wrapf(ErrInternal, "column %q is not in the definition", column)
	}
	fmt.Fprintf(a.out, "Editing %q column\n\n", column)
	col, err := a.readColumn(def.Columns[i])
	if err != nil {
		return err
	}
	return def.ReplaceColumn(column, col)
}

// createTable confirms and runs the CREATE statement. It reports done once
// the statement ran, whether or not the table could then be made active; a
// rejected statement keeps the flow open.
func (a *App) createTable(ctx context.Context, def *TableDefinition) (bool, error) {
	query, err := BuildCreate(def)
	if err != nil {
		return false, errors.Wrap(ErrInternal, err.Error())
	}
	ok, err := Confirm(a.console, a.out, query)
	if err != nil || !ok {
		return false, err
	}
	if _, err := a.session.Exec(ctx, query); err != nil {
		return false, a.report("Could not execute a query! Reason: %v", err)
	}
	if err := a.session.SetActiveTable(ctx, def.Name); err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrExecution) {
			// CREATE IF NOT EXISTS is a no-op when a table differing only in
			// case exists, and the catalog lookup is case-sensitive.
			a.log.Warn("created table not activated", "table", def.Name, "err", err)
			return true, a.report("Could not set %s table. Reason: %v", def.Name, err)
		}
		return false, errors.Wrapf(ErrInternal, "created table is missing: %v", err)
	}
	a.log.Info("table created", "table", def.Name, "columns", len(def.Columns))
	return true, nil
}
