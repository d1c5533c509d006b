package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/pkg/errors"
)

const defaultPageSize = 50

// App ties the session to the console and runs the menus
type App struct {
	session   *Session
	console   Console
	out       io.Writer
	validator *Validator
	pageSize  int
	log       *slog.Logger
}

func NewApp(s *Session, c Console, out io.Writer, v *Validator, pageSize int, logger *slog.Logger) *App {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		session:   s,
		console:   c,
		out:       out,
		validator: v,
		pageSize:  pageSize,
		log:       logger,
	}
}

type mainAction int

const (
	actDefineTable mainAction = iota
	actSelectTable
	actInsertRow
	actDisplay
	actQuit
)

var mainMenu = []Choice[mainAction]{
	{"Define new table", actDefineTable},
	{"Select existing table", actSelectTable},
	{"Insert row", actInsertRow},
	{"Display or remove rows", actDisplay},
	{"Quit", actQuit},
}

// Run shows the main menu until the operator quits. io.EOF from the
// console counts as quitting; any other error is fatal.
func (a *App) Run(ctx context.Context) error {
	for {
		a.console.Clear()
		a.printHeader()

		action, err := Choose(a.console, a.out, mainMenu, 0)
		if err != nil {
			return quitOnEOF(err)
		}
		switch action {
		case actDefineTable:
			err = a.defineTable(ctx)
		case actSelectTable:
			err = a.selectTable(ctx)
		case actInsertRow:
			err = a.insertRow(ctx)
		case actDisplay:
			err = a.displayTable(ctx)
		case actQuit:
			return nil
		}
		if err != nil {
			return quitOnEOF(err)
		}
	}
}

func quitOnEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (a *App) printHeader() {
	fmt.Fprintln(a.out, "Welcome to sqlite interactive demo.")
	if path, ok := a.session.Path(); ok {
		fmt.Fprintf(a.out, "Sqlite is running in %s\n\n", color.GreenString(path))
	} else {
		fmt.Fprintf(a.out, "Sqlite is running in %s\n\n", color.RedString("memory"))
	}
	if table, ok := a.session.ActiveTable(); ok {
		fmt.Fprintf(a.out, "Current table: %s\n", color.GreenString("'%s'", table))
	} else {
		fmt.Fprintf(a.out, "%s table selected\n", color.RedString("No"))
	}
}

func (a *App) selectTable(ctx context.Context) error {
	a.console.Clear()
	fmt.Fprintln(a.out, "Give table name")
	fmt.Fprintln(a.out)

	name, err := Input(a.console, a.out, "name", "", a.validator.IsValidIdentifier, "Table name must be alphanumeric")
	if err != nil {
		return err
	}
	if err := a.session.SetActiveTable(ctx, name); err != nil {
		if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrValidation) && !errors.Is(err, ErrExecution) {
			return err
		}
		fmt.Fprintf(a.out, "Could not set %s table\n", colorName(name))
		fmt.Fprintf(a.out, "Reason: %v\n\n", err)
		return a.console.WaitForKey()
	}
	return nil
}

// report prints a recoverable failure and waits for the operator.
func (a *App) report(format string, args ...interface{}) error {
	fmt.Fprintln(a.out, color.RedString(format, args...))
	return a.console.WaitForKey()
}

func colorName(name string) string {
	return color.CyanString("'%s'", name)
}
