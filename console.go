package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ergochat/readline"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// Console is the terminal the flows talk to. ReadLine returns io.EOF when
// the operator closes input.
type Console interface {
	ReadLine(prompt string) (string, error)
	WaitForKey() error
	Clear()
}

type termConsole struct {
	rl    *readline.Instance
	out   io.Writer
	isTTY bool
}

func newTermConsole(out io.Writer) (*termConsole, error) {
	rl, err := readline.NewFromConfig(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return nil, err
	}
	return &termConsole{
		rl:    rl,
		out:   out,
		isTTY: term.IsTerminal(int(os.Stdout.Fd())),
	}, nil
}

func (c *termConsole) ReadLine(prompt string) (string, error) {
	c.rl.SetPrompt(prompt)
	line, err := c.rl.ReadLine()
	if err == readline.ErrInterrupt {
		return "", io.EOF
	}
	return line, err
}

func (c *termConsole) WaitForKey() error {
	_, err := c.ReadLine("Press Enter to continue...")
	return err
}

func (c *termConsole) Clear() {
	if c.isTTY {
		fmt.Fprint(c.out, "\033[H\033[2J")
	}
}

func (c *termConsole) Close() error { return c.rl.Close() }

// Choice is one menu entry. Choose returns its Value directly.
type Choice[T any] struct {
	Label string
	Value T
}

// Choose prints a numbered menu and reads a selection. An empty answer
// picks def.
func Choose[T any](c Console, out io.Writer, choices []Choice[T], def int) (T, error) {
	for i, ch := range choices {
		marker := " "
		if i == def {
			marker = color.YellowString(">")
		}
		fmt.Fprintf(out, "%s %d) %s\n", marker, i+1, ch.Label)
	}
	for {
		line, err := c.ReadLine(fmt.Sprintf("Select [%d]: ", def+1))
		if err != nil {
			var zero T
			return zero, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return choices[def].Value, nil
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(choices) {
			fmt.Fprintf(out, "Pick a number between 1 and %d\n", len(choices))
			continue
		}
		return choices[n-1].Value, nil
	}
}

// Input reads a line, falling back to def when the answer is empty, and
// re-prompts until valid accepts it. valid may be nil.
func Input(c Console, out io.Writer, prompt, def string, valid func(string) bool, invalidMsg string) (string, error) {
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, def)
	}
	for {
		line, err := c.ReadLine(prompt + ": ")
		if err != nil {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			line = def
		}
		if valid == nil || valid(line) {
			return line, nil
		}
		fmt.Fprintln(out, color.RedString(invalidMsg))
	}
}

// Confirm shows query and asks the operator to approve it.
func Confirm(c Console, out io.Writer, query string) (bool, error) {
	fmt.Fprintf(out, "Your query:\n  %s\n\n", color.CyanString(query))
	line, err := c.ReadLine("Do you want to execute this query? [y/N]: ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
