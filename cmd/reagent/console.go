package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/glamour"

	"reagent/pkg/engine"
	"reagent/pkg/react"
)

// console is the line-oriented interactive loop. One console owns one
// session, so conversation memory spans queries until the process exits.
type console struct {
	in      io.Reader
	out     io.Writer
	eng     *engine.Engine
	session *engine.Session
	md      *glamour.TermRenderer

	// streamed tracks whether the current turn has printed any tokens, so
	// the observation line starts on its own line.
	streamed bool
}

func newConsole(in io.Reader, out io.Writer, eng *engine.Engine) *console {
	c := &console{
		in:  in,
		out: out,
		eng: eng,
		md:  newMarkdownRenderer(),
	}
	c.session = eng.NewSession(c.hooks())

	return c
}

// loop reads queries until EOF or a quit command.
func (c *console) loop() error {
	c.printBanner()

	scanner := bufio.NewScanner(c.in)
	for {
		fmt.Fprint(c.out, promptStyle.Render("You>")+" ")

		if !scanner.Scan() {
			fmt.Fprintln(c.out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if isQuitCommand(line) {
			fmt.Fprintln(c.out, "Bye.")
			return nil
		}

		c.runQuery(line)
	}
}

// printBanner shows the tool catalog once at startup.
func (c *console) printBanner() {
	fmt.Fprintln(c.out, titleStyle.Render("reagent — console agent"))
	fmt.Fprintln(c.out, "Available tools:")
	for _, tool := range c.eng.Tools().List() {
		fmt.Fprintf(c.out, "  - %s: %s\n", tool.Name, tool.Description)
	}
	fmt.Fprintln(c.out, "Type a question, or quit/exit/q to leave.")
	fmt.Fprintln(c.out, separator)
}

// runQuery drives one agent run. Ctrl-C cancels the run but keeps the
// console alive for the next query.
func (c *console) runQuery(query string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c.streamed = false

	run, err := c.session.Ask(ctx, query)

	if c.streamed {
		fmt.Fprintln(c.out)
	}

	switch {
	case err != nil && errors.Is(err, context.Canceled):
		fmt.Fprintln(c.out, noticeStyle.Render("Interrupted."))
	case err != nil:
		fmt.Fprintln(c.out, errorStyle.Render("Error: "+err.Error()))
	case run.Status == react.StatusStepLimit:
		fmt.Fprintln(c.out, noticeStyle.Render(fmt.Sprintf("Stopped after %d steps without a final answer. Best attempt:", run.StepCount)))
		fmt.Fprintln(c.out, renderMarkdown(c.md, run.Answer))
	default:
		fmt.Fprintln(c.out, titleStyle.Render("Answer:"))
		fmt.Fprintln(c.out, renderMarkdown(c.md, run.Answer))
	}

	fmt.Fprintln(c.out, separator)
}

// hooks streams model output and tool activity to the terminal as the run
// progresses.
func (c *console) hooks() react.Hooks {
	return react.Hooks{
		OnToken: func(token string) {
			c.streamed = true
			fmt.Fprint(c.out, thinkingStyle.Render(token))
		},
		OnAction: func(tool, input string) {
			if c.streamed {
				fmt.Fprintln(c.out)
				c.streamed = false
			}
			fmt.Fprintf(c.out, "%s %s\n", toolStyle.Render("→ "+tool), previewLine(input, previewWidth))
		},
		OnObservation: func(obs string) {
			fmt.Fprintln(c.out, obsStyle.Render("  "+previewLine(obs, previewWidth)))
		},
	}
}

// isQuitCommand reports whether line asks to leave the console.
func isQuitCommand(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "quit", "exit", "q":
		return true
	}

	return false
}
