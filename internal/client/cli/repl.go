package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/darkworlds/internal/client/command"
	"github.com/dmitrijs2005/darkworlds/internal/client/transcript"
)

// printlnFn and printFn are test seams for user-facing output.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

const clearScreen = "\033[H\033[2J"

// execIface is the surface the REPL needs. App satisfies it; tests use a stub.
type execIface interface {
	execute(ctx context.Context, line string) command.Result
	status() string
	panels() string
	transcript() *transcript.Transcript
}

// readLines feeds scanned lines into a channel so the REPL can also watch
// its context. The channel is closed at end of input.
func readLines(r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()
	return lines
}

// runREPL reads lines and hands each one to the dispatcher until exit or quit
// is typed, input ends, or ctx is done.
//
// On a terminal the prompt shows the current user and the typed line is
// already visible, so only the result is printed; otherwise the entry just
// recorded in the transcript is printed as is. clear wipes the screen on a
// terminal.
func runREPL(ctx context.Context, a execIface, lines <-chan string, interactive bool) {
	for {
		if interactive {
			printFn(prompt(a.status()))
		}

		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			return
		case line, ok = <-lines:
			if !ok {
				return
			}
		}

		switch strings.TrimSpace(line) {
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		res := a.execute(ctx, line)
		if res.Cleared {
			if interactive {
				printFn(clearScreen)
			}
			continue
		}

		switch {
		case !interactive:
			var b strings.Builder
			if err := a.transcript().WriteLast(&b); err == nil {
				printFn(b.String())
			}
		case res.Output != "":
			printlnFn(res.Output)
		}

		if p := a.panels(); p != "" {
			printlnFn(p)
		}
	}
}

func prompt(user string) string {
	if user == "" {
		return "darkworlds> "
	}
	return fmt.Sprintf("darkworlds (%s)> ", user)
}
