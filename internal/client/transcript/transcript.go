// Package transcript keeps the ordered history of executed command lines and
// their rendered output.
package transcript

import (
	"fmt"
	"io"
	"sync"
)

// Prompt prefixes every echoed command line.
const Prompt = "⤷"

// Entry is one executed line and the output it produced.
type Entry struct {
	Line   string
	Output string
}

// Transcript is safe for one writer and any number of concurrent readers.
type Transcript struct {
	mu      sync.RWMutex
	entries []Entry
}

func New() *Transcript {
	return &Transcript{}
}

func (t *Transcript) Append(line, output string) {
	t.mu.Lock()
	t.entries = append(t.entries, Entry{Line: line, Output: output})
	t.mu.Unlock()
}

func (t *Transcript) Clear() {
	t.mu.Lock()
	t.entries = nil
	t.mu.Unlock()
}

// Entries returns a copy of the history, oldest first.
func (t *Transcript) Entries() []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// writeEntry renders the echoed line followed by its output. Entries with
// empty output render the line only.
func writeEntry(w io.Writer, e Entry) (int, error) {
	if e.Output == "" {
		return fmt.Fprintf(w, "%s %s\n", Prompt, e.Line)
	}
	return fmt.Fprintf(w, "%s %s\n%s\n", Prompt, e.Line, e.Output)
}

// WriteLast renders the most recent entry. Non-interactive sessions print
// every command this way, so stdout reads as the transcript itself.
func (t *Transcript) WriteLast(w io.Writer) error {
	t.mu.RLock()
	if len(t.entries) == 0 {
		t.mu.RUnlock()
		return nil
	}
	e := t.entries[len(t.entries)-1]
	t.mu.RUnlock()

	_, err := writeEntry(w, e)
	return err
}
