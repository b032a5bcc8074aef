// Package cli provides the interactive darkworlds terminal.
//
// It wires configuration, the shared store, the local session slot, the
// change notification channel and the command dispatcher, then runs a REPL
// over stdin. The REPL prints each command result followed by the panels
// switched on with show (online users, community discussion).
//
// The REPL is started via App.Run(ctx), which blocks until the user types
// exit or quit, input ends, or ctx is cancelled.
package cli
