// Package command turns input lines into store operations.
//
// A line is split by Parse into a command name and its arguments, then the
// Dispatcher checks, in this order, that the command is known, that a session
// exists when the command needs one, and that enough arguments were given.
// Only then is the store contacted. Every outcome, including failures, is
// rendered as text; no error leaves the dispatcher.
package command
