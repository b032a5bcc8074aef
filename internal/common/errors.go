// Package common defines shared constants and sentinel errors used across
// darkworlds components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Connection-level errors: the remote store or the notification
	// channel did not answer.
	ErrorUnavailable = errors.New("store unavailable")
)
