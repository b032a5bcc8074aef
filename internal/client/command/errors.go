package command

import (
	"errors"
	"fmt"
)

// UsageError reports an unknown command or a missing argument.
type UsageError struct {
	Usage string
}

func (e *UsageError) Error() string { return e.Usage }

// AuthRequiredError reports a command run without a session.
type AuthRequiredError struct {
	Message string
}

func (e *AuthRequiredError) Error() string { return e.Message }

// CredentialError reports a failed login. It never says whether the user
// exists.
type CredentialError struct {
	// Err is the underlying lookup failure, kept for logging only.
	Err error
}

func (e *CredentialError) Error() string { return MsgInvalidCredentials }

func (e *CredentialError) Unwrap() error { return e.Err }

// StoreError wraps a failure reported by the store.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string { return "Error: " + e.Err.Error() }

func (e *StoreError) Unwrap() error { return e.Err }

// UnrecognizedSubcommandError is returned by show and hide for an unknown
// target. It renders as nothing.
type UnrecognizedSubcommandError struct {
	Command string
	Target  string
}

func (e *UnrecognizedSubcommandError) Error() string {
	return fmt.Sprintf("%s: unrecognized target %q", e.Command, e.Target)
}

// render maps an error to the text shown to the user.
func render(err error) string {
	var (
		usage   *UsageError
		auth    *AuthRequiredError
		cred    *CredentialError
		store   *StoreError
		unknown *UnrecognizedSubcommandError
	)
	switch {
	case errors.As(err, &unknown):
		return ""
	case errors.As(err, &usage):
		return usage.Error()
	case errors.As(err, &auth):
		return auth.Error()
	case errors.As(err, &cred):
		return cred.Error()
	case errors.As(err, &store):
		return store.Error()
	default:
		return (&StoreError{Err: err}).Error()
	}
}
