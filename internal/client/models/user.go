// Package models defines the records the terminal reads from and writes to
// the remote store.
package models

import "time"

// User is an account. Username is the unique key; Password is an opaque
// credential compared by exact match.
type User struct {
	Username  string
	Password  string
	Online    bool
	CreatedAt time.Time
}
