// Package session tracks the authenticated user and mirrors it into a
// durable slot so a restarted process can resume without a new login.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/darkworlds/internal/common"
)

// Slot is the durable key-value facility the session is persisted to.
type Slot interface {
	Get(ctx context.Context, name string) (string, bool, error)
	Set(ctx context.Context, name, value string) error
	Delete(ctx context.Context, name string) error
}

type Session struct {
	slot Slot

	mu      sync.RWMutex
	current string
}

func New(slot Slot) *Session {
	return &Session{slot: slot}
}

// Current returns the authenticated username and whether there is one.
func (s *Session) Current() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.current != ""
}

// Restore loads the persisted user, if any, into the session.
func (s *Session) Restore(ctx context.Context) (string, bool, error) {
	user, ok, err := s.slot.Get(ctx, common.CurrentUserSlot)
	if err != nil {
		return "", false, fmt.Errorf("restore session: %w", err)
	}
	if !ok || user == "" {
		return "", false, nil
	}

	s.mu.Lock()
	s.current = user
	s.mu.Unlock()
	return user, true, nil
}

// Login makes username current and persists it. The in-memory session is set
// even when persisting fails; the error is returned for the caller to report.
func (s *Session) Login(ctx context.Context, username string) error {
	s.mu.Lock()
	s.current = username
	s.mu.Unlock()

	if err := s.slot.Set(ctx, common.CurrentUserSlot, username); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// Logout clears the session and its persisted copy.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.current = ""
	s.mu.Unlock()

	if err := s.slot.Delete(ctx, common.CurrentUserSlot); err != nil {
		return fmt.Errorf("clear persisted session: %w", err)
	}
	return nil
}
