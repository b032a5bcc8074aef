package syncer

import (
	"sync"
	"sync/atomic"
)

// sequencer orders concurrent refreshes of one view. Tickets are taken before
// fetching; a result is installed only if no later ticket got there first.
type sequencer struct {
	next atomic.Uint64

	mu        sync.Mutex
	installed uint64
}

func (s *sequencer) take() uint64 {
	return s.next.Add(1)
}

func (s *sequencer) install(ticket uint64, store func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ticket < s.installed {
		return false
	}
	s.installed = ticket
	store()
	return true
}
