package notify

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
)

// PostgresChannelName is the LISTEN channel a store trigger notifies for kind.
func PostgresChannelName(kind Kind) string {
	return string(kind) + "_changes"
}

// PostgresListener subscribes through LISTEN/NOTIFY. Every subscription owns
// a dedicated connection because a listening pgx.Conn cannot be shared.
type PostgresListener struct {
	dsn string

	mu     sync.Mutex
	subs   map[*pgSubscription]struct{}
	closed bool
}

func NewPostgresListener(dsn string) *PostgresListener {
	return &PostgresListener{dsn: dsn, subs: make(map[*pgSubscription]struct{})}
}

type pgSubscription struct {
	conn   *pgx.Conn
	cancel context.CancelFunc
	ch     chan Event
	done   chan struct{}
	once   sync.Once
	owner  *PostgresListener
}

func (s *pgSubscription) Events() <-chan Event { return s.ch }

func (s *pgSubscription) Unsubscribe() {
	s.once.Do(func() {
		s.cancel()
		<-s.done
		s.owner.mu.Lock()
		delete(s.owner.subs, s)
		s.owner.mu.Unlock()
	})
}

func (l *PostgresListener) Subscribe(ctx context.Context, kind Kind, typ EventType) (Subscription, error) {
	l.mu.Lock()
	closed := l.closed
	l.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}

	conn, err := pgx.Connect(ctx, l.dsn)
	if err != nil {
		return nil, fmt.Errorf("listen connect error: %w", err)
	}
	channel := pgx.Identifier{PostgresChannelName(kind)}.Sanitize()
	if _, err := conn.Exec(ctx, "LISTEN "+channel); err != nil {
		_ = conn.Close(context.Background())
		return nil, fmt.Errorf("listen error: %w", err)
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	s := &pgSubscription{
		conn:   conn,
		cancel: cancel,
		ch:     make(chan Event, bufferSize),
		done:   make(chan struct{}),
		owner:  l,
	}

	l.mu.Lock()
	l.subs[s] = struct{}{}
	l.mu.Unlock()

	go s.loop(loopCtx, kind, typ)
	return s, nil
}

func (s *pgSubscription) loop(ctx context.Context, kind Kind, typ EventType) {
	defer close(s.done)
	defer close(s.ch)
	defer s.conn.Close(context.Background())

	for {
		n, err := s.conn.WaitForNotification(ctx)
		if err != nil {
			return
		}
		e, ok := matchNotification(n.Payload, kind, typ)
		if !ok {
			continue
		}
		select {
		case s.ch <- e:
		default:
		}
	}
}

// matchNotification decodes a trigger payload and reports whether it is an
// event of the wanted type. Payloads that fail to decode still signal a change
// of the listened kind, so they are passed on with the type filled in.
func matchNotification(payload string, kind Kind, typ EventType) (Event, bool) {
	e, err := DecodeEvent([]byte(payload))
	if err != nil {
		return NewEvent(kind, typ, ""), true
	}
	if e.Kind == "" {
		e.Kind = kind
	}
	return e, e.Kind == kind && e.Type == typ
}

// Close releases every subscription opened through the listener.
func (l *PostgresListener) Close() error {
	l.mu.Lock()
	l.closed = true
	subs := make([]*pgSubscription, 0, len(l.subs))
	for s := range l.subs {
		subs = append(subs, s)
	}
	l.mu.Unlock()

	for _, s := range subs {
		s.Unsubscribe()
	}
	return nil
}
