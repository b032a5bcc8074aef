// Package syncer keeps the locally cached views of the store (who is online
// and the discussion feed) in step with the store.
//
// Both views are replaced as whole values, never patched. A refresh is
// triggered by a command that changed the store, or by a change event from
// the notification channel. Events are queued by a pump goroutine and
// consumed by Run, so event handling never blocks a running command.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/darkworlds/internal/client/models"
	"github.com/dmitrijs2005/darkworlds/internal/logging"
	"github.com/dmitrijs2005/darkworlds/internal/notify"
)

// ErrClosed is returned by Subscribe after Close.
var ErrClosed = errors.New("reconciler closed")

type UserSource interface {
	ListOnline(ctx context.Context) ([]models.User, error)
	SetOnline(ctx context.Context, username string, online bool) error
}

type FeedSource interface {
	Feed(ctx context.Context) ([]models.DiscussionMessage, error)
}

type SessionRestorer interface {
	Restore(ctx context.Context) (string, bool, error)
}

const queueSize = 16

type Reconciler struct {
	users   UserSource
	feed    FeedSource
	channel notify.Channel
	logger  logging.Logger
	timeout time.Duration

	online     atomic.Pointer[[]models.User]
	discussion atomic.Pointer[[]models.DiscussionMessage]

	onlineSeq     sequencer
	discussionSeq sequencer

	events chan notify.Event
	done   chan struct{}

	mu       sync.Mutex
	sub      notify.Subscription
	pumpDone chan struct{}
	closed   bool
}

// New builds a Reconciler. timeout bounds the refresh that Run performs per
// batch of events; zero means no bound.
func New(users UserSource, feed FeedSource, channel notify.Channel, logger logging.Logger, timeout time.Duration) *Reconciler {
	return &Reconciler{
		users:   users,
		feed:    feed,
		channel: channel,
		logger:  logger,
		timeout: timeout,
		events:  make(chan notify.Event, queueSize),
		done:    make(chan struct{}),
	}
}

// Start resumes a persisted session, subscribes to user changes and loads
// both views. Only a failed subscription is returned; the rest is logged.
func (r *Reconciler) Start(ctx context.Context, session SessionRestorer) error {
	if session != nil {
		user, ok, err := session.Restore(ctx)
		switch {
		case err != nil:
			r.logger.Warn(ctx, "session not restored", "err", err)
		case ok:
			r.logger.Info(ctx, "session resumed", "user", user)
			setCtx, cancel := r.refreshCtx(ctx)
			if err := r.users.SetOnline(setCtx, user, true); err != nil {
				r.logger.Warn(ctx, "online status not updated", "user", user, "err", err)
			}
			cancel()
		}
	}

	subErr := r.Subscribe(ctx)

	onlineCtx, cancelOnline := r.refreshCtx(ctx)
	_ = r.RefreshOnlineUsers(onlineCtx)
	cancelOnline()

	feedCtx, cancelFeed := r.refreshCtx(ctx)
	_ = r.RefreshDiscussion(feedCtx)
	cancelFeed()

	return subErr
}

// Subscribe registers for user change events, releasing any previous
// subscription first so there is never more than one.
func (r *Reconciler) Subscribe(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	r.releaseLocked()

	sub, err := r.channel.Subscribe(ctx, notify.KindUsers, notify.EventUpdate)
	if err != nil {
		return fmt.Errorf("subscribe to user changes: %w", err)
	}
	done := make(chan struct{})
	r.sub = sub
	r.pumpDone = done
	go r.pump(sub, done)

	r.logger.Debug(ctx, "subscribed", "kind", notify.KindUsers, "type", notify.EventUpdate)
	return nil
}

// pump moves events from sub into the queue until sub is released. A full
// queue already guarantees a pending refresh, so overflow is dropped.
func (r *Reconciler) pump(sub notify.Subscription, done chan struct{}) {
	defer close(done)
	for e := range sub.Events() {
		select {
		case r.events <- e:
		default:
		}
	}
}

func (r *Reconciler) releaseLocked() {
	if r.sub == nil {
		return
	}
	r.sub.Unsubscribe()
	<-r.pumpDone
	r.sub = nil
	r.pumpDone = nil
}

// Run refreshes the online users view for every batch of queued events until
// ctx is done or the reconciler is closed.
func (r *Reconciler) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.done:
			return nil
		case e := <-r.events:
			n := 1 + r.drain()
			r.logger.Debug(ctx, "user change observed", "key", e.Key, "batched", n)

			rctx, cancel := r.refreshCtx(ctx)
			_ = r.RefreshOnlineUsers(rctx)
			cancel()
		}
	}
}

func (r *Reconciler) drain() int {
	n := 0
	for {
		select {
		case <-r.events:
			n++
		default:
			return n
		}
	}
}

func (r *Reconciler) refreshCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// RefreshOnlineUsers re-fetches the online users and replaces the view. On
// failure the previous view is kept.
func (r *Reconciler) RefreshOnlineUsers(ctx context.Context) error {
	ticket := r.onlineSeq.take()
	users, err := r.users.ListOnline(ctx)
	if err != nil {
		r.logger.Warn(ctx, "online users refresh failed", "err", err)
		return fmt.Errorf("refresh online users: %w", err)
	}
	if !r.onlineSeq.install(ticket, func() { r.online.Store(&users) }) {
		r.logger.Debug(ctx, "stale online users refresh discarded", "ticket", ticket)
	}
	return nil
}

// RefreshDiscussion re-fetches the feed, newest first, and replaces the view.
func (r *Reconciler) RefreshDiscussion(ctx context.Context) error {
	ticket := r.discussionSeq.take()
	feed, err := r.feed.Feed(ctx)
	if err != nil {
		r.logger.Warn(ctx, "discussion refresh failed", "err", err)
		return fmt.Errorf("refresh discussion: %w", err)
	}
	if !r.discussionSeq.install(ticket, func() { r.discussion.Store(&feed) }) {
		r.logger.Debug(ctx, "stale discussion refresh discarded", "ticket", ticket)
	}
	return nil
}

// OnlineUsers returns the current view. The slice must not be modified.
func (r *Reconciler) OnlineUsers() []models.User {
	if p := r.online.Load(); p != nil {
		return *p
	}
	return nil
}

// Discussion returns the current feed, newest first. The slice must not be
// modified.
func (r *Reconciler) Discussion() []models.DiscussionMessage {
	if p := r.discussion.Load(); p != nil {
		return *p
	}
	return nil
}

// Close releases the subscription and stops Run. Further calls are no-ops.
func (r *Reconciler) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	r.releaseLocked()
	close(r.done)
}
