package command

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/darkworlds/internal/client/models"
	"github.com/dmitrijs2005/darkworlds/internal/common"
)

// fakeStore implements every store interface of the dispatcher in memory and
// counts the calls made against it.
type fakeStore struct {
	mu sync.Mutex

	users      map[string]*models.User
	direct     []models.DirectMessage
	discussion []models.DiscussionMessage
	clock      time.Time

	calls int

	registerErr error
	authErr     error
	onlineErr   error
	inboxErr    error
	sendErr     error
	postErr     error
	block       time.Duration
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users: map[string]*models.User{},
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeStore) called() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeStore) enter(ctx context.Context) error {
	f.mu.Lock()
	f.calls++
	block := f.block
	f.mu.Unlock()

	if block > 0 {
		select {
		case <-time.After(block):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (f *fakeStore) Register(ctx context.Context, username, password string) error {
	if err := f.enter(ctx); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.registerErr != nil {
		return f.registerErr
	}
	if _, ok := f.users[username]; ok {
		return errors.New(`duplicate key value violates unique constraint "users_pkey"`)
	}
	f.users[username] = &models.User{Username: username, Password: password}
	return nil
}

func (f *fakeStore) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	if err := f.enter(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.authErr != nil {
		return nil, f.authErr
	}
	u, ok := f.users[username]
	if !ok || u.Password != password {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) SetOnline(ctx context.Context, username string, online bool) error {
	if err := f.enter(ctx); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.onlineErr != nil {
		return f.onlineErr
	}
	u, ok := f.users[username]
	if !ok {
		return common.ErrorNotFound
	}
	u.Online = online
	return nil
}

func (f *fakeStore) ListOnline(ctx context.Context) ([]models.User, error) {
	if err := f.enter(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.User
	for _, u := range f.users {
		if u.Online {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (f *fakeStore) Send(ctx context.Context, sender, recipient, content string) error {
	if err := f.enter(ctx); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.direct = append(f.direct, models.DirectMessage{Sender: sender, Recipient: recipient, Content: content})
	return nil
}

func (f *fakeStore) Inbox(ctx context.Context, recipient string) ([]models.DirectMessage, error) {
	if err := f.enter(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.inboxErr != nil {
		return nil, f.inboxErr
	}
	var out []models.DirectMessage
	for _, m := range f.direct {
		if m.Recipient == recipient {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeStore) Post(ctx context.Context, sender, content string) error {
	if err := f.enter(ctx); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.postErr != nil {
		return f.postErr
	}
	f.clock = f.clock.Add(time.Minute)
	f.discussion = append(f.discussion, models.DiscussionMessage{SenderUsername: sender, Content: content, SentAt: f.clock})
	return nil
}

func (f *fakeStore) Feed(ctx context.Context) ([]models.DiscussionMessage, error) {
	if err := f.enter(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.DiscussionMessage, len(f.discussion))
	copy(out, f.discussion)
	sort.Slice(out, func(i, j int) bool { return out[i].SentAt.After(out[j].SentAt) })
	return out, nil
}

// fakeSync mirrors the reconciler: each refresh replaces a snapshot.
type fakeSync struct {
	store *fakeStore

	onlineRefreshes     int
	discussionRefreshes int
	online              []models.User
	feed                []models.DiscussionMessage
}

func (s *fakeSync) RefreshOnlineUsers(ctx context.Context) error {
	s.onlineRefreshes++
	users, err := s.store.ListOnline(ctx)
	if err != nil {
		return err
	}
	s.online = users
	return nil
}

func (s *fakeSync) RefreshDiscussion(ctx context.Context) error {
	s.discussionRefreshes++
	feed, err := s.store.Feed(ctx)
	if err != nil {
		return err
	}
	s.feed = feed
	return nil
}

type fakeSession struct {
	current    string
	persisted  string
	persistErr error
}

func (s *fakeSession) Current() (string, bool) { return s.current, s.current != "" }

func (s *fakeSession) Login(ctx context.Context, username string) error {
	s.current = username
	if s.persistErr != nil {
		return s.persistErr
	}
	s.persisted = username
	return nil
}

func (s *fakeSession) Logout(ctx context.Context) error {
	s.current = ""
	s.persisted = ""
	return nil
}
