package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/dmitrijs2005/darkworlds/internal/client/models"
	"github.com/dmitrijs2005/darkworlds/internal/client/repositories/discussion"
	"github.com/dmitrijs2005/darkworlds/internal/client/repositories/messages"
	"github.com/dmitrijs2005/darkworlds/internal/client/repositories/users"
	"github.com/dmitrijs2005/darkworlds/internal/common"
	"github.com/dmitrijs2005/darkworlds/internal/dbx"
	"github.com/dmitrijs2005/darkworlds/internal/logging"
	"github.com/dmitrijs2005/darkworlds/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- in-memory repositories ----

type fakeUsers struct {
	byName map[string]models.User
	err    error
}

func (f *fakeUsers) Create(ctx context.Context, u *models.User) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byName[u.Username]; ok {
		return common.ErrorAlreadyExists
	}
	f.byName[u.Username] = *u
	return nil
}

func (f *fakeUsers) FindByCredentials(ctx context.Context, username, password string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byName[username]
	if !ok || u.Password != password {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (f *fakeUsers) SetOnline(ctx context.Context, username string, online bool) error {
	if f.err != nil {
		return f.err
	}
	u, ok := f.byName[username]
	if !ok {
		return common.ErrorNotFound
	}
	u.Online = online
	f.byName[username] = u
	return nil
}

func (f *fakeUsers) ListOnline(ctx context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range f.byName {
		if u.Online {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, f.err
}

type fakeMessages struct{ items []models.DirectMessage }

func (f *fakeMessages) Create(ctx context.Context, m *models.DirectMessage) error {
	f.items = append(f.items, *m)
	return nil
}

func (f *fakeMessages) ListByRecipient(ctx context.Context, recipient string) ([]models.DirectMessage, error) {
	var out []models.DirectMessage
	for _, m := range f.items {
		if m.Recipient == recipient {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeDiscussion struct {
	items []models.DiscussionMessage
	err   error
}

func (f *fakeDiscussion) Create(ctx context.Context, m *models.DiscussionMessage) error {
	if f.err != nil {
		return f.err
	}
	m.ID = "d-1"
	m.SentAt = time.Now()
	f.items = append([]models.DiscussionMessage{*m}, f.items...)
	return nil
}

func (f *fakeDiscussion) ListLatestFirst(ctx context.Context) ([]models.DiscussionMessage, error) {
	return f.items, f.err
}

type fakeManager struct {
	users      *fakeUsers
	messages   *fakeMessages
	discussion *fakeDiscussion
}

func newFakeManager() *fakeManager {
	return &fakeManager{
		users:      &fakeUsers{byName: map[string]models.User{}},
		messages:   &fakeMessages{},
		discussion: &fakeDiscussion{},
	}
}

func (m *fakeManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }
func (m *fakeManager) Users(db dbx.DBTX) users.Repository               { return m.users }
func (m *fakeManager) Messages(db dbx.DBTX) messages.Repository         { return m.messages }
func (m *fakeManager) Discussion(db dbx.DBTX) discussion.Repository     { return m.discussion }

type failingPublisher struct{ calls int }

func (p *failingPublisher) Publish(ctx context.Context, e notify.Event) error {
	p.calls++
	return errors.New("broker down")
}

// ---- tests ----

func TestUserService_RegisterTwiceKeepsFirstPassword(t *testing.T) {
	m := newFakeManager()
	s := NewUserService(nil, m, nil, logging.Discard())
	ctx := context.Background()

	require.NoError(t, s.Register(ctx, "a", "p"))
	err := s.Register(ctx, "a", "q")
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
	assert.Equal(t, "p", m.users.byName["a"].Password)
	assert.False(t, m.users.byName["a"].Online)
}

func TestUserService_Authenticate(t *testing.T) {
	m := newFakeManager()
	s := NewUserService(nil, m, nil, logging.Discard())
	ctx := context.Background()
	require.NoError(t, s.Register(ctx, "a", "p"))

	u, err := s.Authenticate(ctx, "a", "p")
	require.NoError(t, err)
	assert.Equal(t, "a", u.Username)

	_, err = s.Authenticate(ctx, "a", "wrong")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUserService_SetOnlinePublishesUserUpdate(t *testing.T) {
	m := newFakeManager()
	bus := notify.NewMemoryBus()
	s := NewUserService(nil, m, bus, logging.Discard())
	ctx := context.Background()
	require.NoError(t, s.Register(ctx, "a", "p"))

	sub, err := bus.Subscribe(ctx, notify.KindUsers, notify.EventUpdate)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	require.NoError(t, s.SetOnline(ctx, "a", true))

	select {
	case e := <-sub.Events():
		assert.Equal(t, "a", e.Key)
	case <-time.After(time.Second):
		t.Fatal("expected a users/update event")
	}

	online, err := s.ListOnline(ctx)
	require.NoError(t, err)
	require.Len(t, online, 1)
	assert.Equal(t, "a", online[0].Username)
}

func TestUserService_SetOnlineFailureDoesNotPublish(t *testing.T) {
	m := newFakeManager()
	p := &failingPublisher{}
	s := NewUserService(nil, m, p, logging.Discard())

	err := s.SetOnline(context.Background(), "ghost", true)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.Equal(t, 0, p.calls)
}

func TestUserService_PublishFailureIsNotAnError(t *testing.T) {
	m := newFakeManager()
	p := &failingPublisher{}
	s := NewUserService(nil, m, p, logging.Discard())
	ctx := context.Background()
	require.NoError(t, s.Register(ctx, "a", "p"))

	require.NoError(t, s.SetOnline(ctx, "a", true))
	assert.Equal(t, 1, p.calls)
}

func TestMessageService_SendThenInbox(t *testing.T) {
	m := newFakeManager()
	s := NewMessageService(nil, m)
	ctx := context.Background()

	require.NoError(t, s.Send(ctx, "b", "a", "hello world"))
	require.NoError(t, s.Send(ctx, "b", "c", "not for a"))

	inbox, err := s.Inbox(ctx, "a")
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, "b", inbox[0].Sender)
	assert.Equal(t, "a", inbox[0].Recipient)
	assert.Equal(t, "hello world", inbox[0].Content)
}

func TestDiscussionService_PostAnnouncesAndFeedIsNewestFirst(t *testing.T) {
	m := newFakeManager()
	m.discussion.items = []models.DiscussionMessage{{ID: "old", SenderUsername: "z", Content: "older"}}
	bus := notify.NewMemoryBus()
	s := NewDiscussionService(nil, m, bus, logging.Discard())
	ctx := context.Background()

	sub, err := bus.Subscribe(ctx, notify.KindDiscussion, notify.EventInsert)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	require.NoError(t, s.Post(ctx, "alice", "hi"))

	select {
	case e := <-sub.Events():
		assert.Equal(t, "d-1", e.Key)
	case <-time.After(time.Second):
		t.Fatal("expected a discussion/insert event")
	}

	feed, err := s.Feed(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, "hi", feed[0].Content)
}

func TestDiscussionService_PostError(t *testing.T) {
	m := newFakeManager()
	m.discussion.err = errors.New("db error: boom")
	s := NewDiscussionService(nil, m, nil, logging.Discard())

	err := s.Post(context.Background(), "alice", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
