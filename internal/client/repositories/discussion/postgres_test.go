package discussion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/darkworlds/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	insertQ = `(?s)^INSERT\s+INTO\s+community_discussion_messages\s*\(id,\s*sender_username,\s*content\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+sent_at$`
	listQ   = `(?s)^SELECT\s+id,\s*sender_username,\s*content,\s*sent_at\s+FROM\s+community_discussion_messages\s+ORDER\s+BY\s+sent_at\s+DESC,\s*id\s+DESC$`
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	sent := time.Date(2025, 5, 5, 5, 5, 5, 0, time.UTC)

	mock.ExpectQuery(insertQ).
		WithArgs(sqlmock.AnyArg(), "alice", "hi").
		WillReturnRows(sqlmock.NewRows([]string{"sent_at"}).AddRow(sent))

	msg := &models.DiscussionMessage{SenderUsername: "alice", Content: "hi"}
	require.NoError(t, repo.Create(context.Background(), msg))
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, sent, msg.SentAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(insertQ).WillReturnError(errors.New("read-only transaction"))

	err := repo.Create(context.Background(), &models.DiscussionMessage{SenderUsername: "alice", Content: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read-only transaction")
}

func TestListLatestFirst_PreservesStoreOrder(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(listQ).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sender_username", "content", "sent_at"}).
			AddRow("2", "bob", "newer", now).
			AddRow("1", "alice", "older", now.Add(-time.Hour)))

	got, err := repo.ListLatestFirst(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "newer", got[0].Content)
	assert.Equal(t, "older", got[1].Content)
}

func TestListLatestFirst_QueryError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(listQ).WillReturnError(errors.New("gone"))

	_, err := repo.ListLatestFirst(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error: gone")
}
