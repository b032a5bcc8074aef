package repomanager

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/darkworlds/internal/client/repositories/localstate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenLocal_MigratesAndIsReusable(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "local.db")

	db, err := OpenLocal(ctx, path)
	require.NoError(t, err)

	repo := localstate.NewSQLiteRepository(db)
	require.NoError(t, repo.Set(ctx, "currentUser", "alice"))
	require.NoError(t, db.Close())

	// Reopening must not re-apply migrations or lose data.
	db, err = OpenLocal(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	v, ok, err := localstate.NewSQLiteRepository(db).Get(ctx, "currentUser")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "alice", v)
}

func TestPostgresRepositoryManager_HandsOutRepositories(t *testing.T) {
	m := NewPostgresRepositoryManager()

	assert.NotNil(t, m.Users(nil))
	assert.NotNil(t, m.Messages(nil))
	assert.NotNil(t, m.Discussion(nil))
}

func TestOpenLocal_CreatesParentDirectory(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "state", "local.db")

	db, err := OpenLocal(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	assert.FileExists(t, path)
}
