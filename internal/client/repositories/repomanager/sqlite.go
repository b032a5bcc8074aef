package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/darkworlds/internal/client/migrations"
	"github.com/dmitrijs2005/darkworlds/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// OpenLocal opens (creating if needed) the local SQLite database that holds
// the persisted session slot and applies its migrations.
func OpenLocal(ctx context.Context, path string) (*sql.DB, error) {
	path, err := filex.EnsureParentDir(path)
	if err != nil {
		return nil, fmt.Errorf("local db path error: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("local db open error: %w", err)
	}
	db.SetMaxOpenConns(1)

	goose.SetBaseFS(migrations.SQLite)
	if err := goose.SetDialect("sqlite3"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := goose.UpContext(ctx, db, "sqlite"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("local migration error: %w", err)
	}
	return db, nil
}
