package discussion

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/darkworlds/internal/client/models"
	"github.com/dmitrijs2005/darkworlds/internal/dbx"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, msg *models.DiscussionMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO community_discussion_messages (id, sender_username, content)
		 VALUES ($1, $2, $3)
		 RETURNING sent_at`

	err := r.db.QueryRowContext(ctx, query, msg.ID, msg.SenderUsername, msg.Content).Scan(&msg.SentAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListLatestFirst(ctx context.Context) ([]models.DiscussionMessage, error) {
	query :=
		`SELECT id, sender_username, content, sent_at FROM community_discussion_messages
		 ORDER BY sent_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.DiscussionMessage, 0)
	for rows.Next() {
		var m models.DiscussionMessage
		if err := rows.Scan(&m.ID, &m.SenderUsername, &m.Content, &m.SentAt); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return result, nil
}
