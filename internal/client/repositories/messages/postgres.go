package messages

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

// Create inserts msg, assigning an ID when it has none. SentAt is set by the
// store.
func (r *PostgresRepository) Create(ctx context.Context, msg *models.DirectMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO messages (id, sender, recipient, content)
		 VALUES ($1, $2, $3, $4)
		 RETURNING sent_at`

	err := r.db.QueryRowContext(ctx, query, msg.ID, msg.Sender, msg.Recipient, msg.Content).Scan(&msg.SentAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByRecipient(ctx context.Context, recipient string) ([]models.DirectMessage, error) {
	query :=
		`SELECT id, sender, recipient, content, sent_at FROM messages
		 WHERE recipient = $1
		 ORDER BY sent_at, id`

	rows, err := r.db.QueryContext(ctx, query, recipient)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.DirectMessage, 0)
	for rows.Next() {
		var m models.DirectMessage
		if err := rows.Scan(&m.ID, &m.Sender, &m.Recipient, &m.Content, &m.SentAt); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return result, nil
}
