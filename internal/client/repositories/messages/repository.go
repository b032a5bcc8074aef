// Package messages stores direct messages between users.
package messages

import (
	"context"

	"github.com/dmitrijs2005/darkworlds/internal/client/models"
)

type Repository interface {
	Create(ctx context.Context, msg *models.DirectMessage) error
	ListByRecipient(ctx context.Context, recipient string) ([]models.DirectMessage, error)
}
