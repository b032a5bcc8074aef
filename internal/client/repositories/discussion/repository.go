// Package discussion stores posts of the shared community feed.
package discussion

import (
	"context"

	"github.com/dmitrijs2005/darkworlds/internal/client/models"
)

type Repository interface {
	Create(ctx context.Context, msg *models.DiscussionMessage) error
	// ListLatestFirst returns every post ordered by sent_at, newest first.
	ListLatestFirst(ctx context.Context) ([]models.DiscussionMessage, error)
}
