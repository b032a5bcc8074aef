package services

import (
	"context"

	"github.com/dmitrijs2005/darkworlds/internal/client/models"
	"github.com/dmitrijs2005/darkworlds/internal/client/repositories/repomanager"
	"github.com/dmitrijs2005/darkworlds/internal/dbx"
	"github.com/dmitrijs2005/darkworlds/internal/logging"
	"github.com/dmitrijs2005/darkworlds/internal/notify"
)

// DiscussionService posts to and reads the community feed.
type DiscussionService interface {
	Post(ctx context.Context, sender, content string) error
	// Feed returns all posts, newest first.
	Feed(ctx context.Context) ([]models.DiscussionMessage, error)
}

type discussionService struct {
	db        dbx.DBTX
	repos     repomanager.RepositoryManager
	publisher notify.Publisher
	logger    logging.Logger
}

func NewDiscussionService(db dbx.DBTX, repos repomanager.RepositoryManager, publisher notify.Publisher, logger logging.Logger) DiscussionService {
	return &discussionService{db: db, repos: repos, publisher: publisher, logger: logger}
}

func (s *discussionService) Post(ctx context.Context, sender, content string) error {
	msg := &models.DiscussionMessage{SenderUsername: sender, Content: content}
	if err := s.repos.Discussion(s.db).Create(ctx, msg); err != nil {
		return err
	}
	announce(ctx, s.publisher, s.logger, notify.NewEvent(notify.KindDiscussion, notify.EventInsert, msg.ID))
	return nil
}

func (s *discussionService) Feed(ctx context.Context) ([]models.DiscussionMessage, error) {
	return s.repos.Discussion(s.db).ListLatestFirst(ctx)
}
