package services

import (
	"context"

	"github.com/dmitrijs2005/darkworlds/internal/client/models"
	"github.com/dmitrijs2005/darkworlds/internal/client/repositories/repomanager"
	"github.com/dmitrijs2005/darkworlds/internal/dbx"
)

// MessageService sends and lists direct messages.
type MessageService interface {
	Send(ctx context.Context, sender, recipient, content string) error
	Inbox(ctx context.Context, recipient string) ([]models.DirectMessage, error)
}

type messageService struct {
	db    dbx.DBTX
	repos repomanager.RepositoryManager
}

func NewMessageService(db dbx.DBTX, repos repomanager.RepositoryManager) MessageService {
	return &messageService{db: db, repos: repos}
}

func (s *messageService) Send(ctx context.Context, sender, recipient, content string) error {
	return s.repos.Messages(s.db).Create(ctx, &models.DirectMessage{
		Sender:    sender,
		Recipient: recipient,
		Content:   content,
	})
}

func (s *messageService) Inbox(ctx context.Context, recipient string) ([]models.DirectMessage, error) {
	return s.repos.Messages(s.db).ListByRecipient(ctx, recipient)
}
