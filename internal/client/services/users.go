// Package services contains the application services the command dispatcher
// and the sync reconciler talk to. They wrap the store repositories and
// announce changes on the notification publisher when one is configured.
package services

import (
	"context"

	"github.com/dmitrijs2005/darkworlds/internal/client/models"
	"github.com/dmitrijs2005/darkworlds/internal/client/repositories/repomanager"
	"github.com/dmitrijs2005/darkworlds/internal/dbx"
	"github.com/dmitrijs2005/darkworlds/internal/logging"
	"github.com/dmitrijs2005/darkworlds/internal/notify"
)

// UserService manages accounts and online status.
//
// Contract:
//   - Register: create a user; a taken username yields common.ErrorAlreadyExists.
//   - Authenticate: exact username+password match; no match yields common.ErrorNotFound.
//   - SetOnline: flip the online flag and announce the change.
//   - ListOnline: every user currently online.
type UserService interface {
	Register(ctx context.Context, username, password string) error
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	SetOnline(ctx context.Context, username string, online bool) error
	ListOnline(ctx context.Context) ([]models.User, error)
}

type userService struct {
	db        dbx.DBTX
	repos     repomanager.RepositoryManager
	publisher notify.Publisher
	logger    logging.Logger
}

// NewUserService builds a UserService. publisher may be nil when the store
// pushes changes by itself.
func NewUserService(db dbx.DBTX, repos repomanager.RepositoryManager, publisher notify.Publisher, logger logging.Logger) UserService {
	return &userService{db: db, repos: repos, publisher: publisher, logger: logger}
}

func (s *userService) Register(ctx context.Context, username, password string) error {
	return s.repos.Users(s.db).Create(ctx, &models.User{Username: username, Password: password})
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	return s.repos.Users(s.db).FindByCredentials(ctx, username, password)
}

func (s *userService) SetOnline(ctx context.Context, username string, online bool) error {
	if err := s.repos.Users(s.db).SetOnline(ctx, username, online); err != nil {
		return err
	}
	announce(ctx, s.publisher, s.logger, notify.NewEvent(notify.KindUsers, notify.EventUpdate, username))
	return nil
}

func (s *userService) ListOnline(ctx context.Context) ([]models.User, error) {
	return s.repos.Users(s.db).ListOnline(ctx)
}

// announce publishes e when a publisher is configured. A failed publish only
// delays other clients until their next refresh, so it is logged, not returned.
func announce(ctx context.Context, p notify.Publisher, logger logging.Logger, e notify.Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, e); err != nil {
		logger.Warn(ctx, "change announcement failed", "kind", e.Kind, "type", e.Type, "err", err)
	}
}
