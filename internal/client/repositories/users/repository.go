// Package users stores accounts and their online flag.
package users

import (
	"context"

	"github.com/dmitrijs2005/darkworlds/internal/client/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) error
	FindByCredentials(ctx context.Context, username, password string) (*models.User, error)
	SetOnline(ctx context.Context, username string, online bool) error
	ListOnline(ctx context.Context) ([]models.User, error)
}
