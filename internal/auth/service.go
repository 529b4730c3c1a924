// Package auth implements login: credential checks against stored users
// and the login audit trail.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/crossroads/apparel-backend/internal/models"
	"github.com/crossroads/apparel-backend/internal/password"
)

// UserStore defines the interface for user lookup and login auditing.
type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	InsertLoginEvent(ctx context.Context, ev *models.LoginEvent) error
}

// Service authenticates users.
type Service struct {
	users  UserStore
	hasher *password.Hasher
	log    logrus.FieldLogger
}

func NewService(users UserStore, hasher *password.Hasher, log logrus.FieldLogger) *Service {
	return &Service{users: users, hasher: hasher, log: log}
}

// Authenticate checks email and password and returns the matching user.
// Emails match exactly. The login event is best-effort: a failed audit
// write is logged and the login still succeeds.
func (s *Service) Authenticate(ctx context.Context, email, pw string) (*models.User, error) {
	if email == "" || pw == "" {
		return nil, fmt.Errorf("%w: Email and password are required", models.ErrValidation)
	}

	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%w: User not found", models.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %w", models.ErrPersistence, err)
	}

	ok, err := s.hasher.Verify(pw, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: Invalid password", models.ErrAuthentication)
	}

	if err := s.users.InsertLoginEvent(ctx, &models.LoginEvent{UserEmail: email}); err != nil {
		s.log.WithError(err).WithField("email", email).Warn("record login event")
	}

	user.PasswordHash = ""
	return user, nil
}
