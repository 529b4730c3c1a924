// Package profile implements signup: validating a new profile, storing the
// user and sending the welcome email.
package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/crossroads/apparel-backend/internal/models"
	"github.com/crossroads/apparel-backend/internal/notify"
	"github.com/crossroads/apparel-backend/internal/password"
)

// JoinedLayout is the short date format used when joined is omitted.
const JoinedLayout = "1/2/2006"

// UserStore defines the persistence the service needs.
type UserStore interface {
	InsertUser(ctx context.Context, u *models.User) error
}

// Service creates profiles.
type Service struct {
	users        UserStore
	hasher       *password.Hasher
	notifier     notify.Notifier // nil when email is not configured
	emailTimeout time.Duration
	log          logrus.FieldLogger
	now          func() time.Time
}

// NewService wires a Service. notifier may be nil, in which case welcome
// emails are skipped.
func NewService(users UserStore, hasher *password.Hasher, notifier notify.Notifier, emailTimeout time.Duration, log logrus.FieldLogger) *Service {
	return &Service{
		users:        users,
		hasher:       hasher,
		notifier:     notifier,
		emailTimeout: emailTimeout,
		log:          log,
		now:          time.Now,
	}
}

// CreateProfile validates req, stores a new user and sends the welcome
// email. Only the insert can fail the call.
func (s *Service) CreateProfile(ctx context.Context, req models.ProfileRequest) (*models.User, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: Name, email, and password are required", models.ErrValidation)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, password.ErrTooLong) {
			return nil, fmt.Errorf("%w: password must be at most %d bytes", models.ErrValidation, password.MaxBytes)
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	joined := req.Joined
	if joined == "" {
		joined = s.now().Format(JoinedLayout)
	}

	u := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		Joined:       joined,
		ProfilePic:   req.ProfilePic,
		PasswordHash: hash,
	}
	if err := s.users.InsertUser(ctx, u); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrPersistence, err)
	}

	s.sendWelcome(ctx, u)
	return u, nil
}

func (s *Service) sendWelcome(ctx context.Context, u *models.User) {
	log := s.log.WithField("email", u.Email)
	if s.notifier == nil {
		log.Warn("skipping welcome email: email is not configured")
		return
	}

	if s.emailTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.emailTimeout)
		defer cancel()
	}
	if err := s.notifier.SendWelcome(ctx, u.Email, u.Name); err != nil {
		log.WithError(err).Warn("welcome email failed")
		return
	}
	log.Info("welcome email sent")
}
