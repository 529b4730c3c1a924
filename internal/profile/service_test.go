package profile

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/crossroads/apparel-backend/internal/models"
	"github.com/crossroads/apparel-backend/internal/notify"
	"github.com/crossroads/apparel-backend/internal/password"
)

type fakeUserStore struct {
	inserted []*models.User
	err      error
}

func (f *fakeUserStore) InsertUser(ctx context.Context, u *models.User) error {
	if f.err != nil {
		return f.err
	}
	u.ID = int64(len(f.inserted) + 1)
	f.inserted = append(f.inserted, u)
	return nil
}

type fakeNotifier struct {
	calls    []string
	err      error
	deadline bool
}

func (f *fakeNotifier) SendWelcome(ctx context.Context, to, name string) error {
	f.calls = append(f.calls, to+"|"+name)
	_, f.deadline = ctx.Deadline()
	return f.err
}

func newTestService(t *testing.T, users UserStore, n *fakeNotifier) (*Service, *logtest.Hook) {
	t.Helper()
	logger, hook := logtest.NewNullLogger()
	var notifier notify.Notifier
	if n != nil {
		notifier = n
	}
	s := NewService(users, password.NewHasher(bcrypt.MinCost), notifier, time.Second, logger)
	s.now = func() time.Time { return time.Date(2026, time.October, 5, 12, 0, 0, 0, time.UTC) }
	return s, hook
}

func TestCreateProfile_Success(t *testing.T) {
	users := &fakeUserStore{}
	n := &fakeNotifier{}
	s, _ := newTestService(t, users, n)

	u, err := s.CreateProfile(context.Background(), models.ProfileRequest{
		Name: "Ada", Email: "ada@example.com", Password: "x",
	})
	require.NoError(t, err)

	require.Len(t, users.inserted, 1)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "10/5/2026", u.Joined)
	assert.Nil(t, u.ProfilePic)
	assert.NotEqual(t, "x", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("x")))

	assert.Equal(t, []string{"ada@example.com|Ada"}, n.calls)
	assert.True(t, n.deadline, "welcome email should run under a timeout")
}

func TestCreateProfile_KeepsProvidedJoinedAndPicture(t *testing.T) {
	users := &fakeUserStore{}
	s, _ := newTestService(t, users, &fakeNotifier{})
	pic := "/api/profile/picture/abc"

	u, err := s.CreateProfile(context.Background(), models.ProfileRequest{
		Name: "Ada", Email: "ada@example.com", Password: "x", Joined: "1815-12-10", ProfilePic: &pic,
	})
	require.NoError(t, err)
	assert.Equal(t, "1815-12-10", u.Joined)
	require.NotNil(t, u.ProfilePic)
	assert.Equal(t, pic, *u.ProfilePic)
}

func TestCreateProfile_MissingFields(t *testing.T) {
	tests := map[string]models.ProfileRequest{
		"no name":     {Email: "ada@example.com", Password: "x"},
		"no email":    {Name: "Ada", Password: "x"},
		"no password": {Name: "Ada", Email: "ada@example.com"},
		"empty":       {},
	}
	for name, req := range tests {
		t.Run(name, func(t *testing.T) {
			users := &fakeUserStore{}
			n := &fakeNotifier{}
			s, _ := newTestService(t, users, n)

			_, err := s.CreateProfile(context.Background(), req)
			assert.ErrorIs(t, err, models.ErrValidation)
			assert.Empty(t, users.inserted, "no store write on invalid input")
			assert.Empty(t, n.calls)
		})
	}
}

func TestCreateProfile_PasswordTooLong(t *testing.T) {
	users := &fakeUserStore{}
	s, _ := newTestService(t, users, &fakeNotifier{})

	_, err := s.CreateProfile(context.Background(), models.ProfileRequest{
		Name: "Ada", Email: "ada@example.com", Password: strings.Repeat("p", 73),
	})
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Empty(t, users.inserted)
}

func TestCreateProfile_InsertFails(t *testing.T) {
	users := &fakeUserStore{err: errors.New(`insert user: duplicate key value violates unique constraint "users_email_key"`)}
	n := &fakeNotifier{}
	s, _ := newTestService(t, users, n)

	_, err := s.CreateProfile(context.Background(), models.ProfileRequest{
		Name: "Ada", Email: "ada@example.com", Password: "x",
	})
	assert.ErrorIs(t, err, models.ErrPersistence)
	assert.ErrorContains(t, err, "duplicate key value")
	assert.Empty(t, n.calls, "no welcome email when the insert fails")
}

func TestCreateProfile_NotificationFailureIsBestEffort(t *testing.T) {
	users := &fakeUserStore{}
	n := &fakeNotifier{err: errors.New("sendgrid returned 401")}
	s, hook := newTestService(t, users, n)

	_, err := s.CreateProfile(context.Background(), models.ProfileRequest{
		Name: "Ada", Email: "ada@example.com", Password: "x",
	})
	require.NoError(t, err)
	assert.Len(t, users.inserted, 1, "insert is kept")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "welcome email failed", entry.Message)
}

func TestCreateProfile_EmailNotConfigured(t *testing.T) {
	users := &fakeUserStore{}
	s, hook := newTestService(t, users, nil)

	_, err := s.CreateProfile(context.Background(), models.ProfileRequest{
		Name: "Ada", Email: "ada@example.com", Password: "x",
	})
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Contains(t, entry.Message, "skipping welcome email")
}
