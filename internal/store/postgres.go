package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/crossroads/apparel-backend/internal/models"
)

// DBTX is the subset of *pgxpool.Pool the store uses.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore handles users and login events against PostgreSQL.
// Every method is a single statement; nothing spans a transaction.
type PostgresStore struct {
	db DBTX
}

func NewPostgresStore(db DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

// InsertUser writes a new user row and sets u.ID. A duplicate email fails
// on the table's UNIQUE constraint.
func (s *PostgresStore) InsertUser(ctx context.Context, u *models.User) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO users (name, email, joined, profile_pic, password)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		u.Name, u.Email, u.Joined, u.ProfilePic, u.PasswordHash,
	).Scan(&u.ID)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindUserByEmail returns the user with exactly this email, or
// models.ErrNotFound.
func (s *PostgresStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRow(ctx,
		`SELECT id, name, email, COALESCE(joined, ''), profile_pic, password
		 FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Joined, &u.ProfilePic, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

// InsertLoginEvent records a successful login and sets ev.ID and
// ev.LoginTime from the stored row.
func (s *PostgresStore) InsertLoginEvent(ctx context.Context, ev *models.LoginEvent) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO logins (user_email) VALUES ($1) RETURNING id, login_time`,
		ev.UserEmail,
	).Scan(&ev.ID, &ev.LoginTime)
	if err != nil {
		return fmt.Errorf("insert login event: %w", err)
	}
	return nil
}

// Ping performs a trivial round trip to the database.
func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `SELECT NOW()`)
	return err
}
