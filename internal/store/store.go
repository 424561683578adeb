package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/shire-forum/shire/internal/database"
	"github.com/shire-forum/shire/internal/models"
)

// ErrUsernameTaken is returned when signup collides with an existing username
var ErrUsernameTaken = errors.New("username taken")

// Store runs the forum's parameterized queries against the relational store
type Store struct {
	db *database.DB
}

// New creates a store backed by db
func New(db *database.DB) *Store {
	return &Store{db: db}
}

// FindUserByUsername looks up a user by exact, case-sensitive username
func (s *Store) FindUserByUsername(ctx context.Context, username string) (models.User, bool, error) {
	var u models.User
	found, err := s.db.QueryOne(ctx, func(row database.Scanner) error {
		return row.Scan(&u.ID, &u.Username, &u.PwHash, &u.Race, &u.Class, &u.Gender)
	}, `SELECT user_id, username, pw_hash, race, class, gender FROM "user" WHERE username = ?`, username)
	if err != nil {
		return models.User{}, false, fmt.Errorf("find user %q: %w", username, err)
	}
	return u, found, nil
}

// CreateUser inserts a new user. Username uniqueness is enforced by the
// store's constraint and surfaces as ErrUsernameTaken.
func (s *Store) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	_, err := s.db.QueryOne(ctx, func(row database.Scanner) error {
		return row.Scan(&u.ID)
	}, `INSERT INTO "user" (username, pw_hash, race, class, gender)
		VALUES (?, ?, ?, ?, ?)
		RETURNING user_id`,
		u.Username, u.PwHash, u.Race, u.Class, u.Gender)
	if errors.Is(err, database.ErrConflict) {
		return models.User{}, fmt.Errorf("%w: %w", ErrUsernameTaken, err)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("create user %q: %w", u.Username, err)
	}
	return u, nil
}

// ListUsernames returns every username in signup order
func (s *Store) ListUsernames(ctx context.Context) ([]string, error) {
	names := []string{}
	err := s.db.QueryAll(ctx, func(row database.Scanner) error {
		var name string
		if err := row.Scan(&name); err != nil {
			return err
		}
		names = append(names, name)
		return nil
	}, `SELECT username FROM "user" ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("list usernames: %w", err)
	}
	return names, nil
}
