package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/echohq/couples-platform/internal/adaptive"
)

// ProfileRepository stores adaptive user profiles as JSONB documents.
// Update serializes writers per user id with a row lock, so concurrent
// session recordings fold into the profile one at a time.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

var _ adaptive.ProfileRepository = (*ProfileRepository)(nil)

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// Get returns a snapshot of the stored profile, or (nil, nil) when the user
// has no profile yet.
func (r *ProfileRepository) Get(ctx context.Context, userID string) (*adaptive.UserProfile, error) {
	var doc []byte
	err := r.pool.QueryRow(ctx,
		`SELECT profile FROM user_profiles WHERE user_id = $1`, userID,
	).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return decodeProfile(doc)
}

// Update applies fn under a row lock, inserting an empty profile row first
// when the user is new.
func (r *ProfileRepository) Update(ctx context.Context, userID string, fn func(*adaptive.UserProfile)) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	empty, err := json.Marshal(adaptive.NewUserProfile())
	if err != nil {
		return fmt.Errorf("encode empty profile: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO user_profiles (user_id, profile) VALUES ($1, $2)
		 ON CONFLICT (user_id) DO NOTHING`, userID, empty,
	); err != nil {
		return fmt.Errorf("ensure profile row: %w", err)
	}

	var doc []byte
	if err := tx.QueryRow(ctx,
		`SELECT profile FROM user_profiles WHERE user_id = $1 FOR UPDATE`, userID,
	).Scan(&doc); err != nil {
		return fmt.Errorf("lock profile: %w", err)
	}

	profile, err := decodeProfile(doc)
	if err != nil {
		return err
	}

	fn(profile)

	updated, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`UPDATE user_profiles SET profile = $2, updated_at = now() WHERE user_id = $1`,
		userID, updated,
	); err != nil {
		return fmt.Errorf("store profile: %w", err)
	}

	return tx.Commit(ctx)
}

func decodeProfile(doc []byte) (*adaptive.UserProfile, error) {
	var profile adaptive.UserProfile
	if err := json.Unmarshal(doc, &profile); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	profile.Normalize()
	return &profile, nil
}
