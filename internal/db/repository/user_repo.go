package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// User is an account row. PasswordHash is null for OAuth-only accounts and
// PartnerID is null until the couple is linked.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash pgtype.Text
	DisplayName  string
	PartnerID    pgtype.UUID
	Metadata     []byte
	CreatedAt    time.Time
	LastLoginAt  pgtype.Timestamptz
}

// CreateUserParams carries the insertable fields of a new account.
type CreateUserParams struct {
	Email        string
	PasswordHash pgtype.Text
	DisplayName  string
	Metadata     []byte
}

// UserRepository exposes typed DB operations required by auth flows.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, email, password_hash, display_name, partner_id, metadata, created_at, last_login_at`

// Create inserts a new account and returns the stored row.
func (r *UserRepository) Create(ctx context.Context, params CreateUserParams) (User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash, display_name, metadata)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		uuid.New(), params.Email, params.PasswordHash, params.DisplayName, params.Metadata,
	)
	return scanUser(row)
}

// GetByEmail fetches a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// GetByID fetches a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, userID uuid.UUID) (User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID)
	return scanUser(row)
}

// UpdateLastLogin records the last login timestamp.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET last_login_at = now() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

// LinkPartner sets the partner reference on both accounts in one transaction.
func (r *UserRepository) LinkPartner(ctx context.Context, userID, partnerID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE users SET partner_id = $2 WHERE id = $1`, userID, partnerID); err != nil {
		return fmt.Errorf("link partner: %w", err)
	}
	if _, err := tx.Exec(ctx, `UPDATE users SET partner_id = $2 WHERE id = $1`, partnerID, userID); err != nil {
		return fmt.Errorf("link partner: %w", err)
	}

	return tx.Commit(ctx)
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.PartnerID, &u.Metadata, &u.CreatedAt, &u.LastLoginAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}
