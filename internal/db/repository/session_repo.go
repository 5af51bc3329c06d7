package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/echohq/couples-platform/internal/adaptive"
)

// SessionRepository stores couple session history as an append-only table
// keyed by canonical couple key.
type SessionRepository struct {
	pool *pgxpool.Pool
}

var _ adaptive.HistoryRepository = (*SessionRepository)(nil)

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// Append stores one session record for the couple.
func (r *SessionRepository) Append(ctx context.Context, coupleKey string, session adaptive.CoupleSession) error {
	doc, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if _, err := r.pool.Exec(ctx,
		`INSERT INTO couple_sessions (couple_key, recorded_at, session) VALUES ($1, $2, $3)`,
		coupleKey, session.Timestamp, doc,
	); err != nil {
		return fmt.Errorf("append session: %w", err)
	}
	return nil
}

// Recent returns up to limit sessions in chronological order, newest last.
func (r *SessionRepository) Recent(ctx context.Context, coupleKey string, limit int) ([]adaptive.CoupleSession, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT session FROM couple_sessions WHERE couple_key = $1 ORDER BY id DESC LIMIT $2`,
		coupleKey, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent sessions: %w", err)
	}
	defer rows.Close()

	var newestFirst []adaptive.CoupleSession
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		var session adaptive.CoupleSession
		if err := json.Unmarshal(doc, &session); err != nil {
			return nil, fmt.Errorf("decode session: %w", err)
		}
		newestFirst = append(newestFirst, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recent sessions: %w", err)
	}

	// Reverse into chronological order.
	out := make([]adaptive.CoupleSession, len(newestFirst))
	for i, session := range newestFirst {
		out[len(newestFirst)-1-i] = session
	}
	return out, nil
}
