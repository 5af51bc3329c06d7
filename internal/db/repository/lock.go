package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/echohq/couples-platform/internal/adaptive"
)

const profileLockTTL = 10 * time.Second

// ProfileLocker takes short distributed locks on profile keys so concurrent
// session recordings across instances queue instead of interleaving.
type ProfileLocker struct {
	redis  *redis.Client
	logger zerolog.Logger
}

func NewProfileLocker(redis *redis.Client, logger zerolog.Logger) *ProfileLocker {
	return &ProfileLocker{redis: redis, logger: logger}
}

// Lock acquires the per-user lock, retrying until the context expires.
// Returns an unlock function that releases only the lock this call took.
func (l *ProfileLocker) Lock(ctx context.Context, userID string) (func() error, error) {
	key := fmt.Sprintf("profile:lock:%s", userID)
	lockValue := uuid.New().String()

	for {
		acquired, err := l.redis.SetNX(ctx, key, lockValue, profileLockTTL).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock: %w", err)
		}
		if acquired {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}

	unlock := func() error {
		// Lua script ensures we only delete our own lock
		script := `
			if redis.call("get", KEYS[1]) == ARGV[1] then
				return redis.call("del", KEYS[1])
			else
				return 0
			end
		`
		return l.redis.Eval(ctx, script, []string{key}, lockValue).Err()
	}

	return unlock, nil
}

// LockedProfileRepository wraps Update in a distributed lock so multi-instance
// deployments serialize profile writes before hitting the row lock. Get stays
// lock-free since it returns a snapshot.
type LockedProfileRepository struct {
	*ProfileRepository
	locker *ProfileLocker
}

var _ adaptive.ProfileRepository = (*LockedProfileRepository)(nil)

func NewLockedProfileRepository(repo *ProfileRepository, locker *ProfileLocker) *LockedProfileRepository {
	return &LockedProfileRepository{ProfileRepository: repo, locker: locker}
}

func (r *LockedProfileRepository) Update(ctx context.Context, userID string, fn func(*adaptive.UserProfile)) error {
	unlock, err := r.locker.Lock(ctx, userID)
	if err != nil {
		return err
	}
	defer func() {
		if err := unlock(); err != nil {
			r.locker.logger.Warn().Err(err).Str("user_id", userID).Msg("release profile lock failed")
		}
	}()

	return r.ProfileRepository.Update(ctx, userID, fn)
}
