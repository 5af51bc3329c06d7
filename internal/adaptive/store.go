package adaptive

import (
	"context"
	"sync"
)

// ProfileRepository provides keyed access to accumulated user profiles.
// Implementations must serialize Update calls per user id; Get returns a
// snapshot that later mutations do not touch. A missing profile is (nil, nil),
// never an error.
type ProfileRepository interface {
	Get(ctx context.Context, userID string) (*UserProfile, error)
	// Update applies fn to the stored profile atomically, creating a fresh
	// profile first if none exists.
	Update(ctx context.Context, userID string, fn func(*UserProfile)) error
}

// HistoryRepository stores couple session history keyed by couple key.
type HistoryRepository interface {
	Append(ctx context.Context, coupleKey string, session CoupleSession) error
	// Recent returns up to limit sessions in chronological order, newest last.
	Recent(ctx context.Context, coupleKey string, limit int) ([]CoupleSession, error)
}

// MemoryProfileStore is the in-process ProfileRepository. Each user id gets
// its own mutex so updates to one profile never block another.
type MemoryProfileStore struct {
	mu       sync.Mutex
	profiles map[string]*UserProfile
	locks    map[string]*sync.Mutex
}

var _ ProfileRepository = (*MemoryProfileStore)(nil)

func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{
		profiles: make(map[string]*UserProfile),
		locks:    make(map[string]*sync.Mutex),
	}
}

func (s *MemoryProfileStore) keyLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}

func (s *MemoryProfileStore) Get(_ context.Context, userID string) (*UserProfile, error) {
	lock := s.keyLock(userID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	profile := s.profiles[userID]
	s.mu.Unlock()
	return profile.Clone(), nil
}

func (s *MemoryProfileStore) Update(_ context.Context, userID string, fn func(*UserProfile)) error {
	lock := s.keyLock(userID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	profile, ok := s.profiles[userID]
	s.mu.Unlock()
	if !ok {
		profile = NewUserProfile()
	}

	fn(profile)

	s.mu.Lock()
	s.profiles[userID] = profile
	s.mu.Unlock()
	return nil
}

// MemoryHistoryStore is the in-process HistoryRepository.
type MemoryHistoryStore struct {
	mu       sync.Mutex
	sessions map[string][]CoupleSession
}

var _ HistoryRepository = (*MemoryHistoryStore)(nil)

func NewMemoryHistoryStore() *MemoryHistoryStore {
	return &MemoryHistoryStore{sessions: make(map[string][]CoupleSession)}
}

func (s *MemoryHistoryStore) Append(_ context.Context, coupleKey string, session CoupleSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[coupleKey] = append(s.sessions[coupleKey], session)
	return nil
}

func (s *MemoryHistoryStore) Recent(_ context.Context, coupleKey string, limit int) ([]CoupleSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.sessions[coupleKey]
	if limit <= 0 || len(all) == 0 {
		return nil, nil
	}
	start := len(all) - limit
	if start < 0 {
		start = 0
	}
	out := make([]CoupleSession, len(all)-start)
	copy(out, all[start:])
	return out, nil
}
