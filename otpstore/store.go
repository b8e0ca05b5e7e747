// Package otpstore holds pending signups keyed by email until the OTP is
// verified. Entries expire; multiple signups may be in flight at once.
package otpstore

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"urbanease-api/models"

	"github.com/go-redis/redis/v8"
)

// PendingSignup is everything needed to create the account once the
// emailed code is confirmed. The password is already hashed.
type PendingSignup struct {
	Username     string          `json:"username"`
	Phone        string          `json:"phone"`
	Email        string          `json:"email"`
	PasswordHash string          `json:"password_hash"`
	Role         models.UserRole `json:"role"`
	OTP          string          `json:"otp"`
}

type Store interface {
	Put(ctx context.Context, email string, pending PendingSignup, ttl time.Duration) error
	Get(ctx context.Context, email string) (PendingSignup, bool, error)
	Delete(ctx context.Context, email string) error
}

// New returns a redis-backed store when REDIS_ADDR is set, else an
// in-process one.
func New() Store {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		return &redisStore{client: client}
	}
	return NewMemoryStore()
}

// ── In-memory store ─────────────────────────────────────────────────────────

type memoryEntry struct {
	pending   PendingSignup
	expiresAt time.Time
}

type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Put(_ context.Context, email string, pending PendingSignup, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Opportunistic sweep keeps the map from accumulating dead signups.
	now := time.Now()
	for k, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, k)
		}
	}
	s.entries[email] = memoryEntry{pending: pending, expiresAt: now.Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, email string) (PendingSignup, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[email]
	if !ok || time.Now().After(e.expiresAt) {
		delete(s.entries, email)
		return PendingSignup{}, false, nil
	}
	return e.pending, true, nil
}

func (s *MemoryStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, email)
	return nil
}

// ── Redis store ─────────────────────────────────────────────────────────────

type redisStore struct {
	client *redis.Client
}

func (s *redisStore) key(email string) string {
	return "urbanease:pending-signup:" + email
}

func (s *redisStore) Put(ctx context.Context, email string, pending PendingSignup, ttl time.Duration) error {
	payload, err := json.Marshal(pending)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(email), payload, ttl).Err()
}

func (s *redisStore) Get(ctx context.Context, email string) (PendingSignup, bool, error) {
	raw, err := s.client.Get(ctx, s.key(email)).Bytes()
	if err == redis.Nil {
		return PendingSignup{}, false, nil
	}
	if err != nil {
		return PendingSignup{}, false, err
	}
	var pending PendingSignup
	if err := json.Unmarshal(raw, &pending); err != nil {
		return PendingSignup{}, false, err
	}
	return pending, true, nil
}

func (s *redisStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, s.key(email)).Err()
}
