package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"governance-dashboard/internal/status"
	"governance-dashboard/models"
	"governance-dashboard/utils"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:"
	scanBatch        = 100
)

// SessionStore keeps one Redis entry per login so concurrent callers never
// share session state.
type SessionStore struct {
	Redis    *redis.Client
	ttl      time.Duration
	newToken func() (string, error)
}

func NewSessionStore(redisClient *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		Redis: redisClient,
		ttl:   ttl,
		newToken: func() (string, error) {
			return utils.GenerateCode(32)
		},
	}
}

func sessionKey(token string) string {
	return fmt.Sprintf("%s%s", sessionKeyPrefix, token)
}

// Create stores an authenticated session and returns its bearer token.
func (s *SessionStore) Create(ctx context.Context, session *models.Session) (string, error) {
	if !session.IsAuthenticated() {
		return "", status.ErrUnauthenticated
	}

	token, err := s.newToken()
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}

	data, err := json.Marshal(session)
	if err != nil {
		return "", err
	}

	if err := s.Redis.Set(ctx, sessionKey(token), string(data), s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Get resolves a token. Unknown or expired tokens are ErrUnauthenticated.
func (s *SessionStore) Get(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, status.ErrUnauthenticated
	}

	data, err := s.Redis.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, status.ErrUnauthenticated
	} else if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if !session.IsAuthenticated() {
		return nil, status.ErrUnauthenticated
	}
	return &session, nil
}

// Delete is idempotent; deleting an unknown token is not an error.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.Redis.Del(ctx, sessionKey(token)).Err()
}

// Count reports live sessions for the metrics collector. SCAN may repeat a
// key while the keyspace is rehashing, so the figure is approximate.
func (s *SessionStore) Count(ctx context.Context) (int, error) {
	var (
		cursor uint64
		n      int
	)
	for {
		keys, next, err := s.Redis.Scan(ctx, cursor, sessionKeyPrefix+"*", scanBatch).Result()
		if err != nil {
			return 0, err
		}
		n += len(keys)
		cursor = next
		if cursor == 0 {
			return n, nil
		}
	}
}
