package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationList is the cross-instance session revocation store backed
// by Redis. Keys expire with the token they revoke, so the list never
// grows beyond one TTL window.
// Key format: revoked:<session_id>
type RevocationList struct {
	client *redis.Client
}

// NewRevocationList creates a RevocationList wrapping the given Redis client.
func NewRevocationList(client *redis.Client) *RevocationList {
	return &RevocationList{client: client}
}

// Revoke marks the session as revoked until ttl elapses.
func (l *RevocationList) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	return l.client.Set(ctx, l.key(sessionID), "1", ttl).Err()
}

// IsRevoked reports whether the session appears on the revocation list.
func (l *RevocationList) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	n, err := l.client.Exists(ctx, l.key(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func (l *RevocationList) key(sessionID string) string {
	return fmt.Sprintf("revoked:%s", sessionID)
}
