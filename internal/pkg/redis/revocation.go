package redis

import (
	"Portfolio/internal/pkg/consts"
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore 登出令牌黑名单，key 为 JWT 签名段
type RevocationStore struct {
	rdb *redis.Client
}

func NewRevocationStore(rdb *redis.Client) *RevocationStore {
	return &RevocationStore{rdb: rdb}
}

// Revoke 拉黑签名直到令牌自然过期
func (s *RevocationStore) Revoke(ctx context.Context, signature string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, consts.TokenRevokedKey+signature, 1, ttl).Err()
}

// IsRevoked 判断签名是否已拉黑
func (s *RevocationStore) IsRevoked(ctx context.Context, signature string) (bool, error) {
	_, err := s.rdb.Get(ctx, consts.TokenRevokedKey+signature).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
