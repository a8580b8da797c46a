package security

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalid = errors.New("token invalid or expired")
	ErrTokenRevoked = errors.New("token revoked")
)

// RevocationStore 已登出令牌的存储
type RevocationStore interface {
	Revoke(ctx context.Context, signature string, ttl time.Duration) error
	IsRevoked(ctx context.Context, signature string) (bool, error)
}

// TokenManager 签发与校验 HS256 会话令牌
type TokenManager struct {
	secret  []byte
	issuer  string
	expiry  time.Duration
	revoked RevocationStore
	now     func() time.Time
}

func NewTokenManager(secret, issuer string, expiry time.Duration, revoked RevocationStore) *TokenManager {
	return &TokenManager{
		secret:  []byte(secret),
		issuer:  issuer,
		expiry:  expiry,
		revoked: revoked,
		now:     time.Now,
	}
}

// GenerateToken 生成一个新的会话令牌，返回令牌与过期时间
func (m *TokenManager) GenerateToken(userID, email, name string, roles []string) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.expiry)

	claims := &UserClaims{
		UserID: userID,
		Email:  email,
		Name:   name,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.issuer,
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// ParseToken 只校验签名与有效期
func (m *TokenManager) ParseToken(tokenString string) (*UserClaims, error) {
	claims := &UserClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer), jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// ValidateToken 校验签名、有效期以及是否已登出
func (m *TokenManager) ValidateToken(ctx context.Context, tokenString string) (*UserClaims, error) {
	claims, err := m.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}
	if m.revoked == nil {
		return claims, nil
	}

	signature, err := ExtractSignature(tokenString)
	if err != nil {
		return nil, err
	}
	revoked, err := m.revoked.IsRevoked(ctx, signature)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// RevokeToken 将令牌拉黑至其过期时间
func (m *TokenManager) RevokeToken(ctx context.Context, tokenString string) error {
	claims, err := m.ParseToken(tokenString)
	if err != nil {
		return err
	}
	if m.revoked == nil {
		return nil
	}
	signature, err := ExtractSignature(tokenString)
	if err != nil {
		return err
	}
	return m.revoked.Revoke(ctx, signature, claims.ExpiresAt.Sub(m.now()))
}

// ExtractSignature 从 Token 字符串中提取签名
func ExtractSignature(tokenString string) (string, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return "", ErrTokenInvalid
	}
	return parts[2], nil
}
