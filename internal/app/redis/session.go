package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"Admin-Console/internal/app/ds"
)

const (
	// Префиксы для ключей Redis
	blacklistPrefix = "console:blacklist:"
	sessionPrefix   = "console:session:"
)

// tokenKey - токены не хранятся в Redis в открытом виде
func tokenKey(prefix, token string) string {
	sum := sha256.Sum256([]byte(token))
	return prefix + hex.EncodeToString(sum[:])
}

// AddToBlacklist добавляет токен в черный список
func (c *Client) AddToBlacklist(ctx context.Context, token string, expiresIn time.Duration) error {
	return c.Set(ctx, tokenKey(blacklistPrefix, token), "blacklisted", expiresIn)
}

// IsInBlacklist проверяет, находится ли токен в черном списке
func (c *Client) IsInBlacklist(ctx context.Context, token string) (bool, error) {
	exists, err := c.Exists(ctx, tokenKey(blacklistPrefix, token))
	if err != nil {
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}
	return exists, nil
}

// SaveSession кэширует данные /auth/info для токена
func (c *Client) SaveSession(ctx context.Context, token string, data *ds.SessionData, expiresIn time.Duration) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return c.Set(ctx, tokenKey(sessionPrefix, token), payload, expiresIn)
}

// GetSession возвращает кэшированные данные сессии или ErrNotFound
func (c *Client) GetSession(ctx context.Context, token string) (*ds.SessionData, error) {
	raw, err := c.Get(ctx, tokenKey(sessionPrefix, token))
	if err != nil {
		return nil, err
	}
	var data ds.SessionData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &data, nil
}

// DeleteSession удаляет кэш сессии
func (c *Client) DeleteSession(ctx context.Context, token string) error {
	return c.Delete(ctx, tokenKey(sessionPrefix, token))
}
