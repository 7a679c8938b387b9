package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"store_manager/internal/models"
)

var ErrCacheMiss = fmt.Errorf("cache miss")

type Client struct {
	rdb *redis.Client
}

// SessionData is the server-side record of an issued token. Deleting it
// revokes the token before its JWT expiry.
type SessionData struct {
	UserID    uint      `json:"user_id"`
	Role      string    `json:"role"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Session management

func (c *Client) SetSession(tokenID string, data *SessionData, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	return c.rdb.Set(ctx, "session:"+tokenID, jsonData, ttl).Err()
}

func (c *Client) GetSession(tokenID string) (*SessionData, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "session:"+tokenID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session SessionData
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	return &session, nil
}

func (c *Client) DeleteSession(tokenID string) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, "session:"+tokenID).Err()
}

// Product caching. Balances are never cached here: they are recomputed on
// every read by design.

func (c *Client) SetProduct(product *models.Product, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
	}

	key := fmt.Sprintf("product:%d", product.ID)
	return c.rdb.Set(ctx, key, jsonData, ttl).Err()
}

func (c *Client) GetProduct(productID uint) (*models.Product, error) {
	ctx := context.Background()
	key := fmt.Sprintf("product:%d", productID)
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get product from cache: %w", err)
	}

	var product models.Product
	if err := json.Unmarshal([]byte(val), &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}

	return &product, nil
}

func (c *Client) InvalidateProduct(productID uint) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, fmt.Sprintf("product:%d", productID)).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
