package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/HITECHSERVICE25/inventory-backend/internal/models"
	"github.com/go-redis/redis/v8"
)

// Client caches read-heavy catalog data. Cached values are advisory:
// every settlement recomputes from the database inside its transaction.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

func Initialize(redisURL string, cacheTTL int) (*Client, error) {
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

	return &Client{rdb: rdb, ttl: time.Duration(cacheTTL) * time.Second}, nil
}

const currentChargeKey = "installation_charge:current"

// Current installation charge caching
func (c *Client) SetCurrentCharge(charge *models.InstallationCharge) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(charge)
	if err != nil {
		return fmt.Errorf("failed to marshal installation charge: %w", err)
	}
	return c.rdb.Set(ctx, currentChargeKey, jsonData, c.ttl).Err()
}

func (c *Client) GetCurrentCharge() (*models.InstallationCharge, bool) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, currentChargeKey).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Failed to read cached installation charge: %v", err)
		}
		return nil, false
	}

	var charge models.InstallationCharge
	if err := json.Unmarshal([]byte(val), &charge); err != nil {
		log.Printf("Failed to unmarshal cached installation charge: %v", err)
		return nil, false
	}
	return &charge, true
}

func (c *Client) InvalidateCurrentCharge() {
	ctx := context.Background()
	if err := c.rdb.Del(ctx, currentChargeKey).Err(); err != nil {
		log.Printf("Failed to invalidate installation charge cache: %v", err)
	}
}

// Product caching
func (c *Client) SetProduct(product *models.Product) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
	}
	key := fmt.Sprintf("product:%d", product.ID)
	return c.rdb.Set(ctx, key, jsonData, c.ttl).Err()
}

func (c *Client) GetProduct(productID uint) (*models.Product, bool) {
	ctx := context.Background()
	key := fmt.Sprintf("product:%d", productID)
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Failed to read cached product %d: %v", productID, err)
		}
		return nil, false
	}

	var product models.Product
	if err := json.Unmarshal([]byte(val), &product); err != nil {
		log.Printf("Failed to unmarshal cached product %d: %v", productID, err)
		return nil, false
	}
	return &product, true
}

func (c *Client) InvalidateProduct(productID uint) {
	ctx := context.Background()
	key := fmt.Sprintf("product:%d", productID)
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		log.Printf("Failed to invalidate product cache %d: %v", productID, err)
	}
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
