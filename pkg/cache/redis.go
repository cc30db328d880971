package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache wraps a redis client with JSON value encoding.
type Cache struct {
	client *redis.Client
}

type Options struct {
	Address     string
	Password    string
	DB          int
	DialTimeout time.Duration
}

type Option func(*Options)

func WithAddress(addr string) Option {
	return func(o *Options) {
		o.Address = addr
	}
}

func WithPassword(pass string) Option {
	return func(o *Options) {
		o.Password = pass
	}
}

func WithDB(db int) Option {
	return func(o *Options) {
		o.DB = db
	}
}

func WithDialTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.DialTimeout = d
	}
}

// New connects to redis and verifies the connection with a ping.
func New(ctx context.Context, opts ...Option) (*Cache, error) {
	options := &Options{
		Address:     "localhost:6379",
		Password:    "",
		DB:          0,
		DialTimeout: 5 * time.Second,
	}

	for _, opt := range opts {
		opt(options)
	}

	client := redis.NewClient(&redis.Options{
		Addr:        options.Address,
		Password:    options.Password,
		DB:          options.DB,
		DialTimeout: options.DialTimeout,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, err
	}

	return &Cache{client: client}, nil
}

// Get unmarshals the value stored under key into dest. A missing key
// returns redis.Nil.
func (c *Cache) Get(ctx context.Context, key string, dest any) error {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

// Set stores the value under key as JSON with the given expiration.
func (c *Cache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, expiration).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}
