package mongo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/singleflight"
)

const defaultTimeout = 10 * time.Second

// ErrClosed is returned by Database after Close.
var ErrClosed = errors.New("mongo: connector closed")

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type dialFunc func(ctx context.Context, cfg Config) (*mongo.Client, error)

// Connector owns the process-wide MongoDB handle. The first successful
// Database call connects; later calls reuse the handle. Concurrent callers
// during the first attempt share it instead of dialing again, and a failed
// attempt is not remembered.
type Connector struct {
	cfg  Config
	dial dialFunc

	mu     sync.RWMutex
	client *mongo.Client
	db     *mongo.Database
	closed bool

	group singleflight.Group
}

func NewConnector(cfg Config) *Connector {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Connector{cfg: cfg, dial: dial}
}

// Database returns the connected database, connecting on first use.
func (c *Connector) Database(ctx context.Context) (*mongo.Database, error) {
	c.mu.RLock()
	db, closed := c.db, c.closed
	c.mu.RUnlock()
	if closed {
		return nil, ErrClosed
	}
	if db != nil {
		return db, nil
	}

	v, err, _ := c.group.Do("connect", func() (any, error) {
		c.mu.RLock()
		if c.db != nil {
			db := c.db
			c.mu.RUnlock()
			return db, nil
		}
		c.mu.RUnlock()

		client, err := c.dial(ctx, c.cfg)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed {
			_ = client.Disconnect(context.Background())
			return nil, ErrClosed
		}
		c.client = client
		c.db = client.Database(c.cfg.Database)
		return c.db, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*mongo.Database), nil
}

// Close disconnects the client if one was established. Safe to call more than once.
func (c *Connector) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if c.client == nil {
		return nil
	}
	return c.client.Disconnect(ctx)
}

// dial establishes a MongoDB client and verifies connectivity with a ping.
func dial(ctx context.Context, cfg Config) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}
