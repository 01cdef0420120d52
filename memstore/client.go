package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/kbukum/syncstream/errors"
	"github.com/kbukum/syncstream/logger"
	"github.com/kbukum/syncstream/publisher"
	"github.com/kbukum/syncstream/subscriber"
)

// Client owns every database of one store.
type Client struct {
	cfg    Config
	log    *logger.Logger
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	dbs    map[string]map[string]*collection
	closed bool
}

// collection is the stored state of one collection, guarded by Client.mu.
type collection struct {
	docs []Document
	ids  map[string]struct{}
}

func newCollection() *collection {
	return &collection{ids: make(map[string]struct{})}
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger. Defaults to the "memstore" component logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient validates cfg and returns an empty store.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		cfg:    cfg,
		ctx:    ctx,
		cancel: cancel,
		dbs:    make(map[string]map[string]*collection),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.Get("memstore")
	}
	c.log = c.log.WithFields(logger.Fields("app", c.cfg.appName()))
	c.log.Debug("client opened")
	return c, nil
}

// Close ends in-flight operations and makes every later one fail with
// UNAVAILABLE.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.cancel()
	c.log.Debug("client closed")
	return nil
}

// Database returns a handle to the named database. Databases exist once
// they hold a collection.
func (c *Client) Database(name string) *Database {
	return &Database{client: c, name: name, log: c.log.WithFields(logger.Fields(logger.FieldDatabase, name))}
}

// ListDatabaseNames emits the names of non-empty databases in sorted order.
func (c *Client) ListDatabaseNames() subscriber.Publisher[string] {
	return run(c, func() ([]string, error) {
		c.mu.RLock()
		defer c.mu.RUnlock()
		names := make([]string, 0, len(c.dbs))
		for name, colls := range c.dbs {
			if len(colls) > 0 {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		return names, nil
	})
}

// run wraps fn as a publisher that executes once per subscription on the
// emitting goroutine, honouring the client's latency and lifetime.
func run[T any](c *Client, fn func() ([]T, error)) subscriber.Publisher[T] {
	return publisher.FromFunc(func(context.Context) ([]T, error) {
		if c.isClosed() {
			return nil, errors.Unavailable("memstore")
		}
		return fn()
	},
		publisher.WithContext(c.ctx),
		publisher.WithDelay(c.cfg.Latency),
		publisher.WithLogger(c.log),
	)
}

func (c *Client) isClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// Database is a named group of collections.
type Database struct {
	client *Client
	name   string
	log    *logger.Logger
}

// Name returns the database name.
func (d *Database) Name() string { return d.name }

// Collection returns a handle to the named collection. It is created on the
// first write.
func (d *Database) Collection(name string) *Collection {
	return &Collection{
		db:   d,
		name: name,
		log:  d.log.WithFields(logger.Fields(logger.FieldCollection, name)),
	}
}

// ListCollectionNames emits collection names in sorted order.
func (d *Database) ListCollectionNames() subscriber.Publisher[string] {
	return run(d.client, func() ([]string, error) {
		d.client.mu.RLock()
		defer d.client.mu.RUnlock()
		colls := d.client.dbs[d.name]
		names := make([]string, 0, len(colls))
		for name := range colls {
			names = append(names, name)
		}
		sort.Strings(names)
		return names, nil
	})
}

// CreateCollection creates an empty collection and completes without
// elements. It fails with ALREADY_EXISTS when the collection exists.
func (d *Database) CreateCollection(name string) subscriber.Publisher[struct{}] {
	return run(d.client, func() ([]struct{}, error) {
		d.client.mu.Lock()
		defer d.client.mu.Unlock()
		colls := d.client.dbs[d.name]
		if _, ok := colls[name]; ok {
			return nil, errors.AlreadyExists("collection", name)
		}
		if colls == nil {
			colls = make(map[string]*collection)
			d.client.dbs[d.name] = colls
		}
		colls[name] = newCollection()
		d.log.Debug("collection created", logger.Fields(logger.FieldCollection, name))
		return nil, nil
	})
}
