package memstore

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/kbukum/syncstream/component"
	"github.com/kbukum/syncstream/logger"
	"github.com/kbukum/syncstream/subscriber"
)

// healthTimeout bounds the ping issued by Health.
const healthTimeout = time.Second

// Component wraps a Client for lifecycle management.
type Component struct {
	cfg    Config
	opts   []Option
	client *Client
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// NewComponent creates a store component. The client is opened on Start.
func NewComponent(cfg Config, opts ...Option) *Component {
	return &Component{cfg: cfg, opts: opts}
}

// Client returns the underlying client, or nil if not started.
func (c *Component) Client() *Client { return c.client }

// Name returns the component name.
func (c *Component) Name() string { return "memstore" }

// Start opens the client.
func (c *Component) Start(_ context.Context) error {
	client, err := NewClient(c.cfg, c.opts...)
	if err != nil {
		return fmt.Errorf("memstore start: %w", err)
	}
	c.client = client
	return nil
}

// Stop closes the client.
func (c *Component) Stop(_ context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Health lists databases through the client and reports whether the listing
// completed.
func (c *Component) Health(ctx context.Context) component.Health {
	if c.client == nil {
		return component.Health{
			Name:    c.Name(),
			Status:  component.StatusUnhealthy,
			Message: "memstore not started",
		}
	}

	op := subscriber.NewOperation[string](
		subscriber.WithName("health"),
		subscriber.WithLogger(logger.NewNop()),
	)
	c.client.ListDatabaseNames().Subscribe(op)
	names, err := op.GetContext(ctx, healthTimeout)
	if err != nil {
		return component.Health{
			Name:    c.Name(),
			Status:  component.StatusUnhealthy,
			Message: err.Error(),
		}
	}
	return component.Health{
		Name:    c.Name(),
		Status:  component.StatusHealthy,
		Message: fmt.Sprintf("%d databases", len(names)),
	}
}

// Describe reports the store host without credentials.
func (c *Component) Describe() component.Description {
	details := Scheme + "://"
	if u, err := url.Parse(c.cfg.URI); err == nil {
		details += u.Host
	}
	if c.cfg.Latency > 0 {
		details += " latency=" + c.cfg.Latency.String()
	}
	return component.Description{Name: "Memstore", Type: "store", Details: details}
}
