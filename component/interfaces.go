package component

import "context"

// HealthStatus is the outcome of a component health probe.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	StatusDegraded  HealthStatus = "degraded"
)

// Health is what a probe reports. Message carries the failure, or a short
// summary such as "3 databases".
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Component is something a command opens before its task runs and closes
// afterwards: the store client, a telemetry exporter.
type Component interface {
	// Name identifies the component in the registry and in log lines.
	Name() string
	// Start opens the component. A failure aborts the command.
	Start(ctx context.Context) error
	// Stop closes the component. ctx carries the stop deadline.
	Stop(ctx context.Context) error
	// Health probes a started component.
	Health(ctx context.Context) Health
}

// Description is logged when a component starts.
type Description struct {
	// Name is the display name. Empty means Name().
	Name string
	// Type is the kind of component, for example "store".
	Type string
	// Details must not contain credentials, e.g. "memstore://localhost latency=5ms".
	Details string
}

// Describable components report a Description in the startup log.
type Describable interface {
	Describe() Description
}
