// Command syncstream-demo runs the store walkthroughs through blocking
// subscribers.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/kbukum/syncstream/bootstrap"
	"github.com/kbukum/syncstream/config"
	"github.com/kbukum/syncstream/logger"
	"github.com/kbukum/syncstream/memstore"
	"github.com/kbukum/syncstream/observability"
	"github.com/kbukum/syncstream/resilience"
	"github.com/kbukum/syncstream/subscriber"
	"github.com/kbukum/syncstream/walkthrough"
)

const serviceName = "syncstream-demo"

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := &DemoConfig{}
	if err := config.LoadConfig(serviceName, cfg); err != nil {
		return err
	}

	uri, err := expandStoreURI(cfg)
	if err != nil {
		return fmt.Errorf("store uri: %w", err)
	}
	cfg.Store.URI = uri.Value

	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return err
	}

	for name, level := range cfg.LogLevels {
		lc := cfg.Logger
		lc.Level = level
		logger.Register(name, logger.New(&lc, cfg.Name).WithComponent(name))
	}

	store := memstore.NewComponent(cfg.Store, memstore.WithLogger(logger.Get("memstore")))
	if err := app.RegisterComponent(store); err != nil {
		return err
	}

	var runner *walkthrough.Runner
	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*DemoConfig]) error {
		sopts := []subscriber.Option{subscriber.FromConfig(a.Cfg.Subscriber)}
		if a.Cfg.Telemetry.Enabled {
			if err := initTelemetry(ctx, a); err != nil {
				return err
			}
			metrics, err := observability.NewStreamMetrics(observability.Meter(serviceName))
			if err != nil {
				return err
			}
			sopts = append(sopts, subscriber.WithMetrics(metrics))
		}

		a.Logger.Info("Connecting to", logger.Fields("uri", uri.Loggable))
		names, err := resilience.Resubscribe(ctx, a.Cfg.Retry, store.Client().ListDatabaseNames, sopts...)
		if err != nil {
			return fmt.Errorf("store unreachable: %w", err)
		}
		a.Logger.Debug("Store reachable", logger.Fields("databases", len(names)))

		runner = walkthrough.New(store.Client(), a.Cfg.Walkthrough,
			walkthrough.WithLogger(logger.Get("walkthrough")),
			walkthrough.WithSubscriberOptions(sopts...),
		)
		return nil
	})
	app.OnStop(func(ctx context.Context) error {
		app.Logger.Info("Disconnected from", logger.Fields("uri", uri.Loggable))
		return nil
	})

	return app.RunTask(ctx, func(ctx context.Context) error {
		app.Logger.Info("Beginning MongoDb-style demo")
		defer app.Logger.Info("Ending MongoDb-style demo")
		return runner.Run(ctx)
	})
}

// expandStoreURI fills the store.uri placeholders from the secrets file, or
// from the environment (which LoadConfig seeds from .env) when none is set.
func expandStoreURI(cfg *DemoConfig) (config.SecretURI, error) {
	if cfg.SecretsFile != "" {
		return config.ExpandSecretsFile(cfg.Store.URI, cfg.SecretsFile, nil)
	}
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return config.ExpandSecrets(cfg.Store.URI, env)
}

// initTelemetry starts the OTLP tracer and meter providers and shuts them
// down when the app stops.
func initTelemetry(ctx context.Context, a *bootstrap.App[*DemoConfig]) error {
	tcfg := observability.DefaultTracerConfig(a.Name)
	tcfg.ServiceVersion = a.Version
	tcfg.Environment = a.Cfg.Environment
	tcfg.Endpoint = a.Cfg.Telemetry.Endpoint
	tcfg.Insecure = a.Cfg.Telemetry.Insecure
	tcfg.SampleRate = a.Cfg.Telemetry.SampleRate
	tp, err := observability.InitTracer(ctx, tcfg)
	if err != nil {
		return err
	}

	mcfg := observability.DefaultMeterConfig(a.Name)
	mcfg.ServiceVersion = a.Version
	mcfg.Environment = a.Cfg.Environment
	mcfg.Endpoint = a.Cfg.Telemetry.Endpoint
	mcfg.Insecure = a.Cfg.Telemetry.Insecure
	mcfg.Interval = a.Cfg.Telemetry.Interval
	mp, err := observability.InitMeter(ctx, &mcfg)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return err
	}

	a.OnStop(func(ctx context.Context) error {
		if err := mp.Shutdown(ctx); err != nil {
			a.Logger.Warn("meter shutdown failed", logger.Fields(logger.FieldError, err.Error()))
		}
		return tp.Shutdown(ctx)
	})
	a.Logger.Info("Telemetry enabled", logger.Fields("endpoint", tcfg.Endpoint))
	return nil
}
