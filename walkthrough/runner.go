package walkthrough

import (
	"context"

	"github.com/kbukum/syncstream/logger"
	"github.com/kbukum/syncstream/memstore"
	"github.com/kbukum/syncstream/subscriber"
)

// Runner executes sessions against one client.
type Runner struct {
	client *memstore.Client
	cfg    Config
	log    *logger.Logger
	sopts  []subscriber.Option
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger. Defaults to the "walkthrough" component logger.
func WithLogger(l *logger.Logger) Option {
	return func(r *Runner) { r.log = l }
}

// WithSubscriberOptions applies opts to every subscriber the runner builds.
func WithSubscriberOptions(opts ...subscriber.Option) Option {
	return func(r *Runner) { r.sopts = append(r.sopts, opts...) }
}

// New creates a Runner.
func New(client *memstore.Client, cfg Config, opts ...Option) *Runner {
	cfg.ApplyDefaults()
	r := &Runner{client: client, cfg: cfg}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.Get("walkthrough")
	}
	return r
}

// Run executes every session in order: find, insert, update and replace,
// delete, then upsert. It stops at the first session that cannot continue.
func (r *Runner) Run(ctx context.Context) error {
	sessions := []struct {
		name string
		run  func(context.Context) error
	}{
		{"find", r.RunFind},
		{"insert", r.RunInsert},
		{"update and replace", r.RunUpdate},
		{"delete", r.RunDelete},
		{"upsert", r.RunUpsert},
	}
	for _, s := range sessions {
		r.log.Info("Beginning " + s.name + " operations...")
		if err := s.run(ctx); err != nil {
			r.log.Error("session aborted", logger.ErrorFields(s.name, err))
			return err
		}
		r.log.Info("Ending " + s.name + " operations.")
	}
	return nil
}

func (r *Runner) collection(t Target) *memstore.Collection {
	return r.client.Database(t.DB).Collection(t.Collection)
}

// options returns the subscriber options for one step.
func (r *Runner) options(name string) []subscriber.Option {
	opts := []subscriber.Option{subscriber.WithName(name)}
	if r.cfg.Timeout > 0 {
		opts = append(opts, subscriber.WithTimeout(r.cfg.Timeout))
	}
	return append(opts, r.sopts...)
}

// targetLog returns the logger annotated with t.
func (r *Runner) targetLog(t Target) *logger.Logger {
	return r.log.WithFields(logger.Fields(
		logger.FieldDatabase, t.DB,
		logger.FieldCollection, t.Collection,
	))
}

// await runs one operation on a fresh Operation subscriber and returns its
// elements.
func await[T any](ctx context.Context, r *Runner, name string, p subscriber.Publisher[T]) ([]T, error) {
	op := subscriber.NewOperation[T](r.options(name)...)
	p.Subscribe(op)
	return op.GetContext(ctx, 0)
}

// awaitFirst is await for single-result operations.
func awaitFirst[T any](ctx context.Context, r *Runner, name string, p subscriber.Publisher[T]) (T, bool, error) {
	op := subscriber.NewOperation[T](r.options(name)...)
	p.Subscribe(op)
	return op.FirstContext(ctx, 0)
}

// PrintAll streams every document of t to the log as it arrives.
func (r *Runner) PrintAll(ctx context.Context, t Target) error {
	log := r.targetLog(t)
	printer := subscriber.NewPrinter[memstore.Document](log, r.options("print-all")...)
	r.collection(t).Find(nil).Subscribe(printer)

	if err := printer.AwaitContext(ctx, 0); err != nil {
		log.Error("printing documents failed", logger.ErrorFields("find", err))
		return err
	}
	log.Info("printed documents", logger.Fields(logger.FieldElements, len(printer.Received())))
	return nil
}
