// Package bootstrap runs a command through a uniform lifecycle:
// start components, run hooks and configuration callbacks, check
// readiness, execute a finite task, then shut down in reverse order.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterComponent(memstore.NewComponent(cfg.Store))
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    return walkthrough.New(client, cfg.Walkthrough).Run(ctx)
//	})
//
// SIGINT and SIGTERM cancel the task context.
package bootstrap
