// Package httpserver runs an http.Handler with configured timeouts and a
// graceful shutdown bound to a context.
//
//	srv := httpserver.New(cfg, router, log)
//	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	if err := srv.Run(ctx); err != nil {
//		return err
//	}
//
// Liveness and Readiness provide probe handlers; readiness checks are
// typically redis.Healthcheck or pg.Healthcheck bound to a client.
package httpserver
