package httpserver

import (
	"context"
	"log/slog"
	"maps"
	"net/http"
	"slices"

	"github.com/dmitrymomot/restkit/pkg/logger"
)

// Check reports whether a dependency is usable.
type Check func(ctx context.Context) error

// Liveness answers 200 "ALIVE" while the process serves requests.
func Liveness() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ALIVE"))
	}
}

// Readiness runs every check in name order and answers 200 "READY", or 503
// "NOT_READY" at the first failure.
func Readiness(log *slog.Logger, checks map[string]Check) http.HandlerFunc {
	names := slices.Sorted(maps.Keys(checks))
	return func(w http.ResponseWriter, r *http.Request) {
		for _, name := range names {
			if err := checks[name](r.Context()); err != nil {
				log.WarnContext(r.Context(), "readiness check failed",
					logger.Component(name), logger.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
