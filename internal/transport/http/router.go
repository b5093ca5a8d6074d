package httptransport

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"diddht/pkg/platform/httputil"
)

// HealthCheck probes one dependency. A nil error means healthy.
type HealthCheck func(ctx context.Context) error

// NewRouter wires the agent API and the health endpoint.
func NewRouter(h *Handler, checks map[string]HealthCheck) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", healthHandler(checks))
	h.Register(r)
	return r
}

func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(names))
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				results[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}

		body := map[string]any{"status": "ok", "checks": results}
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		httputil.WriteJSON(w, status, body)
	}
}
