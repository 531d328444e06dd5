package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"entryledger/internal/identity"
)

// HealthChecker reports whether a backing component is reachable.
type HealthChecker func(ctx context.Context) error

// RouterDeps collects everything the router wires together.
type RouterDeps struct {
	Tokens     identity.TokenValidator
	Authorizer *Authorizer
	Operator   *OperatorHandler
	Supervisor *SupervisorHandler
	Auditor    *AuditorHandler
	Admin      *AdminHandler
	Logger     *slog.Logger

	// Health holds named component checks; nil entries are skipped.
	Health map[string]HealthChecker
}

// NewRouter wires all endpoints. Everything under /api/v1 requires a valid
// bearer token; each route additionally enforces its scope.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", handleHealth(deps.Health))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(identity.RequireAuth(deps.Tokens, deps.Logger))
		deps.Operator.Register(api, deps.Authorizer)
		deps.Supervisor.Register(api, deps.Authorizer)
		deps.Auditor.Register(api, deps.Authorizer)
		deps.Admin.Register(api, deps.Authorizer)
	})

	return r
}

func handleHealth(checks map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		status := http.StatusOK
		components := make(map[string]string, len(checks))
		for name, check := range checks {
			if check == nil {
				continue
			}
			if err := check(ctx); err != nil {
				components[name] = "unhealthy"
				status = http.StatusServiceUnavailable
				continue
			}
			components[name] = "healthy"
		}

		state := "healthy"
		if status != http.StatusOK {
			state = "degraded"
		}
		writeJSON(w, status, map[string]any{
			"status":     state,
			"components": components,
		})
	}
}
