package controllers

import (
	"context"
	"net/http"

	"github.com/lumoworks/licensing-backend/api/responses"
	"github.com/lumoworks/licensing-backend/pkg/config"
	"github.com/lumoworks/licensing-backend/pkg/logger"
)

const envHeader = "X-Licensing-Env"

// Pinger is the readiness contract a backing store must satisfy.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness by pinging the backing stores. Any failed
// dependency turns the response into a 503 with per-dependency status.
func HealthReady(cfg *config.Config, logg *logger.Logger, db, redis Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		status := http.StatusOK
		checks := map[string]string{}
		for name, dep := range map[string]Pinger{"database": db, "redis": redis} {
			if dep == nil {
				checks[name] = "not configured"
				continue
			}
			if err := dep.Ping(r.Context()); err != nil {
				checks[name] = "unavailable"
				status = http.StatusServiceUnavailable
				if logg != nil {
					logg.Error(r.Context(), "readiness check failed: "+name, err)
				}
				continue
			}
			checks[name] = "ok"
		}

		state := "ready"
		if status != http.StatusOK {
			state = "degraded"
		}
		responses.WriteSuccessStatus(w, status, map[string]any{
			"status": state,
			"checks": checks,
		})
	}
}
