package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lumoworks/licensing-backend/api/controllers"
	"github.com/lumoworks/licensing-backend/api/middleware"
	"github.com/lumoworks/licensing-backend/internal/audit"
	"github.com/lumoworks/licensing-backend/internal/entitlement"
	"github.com/lumoworks/licensing-backend/internal/projects"
	"github.com/lumoworks/licensing-backend/pkg/config"
	"github.com/lumoworks/licensing-backend/pkg/enums"
	"github.com/lumoworks/licensing-backend/pkg/logger"
)

// Pinger is the readiness contract the router needs from backing stores.
type Pinger = controllers.Pinger

// RouterParams collects everything the HTTP surface depends on.
type RouterParams struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       Pinger
	Redis    Pinger
	Resolver entitlement.Resolver
	Quotas   *entitlement.QuotaEnforcer
	Recorder entitlement.Recorder
	Guard    middleware.Guard
	Projects projects.Service
	Audit    audit.Service
}

func NewRouter(p RouterParams) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(p.Logger),
		middleware.RequestID(p.Logger),
		middleware.Logging(p.Logger),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(p.Config))
		r.Get("/ready", controllers.HealthReady(p.Config, p.Logger, p.DB, p.Redis))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(p.Config.JWT, p.Logger))
		r.Use(middleware.LicenseContext(p.Resolver, p.Config.Entitlement, p.Recorder, p.Logger))

		r.Route("/v1/license", func(r chi.Router) {
			r.Get("/validate", controllers.LicenseValidate(p.Logger))
		})

		r.Route("/v1/projects", func(r chi.Router) {
			r.Get("/", controllers.ProjectList(p.Projects, p.Logger))
			r.With(
				middleware.RequireOperation(enums.ProjectOperationCreate, p.Guard),
				middleware.EnforceProjectQuota(p.Quotas, p.Guard),
			).Post("/", controllers.ProjectCreate(p.Projects, p.Quotas, p.Guard, p.Logger))

			r.Route("/{projectId}", func(r chi.Router) {
				r.With(middleware.RequireOperation(enums.ProjectOperationEdit, p.Guard)).
					Patch("/", controllers.ProjectUpdate(p.Projects, p.Quotas, p.Guard, p.Logger))
				r.With(middleware.RequireOperation(enums.ProjectOperationDelete, p.Guard)).
					Delete("/", controllers.ProjectDelete(p.Projects, p.Logger))
				r.With(middleware.RequireOperation(enums.ProjectOperationExport, p.Guard)).
					Post("/export", controllers.ProjectExport(p.Projects, p.Logger))
				r.With(middleware.RequireOperation(enums.ProjectOperationShare, p.Guard)).
					Post("/share", controllers.ProjectShare(p.Projects, p.Logger))
			})
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.Auth(p.Config.JWT, p.Logger))
		r.Use(middleware.RequireRole("admin", p.Logger))
		r.Route("/v1/audit", func(r chi.Router) {
			r.Get("/", controllers.AdminAuditList(p.Audit, p.Logger))
		})
	})

	return r
}
