package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lumoworks/licensing-backend/api/middleware"
	"github.com/lumoworks/licensing-backend/api/responses"
	"github.com/lumoworks/licensing-backend/api/validators"
	"github.com/lumoworks/licensing-backend/internal/entitlement"
	"github.com/lumoworks/licensing-backend/internal/projects"
	"github.com/lumoworks/licensing-backend/pkg/db/models"
	pkgerrors "github.com/lumoworks/licensing-backend/pkg/errors"
	"github.com/lumoworks/licensing-backend/pkg/logger"
	"github.com/lumoworks/licensing-backend/pkg/pagination"
)

const maxProjectNameLen = 200

type projectCreateRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description *string `json:"description,omitempty"`
	SizeBytes   int64   `json:"size_bytes" validate:"min=0"`
}

type projectUpdateRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Description *string `json:"description,omitempty"`
	SizeBytes   *int64  `json:"size_bytes,omitempty" validate:"omitempty,min=0"`
}

type projectResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	SizeBytes   int64      `json:"size_bytes"`
	SharedAt    *time.Time `json:"shared_at,omitempty"`
	ExportedAt  *time.Time `json:"exported_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toProjectResponse(p *models.Project) projectResponse {
	return projectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		SizeBytes:   p.SizeBytes,
		SharedAt:    p.SharedAt,
		ExportedAt:  p.ExportedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ownerFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return id, nil
}

// declaredSize returns the larger of the body-declared size and the
// transport-level content length, so an understated size_bytes cannot slip
// an oversized payload past the file-size ceiling.
func declaredSize(r *http.Request, bodySize int64) int64 {
	if r.ContentLength > bodySize {
		return r.ContentLength
	}
	return bodySize
}

func projectIDFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "projectId")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid project id")
	}
	return id, nil
}

// ProjectCreate handles project creation. The declared payload size is
// checked against the caller's file size ceiling before the row is written;
// the project count ceiling is enforced by middleware on the route.
func ProjectCreate(svc projects.Service, quotas *entitlement.QuotaEnforcer, guard middleware.Guard, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ownerFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req projectCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lc, _ := middleware.LicenseFromContext(r.Context())
		if quotas != nil {
			if decision := quotas.CheckFileSize(declaredSize(r, req.SizeBytes), lc); !decision.Allowed {
				guard.Deny(w, r, lc, decision)
				return
			}
		}

		project, err := svc.CreateProject(r.Context(), ownerID, projects.CreateProjectInput{
			Name:        validators.SanitizeString(req.Name, maxProjectNameLen),
			Description: req.Description,
			SizeBytes:   req.SizeBytes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toProjectResponse(project))
	}
}

func ProjectList(svc projects.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ownerFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListProjects(r.Context(), projects.ListParams{
			OwnerID: ownerID,
			Limit:   limit,
			Cursor:  r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func ProjectUpdate(svc projects.Service, quotas *entitlement.QuotaEnforcer, guard middleware.Guard, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ownerFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		projectID, err := projectIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req projectUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if quotas != nil {
			var bodySize int64
			if req.SizeBytes != nil {
				bodySize = *req.SizeBytes
			}
			lc, _ := middleware.LicenseFromContext(r.Context())
			if decision := quotas.CheckFileSize(declaredSize(r, bodySize), lc); !decision.Allowed {
				guard.Deny(w, r, lc, decision)
				return
			}
		}

		project, err := svc.UpdateProject(r.Context(), ownerID, projectID, projects.UpdateProjectInput{
			Name:        req.Name,
			Description: req.Description,
			SizeBytes:   req.SizeBytes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toProjectResponse(project))
	}
}

func ProjectDelete(svc projects.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ownerFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		projectID, err := projectIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProject(r.Context(), ownerID, projectID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func ProjectExport(svc projects.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ownerFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		projectID, err := projectIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		project, err := svc.ExportProject(r.Context(), ownerID, projectID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toProjectResponse(project))
	}
}

func ProjectShare(svc projects.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ownerFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		projectID, err := projectIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		project, err := svc.ShareProject(r.Context(), ownerID, projectID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toProjectResponse(project))
	}
}
