package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/lumoworks/licensing-backend/api/responses"
	"github.com/lumoworks/licensing-backend/api/validators"
	"github.com/lumoworks/licensing-backend/internal/audit"
	pkgerrors "github.com/lumoworks/licensing-backend/pkg/errors"
	"github.com/lumoworks/licensing-backend/pkg/logger"
	"github.com/lumoworks/licensing-backend/pkg/pagination"
)

// AdminAuditList exposes the validation/violation trail for review. Admin
// only; filters by user and event kind.
func AdminAuditList(svc audit.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := audit.ListParams{
			Kind:   strings.TrimSpace(r.URL.Query().Get("kind")),
			Cursor: r.URL.Query().Get("cursor"),
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("userId")); raw != "" {
			userID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid userId filter"))
				return
			}
			params.UserID = userID
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params.Limit = limit

		result, err := svc.ListEvents(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
