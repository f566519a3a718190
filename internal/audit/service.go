package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lumoworks/licensing-backend/pkg/db/models"
	"github.com/lumoworks/licensing-backend/pkg/enums"
	pkgerrors "github.com/lumoworks/licensing-backend/pkg/errors"
	pkgpagination "github.com/lumoworks/licensing-backend/pkg/pagination"
)

type auditRepository interface {
	Insert(ctx context.Context, event *models.AuditEvent) error
	List(ctx context.Context, opts listQuery) ([]models.AuditEvent, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// ListParams carries the admin review query inputs.
type ListParams struct {
	UserID uuid.UUID
	Kind   string
	Limit  int
	Cursor string
}

// ListItem is the API-facing shape of an audit event.
type ListItem struct {
	ID          uuid.UUID            `json:"id"`
	UserID      uuid.UUID            `json:"user_id"`
	Kind        string               `json:"kind"`
	LicenseType enums.LicenseType    `json:"license_type"`
	Valid       bool                 `json:"valid"`
	Operation   *string              `json:"operation,omitempty"`
	Violation   *enums.ViolationKind `json:"violation,omitempty"`
	Path        string               `json:"path"`
	CreatedAt   time.Time            `json:"created_at"`
}

// ListResult bundles a page of events with the next cursor.
type ListResult struct {
	Items  []ListItem `json:"items"`
	Cursor string     `json:"cursor,omitempty"`
}

// Service exposes audit event review and retention operations.
type Service interface {
	ListEvents(ctx context.Context, params ListParams) (*ListResult, error)
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type service struct {
	repo auditRepository
}

// NewService builds an audit service backed by the provided repository.
func NewService(repo auditRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("audit repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListEvents(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.Kind != "" && params.Kind != models.AuditKindValidation && params.Kind != models.AuditKindViolation {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid kind filter")
	}

	limit := pkgpagination.NormalizeLimit(params.Limit)
	query := listQuery{
		userID: params.UserID,
		kind:   params.Kind,
		limit:  pkgpagination.LimitWithBuffer(params.Limit),
	}
	if params.Cursor != "" {
		cursor, err := pkgpagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.cursor = cursor
	}

	rows, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list audit events")
	}

	nextCursor := ""
	if len(rows) > limit {
		nextCursor = pkgpagination.EncodeCursor(pkgpagination.Cursor{
			CreatedAt: rows[limit].CreatedAt,
			ID:        rows[limit].ID,
		})
		rows = rows[:limit]
	}

	items := make([]ListItem, len(rows))
	for i, row := range rows {
		items[i] = ListItem{
			ID:          row.ID,
			UserID:      row.UserID,
			Kind:        row.Kind,
			LicenseType: row.LicenseType,
			Valid:       row.Valid,
			Operation:   row.Operation,
			Violation:   row.Violation,
			Path:        row.Path,
			CreatedAt:   row.CreatedAt,
		}
	}

	return &ListResult{Items: items, Cursor: nextCursor}, nil
}

func (s *service) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	deleted, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "purge audit events")
	}
	return deleted, nil
}
