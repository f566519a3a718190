package projects

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lumoworks/licensing-backend/pkg/db/models"
	pkgerrors "github.com/lumoworks/licensing-backend/pkg/errors"
	pkgpagination "github.com/lumoworks/licensing-backend/pkg/pagination"
)

type projectsRepository interface {
	Create(ctx context.Context, project *models.Project) (*models.Project, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	List(ctx context.Context, opts listQuery) ([]models.Project, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes project CRUD plus the export/share markers gated upstream
// by the entitlement middleware.
type Service interface {
	CreateProject(ctx context.Context, ownerID uuid.UUID, input CreateProjectInput) (*models.Project, error)
	ListProjects(ctx context.Context, params ListParams) (*ListResult, error)
	UpdateProject(ctx context.Context, ownerID, projectID uuid.UUID, input UpdateProjectInput) (*models.Project, error)
	DeleteProject(ctx context.Context, ownerID, projectID uuid.UUID) error
	ExportProject(ctx context.Context, ownerID, projectID uuid.UUID) (*models.Project, error)
	ShareProject(ctx context.Context, ownerID, projectID uuid.UUID) (*models.Project, error)
	CountProjects(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

type service struct {
	repo projectsRepository
	now  func() time.Time
}

// CreateProjectInput holds the metadata required to create a project.
type CreateProjectInput struct {
	Name        string
	Description *string
	SizeBytes   int64
}

// UpdateProjectInput carries the mutable project fields.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	SizeBytes   *int64
}

// NewService builds a project service backed by the provided repository.
func NewService(repo projectsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("project repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) CreateProject(ctx context.Context, ownerID uuid.UUID, input CreateProjectInput) (*models.Project, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user identity missing")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.SizeBytes < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "size_bytes must not be negative")
	}

	project := &models.Project{
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		SizeBytes:   input.SizeBytes,
	}

	created, err := s.repo.Create(ctx, project)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create project")
	}
	return created, nil
}

func (s *service) ListProjects(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.OwnerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user identity missing")
	}

	limit := pkgpagination.NormalizeLimit(params.Limit)
	query := listQuery{
		ownerID: params.OwnerID,
		limit:   pkgpagination.LimitWithBuffer(params.Limit),
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
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list projects")
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
		items[i] = toListItem(row)
	}

	return &ListResult{
		Items:  items,
		Cursor: nextCursor,
	}, nil
}

func (s *service) UpdateProject(ctx context.Context, ownerID, projectID uuid.UUID, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.findOwned(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		if trimmed == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name must not be empty")
		}
		project.Name = trimmed
	}
	if input.Description != nil {
		project.Description = input.Description
	}
	if input.SizeBytes != nil {
		if *input.SizeBytes < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "size_bytes must not be negative")
		}
		project.SizeBytes = *input.SizeBytes
	}

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update project")
	}
	return project, nil
}

func (s *service) DeleteProject(ctx context.Context, ownerID, projectID uuid.UUID) error {
	if _, err := s.findOwned(ctx, ownerID, projectID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, projectID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete project")
	}
	return nil
}

func (s *service) ExportProject(ctx context.Context, ownerID, projectID uuid.UUID) (*models.Project, error) {
	project, err := s.findOwned(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	project.ExportedAt = &now
	if err := s.repo.Update(ctx, project); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark project exported")
	}
	return project, nil
}

func (s *service) ShareProject(ctx context.Context, ownerID, projectID uuid.UUID) (*models.Project, error) {
	project, err := s.findOwned(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	project.SharedAt = &now
	if err := s.repo.Update(ctx, project); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark project shared")
	}
	return project, nil
}

func (s *service) CountProjects(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	if ownerID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "user identity missing")
	}
	count, err := s.repo.CountByOwner(ctx, ownerID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count projects")
	}
	return count, nil
}

func (s *service) findOwned(ctx context.Context, ownerID, projectID uuid.UUID) (*models.Project, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user identity missing")
	}
	if projectID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "project id is required")
	}

	project, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "project not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup project")
	}
	if project.OwnerID != ownerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "project does not belong to user")
	}
	return project, nil
}
