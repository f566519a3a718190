package projects

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lumoworks/licensing-backend/internal/repo"
	"github.com/lumoworks/licensing-backend/pkg/db/models"
	"github.com/lumoworks/licensing-backend/pkg/pagination"
)

type listQuery struct {
	ownerID uuid.UUID
	limit   int
	cursor  *pagination.Cursor
}

// Repository exposes project persistence operations.
type Repository struct {
	repo.Base
}

// NewRepository constructs a project repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts a new project row.
func (r *Repository) Create(ctx context.Context, project *models.Project) (*models.Project, error) {
	if err := r.DB(ctx).Create(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

// FindByID returns the project row or gorm.ErrRecordNotFound.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := r.DB(ctx).First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List returns owner-scoped projects using cursor pagination.
func (r *Repository) List(ctx context.Context, opts listQuery) ([]models.Project, error) {
	query := r.DB(ctx).Model(&models.Project{}).Where("owner_id = ?", opts.ownerID)

	if opts.cursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", opts.cursor.CreatedAt, opts.cursor.CreatedAt, opts.cursor.ID)
	}

	query = query.Order("created_at DESC").Order("id DESC").Limit(opts.limit)

	var rows []models.Project
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CountByOwner returns how many projects the user currently owns.
func (r *Repository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB(ctx).
		Model(&models.Project{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Update persists changes to an existing project row.
func (r *Repository) Update(ctx context.Context, project *models.Project) error {
	return r.DB(ctx).Save(project).Error
}

// Delete removes the project row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).Delete(&models.Project{}, "id = ?", id).Error
}
