package projects

import (
	"time"

	"github.com/google/uuid"

	"github.com/lumoworks/licensing-backend/pkg/db/models"
)

// ListParams carries the inputs for a paginated project listing.
type ListParams struct {
	OwnerID uuid.UUID
	Limit   int
	Cursor  string
}

// ListItem is the API-facing shape of a project row.
type ListItem struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	SizeBytes   int64      `json:"size_bytes"`
	SharedAt    *time.Time `json:"shared_at,omitempty"`
	ExportedAt  *time.Time `json:"exported_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ListResult bundles a page of projects with the next cursor.
type ListResult struct {
	Items  []ListItem `json:"items"`
	Cursor string     `json:"cursor,omitempty"`
}

func toListItem(row models.Project) ListItem {
	return ListItem{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		SizeBytes:   row.SizeBytes,
		SharedAt:    row.SharedAt,
		ExportedAt:  row.ExportedAt,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
