package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base is the shared foundation embedded by the domain repositories. It owns
// the GORM handle and binds request contexts so cancellation and lookup
// timeouts propagate into every query.
type Base struct {
	db *gorm.DB
}

// NewBase wraps the provided GORM connection.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the connection bound to the supplied context, or the raw handle
// when no context is given.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}
