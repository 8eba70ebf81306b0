package ports

import (
	"context"

	"github.com/realtyhub/listing-api/internal/core/domain"
)

// HomeFilter narrows a listing query. Zero values mean "no constraint".
type HomeFilter struct {
	City         string
	MinPrice     int64
	MaxPrice     int64
	Beds         int
	Baths        int
	PropertyType domain.PropertyType
	RealtorID    string
	Page         int // 1-based
	Limit        int
}

// Page size bounds applied to every listing query.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Normalized returns f with Page and Limit clamped to their bounds.
func (f HomeFilter) Normalized() HomeFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
	return f
}

// HomeUpdate holds the fields of a partial update; nil means unchanged.
type HomeUpdate struct {
	Price        *int64
	City         *string
	State        *string
	Zip          *string
	PropertyType *domain.PropertyType
	Sqft         *int
	Beds         *int
	Baths        *int
}

// Empty reports whether the update changes nothing.
func (u HomeUpdate) Empty() bool {
	return u.Price == nil && u.City == nil && u.State == nil && u.Zip == nil &&
		u.PropertyType == nil && u.Sqft == nil && u.Beds == nil && u.Baths == nil
}

// HomeRepository persists listings.
type HomeRepository interface {
	Create(ctx context.Context, h *domain.Home) error
	FindByID(ctx context.Context, id string) (*domain.Home, error)
	List(ctx context.Context, f HomeFilter) ([]*domain.Home, error)
	Search(ctx context.Context, query string, limit int) ([]*domain.Home, error)
	Update(ctx context.Context, id string, u HomeUpdate) (*domain.Home, error)
	Delete(ctx context.Context, id string) error
}

// MessageRepository persists buyer inquiries.
type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) error
	ListByHome(ctx context.Context, homeID string) ([]*domain.Message, error)
	DeleteByHome(ctx context.Context, homeID string) error
}
