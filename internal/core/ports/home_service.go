package ports

import (
	"context"

	"github.com/realtyhub/listing-api/internal/core/domain"
)

// CreateHomeInput carries a new listing.
type CreateHomeInput struct {
	Price        int64
	City         string
	State        string
	Zip          string
	PropertyType domain.PropertyType
	Sqft         int
	Beds         int
	Baths        int
	ImageURLs    []string
}

// InquiryView is a message enriched with the buyer's contact details.
type InquiryView struct {
	Message    *domain.Message
	BuyerName  string
	BuyerEmail string
	BuyerPhone string
}

// HomeService defines listing use cases. Mutating calls take the caller's
// identity and enforce ownership themselves.
type HomeService interface {
	ListHomes(ctx context.Context, f HomeFilter) ([]*domain.Home, error)
	GetHome(ctx context.Context, id string) (*domain.Home, error)
	SearchHomes(ctx context.Context, query string) ([]*domain.Home, error)
	ListRealtorHomes(ctx context.Context, realtorID string) ([]*domain.Home, error)
	CreateHome(ctx context.Context, in CreateHomeInput, caller domain.Identity) (*domain.Home, error)
	UpdateHome(ctx context.Context, id string, u HomeUpdate, caller domain.Identity) (*domain.Home, error)
	DeleteHome(ctx context.Context, id string, caller domain.Identity) error
	Inquire(ctx context.Context, homeID, body string, caller domain.Identity) (*domain.Message, error)
	Messages(ctx context.Context, homeID string, caller domain.Identity) ([]InquiryView, error)
}
