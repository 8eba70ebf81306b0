package domain

import "time"

// PropertyType classifies a listing.
type PropertyType string

const (
	PropertyResidential PropertyType = "RESIDENTIAL"
	PropertyCondo       PropertyType = "CONDO"
)

// Valid reports whether p is a known property type.
func (p PropertyType) Valid() bool {
	return p == PropertyResidential || p == PropertyCondo
}

// Image is a photo attached to a listing.
type Image struct {
	URL string `json:"url" bson:"url"`
}

// Home is a property listing owned by a realtor.
type Home struct {
	ID           string       `json:"id" bson:"_id"`
	Price        int64        `json:"price" bson:"price"`
	City         string       `json:"city" bson:"city"`
	State        string       `json:"state" bson:"state"`
	Zip          string       `json:"zip" bson:"zip"`
	PropertyType PropertyType `json:"property_type" bson:"property_type"`
	Sqft         int          `json:"sqft" bson:"sqft"`
	Beds         int          `json:"beds" bson:"beds"`
	Baths        int          `json:"baths" bson:"baths"`
	Images       []Image      `json:"images" bson:"images"`
	RealtorID    string       `json:"realtor_id" bson:"realtor_id"`
	ListedDate   time.Time    `json:"listed_date" bson:"listed_date"`
	CreatedAt    time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" bson:"updated_at"`
}

// OwnedBy reports whether the listing belongs to the given realtor.
func (h *Home) OwnedBy(realtorID string) bool {
	return realtorID != "" && h.RealtorID == realtorID
}

// Message is a buyer inquiry about a listing.
type Message struct {
	ID        string    `json:"id" bson:"_id"`
	Body      string    `json:"message" bson:"message"`
	HomeID    string    `json:"home_id" bson:"home_id"`
	BuyerID   string    `json:"buyer_id" bson:"buyer_id"`
	RealtorID string    `json:"realtor_id" bson:"realtor_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
