package handler

import "time"

// --- Request types ---

type imageRequest struct {
	URL string `json:"url" validate:"required"`
}

type createHomeRequest struct {
	Price        int64          `json:"price"         validate:"required,gt=0"`
	City         string         `json:"city"          validate:"required"`
	State        string         `json:"state"         validate:"required"`
	Zip          string         `json:"zip"           validate:"required"`
	PropertyType string         `json:"propertyType"  validate:"required,oneof=RESIDENTIAL CONDO"`
	Sqft         int            `json:"sqft"          validate:"required,gt=0"`
	Beds         int            `json:"beds"          validate:"required,gt=0"`
	Baths        int            `json:"baths"         validate:"required,gt=0"`
	Images       []imageRequest `json:"images"        validate:"dive"`
}

// updateHomeRequest uses pointers so absent fields stay untouched.
type updateHomeRequest struct {
	Price        *int64  `json:"price"         validate:"omitempty,gt=0"`
	City         *string `json:"city"          validate:"omitempty,min=1"`
	State        *string `json:"state"         validate:"omitempty,min=1"`
	Zip          *string `json:"zip"           validate:"omitempty,min=1"`
	PropertyType *string `json:"propertyType"  validate:"omitempty,oneof=RESIDENTIAL CONDO"`
	Sqft         *int    `json:"sqft"          validate:"omitempty,gt=0"`
	Beds         *int    `json:"beds"          validate:"omitempty,gt=0"`
	Baths        *int    `json:"baths"         validate:"omitempty,gt=0"`
}

// listHomesQuery binds GET /home query parameters.
type listHomesQuery struct {
	City         string `query:"city"`
	MinPrice     int64  `query:"minPrice"     validate:"gte=0"`
	MaxPrice     int64  `query:"maxPrice"     validate:"gte=0"`
	Beds         int    `query:"beds"         validate:"gte=0"`
	Baths        int    `query:"baths"        validate:"gte=0"`
	PropertyType string `query:"propertyType" validate:"omitempty,oneof=RESIDENTIAL CONDO"`
	Page         int    `query:"page"         validate:"gte=0"`
	Limit        int    `query:"limit"        validate:"gte=0"`
}

type inquireRequest struct {
	Message string `json:"message" validate:"required"`
}

// --- Response types ---

type homeLinks struct {
	Self     string `json:"self"`
	Messages string `json:"messages"`
}

// homeSummaryResponse is the list item; it carries only the cover image.
type homeSummaryResponse struct {
	ID           string    `json:"id"`
	Price        int64     `json:"price"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Zip          string    `json:"zip"`
	PropertyType string    `json:"propertyType"`
	Sqft         int       `json:"sqft"`
	Beds         int       `json:"beds"`
	Baths        int       `json:"baths"`
	Image        string    `json:"image,omitempty"`
	RealtorID    string    `json:"realtor_id"`
	ListedDate   time.Time `json:"listed_date"`
	Links        homeLinks `json:"_links"`
}

type imageResponse struct {
	URL string `json:"url"`
}

type homeResponse struct {
	ID           string          `json:"id"`
	Price        int64           `json:"price"`
	City         string          `json:"city"`
	State        string          `json:"state"`
	Zip          string          `json:"zip"`
	PropertyType string          `json:"propertyType"`
	Sqft         int             `json:"sqft"`
	Beds         int             `json:"beds"`
	Baths        int             `json:"baths"`
	Images       []imageResponse `json:"images"`
	RealtorID    string          `json:"realtor_id"`
	ListedDate   time.Time       `json:"listed_date"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Links        homeLinks       `json:"_links"`
}

type paginationResponse struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Count int `json:"count"`
}

type listHomesResponse struct {
	Data       []homeSummaryResponse `json:"data"`
	Pagination *paginationResponse   `json:"pagination,omitempty"`
}

type buyerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type messageResponse struct {
	ID        string        `json:"id"`
	Message   string        `json:"message"`
	HomeID    string        `json:"home_id"`
	Buyer     buyerResponse `json:"buyer"`
	CreatedAt time.Time     `json:"created_at"`
}

type listMessagesResponse struct {
	Data []messageResponse `json:"data"`
}
