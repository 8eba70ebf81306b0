package handler

import (
	"github.com/realtyhub/listing-api/internal/core/domain"
	"github.com/realtyhub/listing-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateHomeInput(req createHomeRequest) ports.CreateHomeInput {
	urls := make([]string, 0, len(req.Images))
	for _, img := range req.Images {
		urls = append(urls, img.URL)
	}
	return ports.CreateHomeInput{
		Price:        req.Price,
		City:         req.City,
		State:        req.State,
		Zip:          req.Zip,
		PropertyType: domain.PropertyType(req.PropertyType),
		Sqft:         req.Sqft,
		Beds:         req.Beds,
		Baths:        req.Baths,
		ImageURLs:    urls,
	}
}

func toHomeUpdate(req updateHomeRequest) ports.HomeUpdate {
	u := ports.HomeUpdate{
		Price: req.Price,
		City:  req.City,
		State: req.State,
		Zip:   req.Zip,
		Sqft:  req.Sqft,
		Beds:  req.Beds,
		Baths: req.Baths,
	}
	if req.PropertyType != nil {
		pt := domain.PropertyType(*req.PropertyType)
		u.PropertyType = &pt
	}
	return u
}

func toHomeFilter(q listHomesQuery) ports.HomeFilter {
	return ports.HomeFilter{
		City:         q.City,
		MinPrice:     q.MinPrice,
		MaxPrice:     q.MaxPrice,
		Beds:         q.Beds,
		Baths:        q.Baths,
		PropertyType: domain.PropertyType(q.PropertyType),
		Page:         q.Page,
		Limit:        q.Limit,
	}
}

// --- Service result → HTTP response ---

func homeLinksFor(id string) homeLinks {
	return homeLinks{
		Self:     "/home/" + id,
		Messages: "/home/" + id + "/messages",
	}
}

func toHomeResponse(h *domain.Home) homeResponse {
	images := make([]imageResponse, len(h.Images))
	for i, img := range h.Images {
		images[i] = imageResponse{URL: img.URL}
	}
	return homeResponse{
		ID:           h.ID,
		Price:        h.Price,
		City:         h.City,
		State:        h.State,
		Zip:          h.Zip,
		PropertyType: string(h.PropertyType),
		Sqft:         h.Sqft,
		Beds:         h.Beds,
		Baths:        h.Baths,
		Images:       images,
		RealtorID:    h.RealtorID,
		ListedDate:   h.ListedDate.UTC(),
		UpdatedAt:    h.UpdatedAt.UTC(),
		Links:        homeLinksFor(h.ID),
	}
}

func toHomeSummary(h *domain.Home) homeSummaryResponse {
	s := homeSummaryResponse{
		ID:           h.ID,
		Price:        h.Price,
		City:         h.City,
		State:        h.State,
		Zip:          h.Zip,
		PropertyType: string(h.PropertyType),
		Sqft:         h.Sqft,
		Beds:         h.Beds,
		Baths:        h.Baths,
		RealtorID:    h.RealtorID,
		ListedDate:   h.ListedDate.UTC(),
		Links:        homeLinksFor(h.ID),
	}
	if len(h.Images) > 0 {
		s.Image = h.Images[0].URL
	}
	return s
}

func toHomeSummaries(homes []*domain.Home) []homeSummaryResponse {
	out := make([]homeSummaryResponse, len(homes))
	for i, h := range homes {
		out[i] = toHomeSummary(h)
	}
	return out
}

func toMessageResponse(v ports.InquiryView) messageResponse {
	return messageResponse{
		ID:      v.Message.ID,
		Message: v.Message.Body,
		HomeID:  v.Message.HomeID,
		Buyer: buyerResponse{
			ID:    v.Message.BuyerID,
			Name:  v.BuyerName,
			Email: v.BuyerEmail,
			Phone: v.BuyerPhone,
		},
		CreatedAt: v.Message.CreatedAt.UTC(),
	}
}
