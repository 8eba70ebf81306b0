package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/realtyhub/listing-api/internal/core/domain"
	"github.com/realtyhub/listing-api/internal/core/ports"
)

const homeID = "6f1c2b1e-3d4a-4f5b-8c9d-0e1f2a3b4c5d"

var realtor = &domain.Identity{SubjectID: "2a7e7c1c-1111-4a2b-9c3d-4e5f6a7b8c9d", Name: "Rex", Role: domain.RoleRealtor}

type stubHomeService struct {
	listFn     func(ctx context.Context, f ports.HomeFilter) ([]*domain.Home, error)
	getFn      func(ctx context.Context, id string) (*domain.Home, error)
	searchFn   func(ctx context.Context, q string) ([]*domain.Home, error)
	realtorFn  func(ctx context.Context, id string) ([]*domain.Home, error)
	createFn   func(ctx context.Context, in ports.CreateHomeInput, caller domain.Identity) (*domain.Home, error)
	updateFn   func(ctx context.Context, id string, u ports.HomeUpdate, caller domain.Identity) (*domain.Home, error)
	deleteFn   func(ctx context.Context, id string, caller domain.Identity) error
	inquireFn  func(ctx context.Context, id, body string, caller domain.Identity) (*domain.Message, error)
	messagesFn func(ctx context.Context, id string, caller domain.Identity) ([]ports.InquiryView, error)
}

func (s *stubHomeService) ListHomes(ctx context.Context, f ports.HomeFilter) ([]*domain.Home, error) {
	return s.listFn(ctx, f)
}

func (s *stubHomeService) GetHome(ctx context.Context, id string) (*domain.Home, error) {
	return s.getFn(ctx, id)
}

func (s *stubHomeService) SearchHomes(ctx context.Context, q string) ([]*domain.Home, error) {
	return s.searchFn(ctx, q)
}

func (s *stubHomeService) ListRealtorHomes(ctx context.Context, id string) ([]*domain.Home, error) {
	return s.realtorFn(ctx, id)
}

func (s *stubHomeService) CreateHome(ctx context.Context, in ports.CreateHomeInput, caller domain.Identity) (*domain.Home, error) {
	return s.createFn(ctx, in, caller)
}

func (s *stubHomeService) UpdateHome(ctx context.Context, id string, u ports.HomeUpdate, caller domain.Identity) (*domain.Home, error) {
	return s.updateFn(ctx, id, u, caller)
}

func (s *stubHomeService) DeleteHome(ctx context.Context, id string, caller domain.Identity) error {
	return s.deleteFn(ctx, id, caller)
}

func (s *stubHomeService) Inquire(ctx context.Context, id, body string, caller domain.Identity) (*domain.Message, error) {
	return s.inquireFn(ctx, id, body, caller)
}

func (s *stubHomeService) Messages(ctx context.Context, id string, caller domain.Identity) ([]ports.InquiryView, error) {
	return s.messagesFn(ctx, id, caller)
}

func sampleHome() *domain.Home {
	return &domain.Home{
		ID:           homeID,
		Price:        450000,
		City:         "Toronto",
		State:        "ON",
		Zip:          "M5V",
		PropertyType: domain.PropertyCondo,
		Sqft:         900,
		Beds:         2,
		Baths:        1,
		Images:       []domain.Image{{URL: "https://img/1.jpg"}, {URL: "https://img/2.jpg"}},
		RealtorID:    realtor.SubjectID,
		ListedDate:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestHomeHandler_List_BindsFiltersAndReturnsCoverImage(t *testing.T) {
	stub := &stubHomeService{
		listFn: func(_ context.Context, f ports.HomeFilter) ([]*domain.Home, error) {
			if f.City != "Toronto" || f.MinPrice != 100 || f.MaxPrice != 500000 || f.Beds != 2 || f.PropertyType != domain.PropertyCondo {
				t.Fatalf("unexpected filter: %+v", f)
			}
			if f.Page != 2 || f.Limit != ports.MaxPageSize {
				t.Fatalf("expected normalized paging, got page=%d limit=%d", f.Page, f.Limit)
			}
			return []*domain.Home{sampleHome()}, nil
		},
	}
	h := NewHomeHandler(stub)

	c, rec := newJSONContext(http.MethodGet, "/home?city=Toronto&minPrice=100&maxPrice=500000&beds=2&propertyType=CONDO&page=2&limit=500", "", nil)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp listHomesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].Image != "https://img/1.jpg" {
		t.Fatalf("unexpected data: %+v", resp.Data)
	}
	if resp.Pagination == nil || resp.Pagination.Limit != ports.MaxPageSize || resp.Pagination.Count != 1 {
		t.Fatalf("unexpected pagination: %+v", resp.Pagination)
	}
}

func TestHomeHandler_List_RejectsBadQuery(t *testing.T) {
	stub := &stubHomeService{
		listFn: func(context.Context, ports.HomeFilter) ([]*domain.Home, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewHomeHandler(stub)

	for _, target := range []string{"/home?minPrice=abc", "/home?propertyType=CASTLE", "/home?beds=-1"} {
		c, _ := newJSONContext(http.MethodGet, target, "", nil)
		if code := httpCode(t, h.List(c)); code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, code)
		}
	}
}

func TestHomeHandler_Get(t *testing.T) {
	stub := &stubHomeService{
		getFn: func(_ context.Context, id string) (*domain.Home, error) {
			if id != homeID {
				return nil, domain.ErrHomeNotFound
			}
			return sampleHome(), nil
		},
	}
	h := NewHomeHandler(stub)

	c, rec := newJSONContext(http.MethodGet, "/home/"+homeID, "", nil)
	c.SetParamNames("id")
	c.SetParamValues(homeID)
	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp homeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Images) != 2 || resp.Links.Self != "/home/"+homeID {
		t.Fatalf("unexpected payload: %+v", resp)
	}

	other := "00000000-0000-4000-8000-000000000000"
	c, _ = newJSONContext(http.MethodGet, "/home/"+other, "", nil)
	c.SetParamNames("id")
	c.SetParamValues(other)
	if err := h.Get(c); !errors.Is(err, domain.ErrHomeNotFound) {
		t.Fatalf("expected ErrHomeNotFound, got %v", err)
	}
}

func TestHomeHandler_RejectsNonUUID(t *testing.T) {
	h := NewHomeHandler(&stubHomeService{})

	c, _ := newJSONContext(http.MethodGet, "/home/42", "", nil)
	c.SetParamNames("id")
	c.SetParamValues("42")
	if code := httpCode(t, h.Get(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestHomeHandler_Create(t *testing.T) {
	stub := &stubHomeService{
		createFn: func(_ context.Context, in ports.CreateHomeInput, caller domain.Identity) (*domain.Home, error) {
			if caller.SubjectID != realtor.SubjectID {
				t.Fatalf("unexpected caller %+v", caller)
			}
			if in.PropertyType != domain.PropertyCondo || len(in.ImageURLs) != 1 {
				t.Fatalf("unexpected input %+v", in)
			}
			return sampleHome(), nil
		},
	}
	h := NewHomeHandler(stub)

	body := `{"price":450000,"city":"Toronto","state":"ON","zip":"M5V","propertyType":"CONDO","sqft":900,"beds":2,"baths":1,"images":[{"url":"https://img/1.jpg"}]}`
	c, rec := newJSONContext(http.MethodPost, "/home", body, realtor)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestHomeHandler_Create_Validation(t *testing.T) {
	stub := &stubHomeService{
		createFn: func(context.Context, ports.CreateHomeInput, domain.Identity) (*domain.Home, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewHomeHandler(stub)

	cases := map[string]string{
		"zero price":    `{"price":0,"city":"T","state":"ON","zip":"M","propertyType":"CONDO","sqft":1,"beds":1,"baths":1}`,
		"bad type":      `{"price":1,"city":"T","state":"ON","zip":"M","propertyType":"CASTLE","sqft":1,"beds":1,"baths":1}`,
		"missing city":  `{"price":1,"state":"ON","zip":"M","propertyType":"CONDO","sqft":1,"beds":1,"baths":1}`,
		"empty img url": `{"price":1,"city":"T","state":"ON","zip":"M","propertyType":"CONDO","sqft":1,"beds":1,"baths":1,"images":[{"url":""}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			c, _ := newJSONContext(http.MethodPost, "/home", body, realtor)
			if code := httpCode(t, h.Create(c)); code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", code)
			}
		})
	}
}

func TestHomeHandler_Update_PartialFields(t *testing.T) {
	stub := &stubHomeService{
		updateFn: func(_ context.Context, id string, u ports.HomeUpdate, _ domain.Identity) (*domain.Home, error) {
			if id != homeID {
				t.Fatalf("unexpected id %s", id)
			}
			if u.Price == nil || *u.Price != 1000 || u.City != nil || u.PropertyType == nil || *u.PropertyType != domain.PropertyResidential {
				t.Fatalf("unexpected update %+v", u)
			}
			return sampleHome(), nil
		},
	}
	h := NewHomeHandler(stub)

	c, rec := newJSONContext(http.MethodPatch, "/home/"+homeID, `{"price":1000,"propertyType":"RESIDENTIAL"}`, realtor)
	c.SetParamNames("id")
	c.SetParamValues(homeID)
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHomeHandler_Update_NotOwner(t *testing.T) {
	stub := &stubHomeService{
		updateFn: func(context.Context, string, ports.HomeUpdate, domain.Identity) (*domain.Home, error) {
			return nil, domain.ErrNotOwner
		},
	}
	h := NewHomeHandler(stub)

	c, _ := newJSONContext(http.MethodPatch, "/home/"+homeID, `{"price":1000}`, realtor)
	c.SetParamNames("id")
	c.SetParamValues(homeID)
	if err := h.Update(c); !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestHomeHandler_Delete(t *testing.T) {
	deleted := ""
	stub := &stubHomeService{
		deleteFn: func(_ context.Context, id string, _ domain.Identity) error {
			deleted = id
			return nil
		},
	}
	h := NewHomeHandler(stub)

	c, rec := newJSONContext(http.MethodDelete, "/home/"+homeID, "", realtor)
	c.SetParamNames("id")
	c.SetParamValues(homeID)
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || deleted != homeID {
		t.Fatalf("expected 204 and delete of %s, got %d %q", homeID, rec.Code, deleted)
	}
}

func TestHomeHandler_Inquire(t *testing.T) {
	buyer := &domain.Identity{SubjectID: "b1", Name: "Bea", Role: domain.RoleBuyer}
	stub := &stubHomeService{
		inquireFn: func(_ context.Context, id, body string, caller domain.Identity) (*domain.Message, error) {
			if id != homeID || body != "Is it available?" || caller.SubjectID != "b1" {
				t.Fatalf("unexpected args %s %q %+v", id, body, caller)
			}
			return &domain.Message{ID: "m1", Body: body, HomeID: id, BuyerID: "b1", RealtorID: realtor.SubjectID}, nil
		},
	}
	h := NewHomeHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/home/"+homeID+"/inquire", `{"message":"Is it available?"}`, buyer)
	c.SetParamNames("id")
	c.SetParamValues(homeID)
	if err := h.Inquire(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	c, _ = newJSONContext(http.MethodPost, "/home/"+homeID+"/inquire", `{"message":""}`, buyer)
	c.SetParamNames("id")
	c.SetParamValues(homeID)
	if code := httpCode(t, h.Inquire(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestHomeHandler_Messages(t *testing.T) {
	stub := &stubHomeService{
		messagesFn: func(_ context.Context, id string, _ domain.Identity) ([]ports.InquiryView, error) {
			return []ports.InquiryView{{
				Message:    &domain.Message{ID: "m1", Body: "hi", HomeID: id, BuyerID: "b1"},
				BuyerName:  "Bea",
				BuyerEmail: "bea@example.com",
			}}, nil
		},
	}
	h := NewHomeHandler(stub)

	c, rec := newJSONContext(http.MethodGet, "/home/"+homeID+"/messages", "", realtor)
	c.SetParamNames("id")
	c.SetParamValues(homeID)
	if err := h.Messages(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp listMessagesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].Buyer.Email != "bea@example.com" || resp.Data[0].Message != "hi" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestHomeHandler_SearchAndRealtorHomes(t *testing.T) {
	stub := &stubHomeService{
		searchFn: func(_ context.Context, q string) ([]*domain.Home, error) {
			if q != "toronto" {
				t.Fatalf("unexpected query %q", q)
			}
			return []*domain.Home{sampleHome()}, nil
		},
		realtorFn: func(_ context.Context, id string) ([]*domain.Home, error) {
			if id != realtor.SubjectID {
				t.Fatalf("unexpected realtor %s", id)
			}
			return []*domain.Home{sampleHome(), sampleHome()}, nil
		},
	}
	h := NewHomeHandler(stub)

	c, rec := newJSONContext(http.MethodGet, "/home/search/toronto", "", nil)
	c.SetParamNames("query")
	c.SetParamValues("toronto")
	if err := h.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, rec = newJSONContext(http.MethodGet, "/home/"+realtor.SubjectID+"/homes", "", realtor)
	c.SetParamNames("id")
	c.SetParamValues(realtor.SubjectID)
	if err := h.RealtorHomes(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp listHomesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 homes, got %d", len(resp.Data))
	}
}
