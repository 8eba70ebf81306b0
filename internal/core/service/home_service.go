package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/realtyhub/listing-api/internal/core/domain"
	"github.com/realtyhub/listing-api/internal/core/ports"
)

// HomeService implements listing and inquiry use cases.
type HomeService struct {
	homes    ports.HomeRepository
	messages ports.MessageRepository
	users    ports.UserRepository
	log      zerolog.Logger
}

func NewHomeService(homes ports.HomeRepository, messages ports.MessageRepository, users ports.UserRepository, log zerolog.Logger) *HomeService {
	return &HomeService{homes: homes, messages: messages, users: users, log: log}
}

// ListHomes returns listings matching f, newest first. Page and limit are
// clamped to sane bounds.
func (s *HomeService) ListHomes(ctx context.Context, f ports.HomeFilter) ([]*domain.Home, error) {
	if f.MinPrice > 0 && f.MaxPrice > 0 && f.MinPrice > f.MaxPrice {
		return nil, fmt.Errorf("list homes: minPrice above maxPrice: %w", domain.ErrInvalidInput)
	}
	if f.PropertyType != "" && !f.PropertyType.Valid() {
		return nil, fmt.Errorf("list homes: property type %q: %w", f.PropertyType, domain.ErrInvalidInput)
	}
	f = f.Normalized()

	homes, err := s.homes.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list homes: %w", err)
	}
	return homes, nil
}

func (s *HomeService) GetHome(ctx context.Context, id string) (*domain.Home, error) {
	return s.homes.FindByID(ctx, id)
}

func (s *HomeService) SearchHomes(ctx context.Context, query string) ([]*domain.Home, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidInput
	}
	homes, err := s.homes.Search(ctx, query, ports.MaxPageSize)
	if err != nil {
		return nil, fmt.Errorf("search homes: %w", err)
	}
	return homes, nil
}

func (s *HomeService) ListRealtorHomes(ctx context.Context, realtorID string) ([]*domain.Home, error) {
	return s.ListHomes(ctx, ports.HomeFilter{RealtorID: realtorID, Limit: ports.MaxPageSize})
}

// CreateHome lists a new property owned by the caller.
func (s *HomeService) CreateHome(ctx context.Context, in ports.CreateHomeInput, caller domain.Identity) (*domain.Home, error) {
	if !in.PropertyType.Valid() {
		return nil, fmt.Errorf("create home: property type %q: %w", in.PropertyType, domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	images := make([]domain.Image, 0, len(in.ImageURLs))
	for _, u := range in.ImageURLs {
		images = append(images, domain.Image{URL: u})
	}
	home := &domain.Home{
		ID:           uuid.NewString(),
		Price:        in.Price,
		City:         in.City,
		State:        in.State,
		Zip:          in.Zip,
		PropertyType: in.PropertyType,
		Sqft:         in.Sqft,
		Beds:         in.Beds,
		Baths:        in.Baths,
		Images:       images,
		RealtorID:    caller.SubjectID,
		ListedDate:   now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.homes.Create(ctx, home); err != nil {
		s.log.Error().Err(err).Msg("failed to create home")
		return nil, fmt.Errorf("create home: %w", err)
	}

	s.log.Info().Str("home_id", home.ID).Str("realtor_id", home.RealtorID).Msg("home listed")
	return home, nil
}

// UpdateHome applies a partial update if the caller owns the listing or is ADMIN.
func (s *HomeService) UpdateHome(ctx context.Context, id string, u ports.HomeUpdate, caller domain.Identity) (*domain.Home, error) {
	if u.Empty() {
		return nil, fmt.Errorf("update home: nothing to update: %w", domain.ErrInvalidInput)
	}
	if u.PropertyType != nil && !u.PropertyType.Valid() {
		return nil, fmt.Errorf("update home: property type %q: %w", *u.PropertyType, domain.ErrInvalidInput)
	}
	if _, err := s.ownedHome(ctx, id, caller, true); err != nil {
		return nil, err
	}
	return s.homes.Update(ctx, id, u)
}

// DeleteHome removes a listing and its inquiries.
func (s *HomeService) DeleteHome(ctx context.Context, id string, caller domain.Identity) error {
	if _, err := s.ownedHome(ctx, id, caller, true); err != nil {
		return err
	}
	if err := s.messages.DeleteByHome(ctx, id); err != nil {
		return fmt.Errorf("delete home messages: %w", err)
	}
	if err := s.homes.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete home: %w", err)
	}
	s.log.Info().Str("home_id", id).Str("by", caller.SubjectID).Msg("home deleted")
	return nil
}

// Inquire records a buyer message addressed to the listing's realtor.
func (s *HomeService) Inquire(ctx context.Context, homeID, body string, caller domain.Identity) (*domain.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("inquire: empty message: %w", domain.ErrInvalidInput)
	}
	home, err := s.homes.FindByID(ctx, homeID)
	if err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ID:        uuid.NewString(),
		Body:      body,
		HomeID:    home.ID,
		BuyerID:   caller.SubjectID,
		RealtorID: home.RealtorID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("inquire: %w", err)
	}
	return msg, nil
}

// Messages lists inquiries for a listing; only its realtor may read them.
func (s *HomeService) Messages(ctx context.Context, homeID string, caller domain.Identity) ([]ports.InquiryView, error) {
	if _, err := s.ownedHome(ctx, homeID, caller, false); err != nil {
		return nil, err
	}
	msgs, err := s.messages.ListByHome(ctx, homeID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	out := make([]ports.InquiryView, 0, len(msgs))
	buyers := make(map[string]*domain.User)
	for _, m := range msgs {
		view := ports.InquiryView{Message: m}
		buyer, ok := buyers[m.BuyerID]
		if !ok {
			buyer, err = s.users.FindByID(ctx, m.BuyerID)
			if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
				return nil, fmt.Errorf("list messages: buyer %s: %w", m.BuyerID, err)
			}
			buyers[m.BuyerID] = buyer
		}
		if buyer != nil {
			view.BuyerName, view.BuyerEmail, view.BuyerPhone = buyer.Name, buyer.Email, buyer.Phone
		}
		out = append(out, view)
	}
	return out, nil
}

// ownedHome loads a listing and checks that caller may act on it.
func (s *HomeService) ownedHome(ctx context.Context, id string, caller domain.Identity, adminBypass bool) (*domain.Home, error) {
	home, err := s.homes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if home.OwnedBy(caller.SubjectID) || (adminBypass && caller.Role == domain.RoleAdmin) {
		return home, nil
	}
	return nil, domain.ErrNotOwner
}
