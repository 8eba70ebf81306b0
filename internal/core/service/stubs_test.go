package service

import (
	"context"
	"sort"
	"strings"

	"github.com/realtyhub/listing-api/internal/core/domain"
	"github.com/realtyhub/listing-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users   map[string]*domain.User // by id
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type stubLimiter struct {
	allow  bool
	err    error
	hits   []string
	resets []string
}

func (l *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.hits = append(l.hits, key)
	return l.allow, l.err
}

func (l *stubLimiter) Reset(_ context.Context, key string) error {
	l.resets = append(l.resets, key)
	return nil
}

type stubHomeRepo struct {
	homes      map[string]*domain.Home
	lastFilter ports.HomeFilter
	deleted    []string
	createErr  error
}

func newStubHomeRepo() *stubHomeRepo {
	return &stubHomeRepo{homes: make(map[string]*domain.Home)}
}

func (r *stubHomeRepo) Create(_ context.Context, h *domain.Home) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *h
	r.homes[h.ID] = &clone
	return nil
}

func (r *stubHomeRepo) FindByID(_ context.Context, id string) (*domain.Home, error) {
	h, ok := r.homes[id]
	if !ok {
		return nil, domain.ErrHomeNotFound
	}
	clone := *h
	return &clone, nil
}

// List mirrors the filters the Mongo repository applies.
func (r *stubHomeRepo) List(_ context.Context, f ports.HomeFilter) ([]*domain.Home, error) {
	r.lastFilter = f
	var out []*domain.Home
	for _, h := range r.homes {
		if f.City != "" && h.City != f.City {
			continue
		}
		if f.RealtorID != "" && h.RealtorID != f.RealtorID {
			continue
		}
		if f.MinPrice > 0 && h.Price < f.MinPrice {
			continue
		}
		if f.MaxPrice > 0 && h.Price > f.MaxPrice {
			continue
		}
		clone := *h
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ListedDate.After(out[j].ListedDate) })
	return out, nil
}

func (r *stubHomeRepo) Search(_ context.Context, query string, _ int) ([]*domain.Home, error) {
	var out []*domain.Home
	q := strings.ToLower(query)
	for _, h := range r.homes {
		if strings.Contains(strings.ToLower(h.City+" "+h.State+" "+h.Zip), q) {
			clone := *h
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubHomeRepo) Update(_ context.Context, id string, u ports.HomeUpdate) (*domain.Home, error) {
	h, ok := r.homes[id]
	if !ok {
		return nil, domain.ErrHomeNotFound
	}
	if u.Price != nil {
		h.Price = *u.Price
	}
	if u.City != nil {
		h.City = *u.City
	}
	if u.Beds != nil {
		h.Beds = *u.Beds
	}
	clone := *h
	return &clone, nil
}

func (r *stubHomeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.homes[id]; !ok {
		return domain.ErrHomeNotFound
	}
	delete(r.homes, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type stubMessageRepo struct {
	byHome  map[string][]*domain.Message
	cleared []string
}

func newStubMessageRepo() *stubMessageRepo {
	return &stubMessageRepo{byHome: make(map[string][]*domain.Message)}
}

func (r *stubMessageRepo) Create(_ context.Context, m *domain.Message) error {
	clone := *m
	r.byHome[m.HomeID] = append(r.byHome[m.HomeID], &clone)
	return nil
}

func (r *stubMessageRepo) ListByHome(_ context.Context, homeID string) ([]*domain.Message, error) {
	return r.byHome[homeID], nil
}

func (r *stubMessageRepo) DeleteByHome(_ context.Context, homeID string) error {
	delete(r.byHome, homeID)
	r.cleared = append(r.cleared, homeID)
	return nil
}

type stubIssuer struct {
	issued []string
}

func (s *stubIssuer) Issue(subjectID, name string, role domain.Role) (string, error) {
	s.issued = append(s.issued, subjectID)
	return "token-" + subjectID + "-" + string(role), nil
}
