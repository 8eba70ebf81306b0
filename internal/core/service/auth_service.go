package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/realtyhub/listing-api/internal/core/domain"
	"github.com/realtyhub/listing-api/internal/core/ports"
)

// AuthService implements signup, login, product keys and profile lookup.
type AuthService struct {
	repo             ports.UserRepository
	tokens           ports.TokenIssuer
	limiter          ports.LoginLimiter
	productKeySecret string
	hashCost         int
	log              zerolog.Logger

	// dummyHash is compared against when the email is unknown so both login
	// failures cost one bcrypt comparison.
	dummyHash   []byte
	compareHash func(hash, password []byte) error
}

// AuthOption customises an AuthService.
type AuthOption func(*AuthService)

// WithLoginLimiter enables login throttling.
func WithLoginLimiter(l ports.LoginLimiter) AuthOption {
	return func(s *AuthService) { s.limiter = l }
}

// WithHashCost overrides the bcrypt cost; tests use bcrypt.MinCost.
func WithHashCost(cost int) AuthOption {
	return func(s *AuthService) { s.hashCost = cost }
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenIssuer, productKeySecret string, log zerolog.Logger, opts ...AuthOption) *AuthService {
	s := &AuthService{
		repo:             repo,
		tokens:           tokens,
		productKeySecret: productKeySecret,
		hashCost:         bcrypt.DefaultCost,
		log:              log,
		compareHash:      bcrypt.CompareHashAndPassword,
	}
	for _, opt := range opts {
		opt(s)
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), s.hashCost)
	if err != nil {
		panic(fmt.Sprintf("auth service: dummy hash: %v", err))
	}
	s.dummyHash = dummy
	return s
}

// Signup registers a user. Any role other than BUYER must present a product
// key minted for the same email and role.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (string, error) {
	if !in.Role.Valid() {
		return "", domain.ErrUnknownRole
	}
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return "", domain.ErrInvalidInput
	}

	if in.Role != domain.RoleBuyer {
		if in.ProductKey == "" {
			return "", domain.ErrProductKeyRequired
		}
		material := s.productKeyMaterial(email, in.Role)
		if bcrypt.CompareHashAndPassword([]byte(in.ProductKey), material) != nil {
			return "", domain.ErrInvalidProductKey
		}
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return "", domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", fmt.Errorf("signup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", domain.ErrInvalidInput
		}
		return "", fmt.Errorf("signup: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return "", fmt.Errorf("signup: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user registered")
	return s.tokens.Issue(user.ID, user.Name, user.Role)
}

// Login exchanges credentials for a token. Unknown email and wrong password
// produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	throttleKey := "login:" + email
	if s.limiter != nil {
		ok, err := s.limiter.Allow(ctx, throttleKey)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Msg("login throttle unavailable, continuing")
		case !ok:
			return "", domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = s.compareHash(s.dummyHash, []byte(password))
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("login: %w", err)
	}
	if s.compareHash([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, throttleKey); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login throttle")
		}
	}
	return s.tokens.Issue(user.ID, user.Name, user.Role)
}

// GenerateProductKey mints the key a REALTOR or ADMIN needs to self-register.
func (s *AuthService) GenerateProductKey(email string, role domain.Role) (string, error) {
	email = normalizeEmail(email)
	if email == "" || !role.Valid() {
		return "", domain.ErrInvalidInput
	}
	key, err := bcrypt.GenerateFromPassword(s.productKeyMaterial(email, role), s.hashCost)
	if err != nil {
		return "", fmt.Errorf("generate product key: %w", err)
	}
	return string(key), nil
}

// Me loads the live profile of the token subject.
func (s *AuthService) Me(ctx context.Context, subjectID string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("me: %w", err)
	}
	return user, nil
}

// productKeyMaterial digests "<email>-<role>-<secret>" so the bcrypt input
// stays under its 72 byte limit.
func (s *AuthService) productKeyMaterial(email string, role domain.Role) []byte {
	sum := sha256.Sum256([]byte(email + "-" + string(role) + "-" + s.productKeySecret))
	return []byte(hex.EncodeToString(sum[:]))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
