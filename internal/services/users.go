package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"TRAVEL_ITINERARY_BACK-END/internal/apperrors"
	"TRAVEL_ITINERARY_BACK-END/internal/models"
)

// MinPasswordLength is enforced on registration and password change
const MinPasswordLength = 8

// UserService handles registration, credential checks and profile changes
type UserService struct {
	users      UserStore
	bcryptCost int
}

// NewUserService creates a UserService using bcrypt.DefaultCost
func NewUserService(users UserStore) *UserService {
	return &UserService{users: users, bcryptCost: bcrypt.DefaultCost}
}

// UserPatch holds replaceable profile fields. Nil means keep.
type UserPatch struct {
	Email     *string
	FullName  *string
	Password  *string
	AvatarURL *string
}

// Register creates an active account. A taken email is ErrConflict.
func (s *UserService) Register(ctx context.Context, email, password, fullName string) (*models.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	fullName = strings.TrimSpace(fullName)
	if err := checkFullName(fullName); err != nil {
		return nil, err
	}
	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}

	u := &models.User{Email: email, FullName: fullName, PasswordHash: hash, IsActive: true}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate checks email and password. Every failure is ErrUnauthorized
// so callers cannot probe which emails exist.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("%w: email or password is incorrect", apperrors.ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, fmt.Errorf("%w: account is disabled", apperrors.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: email or password is incorrect", apperrors.ErrUnauthorized)
	}
	return u, nil
}

// LoginWithGoogle returns the account for a verified Google email,
// creating it on first login.
func (s *UserService) LoginWithGoogle(ctx context.Context, email, name, avatarURL string) (*models.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	u, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if !u.IsActive {
			return nil, fmt.Errorf("%w: account is disabled", apperrors.ErrUnauthorized)
		}
		if u.AvatarURL == nil && avatarURL != "" {
			u.AvatarURL = &avatarURL
			if err := s.users.Update(ctx, u); err != nil {
				return nil, err
			}
		}
		return u, nil
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	if utf8.RuneCountInString(name) > 100 {
		name = string([]rune(name)[:100])
	}
	// Google accounts never log in with a password; store an unguessable one.
	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()+uuid.NewString()), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u = &models.User{Email: email, FullName: name, PasswordHash: string(hash), IsActive: true}
	if avatarURL != "" {
		u.AvatarURL = &avatarURL
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Get returns the profile of id
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// Update applies p to the profile of id
func (s *UserService) Update(ctx context.Context, id uuid.UUID, p UserPatch) (*models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Email != nil {
		email, err := normalizeEmail(*p.Email)
		if err != nil {
			return nil, err
		}
		u.Email = email
	}
	if p.FullName != nil {
		name := strings.TrimSpace(*p.FullName)
		if err := checkFullName(name); err != nil {
			return nil, err
		}
		u.FullName = name
	}
	if p.Password != nil {
		hash, err := s.hash(*p.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	if p.AvatarURL != nil {
		u.AvatarURL = p.AvatarURL
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete removes the account id
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.users.Delete(ctx, id)
}

func (s *UserService) hash(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", apperrors.Invalid("password", fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	}
	if len(password) > 72 {
		return "", apperrors.Invalid("password", "must be at most 72 bytes")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", apperrors.Invalid("email", "must be a valid email address")
	}
	return email, nil
}

func checkFullName(name string) error {
	if n := utf8.RuneCountInString(name); n < 1 || n > 100 {
		return apperrors.Invalid("full_name", "must be 1-100 characters")
	}
	return nil
}
