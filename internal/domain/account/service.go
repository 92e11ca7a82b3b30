package account

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/auth"
	"github.com/hms/hms/internal/platform/db"
	"github.com/hms/hms/internal/platform/validation"
)

// ErrInvalidLogin is returned for any failed login: unknown email and
// wrong password are deliberately indistinguishable.
var ErrInvalidLogin = errors.New("invalid login attempt")

type Service struct {
	users Repository
}

func NewService(users Repository) *Service {
	return &Service{users: users}
}

// Register creates a new user account. A non-Ok outcome means nothing was
// persisted.
func (s *Service) Register(ctx context.Context, reg *Registration) (*User, *validation.Outcome, error) {
	out := reg.Validate()
	for _, problem := range auth.CheckPolicy(reg.Password) {
		out.Add("password", problem)
	}
	if !out.Ok() {
		return nil, out, nil
	}

	hash, err := auth.HashPassword(reg.Password)
	if err != nil {
		return nil, nil, err
	}
	u := &User{FullName: reg.FullName, Email: reg.Email, PasswordHash: hash}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, db.ErrUniqueViolation) {
			out.Add("email", "An account with this email already exists.")
			return nil, out, nil
		}
		return nil, nil, err
	}
	return u, out, nil
}

// Login resolves the account for an email/password pair. Any failure is
// ErrInvalidLogin.
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrInvalidLogin
		}
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidLogin
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.users.GetByID(ctx, id)
}
