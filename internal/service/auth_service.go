package service

import (
	"context"
	"time"

	"github.com/spec-kit/storefront/internal/auth"
	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/events"
	"github.com/spec-kit/storefront/internal/repository"
	apperrors "github.com/spec-kit/storefront/pkg/util/errorutil"
)

// TokenIssuer signs access tokens for authenticated accounts.
type TokenIssuer interface {
	GenerateToken(userID int64, role domain.Role) (string, time.Time, error)
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokens     TokenIssuer
	dispatcher events.Dispatcher
	bcryptCost int
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Tokens     TokenIssuer
	Dispatcher events.Dispatcher
	BcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokens:     deps.Tokens,
		dispatcher: deps.Dispatcher,
		bcryptCost: deps.BcryptCost,
	}
}

// Signup creates a new account with the given role.
func (s *AuthService) Signup(ctx context.Context, email, password string, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidationError("Role must be either buyer or seller")
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.NewInternalError("Internal server error, please try again", err)
	}
	if exists {
		return nil, apperrors.NewConflict("User already exists with this email")
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError("Internal server error, please try again", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("User already exists")
		}
		return nil, apperrors.NewInternalError("Error creating user", err)
	}

	_ = events.Emit(ctx, s.dispatcher, events.Event{
		Type:  events.EventUserRegistered,
		Actor: events.Actor{UserID: user.ID, Role: user.Role},
	})
	return user, nil
}

// Login verifies credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNoRows(err) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("No user is registered with this email")
		}
		return nil, "", time.Time{}, apperrors.NewInternalError("Internal server error", err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("Password is incorrect")
	}

	token, exp, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError("Internal server error", err)
	}

	_ = events.Emit(ctx, s.dispatcher, events.Event{
		Type:  events.EventUserLoggedIn,
		Actor: events.Actor{UserID: user.ID, Role: user.Role},
	})
	return user, token, exp, nil
}
