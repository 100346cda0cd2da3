package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/storefront/internal/auth"
	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/events"
	"github.com/spec-kit/storefront/internal/repository"
	"github.com/spec-kit/storefront/internal/repository/memory"
	apperrors "github.com/spec-kit/storefront/pkg/util/errorutil"
)

func newAuthServiceWith(users repository.UserRepository, tokens *auth.TokenManager) *AuthService {
	return NewAuthService(AuthDependencies{
		UserRepo:   users,
		Tokens:     tokens,
		Dispatcher: events.NewInMemoryDispatcher(),
		BcryptCost: bcrypt.MinCost,
	})
}

func newAuthService(t *testing.T) (*AuthService, repository.UserRepository, *auth.TokenManager) {
	t.Helper()
	users := memory.NewStore().Users()
	tokens := auth.NewTokenManager("secret", time.Hour)
	return newAuthServiceWith(users, tokens), users, tokens
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	return apperrors.ToDomainError(err).HTTPStatus
}

func TestSignupAndLogin(t *testing.T) {
	svc, users, tokens := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Signup(ctx, "seller@example.com", "hunter22", domain.RoleSeller)
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	stored, err := users.GetByEmail(ctx, "seller@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", stored.PasswordHash)

	got, token, exp, err := svc.Login(ctx, "seller@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.True(t, exp.After(time.Now()))

	claims, err := tokens.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleSeller, claims.Role)
}

func TestSignupRejectsDuplicates(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "a@example.com", "secret1", domain.RoleBuyer)
	require.NoError(t, err)

	_, err = svc.Signup(ctx, "a@example.com", "secret1", domain.RoleBuyer)
	assert.Equal(t, http.StatusConflict, statusOf(t, err))
	assert.Equal(t, "User already exists with this email", apperrors.ToDomainError(err).Message)

}

func TestSignupLosesInsertRace(t *testing.T) {
	users := new(MockUserRepository)
	users.On("ExistsByEmail", mock.Anything, "b@example.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(&pgconn.PgError{Code: "23505"})
	svc := newAuthServiceWith(users, auth.NewTokenManager("secret", time.Hour))

	_, err := svc.Signup(context.Background(), "b@example.com", "secret1", domain.RoleBuyer)
	assert.Equal(t, http.StatusConflict, statusOf(t, err))
	assert.Equal(t, "User already exists", apperrors.ToDomainError(err).Message)
	users.AssertExpectations(t)
}

func TestSignupRejectsUnknownRole(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.Signup(context.Background(), "a@example.com", "secret1", domain.Role("admin"))
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestLoginFailures(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "a@example.com", "secret1", domain.RoleBuyer)
	require.NoError(t, err)

	_, _, _, err = svc.Login(ctx, "nobody@example.com", "secret1")
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	assert.Equal(t, "No user is registered with this email", apperrors.ToDomainError(err).Message)

	_, _, _, err = svc.Login(ctx, "a@example.com", "wrong")
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	assert.Equal(t, "Password is incorrect", apperrors.ToDomainError(err).Message)

}

func TestLoginStoreFailure(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetByEmail", mock.Anything, "a@example.com").Return(nil, errStoreDown)
	svc := newAuthServiceWith(users, auth.NewTokenManager("secret", time.Hour))

	_, _, _, err := svc.Login(context.Background(), "a@example.com", "secret1")
	assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
	assert.ErrorIs(t, err, errStoreDown)
	users.AssertExpectations(t)
}
