package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/koolkhan8586/hr-management/internal/auth"
	autherrors "github.com/koolkhan8586/hr-management/internal/auth/errors"
	"github.com/koolkhan8586/hr-management/internal/shared/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const secret = "unit-secret"

type fakeRepo struct {
	byEmail map[string]*auth.Credential
	err     error
}

func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (*auth.Credential, error) {
	if f.err != nil {
		return nil, f.err
	}
	if c, ok := f.byEmail[email]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*auth.Credential, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, c := range f.byEmail {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func newRepo(t *testing.T) *fakeRepo {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	return &fakeRepo{byEmail: map[string]*auth.Credential{
		"admin@example.com": {ID: "A1", Name: "Admin", Email: "admin@example.com", Role: "admin", PasswordHash: string(hash)},
		"nopass@example.com": {ID: "E9", Name: "No Pass", Email: "nopass@example.com", Role: "employee"},
	}}
}

func parseClaims(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) { return []byte(secret), nil })
	require.NoError(t, err)
	return parsed.Claims.(jwt.MapClaims)
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success issues access and refresh tokens", func(t *testing.T) {
		svc := auth.NewService(newRepo(t), secret)

		resp, err := svc.Login(ctx, "admin@example.com", "secret123")

		require.NoError(t, err)
		assert.Equal(t, "A1", resp.User.EmployeeID)
		assert.Equal(t, "admin", resp.User.Role)

		claims := parseClaims(t, resp.AccessToken)
		assert.Equal(t, "A1", claims["employee_id"])
		assert.Equal(t, "A1", claims["user_id"])
		assert.Equal(t, "admin", claims["role"])
		assert.NotContains(t, claims, "typ")

		refresh := parseClaims(t, resp.RefreshToken)
		assert.Equal(t, "refresh", refresh["typ"])
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := auth.NewService(newRepo(t), secret)
		_, err := svc.Login(ctx, "admin@example.com", "nope")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown email and missing hash look the same", func(t *testing.T) {
		svc := auth.NewService(newRepo(t), secret)

		_, err := svc.Login(ctx, "ghost@example.com", "secret123")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)

		_, err = svc.Login(ctx, "nopass@example.com", "")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("store failure", func(t *testing.T) {
		svc := auth.NewService(&fakeRepo{err: errors.New("conn refused")}, secret)
		_, err := svc.Login(ctx, "admin@example.com", "secret123")
		assert.Equal(t, apperror.CodePersistenceError, apperror.ToHTTP(err).Code)
	})
}

func TestService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	svc := auth.NewService(newRepo(t), secret)

	login, err := svc.Login(ctx, "admin@example.com", "secret123")
	require.NoError(t, err)

	resp, err := svc.RefreshToken(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "A1", resp.User.EmployeeID)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = svc.RefreshToken(ctx, login.AccessToken)
	assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)

	_, err = svc.RefreshToken(ctx, "garbage")
	assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
}

func TestService_GetMe(t *testing.T) {
	svc := auth.NewService(newRepo(t), secret)

	me, err := svc.GetMe(context.Background(), "E9")
	require.NoError(t, err)
	assert.Equal(t, "nopass@example.com", me.Email)

	_, err = svc.GetMe(context.Background(), "missing")
	assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
}
