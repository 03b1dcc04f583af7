package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Skotchmaster/aura_shop/internal/models"
	"github.com/Skotchmaster/aura_shop/pkg/db/dbtest"
	"github.com/Skotchmaster/aura_shop/pkg/tokens"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return &Service{
		Repo:          &GormRepo{DB: dbtest.Open(t, &models.User{}, &models.RefreshToken{})},
		AccessSecret:  []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
		AdminEmails:   []string{"owner@aura.shop"},
		BcryptCost:    bcrypt.MinCost,
	}
}

func TestSignUp_Validation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "empty email", email: "", password: "secret1"},
		{name: "no at sign", email: "owner", password: "secret1"},
		{name: "short password", email: "a@b.c", password: "12345"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SignUp(ctx, tt.email, tt.password)
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestSignUp_RolesAndDuplicates(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	admin, err := svc.SignUp(ctx, " Owner@Aura.shop ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.Equal(t, "owner@aura.shop", admin.Email)

	user, err := svc.SignUp(ctx, "guest@aura.shop", "secret1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)

	_, err = svc.SignUp(ctx, "guest@aura.shop", "another1")
	require.ErrorIs(t, err, ErrUserAlreadyExist)
}

func TestSignIn(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	_, err := svc.SignUp(ctx, "owner@aura.shop", "secret1")
	require.NoError(t, err)

	_, err = svc.SignIn(ctx, "owner@aura.shop", "wrong-pass")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.SignIn(ctx, "nobody@aura.shop", "secret1")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	pair, err := svc.SignIn(ctx, "OWNER@aura.shop", "secret1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, pair.Role)

	claims, err := tokens.AccessClaimsFromToken(pair.AccessToken, svc.AccessSecret)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "owner@aura.shop", claims.Email)
}

func TestRefreshRotatesOnce(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	_, err := svc.SignUp(ctx, "owner@aura.shop", "secret1")
	require.NoError(t, err)
	pair, err := svc.SignIn(ctx, "owner@aura.shop", "secret1")
	require.NoError(t, err)

	next, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)
	assert.Equal(t, models.RoleAdmin, next.Role)

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)

	_, err = svc.Refresh(ctx, "garbage")
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestLogOutRevokes(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	_, err := svc.SignUp(ctx, "owner@aura.shop", "secret1")
	require.NoError(t, err)
	pair, err := svc.SignIn(ctx, "owner@aura.shop", "secret1")
	require.NoError(t, err)

	require.NoError(t, svc.LogOut(ctx, pair.RefreshToken))

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefreshToken)
}
