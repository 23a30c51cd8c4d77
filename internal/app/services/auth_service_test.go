package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogsphere/blogsphere/internal/app/models/dto"
	"github.com/blogsphere/blogsphere/internal/app/services"
	"github.com/blogsphere/blogsphere/internal/pkg/apperrors"
	"github.com/blogsphere/blogsphere/internal/pkg/auth"
)

type authFixture struct {
	users   *fakeUserStore
	tokens  *fakeTokenStore
	service services.AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:  newFakeUserStore(),
		tokens: newFakeTokenStore(),
	}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
	f.service = services.NewAuthService(f.users, f.tokens, jwtService, zerolog.Nop())
	return f
}

func TestRegister(t *testing.T) {
	t.Run("NewAccountGetsTokenPair", func(t *testing.T) {
		f := newAuthFixture()
		resp, err := f.service.Register(context.Background(), &dto.RegisterRequest{
			Email:    "Alice@Example.COM",
			Password: "correcthorse",
		})
		require.NoError(t, err)

		assert.Equal(t, "alice@example.com", resp.User.Email)
		assert.False(t, resp.User.ProfileComplete)
		assert.NotEmpty(t, resp.Token.AccessToken)
		assert.NotEmpty(t, resp.Token.RefreshToken)
		assert.Equal(t, "Bearer", resp.Token.TokenType)
	})

	t.Run("DuplicateEmailConflicts", func(t *testing.T) {
		f := newAuthFixture()
		_, err := f.service.Register(context.Background(), &dto.RegisterRequest{Email: "a@x.com", Password: "correcthorse"})
		require.NoError(t, err)

		_, err = f.service.Register(context.Background(), &dto.RegisterRequest{Email: "A@X.com", Password: "otherpassword"})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestLogin(t *testing.T) {
	f := newAuthFixture()
	_, err := f.service.Register(context.Background(), &dto.RegisterRequest{Email: "a@x.com", Password: "correcthorse"})
	require.NoError(t, err)

	t.Run("ValidCredentials", func(t *testing.T) {
		resp, err := f.service.Login(context.Background(), &dto.LoginRequest{Email: "a@x.com", Password: "correcthorse"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token.AccessToken)
	})

	t.Run("UnknownEmailAndWrongPasswordLookAlike", func(t *testing.T) {
		_, unknownErr := f.service.Login(context.Background(), &dto.LoginRequest{Email: "ghost@x.com", Password: "correcthorse"})
		_, wrongErr := f.service.Login(context.Background(), &dto.LoginRequest{Email: "a@x.com", Password: "wrong"})

		assert.ErrorIs(t, unknownErr, apperrors.ErrInvalidCredentials)
		assert.ErrorIs(t, wrongErr, apperrors.ErrInvalidCredentials)
		assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	})
}

func TestRefreshToken(t *testing.T) {
	f := newAuthFixture()
	resp, err := f.service.Register(context.Background(), &dto.RegisterRequest{Email: "a@x.com", Password: "correcthorse"})
	require.NoError(t, err)

	t.Run("RefreshTokenIsSingleUse", func(t *testing.T) {
		rotated, err := f.service.RefreshToken(context.Background(), resp.Token.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, rotated.AccessToken)
		assert.NotEqual(t, resp.Token.RefreshToken, rotated.RefreshToken)

		_, err = f.service.RefreshToken(context.Background(), resp.Token.RefreshToken)
		assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
	})
}

func TestLogout(t *testing.T) {
	f := newAuthFixture()
	resp, err := f.service.Register(context.Background(), &dto.RegisterRequest{Email: "a@x.com", Password: "correcthorse"})
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(context.Background(), resp.Token.RefreshToken))

	_, err = f.service.RefreshToken(context.Background(), resp.Token.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}
