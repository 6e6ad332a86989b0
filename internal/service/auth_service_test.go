package service

import (
	"context"
	"testing"

	"visitorlog/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginSuccessYieldsPrincipal(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "erhan", "yaman", true)
	svc := NewAuthService(repo, newTestCfg())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "erhan", Password: "yaman"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.True(t, resp.User.IsAdmin)
	assert.Equal(t, "erhan", resp.User.Username)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "erhan", "yaman", false)
	svc := NewAuthService(repo, newTestCfg())

	cases := []struct {
		name string
		req  dto.LoginRequest
	}{
		{"empty username", dto.LoginRequest{Password: "yaman"}},
		{"empty password", dto.LoginRequest{Username: "erhan"}},
		{"unknown user", dto.LoginRequest{Username: "nobody", Password: "yaman"}},
		{"wrong password", dto.LoginRequest{Username: "erhan", Password: "wrong"}},
		{"case mismatch", dto.LoginRequest{Username: "ERHAN", Password: "yaman"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tc.req)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestLoginNeverLeaksDigest(t *testing.T) {
	repo := newStubUserRepo()
	u := seedUser(t, repo, "erhan", "secret", false)
	svc := NewAuthService(repo, newTestCfg())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "erhan", Password: "secret"})
	require.NoError(t, err)
	assert.NotContains(t, resp.AccessToken, u.PasswordHash)
	assert.NotContains(t, resp.AccessToken, "secret")
}

func TestRefreshRotatesTokenPair(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "erhan", "yaman", true)
	svc := NewAuthService(repo, newTestCfg())

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "erhan", Password: "yaman"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, login.User.ID, refreshed.User.ID)
}

func TestRefreshRejectsGarbageAndDeletedUsers(t *testing.T) {
	repo := newStubUserRepo()
	u := seedUser(t, repo, "erhan", "yaman", true)
	svc := NewAuthService(repo, newTestCfg())

	_, err := svc.Refresh(context.Background(), "not-a-token")
	assert.Error(t, err)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "erhan", Password: "yaman"})
	require.NoError(t, err)
	require.NoError(t, repo.Delete(context.Background(), u.ID))

	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.Error(t, err)
}
