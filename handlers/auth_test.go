package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/legalease/legalease/backend/go-services/internal/config"
	"github.com/legalease/legalease/backend/go-services/internal/sessions"
	"github.com/legalease/legalease/backend/go-services/internal/users"
)

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m, err := mr.Run()
	require.NoError(t, err)
	t.Cleanup(m.Close)
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})

	cfg := &config.Config{}
	cfg.JWT.Secret = "auth-test-secret-32-bytes-xxxxxxxx"
	cfg.JWT.AccessTokenTTL = 15 * time.Minute
	cfg.JWT.RefreshTokenTTL = 7 * 24 * time.Hour

	usersSvc := users.NewService(users.NewMemoryProfileRepository())
	sessionsSvc := sessions.NewService(sessions.NewRedisRepository(client, "test:session:"))

	r := gin.New()
	NewAuthHandler(cfg, usersSvc, sessionsSvc).Register(r.Group("/"))
	return r
}

func registerUser(t *testing.T, r *gin.Engine) (accessToken, refreshToken string) {
	t.Helper()
	w := postJSON(r, "/auth/register", "", map[string]interface{}{
		"name":     "Asha Rao",
		"age":      34,
		"email":    "asha@example.com",
		"phone":    "9876543210",
		"password": "s3cretpass",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var out struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.NotEmpty(t, out.AccessToken)
	require.NotEmpty(t, out.RefreshToken)
	return out.AccessToken, out.RefreshToken
}

func TestRegisterAndLogin(t *testing.T) {
	r := newAuthRouter(t)
	registerUser(t, r)

	// duplicate email is rejected
	w := postJSON(r, "/auth/register", "", map[string]interface{}{
		"name":     "Someone Else",
		"email":    "asha@example.com",
		"password": "otherpassword",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	w = postJSON(r, "/auth/login", "", map[string]string{
		"email":    "asha@example.com",
		"password": "s3cretpass",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var out struct {
		User struct {
			Email        string `json:"email"`
			PasswordHash string `json:"passwordHash"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Equal(t, "asha@example.com", out.User.Email)
	require.Empty(t, out.User.PasswordHash)
}

func TestLogin_BadCredentials(t *testing.T) {
	r := newAuthRouter(t)
	registerUser(t, r)

	w := postJSON(r, "/auth/login", "", map[string]string{
		"email":    "asha@example.com",
		"password": "wrongpass",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(r, "/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "s3cretpass",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegister_Validation(t *testing.T) {
	r := newAuthRouter(t)

	w := postJSON(r, "/auth/register", "", map[string]interface{}{
		"name":     "A",
		"email":    "not-an-email",
		"password": "longenough",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Equal(t, "email", out["field"])
}

func TestRefreshAndLogout(t *testing.T) {
	r := newAuthRouter(t)
	_, refresh := registerUser(t, r)

	w := postJSON(r, "/auth/refresh", "", map[string]string{"refresh_token": refresh})
	require.Equal(t, http.StatusOK, w.Code)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.NotEmpty(t, out["access_token"])

	w = postJSON(r, "/auth/logout", "", map[string]string{"refresh_token": refresh})
	require.Equal(t, http.StatusOK, w.Code)

	// the refresh token no longer works
	w = postJSON(r, "/auth/refresh", "", map[string]string{"refresh_token": refresh})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
