package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"upasana-backend/internal/domain"
	"upasana-backend/pkg/utils"
)

func TestSession_IssuesCookieOnFirstContact(t *testing.T) {
	var gotSession string
	handler := Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSession = domain.SessionFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	require.NotEmpty(t, gotSession)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "cart_session", cookies[0].Name)
	assert.Equal(t, gotSession, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestSession_ReusesExistingCookie(t *testing.T) {
	var gotSession string
	handler := Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSession = domain.SessionFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.AddCookie(&http.Cookie{Name: "cart_session", Value: "existing-session"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "existing-session", gotSession)
	assert.Empty(t, rec.Result().Cookies())
}

func TestOptionalAuth_AnonymousPassesThrough(t *testing.T) {
	var gotUser *domain.User
	handler := OptionalAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = domain.UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, gotUser)
}

func TestOptionalAuth_InvalidTokenTreatedAsAnonymous(t *testing.T) {
	utils.SetSecret("test-secret")

	var gotUser *domain.User
	handler := OptionalAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = domain.UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, gotUser)
}

func TestOptionalAuth_ValidTokenAttachesUserAndToken(t *testing.T) {
	utils.SetSecret("test-secret")
	token, err := utils.GenerateJWT("u1", "asha@example.com", "Asha Rao", time.Hour)
	require.NoError(t, err)

	var gotUser *domain.User
	var gotToken string
	handler := OptionalAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = domain.UserFromContext(r.Context())
		gotToken = domain.TokenFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.NotNil(t, gotUser)
	assert.Equal(t, "u1", gotUser.ID)
	assert.Equal(t, "asha@example.com", gotUser.Email)
	assert.Equal(t, token, gotToken)
}

func TestOptionalAuth_TokenFromCookie(t *testing.T) {
	utils.SetSecret("test-secret")
	token, err := utils.GenerateJWT("u1", "asha@example.com", "Asha Rao", time.Hour)
	require.NoError(t, err)

	var gotUser *domain.User
	handler := OptionalAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = domain.UserFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.NotNil(t, gotUser)
	assert.Equal(t, "u1", gotUser.ID)
}
