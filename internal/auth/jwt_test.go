package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devlinkr/devlinkr-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	SetSecret("test-secret")

	user := models.User{ID: "u1", Name: "Ada"}
	token, err := GenerateJWT(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "Ada", claims.Name)
}

func TestValidateJWTWrongKey(t *testing.T) {
	SetSecret("test-secret")
	token, err := GenerateJWT(models.User{ID: "u1"})
	require.NoError(t, err)

	SetSecret("another-secret")
	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestJWTMiddleware(t *testing.T) {
	SetSecret("test-secret")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, "u1", claims.UserID)
		w.WriteHeader(http.StatusOK)
	})
	protected := JWTMiddleware()(next)

	t.Run("valid bearer token passes", func(t *testing.T) {
		token, err := GenerateJWT(models.User{ID: "u1", Name: "Ada"})
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("token cookie passes", func(t *testing.T) {
		token, err := GenerateJWT(models.User{ID: "u1", Name: "Ada"})
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing token rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"msg":"No token, authorization denied"}`, w.Body.String())
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"msg":"Token is not valid"}`, w.Body.String())
	})
}
