package middleware

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumit-1412/NextBillTracker-sub000/internal/models"
)

func testKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func TestTokenRoundTrip(t *testing.T) {
	key := testKey(t)
	userID := uuid.New()

	token, err := GenerateAccessToken(key, userID, models.RoleStaff)
	require.NoError(t, err)

	gotID, gotRole, err := ValidateToken(token, &key.PublicKey)
	require.NoError(t, err)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, models.RoleStaff, gotRole)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	key := testKey(t)
	otherKey := testKey(t)

	token, err := GenerateAccessToken(key, uuid.New(), models.RoleAdmin)
	require.NoError(t, err)

	_, _, err = ValidateToken(token, &otherKey.PublicKey)
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongIssuer(t *testing.T) {
	key := testKey(t)

	claims := jwt.MapClaims{
		"sub":  uuid.New().String(),
		"role": string(models.RoleAdmin),
		"iss":  "SomeOtherService",
		"exp":  float64(1 << 40), // far future
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)

	_, _, err = ValidateToken(token, &key.PublicKey)
	assert.ErrorContains(t, err, "issuer")
}

func TestAuthMiddleware(t *testing.T) {
	key := testKey(t)
	userID := uuid.New()

	var seenID uuid.UUID
	var seenRole models.UserRole
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID, _ = r.Context().Value(ContextKeyUserID).(uuid.UUID)
		seenRole, _ = r.Context().Value(ContextKeyUserRole).(models.UserRole)
		w.WriteHeader(http.StatusOK)
	})
	handler := AuthMiddleware(&key.PublicKey)(next)

	t.Run("valid bearer token", func(t *testing.T) {
		token, err := GenerateAccessToken(key, userID, models.RoleCommissioner)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/overview", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID, seenID)
		assert.Equal(t, models.RoleCommissioner, seenRole)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/overview", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/overview", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	adminOnly := RequireRole(models.RoleAdmin)(next)

	withRole := func(role models.UserRole) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/uploads/x", nil)
		ctx := context.WithValue(req.Context(), ContextKeyUserRole, role)
		rec := httptest.NewRecorder()
		adminOnly.ServeHTTP(rec, req.WithContext(ctx))
		return rec
	}

	assert.Equal(t, http.StatusOK, withRole(models.RoleAdmin).Code)
	assert.Equal(t, http.StatusForbidden, withRole(models.RoleStaff).Code)

	// No role in context at all.
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/uploads/x", nil)
	rec := httptest.NewRecorder()
	adminOnly.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
