package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bean-buzz/beanbuzz-backend/models"
)

func testUser(role models.UserRole) *models.User {
	return &models.User{
		ID:    primitive.NewObjectID(),
		Email: "john@example.com",
		Role:  role,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	auth := NewAuth("test-secret")
	user := testUser(models.RoleStaff)

	token, err := auth.GenerateToken(user)
	require.NoError(t, err)

	claims, err := auth.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, models.RoleStaff, claims.Role)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := NewAuth("one-secret").GenerateToken(testUser(models.RoleUser))
	require.NoError(t, err)

	_, err = NewAuth("another-secret").ParseToken(token)
	require.Error(t, err)
}

func TestResetToken_CarriesOnlyUserID(t *testing.T) {
	auth := NewAuth("test-secret")
	id := primitive.NewObjectID().Hex()

	token, err := auth.GenerateResetToken(id)
	require.NoError(t, err)

	claims, err := auth.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Empty(t, claims.Email)
	assert.Empty(t, claims.Role)
}

func serveAuthed(t *testing.T, handlerChain []gin.HandlerFunc, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append(handlerChain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	r.GET("/protected", chain...)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth(t *testing.T) {
	auth := NewAuth("test-secret")
	token, err := auth.GenerateToken(testUser(models.RoleUser))
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusForbidden},
		{"wrong scheme", "Basic " + token, http.StatusForbidden},
		{"garbage token", "Bearer not.a.token", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serveAuthed(t, []gin.HandlerFunc{auth.RequireAuth()}, tc.header)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestRequireAuth_AttachesIdentity(t *testing.T) {
	auth := NewAuth("test-secret")
	user := testUser(models.RoleAdmin)
	token, err := auth.GenerateToken(user)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", auth.RequireAuth(), func(c *gin.Context) {
		assert.Equal(t, user.ID.Hex(), GetUserID(c))
		assert.Equal(t, models.RoleAdmin, GetRole(c))
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRoleAtLeast(t *testing.T) {
	auth := NewAuth("test-secret")

	cases := []struct {
		name     string
		role     models.UserRole
		required models.UserRole
		want     int
	}{
		{"staff meets user requirement", models.RoleStaff, models.RoleUser, http.StatusOK},
		{"staff meets staff requirement", models.RoleStaff, models.RoleStaff, http.StatusOK},
		{"staff denied admin requirement", models.RoleStaff, models.RoleAdmin, http.StatusForbidden},
		{"admin meets everything", models.RoleAdmin, models.RoleUser, http.StatusOK},
		{"user denied staff requirement", models.RoleUser, models.RoleStaff, http.StatusForbidden},
		{"moderator has no rank and is denied", models.RoleModerator, models.RoleUser, http.StatusForbidden},
		{"unrecognized role always denied", models.UserRole("superuser"), models.RoleUser, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := auth.GenerateToken(testUser(tc.role))
			require.NoError(t, err)

			rec := serveAuthed(t,
				[]gin.HandlerFunc{auth.RequireAuth(), RoleAtLeast(tc.required)},
				"Bearer "+token,
			)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestRoleExactly(t *testing.T) {
	auth := NewAuth("test-secret")

	cases := []struct {
		name string
		role models.UserRole
		want int
	}{
		{"admin allowed", models.RoleAdmin, http.StatusOK},
		{"staff denied even though ranked below admin", models.RoleStaff, http.StatusForbidden},
		{"user denied", models.RoleUser, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := auth.GenerateToken(testUser(tc.role))
			require.NoError(t, err)

			rec := serveAuthed(t,
				[]gin.HandlerFunc{auth.RequireAuth(), RoleExactly(models.RoleAdmin)},
				"Bearer "+token,
			)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestRoleAtLeast_NoRoleOnContext(t *testing.T) {
	rec := serveAuthed(t, []gin.HandlerFunc{RoleAtLeast(models.RoleUser)}, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
