package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenParser_RoundTrip(t *testing.T) {
	parser := NewTokenParser("unit-secret")
	principal := Principal{UserID: 7, Role: RoleStudent, AdminID: 3}

	token, err := parser.Issue(principal, time.Hour)
	require.NoError(t, err)

	parsed, err := parser.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, principal, *parsed)
}

func TestTokenParser_RejectsWrongSecret(t *testing.T) {
	token, err := NewTokenParser("secret-a").Issue(Principal{UserID: 1, Role: RoleAdmin}, time.Hour)
	require.NoError(t, err)

	_, err = NewTokenParser("secret-b").Parse(token)
	assert.Error(t, err)
}

func TestTokenParser_RejectsExpired(t *testing.T) {
	parser := NewTokenParser("unit-secret")
	token, err := parser.Issue(Principal{UserID: 1, Role: RoleStudent}, -time.Minute)
	require.NoError(t, err)

	_, err = parser.Parse(token)
	assert.Error(t, err)
}

func TestTokenParser_NormalizesRoleCase(t *testing.T) {
	parser := NewTokenParser("unit-secret")
	token, err := parser.Issue(Principal{UserID: 1, Role: Role("STUDENT")}, time.Hour)
	require.NoError(t, err)

	parsed, err := parser.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, RoleStudent, parsed.Role)
	assert.True(t, parsed.Role.IsLearner())
}

func newAuthRouter(parser *TokenParser) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware(parser))

	router.GET("/me", func(ctx *gin.Context) {
		principal, ok := FromContext(ctx)
		if !ok {
			ctx.Status(http.StatusInternalServerError)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"user_id": principal.UserID})
	})

	staff := router.Group("/staff")
	staff.Use(RequireStaff())
	staff.GET("", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })
	return router
}

func TestMiddleware(t *testing.T) {
	parser := NewTokenParser("unit-secret")
	router := newAuthRouter(parser)

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := parser.Issue(Principal{UserID: 7, Role: RoleStudent}, time.Hour)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("learner blocked from staff routes", func(t *testing.T) {
		token, err := parser.Issue(Principal{UserID: 7, Role: RoleStudent}, time.Hour)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/staff", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("staff allowed", func(t *testing.T) {
		token, err := parser.Issue(Principal{UserID: 1, Role: RoleFaculty}, time.Hour)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/staff", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
