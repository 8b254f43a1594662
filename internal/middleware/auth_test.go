package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func signToken(t *testing.T, isStaff bool) string {
	t.Helper()
	claims := Claims{
		UserID:  "user-1",
		Email:   "user@example.com",
		IsStaff: isStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return signed
}

func authTestRouter(handler gin.HandlerFunc, mws ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mws...)
	r.GET("/probe", handler)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	probe := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": c.GetString("user_id")})
	}

	t.Run("rejects missing header", func(t *testing.T) {
		r := authTestRouter(probe, AuthMiddleware(testSecret))
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/probe", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects malformed header", func(t *testing.T) {
		r := authTestRouter(probe, AuthMiddleware(testSecret))
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/probe", nil)
		req.Header.Set("Authorization", "Token abc")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "user-1"})
		signed, _ := token.SignedString([]byte("other-secret"))

		r := authTestRouter(probe, AuthMiddleware(testSecret))
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("accepts valid token and sets user context", func(t *testing.T) {
		r := authTestRouter(probe, AuthMiddleware(testSecret))
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, false))
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "user-1")
	})
}

func TestOptionalAuth(t *testing.T) {
	probe := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"authenticated": IsAuthenticated(c)})
	}

	t.Run("passes anonymous requests through", func(t *testing.T) {
		r := authTestRouter(probe, OptionalAuth(testSecret))
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/probe", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"authenticated":false`)
	})

	t.Run("identifies a valid token", func(t *testing.T) {
		r := authTestRouter(probe, OptionalAuth(testSecret))
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, false))
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"authenticated":true`)
	})

	t.Run("treats an invalid token as anonymous", func(t *testing.T) {
		r := authTestRouter(probe, OptionalAuth(testSecret))
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/probe", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"authenticated":false`)
	})
}

func TestRequireStaff(t *testing.T) {
	probe := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}

	t.Run("rejects non-staff user", func(t *testing.T) {
		r := authTestRouter(probe, AuthMiddleware(testSecret), RequireStaff())
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, false))
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("allows staff user", func(t *testing.T) {
		r := authTestRouter(probe, AuthMiddleware(testSecret), RequireStaff())
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, true))
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
