package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/crm-manager/internal/config"
)

func sign(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func router(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/p", AuthMiddleware(cfg), func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c).String())
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: "s3cret"}
	r := router(cfg)
	id := uuid.New()

	valid := sign(t, "s3cret", jwt.MapClaims{"sub": id.String(), "role": "owner", "exp": time.Now().Add(time.Hour).Unix()})

	cases := []struct {
		name   string
		header string
		query  string
		status int
	}{
		{"missing", "", "", http.StatusUnauthorized},
		{"bad scheme", "Token " + valid, "", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + sign(t, "other", jwt.MapClaims{"sub": id.String()}), "", http.StatusUnauthorized},
		{"numeric sub", "Bearer " + sign(t, "s3cret", jwt.MapClaims{"sub": 7}), "", http.StatusUnauthorized},
		{"expired", "Bearer " + sign(t, "s3cret", jwt.MapClaims{"sub": id.String(), "exp": time.Now().Add(-time.Hour).Unix()}), "", http.StatusUnauthorized},
		{"header", "Bearer " + valid, "", http.StatusOK},
		{"query token", "", "?access_token=" + valid, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/p"+tc.query, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusOK {
				require.Equal(t, id.String(), w.Body.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/owner", func(c *gin.Context) {
		c.Set(ContextUserRole, c.Query("role"))
		c.Next()
	}, RequireRole("owner"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	for role, status := range map[string]int{
		"owner": http.StatusNoContent,
		"staff": http.StatusForbidden,
		"":      http.StatusForbidden,
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/owner?role="+role, nil))
		require.Equal(t, status, w.Code, role)
	}
}
