package transport

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nogmois/nana-back/internal/auth"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(resolver auth.Resolver) *gin.Engine {
	r := gin.New()
	r.GET("/", RequireOwner(resolver), func(c *gin.Context) {
		c.String(http.StatusOK, owner(c))
	})
	return r
}

func TestRequireOwner(t *testing.T) {
	resolver := auth.NewJWTResolver("secret")
	token, err := resolver.Issue("owner-1", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer "+token)
	rec := httptest.NewRecorder()

	newAuthRouter(resolver).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "owner-1", rec.Body.String())
}

func TestRequireOwner_Invalid(t *testing.T) {
	router := newAuthRouter(auth.NewJWTResolver("secret"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "missing bearer token")

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), `"code":"unauthorized"`)
}

func TestRequireOwner_Static(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	newAuthRouter(auth.StaticResolver{OwnerID: "local"}).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "local", rec.Body.String())
}
