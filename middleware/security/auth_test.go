package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/BlackYHawk/react-food-AI-sub000/global"
	toolsec "github.com/BlackYHawk/react-food-AI-sub000/tools/security"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Middleware(DefaultOptions()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": UserID(c), "username": Username(c)})
	})
	return r
}

func issueToken(t *testing.T, ttl time.Duration) string {
	t.Helper()
	token, _, err := toolsec.Generate(
		toolsec.Options{Secret: global.JwtSecret(), TTL: ttl}, "u1", "alice")
	require.NoError(t, err)
	return token
}

func TestMiddleware_AcceptsBearerToken(t *testing.T) {
	r := newProtectedRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, time.Hour))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":"u1"`)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
}

func TestMiddleware_RejectsMissingToken(t *testing.T) {
	r := newProtectedRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Contains(t, w.Body.String(), `"code":1001`)
	assert.NotContains(t, w.Body.String(), "userId")
}

func TestMiddleware_RejectsExpiredToken(t *testing.T) {
	r := newProtectedRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, -time.Minute))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Contains(t, w.Body.String(), `"code":1002`)
}

func TestMiddleware_RejectsMangledToken(t *testing.T) {
	r := newProtectedRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Contains(t, w.Body.String(), `"code":1002`)
}

func TestExtractToken_QueryFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/ws?token=abc", nil)

	got := ExtractToken(c, &Options{
		HeaderToken:               "Authorization",
		EnableAuthorizationBearer: true,
		AllowQueryToken:           true,
	})
	assert.Equal(t, "abc", got)

	// header wins over query
	c.Request.Header.Set("Authorization", "Bearer xyz")
	got = ExtractToken(c, &Options{
		HeaderToken:               "Authorization",
		EnableAuthorizationBearer: true,
		AllowQueryToken:           true,
	})
	assert.Equal(t, "xyz", got)
}
