package security

import (
	"net/http"
	"strings"

	"github.com/BlackYHawk/react-food-AI-sub000/global"
	errs "github.com/BlackYHawk/react-food-AI-sub000/tools/errs"
	toolsec "github.com/BlackYHawk/react-food-AI-sub000/tools/security"
	"github.com/gin-gonic/gin"
)

// Context keys downstream handlers read after the middleware has run.
const (
	CtxUserIDKey   = "userId"
	CtxUsernameKey = "username"
)

type Options struct {
	HeaderToken               string // default "Authorization"
	EnableAuthorizationBearer bool   // accept "Bearer <token>", default true
	AllowQueryToken           bool   // accept ?token= (websocket upgrades)
}

func DefaultOptions() *Options {
	return &Options{
		HeaderToken:               "Authorization",
		EnableAuthorizationBearer: true,
	}
}

// ExtractToken pulls the bearer credential off the request without
// validating it. Shared with the websocket handler, which must close with a
// policy code rather than write an HTTP response.
func ExtractToken(c *gin.Context, opts *Options) string {
	if opts == nil {
		opts = DefaultOptions()
	}
	raw := strings.TrimSpace(c.GetHeader(opts.HeaderToken))
	if raw != "" {
		if opts.EnableAuthorizationBearer && strings.HasPrefix(strings.ToLower(raw), "bearer ") {
			return strings.TrimSpace(raw[len("bearer "):])
		}
		return raw
	}
	if opts.AllowQueryToken {
		return strings.TrimSpace(c.Query("token"))
	}
	return ""
}

func Middleware(opts *Options) gin.HandlerFunc {
	if opts == nil {
		opts = DefaultOptions()
	}
	return func(c *gin.Context) {
		token := ExtractToken(c, opts)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusOK, errs.ErrTokenInvalid)
			return
		}

		claims, err := toolsec.Verify(
			toolsec.Options{Secret: global.JwtSecret(), TTL: global.Config.Jwt.TokenTTL.D()},
			token,
		)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusOK, errs.ErrTokenExpired)
			return
		}

		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUsernameKey, claims.Username)
		c.Next()
	}
}

// UserID returns the authenticated user id set by Middleware.
func UserID(c *gin.Context) string {
	return c.GetString(CtxUserIDKey)
}

func Username(c *gin.Context) string {
	return c.GetString(CtxUsernameKey)
}
