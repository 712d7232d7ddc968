package auth

import (
	"net/http"

	"github.com/M-a-K-s-1-M/neshopify-sub001/config"

	"github.com/gin-gonic/gin"
)

const (
	AccessCookie  = "accessToken"
	RefreshCookie = "refreshToken"
)

// SetAuthCookies installs the access/refresh pair. Both are SameSite=Lax
// (CSRF-safe for the mutating endpoints), the refresh token is HttpOnly.
func SetAuthCookies(c *gin.Context, access, refresh string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessCookie, access, int(AccessTTL.Seconds()), "/", config.COOKIE_DOMAIN, config.COOKIE_SECURE, false)
	c.SetCookie(RefreshCookie, refresh, int(RefreshTTL.Seconds()), "/", config.COOKIE_DOMAIN, config.COOKIE_SECURE, true)
}

// ClearAuthCookies drops both cookies. Used on logout and whenever a
// refresh fails: we fail closed, never half-authenticated.
func ClearAuthCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessCookie, "", -1, "/", config.COOKIE_DOMAIN, config.COOKIE_SECURE, false)
	c.SetCookie(RefreshCookie, "", -1, "/", config.COOKIE_DOMAIN, config.COOKIE_SECURE, true)
}

// TokenFromRequest reads the named token cookie, falling back to the
// Authorization bearer header for non-browser callers.
func TokenFromRequest(c *gin.Context, cookie string) string {
	if v, err := c.Cookie(cookie); err == nil && v != "" {
		return v
	}
	h := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && h[:len(prefix)] == prefix {
		return h[len(prefix):]
	}
	return ""
}
