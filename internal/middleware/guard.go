package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/config"
)

// PathClass classifies a request path for the route guard.
type PathClass int

const (
	// PathNeutral paths (API, docs, health, websocket) are never redirected;
	// their own middleware handles access.
	PathNeutral PathClass = iota
	PathPublic
	PathProtected
)

var neutralPrefixes = []string{
	"/api/",
	"/swagger/",
	"/ws",
	"/health",
}

var publicPaths = map[string]bool{
	"/":              true,
	"/auth/login":    true,
	"/auth/register": true,
}

// Classify buckets a path against the static allow-list. Anything not
// neutral and not public is protected.
func Classify(path string) PathClass {
	for _, prefix := range neutralPrefixes {
		if strings.HasPrefix(path, prefix) {
			return PathNeutral
		}
	}
	if publicPaths[path] {
		return PathPublic
	}
	return PathProtected
}

// RouteGuard redirects based on session-cookie presence alone: protected
// paths without a session go to the login page, public paths with a session
// go to the dashboard. No state outlives the request.
func RouteGuard(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(cfg.SessionCookieName)
		hasSession := err == nil && cookie != ""

		switch Classify(c.Request.URL.Path) {
		case PathProtected:
			if !hasSession {
				c.Redirect(http.StatusFound, cfg.LoginPath)
				c.Abort()
				return
			}
		case PathPublic:
			if hasSession {
				c.Redirect(http.StatusFound, cfg.DashboardPath)
				c.Abort()
				return
			}
		}
		c.Next()
	}
}
