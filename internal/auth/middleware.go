package auth

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
)

// bookDetailPattern matches the public book detail view, which is the one
// entity page readable without a session.
var bookDetailPattern = regexp.MustCompile(`^/books/\d+/?$`)

// Middleware redirects unauthenticated browser requests on protected
// paths to the login page.
type Middleware struct {
	sessions    *SessionManager
	publicPaths map[string]bool
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(sessions *SessionManager) *Middleware {
	publicPaths := map[string]bool{
		"/":            true,
		"/login/":      true,
		"/register/":   true,
		"/favicon.ico": true,
	}

	return &Middleware{
		sessions:    sessions,
		publicPaths: publicPaths,
	}
}

// Handler returns a Gin middleware handler that authenticates requests.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.isPublicPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		if m.sessions.IsAuthenticated(c.Request) {
			c.Next()
			return
		}

		c.Redirect(http.StatusFound, "/login/?next="+c.Request.URL.Path)
		c.Abort()
	}
}

// isPublicPath checks if a path should be accessible without
// authentication.
func (m *Middleware) isPublicPath(path string) bool {
	if m.publicPaths[path] {
		return true
	}
	// Trailing-slash redirects arrive without the slash first
	if m.publicPaths[path+"/"] {
		return true
	}

	if strings.HasPrefix(path, "/static/") || strings.HasPrefix(path, "/media/") {
		return true
	}

	// The book detail view needs no session
	return bookDetailPattern.MatchString(path)
}
