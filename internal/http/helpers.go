package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"library-admin/internal/auth"
)

// pageParam reads the "page" query parameter, defaulting to 1. Garbage
// values fall back to 1 as well; out-of-range pages are clamped by the
// pagination layer.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return 1
	}
	return page
}

// idParam parses the numeric :id path parameter. On failure it writes a
// 404 response and returns false.
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.String(http.StatusNotFound, "Not found")
		return 0, false
	}
	return uint(id), true
}

// render executes an HTML template with the shared page context mixed
// in: session identity, queued flash messages and the CSRF token.
func render(c *gin.Context, sessions *auth.SessionManager, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if sessions != nil {
		data["IsAuthenticated"] = sessions.IsAuthenticated(c.Request)
		data["CurrentUsername"] = sessions.Username(c.Request)
		data["Flashes"] = sessions.Flashes(c.Request)
	}
	if _, ok := data["CSRFToken"]; !ok {
		data["CSRFToken"] = auth.GetCSRFToken(c)
	}
	c.HTML(http.StatusOK, name, data)
}

// flashAndRedirect queues a one-shot notice and redirects.
func flashAndRedirect(c *gin.Context, sessions *auth.SessionManager, level, message, location string) {
	if sessions != nil {
		sessions.AddFlash(c.Request, level, message)
	}
	c.Redirect(http.StatusFound, location)
}
