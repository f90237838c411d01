package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-admin/internal/auth"
	"library-admin/internal/database/authors"
	"library-admin/internal/database/books"
	"library-admin/internal/database/categories"
	"library-admin/internal/database/users"
)

// recentCount is how many newest users and books the dashboard previews.
const recentCount = 5

// DashboardController serves the staff landing page.
type DashboardController struct {
	users      *users.Repository
	books      *books.Repository
	authors    *authors.Repository
	categories *categories.Repository
	sessions   *auth.SessionManager
	version    string
}

// NewDashboardController creates a new dashboard controller.
func NewDashboardController(cfg RouterConfig) *DashboardController {
	return &DashboardController{
		users:      cfg.Users,
		books:      cfg.Books,
		authors:    cfg.Authors,
		categories: cfg.Categories,
		sessions:   cfg.SessionManager,
		version:    cfg.Version,
	}
}

// Home shows entity counts and the most recent users and books.
func (dc *DashboardController) Home(c *gin.Context) {
	userCount, err := dc.users.Count()
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to load dashboard")
		return
	}
	bookCount, err := dc.books.Count()
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to load dashboard")
		return
	}
	authorCount, err := dc.authors.Count()
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to load dashboard")
		return
	}
	categoryCount, err := dc.categories.Count()
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	recentUsers, err := dc.users.Recent(recentCount)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to load dashboard")
		return
	}
	recentBooks, err := dc.books.Recent(recentCount)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	render(c, dc.sessions, "home.html", gin.H{
		"Title":         "Dashboard",
		"UserCount":     userCount,
		"BookCount":     bookCount,
		"AuthorCount":   authorCount,
		"CategoryCount": categoryCount,
		"RecentUsers":   recentUsers,
		"RecentBooks":   recentBooks,
		"Version":       dc.version,
	})
}
