package http

import (
	"library-admin/internal/auth"
	"library-admin/internal/database"
	"library-admin/internal/database/authors"
	"library-admin/internal/database/books"
	"library-admin/internal/database/categories"
	"library-admin/internal/database/users"
	"library-admin/internal/search"
)

// RouterConfig holds all dependencies needed to construct the HTTP
// router. Using a config struct keeps NewRouter's signature stable as
// dependencies grow.
type RouterConfig struct {
	// Data access
	Database   *database.Database
	Users      *users.Repository
	Books      *books.Repository
	Authors    *authors.Repository
	Categories *categories.Repository
	Search     *search.Service

	// Authentication
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	AuthMiddleware *auth.Middleware
	CSRFSecret     []byte
	SecureCookies  bool

	// Paths
	TemplatesPath string
	StaticPath    string
	UploadsPath   string

	// Application version reported on the dashboard
	Version string
}
