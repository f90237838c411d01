// Package http wires the server-rendered admin UI: routing, controllers
// and template rendering.
package http

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"library-admin/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	}

	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	}

	// Absent templates are tolerated so the router can be exercised
	// without the asset tree; rendering routes then 500 instead of
	// failing startup.
	if tmpl, err := template.New("").Funcs(funcMap).ParseGlob(cfg.TemplatesPath + "/*.html"); err == nil {
		router.SetHTMLTemplate(tmpl)
	}

	if cfg.StaticPath != "" {
		router.Static("/static", cfg.StaticPath)
	}
	if cfg.UploadsPath != "" {
		router.Static("/media", cfg.UploadsPath)
	}

	// Authentication routes
	if cfg.AuthService != nil {
		authController := auth.NewAuthController(cfg.AuthService, cfg.SessionManager, cfg.Users, cfg.TemplatesPath)
		authController.RegisterRoutes(router)
	}

	dashboard := NewDashboardController(cfg)
	usersController := NewUsersController(cfg.Users, cfg.AuthService, cfg.SessionManager, cfg.UploadsPath)
	booksController := NewBooksController(cfg.Books, cfg.Authors, cfg.Categories, cfg.SessionManager, cfg.UploadsPath)
	authorsController := NewAuthorsController(cfg.Authors, cfg.SessionManager)
	categoriesController := NewCategoriesController(cfg.Categories, cfg.SessionManager)
	searchController := NewSearchController(cfg.Search, cfg.SessionManager)

	// Landing page: authenticated users land on the dashboard, everyone
	// else on the login form
	router.GET("/", func(c *gin.Context) {
		if cfg.SessionManager != nil && cfg.SessionManager.IsAuthenticated(c.Request) {
			c.Redirect(http.StatusFound, "/home/")
			return
		}
		c.Redirect(http.StatusFound, "/login/")
	})

	router.GET("/home/", dashboard.Home)
	router.GET("/dashboard/", dashboard.Home)

	// User management
	router.GET("/users/", usersController.List)
	router.GET("/users/search/", usersController.Search)
	router.GET("/users/add/", usersController.AddPage)
	router.POST("/users/add/", usersController.Add)
	router.GET("/users/:id/", usersController.Detail)
	router.GET("/users/edit/:id/", usersController.EditPage)
	router.POST("/users/edit/:id/", usersController.Edit)
	router.GET("/users/delete/:id/", usersController.Delete)
	router.POST("/users/delete/:id/", usersController.Delete)

	// Book catalog
	router.GET("/books/", booksController.List)
	router.GET("/books/search/", booksController.Search)
	router.GET("/books/add/", booksController.AddPage)
	router.POST("/books/add/", booksController.Add)
	router.GET("/books/:id/", booksController.Detail)
	router.GET("/books/edit/:id/", booksController.EditPage)
	router.POST("/books/edit/:id/", booksController.Edit)
	router.GET("/books/delete/:id/", booksController.Delete)
	router.POST("/books/delete/:id/", booksController.Delete)

	// Authors
	router.GET("/authors/", authorsController.List)
	router.GET("/authors/add/", authorsController.AddPage)
	router.POST("/authors/add/", authorsController.Add)
	router.GET("/authors/edit/:id/", authorsController.EditPage)
	router.POST("/authors/edit/:id/", authorsController.Edit)
	router.GET("/authors/delete/:id/", authorsController.Delete)
	router.POST("/authors/delete/:id/", authorsController.Delete)

	// Categories
	router.GET("/categories/", categoriesController.List)
	router.GET("/categories/add/", categoriesController.AddPage)
	router.POST("/categories/add/", categoriesController.Add)
	router.GET("/categories/edit/:id/", categoriesController.EditPage)
	router.POST("/categories/edit/:id/", categoriesController.Edit)
	router.GET("/categories/delete/:id/", categoriesController.Delete)
	router.POST("/categories/delete/:id/", categoriesController.Delete)

	// Global search
	router.GET("/search/", searchController.Global)

	return router
}
