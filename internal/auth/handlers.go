package auth

import (
	"errors"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"library-admin/internal/database/users"
	"library-admin/internal/entities"
	"library-admin/internal/forms"
)

// isLocalPath validates that a redirect path is local to prevent open
// redirect attacks.
func isLocalPath(path string) bool {
	if path == "" {
		return false
	}
	if !strings.HasPrefix(path, "/") {
		return false
	}
	// Protocol-relative URLs (//evil.com)
	if strings.HasPrefix(path, "//") {
		return false
	}
	if strings.Contains(path, "://") {
		return false
	}
	if strings.Contains(path, "\\") {
		return false
	}
	return true
}

// sanitizeRedirectPath returns a safe redirect path, defaulting to /home/.
func sanitizeRedirectPath(path string) string {
	if isLocalPath(path) {
		return path
	}
	return "/home/"
}

// AuthController handles login, registration and logout.
type AuthController struct {
	service   *Service
	sessions  *SessionManager
	users     *users.Repository
	templates *template.Template
}

// NewAuthController creates a new authentication controller.
func NewAuthController(service *Service, sessions *SessionManager, repo *users.Repository, templatesPath string) *AuthController {
	// Parse auth templates; absent templates degrade to JSON responses,
	// which is also what the handler tests rely on.
	pattern := filepath.Join(templatesPath, "auth", "*.html")
	tmpl, err := template.ParseGlob(pattern)
	if err != nil {
		tmpl = nil
	}

	return &AuthController{
		service:   service,
		sessions:  sessions,
		users:     repo,
		templates: tmpl,
	}
}

// RegisterRoutes registers authentication routes on the router.
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	router.GET("/login/", ac.LoginPage)
	router.POST("/login/", ac.Login)
	router.GET("/register/", ac.RegisterPage)
	router.POST("/register/", ac.Register)
	router.POST("/logout/", ac.Logout)
}

// LoginPage renders the login form.
func (ac *AuthController) LoginPage(c *gin.Context) {
	if ac.sessions.IsAuthenticated(c.Request) {
		c.Redirect(http.StatusFound, "/home/")
		return
	}

	ac.renderTemplate(c, "login.html", gin.H{
		"Title":     "Login",
		"Next":      sanitizeRedirectPath(c.Query("next")),
		"CSRFToken": GetCSRFToken(c),
		"Flashes":   ac.sessions.Flashes(c.Request),
	})
}

// Login handles the login form submission. Unknown usernames and wrong
// passwords produce the same message.
func (ac *AuthController) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	next := sanitizeRedirectPath(c.PostForm("next"))

	user, err := ac.service.Authenticate(username, password)
	if err != nil {
		ac.renderTemplate(c, "login.html", gin.H{
			"Title":     "Login",
			"Next":      next,
			"Username":  username,
			"CSRFToken": GetCSRFToken(c),
			"Error":     "Invalid username or password.",
		})
		return
	}

	if err := ac.sessions.SignIn(c.Request, user); err != nil {
		ac.renderTemplate(c, "login.html", gin.H{
			"Title":     "Login",
			"Next":      next,
			"Username":  username,
			"CSRFToken": GetCSRFToken(c),
			"Error":     "Failed to create session",
		})
		return
	}

	ac.sessions.AddFlash(c.Request, FlashSuccess, "Welcome back, "+user.Username+"!")
	c.Redirect(http.StatusFound, next)
}

// RegisterPage renders the registration form.
func (ac *AuthController) RegisterPage(c *gin.Context) {
	if ac.sessions.IsAuthenticated(c.Request) {
		c.Redirect(http.StatusFound, "/home/")
		return
	}

	ac.renderTemplate(c, "register.html", gin.H{
		"Title":     "Register",
		"CSRFToken": GetCSRFToken(c),
	})
}

// Register validates the registration form, creates the user with an
// empty profile in one transaction and signs them in.
func (ac *AuthController) Register(c *gin.Context) {
	if ac.sessions.IsAuthenticated(c.Request) {
		c.Redirect(http.StatusFound, "/home/")
		return
	}

	form := forms.RegisterForm{
		UserForm: forms.UserForm{
			Username:        c.PostForm("username"),
			Email:           c.PostForm("email"),
			Password:        c.PostForm("password"),
			PasswordConfirm: c.PostForm("password_confirm"),
		},
	}

	errs, err := form.Validate(ac.users)
	if err != nil {
		ac.renderRegisterError(c, &form, []string{"Registration failed. Please try again."})
		return
	}
	if errs.HasErrors() {
		ac.renderRegisterError(c, &form, errs.Messages())
		return
	}

	hash, err := ac.service.HashPassword(form.Password)
	if err != nil {
		ac.renderRegisterError(c, &form, []string{"Registration failed. Please try again."})
		return
	}

	user := &entities.User{
		Username:     form.Username,
		Email:        form.Email,
		PasswordHash: hash,
		IsActive:     true,
	}
	profile := &entities.UserProfile{}

	if err := ac.users.Create(user, profile); err != nil {
		msg := "Registration failed. Please try again."
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a creation race: the unique index fired after
			// validation passed.
			msg = "username: " + forms.MsgUsernameTaken
		}
		ac.renderRegisterError(c, &form, []string{msg})
		return
	}

	if err := ac.sessions.SignIn(c.Request, user); err != nil {
		c.Redirect(http.StatusFound, "/login/")
		return
	}

	ac.sessions.AddFlash(c.Request, FlashSuccess, "Registration successful!")
	c.Redirect(http.StatusFound, "/home/")
}

// Logout destroys the session and redirects to login. The flash lands
// in a fresh anonymous session created after the destroy.
func (ac *AuthController) Logout(c *gin.Context) {
	_ = ac.sessions.SignOut(c.Request)
	ac.sessions.AddFlash(c.Request, FlashInfo, "You have been logged out.")
	c.Redirect(http.StatusFound, "/login/")
}

func (ac *AuthController) renderRegisterError(c *gin.Context, form *forms.RegisterForm, messages []string) {
	ac.renderTemplate(c, "register.html", gin.H{
		"Title":     "Register",
		"Username":  form.Username,
		"Email":     form.Email,
		"CSRFToken": GetCSRFToken(c),
		"Error":     "Please correct the errors below.",
		"Errors":    messages,
	})
}

// renderTemplate renders an auth template or falls back to JSON.
func (ac *AuthController) renderTemplate(c *gin.Context, name string, data gin.H) {
	if ac.templates == nil {
		c.JSON(http.StatusOK, data)
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := ac.templates.ExecuteTemplate(c.Writer, name, data); err != nil {
		c.String(http.StatusInternalServerError, "Template error: %v", err)
	}
}
