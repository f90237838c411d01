package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"library-admin/internal/auth"
	"library-admin/internal/database/users"
	"library-admin/internal/entities"
	"library-admin/internal/forms"
)

// UsersController serves the staff account management pages.
type UsersController struct {
	users       *users.Repository
	authService *auth.Service
	sessions    *auth.SessionManager
	uploadsPath string
}

// NewUsersController creates a new users controller.
func NewUsersController(repo *users.Repository, authService *auth.Service, sessions *auth.SessionManager, uploadsPath string) *UsersController {
	return &UsersController{
		users:       repo,
		authService: authService,
		sessions:    sessions,
		uploadsPath: uploadsPath,
	}
}

// List shows one page of users, newest first.
func (uc *UsersController) List(c *gin.Context) {
	page := pageParam(c)

	userList, pagination, err := uc.users.List(page)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to load users")
		return
	}

	render(c, uc.sessions, "user_list.html", gin.H{
		"Title":      "Users",
		"Users":      userList,
		"Pagination": pagination,
	})
}

// Search shows users matching the query under the selected field filter.
// An empty query behaves like the plain listing.
func (uc *UsersController) Search(c *gin.Context) {
	page := pageParam(c)
	query := c.Query("q")
	filter := c.DefaultQuery("filter", "all")

	userList, pagination, err := uc.users.Search(query, filter, page)
	if err != nil {
		c.String(http.StatusInternalServerError, "Search failed")
		return
	}

	render(c, uc.sessions, "user_search.html", gin.H{
		"Title":      "Search Users",
		"Users":      userList,
		"Pagination": pagination,
		"Query":      query,
		"Filter":     filter,
	})
}

// AddPage renders the empty user creation form.
func (uc *UsersController) AddPage(c *gin.Context) {
	render(c, uc.sessions, "user_form.html", gin.H{
		"Title": "Add User",
	})
}

// Add creates a user with their profile. A blank password gets a random
// one generated and shown once in the success notice.
func (uc *UsersController) Add(c *gin.Context) {
	userForm := forms.UserForm{
		Username:        c.PostForm("username"),
		Email:           c.PostForm("email"),
		Password:        c.PostForm("password"),
		PasswordConfirm: c.PostForm("password_confirm"),
	}
	profileForm := forms.ProfileForm{
		Address:     c.PostForm("address"),
		PhoneNumber: c.PostForm("phone_number"),
	}

	errs, err := userForm.Validate(uc.users, 0)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to validate form")
		return
	}
	for _, msg := range profileForm.Validate().Messages() {
		errs.Add("profile", msg)
	}
	if errs.HasErrors() {
		uc.renderUserForm(c, "Add User", 0, &userForm, &profileForm, errs)
		return
	}

	password := userForm.Password
	generated := false
	if password == "" {
		password, err = auth.GeneratePassword(auth.GeneratedPasswordLength)
		if err != nil {
			c.String(http.StatusInternalServerError, "Failed to generate password")
			return
		}
		generated = true
	}

	hash, err := uc.authService.HashPassword(password)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := &entities.User{
		Username:     userForm.Username,
		Email:        userForm.Email,
		PasswordHash: hash,
		IsActive:     true,
	}
	imagePath, err := saveUpload(c, uc.uploadsPath, "profile_image", "profiles")
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to save profile image")
		return
	}

	profile := &entities.UserProfile{
		Address:      profileForm.Address,
		PhoneNumber:  profileForm.PhoneNumber,
		ProfileImage: imagePath,
	}

	if err := uc.users.Create(user, profile); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			errs.Add("username", forms.MsgUsernameTaken)
			uc.renderUserForm(c, "Add User", 0, &userForm, &profileForm, errs)
			return
		}
		c.String(http.StatusInternalServerError, "Failed to create user")
		return
	}

	message := "User " + user.Username + " created successfully."
	if generated {
		message += " Generated password: " + password
	}
	flashAndRedirect(c, uc.sessions, auth.FlashSuccess, message, "/users/")
}

// Detail shows one user with their profile, creating an empty profile on
// first view.
func (uc *UsersController) Detail(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	user, err := uc.users.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "User not found")
			return
		}
		c.String(http.StatusInternalServerError, "Failed to load user")
		return
	}

	profile, err := uc.users.GetOrCreateProfile(user.ID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to load profile")
		return
	}

	render(c, uc.sessions, "user_detail.html", gin.H{
		"Title":   user.Username,
		"User":    user,
		"Profile": profile,
	})
}

// EditPage renders the edit form prefilled with the current values.
func (uc *UsersController) EditPage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	user, err := uc.users.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "User not found")
			return
		}
		c.String(http.StatusInternalServerError, "Failed to load user")
		return
	}

	profile, err := uc.users.GetOrCreateProfile(user.ID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to load profile")
		return
	}

	userForm := forms.UserForm{Username: user.Username, Email: user.Email}
	profileForm := forms.ProfileForm{Address: profile.Address, PhoneNumber: profile.PhoneNumber}
	uc.renderUserForm(c, "Edit User", user.ID, &userForm, &profileForm, nil)
}

// Edit updates a user and their profile. A blank password leaves the
// current one unchanged.
func (uc *UsersController) Edit(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	user, err := uc.users.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "User not found")
			return
		}
		c.String(http.StatusInternalServerError, "Failed to load user")
		return
	}

	profile, err := uc.users.GetOrCreateProfile(user.ID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to load profile")
		return
	}

	userForm := forms.UserForm{
		Username:        c.PostForm("username"),
		Email:           c.PostForm("email"),
		Password:        c.PostForm("password"),
		PasswordConfirm: c.PostForm("password_confirm"),
	}
	profileForm := forms.ProfileForm{
		Address:     c.PostForm("address"),
		PhoneNumber: c.PostForm("phone_number"),
	}

	errs, err := userForm.Validate(uc.users, user.ID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to validate form")
		return
	}
	for _, msg := range profileForm.Validate().Messages() {
		errs.Add("profile", msg)
	}
	if errs.HasErrors() {
		uc.renderUserForm(c, "Edit User", user.ID, &userForm, &profileForm, errs)
		return
	}

	user.Username = userForm.Username
	user.Email = userForm.Email
	if userForm.Password != "" {
		hash, err := uc.authService.HashPassword(userForm.Password)
		if err != nil {
			c.String(http.StatusInternalServerError, "Failed to hash password")
			return
		}
		user.PasswordHash = hash
	}

	profile.Address = profileForm.Address
	profile.PhoneNumber = profileForm.PhoneNumber

	imagePath, err := saveUpload(c, uc.uploadsPath, "profile_image", "profiles")
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to save profile image")
		return
	}
	if imagePath != "" {
		profile.ProfileImage = imagePath
	}

	if err := uc.users.Update(user, profile); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			errs.Add("username", forms.MsgUsernameTaken)
			uc.renderUserForm(c, "Edit User", user.ID, &userForm, &profileForm, errs)
			return
		}
		c.String(http.StatusInternalServerError, "Failed to update user")
		return
	}

	flashAndRedirect(c, uc.sessions, auth.FlashSuccess,
		"User "+user.Username+" updated successfully.", "/users/")
}

// Delete confirms on GET and removes on POST. The signed-in user can
// never delete their own account; the guard runs before the method
// branch so even the confirmation page is refused.
func (uc *UsersController) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	user, err := uc.users.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "User not found")
			return
		}
		c.String(http.StatusInternalServerError, "Failed to load user")
		return
	}

	if uc.sessions != nil && uc.sessions.UserID(c.Request) == user.ID {
		flashAndRedirect(c, uc.sessions, auth.FlashError,
			"You can't delete the currently logged in user.", "/users/")
		return
	}

	if c.Request.Method == http.MethodGet {
		render(c, uc.sessions, "user_confirm_delete.html", gin.H{
			"Title": "Delete User",
			"User":  user,
		})
		return
	}

	if err := uc.users.Delete(user.ID); err != nil {
		c.String(http.StatusInternalServerError, "Failed to delete user")
		return
	}

	flashAndRedirect(c, uc.sessions, auth.FlashSuccess,
		"User "+user.Username+" deleted successfully.", "/users/")
}

func (uc *UsersController) renderUserForm(c *gin.Context, title string, userID uint, userForm *forms.UserForm, profileForm *forms.ProfileForm, errs *forms.Errors) {
	var messages []string
	if errs != nil {
		messages = errs.Messages()
	}
	render(c, uc.sessions, "user_form.html", gin.H{
		"Title":   title,
		"UserID":  userID,
		"Form":    userForm,
		"Profile": profileForm,
		"Errors":  messages,
	})
}
