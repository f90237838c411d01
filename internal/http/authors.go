package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"library-admin/internal/auth"
	"library-admin/internal/database/authors"
	"library-admin/internal/entities"
	"library-admin/internal/forms"
)

// AuthorsController serves the author management pages.
type AuthorsController struct {
	authors  *authors.Repository
	sessions *auth.SessionManager
}

// NewAuthorsController creates a new authors controller.
func NewAuthorsController(repo *authors.Repository, sessions *auth.SessionManager) *AuthorsController {
	return &AuthorsController{authors: repo, sessions: sessions}
}

// List shows one page of authors, alphabetical by name.
func (ac *AuthorsController) List(c *gin.Context) {
	page := pageParam(c)

	authorList, pagination, err := ac.authors.List(page)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to load authors")
		return
	}

	render(c, ac.sessions, "author_list.html", gin.H{
		"Title":      "Authors",
		"Authors":    authorList,
		"Pagination": pagination,
	})
}

// AddPage renders the empty author creation form.
func (ac *AuthorsController) AddPage(c *gin.Context) {
	ac.renderAuthorForm(c, "Add Author", 0, &forms.AuthorForm{}, nil)
}

// Add creates an author.
func (ac *AuthorsController) Add(c *gin.Context) {
	form := forms.AuthorForm{
		Name:      c.PostForm("name"),
		Biography: c.PostForm("biography"),
	}

	errs := form.Validate()
	if errs.HasErrors() {
		ac.renderAuthorForm(c, "Add Author", 0, &form, errs)
		return
	}

	author := &entities.Author{Name: form.Name, Biography: form.Biography}
	if err := ac.authors.Create(author); err != nil {
		c.String(http.StatusInternalServerError, "Failed to create author")
		return
	}

	flashAndRedirect(c, ac.sessions, auth.FlashSuccess,
		"Author "+author.Name+" created successfully.", "/authors/")
}

// EditPage renders the edit form prefilled with the current values.
func (ac *AuthorsController) EditPage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	author, err := ac.authors.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "Author not found")
			return
		}
		c.String(http.StatusInternalServerError, "Failed to load author")
		return
	}

	form := &forms.AuthorForm{Name: author.Name, Biography: author.Biography}
	ac.renderAuthorForm(c, "Edit Author", author.ID, form, nil)
}

// Edit updates an author.
func (ac *AuthorsController) Edit(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	author, err := ac.authors.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "Author not found")
			return
		}
		c.String(http.StatusInternalServerError, "Failed to load author")
		return
	}

	form := forms.AuthorForm{
		Name:      c.PostForm("name"),
		Biography: c.PostForm("biography"),
	}
	errs := form.Validate()
	if errs.HasErrors() {
		ac.renderAuthorForm(c, "Edit Author", author.ID, &form, errs)
		return
	}

	author.Name = form.Name
	author.Biography = form.Biography
	if err := ac.authors.Update(author); err != nil {
		c.String(http.StatusInternalServerError, "Failed to update author")
		return
	}

	flashAndRedirect(c, ac.sessions, auth.FlashSuccess,
		"Author "+author.Name+" updated successfully.", "/authors/")
}

// Delete confirms on GET and removes on POST. The author's books go with
// them.
func (ac *AuthorsController) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	author, err := ac.authors.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "Author not found")
			return
		}
		c.String(http.StatusInternalServerError, "Failed to load author")
		return
	}

	if c.Request.Method == http.MethodGet {
		render(c, ac.sessions, "author_confirm_delete.html", gin.H{
			"Title":  "Delete Author",
			"Author": author,
		})
		return
	}

	if err := ac.authors.Delete(author.ID); err != nil {
		c.String(http.StatusInternalServerError, "Failed to delete author")
		return
	}

	flashAndRedirect(c, ac.sessions, auth.FlashSuccess,
		"Author "+author.Name+" deleted successfully.", "/authors/")
}

func (ac *AuthorsController) renderAuthorForm(c *gin.Context, title string, authorID uint, form *forms.AuthorForm, errs *forms.Errors) {
	var messages []string
	if errs != nil {
		messages = errs.Messages()
	}
	render(c, ac.sessions, "author_form.html", gin.H{
		"Title":    title,
		"AuthorID": authorID,
		"Form":     form,
		"Errors":   messages,
	})
}
