package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"library-admin/internal/auth"
	"library-admin/internal/database/categories"
	"library-admin/internal/entities"
	"library-admin/internal/forms"
)

// CategoriesController serves the category management pages.
type CategoriesController struct {
	categories *categories.Repository
	sessions   *auth.SessionManager
}

// NewCategoriesController creates a new categories controller.
func NewCategoriesController(repo *categories.Repository, sessions *auth.SessionManager) *CategoriesController {
	return &CategoriesController{categories: repo, sessions: sessions}
}

// List shows one page of categories, alphabetical by name.
func (cc *CategoriesController) List(c *gin.Context) {
	page := pageParam(c)

	categoryList, pagination, err := cc.categories.List(page)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to load categories")
		return
	}

	render(c, cc.sessions, "category_list.html", gin.H{
		"Title":      "Categories",
		"Categories": categoryList,
		"Pagination": pagination,
	})
}

// AddPage renders the empty category creation form.
func (cc *CategoriesController) AddPage(c *gin.Context) {
	cc.renderCategoryForm(c, "Add Category", 0, &forms.CategoryForm{}, nil)
}

// Add creates a category.
func (cc *CategoriesController) Add(c *gin.Context) {
	form := forms.CategoryForm{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
	}

	errs := form.Validate()
	if errs.HasErrors() {
		cc.renderCategoryForm(c, "Add Category", 0, &form, errs)
		return
	}

	category := &entities.Category{Name: form.Name, Description: form.Description}
	if err := cc.categories.Create(category); err != nil {
		c.String(http.StatusInternalServerError, "Failed to create category")
		return
	}

	flashAndRedirect(c, cc.sessions, auth.FlashSuccess,
		"Category "+category.Name+" created successfully.", "/categories/")
}

// EditPage renders the edit form prefilled with the current values.
func (cc *CategoriesController) EditPage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	category, err := cc.categories.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "Category not found")
			return
		}
		c.String(http.StatusInternalServerError, "Failed to load category")
		return
	}

	form := &forms.CategoryForm{Name: category.Name, Description: category.Description}
	cc.renderCategoryForm(c, "Edit Category", category.ID, form, nil)
}

// Edit updates a category.
func (cc *CategoriesController) Edit(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	category, err := cc.categories.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "Category not found")
			return
		}
		c.String(http.StatusInternalServerError, "Failed to load category")
		return
	}

	form := forms.CategoryForm{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
	}
	errs := form.Validate()
	if errs.HasErrors() {
		cc.renderCategoryForm(c, "Edit Category", category.ID, &form, errs)
		return
	}

	category.Name = form.Name
	category.Description = form.Description
	if err := cc.categories.Update(category); err != nil {
		c.String(http.StatusInternalServerError, "Failed to update category")
		return
	}

	flashAndRedirect(c, cc.sessions, auth.FlashSuccess,
		"Category "+category.Name+" updated successfully.", "/categories/")
}

// Delete confirms on GET and removes on POST. Books in the category go
// with it.
func (cc *CategoriesController) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	category, err := cc.categories.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "Category not found")
			return
		}
		c.String(http.StatusInternalServerError, "Failed to load category")
		return
	}

	if c.Request.Method == http.MethodGet {
		render(c, cc.sessions, "category_confirm_delete.html", gin.H{
			"Title":    "Delete Category",
			"Category": category,
		})
		return
	}

	if err := cc.categories.Delete(category.ID); err != nil {
		c.String(http.StatusInternalServerError, "Failed to delete category")
		return
	}

	flashAndRedirect(c, cc.sessions, auth.FlashSuccess,
		"Category "+category.Name+" deleted successfully.", "/categories/")
}

func (cc *CategoriesController) renderCategoryForm(c *gin.Context, title string, categoryID uint, form *forms.CategoryForm, errs *forms.Errors) {
	var messages []string
	if errs != nil {
		messages = errs.Messages()
	}
	render(c, cc.sessions, "category_form.html", gin.H{
		"Title":      title,
		"CategoryID": categoryID,
		"Form":       form,
		"Errors":     messages,
	})
}
