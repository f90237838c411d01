package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"library-admin/internal/auth"
	"library-admin/internal/database/authors"
	"library-admin/internal/database/books"
	"library-admin/internal/database/categories"
	"library-admin/internal/entities"
	"library-admin/internal/forms"
)

// BooksController serves the book catalog pages.
type BooksController struct {
	books       *books.Repository
	authors     *authors.Repository
	categories  *categories.Repository
	sessions    *auth.SessionManager
	uploadsPath string
}

// NewBooksController creates a new books controller.
func NewBooksController(booksRepo *books.Repository, authorsRepo *authors.Repository, categoriesRepo *categories.Repository, sessions *auth.SessionManager, uploadsPath string) *BooksController {
	return &BooksController{
		books:       booksRepo,
		authors:     authorsRepo,
		categories:  categoriesRepo,
		sessions:    sessions,
		uploadsPath: uploadsPath,
	}
}

// List shows one page of books, newest first.
func (bc *BooksController) List(c *gin.Context) {
	page := pageParam(c)

	bookList, pagination, err := bc.books.List(page)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to load books")
		return
	}

	render(c, bc.sessions, "book_list.html", gin.H{
		"Title":      "Books",
		"Books":      bookList,
		"Pagination": pagination,
	})
}

// Search shows books matching the query under the selected field filter.
func (bc *BooksController) Search(c *gin.Context) {
	page := pageParam(c)
	query := c.Query("q")
	filter := c.DefaultQuery("filter", "all")

	bookList, pagination, err := bc.books.Search(query, filter, page)
	if err != nil {
		c.String(http.StatusInternalServerError, "Search failed")
		return
	}

	render(c, bc.sessions, "book_search.html", gin.H{
		"Title":      "Search Books",
		"Books":      bookList,
		"Pagination": pagination,
		"Query":      query,
		"Filter":     filter,
	})
}

// AddPage renders the empty book creation form.
func (bc *BooksController) AddPage(c *gin.Context) {
	bc.renderBookForm(c, "Add Book", 0, &forms.BookForm{Copies: 1}, nil)
}

// Add creates a book with an optional cover image upload.
func (bc *BooksController) Add(c *gin.Context) {
	form := bc.parseBookForm(c)

	errs := form.Validate()
	if errs.HasErrors() {
		bc.renderBookForm(c, "Add Book", 0, form, errs)
		return
	}

	imagePath, err := saveUpload(c, bc.uploadsPath, "image", "books")
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to save image")
		return
	}

	book := &entities.Book{
		Title:       form.Title,
		Description: form.Description,
		AuthorID:    form.AuthorID,
		CategoryID:  form.CategoryID,
		Copies:      form.Copies,
		Image:       imagePath,
	}

	if err := bc.books.Create(book); err != nil {
		c.String(http.StatusInternalServerError, "Failed to create book")
		return
	}

	flashAndRedirect(c, bc.sessions, auth.FlashSuccess,
		"Book "+book.Title+" created successfully.", "/books/")
}

// Detail shows one book. This page is readable without a session.
func (bc *BooksController) Detail(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	book, err := bc.books.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "Book not found")
			return
		}
		c.String(http.StatusInternalServerError, "Failed to load book")
		return
	}

	render(c, bc.sessions, "book_detail.html", gin.H{
		"Title": book.Title,
		"Book":  book,
	})
}

// EditPage renders the edit form prefilled with the current values.
func (bc *BooksController) EditPage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	book, err := bc.books.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "Book not found")
			return
		}
		c.String(http.StatusInternalServerError, "Failed to load book")
		return
	}

	form := &forms.BookForm{
		Title:       book.Title,
		Description: book.Description,
		AuthorID:    book.AuthorID,
		CategoryID:  book.CategoryID,
		Copies:      book.Copies,
	}
	bc.renderBookForm(c, "Edit Book", book.ID, form, nil)
}

// Edit updates a book. An omitted image upload keeps the current one.
func (bc *BooksController) Edit(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	book, err := bc.books.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "Book not found")
			return
		}
		c.String(http.StatusInternalServerError, "Failed to load book")
		return
	}

	form := bc.parseBookForm(c)
	errs := form.Validate()
	if errs.HasErrors() {
		bc.renderBookForm(c, "Edit Book", book.ID, form, errs)
		return
	}

	imagePath, err := saveUpload(c, bc.uploadsPath, "image", "books")
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to save image")
		return
	}

	book.Title = form.Title
	book.Description = form.Description
	book.AuthorID = form.AuthorID
	book.CategoryID = form.CategoryID
	book.Copies = form.Copies
	if imagePath != "" {
		book.Image = imagePath
	}
	// Stale preloads would otherwise be upserted over the new references
	book.Author = entities.Author{}
	book.Category = entities.Category{}

	if err := bc.books.Update(book); err != nil {
		c.String(http.StatusInternalServerError, "Failed to update book")
		return
	}

	flashAndRedirect(c, bc.sessions, auth.FlashSuccess,
		"Book "+book.Title+" updated successfully.", "/books/")
}

// Delete confirms on GET and removes on POST.
func (bc *BooksController) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	book, err := bc.books.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "Book not found")
			return
		}
		c.String(http.StatusInternalServerError, "Failed to load book")
		return
	}

	if c.Request.Method == http.MethodGet {
		render(c, bc.sessions, "book_confirm_delete.html", gin.H{
			"Title": "Delete Book",
			"Book":  book,
		})
		return
	}

	if err := bc.books.Delete(book.ID); err != nil {
		c.String(http.StatusInternalServerError, "Failed to delete book")
		return
	}

	flashAndRedirect(c, bc.sessions, auth.FlashSuccess,
		"Book "+book.Title+" deleted successfully.", "/books/")
}

func (bc *BooksController) parseBookForm(c *gin.Context) *forms.BookForm {
	authorID, _ := strconv.ParseUint(c.PostForm("author"), 10, 32)
	categoryID, _ := strconv.ParseUint(c.PostForm("category"), 10, 32)
	copies, err := strconv.Atoi(c.PostForm("copies"))
	if err != nil {
		copies = 0
	}

	return &forms.BookForm{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		AuthorID:    uint(authorID),
		CategoryID:  uint(categoryID),
		Copies:      copies,
	}
}

func (bc *BooksController) renderBookForm(c *gin.Context, title string, bookID uint, form *forms.BookForm, errs *forms.Errors) {
	authorList, err := bc.authors.All()
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to load authors")
		return
	}
	categoryList, err := bc.categories.All()
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to load categories")
		return
	}

	var messages []string
	if errs != nil {
		messages = errs.Messages()
	}
	render(c, bc.sessions, "book_form.html", gin.H{
		"Title":      title,
		"BookID":     bookID,
		"Form":       form,
		"Authors":    authorList,
		"Categories": categoryList,
		"Errors":     messages,
	})
}
