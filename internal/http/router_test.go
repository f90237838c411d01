package http

import (
	"html/template"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"library-admin/internal/auth"
	"library-admin/internal/config"
	"library-admin/internal/database"
	"library-admin/internal/database/authors"
	"library-admin/internal/database/books"
	"library-admin/internal/database/categories"
	"library-admin/internal/database/users"
	"library-admin/internal/entities"
	"library-admin/internal/search"
)

// testEnv bundles the wired application pieces a handler test needs.
type testEnv struct {
	db         *database.Database
	users      *users.Repository
	books      *books.Repository
	authors    *authors.Repository
	categories *categories.Repository
	service    *auth.Service
}

// testTemplates defines a minimal stand-in for every page template so
// handlers can render without the asset tree. Bodies expose just enough
// data to assert on.
const testTemplates = `
{{define "home.html"}}dashboard users:{{.UserCount}} books:{{.BookCount}}{{end}}
{{define "user_list.html"}}users:{{len .Users}} page:{{.Pagination.Page}}{{range .Flashes}}<{{.Message}}>{{end}}{{end}}
{{define "user_search.html"}}found:{{len .Users}}{{end}}
{{define "user_form.html"}}form{{range .Errors}}[{{.}}]{{end}}{{end}}
{{define "user_detail.html"}}{{.User.Username}}|{{.Profile.Address}}{{end}}
{{define "user_confirm_delete.html"}}confirm {{.User.Username}}{{end}}
{{define "book_list.html"}}books:{{len .Books}} page:{{.Pagination.Page}}{{range .Flashes}}<{{.Message}}>{{end}}{{end}}
{{define "book_search.html"}}found:{{len .Books}}{{end}}
{{define "book_form.html"}}form{{range .Errors}}[{{.}}]{{end}}{{end}}
{{define "book_detail.html"}}{{.Book.Title}} by {{.Book.Author.Name}}{{end}}
{{define "book_confirm_delete.html"}}confirm {{.Book.Title}}{{end}}
{{define "author_list.html"}}authors:{{len .Authors}}{{end}}
{{define "author_form.html"}}form{{range .Errors}}[{{.}}]{{end}}{{end}}
{{define "author_confirm_delete.html"}}confirm {{.Author.Name}}{{end}}
{{define "category_list.html"}}categories:{{len .Categories}}{{end}}
{{define "category_form.html"}}form{{range .Errors}}[{{.}}]{{end}}{{end}}
{{define "category_confirm_delete.html"}}confirm {{.Category.Name}}{{end}}
{{define "search_results.html"}}b:{{len .Results.Books}} u:{{len .Results.Users}} a:{{len .Results.Authors}} c:{{len .Results.Categories}}{{end}}
`

func setupTestServer(t *testing.T) (*httptest.Server, *testEnv, func()) {
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + t.Name() + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	env := &testEnv{
		db:         db,
		users:      users.NewRepository(db.DB),
		books:      books.NewRepository(db.DB),
		authors:    authors.NewRepository(db.DB),
		categories: categories.NewRepository(db.DB),
	}

	authCfg := config.Auth{
		BcryptCost:      bcrypt.MinCost,
		SessionLifetime: 24 * time.Hour,
		SecureCookies:   false,
	}
	env.service = auth.NewService(db.DB, authCfg)

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)
	sessions, err := auth.NewSessionManager(sqlDB, authCfg)
	require.NoError(t, err)

	router := NewRouter(RouterConfig{
		Database:       db,
		Users:          env.users,
		Books:          env.books,
		Authors:        env.authors,
		Categories:     env.categories,
		Search:         search.NewService(db.DB),
		AuthService:    env.service,
		SessionManager: sessions,
		AuthMiddleware: auth.NewMiddleware(sessions),
		SecureCookies:  false,
		TemplatesPath:  t.TempDir(),
		UploadsPath:    t.TempDir(),
		Version:        "test",
	})
	router.SetHTMLTemplate(template.Must(template.New("").Parse(testTemplates)))

	server := httptest.NewServer(router)

	cleanup := func() {
		server.Close()
		db.Close()
		os.Remove(dbPath)
	}

	return server, env, cleanup
}

// newClient returns an HTTP client with a cookie jar. With follow false
// the client reports redirects instead of chasing them.
func newClient(t *testing.T, follow bool) *http.Client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	client := &http.Client{Jar: jar}
	if !follow {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	return client
}

func seedAccount(t *testing.T, env *testEnv, username, password string) *entities.User {
	hash, err := env.service.HashPassword(password)
	require.NoError(t, err)

	user := &entities.User{Username: username, Email: username + "@example.com", PasswordHash: hash, IsActive: true}
	require.NoError(t, env.users.Create(user, &entities.UserProfile{}))
	return user
}

func login(t *testing.T, client *http.Client, serverURL, username, password string) {
	resp, err := client.PostForm(serverURL+"/login/", url.Values{
		"username": {username},
		"password": {password},
	})
	require.NoError(t, err)
	resp.Body.Close()
}

func entitiesBook(title string, authorID, categoryID uint) *entities.Book {
	return &entities.Book{Title: title, AuthorID: authorID, CategoryID: categoryID, Copies: 1}
}

func seedCatalog(t *testing.T, env *testEnv) (entities.Author, entities.Category) {
	author := entities.Author{Name: "Frank Herbert"}
	category := entities.Category{Name: "Science Fiction"}
	require.NoError(t, env.authors.Create(&author))
	require.NoError(t, env.categories.Create(&category))
	return author, category
}
