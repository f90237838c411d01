package http

import (
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readBody(t *testing.T, resp *http.Response) string {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	server, env, cleanup := setupTestServer(t)
	defer cleanup()

	seedAccount(t, env, "admin", "secret123")

	client := newClient(t, true)
	resp, err := client.PostForm(server.URL+"/login/", url.Values{
		"username": {"admin"},
		"password": {"wrong"},
	})
	require.NoError(t, err)

	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Invalid username or password.")
}

func TestLogin_Success_RedirectsHome(t *testing.T) {
	server, env, cleanup := setupTestServer(t)
	defer cleanup()

	seedAccount(t, env, "admin", "secret123")

	client := newClient(t, false)
	resp, err := client.PostForm(server.URL+"/login/", url.Values{
		"username": {"admin"},
		"password": {"secret123"},
	})
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/home/", resp.Header.Get("Location"))
}

func TestLogin_NextParameterIsHonoured(t *testing.T) {
	server, env, cleanup := setupTestServer(t)
	defer cleanup()

	seedAccount(t, env, "admin", "secret123")

	client := newClient(t, false)
	resp, err := client.PostForm(server.URL+"/login/", url.Values{
		"username": {"admin"},
		"password": {"secret123"},
		"next":     {"/books/"},
	})
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "/books/", resp.Header.Get("Location"))
}

func TestLogin_ExternalNextIsRejected(t *testing.T) {
	server, env, cleanup := setupTestServer(t)
	defer cleanup()

	seedAccount(t, env, "admin", "secret123")

	client := newClient(t, false)
	resp, err := client.PostForm(server.URL+"/login/", url.Values{
		"username": {"admin"},
		"password": {"secret123"},
		"next":     {"https://evil.example.com/"},
	})
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "/home/", resp.Header.Get("Location"))
}

func TestProtectedPage_RedirectsToLogin(t *testing.T) {
	server, _, cleanup := setupTestServer(t)
	defer cleanup()

	client := newClient(t, false)
	resp, err := client.Get(server.URL + "/users/")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login/?next=/users/", resp.Header.Get("Location"))
}

func TestBookDetail_PublicWithoutSession(t *testing.T) {
	server, env, cleanup := setupTestServer(t)
	defer cleanup()

	author, category := seedCatalog(t, env)
	book := entitiesBook("Dune", author.ID, category.ID)
	require.NoError(t, env.books.Create(book))

	client := newClient(t, true)
	resp, err := client.Get(server.URL + "/books/1/")
	require.NoError(t, err)

	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Dune by Frank Herbert")
}

func TestBookList_RequiresSession(t *testing.T) {
	server, _, cleanup := setupTestServer(t)
	defer cleanup()

	client := newClient(t, false)
	resp, err := client.Get(server.URL + "/books/")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

func TestLogout_EndsSession(t *testing.T) {
	server, env, cleanup := setupTestServer(t)
	defer cleanup()

	seedAccount(t, env, "admin", "secret123")

	client := newClient(t, false)
	login(t, client, server.URL, "admin", "secret123")

	resp, err := client.PostForm(server.URL+"/logout/", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "/login/", resp.Header.Get("Location"))

	resp, err = client.Get(server.URL + "/users/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

func TestLogout_ShowsNoticeOnLoginPage(t *testing.T) {
	server, env, cleanup := setupTestServer(t)
	defer cleanup()

	seedAccount(t, env, "admin", "secret123")

	client := newClient(t, false)
	login(t, client, server.URL, "admin", "secret123")

	resp, err := client.PostForm(server.URL+"/logout/", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, "/login/", resp.Header.Get("Location"))

	resp, err = client.Get(server.URL + "/login/")
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Contains(t, body, "You have been logged out.")
}

func TestRegister_PasswordMismatch_NoUserCreated(t *testing.T) {
	server, env, cleanup := setupTestServer(t)
	defer cleanup()

	client := newClient(t, true)
	resp, err := client.PostForm(server.URL+"/register/", url.Values{
		"username":         {"newbie"},
		"email":            {"newbie@example.com"},
		"password":         {"secret1"},
		"password_confirm": {"secret2"},
	})
	require.NoError(t, err)

	body := readBody(t, resp)
	assert.Contains(t, body, "passwords don")

	count, err := env.users.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestRegister_Success_CreatesUserWithProfile(t *testing.T) {
	server, env, cleanup := setupTestServer(t)
	defer cleanup()

	client := newClient(t, false)
	resp, err := client.PostForm(server.URL+"/register/", url.Values{
		"username":         {"newbie"},
		"email":            {"newbie@example.com"},
		"password":         {"secret123"},
		"password_confirm": {"secret123"},
	})
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/home/", resp.Header.Get("Location"))

	user, err := env.users.GetByUsername("newbie")
	require.NoError(t, err)

	profile, err := env.users.GetOrCreateProfile(user.ID)
	require.NoError(t, err)
	assert.NotZero(t, profile.ID)

	// Registration signs the new user in
	resp, err = client.Get(server.URL + "/users/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	server, env, cleanup := setupTestServer(t)
	defer cleanup()

	seedAccount(t, env, "admin", "secret123")

	client := newClient(t, true)
	resp, err := client.PostForm(server.URL+"/register/", url.Values{
		"username":         {"ADMIN"},
		"email":            {"other@example.com"},
		"password":         {"secret123"},
		"password_confirm": {"secret123"},
	})
	require.NoError(t, err)

	body := readBody(t, resp)
	assert.Contains(t, body, "already exists")

	count, err := env.users.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRootRedirect(t *testing.T) {
	server, env, cleanup := setupTestServer(t)
	defer cleanup()

	seedAccount(t, env, "admin", "secret123")

	anonymous := newClient(t, false)
	resp, err := anonymous.Get(server.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "/login/", resp.Header.Get("Location"))

	authed := newClient(t, false)
	login(t, authed, server.URL, "admin", "secret123")
	resp, err = authed.Get(server.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "/home/", resp.Header.Get("Location"))
}
