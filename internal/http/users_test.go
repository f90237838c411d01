package http

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-admin/internal/entities"
)

func TestUserAdd_CreatesUserAndProfile(t *testing.T) {
	server, env, cleanup := setupTestServer(t)
	defer cleanup()

	seedAccount(t, env, "admin", "secret123")
	client := newClient(t, false)
	login(t, client, server.URL, "admin", "secret123")

	resp, err := client.PostForm(server.URL+"/users/add/", url.Values{
		"username":         {"bob"},
		"email":            {"bob@example.com"},
		"password":         {"hunter22"},
		"password_confirm": {"hunter22"},
		"address":          {"5 Elm Street"},
		"phone_number":     {"555-0123"},
	})
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/users/", resp.Header.Get("Location"))

	user, err := env.users.GetByUsername("bob")
	require.NoError(t, err)
	require.NotNil(t, user)

	profile, err := env.users.GetOrCreateProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "5 Elm Street", profile.Address)
	assert.Equal(t, "555-0123", profile.PhoneNumber)
}

func TestUserAdd_WithProfileImage(t *testing.T) {
	server, env, cleanup := setupTestServer(t)
	defer cleanup()

	seedAccount(t, env, "admin", "secret123")
	client := newClient(t, false)
	login(t, client, server.URL, "admin", "secret123")

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("username", "carol"))
	require.NoError(t, w.WriteField("password", "hunter22"))
	require.NoError(t, w.WriteField("password_confirm", "hunter22"))
	part, err := w.CreateFormFile("profile_image", "avatar.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	resp, err := client.Post(server.URL+"/users/add/", w.FormDataContentType(), &buf)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)

	user, err := env.users.GetByUsername("carol")
	require.NoError(t, err)
	profile, err := env.users.GetOrCreateProfile(user.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(profile.ProfileImage, "profiles/"), profile.ProfileImage)
	assert.True(t, strings.HasSuffix(profile.ProfileImage, ".png"), profile.ProfileImage)
}

func TestUserAdd_BlankPassword_GeneratesOne(t *testing.T) {
	server, env, cleanup := setupTestServer(t)
	defer cleanup()

	seedAccount(t, env, "admin", "secret123")
	client := newClient(t, false)
	login(t, client, server.URL, "admin", "secret123")

	resp, err := client.PostForm(server.URL+"/users/add/", url.Values{
		"username": {"carol"},
		"email":    {"carol@example.com"},
	})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)

	user, err := env.users.GetByUsername("carol")
	require.NoError(t, err)
	assert.NotEmpty(t, user.PasswordHash)

	// The one-shot notice on the next page carries the generated password
	resp, err = client.Get(server.URL + "/users/")
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Contains(t, body, "Generated password:")
}

func TestUserAdd_DuplicateUsername_ShowsError(t *testing.T) {
	server, env, cleanup := setupTestServer(t)
	defer cleanup()

	seedAccount(t, env, "admin", "secret123")
	client := newClient(t, true)
	login(t, client, server.URL, "admin", "secret123")

	// Differs only by case from the existing account
	resp, err := client.PostForm(server.URL+"/users/add/", url.Values{
		"username": {"ADMIN"},
		"email":    {"dup@example.com"},
	})
	require.NoError(t, err)

	body := readBody(t, resp)
	assert.Contains(t, body, "already exists")

	count, err := env.users.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUserEdit_BlankPasswordKeepsOld(t *testing.T) {
	server, env, cleanup := setupTestServer(t)
	defer cleanup()

	seedAccount(t, env, "admin", "secret123")
	bob := seedAccount(t, env, "bob", "oldpassword")
	oldHash := bob.PasswordHash

	client := newClient(t, false)
	login(t, client, server.URL, "admin", "secret123")

	resp, err := client.PostForm(fmt.Sprintf("%s/users/edit/%d/", server.URL, bob.ID), url.Values{
		"username": {"bob"},
		"email":    {"bob-new@example.com"},
		"address":  {"new address"},
	})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)

	updated, err := env.users.GetByID(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob-new@example.com", updated.Email)
	assert.Equal(t, oldHash, updated.PasswordHash)
	assert.Equal(t, "new address", updated.Profile.Address)
}

func TestUserEdit_NewPasswordIsApplied(t *testing.T) {
	server, env, cleanup := setupTestServer(t)
	defer cleanup()

	seedAccount(t, env, "admin", "secret123")
	bob := seedAccount(t, env, "bob", "oldpassword")

	client := newClient(t, false)
	login(t, client, server.URL, "admin", "secret123")

	resp, err := client.PostForm(fmt.Sprintf("%s/users/edit/%d/", server.URL, bob.ID), url.Values{
		"username":         {"bob"},
		"email":            {"bob@example.com"},
		"password":         {"newpassword"},
		"password_confirm": {"newpassword"},
	})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)

	_, err = env.service.Authenticate("bob", "newpassword")
	assert.NoError(t, err)
}

func TestUserDelete_SelfIsRefused(t *testing.T) {
	server, env, cleanup := setupTestServer(t)
	defer cleanup()

	admin := seedAccount(t, env, "admin", "secret123")
	client := newClient(t, false)
	login(t, client, server.URL, "admin", "secret123")

	// Even the confirmation page is refused
	resp, err := client.Get(fmt.Sprintf("%s/users/delete/%d/", server.URL, admin.ID))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/users/", resp.Header.Get("Location"))

	resp, err = client.PostForm(fmt.Sprintf("%s/users/delete/%d/", server.URL, admin.ID), nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	// The account is still there
	_, err = env.users.GetByID(admin.ID)
	assert.NoError(t, err)

	// And the refusal is explained on the next page
	resp, err = client.Get(server.URL + "/users/")
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Contains(t, body, "currently logged in user")
}

func TestUserDelete_OtherUser(t *testing.T) {
	server, env, cleanup := setupTestServer(t)
	defer cleanup()

	seedAccount(t, env, "admin", "secret123")
	bob := seedAccount(t, env, "bob", "whatever1")

	client := newClient(t, false)
	login(t, client, server.URL, "admin", "secret123")

	resp, err := client.PostForm(fmt.Sprintf("%s/users/delete/%d/", server.URL, bob.ID), nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	_, err = env.users.GetByID(bob.ID)
	assert.Error(t, err)
}

func TestUserDelete_ConfirmationPage(t *testing.T) {
	server, env, cleanup := setupTestServer(t)
	defer cleanup()

	seedAccount(t, env, "admin", "secret123")
	bob := seedAccount(t, env, "bob", "whatever1")

	client := newClient(t, true)
	login(t, client, server.URL, "admin", "secret123")

	resp, err := client.Get(fmt.Sprintf("%s/users/delete/%d/", server.URL, bob.ID))
	require.NoError(t, err)

	body := readBody(t, resp)
	assert.Contains(t, body, "confirm bob")

	// GET never deletes
	_, err = env.users.GetByID(bob.ID)
	assert.NoError(t, err)
}

func TestUserList_PageParameter(t *testing.T) {
	server, env, cleanup := setupTestServer(t)
	defer cleanup()

	seedAccount(t, env, "admin", "secret123")
	for i := 0; i < 15; i++ {
		seedAccount(t, env, "user"+strconv.Itoa(i), "password1")
	}

	client := newClient(t, true)
	login(t, client, server.URL, "admin", "secret123")

	resp, err := client.Get(server.URL + "/users/?page=2")
	require.NoError(t, err)

	// 16 accounts total: page 2 holds the remaining 6
	body := readBody(t, resp)
	assert.Contains(t, body, "users:6")
	assert.Contains(t, body, "page:2")
}

func TestUserDetail_CreatesProfileOnFirstView(t *testing.T) {
	server, env, cleanup := setupTestServer(t)
	defer cleanup()

	seedAccount(t, env, "admin", "secret123")

	// A user without a profile row
	bare := &entities.User{Username: "bare", Email: "bare@example.com", PasswordHash: "x", IsActive: true}
	require.NoError(t, env.db.DB.Create(bare).Error)

	client := newClient(t, true)
	login(t, client, server.URL, "admin", "secret123")

	resp, err := client.Get(fmt.Sprintf("%s/users/%d/", server.URL, bare.ID))
	require.NoError(t, err)

	body := readBody(t, resp)
	assert.Contains(t, body, "bare|")

	var count int64
	require.NoError(t, env.db.DB.Model(&entities.UserProfile{}).Where("user_id = ?", bare.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUserSearch_FiltersByUsername(t *testing.T) {
	server, env, cleanup := setupTestServer(t)
	defer cleanup()

	seedAccount(t, env, "admin", "secret123")
	seedAccount(t, env, "librarian", "password1")

	client := newClient(t, true)
	login(t, client, server.URL, "admin", "secret123")

	resp, err := client.Get(server.URL + "/users/search/?q=libr&filter=username")
	require.NoError(t, err)

	body := readBody(t, resp)
	assert.Contains(t, body, "found:1")
}

func TestUserDetail_UnknownID(t *testing.T) {
	server, env, cleanup := setupTestServer(t)
	defer cleanup()

	seedAccount(t, env, "admin", "secret123")
	client := newClient(t, true)
	login(t, client, server.URL, "admin", "secret123")

	resp, err := client.Get(server.URL + "/users/9999/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
