package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/nooblk-98/DevOps-Blog/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testAdminEmail    = "admin@test.local"
	testAdminPassword = "s3cret-pw"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.AppConfig{
		Port:          5174,
		Env:           "development",
		DatabasePath:  filepath.Join(dir, "test.sqlite"),
		UploadsDir:    filepath.Join(dir, "uploads"),
		JWTSecret:     "test-secret",
		AdminEmail:    testAdminEmail,
		AdminPassword: testAdminPassword,
	}

	application, err := New(zap.NewNop(), cfg)
	require.NoError(t, err)

	srv := httptest.NewServer(application.Router())
	t.Cleanup(srv.Close)
	return srv
}

// newTestClient returns an HTTP client that keeps session cookies.
func newTestClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func postJSON(t *testing.T, hc *http.Client, url string, body interface{}) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := hc.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dest interface{}) {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, dest), string(raw))
}

func signIn(t *testing.T, hc *http.Client, baseURL string) {
	t.Helper()
	resp := postJSON(t, hc, baseURL+"/api/auth/signin", map[string]string{
		"email": testAdminEmail, "password": testAdminPassword,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSignInFlow(t *testing.T) {
	srv := newTestServer(t)
	hc := newTestClient(t)

	t.Run("wrong password is a 400 and sets no cookie", func(t *testing.T) {
		resp := postJSON(t, hc, srv.URL+"/api/auth/signin", map[string]string{
			"email": testAdminEmail, "password": "nope",
		})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Empty(t, resp.Cookies())

		var body struct {
			Error string `json:"error"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, "Invalid credentials", body.Error)
	})

	t.Run("session is null before sign-in", func(t *testing.T) {
		resp, err := hc.Get(srv.URL + "/api/auth/session")
		require.NoError(t, err)
		var body struct {
			Session json.RawMessage `json:"session"`
		}
		decodeBody(t, resp, &body)
		assert.Equal(t, "null", string(body.Session))
	})

	t.Run("successful sign-in issues a session", func(t *testing.T) {
		resp := postJSON(t, hc, srv.URL+"/api/auth/signin", map[string]string{
			"email": testAdminEmail, "password": testAdminPassword,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Session struct {
				AccessToken string `json:"access_token"`
				User        struct {
					Email string `json:"email"`
				} `json:"user"`
			} `json:"session"`
		}
		decodeBody(t, resp, &body)
		assert.NotEmpty(t, body.Session.AccessToken)
		assert.Equal(t, testAdminEmail, body.Session.User.Email)

		// the cookie now authenticates the session endpoint
		resp2, err := hc.Get(srv.URL + "/api/auth/session")
		require.NoError(t, err)
		var body2 struct {
			Session json.RawMessage `json:"session"`
		}
		decodeBody(t, resp2, &body2)
		assert.NotEqual(t, "null", string(body2.Session))
	})

	t.Run("signout clears the session", func(t *testing.T) {
		resp := postJSON(t, hc, srv.URL+"/api/auth/signout", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()

		resp2, err := hc.Get(srv.URL + "/api/auth/session")
		require.NoError(t, err)
		var body struct {
			Session json.RawMessage `json:"session"`
		}
		decodeBody(t, resp2, &body)
		assert.Equal(t, "null", string(body.Session))
	})
}

func TestMutationsRequireAuth(t *testing.T) {
	srv := newTestServer(t)
	hc := newTestClient(t)

	for _, route := range []string{"/api/posts", "/api/categories", "/api/settings"} {
		resp := postJSON(t, hc, srv.URL+route, map[string]string{})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, route)
		resp.Body.Close()
	}

	resp, err := hc.Get(srv.URL + "/api/storage/list")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestUnknownRouteIs404(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// Publishing flow: create a category and a post, link them, read the links
// back, then delete the category and watch the links disappear while the
// post survives.
func TestCategoryLinkLifecycle(t *testing.T) {
	srv := newTestServer(t)
	hc := newTestClient(t)
	signIn(t, hc, srv.URL)

	resp := postJSON(t, hc, srv.URL+"/api/categories", map[string]string{"name": "go"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, hc, srv.URL+"/api/posts", map[string]interface{}{
		"title": "Linked post", "slug": "linked-post", "status": "published",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var created struct {
		Data struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	decodeBody(t, resp, &created)
	require.NotZero(t, created.Data.ID)

	resp = postJSON(t, hc, srv.URL+"/api/post_categories/bulk", map[string]interface{}{
		"post_id": created.Data.ID, "category_ids": []uint{1},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	linkCount := func() int {
		resp, err := hc.Get(srv.URL + "/api/post_categories?category_id=1")
		require.NoError(t, err)
		var body struct {
			Data []struct {
				PostID uint `json:"post_id"`
			} `json:"data"`
		}
		decodeBody(t, resp, &body)
		return len(body.Data)
	}
	assert.Equal(t, 1, linkCount())

	nestedCategories := func() []string {
		resp, err := hc.Get(srv.URL + "/api/posts?slug=linked-post")
		require.NoError(t, err)
		var body struct {
			Data []struct {
				Categories []struct {
					Name string `json:"name"`
				} `json:"categories"`
			} `json:"data"`
		}
		decodeBody(t, resp, &body)
		require.Len(t, body.Data, 1)
		names := make([]string, 0, len(body.Data[0].Categories))
		for _, cat := range body.Data[0].Categories {
			names = append(names, cat.Name)
		}
		return names
	}
	assert.Equal(t, []string{"go"}, nestedCategories())

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/categories/1", nil)
	require.NoError(t, err)
	resp, err = hc.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	assert.Zero(t, linkCount(), "category links follow the category")
	assert.Empty(t, nestedCategories(), "the post's nested categories empty out")

	resp, err = hc.Get(fmt.Sprintf("%s/api/posts/%d", srv.URL, created.Data.ID))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "the post itself survives")
}

func TestSettingsRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	hc := newTestClient(t)
	signIn(t, hc, srv.URL)

	payload := []map[string]interface{}{
		{"key": "site_title", "value": "My Blog"},
		{"key": "nav", "value": map[string]interface{}{"items": []string{"home", "about"}}},
	}
	resp := postJSON(t, hc, srv.URL+"/api/settings", payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// overwrite one key, leave the other alone
	resp = postJSON(t, hc, srv.URL+"/api/settings", map[string]interface{}{"site_title": "Renamed"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err := hc.Get(srv.URL + "/api/settings")
	require.NoError(t, err)
	var body struct {
		Data []struct {
			Key   string          `json:"key"`
			Value json.RawMessage `json:"value"`
		} `json:"data"`
	}
	decodeBody(t, resp, &body)
	require.Len(t, body.Data, 2)

	values := map[string]string{}
	for _, entry := range body.Data {
		values[entry.Key] = string(entry.Value)
	}
	assert.JSONEq(t, `"Renamed"`, values["site_title"])
	assert.JSONEq(t, `{"items":["home","about"]}`, values["nav"])
}

func TestPostViewsOnTheWire(t *testing.T) {
	srv := newTestServer(t)
	hc := newTestClient(t)
	signIn(t, hc, srv.URL)

	resp := postJSON(t, hc, srv.URL+"/api/posts", map[string]interface{}{
		"title": "Viewed", "slug": "viewed", "status": "published",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	fetch := func() []json.RawMessage {
		resp, err := hc.Get(srv.URL + "/api/posts/viewed")
		require.NoError(t, err)
		var body struct {
			Data struct {
				PostViews []json.RawMessage `json:"post_views"`
			} `json:"data"`
		}
		decodeBody(t, resp, &body)
		return body.Data.PostViews
	}

	assert.Empty(t, fetch(), "no counter row before the first view")

	resp = postJSON(t, hc, srv.URL+"/api/posts/1/increment_view", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	views := fetch()
	require.Len(t, views, 1)
	assert.JSONEq(t, `{"view_count":1}`, string(views[0]))

	t.Run("incrementing a missing post is a 404", func(t *testing.T) {
		resp := postJSON(t, hc, srv.URL+"/api/posts/999/increment_view", nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
