package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ideaboard/internal/db"
	"ideaboard/internal/router"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestServer assembles the real router over an in-memory store, the
// same wiring main performs.
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	g, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := g.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Migrate(g))

	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("ideaboard_session", store))
	router.RegisterRoutes(r, g)
	return r
}

// client is one browser-like identity: it carries its session cookie
// across requests.
type client struct {
	t       *testing.T
	r       *gin.Engine
	cookies []*http.Cookie
}

func newClient(t *testing.T, r *gin.Engine) *client {
	return &client{t: t, r: r}
}

func (c *client) do(method, path string, body any) (int, map[string]any) {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	c.r.ServeHTTP(w, req)

	if set := w.Result().Cookies(); len(set) > 0 {
		c.cookies = set
	}

	var resp map[string]any
	if w.Body.Len() > 0 {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w.Code, resp
}

func (c *client) signup(email string) {
	c.t.Helper()
	code, _ := c.do(http.MethodPost, "/signup", gin.H{"email": email, "password": "password123"})
	require.Equal(c.t, http.StatusOK, code)
}

func (c *client) createIdea(title, body string) float64 {
	c.t.Helper()
	code, resp := c.do(http.MethodPost, "/ideas", gin.H{"title": title, "body": body})
	require.Equal(c.t, http.StatusOK, code)
	return resp["idea"].(map[string]any)["id"].(float64)
}

func TestAuthFlow(t *testing.T) {
	r := newTestServer(t)
	c := newClient(t, r)

	code, resp := c.do(http.MethodPost, "/signup", gin.H{"email": "User@Example.com", "password": "password123"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", resp["status"])
	assert.Equal(t, "user@example.com", resp["user"].(map[string]any)["email"])
	require.NotEmpty(t, c.cookies, "signup must establish a session")

	// Signing up logs the user in immediately
	code, _ = c.do(http.MethodPost, "/ideas", gin.H{"title": "first idea", "body": "fresh from signup"})
	assert.Equal(t, http.StatusOK, code)

	// Duplicate registration, case-insensitively
	code, resp = c.do(http.MethodPost, "/signup", gin.H{"email": "user@EXAMPLE.com", "password": "password456"})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "error", resp["status"])

	code, _ = c.do(http.MethodGet, "/logout", nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = c.do(http.MethodPost, "/ideas", gin.H{"title": "after logout", "body": "should fail"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, resp = c.do(http.MethodPost, "/login", gin.H{"email": "user@example.com", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "error", resp["status"])

	code, _ = c.do(http.MethodPost, "/login", gin.H{"email": "user@example.com", "password": "password123"})
	require.Equal(t, http.StatusOK, code)
	code, _ = c.do(http.MethodGet, "/ideas/mine", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestIdeaFlow(t *testing.T) {
	r := newTestServer(t)
	owner := newClient(t, r)
	other := newClient(t, r)

	// Mutations require a session
	code, _ := owner.do(http.MethodPost, "/ideas", gin.H{"title": "anonymous", "body": "nope"})
	require.Equal(t, http.StatusUnauthorized, code)

	owner.signup("owner@example.com")
	other.signup("other@example.com")

	code, _ = owner.do(http.MethodPost, "/ideas", gin.H{"title": "ab", "body": "too short a title"})
	assert.Equal(t, http.StatusBadRequest, code)

	id := owner.createIdea("a decent idea", "with *markdown* body")
	require.EqualValues(t, 1, id)

	// Listings are public and carry rendered bodies
	anon := newClient(t, r)
	code, resp := anon.do(http.MethodGet, "/ideas", nil)
	require.Equal(t, http.StatusOK, code)
	ideas := resp["ideas"].([]any)
	require.Len(t, ideas, 1)
	first := ideas[0].(map[string]any)
	assert.Equal(t, "a decent idea", first["title"])
	assert.Contains(t, first["body_html"], "<em>markdown</em>")

	// Only the owner may edit or delete
	code, _ = other.do(http.MethodPut, "/ideas/1", gin.H{"title": "hijacked", "body": "not yours"})
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = other.do(http.MethodDelete, "/ideas/1", nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, resp = owner.do(http.MethodPut, "/ideas/1", gin.H{"title": "an edited idea", "body": "new body"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "an edited idea", resp["idea"].(map[string]any)["title"])

	code, _ = owner.do(http.MethodPut, "/ideas/999", gin.H{"title": "ghost idea", "body": "no such row"})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = owner.do(http.MethodDelete, "/ideas/1", nil)
	require.Equal(t, http.StatusOK, code)
	code, resp = anon.do(http.MethodGet, "/ideas", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, resp["ideas"])
}

func TestLikeAndCommentFlow(t *testing.T) {
	r := newTestServer(t)
	owner := newClient(t, r)
	fan := newClient(t, r)

	owner.signup("owner@example.com")
	fan.signup("fan@example.com")

	owner.createIdea("popular idea", "like me")
	owner.createIdea("quiet idea", "nobody cares")

	code, resp := fan.do(http.MethodPost, "/ideas/1/like", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "liked", resp["action"])
	assert.EqualValues(t, 1, resp["like_count"])

	code, resp = fan.do(http.MethodPost, "/ideas/1/like", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "unliked", resp["action"])
	assert.EqualValues(t, 0, resp["like_count"])

	code, resp = fan.do(http.MethodPost, "/ideas/1/like", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "liked", resp["action"])

	code, _ = fan.do(http.MethodPost, "/ideas/999/like", nil)
	assert.Equal(t, http.StatusNotFound, code)

	// Machine-readable comment payload with sanitized content
	code, resp = fan.do(http.MethodPost, "/ideas/1/comments", gin.H{"body": "<script>x</script>hello"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "fan@example.com", resp["user"])
	assert.Equal(t, "hello", resp["content"])
	_, err := time.Parse("02/01/2006 15:04", resp["date"].(string))
	assert.NoError(t, err)

	code, resp = fan.do(http.MethodPost, "/ideas/1/comments", gin.H{"body": "<div>  </div>"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "error", resp["status"])

	// Popularity listing puts the liked idea first
	code, resp = fan.do(http.MethodGet, "/ideas/popular", nil)
	require.Equal(t, http.StatusOK, code)
	ideas := resp["ideas"].([]any)
	require.Len(t, ideas, 2)
	top := ideas[0].(map[string]any)
	assert.Equal(t, "popular idea", top["title"])
	assert.EqualValues(t, 1, top["like_count"])
	require.Len(t, top["comments"], 1)

	// Ownership filter
	code, resp = fan.do(http.MethodGet, "/ideas/mine", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, resp["ideas"])
	code, resp = owner.do(http.MethodGet, "/ideas/mine", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, resp["ideas"], 2)
}
