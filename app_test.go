package folio

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/folio/content"
)

const (
	testEmail    = "ada@example.com"
	testPassword = "correct horse"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	dir := t.TempDir()
	app := New(SiteConfig{
		Name:          "Ada Lovelace",
		URL:           "https://ada.example.com",
		SessionSecret: "test-secret",
		DatabaseURL:   filepath.Join(dir, "folio.db"),
		StaticDir:     filepath.Join(dir, "public"),
		OwnerName:     "Ada",
		OwnerEmail:    testEmail,
		OwnerPassword: testPassword,
	})
	require.NoError(t, app.Init(context.Background()))
	t.Cleanup(func() { _ = app.Close() })
	return app
}

// client drives app.Echo and carries cookies between requests.
type client struct {
	t       *testing.T
	app     *App
	cookies map[string]*http.Cookie
	bearer  string
	htmx    bool
}

func newClient(t *testing.T, app *App) *client {
	return &client{t: t, app: app, cookies: map[string]*http.Cookie{}}
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	if c.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearer)
	}
	if c.htmx {
		req.Header.Set("HX-Request", "true")
	}
	rec := httptest.NewRecorder()
	c.app.Echo.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}
	return rec
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *client) json(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(c.t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echoContentType, "application/json")
	return c.do(req)
}

// form posts values with the CSRF token taken from the cookie.
func (c *client) form(path string, values url.Values) *httptest.ResponseRecorder {
	if ck, ok := c.cookies["_csrf"]; ok {
		values.Set("_csrf", ck.Value)
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set(echoContentType, "application/x-www-form-urlencoded")
	return c.do(req)
}

const echoContentType = "Content-Type"

func (c *client) login() {
	c.t.Helper()
	c.get("/login")
	rec := c.form("/login", url.Values{"email": {testEmail}, "password": {testPassword}})
	require.Equal(c.t, http.StatusSeeOther, rec.Code, rec.Body.String())
	require.Contains(c.t, c.cookies, sessionName)
}

func (c *client) token() {
	c.t.Helper()
	rec := c.json(http.MethodPost, "/api/auth/token", map[string]string{"email": testEmail, "password": testPassword})
	require.Equal(c.t, http.StatusOK, rec.Code, rec.Body.String())
	var out tokenResponse
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.NotEmpty(c.t, out.Token)
	c.bearer = out.Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestAPI_ListEmpty(t *testing.T) {
	c := newClient(t, newTestApp(t))
	for _, k := range []string{"about", "education", "experience", "publications", "news", "events"} {
		rec := c.get("/api/" + k)
		assert.Equal(t, http.StatusOK, rec.Code, k)
		assert.JSONEq(t, `[]`, rec.Body.String(), k)
	}
	rec := c.get("/api/personal-info")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `null`, rec.Body.String())
}

func TestAPI_UnauthorizedMutations(t *testing.T) {
	c := newClient(t, newTestApp(t))

	tests := []struct {
		method, path string
		body         any
	}{
		{http.MethodPost, "/api/about", map[string]any{"content": "x"}},
		{http.MethodPut, "/api/about", map[string]any{"id": 1, "content": "x"}},
		{http.MethodDelete, "/api/about?id=1", nil},
		{http.MethodPut, "/api/personal-info", map[string]any{"name": "n", "title": "t", "email": "e"}},
	}
	for _, tt := range tests {
		rec := c.json(tt.method, tt.path, tt.body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, tt.method+" "+tt.path)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
	}

	c.bearer = "not-a-token"
	rec := c.json(http.MethodPost, "/api/news", map[string]any{"date": "d", "content": "c"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	c.bearer = ""
	assert.JSONEq(t, `[]`, c.get("/api/about").Body.String())
	assert.JSONEq(t, `[]`, c.get("/api/news").Body.String())
}

func TestAPI_CRUD(t *testing.T) {
	c := newClient(t, newTestApp(t))
	c.token()

	rec := c.json(http.MethodPost, "/api/publications", map[string]any{
		"title": "Paper", "venue": "NeurIPS", "authors": "Ada", "year": 2024,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	pub := decode[content.Publication](t, rec)
	assert.NotZero(t, pub.ID)
	assert.Equal(t, content.Conference, pub.Type)
	assert.False(t, pub.Featured)

	rec = c.json(http.MethodPut, "/api/publications", map[string]any{
		"id": pub.ID, "title": "Paper v2", "venue": "ICML", "authors": "Ada", "year": 2025, "featured": true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[content.Publication](t, rec)
	assert.Equal(t, "Paper v2", updated.Title)
	assert.True(t, updated.Featured)

	list := decode[[]content.Publication](t, c.get("/api/publications"))
	require.Len(t, list, 1)
	assert.Equal(t, "ICML", list[0].Venue)

	rec = c.json(http.MethodPut, "/api/publications", map[string]any{"id": 999, "title": "x"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `null`, rec.Body.String())

	for i := 0; i < 2; i++ {
		rec = c.json(http.MethodDelete, "/api/publications?id="+jsonNumber(pub.ID), nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	}
	assert.JSONEq(t, `[]`, c.get("/api/publications").Body.String())

	rec = c.json(http.MethodDelete, "/api/publications?id=abc", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func jsonNumber(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}

func TestAPI_BadRequests(t *testing.T) {
	c := newClient(t, newTestApp(t))
	c.token()

	rec := c.json(http.MethodPost, "/api/about", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid JSON"}`, rec.Body.String())

	rec = c.json(http.MethodPost, "/api/education", map[string]any{"degree": "BSc"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[apiError](t, rec)
	assert.Contains(t, body.Error, "university")
	assert.Contains(t, body.Error, "period")

	rec = c.json(http.MethodPost, "/api/news", map[string]any{"date": "d", "content": "c", "category": "Gossip"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.JSONEq(t, `[]`, c.get("/api/education").Body.String())
}

func TestAPI_ProfileUpsert(t *testing.T) {
	c := newClient(t, newTestApp(t))
	c.token()

	rec := c.json(http.MethodPut, "/api/personal-info", map[string]any{"name": "Ada"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.json(http.MethodPut, "/api/personal-info", map[string]any{
		"name": "Ada", "title": "PhD", "email": "ada@example.com", "researchInterests": `["NLP"]`,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	p := decode[content.Profile](t, rec)
	assert.NotZero(t, p.ID)

	rec = c.json(http.MethodPut, "/api/personal-info", map[string]any{
		"id": p.ID, "name": "Ada L.", "title": "Dr", "email": "ada@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Ada L.", decode[content.Profile](t, rec).Name)

	got := decode[*content.Profile](t, c.get("/api/personal-info"))
	require.NotNil(t, got)
	assert.Equal(t, p.ID, got.ID)
	assert.Nil(t, got.ResearchInterests)
}

func TestAPI_Health(t *testing.T) {
	c := newClient(t, newTestApp(t))
	rec := c.get("/api/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAPI_TokenWrongPassword(t *testing.T) {
	c := newClient(t, newTestApp(t))
	rec := c.json(http.MethodPost, "/api/auth/token", map[string]string{"email": testEmail, "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
}

func TestAPI_SessionCookieNeedsCSRF(t *testing.T) {
	c := newClient(t, newTestApp(t))
	c.login()

	rec := c.json(http.MethodPost, "/api/about", map[string]any{"content": "x"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/about", strings.NewReader(`{"content":"x"}`))
	req.Header.Set(echoContentType, "application/json")
	req.Header.Set("X-CSRF-Token", c.cookies["_csrf"].Value)
	rec = c.do(req)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestPages_VisitorAndOwner(t *testing.T) {
	app := newTestApp(t)
	ctx := ownerCtx()
	_, err := app.Services.Profile.Save(ctx, content.Profile{Name: "Ada Lovelace", Title: "PhD Student", Email: testEmail})
	require.NoError(t, err)
	_, err = app.Services.About.Create(ctx, content.AboutParagraph{Content: "I study **engines**."})
	require.NoError(t, err)

	visitor := newClient(t, app)
	rec := visitor.get("/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Ada Lovelace")
	assert.Contains(t, body, "<strong>engines</strong>")
	assert.Contains(t, body, `"@type":"Person"`)
	assert.NotContains(t, body, "/edit/")
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	owner := newClient(t, app)
	owner.login()
	body = owner.get("/").Body.String()
	assert.Contains(t, body, "/edit/about")
	assert.Contains(t, body, "/edit/about/delete?id=1")
	assert.Contains(t, body, "Editing as Ada")

	assert.Equal(t, http.StatusOK, visitor.get("/publications").Code)
	assert.Equal(t, http.StatusOK, visitor.get("/news").Code)
}

func TestPages_LoginFailures(t *testing.T) {
	c := newClient(t, newTestApp(t))
	c.get("/login")

	rec := c.form("/login", url.Values{"email": {testEmail}, "password": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password.")
	assert.NotContains(t, c.cookies, sessionName)

	for i := 0; i < 5; i++ {
		c.form("/login", url.Values{"email": {testEmail}, "password": {"wrong"}})
	}
	rec = c.form("/login", url.Values{"email": {testEmail}, "password": {testPassword}})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestPages_Logout(t *testing.T) {
	c := newClient(t, newTestApp(t))
	c.login()
	rec := c.form("/logout", url.Values{})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.NotContains(t, c.get("/").Body.String(), "/edit/")
}

func TestEdit_RequiresOwner(t *testing.T) {
	c := newClient(t, newTestApp(t))
	rec := c.get("/edit/about")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestEdit_CreateUpdateDelete(t *testing.T) {
	app := newTestApp(t)
	c := newClient(t, app)
	c.login()

	rec := c.get("/edit/news")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="General" selected`)

	rec = c.form("/edit/news", url.Values{"date": {"Aug 2025"}, "content": {"Paper accepted"}, "category": {"Award"}, "highlight": {"true"}})
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())

	news, err := app.Services.News.List(context.Background())
	require.NoError(t, err)
	require.Len(t, news, 1)
	assert.Equal(t, content.NewsCategory("Award"), news[0].Category)
	assert.True(t, news[0].Highlight)
	id := jsonNumber(news[0].ID)

	rec = c.get("/edit/news?id=" + id)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Paper accepted")

	c.htmx = true
	rec = c.form("/edit/news?id="+id, url.Values{"date": {"Sep 2025"}, "content": {"Paper published"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("HX-Push-Url"))
	assert.Contains(t, rec.Body.String(), "Paper published")
	c.htmx = false

	rec = c.get("/edit/news/delete?id=" + id)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Paper published")

	rec = c.form("/edit/news/delete?id="+id, url.Values{})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	news, _ = app.Services.News.List(context.Background())
	assert.Len(t, news, 1, "unconfirmed delete must not remove the row")

	rec = c.form("/edit/news/delete?id="+id, url.Values{"confirm": {"yes"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	news, _ = app.Services.News.List(context.Background())
	assert.Empty(t, news)
}

func TestEdit_FailedSaveKeepsDraft(t *testing.T) {
	app := newTestApp(t)
	c := newClient(t, app)
	c.login()

	rec := c.form("/edit/publications", url.Values{"title": {"Draft title"}, "year": {"soon"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Failed to save. Please try again.")
	assert.Contains(t, body, "Draft title")

	rec = c.form("/edit/publications", url.Values{"title": {"Draft title"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	pubs, _ := app.Services.Publications.List(context.Background())
	assert.Empty(t, pubs)
}

func TestEdit_ProfileAndUnknownKind(t *testing.T) {
	app := newTestApp(t)
	c := newClient(t, app)
	c.login()

	assert.Equal(t, http.StatusNotFound, c.get("/edit/blog").Code)
	assert.Equal(t, http.StatusNotFound, c.get("/edit/about?id=42").Code)
	assert.Equal(t, http.StatusNotFound, c.get("/edit/personal-info/delete?id=1").Code)

	rec := c.form("/edit/personal-info", url.Values{
		"name": {"Ada"}, "title": {"PhD"}, "email": {testEmail}, "researchInterests": {"NLP, , Vision"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())

	p, err := app.Services.Profile.Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, `["NLP","Vision"]`, content.Str(p.ResearchInterests))
	assert.Nil(t, p.GithubURL)

	rec = c.get("/edit/personal-info")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "NLP, Vision")
}

func TestPhotoUpload(t *testing.T) {
	app := newTestApp(t)
	c := newClient(t, app)
	c.token()

	img := image.NewRGBA(image.Rect(0, 0, 800, 600))
	img.Set(10, 10, color.White)
	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, img))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("photo", "me.png")
	require.NoError(t, err)
	_, err = fw.Write(pngBuf.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/personal-info/photo", &body)
	req.Header.Set(echoContentType, mw.FormDataContentType())
	rec := c.do(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	out := decode[photoResponse](t, rec)
	assert.Equal(t, 400, out.Width)
	assert.Equal(t, 300, out.Height)
	_, err = os.Stat(filepath.Join(app.Config.StaticDir, "uploads", "profile.jpg"))
	assert.NoError(t, err)
	assert.Equal(t, photoURL, app.photo())
}

func TestFeeds(t *testing.T) {
	app := newTestApp(t)
	_, err := app.Services.News.Create(ownerCtx(), content.NewsItem{Date: "Aug 2025", Content: "Talk at [MIT](https://mit.edu)"})
	require.NoError(t, err)
	c := newClient(t, app)

	rec := c.get("/feed.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<rss version=\"2.0\">")
	assert.Contains(t, rec.Body.String(), "https://ada.example.com/news#news-1")
	assert.Contains(t, rec.Body.String(), "01 Aug 2025")

	rec = c.get("/sitemap.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<loc>https://ada.example.com/publications</loc>")

	rec = c.get("/robots.txt")
	assert.Contains(t, rec.Body.String(), "Sitemap: https://ada.example.com/sitemap.xml")
}

func TestNotFoundPage(t *testing.T) {
	c := newClient(t, newTestApp(t))
	rec := c.get("/no/such/page")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found.")

	rec = c.get("/api/nothing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, rec.Body.String())
}
