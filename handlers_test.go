package sitekit

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kulius/sitekit/content"
	"github.com/kulius/sitekit/ogimage"
)

// fakeCollection is a content.Collection whose entries and error can be
// swapped while the app is running.
type fakeCollection struct {
	mu      sync.Mutex
	entries []content.Entry
	err     error
	calls   int
}

func (f *fakeCollection) Entries(context.Context) ([]content.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]content.Entry(nil), f.entries...), nil
}

func (f *fakeCollection) fail(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func (f *fakeCollection) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testEntries() []content.Entry {
	return []content.Entry{
		{ID: "post-1", Title: "Hello World", Description: "A test post"},
		{ID: "post-2", Title: "Second", Description: "two"},
		{ID: "guides/nested-post", Title: "Nested", Description: "in a folder"},
		{ID: "wip", Title: "Draft", Description: "hidden", Draft: true},
	}
}

// builtinFonts registers a data-less asset so renders use the Go fonts
// without touching the filesystem.
func builtinFonts() Option {
	return WithFonts(ogimage.FontAsset{Name: ogimage.DefaultFontName, Weight: ogimage.DefaultFontWeight})
}

func newTestApp(t *testing.T, coll content.Collection, cfg Config) *App {
	t.Helper()
	app := New(cfg, WithCollection(coll), builtinFonts())
	require.NoError(t, app.Setup(context.Background()))
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func serve(app *App, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.Echo.ServeHTTP(rec, req)
	return rec
}

func get(app *App, target string) *httptest.ResponseRecorder {
	return serve(app, httptest.NewRequest(http.MethodGet, target, nil))
}

func TestOGImageServesPNG(t *testing.T) {
	app := newTestApp(t, &fakeCollection{entries: testEntries()}, Config{})

	rec := get(app, "/og/post-1.png")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=31536000, immutable", rec.Header().Get("Cache-Control"))

	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 1200, img.Bounds().Dx())
	assert.Equal(t, 630, img.Bounds().Dy())
}

func TestOGImageIsStableAcrossRequests(t *testing.T) {
	app := newTestApp(t, &fakeCollection{entries: testEntries()}, Config{})

	first := get(app, "/og/post-1.png")
	second := get(app, "/og/post-1.png")
	other := get(app, "/og/post-2.png")
	assert.Equal(t, first.Body.Bytes(), second.Body.Bytes())
	assert.NotEqual(t, first.Body.Bytes(), other.Body.Bytes())
}

func TestOGImageNestedID(t *testing.T) {
	app := newTestApp(t, &fakeCollection{entries: testEntries()}, Config{})

	rec := get(app, ImagePath("guides/nested-post"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
}

func TestOGImageNotFound(t *testing.T) {
	app := newTestApp(t, &fakeCollection{entries: testEntries()}, Config{})

	for _, target := range []string{"/og/missing.png", "/og/wip.png", "/og/post-1", "/og/.png"} {
		t.Run(target, func(t *testing.T) {
			rec := get(app, target)
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
		})
	}
}

func TestOGImageRefreshFailureIsNotCached(t *testing.T) {
	coll := &fakeCollection{entries: testEntries()}
	app := newTestApp(t, coll, Config{})

	coll.fail(errors.New("database is locked"))
	app.Cache.Invalidate()

	rec := get(app, "/og/post-1.png")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.NotContains(t, rec.Body.String(), "database is locked")

	coll.fail(nil)
	rec = get(app, "/og/post-1.png")
	assert.Equal(t, http.StatusOK, rec.Code, "the next request enumerates again")
}

func TestOGImageRenderFailureIsNotCached(t *testing.T) {
	app := newTestApp(t, &fakeCollection{entries: testEntries()}, Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := httptest.NewRequest(http.MethodGet, "/og/post-1.png", nil).WithContext(ctx)
	rec := serve(app, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.NotEqual(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, 1.0, testCounterValue(t, app.Metrics, "sitekit_og_renders_total", resultFailed))
}

func TestSetupFallsBackOnUnusableFont(t *testing.T) {
	dir := t.TempDir()
	woff := filepath.Join(dir, "atkinson-bold.woff")
	require.NoError(t, os.WriteFile(woff, append([]byte("wOFF"), make([]byte, 64)...), 0o644))
	junk := filepath.Join(dir, "junk.ttf")
	require.NoError(t, os.WriteFile(junk, []byte("not a font"), 0o644))

	for _, path := range []string{woff, junk} {
		t.Run(filepath.Base(path), func(t *testing.T) {
			app := New(Config{FontPath: path}, WithCollection(&fakeCollection{entries: testEntries()}))
			t.Cleanup(func() { _ = app.Close() })

			require.NoError(t, app.Setup(context.Background()))
			assert.True(t, app.Renderer.Fonts().Fallback())
			assert.Equal(t, http.StatusOK, get(app, "/og/post-1.png").Code)
		})
	}
}

func TestSetupFailsWhenCollectionFails(t *testing.T) {
	app := New(Config{}, WithCollection(&fakeCollection{err: errors.New("boom")}), builtinFonts())
	t.Cleanup(func() { _ = app.Close() })

	err := app.Setup(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestSetupFailsOnDuplicateID(t *testing.T) {
	coll := &fakeCollection{entries: []content.Entry{
		{ID: "same", Path: "a.md", Title: "A"},
		{ID: "same", Path: "b.md", Title: "B"},
	}}
	app := New(Config{}, WithCollection(coll), builtinFonts())
	t.Cleanup(func() { _ = app.Close() })

	assert.ErrorIs(t, app.Setup(context.Background()), content.ErrDuplicateID)
}

func TestSetupRequiresSessionSecretForAdmin(t *testing.T) {
	app := New(Config{AdminPassword: "pw"}, WithCollection(&fakeCollection{}), builtinFonts())
	t.Cleanup(func() { _ = app.Close() })

	assert.Error(t, app.Setup(context.Background()))
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, &fakeCollection{entries: testEntries()}, Config{})

	rec := get(app, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"status":"ok","posts":3,"fallback":true}`, rec.Body.String())
}

func TestSitemapEndpoint(t *testing.T) {
	app := newTestApp(t, &fakeCollection{entries: testEntries()}, Config{})

	rec := get(app, "/sitemap-og.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/xml")
	assert.Equal(t, "public, max-age=86400", rec.Header().Get("Cache-Control"))

	body := rec.Body.String()
	assert.Contains(t, body, "<loc>https://www.euptop.com/blog/post-1/</loc>")
	assert.Contains(t, body, "<image:loc>https://www.euptop.com/og/post-1.png</image:loc>")
	assert.NotContains(t, body, "wip")
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(t, &fakeCollection{entries: testEntries()}, Config{})
	require.Equal(t, http.StatusOK, get(app, "/og/post-1.png").Code)

	rec := get(app, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `sitekit_og_renders_total{result="success"} 1`)
	assert.Contains(t, body, "sitekit_collection_posts 3")
}

func TestAdminRoutesDisabledWithoutPassword(t *testing.T) {
	app := newTestApp(t, &fakeCollection{entries: testEntries()}, Config{})

	assert.Equal(t, http.StatusNotFound, get(app, "/admin/").Code)
	assert.Equal(t, http.StatusNotFound, get(app, "/admin/og/preview.png?title=x").Code)
}

// cookieJar carries response cookies into later requests.
type cookieJar map[string]*http.Cookie

func (j cookieJar) update(rec *httptest.ResponseRecorder) {
	for _, c := range rec.Result().Cookies() {
		j[c.Name] = c
	}
}

func (j cookieJar) apply(req *http.Request) {
	for _, c := range j {
		req.AddCookie(c)
	}
}

func TestAdminPreviewFlow(t *testing.T) {
	app := newTestApp(t, &fakeCollection{entries: testEntries()}, Config{
		AdminPassword: "correct horse",
		SessionSecret: "0123456789abcdef0123456789abcdef",
	})
	jar := cookieJar{}

	rec := get(app, "/admin/og/preview.png?title=Hi")
	assert.Equal(t, http.StatusSeeOther, rec.Code, "preview requires a session")

	rec = get(app, "/admin/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "password")
	jar.update(rec)
	csrf := jar["_csrf"]
	require.NotNil(t, csrf)

	login := func(password string) *httptest.ResponseRecorder {
		form := url.Values{"password": {password}, "_csrf": {csrf.Value}}
		req := httptest.NewRequest(http.MethodPost, "/admin/login/", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		jar.apply(req)
		return serve(app, req)
	}

	rec = login("wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = login("correct horse")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	jar.update(rec)
	require.NotNil(t, jar[sessionName])

	req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
	jar.apply(req)
	rec = serve(app, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/og/post-1.png")

	req = httptest.NewRequest(http.MethodGet, "/admin/og/preview.png?title=Preview&description=Draft", nil)
	jar.apply(req)
	rec = serve(app, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestAdminLoginRequiresCSRF(t *testing.T) {
	app := newTestApp(t, &fakeCollection{entries: testEntries()}, Config{
		AdminPassword: "pw",
		SessionSecret: "0123456789abcdef0123456789abcdef",
	})

	form := url.Values{"password": {"pw"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := serve(app, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
