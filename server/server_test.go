package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/media"
	"github.com/meigma/media/internal/testutil"
	"github.com/meigma/media/pack"
)

// buildPackages creates an app package and a comic content package.
func buildPackages(tb testing.TB) (appPath, contentPath string) {
	tb.Helper()

	dir := tb.TempDir()

	appRoot := filepath.Join(dir, "app")
	testutil.WriteTree(tb, appRoot, map[string]string{
		"metadata.yaml": "type: app\nhandles: comic",
		"index.html":    "<html><body>comic reader</body></html>",
		"index.js":      "const pages = [];",
	})
	appPath = filepath.Join(dir, "app.pkg")
	require.NoError(tb, pack.Create(context.Background(), appRoot, appPath))

	contentRoot := filepath.Join(dir, "content")
	testutil.WriteTree(tb, contentRoot, map[string]string{
		"metadata.yaml": "type: comic",
		"0.jpg":         "page zero",
		"1.jpg":         "page one",
	})
	contentPath = filepath.Join(dir, "content.pkg")
	require.NoError(tb, pack.Create(context.Background(), contentRoot, contentPath))

	return appPath, contentPath
}

func loadPackage(tb testing.TB, path string) *media.Package {
	tb.Helper()

	pkg, err := media.Load(path)
	require.NoError(tb, err)
	return pkg
}

func TestRunLoadErrors(t *testing.T) {
	t.Parallel()

	appPath, contentPath := buildPackages(t)
	missing := filepath.Join(t.TempDir(), "missing.pkg")

	err := Run(context.Background(), Options{Address: "127.0.0.1:0", App: missing, Content: contentPath})
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), missing)

	err = Run(context.Background(), Options{Address: "127.0.0.1:0", App: appPath, Content: missing})
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), missing)
}

func TestRunAppPackageIsNotApp(t *testing.T) {
	t.Parallel()

	_, contentPath := buildPackages(t)

	err := Run(context.Background(), Options{Address: "127.0.0.1:0", App: contentPath, Content: contentPath})
	var typeErr *AppTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, media.TypeComic, typeErr.Type)
}

func TestRunAppDoesNotHandleContent(t *testing.T) {
	t.Parallel()

	appPath, _ := buildPackages(t)

	err := Run(context.Background(), Options{Address: "127.0.0.1:0", App: appPath, Content: appPath})
	var typeErr *ContentTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, media.TypeApp, typeErr.Content)
	assert.Equal(t, media.TypeComic, typeErr.Handles)
}

func TestRunStopsOnCancel(t *testing.T) {
	t.Parallel()

	appPath, contentPath := buildPackages(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, Options{Address: "127.0.0.1:0", App: appPath, Content: contentPath})
	}()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancellation")
	}
}

func TestHandlerRoutes(t *testing.T) {
	t.Parallel()

	appPath, contentPath := buildPackages(t)
	handler := Handler(loadPackage(t, appPath), loadPackage(t, contentPath), nil)

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	root := get("/")
	assert.Equal(t, http.StatusOK, root.Code)
	assert.Equal(t, "text/html; charset=utf-8", root.Header().Get("Content-Type"))
	assert.Equal(t, "<html><body>comic reader</body></html>", root.Body.String())

	manifest := get("/api/manifest")
	assert.Equal(t, http.StatusOK, manifest.Code)
	assert.Equal(t, "application/json", manifest.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(manifest.Body.String(), `{"type":"comic"`), manifest.Body.String())

	app := get("/app/index.html")
	assert.Equal(t, http.StatusOK, app.Code)
	assert.Equal(t, "text/html; charset=utf-8", app.Header().Get("Content-Type"))
	assert.Equal(t, "<html><body>comic reader</body></html>", app.Body.String())

	page := get("/content/0")
	assert.Equal(t, http.StatusOK, page.Code)
	assert.Equal(t, "image/jpeg", page.Header().Get("Content-Type"))
	assert.Equal(t, "page zero", page.Body.String())

	missingPage := get("/content/9")
	assert.Equal(t, http.StatusNotFound, missingPage.Code)
	assert.Equal(t, "/content/9 not found\n", missingPage.Body.String())

	missingAsset := get("/app/nope.css")
	assert.Equal(t, http.StatusNotFound, missingAsset.Code)
	assert.Equal(t, "/app/nope.css not found\n", missingAsset.Body.String())

	metrics := get("/metrics")
	assert.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), `http_requests_total{method="GET",route="/",`)
}
