package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/collatz/internal/adapters/file"
	"github.com/aretw0/collatz/pkg/adapters/memory"
	"github.com/aretw0/collatz/pkg/domain"
	"github.com/aretw0/collatz/pkg/observability"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore always fails to load.
type failingStore struct{}

func (failingStore) Save(ctx context.Context, result *domain.SequenceResult) error {
	return errors.New("disk full")
}
func (failingStore) Load(ctx context.Context) ([]byte, error) { return nil, errors.New("permission denied") }
func (failingStore) Delete(ctx context.Context) error         { return nil }

func serve(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func loadSpec(t *testing.T) *openapi3.T {
	t.Helper()
	doc, err := GetSwagger()
	require.NoError(t, err)
	require.NoError(t, doc.Validate(context.Background()))
	return doc
}

func visitSchema(t *testing.T, doc *openapi3.T, name string, body []byte) {
	t.Helper()
	ref, ok := doc.Components.Schemas[name]
	require.True(t, ok, "schema %s missing", name)

	var value any
	require.NoError(t, json.Unmarshal(body, &value))
	assert.NoError(t, ref.Value.VisitJSON(value), "body does not match schema %s: %s", name, body)
}

func TestGetStats_Verbatim(t *testing.T) {
	raw := []byte("{\n  \"generated_at\": \"2024-05-01T12:00:00Z\",\n  \"metrics\": {\"largest_prime\": 7919}\n}")
	handler := NewHandler(Config{Store: memory.NewStoreFromBytes(raw)})

	for _, target := range []string{"/stats", "/stats/", "/stats.json", "/stats.json/"} {
		w := serve(t, handler, "GET", target)

		assert.Equal(t, http.StatusOK, w.Code, target)
		assert.Equal(t, string(raw), w.Body.String(), "%s must be served byte for byte", target)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestGetStats_NotFound(t *testing.T) {
	doc := loadSpec(t)
	handler := NewHandler(Config{Store: memory.NewStore()})

	w := serve(t, handler, "GET", "/stats")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error": "state file not found"}`, w.Body.String())
	visitSchema(t, doc, "Error", w.Body.Bytes())
}

func TestGetStats_Malformed(t *testing.T) {
	doc := loadSpec(t)
	handler := NewHandler(Config{Store: memory.NewStoreFromBytes([]byte(`{"steps": 11`))})

	w := serve(t, handler, "GET", "/stats")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.True(t, strings.HasPrefix(payload["error"], "invalid JSON: "), payload["error"])
	visitSchema(t, doc, "Error", w.Body.Bytes())

	// The responder keeps serving after a malformed document.
	assert.Equal(t, http.StatusOK, serve(t, handler, "GET", "/health").Code)
}

func TestGetStats_StoreFailure(t *testing.T) {
	handler := NewHandler(Config{Store: failingStore{}})

	w := serve(t, handler, "GET", "/stats")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "permission denied")
}

func TestGetStats_FromFileStore(t *testing.T) {
	doc := loadSpec(t)
	store := file.New(filepath.Join(t.TempDir(), "collatz_state.json"))
	result := &domain.SequenceResult{Start: 6, Steps: 8, MaxValue: 16, Sequence: []int64{6, 3, 10, 5, 16, 8, 4, 2, 1}}
	require.NoError(t, store.Save(context.Background(), result))

	handler := NewHandler(Config{Store: store})
	w := serve(t, handler, "GET", "/stats")

	require.Equal(t, http.StatusOK, w.Code)
	visitSchema(t, doc, "SequenceResult", w.Body.Bytes())

	got, err := domain.UnmarshalDocument(w.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, result, got)
}

func TestGetStateFile(t *testing.T) {
	empty := NewHandler(Config{Store: memory.NewStore()})
	for _, target := range []string{"/collatz_state.json", "/state.json"} {
		assert.Equal(t, http.StatusNotFound, serve(t, empty, "GET", target).Code, target)
	}

	// The raw route does not validate the document.
	raw := []byte(`not json at all`)
	handler := NewHandler(Config{Store: memory.NewStoreFromBytes(raw)})
	w := serve(t, handler, "GET", "/collatz_state.json")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(raw), w.Body.String())

	assert.Equal(t, http.StatusInternalServerError, serve(t, NewHandler(Config{Store: failingStore{}}), "GET", "/state.json").Code)
}

func TestStaticFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>Collatz</h1>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hero_widget.js"), []byte("console.log('collatz')"), 0644))

	handler := NewHandler(Config{Store: memory.NewStore(), StaticDir: dir})

	w := serve(t, handler, "GET", "/hero_widget.js")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log('collatz')", w.Body.String())

	w = serve(t, handler, "GET", "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<h1>Collatz</h1>")

	assert.Equal(t, http.StatusNotFound, serve(t, handler, "GET", "/missing.css").Code)
}

func TestStaticFallback_HidesConfig(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"collatz.yaml":  "redis:\n  password: hunter2\n",
		"settings.yml":  "token: x\n",
		".env":          "SECRET=1\n",
		"prod.json":     `{"redis": {"password": "hunter2"}}`,
		"assets/app.js": "console.log('ok')",
	}
	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}

	handler := NewHandler(Config{Store: memory.NewStore(), StaticDir: dir, Hidden: []string{"prod.json"}})

	for _, p := range []string{"/collatz.yaml", "/settings.yml", "/.env", "/prod.json", "/", "/assets/"} {
		w := serve(t, handler, "GET", p)
		assert.Equal(t, http.StatusNotFound, w.Code, p)
		assert.NotContains(t, w.Body.String(), "hunter2", p)
		assert.NotContains(t, w.Body.String(), "collatz.yaml", p)
	}

	assert.Equal(t, http.StatusOK, serve(t, handler, "GET", "/assets/app.js").Code)
}

func TestNoStaticDir(t *testing.T) {
	handler := NewHandler(Config{Store: memory.NewStore()})
	assert.Equal(t, http.StatusNotFound, serve(t, handler, "GET", "/index.html").Code)
}

func TestGetHealth(t *testing.T) {
	doc := loadSpec(t)
	w := serve(t, NewHandler(Config{Store: memory.NewStore()}), "GET", "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	visitSchema(t, doc, "Health", w.Body.Bytes())
}

func TestGetInfo(t *testing.T) {
	doc := loadSpec(t)
	w := serve(t, NewHandler(Config{Store: memory.NewStore()}), "GET", "/info")

	require.Equal(t, http.StatusOK, w.Code)
	visitSchema(t, doc, "Info", w.Body.Bytes())

	var info map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, doc.Info.Version, info["api_version"])
	assert.NotEmpty(t, info["version"])
}

func TestOpenAPIEndpoint(t *testing.T) {
	w := serve(t, NewHandler(Config{Store: memory.NewStore()}), "GET", "/openapi.yaml")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, OpenAPISpec(), w.Body.Bytes())
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	handler := NewHandler(Config{Store: memory.NewStore(), Metrics: m, Gatherer: reg})

	serve(t, handler, "GET", "/stats")
	serve(t, handler, "GET", "/stats")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.StatsRequests.WithLabelValues("404")))

	w := serve(t, handler, "GET", "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `collatz_stats_requests_total{status="404"} 2`)
}

func TestCORSPreflight(t *testing.T) {
	w := serve(t, NewHandler(Config{Store: memory.NewStore()}), "OPTIONS", "/stats")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
