package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/schematic"
	"github.com/aretw0/schematic/internal/logging"
	"github.com/aretw0/schematic/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, opts ...Option) (http.Handler, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	catalog, err := schematic.New("../../../testdata/kinds", schematic.WithHooks(metrics.Hooks()))
	require.NoError(t, err)

	opts = append([]Option{WithLogger(logging.NewNop()), WithMetrics(reg)}, opts...)
	return NewHandler(catalog, opts...), reg
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestListKinds(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(h, http.MethodGet, "/kinds", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"kinds":["Address","Person"]}`, w.Body.String())
}

func TestDescribeKind(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(h, http.MethodGet, "/kinds/Address", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"kind": "Address",
		"fields": [
			{"name": "street", "type": "string", "required": true},
			{"name": "number", "type": "int", "default": 1}
		]
	}`, w.Body.String())

	w = do(h, http.MethodGet, "/kinds/Ghost", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestKindOpenAPI(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(h, http.MethodGet, "/kinds/Person/openapi", "")
	require.Equal(t, http.StatusOK, w.Code)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "object", doc["type"])
	props := doc["properties"].(map[string]any)
	assert.Equal(t, map[string]any{"$ref": "#/components/schemas/Address"}, props["address"])
}

func TestValidate(t *testing.T) {
	h, reg := newTestHandler(t)

	w := do(h, http.MethodPost, "/kinds/Person/validate",
		`{"role": "admin", "address": {"street": "Main St"}, "extra": 1}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"kind": "Person",
		"data": {
			"name": null,
			"role": "admin",
			"address": {"street": "Main St", "number": 1},
			"previous": null
		},
		"errors": {"name": {"errors": ["name is required on PersonEntity"]}},
		"valid": false
	}`, w.Body.String())

	w = do(h, http.MethodPost, "/kinds/Person/validate", `{"name": "Ada"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var report schematic.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestValidate_BadRequests(t *testing.T) {
	h, _ := newTestHandler(t, WithMaxBodyBytes(64))

	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodPost, "/kinds/Person/validate", `[1, 2]`).Code)
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodPost, "/kinds/Person/validate", `{`).Code)
	assert.Equal(t, http.StatusNotFound, do(h, http.MethodPost, "/kinds/Ghost/validate", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodPost, "/kinds/Person/validate", `null`).Code)
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodPost, "/kinds/Person/validate", `{"name": "Ada"} trailing`).Code)
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodPost, "/kinds/Person/validate", `{"name": "Ada"} {}`).Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodPost, "/kinds/Person/validate", "{\"name\": \"Ada\"}\n").Code)

	big := `{"name": "` + strings.Repeat("x", 128) + `"}`
	assert.Equal(t, http.StatusRequestEntityTooLarge, do(h, http.MethodPost, "/kinds/Person/validate", big).Code)
}

func TestGraphHealthInfoMetrics(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(h, http.MethodGet, "/graph", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `Person *-- "*" Address : previous`)

	w = do(h, http.MethodGet, "/health", "")
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(h, http.MethodGet, "/info", "")
	assert.Contains(t, w.Body.String(), `"app":"schematic-http"`)

	do(h, http.MethodPost, "/kinds/Address/validate", `{}`)
	w = do(h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `schematic_validations_total{kind="Address",trigger="construct",valid="false"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(h, http.MethodOptions, "/kinds/Person/validate", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
