package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statcalc/adapters/stats/engine"
	"statcalc/internal/lesson"
)

func newTestServer(t *testing.T, maxBody int64) *Server {
	t.Helper()
	eng := engine.NewEngine()
	catalog, err := lesson.NewCatalog(eng)
	require.NoError(t, err)
	return NewServer(Config{GinMode: gin.TestMode, MaxBodyBytes: maxBody}, eng, catalog, nil)
}

func do(t *testing.T, s *Server, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), rec.Body.String())
	}
	return rec, decoded
}

func errorField(t *testing.T, body map[string]interface{}, field string) interface{} {
	t.Helper()
	e, ok := body["error"].(map[string]interface{})
	require.True(t, ok, "error object expected in %v", body)
	return e[field]
}

func TestHealth(t *testing.T) {
	rec, body := do(t, newTestServer(t, 0), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestOperation_Mean(t *testing.T) {
	rec, body := do(t, newTestServer(t, 0), http.MethodPost, "/api/v1/mean", `{"input":"1, 2, 3, 4"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	result := body["result"].(map[string]interface{})
	assert.Equal(t, "mean", result["operation"])
	assert.Equal(t, 4.0, result["count"])
	mean := result["mean"].(map[string]interface{})
	assert.Equal(t, 2.5, mean["mean"])

	breakdown := body["breakdown"].(map[string]interface{})
	assert.Equal(t, "Mean", breakdown["title"])
	assert.Equal(t, rec.Header().Get(requestIDHeader), body["request_id"])
}

func TestOperation_CaseInsensitiveName(t *testing.T) {
	rec, _ := do(t, newTestServer(t, 0), http.MethodPost, "/api/v1/StdDev", `{"input":"2,4,4,4,5,5,7,9"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOperation_BundleIncludesChart(t *testing.T) {
	rec, body := do(t, newTestServer(t, 0), http.MethodPost, "/api/v1/bundle", `{"input":"170\n180\n175"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	chart := body["chart"].(map[string]interface{})
	assert.Equal(t, "bar", chart["type"])
	assert.Equal(t, []interface{}{170.0, 175.0, 180.0}, chart["data"])
	assert.Equal(t, []interface{}{"P1", "P2", "P3"}, chart["labels"])

	breakdown := body["breakdown"].(map[string]interface{})
	assert.Equal(t, "Summary Statistics", breakdown["title"])
}

func TestOperation_ValidationErrors(t *testing.T) {
	s := newTestServer(t, 0)

	cases := []struct {
		path, body, kind, message string
	}{
		{"/api/v1/mean", `{"input":"   "}`, "EmptyInput", "Please enter some numbers"},
		{"/api/v1/median", `{"input":"1, abc, 3"}`, "InvalidNumber", `Invalid number at position 2: "abc"`},
		{"/api/v1/mode", `{"input":",,,"}`, "NoData", "No valid data found"},
		{"/api/v1/quantiles", `{"input":"1,2,3"}`, "InsufficientData", "Please provide at least 4 values for quartile calculations (got 3)"},
		{"/api/v1/bundle", `{"input":"170\n-5"}`, "NonPositiveValue", "Height must be positive at position 2: -5"},
	}
	for _, tc := range cases {
		rec, body := do(t, s, http.MethodPost, tc.path, tc.body)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, tc.path)
		assert.Equal(t, tc.kind, errorField(t, body, "kind"), tc.path)
		assert.Equal(t, tc.message, errorField(t, body, "message"), tc.path)
	}
}

func TestOperation_UnknownAndBadRequests(t *testing.T) {
	s := newTestServer(t, 0)

	rec, body := do(t, s, http.MethodPost, "/api/v1/variance", `{"input":"1,2"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "UnknownOperation", errorField(t, body, "kind"))

	rec, body = do(t, s, http.MethodPost, "/api/v1/mean", `{"input":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "BadRequest", errorField(t, body, "kind"))

	rec, body = do(t, s, http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NotFound", errorField(t, body, "kind"))
}

func TestOperation_BodyLimit(t *testing.T) {
	s := newTestServer(t, 32)
	rec, body := do(t, s, http.MethodPost, "/api/v1/mean", `{"input":"`+strings.Repeat("1,", 64)+`1"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "PayloadTooLarge", errorField(t, body, "kind"))
}

func TestCheck(t *testing.T) {
	s := newTestServer(t, 0)

	rec, body := do(t, s, http.MethodPost, "/api/v1/check", `{"exercise":"test-scores-mean","answer":87.1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["correct"])
	assert.Equal(t, "✅ Correct!", body["message"])

	rec, body = do(t, s, http.MethodPost, "/api/v1/check", `{"answer":"12","correct":10}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["correct"])
	assert.Equal(t, "❌ Try again. Correct answer: 10", body["message"])

	rec, body = do(t, s, http.MethodPost, "/api/v1/check", `{"answer":"abc","correct":10}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["valid"])
	assert.Equal(t, "Please enter a number", body["message"])

	rec, _ = do(t, s, http.MethodPost, "/api/v1/check", `{"exercise":"missing","answer":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, s, http.MethodPost, "/api/v1/check", `{"answer":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCatalogRoutes(t *testing.T) {
	s := newTestServer(t, 0)

	rec, body := do(t, s, http.MethodGet, "/api/v1/exercises", "")
	require.Equal(t, http.StatusOK, rec.Code)
	exercises := body["exercises"].([]interface{})
	assert.Len(t, exercises, 5)
	first := exercises[0].(map[string]interface{})
	assert.Equal(t, "test-scores-mean", first["id"])
	assert.NotContains(t, first, "answer", "answers are not published")

	rec, body = do(t, s, http.MethodGet, "/api/v1/examples", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, body["examples"])

	rec, body = do(t, s, http.MethodGet, "/api/v1/examples/water-consumption", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "water-consumption", body["id"])

	rec, _ = do(t, s, http.MethodGet, "/api/v1/examples/none", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, body = do(t, s, http.MethodGet, "/api/v1/operations", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["operations"], len(engine.Operations()))
}

func TestRequestID_Propagated(t *testing.T) {
	s := newTestServer(t, 0)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}
