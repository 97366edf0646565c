package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Ayash-Bera/dorkgen/internal/dorking"
	"github.com/Ayash-Bera/dorkgen/internal/health"
	"github.com/Ayash-Bera/dorkgen/internal/middleware"
	"github.com/Ayash-Bera/dorkgen/internal/models"
	"github.com/Ayash-Bera/dorkgen/internal/services"
	"github.com/Ayash-Bera/dorkgen/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, limiter *middleware.RateLimiter) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	engine := dorking.NewEngine()
	return NewHandler(Deps{
		SearchService: services.NewSearchService(engine, nil, 100, logger),
		HealthChecker: health.NewHealthChecker(engine, nil, logger),
		RateLimiter:   limiter,
		CORSOrigins:   []string{"https://app.example.com"},
		Logger:        logger,
	})
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestSearch(t *testing.T) {
	h := newTestHandler(t, nil)

	w := do(h, http.MethodPost, "/search", `{"query":"employee email","site":"acme.com"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var res dorking.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "employee email", res.OriginalQuery)
	assert.True(t, strings.HasSuffix(res.DorkQuery, "site:acme.com"))
	assert.Equal(t, dorking.SearchURL(res.DorkQuery), res.GoogleURL)
	assert.Equal(t, []dorking.Intent{{Category: "social", Subcategory: "emails"}}, res.DetectedIntents)
	assert.Empty(t, res.Suggestions)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestSearch_PassesInputVerbatim(t *testing.T) {
	h := newTestHandler(t, nil)

	tests := []struct {
		name      string
		body      string
		wantQuery string
		wantDork  string
	}{
		{
			name:      "padded site",
			body:      `{"query":"employee email","site":" acme.com "}`,
			wantQuery: "employee email",
			wantDork:  `employee email intext:"@gmail.com" OR intext:"@yahoo.com" OR intext:"@hotmail.com" site: acme.com `,
		},
		{
			name:      "whitespace site still appended",
			body:      `{"query":"employee email","site":"  "}`,
			wantQuery: "employee email",
			wantDork:  `employee email intext:"@gmail.com" OR intext:"@yahoo.com" OR intext:"@hotmail.com" site:  `,
		},
		{
			name:      "padded query echoed",
			body:      `{"query":"  login  "}`,
			wantQuery: "  login  ",
			wantDork:  "login filetype:log inurl:login OR inurl:signin OR inurl:admin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(h, http.MethodPost, "/search", tt.body)
			require.Equal(t, http.StatusOK, w.Code)

			var res dorking.Result
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
			assert.Equal(t, tt.wantQuery, res.OriginalQuery)
			assert.Equal(t, tt.wantDork, res.DorkQuery)
		})
	}
}

func TestSearch_WireShape(t *testing.T) {
	h := newTestHandler(t, nil)

	w := do(h, http.MethodPost, "/search", `{"query":"weather"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	for _, key := range []string{"original_query", "dork_query", "google_url", "detected_intents", "suggestions"} {
		assert.Contains(t, raw, key)
	}
	assert.JSONEq(t, `[]`, string(raw["detected_intents"]))
	assert.JSONEq(t, `[]`, string(raw["suggestions"]))
}

func TestSearch_Rejected(t *testing.T) {
	h := newTestHandler(t, nil)

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "missing query", body: `{"site":"acme.com"}`, wantErr: "query is required"},
		{name: "blank query", body: `{"query":"   "}`, wantErr: "query is required"},
		{name: "too long", body: `{"query":"` + strings.Repeat("a", 101) + `"}`, wantErr: "query is too long"},
		{name: "malformed", body: `{"query":`, wantErr: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(h, http.MethodPost, "/search", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var resp utils.APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Error)
			if tt.wantErr != "" {
				assert.Contains(t, resp.Error, tt.wantErr)
			}
		})
	}
}

func TestDork(t *testing.T) {
	h := newTestHandler(t, nil)

	w := do(h, http.MethodGet, "/api/v1/dork?q=confidential", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool           `json:"success"`
		Data    dorking.Result `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "confidential filetype:pdf OR filetype:doc", resp.Data.DorkQuery)

	w = do(h, http.MethodGet, "/api/v1/dork", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeAndSuggestions(t *testing.T) {
	h := newTestHandler(t, nil)

	w := do(h, http.MethodGet, "/api/v1/analyze?q=sql", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"intents":[["files","sql"],["vulnerabilities","database"]]`)

	w = do(h, http.MethodGet, "/api/v1/suggestions?q=login+to+database", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"admin panels on specific domain", "default login pages", "authentication bypasses"}, resp.Data)

	w = do(h, http.MethodGet, "/api/v1/suggestions", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaxonomy(t *testing.T) {
	h := newTestHandler(t, nil)

	w := do(h, http.MethodGet, "/api/v1/taxonomy", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data dorking.Taxonomy `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 4)
	assert.Equal(t, "filetype:pdf", resp.Data["files"]["pdf"])
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t, nil)

	w := do(h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, health.StatusHealthy, resp.Status)
	assert.Equal(t, ServiceName, resp.Service)
	assert.Equal(t, health.StatusDisabled, resp.Services["redis"])
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestHandler(t, nil)
	do(h, http.MethodPost, "/search", `{"query":"pdf"}`)

	w := do(h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "dorkgen_dork_intents_total")
}

func TestCORS(t *testing.T) {
	h := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/search", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimitedRoutes(t *testing.T) {
	h := newTestHandler(t, middleware.NewRateLimiter(1, 1))

	assert.Equal(t, http.StatusOK, do(h, http.MethodPost, "/search", `{"query":"pdf"}`).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(h, http.MethodPost, "/search", `{"query":"pdf"}`).Code)

	// health is outside the limited group
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/health", "").Code)
}
