package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rgehrsitz/corpus/internal/breakeven"
	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/rgehrsitz/corpus/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// planBody is the reference accumulation case; every rate comes from the
// built-in defaults.
const planBody = `{
  "name": "api",
  "asOfYear": 2025,
  "parameters": {
    "currentAge": 35,
    "retirementAge": 60,
    "lifeExpectancy": 85,
    "monthlyExpenses": 100000
  },
  "investments": [
    {"name": "Equity funds", "type": "mutual_fund", "currentValue": 2000000, "monthlyContribution": 50000}
  ]
}`

func shortfallBody() string {
	return strings.Replace(planBody, `"monthlyExpenses": 100000`, `"monthlyExpenses": 200000`, 1)
}

func newTestServer(t *testing.T, cfg Config) (*Server, storage.Repository) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo := storage.NewMemoryRepository()
	s := NewServer(cfg, repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() {
		s.Close()
		_ = repo.Close()
	})
	return s, repo
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, Config{})
	w := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	_, err := uuid.Parse(w.Header().Get(requestIDHeader))
	assert.NoError(t, err)
}

func TestRequestIDPropagation(t *testing.T) {
	s, _ := newTestServer(t, Config{})
	id := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, id)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, id, w.Header().Get(requestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "not-a-uuid")
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid", w.Header().Get(requestIDHeader))
}

func TestCalculate(t *testing.T) {
	s, _ := newTestServer(t, Config{})
	w := do(t, s, http.MethodPost, "/api/v1/calculate", planBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	res := decode[domain.Result](t, w)
	assert.Equal(t, "202974193.93", res.Summary.FinalCorpus.StringFixed(2))
	assert.Len(t, res.Matrix, 25)
	assert.Equal(t, domain.StrategySustainable, res.GapAnalysis.SelectedStrategy)
	assert.Len(t, res.GapAnalysis.Strategies, 3)
}

func TestCalculate_BadRequests(t *testing.T) {
	s, _ := newTestServer(t, Config{})

	w := do(t, s, http.MethodPost, "/api/v1/calculate", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[ErrorResponse](t, w).Error, "invalid request body")

	w = do(t, s, http.MethodPost, "/api/v1/calculate", `{"investments":[{"type":"mutual_fund"}]}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decode[ErrorResponse](t, w)
	assert.Equal(t, "plan validation failed", resp.Error)
	require.NotEmpty(t, resp.Fields)
	assert.Equal(t, "investments[0].name", resp.Fields[0].Field)
	assert.NotEmpty(t, resp.RequestID)

	w = do(t, s, http.MethodPost, "/api/v1/calculate", `{"parameters":{"incomeStrategy":"yolo"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[ErrorResponse](t, w).Error, "unknown income strategy")
}

func TestOptimizeAndWhatIf(t *testing.T) {
	s, _ := newTestServer(t, Config{})

	w := do(t, s, http.MethodPost, "/api/v1/optimize", planBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	opt := decode[OptimizeResponse](t, w)
	assert.Equal(t, "202974193.93", opt.GapAnalysis.ProjectedCorpus.StringFixed(2))
	assert.NotEmpty(t, opt.StepUpOptimization.Mode)

	w = do(t, s, http.MethodPost, "/api/v1/whatif", planBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	wi := decode[WhatIfResponse](t, w)
	assert.Equal(t, "202974193.93", wi.GapAnalysis.ProjectedCorpus.StringFixed(2))
}

func TestBreakEven(t *testing.T) {
	s, _ := newTestServer(t, Config{})

	w := do(t, s, http.MethodPost, "/api/v1/breakeven?target=monthly_sip", shortfallBody())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decode[breakeven.OptimizationResult](t, w)
	assert.True(t, res.Success)
	require.NotNil(t, res.OptimalMonthlySIP)
	assert.True(t, res.OptimalMonthlySIP.IsPositive())

	w = do(t, s, http.MethodPost, "/api/v1/breakeven", shortfallBody())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	md := decode[breakeven.MultiDimensionalResult](t, w)
	assert.Len(t, md.Results, 3)
	assert.NotEmpty(t, md.Recommendations)

	w = do(t, s, http.MethodPost, "/api/v1/breakeven?target=lottery", shortfallBody())
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, decode[ErrorResponse](t, w).Error, "unsupported optimization target")
}

func TestSelectionSettings(t *testing.T) {
	s, _ := newTestServer(t, Config{})

	w := do(t, s, http.MethodGet, "/api/v1/settings/alice/selection", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, s, http.MethodPut, "/api/v1/settings/alice/selection", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPut, "/api/v1/settings/alice/selection", `{"strategy":"bogus"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPut, "/api/v1/settings/alice/selection", `{"strategy":"4%"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	saved := decode[storage.Selection](t, w)
	assert.Equal(t, domain.StrategySafe4Percent, saved.Strategy)

	w = do(t, s, http.MethodGet, "/api/v1/settings/alice/selection", "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[storage.Selection](t, w)
	assert.Equal(t, saved.ID, got.ID)

	// the saved strategy applies to plans that leave it out
	w = do(t, s, http.MethodPost, "/api/v1/calculate?user=alice", planBody)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.StrategySafe4Percent, decode[domain.Result](t, w).GapAnalysis.SelectedStrategy)

	w = do(t, s, http.MethodPost, "/api/v1/calculate?user=bob", planBody)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.StrategySustainable, decode[domain.Result](t, w).GapAnalysis.SelectedStrategy)
}

func TestAssumptionSettings(t *testing.T) {
	s, repo := newTestServer(t, Config{})

	w := do(t, s, http.MethodGet, "/api/v1/settings/alice/assumptions", "")
	require.Equal(t, http.StatusOK, w.Code)
	def := decode[AssumptionsResponse](t, w)
	assert.Equal(t, "default", def.Source)
	assert.Equal(t, "7.1", def.Parameters.PPFReturn.String())

	w = do(t, s, http.MethodPut, "/api/v1/settings/alice/assumptions", `{"mfReturn": 10, "incomeStrategy": "simple"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	saved := decode[AssumptionsResponse](t, w)
	assert.Equal(t, "saved", saved.Source)
	assert.Equal(t, "10", saved.Parameters.MFReturn.String())
	assert.Equal(t, domain.StrategySimpleDepletion, saved.Parameters.IncomeStrategy)
	// untouched keys keep the built-in values
	assert.Equal(t, "8.25", saved.Parameters.EPFReturn.String())

	stored, err := repo.GetAssumptions(t.Context(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "10", stored.MFReturn.String())

	// a lower fund return shrinks the projection below the built-in case
	w = do(t, s, http.MethodPost, "/api/v1/calculate?user=alice", planBody)
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[domain.Result](t, w)
	assert.True(t, res.Summary.FinalCorpus.LessThan(decimal.RequireFromString("202974193.93")))
	assert.Equal(t, domain.StrategySimpleDepletion, res.GapAnalysis.SelectedStrategy)

	w = do(t, s, http.MethodPut, "/api/v1/settings/alice/assumptions", `{"optimizerMode": "exhaustive"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRateLimit(t *testing.T) {
	s, _ := newTestServer(t, Config{RateLimit: 1, Burst: 1})

	w := do(t, s, http.MethodPost, "/api/v1/calculate", planBody)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, s, http.MethodPost, "/api/v1/calculate", planBody)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "rate limit exceeded", decode[ErrorResponse](t, w).Error)

	// health and metrics sit outside the limiter
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/health", "").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t, Config{})
	do(t, s, http.MethodPost, "/api/v1/calculate", planBody)

	w := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `corpus_http_requests_total{route="/api/v1/calculate",status="200"} 1`)
	assert.Contains(t, body, `corpus_engine_calculation_duration_seconds_count{operation="calculate"} 1`)
}
