package http

import (
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dictgate/dictgate/adapters/reward"
	"github.com/dictgate/dictgate/adapters/store"
	"github.com/dictgate/dictgate/corpus"
	"github.com/dictgate/dictgate/metrics"
	"github.com/dictgate/dictgate/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, threshold uint64) (*gin.Engine, *corpus.Corpus) {
	t.Helper()

	corp := corpus.New([]string{"apple", "banana", "cherry", "kiwi", "mango"})
	registry := prometheus.NewRegistry()

	gate := service.NewGateService(
		service.Config{Threshold: threshold, Window: time.Minute},
		store.NewMemoryStore(),
		corp,
		reward.NewStaticFlag("http-secret"),
		service.WithMetrics(metrics.New(registry)),
		service.WithRand(rand.New(rand.NewSource(1))),
	)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return SetupRouter(gate, corp, logger, registry), corp
}

func do(t *testing.T, router *gin.Engine, method, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "/", reader)
	req.RemoteAddr = "192.0.2.1:4242"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGateFlowOverHTTP(t *testing.T) {
	router, corp := newTestRouter(t, 1)

	w := do(t, router, http.MethodGet, "")
	require.Equal(t, http.StatusOK, w.Code)

	const prefix = "Check if the following word is in the dictionary: "
	body := w.Body.String()
	require.True(t, strings.HasPrefix(body, prefix))

	// Threshold 1 needs two correct answers.
	for i := 0; i < 2; i++ {
		word := strings.TrimSuffix(strings.TrimPrefix(body, prefix), "\n")
		answer := strconv.FormatBool(corp.Contains(word))

		w = do(t, router, http.MethodPost, answer)
		require.Equal(t, http.StatusOK, w.Code)
		body = w.Body.String()
	}

	assert.Equal(t, "flag{http-secret}\n", body)
}

func TestWrongAnswerOverHTTP(t *testing.T) {
	router, corp := newTestRouter(t, 10)

	w := do(t, router, http.MethodGet, "")
	require.Equal(t, http.StatusOK, w.Code)

	const prefix = "Check if the following word is in the dictionary: "
	word := strings.TrimSuffix(strings.TrimPrefix(w.Body.String(), prefix), "\n")
	wrong := strconv.FormatBool(!corp.Contains(word))

	w = do(t, router, http.MethodPost, wrong)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Your response was incorrect\n", w.Body.String())
}

func TestMalformedAnswerOverHTTP(t *testing.T) {
	router, _ := newTestRouter(t, 10)

	do(t, router, http.MethodGet, "")
	w := do(t, router, http.MethodPost, "maybe")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Your response failed in some way\n", w.Body.String())
}

func TestProtocolMismatchesAreSilent(t *testing.T) {
	router, _ := newTestRouter(t, 10)

	// POST before any GET: no session to answer.
	w := do(t, router, http.MethodPost, "true")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	// GET while a run is in progress.
	do(t, router, http.MethodGet, "")
	w = do(t, router, http.MethodGet, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t, 10)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"corpus_words":5`)
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, 10)

	do(t, router, http.MethodGet, "")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "dictgate_challenges_issued_total 1")
	assert.Contains(t, w.Body.String(), "dictgate_active_sessions 1")
}
