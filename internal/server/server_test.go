package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghadfield32/nba-query-engine/internal/common/config"
	"github.com/ghadfield32/nba-query-engine/internal/common/logger"
	"github.com/ghadfield32/nba-query-engine/internal/models"
	"github.com/ghadfield32/nba-query-engine/internal/pipeline"
	"github.com/ghadfield32/nba-query-engine/internal/provider"
	"github.com/ghadfield32/nba-query-engine/internal/resolve"
	"github.com/ghadfield32/nba-query-engine/pkg/registry"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	reg, err := registry.Builtin()
	require.NoError(t, err)

	inv := provider.Func(func(ctx context.Context, operation string, params map[string]interface{}) (models.Payload, *models.Failure) {
		return models.Payload{
			"metric": "PTS", "season": "2025-26",
			"leaders": []map[string]interface{}{{"rank": 1, "name": "Joel Embiid", "team": "PHI", "value": 33.1}},
		}, nil
	})

	p := pipeline.New(reg, resolve.NewLexiconResolver(), inv, config.PipelineConfig{
		CallTimeout:       2000,
		WeakRuleWeight:    0.6,
		DefaultSeason:     "2025-26",
		DefaultLeaderRows: 10,
	}, logger.NewTestLogger(t))

	return New(p, config.ServerConfig{Address: ":0"}, logger.NewTestLogger(t))
}

func TestAskEndpoint(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"question": "Who leads the league in points?"}`))
	w := httptest.NewRecorder()
	s.handleAsk(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var answer models.Answer
	require.NoError(t, json.NewDecoder(w.Body).Decode(&answer))
	assert.Contains(t, answer.Text, "Joel Embiid")
	assert.Greater(t, answer.Confidence, 0.5)
}

func TestAskRejectsGet(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/ask", nil)
	w := httptest.NewRecorder()
	s.handleAsk(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestAskRejectsEmptyQuestion(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"question": "   "}`))
	w := httptest.NewRecorder()
	s.handleAsk(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAskRejectsOversizedQuestion(t *testing.T) {
	s := newTestServer(t)

	long := strings.Repeat("why ", 200)
	body, _ := json.Marshal(AskRequest{Question: long})
	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(string(body)))
	w := httptest.NewRecorder()
	s.handleAsk(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAskRejectsMalformedJSON(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"question":`))
	w := httptest.NewRecorder()
	s.handleAsk(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	s.handleHealth(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}
