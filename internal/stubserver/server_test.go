package stubserver

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/api"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/assessment"
	"github.com/BhanuPrakashPandey0843/Inner-Balance/internal/flow"
)

func clientFor(t *testing.T, srv *httptest.Server) *api.Client {
	t.Helper()
	cfg := api.Config{
		BaseURL:       srv.URL + "/api",
		RootURL:       srv.URL,
		Timeout:       2 * time.Second,
		HealthTimeout: time.Second,
		Retry:         api.RetryConfig{MaxAttempts: 3, InitialWait: time.Millisecond, Policy: api.BackoffLinear},
	}
	return api.New(cfg, nil, srv.Client())
}

func TestQuestionsEndpoint(t *testing.T) {
	h := New(Options{}).Handler()
	req := httptest.NewRequest(http.MethodGet, "/api/questions/", nil)
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	var set assessment.QuestionSet
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &set))
	assert.Equal(t, 10, set.Count)
	assert.Len(t, set.Questions, 10)
}

func TestAnalyzeRequiresAnswers(t *testing.T) {
	h := New(Options{}).Handler()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze-initial/", bytes.NewReader([]byte(`{"answers":{}}`)))
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.JSONEq(t, `{"error":"answers are required"}`, resp.Body.String())
}

func TestReportRequiresAssessmentID(t *testing.T) {
	h := New(Options{}).Handler()
	req := httptest.NewRequest(http.MethodPost, "/api/generate-report/", bytes.NewReader([]byte(`{"initial_answers":{"1":2}}`)))
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestFailFirstIsPerEndpoint(t *testing.T) {
	h := New(Options{FailFirst: 2}).Handler()

	codes := func(path string) []int {
		var out []int
		for i := 0; i < 3; i++ {
			resp := httptest.NewRecorder()
			h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
			out = append(out, resp.Code)
		}
		return out
	}

	assert.Equal(t, []int{503, 503, 200}, codes("/api/questions/"))
	assert.Equal(t, []int{503, 503, 200}, codes("/api/system-status/"))
	assert.Equal(t, []int{200, 200, 200}, codes("/api/test/"))
}

func TestClientRecoversFromWarmup(t *testing.T) {
	srv := httptest.NewServer(New(Options{FailFirst: 2}).Handler())
	defer srv.Close()

	svc := assessment.NewService(clientFor(t, srv))
	res := svc.FetchQuestions(context.Background())
	assert.False(t, res.IsFallback(), "reason: %v", res.Reason)
	assert.Len(t, res.Payload.Questions, 10)
}

func TestClientGivesUpAfterThreeFailures(t *testing.T) {
	srv := httptest.NewServer(New(Options{FailFirst: 3}).Handler())
	defer srv.Close()

	svc := assessment.NewService(clientFor(t, srv))
	res := svc.FetchQuestions(context.Background())
	assert.True(t, res.IsFallback())
	assert.False(t, res.Offline())

	var serverErr *api.ServerError
	assert.ErrorAs(t, res.Reason, &serverErr)
}

func TestEndToEndFlow(t *testing.T) {
	srv := httptest.NewServer(New(Options{FollowUps: []string{"How is your sleep?", "Anything else?"}}).Handler())
	defer srv.Close()

	client := clientFor(t, srv)
	require.True(t, client.Health(context.Background()))

	m := flow.New(assessment.NewService(client))
	ctx := context.Background()
	eff, err := m.Start()
	require.NoError(t, err)
	require.NoError(t, m.Run(ctx, eff))
	require.Equal(t, flow.StateAnswering, m.State())
	require.Nil(t, m.Notice())

	for {
		require.NoError(t, m.Answer("2"))
		if m.OnLast() {
			break
		}
		require.NoError(t, m.Next())
	}
	eff, err = m.Submit()
	require.NoError(t, err)
	require.NoError(t, m.Run(ctx, eff))
	require.Equal(t, flow.PhaseFollowUp, m.Phase())

	_, total := m.Position()
	assert.Equal(t, 12, total)

	for {
		require.NoError(t, m.Answer("Doing fine"))
		if m.OnLast() {
			break
		}
		require.NoError(t, m.Next())
	}
	eff, err = m.Submit()
	require.NoError(t, err)
	require.NoError(t, m.Run(ctx, eff))
	require.Equal(t, flow.StateDone, m.State())

	o := m.Outcome()
	require.NotNil(t, o)
	assert.False(t, o.Fallback)
	assert.Equal(t, assessment.RiskModerate, o.RiskLevel())
	assert.Equal(t, "Stub report: 10 initial answers and 2 follow-up responses reviewed.", o.Report.Report["summary"])
}

func TestSystemStatus(t *testing.T) {
	srv := httptest.NewServer(New(Options{Version: "1.0"}).Handler())
	defer srv.Close()

	st, err := clientFor(t, srv).SystemStatus(context.Background())
	require.NoError(t, err)
	assert.True(t, st.VectorStoreReady)
	assert.Equal(t, "1.0", st.Version)
	assert.Equal(t, 10, st.KnowledgeBaseItems)
}

func TestListenAndServeShutsDown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- New(Options{}).ListenAndServe(ctx, "127.0.0.1:0")
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRespondJSONEncodeFailure(t *testing.T) {
	var logs bytes.Buffer
	s := New(Options{LogRequests: true})
	s.logger = log.New(&logs, "", 0)

	resp := httptest.NewRecorder()
	s.respondJSON(resp, http.StatusOK, map[string]any{"bad": make(chan int)})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.JSONEq(t, `{"error":"failed to encode response"}`, resp.Body.String())
	assert.Contains(t, logs.String(), "encode")
}

func TestRespondJSONQuietWithoutLogging(t *testing.T) {
	var logs bytes.Buffer
	s := New(Options{})
	s.logger = log.New(&logs, "", 0)

	resp := httptest.NewRecorder()
	s.respondJSON(resp, http.StatusOK, make(chan int))

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Empty(t, logs.String())
}

func TestAnalyzeEchoesNonCanonicalNumericID(t *testing.T) {
	h := New(Options{}).Handler()
	body := `{"answers":{"1":2,"2":null},"assessment_id":"007"}`
	req := httptest.NewRequest(http.MethodPost, "/api/analyze-initial/", bytes.NewReader([]byte(body)))
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, "007", got["assessment_id"])
}
