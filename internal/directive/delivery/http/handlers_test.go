package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aegnt-unltd/internal/brain"
	"aegnt-unltd/internal/middleware"
	"aegnt-unltd/internal/router"
	"aegnt-unltd/internal/tier"
	"aegnt-unltd/pkg/log"
)

type fakeDispatcher struct {
	resp      brain.Response
	inputs    []string
	prompt    string
	loadErr   error
	loadPaths []string
}

func (f *fakeDispatcher) ProcessDirective(_ context.Context, input string) brain.Response {
	f.inputs = append(f.inputs, input)
	return f.resp
}

func (f *fakeDispatcher) LoadSystemPrompt(_ context.Context, path string) error {
	f.loadPaths = append(f.loadPaths, path)
	if f.loadErr != nil {
		return f.loadErr
	}
	f.prompt = "you are aegnt"
	return nil
}

func (f *fakeDispatcher) SystemPrompt() string          { return f.prompt }
func (f *fakeDispatcher) Classify(string) router.Intent { return router.IntentQuickAction }
func (f *fakeDispatcher) Config() brain.Config          { return brain.Config{} }

func newTestEngine(d brain.Dispatcher, promptPath string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, New(log.NewNop(), d, promptPath), middleware.New(log.NewNop(), 0))
	return r
}

func doPost(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProcess_FastTier(t *testing.T) {
	d := &fakeDispatcher{resp: brain.Response{
		Intent:    router.IntentQuickAction,
		System:    tier.SystemCortex,
		Content:   "[FAST] Processed: hi",
		LatencyMS: 3,
	}}
	r := newTestEngine(d, "")

	w := doPost(r, "/process", `{"input":"hi"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"hi"}, d.inputs)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "QuickAction", body["intent"])
	assert.Equal(t, "cortex", body["system"])
	assert.Equal(t, "[FAST] Processed: hi", body["content"])
	assert.Contains(t, body, "reasoning_trace")
	assert.Nil(t, body["reasoning_trace"])
	assert.EqualValues(t, 3, body["latency_ms"])
	assert.NotContains(t, body, "degraded")
}

func TestProcess_DeepTierTrace(t *testing.T) {
	d := &fakeDispatcher{resp: brain.Response{
		Intent:  router.IntentStrategy,
		System:  tier.SystemDeepMind,
		Content: "[DEEP] Analyzing strategy for: plan",
		Trace: tier.Trace{
			{Name: "classify", Detail: "classified as Strategy"},
			{Name: "generate", Detail: "generated plan with template"},
		},
	}}
	r := newTestEngine(d, "")

	w := doPost(r, "/process", `{"input":"plan"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body processResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.ReasoningTrace)
	assert.Equal(t, "1. classified as Strategy\n2. generated plan with template", *body.ReasoningTrace)
}

func TestProcess_EmptyInputAccepted(t *testing.T) {
	d := &fakeDispatcher{resp: brain.Response{Intent: router.IntentQuickAction, System: tier.SystemCortex}}
	r := newTestEngine(d, "")

	w := doPost(r, "/process", `{"input":""}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{""}, d.inputs)
}

func TestProcess_BadRequest(t *testing.T) {
	tcs := map[string]string{
		"malformed json": `{"input":`,
		"missing input":  `{}`,
		"wrong type":     `{"input":42}`,
	}

	for name, body := range tcs {
		t.Run(name, func(t *testing.T) {
			d := &fakeDispatcher{}
			r := newTestEngine(d, "")

			w := doPost(r, "/process", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, d.inputs)
		})
	}
}

func TestReloadSystemPrompt(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		d := &fakeDispatcher{}
		r := newTestEngine(d, "/etc/aegnt/SYSTEM_PROMPT.md")

		w := doPost(r, "/system-prompt/reload", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"/etc/aegnt/SYSTEM_PROMPT.md"}, d.loadPaths)
		assert.Contains(t, w.Body.String(), `"bytes":13`)
	})

	t.Run("load failure", func(t *testing.T) {
		d := &fakeDispatcher{loadErr: fmt.Errorf("%w: %w", brain.ErrSystemPromptLoad, errors.New("no such file"))}
		r := newTestEngine(d, "missing.md")

		w := doPost(r, "/system-prompt/reload", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "cannot reload system prompt from missing.md")
	})

	t.Run("no path configured", func(t *testing.T) {
		d := &fakeDispatcher{}
		r := newTestEngine(d, "")

		w := doPost(r, "/system-prompt/reload", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, d.loadPaths)
	})
}
