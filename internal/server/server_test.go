package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termfolio/internal/answer"
	"termfolio/internal/ask"
	"termfolio/internal/resume"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type failingQuerier struct{}

func (failingQuerier) Query(context.Context, string) (*ask.Response, error) {
	return nil, errors.New("index unavailable")
}

type recordingMailer struct {
	sent []*Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg *Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type testServer struct {
	*Server
	store  *Store
	mailer *recordingMailer
}

func newTestServer(t *testing.T, mutate func(*Config)) *testServer {
	t.Helper()
	doc := resume.Sample()
	store := newTestStore(t)
	mailer := &recordingMailer{}
	cfg := Config{
		Document:     doc,
		Querier:      answer.NewEngine(doc),
		Store:        store,
		Mailer:       mailer,
		ContactEmail: "jordan@example.com",
	}
	if mutate != nil {
		mutate(&cfg)
	}
	s, err := New(cfg)
	require.NoError(t, err)
	return &testServer{Server: s, store: store, mailer: mailer}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := New(Config{Querier: answer.NewEngine(resume.Sample())})
	assert.Error(t, err)
	_, err = New(Config{Document: resume.Sample()})
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	w := s.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestQuery(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodPost, "/api/query", `{"q":"Which databases?"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ask.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Databases: PostgreSQL, MongoDB", resp.Answer)
	require.Len(t, resp.Sources, 1)
	assert.Equal(t, "skills-3", resp.Sources[0].ID)
}

func TestQuery_NoMatch(t *testing.T) {
	s := newTestServer(t, nil)
	w := s.do(http.MethodPost, "/api/query", `{"q":"kubernetes"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"answer":"","sources":[]}`, w.Body.String())
}

func TestQuery_BadRequests(t *testing.T) {
	s := newTestServer(t, nil)

	for _, body := range []string{"", "{", `{"q":"   "}`, `{}`} {
		w := s.do(http.MethodPost, "/api/query", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestQuery_Failure(t *testing.T) {
	s := newTestServer(t, func(c *Config) { c.Querier = failingQuerier{} })
	w := s.do(http.MethodPost, "/api/query", `{"q":"hi"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestQuery_ThroughAskClient(t *testing.T) {
	s := newTestServer(t, nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	client, err := ask.NewClient(ts.URL, nil)
	require.NoError(t, err)

	got, err := client.Ask(context.Background(), "mongodb")
	require.NoError(t, err)
	assert.Equal(t, "Databases: PostgreSQL, MongoDB", got)

	got, err = client.Ask(context.Background(), "kubernetes")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestResume(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodGet, "/api/resume", "")
	require.Equal(t, http.StatusOK, w.Code)
	var doc resume.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, resume.Sample(), &doc)

	w = s.do(http.MethodGet, "/api/resume/download", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="Jordan_Lee_resume.json"`, w.Header().Get("Content-Disposition"))
	expected, err := resume.Sample().JSON()
	require.NoError(t, err)
	assert.Equal(t, string(expected), w.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, nil)
	w := s.do(http.MethodOptions, "/api/query", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSend(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodPost, "/send", `{
		"to": "Jordan@Example.com",
		"subject": "Website contact from Ada",
		"body": "Hi!\n\n---\nFrom: Ada <ada@example.com>",
		"html": false,
		"from_name": "Ada",
		"from_email": "ada@example.com"
	}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "sent", resp["status"])

	require.Len(t, s.mailer.sent, 1)
	assert.Equal(t, "jordan@example.com", s.mailer.sent[0].To)

	msgs, err := s.store.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, resp["id"], msgs[0].ID.String())
	assert.True(t, msgs[0].Relayed)
	assert.Equal(t, "Ada", msgs[0].FromName)
}

func TestSend_StoredWithoutMailer(t *testing.T) {
	s := newTestServer(t, func(c *Config) { c.Mailer = nil })

	w := s.do(http.MethodPost, "/send", `{"subject":"s","body":"b"}`)
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"stored"`)

	msgs, err := s.store.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.False(t, msgs[0].Relayed)
}

func TestSend_RelayFailureKeepsMessage(t *testing.T) {
	s := newTestServer(t, nil)
	s.mailer.err = errors.New("smtp down")

	w := s.do(http.MethodPost, "/send", `{"subject":"s","body":"b"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	msgs, err := s.store.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.False(t, msgs[0].Relayed)
}

func TestSend_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		body   string
		status int
	}{
		{"missing subject", nil, `{"body":"b"}`, http.StatusBadRequest},
		{"bad reply address", nil, `{"subject":"s","body":"b","from_email":"nope"}`, http.StatusBadRequest},
		{"foreign recipient", nil, `{"to":"other@example.com","subject":"s","body":"b"}`, http.StatusBadRequest},
		{"no recipient configured", func(c *Config) { c.ContactEmail = "" }, `{"subject":"s","body":"b"}`, http.StatusServiceUnavailable},
		{"no store", func(c *Config) { c.Store = nil }, `{"subject":"s","body":"b"}`, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, tt.mutate)
			w := s.do(http.MethodPost, "/send", tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Empty(t, s.mailer.sent)
		})
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	s := newTestServer(t, nil)
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() { errCh <- s.Serve(ctx, "127.0.0.1:0") }()
	cancel()

	assert.NoError(t, <-errCh)
}
