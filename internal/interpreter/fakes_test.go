package interpreter

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"termfolio/internal/resume"
)

type recordingEffects struct {
	mu        sync.Mutex
	opened    []string
	downloads map[string][]byte
	err       error
}

func (e *recordingEffects) OpenURL(url string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	e.opened = append(e.opened, url)
	return nil
}

func (e *recordingEffects) Download(filename string, data []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	if e.downloads == nil {
		e.downloads = make(map[string][]byte)
	}
	e.downloads[filename] = data
	return nil
}

type stubAsker struct {
	answer  string
	err     error
	release chan struct{} // when set, Ask blocks until closed
	calls   []string
	mu      sync.Mutex
}

func (a *stubAsker) Ask(_ context.Context, q string) (string, error) {
	a.mu.Lock()
	a.calls = append(a.calls, q)
	a.mu.Unlock()
	if a.release != nil {
		<-a.release
	}
	return a.answer, a.err
}

type panickingAsker struct{}

func (panickingAsker) Ask(context.Context, string) (string, error) {
	panic("boom")
}

type panickingEffects struct{}

func (panickingEffects) OpenURL(string) error { panic("no display") }

func (panickingEffects) Download(string, []byte) error { panic("disk gone") }

var errOffline = errors.New("dial tcp: connection refused")

// newTestSession returns a session without the welcome banner.
func newTestSession(doc *resume.Document, asker Asker) (*Session, *recordingEffects) {
	effects := &recordingEffects{}
	return New(doc, asker, effects, WithoutWelcome()), effects
}

// run submits line and waits for it to settle.
func run(t *testing.T, s *Session, line string) {
	t.Helper()
	done, err := s.Submit(context.Background(), line)
	require.NoError(t, err)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("submit %q did not settle", line)
	}
}

// outputs returns the text of every output entry.
func outputs(s *Session) []string {
	var out []string
	for _, e := range s.History() {
		if e.Kind == KindOutput {
			out = append(out, e.Text)
		}
	}
	return out
}
