// Package interpreter implements the resume command line: a session that
// turns typed lines into output entries and side effects against a fixed
// resume document.
package interpreter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"termfolio/internal/resume"
)

// ErrBusy is returned by Submit while a fallback query is in flight.
var ErrBusy = errors.New("interpreter: a query is already in flight")

// Kind tells command echoes apart from output.
type Kind int

const (
	KindCommand Kind = iota
	KindOutput
)

func (k Kind) String() string {
	if k == KindCommand {
		return "command"
	}
	return "output"
}

// Entry is one rendered block in the session history. Answer marks output
// that came verbatim from the answer service.
type Entry struct {
	Kind   Kind
	Text   string
	Answer bool
}

// Asker answers free-text questions the dispatch table does not know.
// An empty answer with a nil error means the service had nothing to say.
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
}

// Effects are the host actions a command may trigger.
type Effects interface {
	OpenURL(url string) error
	Download(filename string, data []byte) error
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. Sessions log nothing by default.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithoutWelcome starts the session with an empty history.
func WithoutWelcome() Option {
	return func(s *Session) { s.welcome = false }
}

// Session is one open lifetime of the command line. It is safe for use by
// the UI goroutine and the single in-flight query goroutine.
type Session struct {
	id      string
	doc     *resume.Document
	asker   Asker
	effects Effects
	logger  *slog.Logger
	welcome bool

	mu         sync.Mutex
	history    []Entry
	commandLog []string
	cursor     int // index into commandLog, -1 when not recalling
	input      string
	busy       bool
	epoch      int // bumped whenever history is emptied
}

// New opens a session over doc. The document must not be modified while
// the session is alive.
func New(doc *resume.Document, asker Asker, effects Effects, opts ...Option) *Session {
	s := &Session{
		id:      uuid.NewString(),
		doc:     doc,
		asker:   asker,
		effects: effects,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		welcome: true,
		cursor:  -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.welcome {
		s.history = append(s.history,
			Entry{Kind: KindOutput, Text: `Welcome — type "help" to see commands.`},
			Entry{Kind: KindOutput, Text: fmt.Sprintf("Loaded resume for %s (%s)\n", doc.Personal.Name, doc.Personal.Title)},
		)
	}
	return s
}

// ID is a random identifier used to correlate log lines.
func (s *Session) ID() string { return s.id }

// Submit runs one line. Blank input is ignored. The returned channel is
// closed once the command has fully settled; for every command except the
// fallback query that has already happened when Submit returns.
func (s *Session) Submit(ctx context.Context, raw string) (<-chan struct{}, error) {
	done := make(chan struct{})
	line := strings.TrimSpace(raw)
	if line == "" {
		close(done)
		return done, nil
	}

	fields := strings.Fields(line)
	name := strings.ToLower(fields[0])
	args := fields[1:]
	_, known := lookup(name)

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.history = append(s.history, Entry{Kind: KindCommand, Text: "$ " + line})
	s.commandLog = append(s.commandLog, line)
	s.cursor = -1
	if !known {
		s.busy = true
	}
	s.mu.Unlock()

	s.logger.Debug("dispatch", "session", s.id, "command", name, "args", args, "known", known)

	if known {
		s.dispatch(name, args)
		close(done)
		return done, nil
	}

	go s.fallback(context.WithoutCancel(ctx), line, done)
	return done, nil
}

// fallback forwards an unrecognized line to the answer service. The busy
// flag is cleared on every path, including a panicking Asker.
func (s *Session) fallback(ctx context.Context, line string, done chan<- struct{}) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("query panicked", "session", s.id, "panic", r)
			s.print(fmt.Sprintf("Error querying API: %v", r))
		}
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
		close(done)
	}()

	if s.asker == nil {
		s.print("Unknown command: " + line)
		return
	}
	answer, err := s.asker.Ask(ctx, line)
	switch {
	case err != nil:
		s.logger.Warn("query failed", "session", s.id, "error", err)
		s.print("Error querying API: " + err.Error())
	case answer != "":
		s.mu.Lock()
		s.history = append(s.history, Entry{Kind: KindOutput, Text: answer, Answer: true})
		s.mu.Unlock()
	default:
		s.print("Unknown command: " + line)
	}
}

// print appends one output entry.
func (s *Session) print(text string) {
	s.mu.Lock()
	s.history = append(s.history, Entry{Kind: KindOutput, Text: text})
	s.mu.Unlock()
}

// clearHistory empties the rendered history.
func (s *Session) clearHistory() {
	s.mu.Lock()
	s.history = nil
	s.epoch++
	s.mu.Unlock()
}

// Reset empties history and the input buffer without printing anything.
// The command log survives so recall keeps working.
func (s *Session) Reset() {
	s.mu.Lock()
	s.history = nil
	s.input = ""
	s.cursor = -1
	s.epoch++
	s.mu.Unlock()
}

// History returns a copy of the rendered history.
func (s *Session) History() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.history))
	copy(out, s.history)
	return out
}

// CommandLog returns a copy of the submitted lines, oldest first.
func (s *Session) CommandLog() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.commandLog))
	copy(out, s.commandLog)
	return out
}

// Cursor reports the recall position; ok is false when not recalling.
func (s *Session) Cursor() (index int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor, s.cursor >= 0
}

// Busy reports whether a fallback query is outstanding.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Epoch changes every time the history is emptied, so renderers holding an
// offset into History know to start over.
func (s *Session) Epoch() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// Input returns the current input buffer.
func (s *Session) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// SetInput replaces the input buffer, e.g. as the user types.
func (s *Session) SetInput(v string) {
	s.mu.Lock()
	s.input = v
	s.mu.Unlock()
}
