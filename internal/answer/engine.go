package answer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"termfolio/internal/ask"
	"termfolio/internal/resume"
)

// DefaultTopK is the number of sources returned with an answer.
const DefaultTopK = 3

// Generator writes an answer from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Engine answers questions about one document.
type Engine struct {
	owner     string
	index     *Index
	generator Generator
	topK      int
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithGenerator writes answers with g instead of quoting the best source.
func WithGenerator(g Generator) Option {
	return func(e *Engine) { e.generator = g }
}

// WithTopK sets how many sources are retrieved.
func WithTopK(k int) Option {
	return func(e *Engine) {
		if k > 0 {
			e.topK = k
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine indexes doc.
func NewEngine(doc *resume.Document, opts ...Option) *Engine {
	e := &Engine{
		owner:  doc.Personal.Name,
		index:  NewIndex(doc),
		topK:   DefaultTopK,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Query retrieves sources for question and answers from them. No matching
// source yields an empty answer. A failing generator falls back to the
// extractive answer.
func (e *Engine) Query(ctx context.Context, question string) (*ask.Response, error) {
	sources := e.index.Search(question, e.topK)
	if len(sources) == 0 {
		return &ask.Response{Sources: []ask.Source{}}, nil
	}

	answer := sources[0].Text
	if e.generator != nil {
		text, err := e.generator.Generate(ctx, BuildPrompt(e.owner, question, sources))
		switch {
		case err != nil:
			e.logger.Warn("generation failed, using extractive answer", "error", err)
		case strings.TrimSpace(text) != "":
			answer = strings.TrimSpace(text)
		}
	}
	return &ask.Response{Answer: answer, Sources: sources}, nil
}

// Ask implements the interpreter's Asker so the engine can be used in
// process without a server.
func (e *Engine) Ask(ctx context.Context, question string) (string, error) {
	resp, err := e.Query(ctx, question)
	if err != nil {
		return "", err
	}
	return resp.Answer, nil
}

// BuildPrompt renders the grounding prompt sent to a Generator.
func BuildPrompt(owner, question string, sources []ask.Source) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You answer questions about %s's resume for visitors of a portfolio terminal.\n", owner)
	b.WriteString("Use only the context below. Reply in at most three plain-text sentences. ")
	b.WriteString("If the context does not contain the answer, say you don't know.\n\nContext:\n")
	for _, s := range sources {
		fmt.Fprintf(&b, "[%s] %s\n", s.ID, s.Text)
	}
	fmt.Fprintf(&b, "\nQuestion: %s\n", question)
	return b.String()
}
