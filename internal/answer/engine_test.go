package answer

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termfolio/internal/ask"
	"termfolio/internal/resume"
)

type fakeGenerator struct {
	text   string
	err    error
	prompt string
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.text, g.err
}

func TestEngine_Extractive(t *testing.T) {
	e := NewEngine(resume.Sample())

	resp, err := e.Query(context.Background(), "Which databases?")
	require.NoError(t, err)
	assert.Equal(t, "Databases: PostgreSQL, MongoDB", resp.Answer)
	require.Len(t, resp.Sources, 1)

	answer, err := e.Ask(context.Background(), "Which databases?")
	require.NoError(t, err)
	assert.Equal(t, resp.Answer, answer)
}

func TestEngine_NoMatchIsEmpty(t *testing.T) {
	gen := &fakeGenerator{text: "should not be called"}
	e := NewEngine(resume.Sample(), WithGenerator(gen))

	resp, err := e.Query(context.Background(), "kubernetes")
	require.NoError(t, err)
	assert.Empty(t, resp.Answer)
	assert.NotNil(t, resp.Sources)
	assert.Empty(t, resp.Sources)
	assert.Empty(t, gen.prompt)
}

func TestEngine_Generator(t *testing.T) {
	gen := &fakeGenerator{text: "  Jordan works with PostgreSQL and MongoDB.\n"}
	e := NewEngine(resume.Sample(), WithGenerator(gen), WithTopK(1))

	resp, err := e.Query(context.Background(), "postgresql mongodb")
	require.NoError(t, err)
	assert.Equal(t, "Jordan works with PostgreSQL and MongoDB.", resp.Answer)
	assert.Len(t, resp.Sources, 1)
	assert.Contains(t, gen.prompt, "Jordan Lee's resume")
	assert.Contains(t, gen.prompt, "[skills-3] Databases: PostgreSQL, MongoDB")
	assert.Contains(t, gen.prompt, "Question: postgresql mongodb")
}

func TestEngine_GeneratorFailureFallsBack(t *testing.T) {
	for _, gen := range []*fakeGenerator{{err: errors.New("quota")}, {text: "   "}} {
		e := NewEngine(resume.Sample(), WithGenerator(gen))
		resp, err := e.Query(context.Background(), "mongodb")
		require.NoError(t, err)
		assert.Equal(t, "Databases: PostgreSQL, MongoDB", resp.Answer)
	}
}

func TestWithTopK_IgnoresNonPositive(t *testing.T) {
	e := NewEngine(resume.Sample(), WithTopK(0))
	assert.Equal(t, DefaultTopK, e.topK)
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("Ada", "what?", []ask.Source{{ID: "a", Text: "one"}, {ID: "b", Text: "two"}})
	assert.Contains(t, prompt, "Ada's resume")
	assert.Contains(t, prompt, "[a] one\n[b] two\n")
	assert.Contains(t, prompt, "Question: what?")
}

func TestNewGemini_RequiresKey(t *testing.T) {
	_, err := NewGemini(context.Background(), "", "")
	assert.ErrorContains(t, err, "API key is required")
}

func TestResponseText(t *testing.T) {
	_, err := responseText(&genai.GenerateContentResponse{})
	assert.ErrorContains(t, err, "no candidates")

	_, err = responseText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}})
	assert.ErrorContains(t, err, "no content")

	text, err := responseText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Parts: []genai.Part{genai.Text("Hello "), genai.Text("there.")}},
	}}})
	require.NoError(t, err)
	assert.Equal(t, "Hello there.", text)
}
