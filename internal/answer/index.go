// Package answer is the question-answering engine behind the serve
// command: it splits a resume into passages, ranks them by keyword overlap
// with the question and turns the best ones into an answer.
package answer

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"termfolio/internal/ask"
	"termfolio/internal/resume"
)

// Chunk is one retrievable passage of the document.
type Chunk struct {
	ID      string
	Section string
	Text    string
	tokens  map[string]struct{}
}

// Index holds the chunks of one document.
type Index struct {
	chunks []Chunk
}

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`a an and are as at be but by can did do does for from had has have he her his how i
		in is it its me my of on or she so tell than that the their them they this to was
		what when where which who whom why will with you your about any some there been`) {
		stopWords[w] = struct{}{}
	}
}

// Tokenize lower-cases text and splits it into words, dropping stop words.
func Tokenize(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
	})
	out := words[:0]
	for _, w := range words {
		if _, stop := stopWords[w]; stop {
			continue
		}
		out = append(out, w)
	}
	return out
}

func newChunk(id, section, text string) Chunk {
	set := make(map[string]struct{})
	for _, tok := range Tokenize(text) {
		set[tok] = struct{}{}
	}
	return Chunk{ID: id, Section: section, Text: text, tokens: set}
}

// NewIndex splits doc into summary, highlight, skill group, role, project
// and contact chunks.
func NewIndex(doc *resume.Document) *Index {
	idx := &Index{}
	add := func(id, section, text string) {
		if strings.TrimSpace(text) == "" {
			return
		}
		idx.chunks = append(idx.chunks, newChunk(id, section, text))
	}

	p := doc.Personal
	add("summary", "summary", strings.Join(nonEmpty(
		fmt.Sprintf("%s, %s.", p.Name, p.Title),
		p.Headline,
		doc.AboutText(),
	), " "))

	for i, h := range doc.Highlights {
		add(fmt.Sprintf("highlight-%d", i), "highlights", h)
	}

	for i, g := range doc.Skills {
		names := make([]string, len(g.Skills))
		for j, s := range g.Skills {
			names[j] = s.Name
		}
		title := resume.FirstNonEmpty(g.Title, "Skills")
		add(fmt.Sprintf("skills-%d", i), "skills", title+": "+strings.Join(names, ", "))
	}

	for i, r := range doc.Experience {
		id := string(r.ID)
		if id == "" {
			id = fmt.Sprintf("role-%d", i)
		}
		var b strings.Builder
		fmt.Fprintf(&b, "%s at %s", r.Title, r.Company)
		if d := resume.FormatDateRange(r.Date); d != "" {
			fmt.Fprintf(&b, " (%s)", d)
		}
		b.WriteString(".")
		for _, s := range nonEmpty(r.Summary, strings.Join(r.Bullets, ". ")) {
			b.WriteString(" " + s)
		}
		if len(r.Tech) > 0 {
			b.WriteString(" Tech: " + strings.Join(r.Tech, ", ") + ".")
		}
		add(id, "experience", b.String())
	}

	for i, pr := range doc.Projects {
		id := string(pr.ID)
		if id == "" {
			id = fmt.Sprintf("project-%d", i)
		}
		text := strings.Join(nonEmpty(pr.Title+".", pr.Short, pr.Description, pr.Long), " ")
		if len(pr.Tags) > 0 {
			text += " Tags: " + strings.Join(pr.Tags, ", ") + "."
		}
		add(id, "projects", text)
	}

	for i, e := range doc.Education {
		add(fmt.Sprintf("education-%d", i), "education",
			strings.Join(nonEmpty(e.Degree, e.School, resume.FormatDateRange(e.Date)), ", "))
	}

	if c := p.Contact; c != nil {
		var parts []string
		for _, kv := range [][2]string{{"Email", c.Email}, {"Phone", c.Phone}, {"Website", c.Website}, {"Location", c.Location}} {
			if kv[1] != "" {
				parts = append(parts, kv[0]+": "+kv[1])
			}
		}
		for _, s := range c.Socials {
			parts = append(parts, s.Label+": "+s.URL)
		}
		add("contact", "contact", "Contact. "+strings.Join(parts, ". "))
	}

	return idx
}

// Len is the number of chunks.
func (x *Index) Len() int { return len(x.chunks) }

// Search returns up to k sources with a positive score, best first. The
// score is the share of the question's tokens present in the chunk; ties
// keep document order.
func (x *Index) Search(question string, k int) []ask.Source {
	seen := make(map[string]struct{})
	var query []string
	for _, tok := range Tokenize(question) {
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		query = append(query, tok)
	}
	if len(query) == 0 || k <= 0 {
		return nil
	}

	var out []ask.Source
	for _, c := range x.chunks {
		hits := 0
		for _, tok := range query {
			if _, ok := c.tokens[tok]; ok {
				hits++
			}
		}
		if hits == 0 {
			continue
		}
		out = append(out, ask.Source{
			ID:    c.ID,
			Text:  c.Text,
			Meta:  map[string]any{"section": c.Section},
			Score: float64(hits) / float64(len(query)),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > k {
		out = out[:k]
	}
	return out
}

func nonEmpty(vals ...string) []string {
	out := vals[:0]
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
