package interpreter

import (
	"fmt"
	"strings"

	"termfolio/internal/resume"
)

// command describes one entry of the dispatch table. Hidden commands run
// and show in help but are skipped by tab completion.
type command struct {
	Name     string
	TakesArg bool
	Hidden   bool
	Help     []string
}

// commands is the dispatch table in declared order. help, autocomplete and
// dispatch all read it.
var commands = []command{
	{Name: "help", Help: []string{"help — List available commands"}},
	{Name: "about", Help: []string{"about — Short intro & summary"}},
	{Name: "whoami", Hidden: true, Help: []string{"whoami — Name & title"}},
	{Name: "skills", Help: []string{"skills — Show grouped skills"}},
	{Name: "projects", Help: []string{"projects — List featured projects"}},
	{Name: "experience", Help: []string{"experience — List work roles (ids shown)"}},
	{Name: "role", TakesArg: true, Help: []string{"role <id> — Show role detail"}},
	{Name: "open", TakesArg: true, Help: []string{"open <id|resume> — Open project/role/resume in new tab"}},
	{Name: "resume", Help: []string{
		"resume --pdf — Open pre-rendered PDF resume (if provided)",
		"resume --json — Download resume JSON",
	}},
	{Name: "contact", Help: []string{"contact — Show contact links"}},
	{Name: "clear", Help: []string{"clear — Clear terminal"}},
}

// Commands returns the command names in declared order.
func Commands() []string {
	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.Name
	}
	return names
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.Name == name {
			return c, true
		}
	}
	return command{}, false
}

// dispatch runs a known command. name is already lower-cased. A panicking
// Effects implementation is reported as an error line.
func (s *Session) dispatch(name string, args []string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("command panicked", "session", s.id, "command", name, "panic", r)
			s.print(fmt.Sprintf("Error: %v", r))
		}
	}()

	doc := s.doc
	switch name {
	case "help":
		s.help()
	case "about":
		s.about(doc)
	case "whoami":
		s.print(fmt.Sprintf("%s — %s", doc.Personal.Name, doc.Personal.Title))
	case "skills":
		s.skills(doc)
	case "projects":
		s.projects(doc)
	case "experience":
		s.experience(doc)
	case "role":
		s.role(doc, args)
	case "open":
		s.open(doc, args)
	case "resume":
		s.resume(doc, args)
	case "contact":
		s.contact(doc)
	case "clear":
		s.clearHistory()
		s.print("(terminal cleared)")
	}
}

func (s *Session) help() {
	var lines []string
	for _, c := range commands {
		lines = append(lines, c.Help...)
	}
	s.print(strings.Join(lines, "\n"))
}

func (s *Session) about(doc *resume.Document) {
	p := doc.Personal
	s.print(fmt.Sprintf("%s — %s\n\n%s", p.Name, p.Title, doc.AboutText()))
	if len(doc.Highlights) > 0 {
		s.print("\nHighlights:\n- " + strings.Join(doc.Highlights, "\n- "))
	}
}

func (s *Session) skills(doc *resume.Document) {
	if len(doc.Skills) == 0 {
		s.print("No skills defined in resume.")
		return
	}
	for _, g := range doc.Skills {
		title := g.Title
		if title == "" {
			title = "Skills"
		}
		names := make([]string, len(g.Skills))
		for i, sk := range g.Skills {
			names[i] = sk.Name
		}
		s.print(fmt.Sprintf("%s: %s", title, strings.Join(names, ", ")))
	}
}

func (s *Session) projects(doc *resume.Document) {
	if len(doc.Projects) == 0 {
		s.print("No projects listed.")
		return
	}
	for _, p := range doc.Projects {
		s.print(fmt.Sprintf("%s: %s — %s", idOrPlaceholder(p.ID), p.Title, p.Blurb()))
	}
	s.print("\nOpen a project: open <project-id>")
}

func (s *Session) experience(doc *resume.Document) {
	if len(doc.Experience) == 0 {
		s.print("No experience entries.")
		return
	}
	for _, r := range doc.Experience {
		s.print(fmt.Sprintf("%s: %s @ %s — %s", idOrPlaceholder(r.ID), r.Title, r.Company, resume.FormatDateRange(r.Date)))
	}
	s.print("\nView role details: role <id>")
}

func (s *Session) role(doc *resume.Document, args []string) {
	if len(args) == 0 {
		s.print("Usage: role <id>")
		return
	}
	id := args[0]
	r, ok := doc.Role(id)
	if !ok {
		s.print(fmt.Sprintf("No role found with id %q. Use 'experience' to list ids.", id))
		return
	}
	s.print(fmt.Sprintf("%s @ %s — %s\n", r.Title, r.Company, resume.FormatDateRange(r.Date)))
	if r.Summary != "" {
		s.print(r.Summary + "\n")
	}
	for _, b := range r.Bullets {
		s.print("- " + b)
	}
	if len(r.Tech) > 0 {
		s.print("Tech: " + strings.Join(r.Tech, ", "))
	}
	if r.Link != "" {
		s.print("Company: " + r.Link)
	}
}

func (s *Session) open(doc *resume.Document, args []string) {
	if len(args) == 0 {
		s.print("Usage: open <project-id|role-id|resume>")
		return
	}
	target := args[0]

	if target == "resume" {
		url := resume.FirstNonEmpty(doc.PDF(), doc.CanonicalURL(), doc.Website())
		if url == "" {
			s.print("No resume URL found in resume.meta or personal.contact.website.")
			return
		}
		s.print("Opening resume at " + url)
		s.openURL(url)
		return
	}

	if p, ok := doc.Project(target); ok {
		url := p.URL()
		if url == "" {
			s.print(p.Title + " has no href/links.")
			return
		}
		s.print(fmt.Sprintf("Opening %s -> %s", p.Title, url))
		s.openURL(url)
		return
	}

	if r, ok := doc.Role(target); ok {
		if r.Link == "" {
			s.print(r.Title + " has no company link.")
			return
		}
		s.print(fmt.Sprintf("Opening %s -> %s", r.Company, r.Link))
		s.openURL(r.Link)
		return
	}

	s.print(fmt.Sprintf("No project or role found with id %q.", target))
}

func (s *Session) resume(doc *resume.Document, args []string) {
	var flag string
	if len(args) > 0 {
		flag = args[0]
	}

	switch flag {
	case "--pdf":
		pdf := doc.PDF()
		if pdf == "" {
			s.print("No PDF available (resume.meta.pdf not set).")
			return
		}
		s.print("Opening PDF resume: " + pdf)
		s.openURL(pdf)
	case "--json":
		s.print("Downloading resume JSON.")
		data, err := doc.JSON()
		if err != nil {
			s.print("Error: " + err.Error())
			return
		}
		if s.effects == nil {
			return
		}
		if err := s.effects.Download(doc.DownloadName(), data); err != nil {
			s.logger.Warn("download failed", "session", s.id, "error", err)
			s.print("Error: " + err.Error())
		}
	default:
		url := resume.FirstNonEmpty(doc.CanonicalURL(), doc.PDF(), doc.Website())
		if url == "" {
			s.print("No resume URL or PDF found in resume.meta.")
			return
		}
		s.print("Opening " + url)
		s.openURL(url)
	}
}

func (s *Session) contact(doc *resume.Document) {
	c := doc.Personal.Contact
	if c == nil {
		s.print("No contact info.")
		return
	}
	if c.Email != "" {
		s.print("Email: " + c.Email)
	}
	if c.Phone != "" {
		s.print("Phone: " + c.Phone)
	}
	if c.Website != "" {
		s.print("Website: " + c.Website)
	}
	if c.Location != "" {
		s.print("Location: " + c.Location)
	}
	for _, so := range c.Socials {
		s.print(fmt.Sprintf("%s: %s", so.Label, so.URL))
	}
}

func (s *Session) openURL(url string) {
	if s.effects == nil {
		return
	}
	if err := s.effects.OpenURL(url); err != nil {
		s.logger.Warn("open failed", "session", s.id, "url", url, "error", err)
		s.print("Error: " + err.Error())
	}
}

func idOrPlaceholder(id resume.ID) string {
	if id == "" {
		return "(no-id)"
	}
	return string(id)
}
