package main

import (
	"regexp"
	"strings"
)

// Pre-compiled regular expressions for better performance
var (
	urlRegex     = regexp.MustCompile(`(https?://|mailto:)[^\s]+`)
	listingRegex = regexp.MustCompile(`^([\w.-]+|\(no-id\)): (.+ — .*)$`)
	headingRegex = regexp.MustCompile(`^([^:]{1,40}):(.*)$`)
)

// LineFormatter styles one line of interpreter output for display.
// Implementations must only add styling; the visible text stays the same.
type LineFormatter interface {
	// Name returns the formatter name (for debugging/logging)
	Name() string

	// CanFormat returns true if this formatter can handle the given line
	CanFormat(line string) bool

	// Format returns the styled line
	Format(line string) string
}

// formatLine applies the first registered formatter that accepts line.
func formatLine(line string) string {
	if line == "" {
		return ""
	}
	if f := formatterFor(line); f != nil {
		return f.Format(line)
	}
	return normalStyle.Render(line)
}

// formatterFor returns the formatter that would handle line, or nil.
func formatterFor(line string) LineFormatter {
	for _, formatter := range registeredFormatters {
		if formatter.CanFormat(line) {
			return formatter
		}
	}
	return nil
}

// formatAnswer styles free text from the answer service. Only links are
// highlighted since the text follows none of the command output shapes.
func formatAnswer(text string) string {
	link := &LinkFormatter{}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		switch {
		case l == "":
		case link.CanFormat(l):
			lines[i] = link.Format(l)
		default:
			lines[i] = normalStyle.Render(l)
		}
	}
	return strings.Join(lines, "\n")
}

// formatEntry styles a multi-line output entry line by line.
func formatEntry(text string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = formatLine(l)
	}
	return strings.Join(lines, "\n")
}

// registeredFormatters holds all active formatters in priority order.
// Formatters earlier in the list take precedence.
var registeredFormatters = []LineFormatter{
	&ErrorFormatter{},
	&HintFormatter{},
	&LinkFormatter{},
	&ListingFormatter{},
	&HeadingFormatter{},
}

// registerFormatter adds a custom formatter to the beginning of the list (highest priority).
func registerFormatter(f LineFormatter) {
	registeredFormatters = append([]LineFormatter{f}, registeredFormatters...)
}

// =============================================================================
// Built-in Formatters
// =============================================================================

// ErrorFormatter highlights failures and not-found replies.
type ErrorFormatter struct{}

func (f *ErrorFormatter) Name() string { return "error" }

var errorPrefixes = []string{
	"Error: ",
	"Error querying API: ",
	"Unknown command: ",
	"No skills defined in resume.",
	"No projects listed.",
	"No experience entries.",
	"No role found with id ",
	"No project or role found with id ",
	"No resume URL",
	"No PDF available",
	"No contact info.",
}

func (f *ErrorFormatter) CanFormat(line string) bool {
	for _, p := range errorPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return strings.HasSuffix(line, " has no href/links.") || strings.HasSuffix(line, " has no company link.")
}

func (f *ErrorFormatter) Format(line string) string {
	return errorStyle.Render(line)
}

// HintFormatter dims usage text and session notices.
type HintFormatter struct{}

func (f *HintFormatter) Name() string { return "hint" }

var hintPrefixes = []string{
	"Usage: ",
	"Open a project:",
	"View role details:",
	"(terminal cleared)",
	"Welcome",
	"Loaded resume for ",
	"Downloading ",
}

func (f *HintFormatter) CanFormat(line string) bool {
	for _, p := range hintPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

func (f *HintFormatter) Format(line string) string {
	return hintStyle.Render(line)
}

// LinkFormatter underlines URLs.
type LinkFormatter struct{}

func (f *LinkFormatter) Name() string { return "link" }

func (f *LinkFormatter) CanFormat(line string) bool {
	return urlRegex.MatchString(line)
}

func (f *LinkFormatter) Format(line string) string {
	var sb strings.Builder
	last := 0
	for _, loc := range urlRegex.FindAllStringIndex(line, -1) {
		if loc[0] > last {
			sb.WriteString(normalStyle.Render(line[last:loc[0]]))
		}
		sb.WriteString(linkStyle.Render(line[loc[0]:loc[1]]))
		last = loc[1]
	}
	if last < len(line) {
		sb.WriteString(normalStyle.Render(line[last:]))
	}
	return sb.String()
}

// ListingFormatter colors the id column of project and role listings.
type ListingFormatter struct{}

func (f *ListingFormatter) Name() string { return "listing" }

func (f *ListingFormatter) CanFormat(line string) bool {
	return listingRegex.MatchString(line)
}

func (f *ListingFormatter) Format(line string) string {
	m := listingRegex.FindStringSubmatch(line)
	return idStyle.Render(m[1]) + normalStyle.Render(": "+m[2])
}

// HeadingFormatter emphasizes "Label: value" lines such as skill groups.
type HeadingFormatter struct{}

func (f *HeadingFormatter) Name() string { return "heading" }

func (f *HeadingFormatter) CanFormat(line string) bool {
	return headingRegex.MatchString(line)
}

func (f *HeadingFormatter) Format(line string) string {
	m := headingRegex.FindStringSubmatch(line)
	if m[2] == "" {
		return headingStyle.Render(line)
	}
	return headingStyle.Render(m[1]+":") + normalStyle.Render(m[2])
}
