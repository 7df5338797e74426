package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"termfolio/internal/interpreter"
)

// Configuration constants
const (
	// TypeJitter is the maximum random delay added to each reveal step
	TypeJitter = 8 * time.Millisecond

	// StatusDisplayDuration is how long status messages are shown
	StatusDisplayDuration = 3 * time.Second

	// HeaderHeight and FooterHeight are the rows around the scrollback
	HeaderHeight = 2
	FooterHeight = 3

	// DefaultWidth and DefaultHeight are used before the first resize
	DefaultWidth  = 80
	DefaultHeight = 24

	// InputCharLimit bounds a single command line
	InputCharLimit = 256
)

// clipboard is satisfied by terminalEffects.
type clipboard interface {
	Copy(text string) error
}

// Model represents the TUI state
type Model struct {
	session   *interpreter.Session
	clipboard clipboard
	title     string

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	typeSpeed time.Duration
	typing    bool // a tick is scheduled
	revealed  int  // history entries fully shown
	partial   int  // runes shown of history[revealed]
	epoch     int  // session epoch the counters belong to

	statusMessage string
	statusTime    time.Time
	width         int
	height        int
}

// NewModel creates a Model hosting session. A zero typeSpeed shows output
// instantly.
func NewModel(session *interpreter.Session, cb clipboard, title string, typeSpeed time.Duration) Model {
	ti := textinput.New()
	ti.Prompt = "$ "
	ti.PromptStyle = promptStyle
	ti.Placeholder = `type "help"`
	ti.CharLimit = InputCharLimit
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle))

	m := Model{
		session:   session,
		clipboard: cb,
		title:     title,
		input:     ti,
		spinner:   sp,
		typeSpeed: typeSpeed,
		typing:    true, // Init schedules the first tick
		epoch:     session.Epoch(),
	}
	m.resize(DefaultWidth, DefaultHeight)
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, func() tea.Msg { return tickMsg(time.Now()) })
}

// tickCmd schedules the next reveal step
func (m Model) tickCmd() tea.Cmd {
	d := m.typeSpeed
	if d > 0 {
		d += time.Duration(rand.Int64N(int64(TypeJitter)))
	}
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitFor turns a Submit completion channel into a message
func waitFor(done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-done
		return submitDoneMsg{}
	}
}

// copyOutput copies text to the clipboard
func (m Model) copyOutput(text string) tea.Cmd {
	return func() tea.Msg {
		return copyResultMsg{err: m.clipboard.Copy(text)}
	}
}

// startTyping schedules a reveal tick unless one is already pending
func (m *Model) startTyping() tea.Cmd {
	if m.typing {
		return nil
	}
	m.typing = true
	return m.tickCmd()
}

// pending reports whether history holds text not yet revealed
func (m Model) pending() bool {
	if m.session.Epoch() != m.epoch {
		return true
	}
	return m.revealed < len(m.session.History())
}

// advance reveals the next slice of output. Command echoes appear at once;
// output entries appear rune by rune. With no type speed everything is
// shown immediately.
func (m *Model) advance() {
	if e := m.session.Epoch(); e != m.epoch {
		m.epoch = e
		m.revealed, m.partial = 0, 0
	}
	history := m.session.History()
	if m.typeSpeed <= 0 {
		m.revealed, m.partial = len(history), 0
		return
	}
	if m.revealed >= len(history) {
		return
	}
	entry := history[m.revealed]
	if entry.Kind == interpreter.KindCommand {
		m.revealed++
		m.partial = 0
		return
	}
	m.partial++
	if m.partial >= runeLen(entry.Text) {
		m.revealed++
		m.partial = 0
	}
}

// lastOutput returns the newest output entry
func (m Model) lastOutput() (string, bool) {
	history := m.session.History()
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Kind == interpreter.KindOutput {
			return history[i].Text, true
		}
	}
	return "", false
}

func (m *Model) setStatus(msg string) {
	m.statusMessage = msg
	m.statusTime = time.Now()
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	vpHeight := max(1, height-HeaderHeight-FooterHeight)
	if m.viewport.Width == 0 && m.viewport.Height == 0 {
		m.viewport = viewport.New(width, vpHeight)
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}
	m.input.Width = max(10, width-len(m.input.Prompt)-1)
	m.refreshViewport()
}

// refreshViewport re-renders the revealed history into the scrollback
func (m *Model) refreshViewport() {
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(lipgloss.NewStyle().Width(m.width).Render(m.transcript()))
	if atBottom || m.typing {
		m.viewport.GotoBottom()
	}
}

// transcript renders every revealed entry, plus the partially revealed one
func (m Model) transcript() string {
	history := m.session.History()
	if m.session.Epoch() != m.epoch {
		return ""
	}
	var blocks []string
	for i, e := range history {
		text := e.Text
		if i == m.revealed {
			if m.partial == 0 {
				break
			}
			text = revealPrefix(text, m.partial)
		} else if i > m.revealed {
			break
		}
		switch {
		case e.Kind == interpreter.KindCommand:
			blocks = append(blocks, echoStyle.Render(text))
		case e.Answer:
			blocks = append(blocks, formatAnswer(text))
		default:
			blocks = append(blocks, formatEntry(text))
		}
	}
	return strings.Join(blocks, "\n")
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.PageUp):
			m.viewport.HalfViewUp()
			return m, nil

		case key.Matches(msg, keys.PageDown):
			m.viewport.HalfViewDown()
			return m, nil

		case key.Matches(msg, keys.Clear):
			m.session.Reset()
			m.input.Reset()
			m.advance()
			m.refreshViewport()
			return m, nil

		case key.Matches(msg, keys.Copy):
			if text, ok := m.lastOutput(); ok {
				return m, m.copyOutput(text)
			}
			return m, nil
		}

		// Input is disabled while a query is outstanding
		if m.session.Busy() {
			return m, nil
		}

		switch {
		case key.Matches(msg, keys.Submit):
			line := m.input.Value()
			m.input.Reset()
			m.session.SetInput("")
			done, err := m.session.Submit(context.Background(), line)
			if errors.Is(err, interpreter.ErrBusy) {
				m.setStatus("A query is already running")
				return m, nil
			}
			if m.session.Busy() {
				m.input.Blur()
				cmds = append(cmds, waitFor(done), m.spinner.Tick)
			}
			m.viewport.GotoBottom()
			cmds = append(cmds, m.startTyping())
			return m, tea.Batch(cmds...)

		case key.Matches(msg, keys.Previous):
			m.input.SetValue(m.session.RecallPrevious())
			m.input.CursorEnd()
			return m, nil

		case key.Matches(msg, keys.Next):
			m.input.SetValue(m.session.RecallNext())
			m.input.CursorEnd()
			return m, nil

		case key.Matches(msg, keys.Complete):
			m.session.SetInput(m.input.Value())
			m.input.SetValue(m.session.CompletePrefix())
			m.input.CursorEnd()
			return m, nil
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.session.SetInput(m.input.Value())
		return m, cmd

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tickMsg:
		m.typing = false
		m.advance()
		m.refreshViewport()
		if m.pending() {
			return m, m.startTyping()
		}
		return m, nil

	case submitDoneMsg:
		m.input.Focus()
		return m, tea.Batch(m.startTyping(), textinput.Blink)

	case copyResultMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("Copy failed: %v", msg.err))
		} else {
			m.setStatus("Copied last output to clipboard")
		}
		return m, nil

	case spinner.TickMsg:
		if !m.session.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	var sb strings.Builder

	title := titleStyle.Render("termfolio") + " " + subtitleStyle.Render(truncate(m.title, max(0, m.width-12)))
	sb.WriteString(title)
	sb.WriteString("\n\n")

	sb.WriteString(m.viewport.View())
	sb.WriteByte('\n')

	if m.session.Busy() {
		sb.WriteString(m.spinner.View() + " " + hintStyle.Render("thinking..."))
	} else {
		sb.WriteString(m.input.View())
	}
	sb.WriteByte('\n')

	if m.statusMessage != "" && time.Since(m.statusTime) < StatusDisplayDuration {
		sb.WriteString(statusStyle.Render(m.statusMessage))
	} else {
		sb.WriteString(helpStyle.Render(keys.helpLine()))
	}

	return sb.String()
}
