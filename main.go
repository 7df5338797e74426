package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"termfolio/internal/answer"
	"termfolio/internal/ask"
	"termfolio/internal/config"
	"termfolio/internal/interpreter"
	"termfolio/internal/logging"
	"termfolio/internal/resume"
)

// version is set at build time via ldflags
var version = "dev"

// Flags shared by every subcommand. Only flags the user set override the
// loaded configuration.
var (
	flagConfig      string
	flagResume      string
	flagAnswerURL   string
	flagLocal       bool
	flagDownloadDir string
	flagLogLevel    string
	flagLogFormat   string
	flagLogFile     string
	flagTypeSpeed   time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "termfolio",
	Short: "An interactive command-line resume",
	Long: `termfolio renders a resume as a small shell. Type commands such as
"about", "skills", "projects" or "role <id>"; anything else is sent to the
answer service as a question.

Keybindings:
  enter        Run the current line
  ↑/↓          Walk the command history
  tab          Complete a command name
  ctrl+l       Clear the screen
  ctrl+y       Copy the last output to the clipboard
  pgup/pgdn    Scroll
  esc/ctrl+c   Quit`,
	Version:      version,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runTUI,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "termfolio", version)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "config file (default ~/.config/termfolio/config.toml)")
	pf.StringVar(&flagResume, "resume", "", "resume document (.json or .toml); the built-in sample when empty")
	pf.StringVar(&flagAnswerURL, "answer-url", "", "base URL of the answer service")
	pf.BoolVar(&flagLocal, "local", false, "answer questions in process instead of calling the answer service")
	pf.StringVar(&flagDownloadDir, "download-dir", "", "directory for downloaded files")
	pf.StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&flagLogFormat, "log-format", "", "log format (text, json)")
	pf.StringVar(&flagLogFile, "log-file", "", "log file (the interactive UI logs nowhere else)")

	rootCmd.Flags().DurationVar(&flagTypeSpeed, "type-speed", 0, "delay per revealed character, 0 for instant output")

	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// settings loads the configuration and applies explicitly set flags.
func settings(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("resume") {
		cfg.Resume = flagResume
	}
	if flags.Changed("answer-url") {
		cfg.AnswerURL = flagAnswerURL
	}
	if flags.Changed("download-dir") {
		cfg.DownloadDir = flagDownloadDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = flagLogFormat
	}
	if flags.Changed("log-file") {
		cfg.LogFile = flagLogFile
	}
	if flags.Changed("type-speed") {
		cfg.TypeSpeed = flagTypeSpeed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// querier is implemented by the remote client and the in-process engine.
type querier interface {
	interpreter.Asker
	Query(ctx context.Context, q string) (*ask.Response, error)
}

// newQuerier picks the answer backend: in process with --local, the
// configured service otherwise, or none. The returned func releases it.
func newQuerier(ctx context.Context, cfg *config.Config, doc *resume.Document, local bool) (querier, func() error, error) {
	noop := func() error { return nil }

	if local {
		engine, closeFn, err := newEngine(ctx, cfg, doc)
		if err != nil {
			return nil, nil, err
		}
		return engine, closeFn, nil
	}
	if cfg.AnswerURL == "" {
		return nil, noop, nil
	}
	client, err := ask.NewClient(cfg.AnswerURL, &ask.Options{Timeout: cfg.AnswerTimeout})
	if err != nil {
		return nil, nil, err
	}
	return client, noop, nil
}

// newEngine builds the answer engine, generating with Gemini when a key is
// configured.
func newEngine(ctx context.Context, cfg *config.Config, doc *resume.Document, opts ...answer.Option) (*answer.Engine, func() error, error) {
	opts = append(opts, answer.WithTopK(cfg.TopK))
	closeFn := func() error { return nil }
	if cfg.GeminiAPIKey != "" {
		gen, err := answer.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, answer.WithGenerator(gen))
		closeFn = gen.Close
	}
	return answer.NewEngine(doc, opts...), closeFn, nil
}

// asAsker converts a possibly nil querier without producing a non-nil
// interface around a nil pointer.
func asAsker(q querier) interpreter.Asker {
	if q == nil {
		return nil
	}
	return q
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New("stdout is not a terminal; use 'termfolio exec' in scripts")
	}

	cfg, err := settings(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.OpenFile(cfg.LogFile, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	doc, err := resume.Load(cfg.Resume)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	q, closeQuerier, err := newQuerier(ctx, cfg, doc, flagLocal)
	if err != nil {
		return err
	}
	defer func() { _ = closeQuerier() }()

	effects := newTerminalEffects(cfg.DownloadDir, logger)
	session := interpreter.New(doc, asAsker(q), effects, interpreter.WithLogger(logger))
	logger.Info("session started", "session", session.ID(), "resume", doc.Personal.Name)

	title := doc.Personal.Name
	if doc.Personal.Title != "" {
		title += " — " + doc.Personal.Title
	}

	p := tea.NewProgram(
		NewModel(session, effects, title, cfg.TypeSpeed),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running termfolio: %w", err)
	}
	return nil
}
