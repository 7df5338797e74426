package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"termfolio/internal/ask"
	"termfolio/internal/interpreter"
	"termfolio/internal/logging"
	"termfolio/internal/resume"
)

var (
	execNoOpen  bool
	execVerbose bool
)

var execCmd = &cobra.Command{
	Use:   "exec [command...]",
	Short: "Run resume commands without the interactive UI",
	Long: `Run one command given as arguments, or one command per line read from
standard input when it is not a terminal:

  termfolio exec role acme
  printf 'about\nskills\n' | termfolio exec`,
	RunE: runExec,
}

func init() {
	execCmd.Flags().BoolVar(&execNoOpen, "no-open", false, `print "open: <url>" instead of launching a browser`)
	execCmd.Flags().BoolVarP(&execVerbose, "verbose", "v", false, "print the sources behind each answer")
	rootCmd.AddCommand(execCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())

	var lines []string
	switch {
	case len(args) > 0:
		lines = []string{strings.Join(args, " ")}
	case !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()):
		lines, err = readLines(cmd.InOrStdin())
		if err != nil {
			return err
		}
	default:
		return errors.New("nothing to run: pass a command or pipe lines on stdin")
	}

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

	out := cmd.OutOrStdout()
	effects := newTerminalEffects(cfg.DownloadDir, logger)
	if execNoOpen {
		effects.printOpens(out)
	}

	var asker interpreter.Asker
	var sources *sourceRecorder
	if q != nil {
		sources = &sourceRecorder{querier: q}
		asker = sources
	}

	session := interpreter.New(doc, asker, effects, interpreter.WithLogger(logger), interpreter.WithoutWelcome())
	return runLines(ctx, session, lines, out, func(w io.Writer) {
		if !execVerbose || sources == nil {
			return
		}
		for _, s := range sources.take() {
			fmt.Fprintf(w, "  [%s %.2f] %s\n", s.ID, s.Score, s.Text)
		}
	})
}

// readLines returns the non-blank lines of r.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return lines, nil
}

// runLines submits each line in order, waiting for it to settle, and writes
// every new history entry to out. after runs once per line.
func runLines(ctx context.Context, s *interpreter.Session, lines []string, out io.Writer, after func(io.Writer)) error {
	printed, epoch := 0, s.Epoch()
	for _, line := range lines {
		done, err := s.Submit(ctx, line)
		if err != nil {
			return err
		}
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}

		if e := s.Epoch(); e != epoch {
			printed, epoch = 0, e
		}
		history := s.History()
		for _, entry := range history[printed:] {
			if _, err := fmt.Fprintln(out, entry.Text); err != nil {
				return err
			}
		}
		printed = len(history)
		if after != nil {
			after(out)
		}
	}
	return nil
}

// sourceRecorder keeps the sources of the last answer for --verbose.
type sourceRecorder struct {
	querier querier

	mu   sync.Mutex
	last []ask.Source
}

func (r *sourceRecorder) Ask(ctx context.Context, q string) (string, error) {
	resp, err := r.querier.Query(ctx, q)
	if err != nil {
		return "", err
	}
	r.mu.Lock()
	r.last = resp.Sources
	r.mu.Unlock()
	return resp.Answer, nil
}

func (r *sourceRecorder) take() []ask.Source {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.last
	r.last = nil
	return out
}
