package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/pkg/browser"
)

// terminalEffects carries out interpreter side effects on the local machine.
type terminalEffects struct {
	downloadDir string
	open        func(url string) error
	clipboard   io.Writer // OSC52 sequences are written here
	logger      *slog.Logger
}

// newTerminalEffects opens links in the system browser and saves downloads
// under dir.
func newTerminalEffects(dir string, logger *slog.Logger) *terminalEffects {
	return &terminalEffects{
		downloadDir: dir,
		open:        browser.OpenURL,
		clipboard:   os.Stderr,
		logger:      logger,
	}
}

// printOpens replaces browser launches with an "open: <url>" line on w.
func (e *terminalEffects) printOpens(w io.Writer) {
	e.open = func(u string) error {
		_, err := fmt.Fprintf(w, "open: %s\n", u)
		return err
	}
}

// OpenURL opens an http(s) or mailto link.
func (e *terminalEffects) OpenURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	switch u.Scheme {
	case "http", "https", "mailto":
	default:
		return fmt.Errorf("refusing to open %q: unsupported scheme", raw)
	}
	e.logger.Debug("open url", "url", raw)
	return e.open(raw)
}

// Download writes data to the download directory. Only the base name of
// filename is used.
func (e *terminalEffects) Download(filename string, data []byte) error {
	dir := e.downloadDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create download dir: %w", err)
	}
	path := filepath.Join(dir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	e.logger.Info("saved download", "path", path, "bytes", len(data))
	return nil
}

// Copy puts text on the system clipboard through the terminal.
func (e *terminalEffects) Copy(text string) error {
	seq := osc52.New(text)
	if os.Getenv("TMUX") != "" {
		seq = seq.Tmux()
	} else if os.Getenv("STY") != "" {
		seq = seq.Screen()
	}
	_, err := seq.WriteTo(e.clipboard)
	return err
}
