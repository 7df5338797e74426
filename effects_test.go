package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"termfolio/internal/logging"
)

func newTestEffects(t *testing.T) (*terminalEffects, *[]string) {
	t.Helper()
	var opened []string
	e := newTerminalEffects(t.TempDir(), logging.Discard())
	e.open = func(u string) error {
		opened = append(opened, u)
		return nil
	}
	return e, &opened
}

func TestTerminalEffectsOpenURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr string
	}{
		{name: "https", url: "https://example.com/cv.pdf"},
		{name: "http", url: "http://example.com"},
		{name: "mailto", url: "mailto:jordan@example.com"},
		{name: "file", url: "file:///etc/passwd", wantErr: "unsupported scheme"},
		{name: "relative", url: "/resume.pdf", wantErr: "unsupported scheme"},
		{name: "javascript", url: "javascript:alert(1)", wantErr: "unsupported scheme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, opened := newTestEffects(t)
			err := e.OpenURL(tt.url)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("OpenURL(%q) error = %v, expected %q", tt.url, err, tt.wantErr)
				}
				if len(*opened) != 0 {
					t.Errorf("OpenURL(%q) opened %q", tt.url, *opened)
				}
				return
			}
			if err != nil {
				t.Fatalf("OpenURL(%q): %v", tt.url, err)
			}
			if len(*opened) != 1 || (*opened)[0] != tt.url {
				t.Errorf("opened = %q, expected [%q]", *opened, tt.url)
			}
		})
	}
}

func TestTerminalEffectsPrintOpens(t *testing.T) {
	e, _ := newTestEffects(t)
	var out bytes.Buffer
	e.printOpens(&out)

	if err := e.OpenURL("https://example.com"); err != nil {
		t.Fatalf("OpenURL: %v", err)
	}
	if got := out.String(); got != "open: https://example.com\n" {
		t.Errorf("printed %q", got)
	}
}

func TestTerminalEffectsDownload(t *testing.T) {
	e, _ := newTestEffects(t)
	e.downloadDir = filepath.Join(e.downloadDir, "nested")

	if err := e.Download("../../Jordan_Lee_resume.json", []byte(`{"personal":{}}`)); err != nil {
		t.Fatalf("Download: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(e.downloadDir, "Jordan_Lee_resume.json"))
	if err != nil {
		t.Fatalf("read download: %v", err)
	}
	if string(data) != `{"personal":{}}` {
		t.Errorf("downloaded %q", data)
	}
}

func TestTerminalEffectsDownloadFailure(t *testing.T) {
	e, _ := newTestEffects(t)
	blocker := filepath.Join(e.downloadDir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	e.downloadDir = blocker

	err := e.Download("x.json", []byte("{}"))
	if err == nil || !strings.Contains(err.Error(), "create download dir") {
		t.Errorf("Download error = %v", err)
	}
}

func TestTerminalEffectsCopy(t *testing.T) {
	t.Setenv("TMUX", "")
	t.Setenv("STY", "")

	e, _ := newTestEffects(t)
	var out bytes.Buffer
	e.clipboard = &out

	if err := e.Copy("hello"); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	// OSC 52 with the base64 payload
	if got := out.String(); !strings.HasPrefix(got, "\x1b]52;c;") || !strings.Contains(got, "aGVsbG8=") {
		t.Errorf("Copy wrote %q", got)
	}
}
