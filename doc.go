// Package main implements termfolio, a resume rendered as a small
// interactive shell in the terminal.
//
// termfolio provides:
//   - An interactive command line with history recall, tab completion and
//     typewriter-style output (the default command)
//   - A non-interactive runner for scripts (termfolio exec)
//   - Schema and field validation of resume documents (termfolio validate)
//   - The HTTP answer service and contact API the terminal talks to
//     (termfolio serve), with a listing of stored messages (termfolio messages)
//
// The interactive screen uses the Bubbletea framework with the Elm
// architecture pattern. Command semantics live in internal/interpreter; the
// model only renders a session and feeds it keystrokes.
//
// # Architecture
//
// The main package is organized into the following components:
//
//   - main.go: cobra root command, shared flags and backend selection
//   - model.go: TUI model with Init, Update, and View methods
//   - effects.go: browser, download and clipboard side effects
//   - formatter.go: per-line output styling with the extensible LineFormatter interface
//   - styles.go: Lipgloss styles for terminal rendering
//   - keys.go: Key bindings configuration
//   - messages.go: TUI message types for the Elm architecture
//   - helpers.go: Utility functions for string formatting
//   - cmd_*.go: one file per subcommand
//
// # Extensibility
//
// Output styling is a priority list of LineFormatter values in formatter.go;
// registerFormatter puts a new one in front.
//
// The interpreter takes its answer backend and host effects as interfaces,
// which keeps the model testable without a terminal.
package main
