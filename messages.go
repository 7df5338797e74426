package main

import "time"

// TUI messages for the Elm architecture

// tickMsg advances the typewriter reveal by one step
type tickMsg time.Time

// submitDoneMsg is sent once a fallback query has settled
type submitDoneMsg struct{}

// copyResultMsg reports the result of copying output to the clipboard
type copyResultMsg struct {
	err error
}
