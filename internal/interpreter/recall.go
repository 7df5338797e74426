package interpreter

import "strings"

// RecallPrevious steps back through the command log and loads the entry
// into the input buffer. The first press jumps to the newest entry; the
// oldest entry is sticky. It returns the resulting input buffer.
func (s *Session) RecallPrevious() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.commandLog) == 0 {
		return s.input
	}
	if s.cursor < 0 {
		s.cursor = len(s.commandLog) - 1
	} else if s.cursor > 0 {
		s.cursor--
	}
	s.input = s.commandLog[s.cursor]
	return s.input
}

// RecallNext steps forward through the command log. Stepping past the
// newest entry clears the input and leaves recall mode.
func (s *Session) RecallNext() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.commandLog) == 0 || s.cursor < 0 {
		return s.input
	}
	if s.cursor < len(s.commandLog)-1 {
		s.cursor++
		s.input = s.commandLog[s.cursor]
		return s.input
	}
	s.cursor = -1
	s.input = ""
	return s.input
}

// CompletePrefix replaces the input buffer with the first completable
// command whose name starts with it (case-sensitive). Commands that take an argument get
// a trailing space. Without a match the buffer is left alone.
func (s *Session) CompletePrefix() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range commands {
		if c.Hidden {
			continue
		}
		if strings.HasPrefix(c.Name, s.input) {
			s.input = c.Name
			if c.TakesArg {
				s.input += " "
			}
			break
		}
	}
	return s.input
}
