package terminal

import (
	"bytes"
	"io"
)

// Scripted replays queued input and records output. It is the terminal used
// in tests.
type Scripted struct {
	lines  []string
	keys   []string
	out    bytes.Buffer
	clears int
}

func NewScripted(lines ...string) *Scripted {
	return &Scripted{lines: lines}
}

// QueueLines appends lines to the input script.
func (s *Scripted) QueueLines(lines ...string) { s.lines = append(s.lines, lines...) }

// QueueKeys appends raw keypresses to the input script.
func (s *Scripted) QueueKeys(keys ...string) { s.keys = append(s.keys, keys...) }

func (s *Scripted) Write(p []byte) (int, error) { return s.out.Write(p) }

func (s *Scripted) Clear() { s.clears++ }

func (s *Scripted) ReadLine() (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *Scripted) ReadKey() (string, error) {
	if len(s.keys) == 0 {
		return "", io.EOF
	}
	k := s.keys[0]
	s.keys = s.keys[1:]
	return k, nil
}

// Output is everything written so far.
func (s *Scripted) Output() string { return s.out.String() }

// Clears counts Clear calls.
func (s *Scripted) Clears() int { return s.clears }

// Remaining is the number of unread lines.
func (s *Scripted) Remaining() int { return len(s.lines) }
