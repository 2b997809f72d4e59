package tuitest

import (
	"bytes"
	"io"
	"sync"
)

// terminalReply answers one query the program sends to its terminal on startup.
type terminalReply struct {
	query []byte
	reply []byte
}

// Replies for a dark xterm: cursor position, device attributes and the OSC 10/11
// colour queries termenv issues to pick the adaptive palette, in both BEL and ST form.
var terminalReplies = []terminalReply{
	{[]byte("\x1b[6n"), []byte("\x1b[1;1R")},
	{[]byte("\x1b[c"), []byte("\x1b[?62;22c")},
	{[]byte("\x1b]10;?\x07"), []byte("\x1b]10;rgb:cccc/cccc/cccc\x07")},
	{[]byte("\x1b]10;?\x1b\\"), []byte("\x1b]10;rgb:cccc/cccc/cccc\x1b\\")},
	{[]byte("\x1b]11;?\x07"), []byte("\x1b]11;rgb:0000/0000/0000\x07")},
	{[]byte("\x1b]11;?\x1b\\"), []byte("\x1b]11;rgb:0000/0000/0000\x1b\\")},
}

const (
	responderWindow = 256
	responderTail   = 64
)

type terminalResponder struct {
	w       io.Writer
	pending []byte
}

func newTerminalResponder(w io.Writer) *terminalResponder {
	return &terminalResponder{w: w, pending: make([]byte, 0, responderWindow)}
}

// Process answers every query found in chunk, including queries split across reads.
func (tr *terminalResponder) Process(chunk []byte) {
	tr.pending = append(tr.pending, chunk...)
	for tr.answerEarliest() {
	}
	if len(tr.pending) > responderWindow {
		tr.pending = append(tr.pending[:0], tr.pending[len(tr.pending)-responderTail:]...)
	}
}

// answerEarliest replies to the first query in the pending bytes, so replies go out in
// the order the program asked.
func (tr *terminalResponder) answerEarliest() bool {
	at, match := -1, -1
	for i, r := range terminalReplies {
		idx := bytes.Index(tr.pending, r.query)
		if idx >= 0 && (at < 0 || idx < at) {
			at, match = idx, i
		}
	}
	if match < 0 {
		return false
	}
	r := terminalReplies[match]
	tr.pending = tr.pending[at+len(r.query):]
	_, _ = tr.w.Write(r.reply)
	return true
}

// screen is the recorded output, shared between the PTY reader and WaitFor steps.
type screen struct {
	mu  sync.Mutex
	raw bytes.Buffer
}

func (s *screen) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raw.Write(p)
}

func (s *screen) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.raw.Bytes()...)
}

// Shows reports whether the stream written since offset contains text once styling
// is stripped.
func (s *screen) Shows(text string, offset int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw := s.raw.Bytes()
	if offset > len(raw) {
		offset = len(raw)
	}
	return bytes.Contains([]byte(stripANSI(string(raw[offset:]))), []byte(text))
}

func (s *screen) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raw.Len()
}
