package tuitest

import (
	"fmt"
	"time"
)

// Raw key sequences as an xterm sends them.
var (
	KeyEnter    = []byte{'\r'}
	KeyCtrlC    = []byte{3}
	KeyCtrlS    = []byte{19}
	KeyEsc      = []byte{27}
	KeyTab      = []byte{'\t'}
	KeyDown     = []byte("\x1b[B")
	KeyUp       = []byte("\x1b[A")
	KeyPageDown = []byte("\x1b[6~")
	KeyPageUp   = []byte("\x1b[5~")
)

// Mouse events use SGR extended coordinates, which bubbletea enables together with
// cell motion. x and y are zero-based cells.
func sgrMouse(button, x, y int, release bool) []byte {
	final := 'M'
	if release {
		final = 'm'
	}
	return []byte(fmt.Sprintf("\x1b[<%d;%d;%d%c", button, x+1, y+1, final))
}

// MouseClick presses and releases the left button at x, y.
func MouseClick(x, y int) []byte {
	return append(sgrMouse(0, x, y, false), sgrMouse(0, x, y, true)...)
}

// WheelDown scrolls one notch down.
func WheelDown(x, y int) []byte {
	return sgrMouse(65, x, y, false)
}

// WheelUp scrolls one notch up.
func WheelUp(x, y int) []byte {
	return sgrMouse(64, x, y, false)
}

// Script builds a step list where every input waits delay before it is sent.
func Script(delay time.Duration, inputs ...[]byte) []Step {
	steps := make([]Step, 0, len(inputs))
	for _, input := range inputs {
		steps = append(steps, Step{Delay: delay, Input: input})
	}
	return steps
}

// Text types s one byte at a time.
func Text(s string) []byte {
	return []byte(s)
}
