package tui

import (
	"time"

	"github.com/csheth/webmodels/internal/contact"
	"github.com/csheth/webmodels/internal/preview"
)

type stage int

const (
	stageLanding stage = iota
	stageContact
)

type formState int

const (
	formEditing formState = iota
	formSubmitting
	formSubmitted
)

const (
	headerHeight    = 1
	statusHeight    = 1
	dotColumnWidth  = 4
	minStripHeight  = 6
	minContentWidth = 24
	frameInterval   = time.Second / 30
	taglineInterval = 3 * time.Second
)

// animation is the visible part of a transition: the strip slides from one row offset
// to another over the navigator's transition duration.
type animation struct {
	active   bool
	from     int
	to       int
	started  time.Time
	duration time.Duration
}

type frameMsg struct {
	at time.Time
}

type taglineMsg struct{}

type previewResultMsg struct {
	seq  int
	url  string
	page *preview.Page
	err  error
}

type submitResultMsg struct {
	submission *contact.Submission
	err        error
}
