package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// pageLayout splits the terminal into a header row, the section strip with its dot
// column, and a status row.
type pageLayout struct {
	width        int
	height       int
	stripHeight  int
	contentWidth int
	dotWidth     int
}

func newPageLayout() pageLayout {
	l := pageLayout{}
	l.Update(80, 24, true)
	return l
}

func (l *pageLayout) Update(width, height int, showDots bool) {
	l.width = width
	l.height = height
	l.stripHeight = height - headerHeight - statusHeight
	if l.stripHeight < minStripHeight {
		l.stripHeight = minStripHeight
	}
	l.dotWidth = 0
	if showDots {
		l.dotWidth = dotColumnWidth
	}
	l.contentWidth = width - l.dotWidth
	if l.contentWidth < minContentWidth {
		l.contentWidth = minContentWidth
	}
}

// dotTop is the strip row of the first indicator; dots sit on every other row,
// centred vertically.
func (l pageLayout) dotTop(total int) int {
	span := 2*total - 1
	top := (l.stripHeight - span) / 2
	if top < 0 {
		top = 0
	}
	return top
}

// dotRow returns the strip row of indicator i.
func (l pageLayout) dotRow(i, total int) int {
	return l.dotTop(total) + 2*i
}

// dotAt maps a screen cell to an indicator index.
func (l pageLayout) dotAt(x, y, total int) (int, bool) {
	if l.dotWidth == 0 || x < l.width-l.dotWidth {
		return 0, false
	}
	row := y - headerHeight
	for i := 0; i < total; i++ {
		if row == l.dotRow(i, total) {
			return i, true
		}
	}
	return 0, false
}

// fitBlock centres content in a width×height box, clipping what overflows.
func fitBlock(content string, width, height int) []string {
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	blockWidth := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > blockWidth {
			blockWidth = w
		}
	}
	if blockWidth > width {
		blockWidth = width
	}
	left := strings.Repeat(" ", (width-blockWidth)/2)

	out := make([]string, 0, height)
	top := (height - len(lines)) / 2
	for i := 0; i < top; i++ {
		out = append(out, strings.Repeat(" ", width))
	}
	for _, line := range lines {
		out = append(out, padRight(left+truncate.StringWithTail(line, uint(blockWidth), "…"), width))
	}
	for len(out) < height {
		out = append(out, strings.Repeat(" ", width))
	}
	return out
}

func padRight(line string, width int) string {
	if w := lipgloss.Width(line); w < width {
		return line + strings.Repeat(" ", width-w)
	}
	return truncate.String(line, uint(width))
}
