package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	accentColor    = lipgloss.Color("#6c63ff")
	accentAltColor = lipgloss.Color("#00d4ff")
	anthracite     = lipgloss.Color("#1e1e24")
	textColor      = lipgloss.Color("#f5f5f7")
	mutedColor     = lipgloss.Color("244")

	headerStyle        = lipgloss.NewStyle().Bold(true).Foreground(textColor).Background(anthracite).Padding(0, 1)
	brandStyle         = lipgloss.NewStyle().Bold(true).Foreground(accentAltColor)
	titleStyle         = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	taglineStyle       = lipgloss.NewStyle().Foreground(accentAltColor).Italic(true)
	priceStyle         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffd166"))
	helperStyle        = lipgloss.NewStyle().Foreground(mutedColor)
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#a3be8c"))
	ctaStyle           = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(accentColor).Padding(0, 2)
	statusBarStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	keyStyle           = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)
	keyDescStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4"))
	cardStyle          = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(0, 1)
	activeCardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accentColor).Padding(0, 1)
	helpBoxStyle       = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("#7f5af0")).Padding(1, 2)
	overlayStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accentAltColor)
	chromeStyle        = lipgloss.NewStyle().Foreground(textColor).Background(lipgloss.Color("#2d2d35"))
	chromeDisabled     = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Background(lipgloss.Color("#2d2d35"))
	selectedChoice     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(accentAltColor).Padding(0, 1)
	choiceStyle        = lipgloss.NewStyle().Foreground(textColor).Padding(0, 1)
	currentLinkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6"))
	labelStyle         = lipgloss.NewStyle().Bold(true).Foreground(textColor)
	focusedLabelStyle  = lipgloss.NewStyle().Bold(true).Foreground(accentAltColor)

	dotActiveStyle   = lipgloss.NewStyle().Foreground(accentAltColor)
	dotInactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	logoFaceStyle      = lipgloss.NewStyle().Bold(true).Foreground(textColor)
	logoShadowStyle    = lipgloss.NewStyle().Foreground(accentColor)
	logoContainerStyle = lipgloss.NewStyle().Padding(0, 1)
)

const (
	dotActive   = "●"
	dotInactive = "○"
)

var logoGlyphs = map[rune][]string{
	'W': {
		"██╗    ██╗",
		"██║    ██║",
		"██║ █╗ ██║",
		"██║███╗██║",
		"╚███╔███╔╝",
		" ╚══╝╚══╝ ",
	},
	'E': {
		"███████╗",
		"██╔════╝",
		"█████╗  ",
		"██╔══╝  ",
		"███████╗",
		"╚══════╝",
	},
	'B': {
		"██████╗ ",
		"██╔══██╗",
		"██████╔╝",
		"██╔══██╗",
		"██████╔╝",
		"╚═════╝ ",
	},
	'M': {
		"███╗   ███╗",
		"████╗ ████║",
		"██╔████╔██║",
		"██║╚██╔╝██║",
		"██║ ╚═╝ ██║",
		"╚═╝     ╚═╝",
	},
	'O': {
		" ██████╗ ",
		"██╔═══██╗",
		"██║   ██║",
		"██║   ██║",
		"╚██████╔╝",
		" ╚═════╝ ",
	},
	'D': {
		"██████╗ ",
		"██╔══██╗",
		"██║  ██║",
		"██║  ██║",
		"██████╔╝",
		"╚═════╝ ",
	},
	'L': {
		"██╗     ",
		"██║     ",
		"██║     ",
		"██║     ",
		"███████╗",
		"╚══════╝",
	},
	'S': {
		"███████╗",
		"██╔════╝",
		"███████╗",
		"╚════██║",
		"███████║",
		"╚══════╝",
	},
}

// logoLines spells word with logoGlyphs. Unknown runes are skipped.
func logoLines(word string) []string {
	var rows []string
	for _, r := range strings.ToUpper(word) {
		glyph, ok := logoGlyphs[r]
		if !ok {
			continue
		}
		if rows == nil {
			rows = make([]string, len(glyph))
		}
		for i, line := range glyph {
			rows[i] += line
		}
	}
	return rows
}

// renderLogo draws the block logo with a one-cell drop shadow. It returns "" when the
// logo does not fit in maxWidth.
func renderLogo(word string, maxWidth int) string {
	art := logoLines(word)
	if len(art) == 0 {
		return ""
	}
	width := 0
	lineRunes := make([][]rune, len(art))
	for i, line := range art {
		runes := []rune(line)
		lineRunes[i] = runes
		if len(runes) > width {
			width = len(runes)
		}
	}
	width++
	if width+2 > maxWidth {
		return ""
	}
	height := len(art) + 1

	type cell struct {
		r     rune
		style lipgloss.Style
	}

	grid := make([][]cell, height)
	for i := range grid {
		grid[i] = make([]cell, width)
	}
	for y, runes := range lineRunes {
		for x, r := range runes {
			if r == ' ' {
				continue
			}
			if y+1 < height && x+1 < width {
				grid[y+1][x+1] = cell{r: r, style: logoShadowStyle}
			}
		}
	}
	for y, runes := range lineRunes {
		for x, r := range runes {
			if r == ' ' {
				continue
			}
			grid[y][x] = cell{r: r, style: logoFaceStyle}
		}
	}

	lines := make([]string, height)
	for y, row := range grid {
		var b strings.Builder
		for _, c := range row {
			if c.r == 0 {
				b.WriteRune(' ')
				continue
			}
			b.WriteString(c.style.Render(string(c.r)))
		}
		lines[y] = b.String()
	}
	return logoContainerStyle.Render(strings.Join(lines, "\n"))
}
