package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/csheth/webmodels/internal/content"
)

func (m *model) View() string {
	switch m.stage {
	case stageContact:
		return m.viewContact()
	default:
		return m.viewLanding()
	}
}

func (m *model) viewLanding() string {
	var strip []string
	switch {
	case m.overlay != nil:
		strip = m.placed(m.overlay.View(m.layout, m.spinner.View()))
	case m.helpVisible:
		strip = m.placed(m.helpView())
	default:
		strip = m.stripWindow()
	}
	rows := append([]string{m.headerView()}, strip...)
	rows = append(rows, m.statusView())
	return strings.Join(rows, "\n")
}

// stripWindow slices the stacked sections at the current offset and appends the dot
// column.
func (m *model) stripWindow() []string {
	height := m.layout.stripHeight
	stacked := make([]string, 0, len(m.sections)*height)
	for _, id := range m.sections {
		stacked = append(stacked, m.renderSection(id)...)
	}
	offset := m.stripOffset(m.now())
	if limit := len(stacked) - height; offset > limit {
		offset = limit
	}
	if offset < 0 {
		offset = 0
	}
	window := stacked[offset : offset+height]

	dots := m.dotColumn()
	out := make([]string, height)
	for i, line := range window {
		out[i] = padRight(line, m.layout.contentWidth) + dots[i]
	}
	return out
}

func (m *model) dotColumn() []string {
	height := m.layout.stripHeight
	out := make([]string, height)
	blank := strings.Repeat(" ", m.layout.dotWidth)
	for i := range out {
		out[i] = blank
	}
	if m.layout.dotWidth == 0 || m.nav == nil {
		return out
	}
	indicators := m.nav.State().Indicators()
	for _, dot := range indicators {
		row := m.layout.dotRow(dot.Index, len(indicators))
		if row < 0 || row >= height {
			continue
		}
		glyph := dotInactiveStyle.Render(dotInactive)
		if dot.Active {
			glyph = dotActiveStyle.Render(dotActive)
		}
		out[row] = padRight(" "+glyph, m.layout.dotWidth)
	}
	return out
}

// placed centres block in the strip area.
func (m *model) placed(block string) []string {
	area := lipgloss.Place(m.layout.width, m.layout.stripHeight, lipgloss.Center, lipgloss.Center, block)
	lines := strings.Split(area, "\n")
	if len(lines) > m.layout.stripHeight {
		lines = lines[:m.layout.stripHeight]
	}
	for len(lines) < m.layout.stripHeight {
		lines = append(lines, "")
	}
	return lines
}

func (m *model) headerView() string {
	title := content.Brand
	if m.stage == stageContact {
		title += "  ›  Contactez-Nous"
	} else if section := m.currentSection(); section != "" {
		title += "  ›  " + content.SectionTitle(section)
	}
	text := truncate.StringWithTail(title, uint(max(m.layout.width-2, 1)), "…")
	return headerStyle.Width(m.layout.width).Render(text)
}

func (m *model) statusView() string {
	var parts []string
	if m.stage == stageContact {
		parts = append(parts, "tab champ suivant", "ctrl+s envoyer", "esc retour")
	} else if m.nav != nil {
		state := m.nav.State()
		parts = append(parts,
			state.Device.String(),
			fmt.Sprintf("%d/%d", state.Index+1, state.Total),
		)
		if state.InFlight {
			parts = append(parts, "…")
		}
		parts = append(parts, "↑/↓ naviguer • c contact • ? aide • q quitter")
	}
	parts = append(parts, m.tracker.Badges()...)
	switch {
	case m.errorMessage != "":
		parts = append(parts, m.errorMessage)
	case m.infoMessage != "":
		parts = append(parts, m.infoMessage)
	}
	text := truncate.StringWithTail(strings.Join(parts, "  •  "), uint(max(m.layout.width-2, 1)), "…")
	return statusBarStyle.Width(m.layout.width).Render(text)
}

type keyHint struct {
	Key         string
	Description string
}

func (m *model) helpView() string {
	hints := []keyHint{
		{"↑/↓ pgup/pgdn", "Section précédente / suivante"},
		{"j/k espace", "Naviguer au clavier"},
		{"1-5", "Aller à une section"},
		{"g/G", "Première / dernière section"},
		{"molette", "Changer de section"},
		{"clic ●", "Aller à la section"},
		{"←/→", "Choisir un modèle"},
		{"entrée", "Aperçu du modèle"},
		{"c", "Nous contacter"},
		{"q", "Quitter"},
	}
	rows := []string{sectionHeaderStyle.Render("Raccourcis")}
	for _, hint := range hints {
		key := keyStyle.Render(hint.Key)
		desc := keyDescStyle.Render(" " + hint.Description)
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, key, desc))
	}
	return helpBoxStyle.Render(strings.Join(rows, "\n"))
}

func (m *model) viewContact() string {
	form := cardStyle.Render(m.form.View(m.spinner.View()))
	info := m.contactInfoCard()

	header := titleStyle.Render("Contactez-Nous")
	if lipgloss.Height(form)+3 <= m.layout.stripHeight {
		header = lipgloss.JoinVertical(lipgloss.Center,
			header,
			helperStyle.Render("Une question ? Un projet ? Écrivez-nous."),
			"",
		)
	}

	body := form
	switch {
	case lipgloss.Width(form)+lipgloss.Width(info)+2 <= m.layout.width:
		body = lipgloss.JoinHorizontal(lipgloss.Top, form, "  ", info)
	case lipgloss.Height(header)+lipgloss.Height(form)+lipgloss.Height(info) <= m.layout.stripHeight:
		body = lipgloss.JoinVertical(lipgloss.Left, form, info)
	}
	page := lipgloss.JoinVertical(lipgloss.Center, header, body)

	rows := append([]string{m.headerView()}, fitBlock(page, m.layout.width, m.layout.stripHeight)...)
	rows = append(rows, m.statusView())
	return strings.Join(rows, "\n")
}

func (m *model) contactInfoCard() string {
	info := content.Contact()
	lines := []string{
		sectionHeaderStyle.Render("Informations de contact"),
		"✉  " + info.Email,
		"☎  " + info.Phone,
		"⌂  " + info.City,
		"",
		sectionHeaderStyle.Render("Pourquoi choisir " + content.Brand + " ?"),
	}
	for _, promise := range content.Promises() {
		lines = append(lines, "✓ "+promise)
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}
