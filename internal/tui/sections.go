package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/webmodels/internal/content"
)

// renderSection draws one section into exactly layout.stripHeight lines.
func (m *model) renderSection(id string) []string {
	width := m.layout.contentWidth
	height := m.layout.stripHeight
	var body string
	switch id {
	case content.SectionHero:
		body = m.heroSection(width)
	case content.SectionServices:
		body = m.servicesSection(width, height)
	case content.SectionModels:
		body = m.modelsSection(width)
	case content.SectionWhyUs:
		body = m.whyUsSection(width, height)
	case content.SectionFooter:
		body = m.footerSection(width)
	default:
		body = titleStyle.Render(content.SectionTitle(id))
	}
	return fitBlock(body, width, height)
}

func (m *model) heroSection(width int) string {
	hero := content.Hero()
	parts := []string{}
	if logo := renderLogo(content.Brand, width); logo != "" {
		parts = append(parts, logo)
	} else {
		parts = append(parts, brandStyle.Render(content.Brand))
	}
	parts = append(parts,
		"",
		titleStyle.Render(hero.Title),
		taglineStyle.Render(hero.Tagline(m.taglineTick)),
		"",
		priceStyle.Render(hero.Price),
		"",
		ctaStyle.Render(hero.CTA+" ↓"),
	)
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func (m *model) servicesSection(width, height int) string {
	services := content.Services()
	header := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(content.SectionTitle(content.SectionServices)),
		helperStyle.Render(wordwrap.String(content.ServicesIntro, clampWidth(width-4, 20, 70))),
		"",
	)

	columns := len(services)
	cardWidth := (width - 2*columns) / columns
	if cardWidth < 26 {
		columns = 1
		cardWidth = clampWidth(width-4, 20, 60)
	}
	compact := columns == 1 && height < 24

	cards := make([]string, 0, len(services))
	for _, svc := range services {
		lines := []string{sectionHeaderStyle.Render(svc.Icon + " " + svc.Title)}
		if !compact {
			lines = append(lines, wordwrap.String(svc.Description, cardWidth-4))
			for _, feature := range svc.Features {
				lines = append(lines, "• "+feature)
			}
		} else {
			lines = append(lines, helperStyle.Render(strings.Join(svc.Features[:2], " • ")))
		}
		cards = append(cards, cardStyle.Width(cardWidth).Render(strings.Join(lines, "\n")))
	}

	var grid string
	if columns == 1 {
		grid = lipgloss.JoinVertical(lipgloss.Left, cards...)
	} else {
		grid = lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	}
	return lipgloss.JoinVertical(lipgloss.Center, header, grid)
}

func (m *model) modelsSection(width int) string {
	models := content.Models()
	selected := models[m.selectedModel%len(models)]

	tabs := make([]string, 0, len(models))
	for i, mdl := range models {
		if i == m.selectedModel {
			tabs = append(tabs, selectedChoice.Render(mdl.Title))
		} else {
			tabs = append(tabs, choiceStyle.Render(mdl.Title))
		}
	}
	tabRow := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if lipgloss.Width(tabRow) > width {
		tabRow = fmt.Sprintf("◀ %s ▶  %s", selectedChoice.Render(selected.Title), helperStyle.Render(fmt.Sprintf("%d/%d", m.selectedModel+1, len(models))))
	}

	cardWidth := clampWidth(width-4, 24, 72)
	lines := []string{
		sectionHeaderStyle.Render(selected.Title),
		wordwrap.String(selected.Description, cardWidth-4),
		"",
	}
	for _, feature := range selected.Features {
		lines = append(lines, "✓ "+feature)
	}
	lines = append(lines, "", helperStyle.Render("Démo : "+selected.DemoURL))
	card := activeCardStyle.Width(cardWidth).Render(strings.Join(lines, "\n"))

	return lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(content.SectionTitle(content.SectionModels)),
		"",
		tabRow,
		"",
		card,
		helperStyle.Render("←/→ choisir • entrée aperçu • c commander ce modèle"),
	)
}

func (m *model) whyUsSection(width, height int) string {
	features := content.Features()
	columns := 3
	cellWidth := (width - 2*columns) / columns
	if cellWidth < 24 {
		columns = 2
		cellWidth = (width - 2*columns) / columns
	}
	if cellWidth < 24 {
		columns = 1
		cellWidth = clampWidth(width-4, 20, 60)
	}
	compact := height < 24

	cells := make([]string, 0, len(features))
	for _, f := range features {
		text := sectionHeaderStyle.Render(f.Icon + " " + f.Title)
		if !compact {
			text += "\n" + wordwrap.String(f.Description, cellWidth-2)
		}
		cells = append(cells, lipgloss.NewStyle().Width(cellWidth).MarginRight(2).Render(text))
	}
	rows := []string{}
	for i := 0; i < len(cells); i += columns {
		end := i + columns
		if end > len(cells) {
			end = len(cells)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells[i:end]...))
	}

	return lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(content.SectionTitle(content.SectionWhyUs)),
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		"",
		priceStyle.Render(wordwrap.String(content.PriceLine, clampWidth(width-4, 20, 80))),
	)
}

func (m *model) footerSection(width int) string {
	info := content.Contact()
	lines := []string{
		brandStyle.Render(content.Brand) + helperStyle.Render(" par "+content.Studio),
		"",
		"✉  " + info.Email,
		"☎  " + info.Phone,
		"⌂  " + info.City,
		"",
		helperStyle.Render(strings.Join(info.Socials, " · ")),
		"",
		ctaStyle.Render("Nous contacter (c)"),
		"",
		helperStyle.Render(content.Copyright(m.now().Year())),
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func clampWidth(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
