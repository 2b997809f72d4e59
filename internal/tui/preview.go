package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/webmodels/internal/content"
	"github.com/csheth/webmodels/internal/preview"
)

// previewOverlay is the expanded browser card of the models section.
type previewOverlay struct {
	model      content.Model
	history    *preview.History
	page       *preview.Page
	loading    bool
	err        error
	seq        int
	showSource bool
	linkIndex  int
	viewport   viewport.Model
}

func newPreviewOverlay(mdl content.Model, width, height int) *previewOverlay {
	vp := viewport.New(width, height)
	vp.MouseWheelEnabled = true
	return &previewOverlay{
		model:     mdl,
		history:   preview.NewHistory(mdl.DemoURL),
		linkIndex: -1,
		viewport:  vp,
	}
}

// overlaySize leaves room for the border and the two chrome rows.
func overlaySize(l pageLayout) (int, int) {
	w := l.width - 4
	h := l.stripHeight - 4
	if w < minContentWidth {
		w = minContentWidth
	}
	if h < 3 {
		h = 3
	}
	return w, h
}

func (o *previewOverlay) resize(width, height int) {
	o.viewport.Width = width
	o.viewport.Height = height
	o.refresh()
}

// begin marks a new fetch. Results carrying an older sequence number are ignored.
func (o *previewOverlay) begin() int {
	o.seq++
	o.loading = true
	o.err = nil
	return o.seq
}

func (o *previewOverlay) apply(msg previewResultMsg) bool {
	if msg.seq != o.seq {
		return false
	}
	o.loading = false
	o.err = msg.err
	if msg.err == nil {
		o.page = msg.page
		o.linkIndex = -1
		o.viewport.GotoTop()
	}
	o.refresh()
	return true
}

func (o *previewOverlay) links() []preview.Link {
	if o.page == nil {
		return nil
	}
	return o.page.Links
}

func (o *previewOverlay) cycleLink(step int) {
	links := o.links()
	if len(links) == 0 {
		o.linkIndex = -1
		return
	}
	o.linkIndex = (o.linkIndex + step + len(links)) % len(links)
	if o.linkIndex < 0 {
		o.linkIndex = 0
	}
	o.refresh()
}

func (o *previewOverlay) selectedLink() (preview.Link, bool) {
	links := o.links()
	if o.linkIndex < 0 || o.linkIndex >= len(links) {
		return preview.Link{}, false
	}
	return links[o.linkIndex], true
}

func (o *previewOverlay) toggleSource() {
	o.showSource = !o.showSource
	o.viewport.GotoTop()
	o.refresh()
}

func (o *previewOverlay) scroll(key tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	o.viewport, cmd = o.viewport.Update(key)
	return cmd
}

func (o *previewOverlay) refresh() {
	width := o.viewport.Width
	if width < 10 {
		width = 10
	}
	var b strings.Builder
	switch {
	case o.page == nil && o.err != nil:
		b.WriteString(errorStyle.Render("Impossible de charger l'aperçu : " + o.err.Error()))
	case o.page == nil:
		b.WriteString(helperStyle.Render("Chargement de " + o.history.Current() + "…"))
	case o.showSource:
		source := o.page.Source
		if source == "" {
			source = o.page.Text
		}
		b.WriteString(source)
	default:
		if o.page.Title != "" {
			b.WriteString(sectionHeaderStyle.Render(o.page.Title))
			b.WriteString("\n\n")
		}
		b.WriteString(wordwrap.String(o.page.Text, width))
		if links := o.page.Links; len(links) > 0 {
			b.WriteString("\n\n")
			b.WriteString(sectionHeaderStyle.Render("Liens"))
			for i, link := range links {
				label := link.Text
				if label == "" {
					label = link.URL
				}
				line := truncate.StringWithTail(fmt.Sprintf("[%d] %s  %s", i+1, label, link.URL), uint(width), "…")
				if i == o.linkIndex {
					line = currentLinkStyle.Render(line)
				}
				b.WriteString("\n")
				b.WriteString(line)
			}
		}
	}
	o.viewport.SetContent(b.String())
}

func (o *previewOverlay) chrome(width int) string {
	back := chromeDisabled.Render(" ◀ ")
	if o.history.CanBack() {
		back = chromeStyle.Render(" ◀ ")
	}
	forward := chromeDisabled.Render(" ▶ ")
	if o.history.CanForward() {
		forward = chromeStyle.Render(" ▶ ")
	}
	reload := chromeStyle.Render(" ⟳ ")
	address := " " + o.history.Current() + " "
	used := lipgloss.Width(back) + lipgloss.Width(forward) + lipgloss.Width(reload)
	if room := width - used; room > 0 {
		address = padRight(truncate.StringWithTail(address, uint(room), "…"), room)
	}
	return back + forward + reload + chromeStyle.Render(address)
}

func (o *previewOverlay) status(spin string) string {
	parts := []string{o.model.Title}
	switch {
	case o.loading:
		parts = append(parts, spin+" chargement")
	case o.err != nil && o.page != nil:
		parts = append(parts, errorStyle.Render("erreur : "+o.err.Error()))
	}
	if o.page != nil {
		parts = append(parts, humanize.Bytes(uint64(o.page.Size)))
		switch {
		case o.page.Stale:
			parts = append(parts, "hors ligne, copie locale")
		case o.page.FromCache:
			parts = append(parts, "depuis le cache")
		}
		if o.showSource {
			parts = append(parts, "source")
		}
	}
	return strings.Join(parts, " • ")
}

func (o *previewOverlay) View(l pageLayout, spin string) string {
	width, _ := overlaySize(l)
	body := lipgloss.JoinVertical(lipgloss.Left,
		o.chrome(width),
		o.viewport.View(),
		helperStyle.Render(truncate.StringWithTail(o.status(spin)+"  |  esc fermer • [ ] historique • r recharger • s source • tab liens", uint(width), "…")),
	)
	return overlayStyle.Render(body)
}
