package tui

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/webmodels/internal/contact"
	"github.com/csheth/webmodels/internal/content"
	"github.com/csheth/webmodels/internal/navigator"
	"github.com/csheth/webmodels/internal/preview"
)

// Submitter stores a contact request.
type Submitter interface {
	Submit(ctx context.Context, form contact.Form) (*contact.Submission, error)
}

// Previewer loads a demo site for the models section.
type Previewer interface {
	Fetch(ctx context.Context, url string) (*preview.Page, error)
	Reload(ctx context.Context, url string) (*preview.Page, error)
}

// Config wires runtime options into the TUI program.
type Config struct {
	Contact Submitter
	Preview Previewer

	Durations      navigator.Durations
	Breakpoints    navigator.Breakpoints
	SwipeThreshold int
	JobTimeout     time.Duration

	// Scheduler and Now default to the wall clock.
	Scheduler navigator.Scheduler
	Now       func() time.Time
}

// Terminal defaults. Sizes are in cells.
const (
	defaultMobileColumns  = 80
	defaultShortRows      = 20
	defaultSwipeRows      = 3
	defaultJobTimeout     = 20 * time.Second
	defaultNavigatorTotal = 5
)

func (c Config) withDefaults() Config {
	if c.Breakpoints.MobileWidth <= 0 {
		c.Breakpoints.MobileWidth = defaultMobileColumns
	}
	if c.Breakpoints.ShortHeight <= 0 {
		c.Breakpoints.ShortHeight = defaultShortRows
	}
	if c.SwipeThreshold <= 0 {
		c.SwipeThreshold = defaultSwipeRows
	}
	if c.JobTimeout <= 0 {
		c.JobTimeout = defaultJobTimeout
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

type model struct {
	config Config
	stage  stage
	layout pageLayout

	sections    []string
	nav         *navigator.Navigator
	unsubscribe func()
	swipe       *navigator.SwipeAdapter
	viewport    navigator.Viewport

	anim           animation
	frameScheduled bool

	selectedModel int
	taglineTick   int
	helpVisible   bool
	overlay       *previewOverlay
	form          contactForm

	spinner spinner.Model
	jobs    *jobBus
	tracker *jobTracker

	infoMessage  string
	errorMessage string
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	config = config.withDefaults()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := &model{
		config:   config,
		stage:    stageLanding,
		layout:   newPageLayout(),
		sections: content.Sections(),
		spinner:  spin,
		jobs:     newJobBus(config.JobTimeout),
		tracker:  newJobTracker(),
		form:     newContactForm(""),
	}
	m.mountNavigator()
	return m
}

func (m *model) now() time.Time {
	return m.config.Now()
}

// mountNavigator starts a fresh navigator at the first section.
func (m *model) mountNavigator() {
	total := len(m.sections)
	if total == 0 {
		total = defaultNavigatorTotal
	}
	opts := []navigator.Option{
		navigator.WithDurations(m.config.Durations),
		navigator.WithBreakpoints(m.config.Breakpoints),
		navigator.WithScheduler(m.config.Scheduler),
	}
	if m.viewport.Width > 0 {
		opts = append(opts, navigator.WithViewport(m.viewport))
	}
	nav, err := navigator.New(total, opts...)
	if err != nil {
		log.Printf("[tui] mounting navigator: %v", err)
		return
	}
	m.nav = nav
	m.unsubscribe = nav.Subscribe(func(s navigator.State) {
		log.Printf("[navigator] section %d/%d (in_flight=%t, device=%s)", s.Index+1, s.Total, s.InFlight, s.Device)
	})
	m.swipe = &navigator.SwipeAdapter{Target: nav, Threshold: float64(m.config.SwipeThreshold)}
	m.anim = animation{}
	m.layout.Update(m.layout.width, m.layout.height, nav.Device().ShowIndicators())
}

func (m *model) unmountNavigator() {
	if m.nav == nil {
		return
	}
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.nav.Close()
	m.swipe.Cancel()
	m.anim = animation{}
}

func (m *model) currentSection() string {
	if m.nav == nil {
		return ""
	}
	i := m.nav.Index()
	if i < 0 || i >= len(m.sections) {
		return ""
	}
	return m.sections[i]
}

// drive runs an input handler against the navigator and starts the slide when the
// handler moved it.
func (m *model) drive(fn func()) tea.Cmd {
	if m.nav == nil {
		return nil
	}
	before := m.nav.Index()
	from := m.stripOffset(m.now())
	fn()
	after := m.nav.Index()
	if after == before {
		return nil
	}
	m.startAnimation(from, after)
	return m.scheduleFrame()
}

func (m *model) startAnimation(from, target int) {
	m.anim = animation{
		active:   true,
		from:     from,
		to:       target * m.layout.stripHeight,
		started:  m.now(),
		duration: m.nav.State().Duration,
	}
}

func (m *model) scheduleFrame() tea.Cmd {
	if m.frameScheduled {
		return nil
	}
	m.frameScheduled = true
	return frameCmd()
}

// stripOffset is the first strip row shown at time at.
func (m *model) stripOffset(at time.Time) int {
	if m.nav == nil {
		return 0
	}
	if !m.anim.active {
		return m.nav.Index() * m.layout.stripHeight
	}
	progress := 1.0
	if m.anim.duration > 0 {
		progress = float64(at.Sub(m.anim.started)) / float64(m.anim.duration)
	}
	progress = math.Max(0, math.Min(1, progress))
	eased := easeInOutCubic(progress)
	return m.anim.from + int(math.Round(float64(m.anim.to-m.anim.from)*eased))
}

func (m *model) animationDone(at time.Time) bool {
	return !m.anim.active || at.Sub(m.anim.started) >= m.anim.duration
}

func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

func (m *model) Init() tea.Cmd {
	return taglineCmd()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.quit()
		}
		if m.stage == stageContact {
			return m.handleContactKey(msg)
		}
		if m.overlay != nil {
			return m.handleOverlayKey(msg)
		}
		return m.handleLandingKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case frameMsg:
		if m.animationDone(msg.at) {
			m.anim.active = false
		}
		if m.anim.active || (m.nav != nil && m.nav.InFlight()) {
			return m, frameCmd()
		}
		m.frameScheduled = false
		return m, nil
	case taglineMsg:
		m.taglineTick++
		return m, taglineCmd()
	case spinner.TickMsg:
		if m.tracker.Running() == 0 && (m.overlay == nil || !m.overlay.loading) {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case jobSignalMsg:
		m.tracker.Record(msg.Snapshot)
		return m, nil
	case jobResultEnvelope:
		m.tracker.Record(msg.Snapshot)
		if msg.Payload == nil {
			return m, nil
		}
		return m.Update(msg.Payload)
	case previewResultMsg:
		if m.overlay == nil || !m.overlay.apply(msg) {
			log.Printf("[tui] dropping stale preview of %s", msg.url)
			return m, nil
		}
		return m, nil
	case submitResultMsg:
		return m.handleSubmitResult(msg)
	}
	return m, nil
}

func (m *model) resize(width, height int) {
	m.viewport = navigator.Viewport{Width: width, Height: height}
	showDots := true
	if m.nav != nil && m.nav.Mounted() {
		showDots = m.nav.Resize(m.viewport).ShowIndicators()
	}
	m.layout.Update(width, height, showDots)
	m.anim.active = false
	if m.overlay != nil {
		w, h := overlaySize(m.layout)
		m.overlay.resize(w, h)
	}
	m.form.resize(m.layout.contentWidth / 2)
}

func (m *model) quit() (tea.Model, tea.Cmd) {
	m.unmountNavigator()
	return m, tea.Quit
}

func (m *model) handleLandingKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.helpVisible {
		switch key.String() {
		case "?", "esc", "q":
			m.helpVisible = false
		}
		return m, nil
	}

	keys := navigator.KeyAdapter{Target: m.nav}
	section := m.currentSection()

	switch key.String() {
	case "q":
		return m.quit()
	case "?":
		m.helpVisible = true
		return m, nil
	case "down", "pgdown", "up", "pgup":
		name := navigator.Key(key.String())
		return m, m.drive(func() { keys.HandleKey(name) })
	case "j", " ":
		return m, m.drive(func() { keys.HandleKey(navigator.KeyDown) })
	case "k":
		return m, m.drive(func() { keys.HandleKey(navigator.KeyUp) })
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		target := int(key.Runes[0] - '1')
		return m, m.drive(func() { m.nav.RequestSection(target) })
	case "home", "g":
		return m, m.drive(func() { m.nav.RequestSection(0) })
	case "end", "G":
		return m, m.drive(func() { m.nav.RequestSection(m.nav.Total() - 1) })
	case "c":
		modelID := ""
		if section == content.SectionModels {
			modelID = content.Models()[m.selectedModel].ID
		}
		return m.openContact(modelID)
	}

	switch section {
	case content.SectionHero:
		if key.Type == tea.KeyEnter {
			return m, m.drive(func() { m.nav.RequestDelta(navigator.Next) })
		}
	case content.SectionModels:
		switch key.String() {
		case "left", "h":
			m.cycleModel(-1)
		case "right", "l", "tab":
			m.cycleModel(1)
		case "shift+tab":
			m.cycleModel(-1)
		case "enter", "p":
			return m, m.openPreview()
		}
	case content.SectionFooter:
		if key.Type == tea.KeyEnter {
			return m.openContact("")
		}
	}
	return m, nil
}

func (m *model) cycleModel(step int) {
	n := len(content.Models())
	m.selectedModel = (m.selectedModel + step + n) % n
}

func (m *model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.stage != stageLanding || m.nav == nil {
		return m, nil
	}
	if m.overlay != nil {
		var cmd tea.Cmd
		m.overlay.viewport, cmd = m.overlay.viewport.Update(msg)
		return m, cmd
	}
	if m.helpVisible {
		return m, nil
	}

	wheel := navigator.WheelAdapter{Target: m.nav}
	switch msg.Type {
	case tea.MouseWheelDown:
		return m, m.drive(func() { wheel.HandleWheel(1) })
	case tea.MouseWheelUp:
		return m, m.drive(func() { wheel.HandleWheel(-1) })
	case tea.MouseLeft:
		if i, ok := m.layout.dotAt(msg.X, msg.Y, m.nav.Total()); ok {
			dots := navigator.DotAdapter{Target: m.nav}
			return m, m.drive(func() { dots.Click(i) })
		}
		if !m.swipe.Tracking() {
			m.swipe.Begin(float64(msg.X), float64(msg.Y))
		}
	case tea.MouseRelease:
		return m, m.drive(func() { m.swipe.End(float64(msg.X), float64(msg.Y)) })
	}
	return m, nil
}

func (m *model) openPreview() tea.Cmd {
	models := content.Models()
	mdl := models[m.selectedModel%len(models)]
	w, h := overlaySize(m.layout)
	m.overlay = newPreviewOverlay(mdl, w, h)
	m.helpVisible = false
	return m.loadPreview(mdl.DemoURL, false)
}

func (m *model) loadPreview(url string, reload bool) tea.Cmd {
	seq := m.overlay.begin()
	m.overlay.refresh()
	return tea.Batch(
		m.jobs.Start(jobKindPreview, previewJob(m.config.Preview, seq, url, reload)),
		m.spinner.Tick,
	)
}

func (m *model) handleOverlayKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	o := m.overlay
	switch key.String() {
	case "esc", "q":
		m.overlay = nil
		return m, nil
	case "[":
		if url, ok := o.history.Back(); ok {
			return m, m.loadPreview(url, false)
		}
		return m, nil
	case "]":
		if url, ok := o.history.Forward(); ok {
			return m, m.loadPreview(url, false)
		}
		return m, nil
	case "r":
		return m, m.loadPreview(o.history.Current(), true)
	case "s":
		o.toggleSource()
		return m, nil
	case "tab":
		o.cycleLink(1)
		return m, nil
	case "shift+tab":
		o.cycleLink(-1)
		return m, nil
	case "enter":
		if link, ok := o.selectedLink(); ok {
			o.history.Visit(link.URL)
			return m, m.loadPreview(link.URL, false)
		}
		return m, nil
	}
	return m, o.scroll(key)
}

func (m *model) openContact(modelID string) (tea.Model, tea.Cmd) {
	m.unmountNavigator()
	m.overlay = nil
	m.helpVisible = false
	m.stage = stageContact
	m.form = newContactForm(modelID)
	m.form.resize(m.layout.contentWidth / 2)
	m.errorMessage = ""
	m.infoMessage = ""
	return m, m.form.setFocus(fieldName)
}

func (m *model) closeContact() (tea.Model, tea.Cmd) {
	m.stage = stageLanding
	m.mountNavigator()
	if m.viewport.Width > 0 {
		m.resize(m.viewport.Width, m.viewport.Height)
	}
	return m, nil
}

func (m *model) handleContactKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Type == tea.KeyEsc {
		return m.closeContact()
	}
	switch m.form.state {
	case formSubmitted:
		if key.String() == "n" {
			return m, m.form.reset()
		}
		return m, nil
	case formSubmitting:
		return m, nil
	}

	switch key.String() {
	case "tab":
		return m, m.form.move(1)
	case "shift+tab":
		return m, m.form.move(-1)
	case "ctrl+s":
		return m, m.submit()
	}
	return m, m.form.Update(key)
}

func (m *model) submit() tea.Cmd {
	if !m.form.validate() {
		return nil
	}
	m.form.state = formSubmitting
	return tea.Batch(
		m.jobs.Start(jobKindSubmit, submitContactJob(m.config.Contact, m.form.Form())),
		m.spinner.Tick,
	)
}

func (m *model) handleSubmitResult(msg submitResultMsg) (tea.Model, tea.Cmd) {
	if m.stage != stageContact || m.form.state != formSubmitting {
		return m, nil
	}
	if msg.err != nil {
		m.form.state = formEditing
		m.form.err = describeSubmitError(msg.err)
		return m, nil
	}
	m.form.state = formSubmitted
	m.form.err = ""
	m.form.submitted = msg.submission
	if msg.submission != nil {
		m.infoMessage = "Demande " + msg.submission.ID.String() + " enregistrée."
	}
	return m, nil
}
