package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/csheth/webmodels/internal/contact"
	"github.com/csheth/webmodels/internal/content"
	"github.com/csheth/webmodels/internal/navigator"
	"github.com/csheth/webmodels/internal/preview"
)

type testTimer struct {
	clock   *testClock
	at      time.Time
	fn      func()
	stopped bool
}

func (t *testTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	wasPending := !t.stopped
	t.stopped = true
	return wasPending
}

// testClock drives both the navigator timers and the animation clock.
type testClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*testTimer
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) AfterFunc(d time.Duration, f func()) navigator.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &testTimer{clock: c, at: c.now.Add(d), fn: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []func()
	remaining := c.timers[:0]
	for _, t := range c.timers {
		switch {
		case t.stopped:
		case !t.at.After(c.now):
			t.stopped = true
			due = append(due, t.fn)
		default:
			remaining = append(remaining, t)
		}
	}
	c.timers = remaining
	c.mu.Unlock()
	for _, fn := range due {
		fn()
	}
}

type fakeSubmitter struct {
	forms []contact.Form
	err   error
}

func (f *fakeSubmitter) Submit(_ context.Context, form contact.Form) (*contact.Submission, error) {
	f.forms = append(f.forms, form)
	if f.err != nil {
		return nil, f.err
	}
	return &contact.Submission{ID: uuid.MustParse("0191c8a0-0000-7000-8000-000000000001"), Name: form.Name, Status: contact.StatusNew}, nil
}

type fakePreviewer struct {
	page *preview.Page
}

func (f fakePreviewer) Fetch(context.Context, string) (*preview.Page, error)  { return f.page, nil }
func (f fakePreviewer) Reload(context.Context, string) (*preview.Page, error) { return f.page, nil }

func newTestModel(t *testing.T, clock *testClock, config Config) *model {
	t.Helper()
	config.Scheduler = clock
	config.Now = clock.Now
	m := New(config).(*model)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyDownStartsTransitionAndDropsInputWhileInFlight(t *testing.T) {
	clock := newTestClock()
	m := newTestModel(t, clock, Config{})

	_, cmd := m.Update(key("down"))
	if cmd == nil {
		t.Fatal("accepted transition should schedule a frame")
	}
	if got := m.nav.Index(); got != 1 {
		t.Fatalf("index after down = %d, want 1", got)
	}
	if !m.anim.active || !m.frameScheduled {
		t.Fatalf("animation should be running: %+v scheduled=%t", m.anim, m.frameScheduled)
	}

	_, cmd = m.Update(key("pgdown"))
	if cmd != nil {
		t.Fatalf("dropped request should not schedule frames, got %T", cmd)
	}
	if got := m.nav.Index(); got != 1 {
		t.Fatalf("request during transition was not dropped, index = %d", got)
	}

	clock.Advance(navigator.DefaultDesktopDuration)
	if m.nav.InFlight() {
		t.Fatal("navigator should settle after the desktop duration")
	}
	m.Update(key("j"))
	if got := m.nav.Index(); got != 2 {
		t.Fatalf("index after settle = %d, want 2", got)
	}
}

func TestUpOnFirstSectionIsIgnored(t *testing.T) {
	m := newTestModel(t, newTestClock(), Config{})
	_, cmd := m.Update(key("up"))
	if cmd != nil || m.nav.Index() != 0 || m.nav.InFlight() {
		t.Fatalf("up on the first section should do nothing (index=%d)", m.nav.Index())
	}
}

func TestStripOffsetFollowsEasing(t *testing.T) {
	clock := newTestClock()
	m := newTestModel(t, clock, Config{})
	height := m.layout.stripHeight

	m.Update(key("down"))
	start := m.anim.started
	if got := m.stripOffset(start); got != 0 {
		t.Fatalf("offset at start = %d, want 0", got)
	}
	half := start.Add(navigator.DefaultDesktopDuration / 2)
	if got, want := m.stripOffset(half), (height+1)/2; got != want && got != height/2 {
		t.Fatalf("offset at half = %d, want about %d", got, want)
	}
	quarter := m.stripOffset(start.Add(navigator.DefaultDesktopDuration / 4))
	if quarter >= height/2 {
		t.Fatalf("ease-in should lag behind linear progress, got %d of %d", quarter, height)
	}
	if got := m.stripOffset(start.Add(navigator.DefaultDesktopDuration)); got != height {
		t.Fatalf("offset at end = %d, want %d", got, height)
	}
}

func TestFramesStopOnceSettled(t *testing.T) {
	clock := newTestClock()
	m := newTestModel(t, clock, Config{})
	m.Update(key("down"))

	_, cmd := m.Update(frameMsg{at: clock.Now().Add(frameInterval)})
	if cmd == nil {
		t.Fatal("frames should continue mid-transition")
	}

	clock.Advance(navigator.DefaultDesktopDuration)
	_, cmd = m.Update(frameMsg{at: clock.Now()})
	if cmd != nil {
		t.Fatalf("frames should stop after settle, got %T", cmd)
	}
	if m.anim.active || m.frameScheduled {
		t.Fatalf("animation state not cleared: %+v scheduled=%t", m.anim, m.frameScheduled)
	}
	if got := m.stripOffset(clock.Now()); got != m.layout.stripHeight {
		t.Fatalf("resting offset = %d, want %d", got, m.layout.stripHeight)
	}
}

func TestNumberAndEndKeysJump(t *testing.T) {
	clock := newTestClock()
	m := newTestModel(t, clock, Config{})

	m.Update(key("4"))
	if got := m.nav.Index(); got != 3 {
		t.Fatalf("index after 4 = %d, want 3", got)
	}
	clock.Advance(time.Second)
	m.Update(key("g"))
	if got := m.nav.Index(); got != 0 {
		t.Fatalf("index after g = %d, want 0", got)
	}
	clock.Advance(time.Second)
	m.Update(key("G"))
	if got := m.nav.Index(); got != len(content.Sections())-1 {
		t.Fatalf("index after G = %d", got)
	}
}

func TestDotClickJumpsToSection(t *testing.T) {
	m := newTestModel(t, newTestClock(), Config{})
	total := m.nav.Total()
	y := headerHeight + m.layout.dotRow(3, total)

	m.Update(tea.MouseMsg{X: m.layout.width - 2, Y: y, Type: tea.MouseLeft})
	if got := m.nav.Index(); got != 3 {
		t.Fatalf("dot click index = %d, want 3", got)
	}
}

func TestWheelDuringTransitionIsDropped(t *testing.T) {
	m := newTestModel(t, newTestClock(), Config{})

	m.Update(tea.MouseMsg{Type: tea.MouseWheelDown})
	m.Update(tea.MouseMsg{Type: tea.MouseWheelDown})
	m.Update(tea.MouseMsg{Type: tea.MouseWheelDown})
	if got := m.nav.Index(); got != 1 {
		t.Fatalf("burst of wheel events moved to %d, want 1", got)
	}
}

func TestSwipeUpAdvances(t *testing.T) {
	m := newTestModel(t, newTestClock(), Config{SwipeThreshold: 3})

	m.Update(tea.MouseMsg{X: 10, Y: 20, Type: tea.MouseLeft})
	m.Update(tea.MouseMsg{X: 11, Y: 14, Type: tea.MouseRelease})
	if got := m.nav.Index(); got != 1 {
		t.Fatalf("swipe up index = %d, want 1", got)
	}
}

func TestShortSwipeIsIgnored(t *testing.T) {
	m := newTestModel(t, newTestClock(), Config{SwipeThreshold: 3})

	m.Update(tea.MouseMsg{X: 10, Y: 20, Type: tea.MouseLeft})
	m.Update(tea.MouseMsg{X: 10, Y: 19, Type: tea.MouseRelease})
	if got := m.nav.Index(); got != 0 {
		t.Fatalf("short swipe moved to %d", got)
	}
}

func TestCompactTerminalHidesDots(t *testing.T) {
	m := newTestModel(t, newTestClock(), Config{})
	if m.layout.dotWidth == 0 {
		t.Fatal("dots should show on a desktop-sized terminal")
	}
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 16})
	if m.layout.dotWidth != 0 {
		t.Fatalf("dots should hide on a short narrow terminal, width=%d", m.layout.dotWidth)
	}
	if got := m.nav.Device().String(); got != "mobile-landscape" {
		t.Fatalf("device = %s", got)
	}
}

func TestMobileTerminalUsesMobileDuration(t *testing.T) {
	clock := newTestClock()
	m := newTestModel(t, clock, Config{})
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 30})

	m.Update(key("down"))
	if got := m.anim.duration; got != navigator.DefaultMobileDuration {
		t.Fatalf("animation duration = %s, want %s", got, navigator.DefaultMobileDuration)
	}
	clock.Advance(navigator.DefaultMobileDuration)
	if m.nav.InFlight() {
		t.Fatal("mobile transition should settle after the mobile duration")
	}
}

func TestLandingViewShowsSectionAndDots(t *testing.T) {
	m := newTestModel(t, newTestClock(), Config{})
	view := m.View()
	for _, want := range []string{content.Hero().Title, dotActive, dotInactive, "1/5", "desktop"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
	if lines := strings.Count(view, "\n") + 1; lines != 30 {
		t.Fatalf("view has %d lines, want 30", lines)
	}
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t, newTestClock(), Config{})
	m.Update(key("?"))
	if !m.helpVisible {
		t.Fatal("? should open the help box")
	}
	if !strings.Contains(m.View(), "Raccourcis") {
		t.Fatal("help box not rendered")
	}
	m.Update(key("down"))
	if m.nav.Index() != 0 {
		t.Fatal("navigation keys should be inert while help is open")
	}
	m.Update(key("?"))
	if m.helpVisible {
		t.Fatal("? should close the help box")
	}
}

func TestModelsSectionSelectsAndPreviews(t *testing.T) {
	clock := newTestClock()
	page := &preview.Page{URL: "https://devexp.vercel.app/", Kind: preview.KindHTML, Title: "Demo", Text: "Bienvenue", Size: 2048}
	m := newTestModel(t, clock, Config{Preview: fakePreviewer{page: page}})

	m.Update(key("3"))
	clock.Advance(time.Second)
	m.Update(key("right"))
	if m.selectedModel != 1 {
		t.Fatalf("selected model = %d, want 1", m.selectedModel)
	}

	_, cmd := m.Update(key("enter"))
	if cmd == nil || m.overlay == nil {
		t.Fatal("enter should open the preview and start a fetch")
	}
	if !m.overlay.loading {
		t.Fatal("overlay should be loading")
	}
	if got := m.overlay.history.Current(); got != content.Models()[1].DemoURL {
		t.Fatalf("overlay url = %s", got)
	}

	seq := m.overlay.seq
	m.Update(previewResultMsg{seq: seq - 1, url: "stale", err: errors.New("late")})
	if !m.overlay.loading || m.overlay.err != nil {
		t.Fatal("stale preview result should be ignored")
	}

	msg, err := previewJob(m.config.Preview, seq, page.URL, false)(context.Background())
	if err != nil {
		t.Fatalf("preview job: %v", err)
	}
	m.Update(msg)
	if m.overlay.loading || m.overlay.page != page {
		t.Fatal("preview result not applied")
	}
	if !strings.Contains(m.View(), "Bienvenue") {
		t.Fatal("preview text not rendered")
	}

	m.Update(key("down"))
	if m.nav.Index() != 2 {
		t.Fatal("overlay should capture navigation keys")
	}
	m.Update(key("esc"))
	if m.overlay != nil {
		t.Fatal("esc should close the overlay")
	}
}

func TestContactFlowSubmitsAndRemounts(t *testing.T) {
	clock := newTestClock()
	submitter := &fakeSubmitter{}
	m := newTestModel(t, clock, Config{Contact: submitter})

	m.Update(key("3"))
	clock.Advance(time.Second)
	m.Update(key("c"))
	if m.stage != stageContact {
		t.Fatal("c should open the contact page")
	}
	if m.nav.Mounted() {
		t.Fatal("navigator should be unmounted on the contact page")
	}
	if got := m.form.selectedModelID(); got != content.Models()[0].ID {
		t.Fatalf("preselected model = %q", got)
	}

	m.form.name.SetValue("Léa")
	m.form.email.SetValue("lea@example.com")
	m.form.message.SetValue("Bonjour")

	_, cmd := m.Update(key("ctrl+s"))
	if cmd == nil || m.form.state != formSubmitting {
		t.Fatalf("ctrl+s should submit, state=%v", m.form.state)
	}
	msg, err := submitContactJob(m.config.Contact, m.form.Form())(context.Background())
	if err != nil {
		t.Fatalf("submit job: %v", err)
	}
	m.Update(msg)
	if m.form.state != formSubmitted {
		t.Fatalf("state after result = %v", m.form.state)
	}
	if len(submitter.forms) != 1 || submitter.forms[0].Model != content.Models()[0].ID {
		t.Fatalf("unexpected submissions: %+v", submitter.forms)
	}
	if !strings.Contains(m.View(), "Message Envoyé") {
		t.Fatal("success message not rendered")
	}

	m.Update(key("n"))
	if m.form.state != formEditing || m.form.name.Value() != "" {
		t.Fatal("n should reset the form")
	}

	m.Update(key("esc"))
	if m.stage != stageLanding || !m.nav.Mounted() || m.nav.Index() != 0 {
		t.Fatal("esc should remount the landing page at the first section")
	}
}

func TestContactValidationListsMissingFields(t *testing.T) {
	m := newTestModel(t, newTestClock(), Config{Contact: &fakeSubmitter{}})
	m.Update(key("c"))

	_, cmd := m.Update(key("ctrl+s"))
	if cmd != nil {
		t.Fatal("invalid form should not start a job")
	}
	if m.form.state != formEditing {
		t.Fatalf("state = %v", m.form.state)
	}
	for _, want := range []string{"Nom", "Email", "Modèle de site", "Message"} {
		if !strings.Contains(m.form.err, want) {
			t.Fatalf("error %q missing %q", m.form.err, want)
		}
	}
}

func TestContactSubmitErrorKeepsForm(t *testing.T) {
	m := newTestModel(t, newTestClock(), Config{Contact: &fakeSubmitter{err: errors.New("disk full")}})
	m.Update(key("c"))
	m.form.name.SetValue("Léa")
	m.form.email.SetValue("lea@example.com")
	m.form.choice = 0
	m.form.message.SetValue("Bonjour")
	m.Update(key("ctrl+s"))

	msg, _ := submitContactJob(m.config.Contact, m.form.Form())(context.Background())
	m.Update(msg)
	if m.form.state != formEditing {
		t.Fatalf("state = %v", m.form.state)
	}
	if !strings.Contains(m.form.err, "Une erreur est survenue") {
		t.Fatalf("error = %q", m.form.err)
	}
	if m.form.name.Value() != "Léa" {
		t.Fatal("form values should be kept after a failure")
	}
}

func TestTaglineRotates(t *testing.T) {
	m := newTestModel(t, newTestClock(), Config{})
	_, cmd := m.Update(taglineMsg{})
	if cmd == nil || m.taglineTick != 1 {
		t.Fatalf("tagline tick = %d", m.taglineTick)
	}
	if !strings.Contains(m.View(), content.Hero().Tagline(1)) {
		t.Fatal("rotated tagline not rendered")
	}
}
