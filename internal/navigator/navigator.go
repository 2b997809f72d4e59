// Package navigator owns the active section of a full-page, scroll-snapped layout.
//
// A Navigator is the single authority for which section is presented and whether a
// transition is currently running. Input adapters (wheel, keyboard, swipe, dots) translate
// raw events into RequestDelta or RequestSection calls; renderers read State or Subscribe to
// changes. Requests that arrive while a transition is in flight are dropped, never queued.
package navigator

import (
	"errors"
	"sync"
	"time"
)

// ErrNoSections is returned by New when the section count is below one.
var ErrNoSections = errors.New("navigator: at least one section is required")

// Direction is a relative navigation request.
type Direction int

const (
	Previous Direction = -1
	Next     Direction = 1
)

// Timer is a pending scheduled callback.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d has elapsed.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type wallClock struct{}

func (wallClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// State is a point-in-time snapshot of the navigator.
type State struct {
	Index    int
	Total    int
	InFlight bool
	Duration time.Duration
	Device   Device
}

// Offset reports the transform offset in percent of the viewport block dimension.
func (s State) Offset() float64 {
	return -float64(s.Index) * 100
}

// Indicator is one dot in the section indicator row.
type Indicator struct {
	Index  int
	Active bool
}

// Indicators returns one entry per section, or nil when the device hides the row.
func (s State) Indicators() []Indicator {
	if !s.Device.ShowIndicators() {
		return nil
	}
	dots := make([]Indicator, s.Total)
	for i := range dots {
		dots[i] = Indicator{Index: i, Active: i == s.Index}
	}
	return dots
}

// Option customizes a Navigator at construction.
type Option func(*Navigator)

// WithDurations overrides the transition durations.
func WithDurations(d Durations) Option {
	return func(n *Navigator) {
		n.durations = d
	}
}

// WithBreakpoints overrides the device breakpoints.
func WithBreakpoints(b Breakpoints) Option {
	return func(n *Navigator) {
		n.breakpoints = b
	}
}

// WithScheduler replaces the wall-clock scheduler.
func WithScheduler(s Scheduler) Option {
	return func(n *Navigator) {
		if s != nil {
			n.scheduler = s
		}
	}
}

// WithViewport seeds the device class from an initial viewport.
func WithViewport(v Viewport) Option {
	return func(n *Navigator) {
		n.viewport = &v
	}
}

// Navigator serializes section changes from every input source.
type Navigator struct {
	mu sync.Mutex

	total    int
	index    int
	inFlight bool
	duration time.Duration

	device      Device
	viewport    *Viewport
	durations   Durations
	breakpoints Breakpoints

	scheduler  Scheduler
	pending    Timer
	generation uint64
	closed     bool

	listeners map[int]func(State)
	nextID    int

	// seq stamps every snapshot taken under mu. delivered is the newest stamp handed to
	// listeners and is guarded by deliverMu.
	seq       uint64
	deliverMu sync.Mutex
	delivered uint64
}

// New mounts a navigator over total sections, starting Idle at index 0.
func New(total int, opts ...Option) (*Navigator, error) {
	if total < 1 {
		return nil, ErrNoSections
	}
	n := &Navigator{
		total:       total,
		durations:   DefaultDurations(),
		breakpoints: DefaultBreakpoints(),
		scheduler:   wallClock{},
		listeners:   map[int]func(State){},
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.viewport != nil {
		n.device = n.breakpoints.Classify(*n.viewport)
	}
	return n, nil
}

// RequestSection moves to target when the navigator is idle. It reports whether a
// transition started; dropped, redundant and post-Close requests return false.
func (n *Navigator) RequestSection(target int) bool {
	return n.request(func(int) int { return target })
}

// RequestDelta moves one section in the sign of dir.
func (n *Navigator) RequestDelta(dir Direction) bool {
	step := 0
	switch {
	case dir > 0:
		step = 1
	case dir < 0:
		step = -1
	default:
		return false
	}
	return n.request(func(current int) int { return current + step })
}

func (n *Navigator) request(resolve func(current int) int) bool {
	n.mu.Lock()
	if n.closed || n.inFlight {
		n.mu.Unlock()
		return false
	}
	target := clamp(resolve(n.index), 0, n.total-1)
	if target == n.index {
		n.mu.Unlock()
		return false
	}

	n.inFlight = true
	n.index = target
	n.duration = n.durations.For(n.device)
	n.generation++
	gen := n.generation
	n.pending = n.scheduler.AfterFunc(n.duration, func() { n.settle(gen) })

	snapshot, seq, listeners := n.publishLocked()
	n.mu.Unlock()
	n.notify(seq, listeners, snapshot)
	return true
}

func (n *Navigator) settle(gen uint64) {
	n.mu.Lock()
	if n.closed || gen != n.generation || !n.inFlight {
		n.mu.Unlock()
		return
	}
	n.inFlight = false
	n.pending = nil
	snapshot, seq, listeners := n.publishLocked()
	n.mu.Unlock()
	n.notify(seq, listeners, snapshot)
}

// Resize re-evaluates the device class. Only future transitions and indicator visibility
// are affected.
func (n *Navigator) Resize(v Viewport) Device {
	n.mu.Lock()
	if n.closed {
		device := n.device
		n.mu.Unlock()
		return device
	}
	n.viewport = &v
	previous := n.device
	n.device = n.breakpoints.Classify(v)
	device := n.device
	if device == previous {
		n.mu.Unlock()
		return device
	}
	snapshot, seq, listeners := n.publishLocked()
	n.mu.Unlock()
	n.notify(seq, listeners, snapshot)
	return device
}

// Subscribe registers fn for every index, in-flight or device change. Listeners run one
// at a time, newest state last; a snapshot superseded before delivery is skipped.
// Listeners may read the navigator but must not request sections. The returned function
// removes the subscription.
func (n *Navigator) Subscribe(fn func(State)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed || fn == nil {
		return func() {}
	}
	id := n.nextID
	n.nextID++
	n.listeners[id] = fn
	return func() {
		n.mu.Lock()
		delete(n.listeners, id)
		n.mu.Unlock()
	}
}

// Close unmounts the navigator: the pending timer is stopped, listeners are dropped and
// every later request is a no-op.
func (n *Navigator) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	n.closed = true
	if n.pending != nil {
		n.pending.Stop()
		n.pending = nil
	}
	n.listeners = map[int]func(State){}
}

// Mounted reports whether Close has not been called yet.
func (n *Navigator) Mounted() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return !n.closed
}

func (n *Navigator) Index() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.index
}

func (n *Navigator) Total() int {
	return n.total
}

func (n *Navigator) InFlight() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.inFlight
}

// Device returns the current device class.
func (n *Navigator) Device() Device {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.device
}

// TransitionDuration is the duration a transition started now would run for.
func (n *Navigator) TransitionDuration() time.Duration {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.durations.For(n.device)
}

// State returns a consistent snapshot.
func (n *Navigator) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.snapshotLocked()
}

// Offset is the transform offset in percent of the viewport block dimension.
func (n *Navigator) Offset() float64 {
	return n.State().Offset()
}

// OffsetFor is the transform offset for a viewport block dimension of extent units.
func (n *Navigator) OffsetFor(extent int) int {
	return -n.Index() * extent
}

func (n *Navigator) snapshotLocked() State {
	return State{
		Index:    n.index,
		Total:    n.total,
		InFlight: n.inFlight,
		Duration: n.duration,
		Device:   n.device,
	}
}

// publishLocked stamps a snapshot for delivery and copies the listener set.
func (n *Navigator) publishLocked() (State, uint64, []func(State)) {
	n.seq++
	listeners := make([]func(State), 0, len(n.listeners))
	for _, fn := range n.listeners {
		listeners = append(listeners, fn)
	}
	return n.snapshotLocked(), n.seq, listeners
}

func (n *Navigator) notify(seq uint64, listeners []func(State), s State) {
	n.deliverMu.Lock()
	defer n.deliverMu.Unlock()
	if seq <= n.delivered {
		return
	}
	n.delivered = seq
	for _, fn := range listeners {
		fn(s)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
