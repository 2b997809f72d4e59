package tui

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type jobKind string

type jobStatus string

const (
	jobKindPreview jobKind = "preview"
	jobKindSubmit  jobKind = "submit"
)

const (
	jobStatusRunning   jobStatus = "running"
	jobStatusSucceeded jobStatus = "succeeded"
	jobStatusFailed    jobStatus = "failed"
)

type jobSnapshot struct {
	ID          string
	Kind        jobKind
	Status      jobStatus
	StartedAt   time.Time
	CompletedAt time.Time
	Err         string
	Duration    time.Duration
}

type jobSignalMsg struct {
	Snapshot jobSnapshot
}

type jobResultEnvelope struct {
	Snapshot jobSnapshot
	Payload  tea.Msg
}

type jobRunner func(context.Context) (tea.Msg, error)

type jobBus struct {
	counter int64
	timeout time.Duration
}

func newJobBus(timeout time.Duration) *jobBus {
	return &jobBus{timeout: timeout}
}

func (b *jobBus) nextID(kind jobKind) string {
	idx := atomic.AddInt64(&b.counter, 1)
	return fmt.Sprintf("%s-%d", kind, idx)
}

// Start emits a running signal, then runs runner off the update loop and delivers its
// payload wrapped with the final snapshot.
func (b *jobBus) Start(kind jobKind, runner jobRunner) tea.Cmd {
	id := b.nextID(kind)
	started := time.Now()
	startSnapshot := jobSnapshot{ID: id, Kind: kind, Status: jobStatusRunning, StartedAt: started}
	startCmd := func() tea.Msg {
		return jobSignalMsg{Snapshot: startSnapshot}
	}

	runCmd := func() tea.Msg {
		ctx := context.Background()
		if b.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, b.timeout)
			defer cancel()
		}
		payload, err := runner(ctx)
		snapshot := jobSnapshot{
			ID:          id,
			Kind:        kind,
			StartedAt:   started,
			CompletedAt: time.Now(),
		}
		if err != nil {
			snapshot.Status = jobStatusFailed
			snapshot.Err = err.Error()
		} else {
			snapshot.Status = jobStatusSucceeded
		}
		snapshot.Duration = snapshot.CompletedAt.Sub(started)
		log.Printf("[jobs] %s %s (duration=%s, err=%v)", kind, snapshot.Status, snapshot.Duration, err)
		return jobResultEnvelope{Snapshot: snapshot, Payload: payload}
	}

	return tea.Sequence(startCmd, runCmd)
}

// jobTracker counts running jobs by ID and keeps the latest snapshot per kind for the
// status bar.
type jobTracker struct {
	running map[string]jobSnapshot
	latest  map[jobKind]jobSnapshot
}

func newJobTracker() *jobTracker {
	return &jobTracker{
		running: map[string]jobSnapshot{},
		latest:  map[jobKind]jobSnapshot{},
	}
}

func (t *jobTracker) Record(s jobSnapshot) {
	if s.Status == jobStatusRunning {
		t.running[s.ID] = s
	} else {
		delete(t.running, s.ID)
	}
	t.latest[s.Kind] = s
}

func (t *jobTracker) Running() int {
	return len(t.running)
}

func (t *jobTracker) runningKind(kind jobKind) bool {
	for _, s := range t.running {
		if s.Kind == kind {
			return true
		}
	}
	return false
}

func (t *jobTracker) Badges() []string {
	var badges []string
	for _, kind := range []jobKind{jobKindPreview, jobKindSubmit} {
		if t.runningKind(kind) {
			badges = append(badges, fmt.Sprintf("%s…", kind))
			continue
		}
		if s, ok := t.latest[kind]; ok && s.Status == jobStatusFailed {
			badges = append(badges, fmt.Sprintf("%s ✗", kind))
		}
	}
	return badges
}
