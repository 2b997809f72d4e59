package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/webmodels/internal/contact"
)

var errContactUnavailable = errors.New("le formulaire de contact est indisponible")

func previewJob(p Previewer, seq int, url string, reload bool) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		if p == nil {
			err := errors.New("aperçu indisponible")
			return previewResultMsg{seq: seq, url: url, err: err}, err
		}
		fetch := p.Fetch
		if reload {
			fetch = p.Reload
		}
		page, err := fetch(ctx, url)
		return previewResultMsg{seq: seq, url: url, page: page, err: err}, err
	}
}

func submitContactJob(s Submitter, form contact.Form) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		if s == nil {
			return submitResultMsg{err: errContactUnavailable}, errContactUnavailable
		}
		sub, err := s.Submit(ctx, form)
		return submitResultMsg{submission: sub, err: err}, err
	}
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg{at: t}
	})
}

func taglineCmd() tea.Cmd {
	return tea.Tick(taglineInterval, func(time.Time) tea.Msg {
		return taglineMsg{}
	})
}
