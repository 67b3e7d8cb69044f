package monitor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fyrsmithlabs/projectdeck/internal/render"
)

// Feed is a render surface holding only the newest view.
type Feed struct {
	ch chan render.View
}

// NewFeed creates an empty feed.
func NewFeed() *Feed {
	return &Feed{ch: make(chan render.View, 1)}
}

// Apply implements render.Surface. An unread older view is replaced.
func (f *Feed) Apply(v render.View) {
	for {
		select {
		case f.ch <- v:
			return
		default:
		}
		select {
		case <-f.ch:
		default:
		}
	}
}

type viewMsg render.View

// wait blocks until the next view arrives.
func (f *Feed) wait() tea.Cmd {
	return func() tea.Msg {
		return viewMsg(<-f.ch)
	}
}
