package controller

import (
	"sync"

	"github.com/fyrsmithlabs/projectdeck/internal/project"
)

// FormState is a snapshot of a form surface.
type FormState struct {
	Open bool
	// Target is the project being edited. Zero for the create form.
	Target project.Project
	// Draft is the last submitted command, kept while the form stays open
	// after a failure.
	Draft string
	// Submitting is true while the form's request is in flight.
	Submitting bool
}

type form struct {
	mu     sync.Mutex
	open   bool
	target project.Project
	draft  string
	guard  Guard
}

func (f *form) openFor(target project.Project) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = true
	f.target = target
	f.draft = ""
}

func (f *form) close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = false
	f.target = project.Project{}
	f.draft = ""
}

// closeIf closes the form only if it still targets id.
func (f *form) closeIf(id project.ID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.target.ID != id {
		return
	}
	f.open = false
	f.target = project.Project{}
	f.draft = ""
}

func (f *form) setDraft(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.open {
		f.draft = s
	}
}

func (f *form) state() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return FormState{
		Open:       f.open,
		Target:     f.target,
		Draft:      f.draft,
		Submitting: f.guard.Busy(),
	}
}
