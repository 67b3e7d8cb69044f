package console

import (
	"sync"

	"github.com/fyrsmithlabs/projectdeck/internal/render"
)

// Page is the render surface of the web console. It keeps the last applied
// view for the next page request.
type Page struct {
	mu      sync.RWMutex
	view    render.View
	applied int
}

// NewPage creates an empty page.
func NewPage() *Page {
	return &Page{}
}

// Apply implements render.Surface.
func (p *Page) Apply(v render.View) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.view = v
	p.applied++
}

// View returns the last applied view.
func (p *Page) View() render.View {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.view
}

// Applied returns how many views have been applied.
func (p *Page) Applied() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.applied
}
