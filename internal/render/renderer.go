package render

import (
	"sync"
	"time"

	"github.com/fyrsmithlabs/projectdeck/internal/project"
)

// Surface receives shaped views.
type Surface interface {
	Apply(View)
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func(View)

// Apply calls f(v).
func (f SurfaceFunc) Apply(v View) { f(v) }

// Renderer shapes the cache and pushes the result to its surfaces.
type Renderer struct {
	mu       sync.Mutex
	cache    *project.Cache
	loc      *time.Location
	surfaces []Surface
}

// New creates a Renderer over cache. loc controls timestamp display; nil
// means time.Local.
func New(cache *project.Cache, loc *time.Location) *Renderer {
	return &Renderer{cache: cache, loc: loc}
}

// Attach registers a surface. It does not render.
func (r *Renderer) Attach(s Surface) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.surfaces = append(r.surfaces, s)
}

// Render shapes the current cache contents and applies the view to every
// surface. Calls are serialized so surfaces see views in cache order.
func (r *Renderer) Render() View {
	r.mu.Lock()
	defer r.mu.Unlock()

	v := Shape(r.cache.Current(), r.loc)
	for _, s := range r.surfaces {
		s.Apply(v)
	}
	return v
}

// Snapshot shapes the cache without touching any surface.
func (r *Renderer) Snapshot() View {
	return Shape(r.cache.Current(), r.loc)
}
