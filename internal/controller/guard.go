package controller

import (
	"sync"
	"sync/atomic"

	"github.com/fyrsmithlabs/projectdeck/internal/project"
)

// Lock is held for the duration of one submission.
type Lock interface {
	TryAcquire() bool
	Release()
}

// Guard is the in-flight flag of one form.
type Guard struct {
	busy atomic.Bool
}

// TryAcquire sets the flag and reports whether it was clear.
func (g *Guard) TryAcquire() bool {
	return g.busy.CompareAndSwap(false, true)
}

// Release clears the flag.
func (g *Guard) Release() {
	g.busy.Store(false)
}

// Busy reports whether a request is in flight.
func (g *Guard) Busy() bool {
	return g.busy.Load()
}

// KeyedGuard holds one in-flight flag per project, so actions on different
// rows run independently. The zero value is ready to use.
type KeyedGuard struct {
	mu   sync.Mutex
	busy map[project.ID]struct{}
}

// For returns the Lock for id.
func (k *KeyedGuard) For(id project.ID) Lock {
	return keyedLock{guards: k, id: id}
}

// Busy reports whether a request for id is in flight.
func (k *KeyedGuard) Busy(id project.ID) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	_, ok := k.busy[id]
	return ok
}

func (k *KeyedGuard) tryAcquire(id project.ID) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	if _, ok := k.busy[id]; ok {
		return false
	}
	if k.busy == nil {
		k.busy = make(map[project.ID]struct{})
	}
	k.busy[id] = struct{}{}
	return true
}

func (k *KeyedGuard) release(id project.ID) {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.busy, id)
}

type keyedLock struct {
	guards *KeyedGuard
	id     project.ID
}

func (l keyedLock) TryAcquire() bool { return l.guards.tryAcquire(l.id) }
func (l keyedLock) Release()         { l.guards.release(l.id) }
