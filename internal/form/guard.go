package form

import "sync"

// Destination is where a blocked navigation wanted to go.
// Close marks the screen's own cancel intent rather than a route change.
type Destination struct {
	Path  string
	Close bool
}

// Blocker is the router-side navigation primitive the guard sits on.
type Blocker interface {
	// Intercept installs fn to be consulted before every navigation. When fn
	// returns true the navigation is parked until Proceed or Reset.
	Intercept(fn func(to string) bool) (release func())
	// Proceed performs the parked navigation once.
	Proceed() bool
	// Reset drops the parked navigation and re-arms interception.
	Reset()
}

// UnloadHooks is where quit-time confirmation handlers live.
type UnloadHooks interface {
	Register(fn func() bool) (release func())
}

// Guard protects unsaved edits against navigation and program exit.
type Guard struct {
	blocker Blocker
	unload  UnloadHooks

	armed         bool
	releaseBlock  func()
	releaseUnload func()

	pending *Destination
	closed  bool
}

// NewGuard wires a guard to a blocker and unload hooks. Either may be nil.
func NewGuard(blocker Blocker, unload UnloadHooks) *Guard {
	g := &Guard{blocker: blocker, unload: unload}
	if blocker != nil {
		g.releaseBlock = blocker.Intercept(g.intercept)
	}
	return g
}

// Armed reports whether navigation is currently protected.
func (g *Guard) Armed() bool {
	return g.armed
}

// Pending reports whether a confirmation is waiting on the user.
func (g *Guard) Pending() bool {
	return g.pending != nil
}

// Destination returns the parked destination, if any.
func (g *Guard) Destination() (Destination, bool) {
	if g.pending == nil {
		return Destination{}, false
	}
	return *g.pending, true
}

// Sync arms or disarms the guard. The unload hook is held exactly while armed.
func (g *Guard) Sync(armed bool) {
	if g.closed {
		return
	}
	g.armed = armed
	switch {
	case armed && g.releaseUnload == nil && g.unload != nil:
		g.releaseUnload = g.unload.Register(g.Armed)
	case !armed && g.releaseUnload != nil:
		g.releaseUnload()
		g.releaseUnload = nil
	}
}

// Attempt asks to leave towards dest. It returns true when leaving is allowed
// right away, false when a confirmation is now pending.
func (g *Guard) Attempt(dest Destination) bool {
	if g.closed || !g.armed {
		return true
	}
	if g.pending == nil {
		d := dest
		g.pending = &d
	}
	return false
}

// Confirm discards the guard and lets the pending navigation through once.
func (g *Guard) Confirm() (Destination, bool) {
	if g.pending == nil {
		return Destination{}, false
	}
	dest := *g.pending
	g.pending = nil
	g.disarm()
	if !dest.Close && g.blocker != nil {
		g.blocker.Proceed()
	}
	return dest, true
}

// Cancel keeps the user on the screen and re-arms the route blocker.
func (g *Guard) Cancel() {
	if g.pending == nil {
		return
	}
	dest := *g.pending
	g.pending = nil
	if !dest.Close && g.blocker != nil {
		g.blocker.Reset()
	}
}

// Close releases every registration. Safe to call more than once.
func (g *Guard) Close() {
	if g.closed {
		return
	}
	g.disarm()
	g.pending = nil
	g.closed = true
}

func (g *Guard) disarm() {
	g.armed = false
	if g.releaseUnload != nil {
		g.releaseUnload()
		g.releaseUnload = nil
	}
	if g.releaseBlock != nil {
		g.releaseBlock()
		g.releaseBlock = nil
	}
}

func (g *Guard) intercept(to string) bool {
	if g.closed || !g.armed {
		return false
	}
	if g.pending == nil {
		g.pending = &Destination{Path: to}
	}
	return true
}

// --- Unload Registry ---

// UnloadRegistry tracks quit-time handlers. The program's quit filter asks
// ShouldPrompt before letting a quit through.
type UnloadRegistry struct {
	mu       sync.Mutex
	next     int
	handlers map[int]func() bool
}

// NewUnloadRegistry creates an empty registry.
func NewUnloadRegistry() *UnloadRegistry {
	return &UnloadRegistry{handlers: make(map[int]func() bool)}
}

// Register adds fn. The returned release func removes it and is idempotent.
func (r *UnloadRegistry) Register(fn func() bool) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.next
	r.next++
	r.handlers[id] = fn
	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.handlers, id)
			r.mu.Unlock()
		})
	}
}

// ShouldPrompt reports whether any handler wants a confirmation.
func (r *UnloadRegistry) ShouldPrompt() bool {
	r.mu.Lock()
	handlers := make([]func() bool, 0, len(r.handlers))
	for _, fn := range r.handlers {
		handlers = append(handlers, fn)
	}
	r.mu.Unlock()
	for _, fn := range handlers {
		if fn() {
			return true
		}
	}
	return false
}

// Len returns the number of live registrations.
func (r *UnloadRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handlers)
}
