// Package router keeps the screen history of the console and lets one
// interceptor park a navigation until it is confirmed or dropped.
package router

import "strings"

// Outcome reports what happened to a navigation request.
type Outcome int

const (
	Navigated Outcome = iota
	Blocked
	Unchanged
)

// Router is a path-based history stack.
type Router struct {
	history []string

	intercept func(to string) bool
	token     int

	blocked bool
	parked  string
	back    bool
}

// New creates a router positioned at start.
func New(start string) *Router {
	return &Router{history: []string{clean(start)}}
}

// Current returns the active path.
func (r *Router) Current() string {
	return r.history[len(r.history)-1]
}

// Blocked reports whether a navigation is parked.
func (r *Router) Blocked() bool {
	return r.blocked
}

// Parked returns the parked destination.
func (r *Router) Parked() (string, bool) {
	return r.parked, r.blocked
}

// Navigate pushes to unless an interceptor parks it. While a navigation is
// parked every further request is refused without consulting anyone.
func (r *Router) Navigate(to string) Outcome {
	return r.move(clean(to), false)
}

// Replace swaps the active path without growing the history. It is guarded
// like Navigate.
func (r *Router) Replace(to string) Outcome {
	to = clean(to)
	outcome := r.move(to, false)
	if outcome == Navigated && len(r.history) > 1 {
		r.history = append(r.history[:len(r.history)-2], to)
	}
	return outcome
}

// Back pops one entry. Guarded like Navigate.
func (r *Router) Back() Outcome {
	if len(r.history) < 2 {
		return Unchanged
	}
	return r.move(r.history[len(r.history)-2], true)
}

// Intercept installs fn as the interceptor. The returned func removes it,
// but only if no other interceptor replaced it since.
func (r *Router) Intercept(fn func(to string) bool) func() {
	r.token++
	token := r.token
	r.intercept = fn
	return func() {
		if r.token == token {
			r.intercept = nil
		}
	}
}

// Proceed performs the parked navigation once.
func (r *Router) Proceed() bool {
	if !r.blocked {
		return false
	}
	to, back := r.parked, r.back
	r.blocked, r.parked, r.back = false, "", false
	r.commit(to, back)
	return true
}

// Reset drops the parked navigation.
func (r *Router) Reset() {
	r.blocked, r.parked, r.back = false, "", false
}

func (r *Router) move(to string, back bool) Outcome {
	if r.blocked {
		return Blocked
	}
	if to == r.Current() {
		return Unchanged
	}
	if r.intercept != nil && r.intercept(to) {
		r.blocked, r.parked, r.back = true, to, back
		return Blocked
	}
	r.commit(to, back)
	return Navigated
}

func (r *Router) commit(to string, back bool) {
	if back && len(r.history) > 1 {
		r.history = r.history[:len(r.history)-1]
		return
	}
	r.history = append(r.history, to)
}

// --- Matching ---

// Match checks path against a pattern such as "/seasons/:id/edit" and returns
// the named segments.
func Match(pattern, path string) (map[string]string, bool) {
	pp := segments(pattern)
	sp := segments(path)
	if len(pp) != len(sp) {
		return nil, false
	}
	params := map[string]string{}
	for i, seg := range pp {
		if strings.HasPrefix(seg, ":") {
			if sp[i] == "" {
				return nil, false
			}
			params[seg[1:]] = sp[i]
			continue
		}
		if seg != sp[i] {
			return nil, false
		}
	}
	return params, true
}

// Section returns the first segment of path ("seasons" for "/seasons/1/edit").
func Section(path string) string {
	segs := segments(path)
	if len(segs) == 0 {
		return ""
	}
	return segs[0]
}

func segments(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func clean(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}
