// Package endpoint maintains the ordered list of candidate translation
// endpoints together with the routing state the failover dispatcher uses
// to pick where a dispatch round starts.
//
// The list is replaced wholesale, never edited in place. Every replace
// (or reset to the static defaults) invalidates all routing state: the
// primary goes back to index 0 and the failure streak is cleared. Views
// handed out before the change carry a generation number so that routing
// feedback computed against a stale list is discarded instead of being
// applied to the new one.
package endpoint

import (
	"strings"
	"sync"
)

// FailThreshold is the number of consecutive fully-failed dispatch rounds
// after which the primary endpoint is demoted (advanced by one).
const FailThreshold = 2

// View is an immutable snapshot of the registry taken at the start of a
// dispatch round. Gen ties routing feedback back to the list it was
// computed against.
type View struct {
	Endpoints []string
	Primary   int
	Gen       uint64
}

// Registry holds the current endpoint rotation. All methods are safe for
// concurrent use.
type Registry struct {
	mu         sync.Mutex
	defaults   []string
	endpoints  []string
	primary    int
	failStreak int
	gen        uint64
}

// NewRegistry creates a registry whose list is initialised from the static
// configuration. Blank entries are dropped; order is preserved.
func NewRegistry(defaults []string) *Registry {
	d := filterBlank(defaults)
	return &Registry{
		defaults:  d,
		endpoints: d,
	}
}

// Replace installs list as the current rotation, or restores the static
// defaults when list is empty (the feed clearing its override). Either way
// the primary returns to index 0 and the failure streak is cleared.
func (r *Registry) Replace(list []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := filterBlank(list)
	if len(next) == 0 {
		next = r.defaults
	}
	r.endpoints = next
	r.primary = 0
	r.failStreak = 0
	r.gen++
}

// View returns the current list and primary index. The returned slice is a
// copy; callers may iterate it while the registry changes underneath.
func (r *Registry) View() View {
	r.mu.Lock()
	defer r.mu.Unlock()

	eps := make([]string, len(r.endpoints))
	copy(eps, r.endpoints)
	return View{Endpoints: eps, Primary: r.primary, Gen: r.gen}
}

// FailStreak returns the current count of consecutive fully-failed rounds.
func (r *Registry) FailStreak() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failStreak
}

// Promote records a successful attempt against the endpoint at idx of the
// list identified by gen: that endpoint becomes the primary and the failure
// streak resets. Feedback for a superseded list is ignored.
func (r *Registry) Promote(gen uint64, idx int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if gen != r.gen || idx < 0 || idx >= len(r.endpoints) {
		return
	}
	r.primary = idx
	r.failStreak = 0
}

// RoundFailed records a dispatch round in which every endpoint failed.
// Once FailThreshold consecutive rounds have failed the primary advances
// by one position (wrapping) and the streak restarts, so a persistently
// bad endpoint stops being the first try. Feedback for a superseded list
// is ignored.
func (r *Registry) RoundFailed(gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if gen != r.gen || len(r.endpoints) == 0 {
		return
	}
	r.failStreak++
	if r.failStreak >= FailThreshold {
		r.primary = (r.primary + 1) % len(r.endpoints)
		r.failStreak = 0
	}
}

func filterBlank(list []string) []string {
	var out []string
	for _, e := range list {
		if strings.TrimSpace(e) != "" {
			out = append(out, e)
		}
	}
	return out
}
