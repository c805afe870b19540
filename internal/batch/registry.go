package batch

import "sync"

// Entry is what the registry remembers about a claimed identifier.
type Entry struct {
	Title      string
	IsRedirect bool
}

// Claim is the registry's answer to a claim attempt.
type Claim int

const (
	// ClaimNew means the identifier was free.
	ClaimNew Claim = iota
	// ClaimOverwrite means a redirect held the identifier and was replaced.
	ClaimOverwrite
	// ClaimRejected means a non-redirect document holds the identifier.
	ClaimRejected
)

// Registry maps document identifiers to the document that claimed them.
// Entries are replaced only over a redirect and never removed.
type Registry struct {
	mu      sync.Mutex
	entries map[string]Entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// lookup returns the entry for id.
func (r *Registry) lookup(id string) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	return e, ok
}

// Claim checks and registers id in one step. An unknown identifier behaves
// as if a redirect held it, so it is always free. On rejection the current
// holder is returned and the registry is unchanged.
func (r *Registry) Claim(id, title string, isRedirect bool) (Claim, Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, exists := r.entries[id]
	if exists && !prev.IsRedirect {
		return ClaimRejected, prev
	}
	r.entries[id] = Entry{Title: title, IsRedirect: isRedirect}
	if exists {
		return ClaimOverwrite, prev
	}
	return ClaimNew, prev
}

// Len returns the number of registered identifiers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
