package market

import "sync/atomic"

// Registry holds the canonical name→Market mapping. Refresh replaces the
// whole mapping atomically; readers always observe one complete listing and
// never a partially updated one.
type Registry struct {
	v atomic.Value // map[string]*Market
}

func NewRegistry() *Registry {
	r := &Registry{}
	r.v.Store(map[string]*Market{})
	return r
}

// Replace swaps in a freshly built listing. A market that was deprecated in
// the previous listing stays deprecated even when the new entry says
// otherwise.
func (r *Registry) Replace(markets map[string]*Market) {
	previous := r.All()
	next := make(map[string]*Market, len(markets))
	for name, m := range markets {
		copied := *m
		if old, exists := previous[name]; exists && old.Deprecated {
			copied.Deprecated = true
		}
		next[name] = &copied
	}
	r.v.Store(next)
}

// All returns the current listing; callers must not mutate it.
func (r *Registry) All() map[string]*Market {
	return r.v.Load().(map[string]*Market)
}

func (r *Registry) ByName(name string) (*Market, bool) {
	m, exists := r.All()[name]
	return m, exists
}

func (r *Registry) Len() int {
	return len(r.All())
}
