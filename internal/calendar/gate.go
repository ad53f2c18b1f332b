package calendar

import (
	"sort"
	"sync"

	"github.com/javiermolinar/showcal/internal/show"
)

// FetchIntent asks the store to load the episodes of one show.
type FetchIntent struct {
	ShowID string
}

// PendingFetches returns one intent per unloaded show, in input order.
// Repeated IDs produce a single intent.
func PendingFetches(shows []show.Show) []FetchIntent {
	var intents []FetchIntent
	seen := make(map[string]bool)
	for _, s := range shows {
		if s.EpisodeState() != show.Unloaded || seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		intents = append(intents, FetchIntent{ShowID: s.ID})
	}
	return intents
}

// FetchGate remembers which shows already have a fetch in flight so each
// unloaded show is requested once until its data arrives.
type FetchGate struct {
	mu        sync.Mutex
	requested map[string]struct{}
}

// NewFetchGate creates an empty gate.
func NewFetchGate() *FetchGate {
	return &FetchGate{requested: make(map[string]struct{})}
}

// Reconcile returns intents for unloaded shows not yet requested and marks
// them in flight. Shows that are loaded or no longer present are forgotten.
func (g *FetchGate) Reconcile(shows []show.Show) []FetchIntent {
	g.mu.Lock()
	defer g.mu.Unlock()

	present := make(map[string]bool, len(shows))
	for _, s := range shows {
		present[s.ID] = true
		if s.EpisodeState() != show.Unloaded {
			delete(g.requested, s.ID)
		}
	}

	var intents []FetchIntent
	for _, in := range PendingFetches(shows) {
		if _, ok := g.requested[in.ShowID]; ok {
			continue
		}
		g.requested[in.ShowID] = struct{}{}
		intents = append(intents, in)
	}

	for id := range g.requested {
		if !present[id] {
			delete(g.requested, id)
		}
	}
	return intents
}

// Settle forgets in-flight marks for shows that are now loaded or gone,
// without requesting anything.
func (g *FetchGate) Settle(shows []show.Show) {
	g.mu.Lock()
	defer g.mu.Unlock()

	unloaded := make(map[string]bool, len(shows))
	for _, s := range shows {
		if s.EpisodeState() == show.Unloaded {
			unloaded[s.ID] = true
		}
	}
	for id := range g.requested {
		if !unloaded[id] {
			delete(g.requested, id)
		}
	}
}

// Release clears the in-flight mark for id, typically after a failed fetch,
// so the next Reconcile requests it again.
func (g *FetchGate) Release(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.requested, id)
}

// InFlight returns the IDs currently marked as requested, sorted.
func (g *FetchGate) InFlight() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	ids := make([]string, 0, len(g.requested))
	for id := range g.requested {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Reset forgets every in-flight mark.
func (g *FetchGate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requested = make(map[string]struct{})
}
