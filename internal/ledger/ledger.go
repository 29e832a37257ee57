// Package ledger tracks what the mortal world has pieced together about the
// lich: multi-occurrence discovery entries with prestige-time retention.
package ledger

import (
	"log/slog"

	"github.com/talgya/slumber/internal/entropy"
)

// Category groups ledger entries for counting.
type Category int

const (
	CategoryEconomic Category = iota
	CategoryPolitical
	CategoryMagical
	CategoryPersonal
)

func (c Category) String() string {
	switch c {
	case CategoryEconomic:
		return "economic"
	case CategoryPolitical:
		return "political"
	case CategoryMagical:
		return "magical"
	case CategoryPersonal:
		return "personal"
	default:
		return "unknown"
	}
}

// ProgressResult is the outcome of a Progress call.
type ProgressResult int

const (
	Progressed ProgressResult = iota
	AlreadyDiscovered
)

// Entry is one piece of knowledge being assembled. It is discovered exactly
// when current occurrences reach the requirement.
type Entry struct {
	ID         string   `json:"id"`
	Category   Category `json:"category"`
	Required   uint     `json:"occurrences_required"`
	Current    uint     `json:"occurrences_current"`
	Discovered bool     `json:"is_discovered"`
}

// Ledger holds entries in registration order with per-category discovery
// counters.
type Ledger struct {
	Entries []*Entry `json:"entries"`

	index    map[string]int
	counters map[Category]uint
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{
		index:    map[string]int{},
		counters: map[Category]uint{},
	}
}

// Rebuild restores the index and category counters after deserialization.
func (l *Ledger) Rebuild() {
	l.index = make(map[string]int, len(l.Entries))
	l.counters = map[Category]uint{}
	for i, e := range l.Entries {
		l.index[e.ID] = i
		if e.Discovered {
			l.counters[e.Category]++
		}
	}
}

func (l *Ledger) ensure() {
	if l.index == nil {
		l.Rebuild()
	}
}

// Register creates an entry requiring the given number of occurrences.
// Re-registering an existing id is a no-op.
func (l *Ledger) Register(id string, category Category, required uint) *Entry {
	l.ensure()
	if i, ok := l.index[id]; ok {
		return l.Entries[i]
	}
	if required < 1 {
		required = 1
	}
	e := &Entry{ID: id, Category: category, Required: required}
	l.index[id] = len(l.Entries)
	l.Entries = append(l.Entries, e)
	return e
}

// Get looks an entry up by id.
func (l *Ledger) Get(id string) (*Entry, bool) {
	l.ensure()
	i, ok := l.index[id]
	if !ok {
		return nil, false
	}
	return l.Entries[i], true
}

// Progress advances an entry by one occurrence, auto-registering unknown ids
// with a single-occurrence requirement. Discovered entries are left alone.
func (l *Ledger) Progress(id string, category Category) ProgressResult {
	e := l.Register(id, category, 1)
	if e.Discovered {
		return AlreadyDiscovered
	}
	e.Current++
	if e.Current >= e.Required {
		e.Current = e.Required
		e.Discovered = true
		l.counters[e.Category]++
		slog.Debug("ledger entry discovered", "id", e.ID, "category", e.Category.String())
	}
	return Progressed
}

// Discover fully discovers an entry, bypassing occurrence progress.
// Idempotent; reports whether this call changed state.
func (l *Ledger) Discover(id string, category Category) bool {
	e := l.Register(id, category, 1)
	if e.Discovered {
		return false
	}
	e.Current = e.Required
	e.Discovered = true
	l.counters[e.Category]++
	return true
}

// IsDiscovered reports whether the entry exists and is discovered.
func (l *Ledger) IsDiscovered(id string) bool {
	e, ok := l.Get(id)
	return ok && e.Discovered
}

// DiscoveredCount returns the per-category discovery counter.
func (l *Ledger) DiscoveredCount(c Category) uint {
	l.ensure()
	return l.counters[c]
}

// TotalDiscovered counts discovered entries across all categories.
func (l *Ledger) TotalDiscovered() uint {
	l.ensure()
	var total uint
	for _, n := range l.counters {
		total += n
	}
	return total
}

// ApplyRetention applies a prestige reset with retention fraction r. With
// r >= 1 nothing changes. Otherwise every in-progress entry is dropped and
// each discovered entry survives an independent Bernoulli trial at r.
func (l *Ledger) ApplyRetention(r float64, src *entropy.Source) {
	l.ensure()
	if r >= 1.0 {
		return
	}
	if r < 0 {
		r = 0
	}

	kept := l.Entries[:0]
	for _, e := range l.Entries {
		if !e.Discovered {
			continue
		}
		if src.Chance(r) {
			kept = append(kept, e)
		}
	}
	l.Entries = kept
	l.Rebuild()
}
