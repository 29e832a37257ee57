// Package achieve tracks long-term goals and named statistics, observing
// the simulation through hook calls rather than polling state.
package achieve

import "log/slog"

// Statistic names used by the core hooks.
const (
	StatTotalGoldEarned     = "total_gold_earned"
	StatTotalYearsSlumbered = "total_years_slumbered"
	StatMaxFamilyGeneration = "max_family_generation"
	StatMaxInvestmentYears  = "max_investment_years"
	StatPrestigeCount       = "prestige_count"
)

// Achievement ids.
const (
	FirstMillion    = "first_million"
	Centennial      = "centennial"
	PatientInvestor = "patient_investor"
	Dynasty         = "dynasty"
	HostileTakeover = "hostile_takeover"
	DarkAwakening   = "dark_awakening"
	SoulTrader      = "soul_trader"
	Transcendence   = "transcendence"
)

// State of one achievement.
type State int

const (
	StateLocked State = iota
	StateInProgress
	StateUnlocked
)

// Achievement is one goal. Target zero marks an instant unlock.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Target      uint64 `json:"target"`
	Hidden      bool   `json:"hidden,omitempty"`
	Points      uint   `json:"points"`
	State       State  `json:"state"`
	Progress    uint64 `json:"progress"`
}

// NotificationSink receives unlock popups. A nil sink drops them silently.
type NotificationSink interface {
	Notify(name, description string)
}

// Tracker holds all achievements and the statistic table.
type Tracker struct {
	Achievements []*Achievement    `json:"achievements"`
	Stats        map[string]uint64 `json:"stats"`

	sink  NotificationSink
	index map[string]int
}

// NewTracker creates a tracker with the standard goal set.
func NewTracker(sink NotificationSink) *Tracker {
	t := &Tracker{
		Achievements: []*Achievement{
			{ID: FirstMillion, Name: "First Million", Description: "Amass one million gold", Target: 1_000_000, Points: 10},
			{ID: Centennial, Name: "Centennial", Description: "Slumber a full century at once", Target: 100, Points: 20},
			{ID: PatientInvestor, Name: "Patient Investor", Description: "Hold one investment for five hundred years", Target: 500, Points: 50},
			{ID: Dynasty, Name: "Dynasty", Description: "See a family reach its fifth generation", Target: 5, Points: 30},
			{ID: HostileTakeover, Name: "Hostile Takeover", Description: "Hold every debt of a standing crown", Points: 40},
			{ID: DarkAwakening, Name: "Dark Awakening", Description: "Open the first dark venture", Hidden: true, Points: 25},
			{ID: SoulTrader, Name: "Soul Trader", Description: "Trade in what should not be sold", Hidden: true, Points: 35},
			{ID: Transcendence, Name: "Transcendence", Description: "Shed one existence for the next", Points: 100},
		},
		Stats: map[string]uint64{},
		sink:  sink,
	}
	t.rebuildIndex()
	return t
}

// SetSink replaces the notification sink, typically after a load.
func (t *Tracker) SetSink(sink NotificationSink) {
	t.sink = sink
}

func (t *Tracker) rebuildIndex() {
	t.index = make(map[string]int, len(t.Achievements))
	for i, a := range t.Achievements {
		t.index[a.ID] = i
	}
}

// Rebuild restores derived state after deserialization.
func (t *Tracker) Rebuild() {
	t.rebuildIndex()
	if t.Stats == nil {
		t.Stats = map[string]uint64{}
	}
}

// Get looks an achievement up by id.
func (t *Tracker) Get(id string) (*Achievement, bool) {
	i, ok := t.index[id]
	if !ok {
		return nil, false
	}
	return t.Achievements[i], true
}

// SetProgress sets absolute progress, auto-unlocking at the target.
// Unlocked achievements never move again.
func (t *Tracker) SetProgress(id string, value uint64) {
	a, ok := t.Get(id)
	if !ok || a.State == StateUnlocked {
		return
	}
	if value > a.Target {
		value = a.Target
	}
	a.Progress = value
	if a.Progress > 0 {
		a.State = StateInProgress
	}
	if a.Target > 0 && a.Progress >= a.Target {
		t.unlock(a)
	}
}

// IncrementProgress adds to progress, auto-unlocking at the target.
func (t *Tracker) IncrementProgress(id string, delta uint64) {
	a, ok := t.Get(id)
	if !ok || a.State == StateUnlocked {
		return
	}
	t.SetProgress(id, a.Progress+delta)
}

// Unlock forces an unlock. Reports whether this call was the first.
func (t *Tracker) Unlock(id string) bool {
	a, ok := t.Get(id)
	if !ok || a.State == StateUnlocked {
		return false
	}
	a.Progress = a.Target
	t.unlock(a)
	return true
}

func (t *Tracker) unlock(a *Achievement) {
	a.State = StateUnlocked
	slog.Info("achievement unlocked", "id", a.ID, "points", a.Points)
	if t.sink != nil {
		t.sink.Notify(a.Name, a.Description)
	}
}

// IsUnlocked reports whether the achievement exists and is unlocked.
func (t *Tracker) IsUnlocked(id string) bool {
	a, ok := t.Get(id)
	return ok && a.State == StateUnlocked
}

// UnlockedCount counts unlocked achievements.
func (t *Tracker) UnlockedCount() int {
	n := 0
	for _, a := range t.Achievements {
		if a.State == StateUnlocked {
			n++
		}
	}
	return n
}

// TotalPoints sums the points of unlocked achievements.
func (t *Tracker) TotalPoints() uint {
	var pts uint
	for _, a := range t.Achievements {
		if a.State == StateUnlocked {
			pts += a.Points
		}
	}
	return pts
}

// Stat returns a named statistic, zero if unset.
func (t *Tracker) Stat(name string) uint64 {
	return t.Stats[name]
}

// SetStat sets a named statistic.
func (t *Tracker) SetStat(name string, value uint64) {
	t.Stats[name] = value
}

// IncrementStat adds to a named statistic.
func (t *Tracker) IncrementStat(name string, delta uint64) {
	t.Stats[name] += delta
}

// SetStatMax raises a statistic to value if it is higher.
func (t *Tracker) SetStatMax(name string, value uint64) {
	if value > t.Stats[name] {
		t.Stats[name] = value
	}
}

// Reset relocks everything and clears all statistics.
func (t *Tracker) Reset() {
	for _, a := range t.Achievements {
		a.State = StateLocked
		a.Progress = 0
	}
	t.Stats = map[string]uint64{}
}
