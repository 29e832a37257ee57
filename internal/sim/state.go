// Package sim owns the whole game state and drives it through slumbers: the
// year tick that ages agents, accrues investments, advances megaprojects and
// generates events, all from one seeded random stream.
package sim

import (
	"log/slog"

	"github.com/talgya/slumber/internal/achieve"
	"github.com/talgya/slumber/internal/agent"
	"github.com/talgya/slumber/internal/entropy"
	"github.com/talgya/slumber/internal/events"
	"github.com/talgya/slumber/internal/invest"
	"github.com/talgya/slumber/internal/ledger"
	"github.com/talgya/slumber/internal/money"
	"github.com/talgya/slumber/internal/project"
	"github.com/talgya/slumber/internal/worldsim"
)

// StartingGold is the hoard a fresh lich wakes with.
const StartingGold = 1000

// WorldState owns every subsystem of the simulation. All mutation goes
// through its methods; nothing inside consults ambient randomness or the
// wall clock.
type WorldState struct {
	Seed int64 `json:"seed"`

	World     *worldsim.World        `json:"world"`
	Portfolio *invest.Portfolio      `json:"portfolio"`
	Agents    []*agent.Agent         `json:"agents"`
	Ledger    *ledger.Ledger         `json:"ledger"`
	Projects  []*project.Megaproject `json:"projects"`
	Generator *events.Generator      `json:"generator"`
	Tracker   *achieve.Tracker       `json:"tracker"`

	PhylacteryLevel uint   `json:"phylactery_level"`
	Echoes          uint64 `json:"echoes"`

	// Lingering per-kind market shifts from economic events. Absent keys
	// mean no shift; values relax back toward 1 each year.
	MarketShifts map[invest.Kind]float64 `json:"market_shifts,omitempty"`

	// Choice events awaiting a post-slumber decision.
	PendingEvents []*events.Event `json:"pending_events,omitempty"`

	// Count of internal invariant violations that were logged and
	// corrected. Stays zero in a healthy simulation.
	Diagnostics uint64 `json:"diagnostics"`

	src *entropy.Source
}

// NewGame creates the deterministic initial state for a seed.
func NewGame(seed int64) *WorldState {
	w := &WorldState{
		Seed:            seed,
		World:           worldsim.NewWorld(seed),
		Portfolio:       invest.NewPortfolio(money.New(StartingGold)),
		Ledger:          ledger.New(),
		Projects:        defaultProjects(),
		Generator:       events.NewGenerator(),
		Tracker:         achieve.NewTracker(nil),
		PhylacteryLevel: 1,
		MarketShifts:    map[invest.Kind]float64{},
		src:             entropy.NewSource(seed),
	}
	w.unlockProjects()
	return w
}

// defaultProjects returns the megaproject roster every run opens with, all
// Locked until the phylactery qualifies.
func defaultProjects() []*project.Megaproject {
	return []*project.Megaproject{
		project.New("undercity", "The Undercity", money.New(500), 1, 3, []project.Phase{
			{Name: "Excavation", Years: 80},
			{Name: "Foundations", Years: 120, EffectType: project.EffectPropertyIncomeBonus, EffectValue: 0.05},
			{Name: "Hidden Districts", Years: 150, EffectType: project.EffectAgentTravel},
		}),
		project.New("phylactery-vaults", "Phylactery Vault Network", money.New(1200), 2, 5, []project.Phase{
			{Name: "Deep Sanctum", Years: 100},
			{Name: "Wardings", Years: 150, EffectType: project.EffectImmuneSeizure},
			{Name: "Vault Network", Years: 200, EffectType: project.EffectPropertyIncomeBonus, EffectValue: 0.10},
		}),
		project.New("eternal-archive", "The Eternal Archive", money.New(800), 3, 2, []project.Phase{
			{Name: "Collection", Years: 120},
			{Name: "Indexing", Years: 80, EffectType: project.EffectPropertyIncomeBonus, EffectValue: 0.08},
		}),
	}
}

// Rebuild restores all derived and unexported state after deserialization.
// The entropy stream is fast-forwarded to the recorded draw position so that
// resimulation continues bit-identically.
func (w *WorldState) Rebuild(draws uint64) {
	w.src = entropy.Restore(w.Seed, draws)
	w.World.Rebuild(w.Seed)
	w.Portfolio.Rebuild()
	w.Ledger.Rebuild()
	for _, p := range w.Projects {
		p.Rebuild()
	}
	w.Tracker.Rebuild()
	if w.MarketShifts == nil {
		w.MarketShifts = map[invest.Kind]float64{}
	}
	if w.Generator == nil {
		w.Generator = events.NewGenerator()
	}
}

// EntropyDraws reports the current position in the random stream, persisted
// alongside the seed for save round-trips.
func (w *WorldState) EntropyDraws() uint64 {
	return w.src.Draws()
}

// CurrentYear is the world calendar year.
func (w *WorldState) CurrentYear() uint64 {
	return w.World.CurrentYear
}

// SetPhylacteryLevel records caller-side phylactery progression and unlocks
// any megaproject the new level qualifies for.
func (w *WorldState) SetPhylacteryLevel(level uint) {
	w.PhylacteryLevel = level
	w.unlockProjects()
}

func (w *WorldState) unlockProjects() {
	for _, p := range w.Projects {
		p.Unlock(w.PhylacteryLevel)
	}
}

// Agent looks a roster agent up by id.
func (w *WorldState) Agent(id string) (*agent.Agent, bool) {
	for _, a := range w.Agents {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

// Project looks a megaproject up by id.
func (w *WorldState) Project(id string) (*project.Megaproject, bool) {
	for _, p := range w.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// AddAgent places an agent on the roster. The id must be non-empty and
// unique.
func (w *WorldState) AddAgent(a *agent.Agent) error {
	if a == nil || a.ID == "" {
		return ErrInvalidInput
	}
	if _, exists := w.Agent(a.ID); exists {
		return ErrInvalidInput
	}
	w.Agents = append(w.Agents, a)
	return nil
}

// AddProject registers an additional megaproject and applies the current
// phylactery level to it.
func (w *WorldState) AddProject(p *project.Megaproject) error {
	if p == nil || p.ID == "" {
		return ErrInvalidInput
	}
	if _, exists := w.Project(p.ID); exists {
		return ErrInvalidInput
	}
	p.Unlock(w.PhylacteryLevel)
	w.Projects = append(w.Projects, p)
	return nil
}

// removeAgent drops an agent from the roster and releases every investment
// assignment pointing at them.
func (w *WorldState) removeAgent(id string) {
	for i, a := range w.Agents {
		if a.ID != id {
			continue
		}
		for _, invID := range a.AssignedInvestments {
			if inv, ok := w.Portfolio.Get(invID); ok {
				inv.UnassignAgent(id)
			}
		}
		w.Agents = append(w.Agents[:i], w.Agents[i+1:]...)
		return
	}
}

// marketModifier combines the economic cycle with any lingering event shift
// for the kind.
func (w *WorldState) marketModifier(kind invest.Kind) float64 {
	m := w.World.GrowthRate()
	if shift, ok := w.MarketShifts[kind]; ok {
		m *= shift
	}
	return m
}

// propertyIncomeBonus sums completed-phase bonuses across all megaprojects.
func (w *WorldState) propertyIncomeBonus() float64 {
	var bonus float64
	for _, p := range w.Projects {
		bonus += p.Effects.PropertyIncomeBonus
	}
	return bonus
}

// checkInvariants scans for violated internal invariants, corrects them and
// counts every correction. A non-zero count marks a bug, not a game state.
func (w *WorldState) checkInvariants() {
	for _, a := range w.Agents {
		if a.Loyalty < 0 || a.Loyalty > 100 {
			slog.Warn("loyalty out of range, clamped", "agent", a.ID, "loyalty", a.Loyalty)
			a.SetLoyalty(a.Loyalty)
			w.Diagnostics++
		}
		if a.Competence < 0 || a.Competence > 100 {
			slog.Warn("competence out of range, clamped", "agent", a.ID, "competence", a.Competence)
			a.SetCompetence(a.Competence)
			w.Diagnostics++
		}
	}
	for _, e := range w.Ledger.Entries {
		if e.Current > e.Required {
			slog.Warn("ledger occurrences above requirement, corrected", "entry", e.ID)
			e.Current = e.Required
			w.Diagnostics++
		}
	}
}
