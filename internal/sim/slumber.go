package sim

import (
	"fmt"
	"log/slog"

	"github.com/talgya/slumber/internal/agent"
	"github.com/talgya/slumber/internal/events"
	"github.com/talgya/slumber/internal/invest"
	"github.com/talgya/slumber/internal/ledger"
	"github.com/talgya/slumber/internal/money"
	"github.com/talgya/slumber/internal/project"
	"github.com/talgya/slumber/internal/worldsim"
)

// exposureDivisor scales the yearly sum of agent and holding contributions
// before it lands on the meter.
const exposureDivisor = 10

// betrayalExposure is how much attention one turned servant draws.
func betrayalExposure(k agent.Kind) uint {
	switch k {
	case agent.KindFamily:
		return 15
	case agent.KindCult:
		return 20
	case agent.KindBound:
		return 5
	default:
		return 10
	}
}

// Slumber advances the world by the given number of years and returns the
// chronological event stream plus a per-year snapshot trail. The first
// snapshot is the pre-slumber state; zero years returns only that.
func (w *WorldState) Slumber(years uint) ([]*events.Event, []invest.Snapshot) {
	var stream []*events.Event
	snaps := []invest.Snapshot{w.Portfolio.RecordSnapshot(w.World.CurrentYear)}

	for i := uint(0); i < years; i++ {
		stream = w.tickYear(stream)
		snaps = append(snaps, w.Portfolio.RecordSnapshot(w.World.CurrentYear))
	}

	w.Tracker.OnSlumberComplete(years)
	return stream, snaps
}

// tickYear runs the fixed sub-step order for one simulated year: clock,
// agents, investments, ledger, megaprojects, events, achievement hooks.
func (w *WorldState) tickYear(stream []*events.Event) []*events.Event {
	w.World.TickYear(w.src)
	year := w.World.CurrentYear

	stream = w.tickAgents(stream, year)
	w.tickInvestments()
	w.tickLedger()
	stream = w.tickProjects(stream, year)
	stream = w.tickEvents(stream, year)

	w.Tracker.OnGoldChanged(w.Portfolio.Gold.Float64())
	w.Tracker.OnInvestmentHeld(w.Portfolio.MaxYearsHeld())
	w.Tracker.OnKingdomDebtOwned(w.World.MaxPlayerDebtFraction())

	w.relaxMarketShifts()
	w.checkInvariants()
	return stream
}

// tickAgents ages the roster in stable order, handling deaths, betrayals and
// successions. Removals happen after the pass so iteration order is fixed.
func (w *WorldState) tickAgents(stream []*events.Event, year uint64) []*events.Event {
	var removed []string

	for _, a := range w.Agents {
		out := a.TickYear(w.src)

		switch {
		case out.Died:
			stream = append(stream, events.Synthesize(w.src, year,
				"Servant Passes",
				fmt.Sprintf("%s dies at age %d", a.Name, a.Age),
				events.KindPersonal, events.SeverityMinor))
			removed = append(removed, a.ID)

		case out.Betrayed:
			stream = append(stream, events.Synthesize(w.src, year,
				"Servant Turns",
				fmt.Sprintf("%s betrays your trust", a.Name),
				events.KindPersonal, events.SeverityModerate))
			w.World.Exposure.Add(betrayalExposure(a.Kind))
			w.Ledger.Discover("betrayal-"+a.ID, ledger.CategoryPersonal)
			removed = append(removed, a.ID)

		case out.Succeeded:
			stream = append(stream, events.Synthesize(w.src, year,
				"Succession",
				fmt.Sprintf("%s takes up the old bargain", a.Name),
				events.KindPersonal, events.SeverityMinor))
			w.Tracker.OnFamilySuccession(out.NewGeneration)

		case out.LoyaltyChanged:
			slog.Debug("loyalty drift", "agent", a.ID, "old", out.LoyaltyOld, "new", out.LoyaltyNew)
		}
	}

	for _, id := range removed {
		w.removeAgent(id)
	}
	return stream
}

// tickInvestments accrues one year of income per holding in insertion order
// and pushes the combined attention load onto the exposure meter.
func (w *WorldState) tickInvestments() {
	bonus := w.propertyIncomeBonus()
	var load uint

	for _, inv := range w.Portfolio.Investments {
		var mods []float64
		for _, id := range inv.AssignedAgents {
			a, ok := w.Agent(id)
			if !ok {
				slog.Warn("assigned agent missing, skipped", "investment", inv.ID, "agent", id)
				continue
			}
			mods = append(mods, a.IncomeModifier())
		}

		income := inv.AccrueYear(w.src, mods, w.marketModifier(inv.Kind))
		if inv.Kind == invest.KindProperty && bonus > 0 {
			income = income.MulFloat(1 + bonus)
		}
		w.Portfolio.Gold = w.Portfolio.Gold.Add(income)

		load += inv.ExposureContribution()
	}

	for _, a := range w.Agents {
		load += a.ExposureContribution()
	}
	if load > 0 {
		w.World.Exposure.Add(load / exposureDivisor)
	}
}

// tickLedger progresses per-agent discovery entries for servants whose cover
// has worn thin enough for the world to start keeping notes.
func (w *WorldState) tickLedger() {
	for _, a := range w.Agents {
		if a.Cover >= agent.CoverCompromised {
			w.Ledger.Progress("agent-cover-"+a.ID, ledger.CategoryPersonal)
		}
	}
}

// tickProjects funds and advances active megaprojects. Decade years spend
// their effort on covering tracks: the project rolls discovery instead of
// progressing.
func (w *WorldState) tickProjects(stream []*events.Event, year uint64) []*events.Event {
	for _, p := range w.Projects {
		if p.State != project.StateActive {
			continue
		}

		if !p.CostPerYear.IsZero() {
			if w.Portfolio.Gold.Cmp(p.CostPerYear) < 0 {
				if err := p.Pause(); err == nil {
					slog.Info("megaproject starved of funds, paused", "project", p.ID)
					stream = append(stream, events.Synthesize(w.src, year,
						"Works Fall Silent",
						fmt.Sprintf("funding for %s runs dry", p.Name),
						events.KindEconomic, events.SeverityMinor))
				}
				continue
			}
			w.Portfolio.Gold = w.Portfolio.Gold.Sub(p.CostPerYear)
		}

		if year%10 == 0 {
			if p.RollDiscovery(w.src) {
				w.Ledger.Discover("project-"+p.ID, ledger.CategoryMagical)
				stream = append(stream, events.Synthesize(w.src, year,
					"Great Work Uncovered",
					fmt.Sprintf("mortal eyes find traces of %s", p.Name),
					events.KindMagical, events.SeverityMajor))
			}
			continue
		}

		completions, err := p.AdvanceYears(1)
		if err != nil {
			continue
		}
		for _, c := range completions {
			stream = append(stream, events.Synthesize(w.src, year,
				"Phase Complete",
				fmt.Sprintf("%s finishes %s", p.Name, c.Phase.Name),
				events.KindMagical, events.SeverityModerate))
		}
		if p.State == project.StateComplete {
			stream = append(stream, events.Synthesize(w.src, year,
				"Great Work Complete",
				fmt.Sprintf("%s stands finished after %d years", p.Name, p.YearsInvested),
				events.KindMagical, events.SeverityMajor))
		}
	}
	return stream
}

// tickEvents consults the generator at yearly, decade and era cadence.
// Choice-bearing events are parked for the player; the rest apply now.
func (w *WorldState) tickEvents(stream []*events.Event, year uint64) []*events.Event {
	level := w.World.Exposure.Level()

	generated := w.Generator.GenerateYearly(w.src, year, level)
	if year%10 == 0 {
		generated = append(generated, w.Generator.GenerateDecade(w.src, year, level)...)
	}
	if year%100 == 0 {
		generated = append(generated, w.Generator.GenerateEra(w.src, year)...)
	}

	for _, e := range generated {
		if e.HasChoices() {
			w.PendingEvents = append(w.PendingEvents, e)
		} else {
			w.applyEvent(e)
		}
		stream = append(stream, e)
	}
	return stream
}

// applyEvent applies an immediate event's effects.
func (w *WorldState) applyEvent(e *events.Event) {
	for _, eff := range e.Effects {
		w.applyEffect(eff)
	}
	e.Resolved = true
}

// applyEffect performs one deterministic state mutation.
func (w *WorldState) applyEffect(eff events.Effect) {
	if !eff.GoldDelta.IsZero() {
		w.Portfolio.Gold = w.Portfolio.Gold.Add(eff.GoldDelta)
		if w.Portfolio.Gold.IsNegative() {
			w.Portfolio.Gold = money.Zero()
		}
	}

	if eff.LoyaltyDelta != 0 {
		for _, a := range w.Agents {
			a.SetLoyalty(a.Loyalty + eff.LoyaltyDelta)
		}
	}

	switch {
	case eff.ExposureDelta > 0:
		w.World.Exposure.Add(uint(eff.ExposureDelta))
	case eff.ExposureDelta < 0:
		w.World.Exposure.Sub(uint(-eff.ExposureDelta))
	}

	if eff.StabilityDelta != 0 {
		if k := w.pickStandingKingdom(); k != nil {
			k.Stability = clampAttribute(k.Stability + eff.StabilityDelta)
		}
	}

	if eff.CausesWar {
		w.igniteWar()
	}

	if eff.MarketModifier != 0 {
		w.applyMarketShift(eff.MarketModifier, eff.AffectedInvestKind)
	}

	// Template betrayals and deaths are narrative: they raise the heat
	// around the network. Mechanical deaths and betrayals come from the
	// agent lifecycle itself.
	if eff.IsBetrayal {
		w.World.Exposure.Add(10)
	}
	if eff.IsDeath {
		w.World.Exposure.Add(5)
	}
}

func clampAttribute(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// pickStandingKingdom draws a uniform non-collapsed kingdom, or nil.
func (w *WorldState) pickStandingKingdom() *worldsim.Kingdom {
	var standing []*worldsim.Kingdom
	for _, k := range w.World.Kingdoms {
		if !k.Collapsed {
			standing = append(standing, k)
		}
	}
	if len(standing) == 0 {
		return nil
	}
	return standing[w.src.IntN(len(standing))]
}

// igniteWar sets two distinct standing kingdoms against each other.
func (w *WorldState) igniteWar() {
	var standing []*worldsim.Kingdom
	for _, k := range w.World.Kingdoms {
		if !k.Collapsed && k.AtWarWith == "" {
			standing = append(standing, k)
		}
	}
	if len(standing) < 2 {
		return
	}
	i := w.src.IntN(len(standing))
	j := w.src.IntN(len(standing) - 1)
	if j >= i {
		j++
	}
	standing[i].AtWarWith = standing[j].ID
	standing[j].AtWarWith = standing[i].ID
}

// applyMarketShift records an economic event's lingering effect on one kind,
// or on every kind for the all-kinds sentinel.
func (w *WorldState) applyMarketShift(modifier float64, affectedKind int) {
	if affectedKind < 0 {
		for _, k := range allKinds {
			w.MarketShifts[k] = modifier
		}
		return
	}
	w.MarketShifts[invest.Kind(affectedKind)] = modifier
}

var allKinds = []invest.Kind{
	invest.KindProperty, invest.KindTrade, invest.KindFinancial,
	invest.KindMagical, invest.KindPolitical, invest.KindDark,
}

// relaxMarketShifts moves every lingering shift halfway back to neutral and
// drops it once the residue is negligible.
func (w *WorldState) relaxMarketShifts() {
	for k, v := range w.MarketShifts {
		v = 1 + (v-1)*0.5
		if v > 0.995 && v < 1.005 {
			delete(w.MarketShifts, k)
			continue
		}
		w.MarketShifts[k] = v
	}
}
