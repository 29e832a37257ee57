package agent

import "github.com/talgya/slumber/internal/entropy"

// TickOutcome reports what happened to an agent during one simulated year.
type TickOutcome struct {
	Died     bool
	Betrayed bool

	LoyaltyChanged bool
	LoyaltyOld     int
	LoyaltyNew     int

	// Family and cult continuity.
	Succeeded     bool
	NewGeneration uint
	EmergedTrait  string
}

// TickYear advances the agent by one simulated year. Sub-steps run in a
// fixed order: aging and death first, then loyalty decay, then the betrayal
// roll. A dead or betrayed agent takes no further steps that year.
func (a *Agent) TickYear(src *entropy.Source) TickOutcome {
	var out TickOutcome

	a.Age++
	if a.Age >= a.MaxAge {
		switch a.Kind {
		case KindFamily:
			out.Succeeded = true
			out.EmergedTrait = a.advanceGeneration(src)
			out.NewGeneration = a.Generation
		case KindCult:
			out.Succeeded = true
			a.replaceFigurehead(src)
			out.NewGeneration = a.Generation
		default:
			out.Died = true
		}
		return out
	}

	old := a.Loyalty
	a.decayLoyalty(src)
	if a.Loyalty != old {
		out.LoyaltyChanged = true
		out.LoyaltyOld = old
		out.LoyaltyNew = a.Loyalty
	}

	if a.RollBetrayal(src) {
		out.Betrayed = true
	}
	return out
}

// decayLoyalty runs the per-year Bernoulli decay trial. Agents who know
// nothing never waver; the more they learn, the likelier the drift.
func (a *Agent) decayLoyalty(src *entropy.Source) {
	if a.Knowledge < KnowledgeSuspicious {
		return
	}

	var chance int
	switch a.Knowledge {
	case KnowledgeSuspicious:
		chance = 10
	case KnowledgeAware:
		chance = 20
	case KnowledgeFull:
		chance = 30
	}

	if src.IntN(100) < chance {
		a.SetLoyalty(a.Loyalty - 1)
	}
}
