// Package worldsim carries the wider world the lich sleeps through: the
// calendar, the economic cycle, the kingdoms and the exposure meter.
package worldsim

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/slumber/internal/entropy"
)

// StartingYear is the calendar year a new game opens on.
const StartingYear = 847

// economicCycleLength is the full boom-and-bust period in years.
const economicCycleLength = 50

// World is the simulation context outside the player's own holdings.
type World struct {
	CurrentYear   uint64 `json:"current_year"`
	EconomicPhase uint   `json:"economic_phase"`

	Kingdoms []*Kingdom     `json:"kingdoms"`
	Exposure *ExposureMeter `json:"exposure"`

	noise opensimplex.Noise
}

// NewWorld creates the world at the starting year with a default set of
// kingdoms. The noise seed keeps prosperity swells replayable.
func NewWorld(noiseSeed int64) *World {
	w := &World{
		CurrentYear: StartingYear,
		Exposure:    NewExposureMeter(),
		Kingdoms: []*Kingdom{
			NewKingdom("valdris", "Kingdom of Valdris"),
			NewKingdom("meridia", "Meridian League"),
			NewKingdom("karthos", "Karthos Dominion"),
		},
		noise: opensimplex.New(noiseSeed),
	}
	w.EconomicPhase = phaseForYear(w.CurrentYear)
	return w
}

// Rebuild restores unserialized derived state after a load.
func (w *World) Rebuild(noiseSeed int64) {
	w.noise = opensimplex.New(noiseSeed)
	w.EconomicPhase = phaseForYear(w.CurrentYear)
	if w.Exposure == nil {
		w.Exposure = NewExposureMeter()
	}
}

func phaseForYear(year uint64) uint {
	return uint((year / (economicCycleLength / 4)) % 4)
}

// TickYear advances the calendar, the economic cycle, every kingdom, and
// the exposure decay by one year.
func (w *World) TickYear(src *entropy.Source) {
	w.CurrentYear++
	w.EconomicPhase = phaseForYear(w.CurrentYear)

	for i, k := range w.Kingdoms {
		k.TickYear(src, w.noise, i, w.CurrentYear)
		k.RollCollapse(src)
	}

	w.Exposure.Decay()
}

// GrowthRate is the market modifier for the current economic phase:
// expansion, plateau, contraction, recovery.
func (w *World) GrowthRate() float64 {
	switch w.EconomicPhase {
	case 0:
		return 1.03
	case 1:
		return 1.01
	case 2:
		return 0.98
	default:
		return 0.99
	}
}

// Kingdom looks a kingdom up by id.
func (w *World) Kingdom(id string) (*Kingdom, bool) {
	for _, k := range w.Kingdoms {
		if k.ID == id {
			return k, true
		}
	}
	return nil, false
}

// MaxPlayerDebtFraction is the largest debt share the player holds in any
// standing kingdom. This feeds the hostile-takeover goal.
func (w *World) MaxPlayerDebtFraction() float64 {
	var max float64
	for _, k := range w.Kingdoms {
		if !k.Collapsed && k.PlayerDebtFraction > max {
			max = k.PlayerDebtFraction
		}
	}
	return max
}
