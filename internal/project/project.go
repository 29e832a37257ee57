// Package project implements the multi-century megaproject state machine:
// phased progression, decade discovery rolls and cached phase effects.
package project

import (
	"errors"

	"github.com/talgya/slumber/internal/entropy"
	"github.com/talgya/slumber/internal/money"
)

// ErrStateMachineViolation is returned for transitions the current state
// does not permit.
var ErrStateMachineViolation = errors.New("megaproject state machine violation")

// State of a megaproject.
type State int

const (
	StateLocked State = iota
	StateAvailable
	StateActive
	StatePaused
	StateDiscovered
	StateDestroyed
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateLocked:
		return "locked"
	case StateAvailable:
		return "available"
	case StateActive:
		return "active"
	case StatePaused:
		return "paused"
	case StateDiscovered:
		return "discovered"
	case StateDestroyed:
		return "destroyed"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Effect types a completed phase can grant.
const (
	EffectPropertyIncomeBonus = "property_income_bonus"
	EffectAgentTravel         = "agent_travel"
	EffectImmuneSeizure       = "property_immune_seizure"
)

// Phase is one stage of a megaproject. EffectType may be empty for phases
// that grant nothing on completion.
type Phase struct {
	Name        string  `json:"name"`
	Years       uint    `json:"years"`
	EffectType  string  `json:"effect_type,omitempty"`
	EffectValue float64 `json:"effect_value,omitempty"`
}

// Effects is the cached total of all completed-phase grants.
type Effects struct {
	PropertyIncomeBonus float64 `json:"property_income_bonus"`
	AgentTravel         bool    `json:"agent_travel"`
	ImmuneSeizure       bool    `json:"property_immune_seizure"`
}

// Megaproject is a centuries-long undertaking gated by phylactery level.
type Megaproject struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	CostPerYear            money.Money `json:"cost_per_year"`
	UnlockLevel            uint        `json:"unlock_level"`
	DiscoveryRiskPerDecade int         `json:"discovery_risk_per_decade"`

	Phases []Phase `json:"phases"`
	State  State   `json:"state"`

	YearsInvested       uint `json:"years_invested"`
	CurrentPhaseIndex   int  `json:"current_phase_index"`
	YearsInCurrentPhase uint `json:"years_in_current_phase"`

	Effects Effects `json:"effects"`
}

// New creates a megaproject in the Locked state.
func New(id, name string, costPerYear money.Money, unlockLevel uint, risk int, phases []Phase) *Megaproject {
	return &Megaproject{
		ID:                     id,
		Name:                   name,
		CostPerYear:            costPerYear,
		UnlockLevel:            unlockLevel,
		DiscoveryRiskPerDecade: risk,
		Phases:                 phases,
		State:                  StateLocked,
	}
}

// Unlock moves Locked to Available once the phylactery qualifies.
func (m *Megaproject) Unlock(phylacteryLevel uint) bool {
	if m.State != StateLocked || phylacteryLevel < m.UnlockLevel {
		return false
	}
	m.State = StateAvailable
	return true
}

// Start begins work. Requires Available and a qualifying phylactery level.
func (m *Megaproject) Start(phylacteryLevel uint) error {
	if m.State != StateAvailable || phylacteryLevel < m.UnlockLevel {
		return ErrStateMachineViolation
	}
	m.State = StateActive
	return nil
}

// Pause suspends an Active or Discovered project.
func (m *Megaproject) Pause() error {
	if m.State != StateActive && m.State != StateDiscovered {
		return ErrStateMachineViolation
	}
	m.State = StatePaused
	return nil
}

// Resume continues a Paused project.
func (m *Megaproject) Resume() error {
	if m.State != StatePaused {
		return ErrStateMachineViolation
	}
	m.State = StateActive
	return nil
}

// Hide covers the project's tracks, returning Discovered to Active.
func (m *Megaproject) Hide() error {
	if m.State != StateDiscovered {
		return ErrStateMachineViolation
	}
	m.State = StateActive
	return nil
}

// Destroy is terminal from any non-terminal state.
func (m *Megaproject) Destroy() error {
	if m.State == StateDestroyed || m.State == StateComplete {
		return ErrStateMachineViolation
	}
	m.State = StateDestroyed
	return nil
}

// PhaseCompletion reports one finished phase from AdvanceYears.
type PhaseCompletion struct {
	Index int
	Phase Phase
}

// AdvanceYears consumes n years of work while Active. Years spill across
// phase boundaries; every completed phase is reported and its effects join
// the cache. Reaching the end of the last phase completes the project.
func (m *Megaproject) AdvanceYears(n uint) ([]PhaseCompletion, error) {
	if m.State != StateActive {
		return nil, ErrStateMachineViolation
	}

	var completed []PhaseCompletion
	for n > 0 && m.CurrentPhaseIndex < len(m.Phases) {
		phase := m.Phases[m.CurrentPhaseIndex]
		remaining := phase.Years - m.YearsInCurrentPhase

		step := n
		if step > remaining {
			step = remaining
		}
		m.YearsInCurrentPhase += step
		m.YearsInvested += step
		n -= step

		if m.YearsInCurrentPhase >= phase.Years {
			completed = append(completed, PhaseCompletion{Index: m.CurrentPhaseIndex, Phase: phase})
			m.CurrentPhaseIndex++
			m.YearsInCurrentPhase = 0
			m.recomputeEffects()
		}
	}

	if m.CurrentPhaseIndex >= len(m.Phases) {
		m.State = StateComplete
	}
	return completed, nil
}

// RollDiscovery runs the once-per-decade exposure check while Active.
// Reports whether the project was just discovered.
func (m *Megaproject) RollDiscovery(src *entropy.Source) bool {
	if m.State != StateActive {
		return false
	}
	if src.IntN(100) < m.DiscoveryRiskPerDecade {
		m.State = StateDiscovered
		return true
	}
	return false
}

// recomputeEffects rebuilds the cache from completed phases only.
func (m *Megaproject) recomputeEffects() {
	m.Effects = Effects{}
	for i := 0; i < m.CurrentPhaseIndex && i < len(m.Phases); i++ {
		switch m.Phases[i].EffectType {
		case EffectPropertyIncomeBonus:
			m.Effects.PropertyIncomeBonus += m.Phases[i].EffectValue
		case EffectAgentTravel:
			m.Effects.AgentTravel = true
		case EffectImmuneSeizure:
			m.Effects.ImmuneSeizure = true
		}
	}
}

// Rebuild recomputes derived state after deserialization.
func (m *Megaproject) Rebuild() {
	m.recomputeEffects()
}

// TotalYears is the full duration of all phases.
func (m *Megaproject) TotalYears() uint {
	var total uint
	for _, p := range m.Phases {
		total += p.Years
	}
	return total
}

// CompletionFraction is progress through all phases in [0, 1].
func (m *Megaproject) CompletionFraction() float64 {
	total := m.TotalYears()
	if total == 0 {
		return 0
	}
	return float64(m.YearsInvested) / float64(total)
}
