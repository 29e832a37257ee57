// Package agent models the lich's mortal servants: aging, loyalty decay,
// betrayal rolls, trait inheritance and generational succession.
package agent

import (
	"fmt"

	"github.com/talgya/slumber/internal/entropy"
	"github.com/talgya/slumber/internal/trait"
)

// Kind selects the agent variant. Variants share one lifecycle contract and
// differ only in succession, betrayal and recruitment behaviour.
type Kind int

const (
	KindIndividual Kind = iota
	KindFamily
	KindCult
	KindBound
)

func (k Kind) String() string {
	switch k {
	case KindIndividual:
		return "individual"
	case KindFamily:
		return "family"
	case KindCult:
		return "cult"
	case KindBound:
		return "bound"
	default:
		return "unknown"
	}
}

// CoverStatus is how close the agent's public identity is to unraveling.
type CoverStatus int

const (
	CoverSecure CoverStatus = iota
	CoverSuspicious
	CoverCompromised
	CoverExposed
)

func (c CoverStatus) String() string {
	switch c {
	case CoverSecure:
		return "secure"
	case CoverSuspicious:
		return "suspicious"
	case CoverCompromised:
		return "compromised"
	case CoverExposed:
		return "exposed"
	default:
		return "unknown"
	}
}

// KnowledgeLevel is how much the agent understands about their employer.
type KnowledgeLevel int

const (
	KnowledgeNone KnowledgeLevel = iota
	KnowledgeSuspicious
	KnowledgeAware
	KnowledgeFull
)

func (k KnowledgeLevel) String() string {
	switch k {
	case KnowledgeNone:
		return "none"
	case KnowledgeSuspicious:
		return "suspicious"
	case KnowledgeAware:
		return "aware"
	case KnowledgeFull:
		return "full"
	default:
		return "unknown"
	}
}

// MaxTraits caps how many traits a single agent can carry.
const MaxTraits = 4

// Agent is one servant on the roster. Traits are owned by the agent;
// assigned investments are referenced by id only, the portfolio owns them.
type Agent struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind Kind   `json:"kind"`

	Age    uint `json:"age"`
	MaxAge uint `json:"max_age"`

	Loyalty    int `json:"loyalty"`
	Competence int `json:"competence"`

	Cover     CoverStatus    `json:"cover_status"`
	Knowledge KnowledgeLevel `json:"knowledge_level"`

	Traits              []trait.Trait `json:"traits,omitempty"`
	AssignedInvestments []string      `json:"assigned_investments,omitempty"`

	// Family variant state.
	FamilyName      string        `json:"family_name,omitempty"`
	Generation      uint          `json:"generation,omitempty"`
	FoundingYear    uint64        `json:"founding_year,omitempty"`
	BloodlineTraits []trait.Trait `json:"bloodline_traits,omitempty"`
}

// New creates an individual agent with the default statline.
func New(id, name string) *Agent {
	return &Agent{
		ID:         id,
		Name:       name,
		Kind:       KindIndividual,
		Age:        25,
		MaxAge:     70,
		Loyalty:    50,
		Competence: 50,
	}
}

// NewFamily creates a family agent with its founding-generation head.
func NewFamily(id, familyName string, foundingYear uint64) *Agent {
	a := New(id, fmt.Sprintf("Head of %s", familyName))
	a.Kind = KindFamily
	a.FamilyName = familyName
	a.Generation = 1
	a.FoundingYear = foundingYear
	return a
}

// NewCult creates a cult agent. Cults persist through figurehead turnover.
func NewCult(id, name string) *Agent {
	a := New(id, name)
	a.Kind = KindCult
	a.Generation = 1
	return a
}

// NewBound creates a magically bound agent. Binding triples the lifespan and
// suppresses betrayal below full knowledge.
func NewBound(id, name string) *Agent {
	a := New(id, name)
	a.Kind = KindBound
	a.MaxAge *= 3
	return a
}

// SetLoyalty clamps into [0, 100].
func (a *Agent) SetLoyalty(v int) {
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	a.Loyalty = v
}

// SetCompetence clamps into [0, 100].
func (a *Agent) SetCompetence(v int) {
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	a.Competence = v
}

// HasTrait reports whether the agent carries a trait with the given id.
func (a *Agent) HasTrait(id string) bool {
	for _, t := range a.Traits {
		if t.ID == id {
			return true
		}
	}
	return false
}

// GrantTrait adds a trait and applies its loyalty modifier once. Duplicate
// ids and conflicts with held traits are refused.
func (a *Agent) GrantTrait(t trait.Trait) bool {
	if len(a.Traits) >= MaxTraits || a.HasTrait(t.ID) {
		return false
	}
	for _, held := range a.Traits {
		if held.ConflictsWith(t) {
			return false
		}
	}
	a.Traits = append(a.Traits, t)
	if t.LoyaltyModifier != 0 {
		a.SetLoyalty(a.Loyalty + t.LoyaltyModifier)
	}
	return true
}

// AssignInvestment records an assignment by id. Duplicates are ignored.
func (a *Agent) AssignInvestment(id string) {
	for _, existing := range a.AssignedInvestments {
		if existing == id {
			return
		}
	}
	a.AssignedInvestments = append(a.AssignedInvestments, id)
}

// UnassignInvestment drops an assignment. Unknown ids are ignored.
func (a *Agent) UnassignInvestment(id string) {
	for i, existing := range a.AssignedInvestments {
		if existing == id {
			a.AssignedInvestments = append(a.AssignedInvestments[:i], a.AssignedInvestments[i+1:]...)
			return
		}
	}
}

// IncomeModifier is the multiplier this agent applies to assigned income.
// Competence maps 0..100 onto 0.5x..1.5x, then trait modifiers stack
// multiplicatively.
func (a *Agent) IncomeModifier() float64 {
	modifier := 0.5 + float64(a.Competence)/100.0
	for _, t := range a.Traits {
		modifier *= t.IncomeModifier
	}
	return modifier
}

// DiscoveryModifier is the product of trait discovery modifiers.
func (a *Agent) DiscoveryModifier() float64 {
	modifier := 1.0
	for _, t := range a.Traits {
		modifier *= t.DiscoveryModifier
	}
	return modifier
}

// ExposureContribution is how much this agent adds to world exposure each
// year. Cover status sets the base, knowledge level multiplies it. The 1.5x
// step truncates through integer conversion; the order is load-bearing for
// replay stability.
func (a *Agent) ExposureContribution() uint {
	var exposure uint
	switch a.Cover {
	case CoverSecure:
		exposure = 0
	case CoverSuspicious:
		exposure = 2
	case CoverCompromised:
		exposure = 5
	case CoverExposed:
		exposure = 10
	}
	switch a.Knowledge {
	case KnowledgeNone:
	case KnowledgeSuspicious:
		exposure = uint(float64(exposure) * 1.5)
	case KnowledgeAware:
		exposure *= 2
	case KnowledgeFull:
		exposure *= 3
	}
	return exposure
}

// BetrayalChance is the per-year betrayal probability in percent. Disloyalty
// sets the base, knowledge divides it down, and the result is capped at 25.
// The cap is an upper bound only: zero loyalty with no knowledge still yields
// 10, not 25.
func (a *Agent) BetrayalChance() int {
	chance := 100 - a.Loyalty
	switch a.Knowledge {
	case KnowledgeNone:
		chance /= 10
	case KnowledgeSuspicious:
		chance /= 5
	case KnowledgeAware:
		chance /= 2
	case KnowledgeFull:
	}
	if chance < 0 {
		chance = 0
	}
	if chance > 25 {
		chance = 25
	}
	return chance
}

// RollBetrayal draws once and reports whether the agent turns this year.
// Bound agents cannot betray until they reach full knowledge; the draw is
// still consumed to keep the stream position independent of agent kind.
func (a *Agent) RollBetrayal(src *entropy.Source) bool {
	roll := src.IntN(100)
	if a.Kind == KindBound && a.Knowledge < KnowledgeFull {
		return false
	}
	return roll < a.BetrayalChance()
}

// CanRecruit reports whether this agent can bring in new servants. Families
// grow by succession, bound agents by binding; neither recruits.
func (a *Agent) CanRecruit() bool {
	if a.Kind == KindFamily || a.Kind == KindBound {
		return false
	}
	return a.Loyalty >= 50 && a.Competence >= 30 && a.Cover != CoverExposed
}
