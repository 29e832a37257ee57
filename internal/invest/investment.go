// Package invest models the lich's holdings: individual investments with
// per-year income accrual and the portfolio that owns them.
package invest

import (
	"github.com/talgya/slumber/internal/entropy"
	"github.com/talgya/slumber/internal/money"
)

// Kind classifies an investment. Kinds differ in income variance and in how
// much attention they attract.
type Kind int

const (
	KindProperty Kind = iota
	KindTrade
	KindFinancial
	KindMagical
	KindPolitical
	KindDark
)

func (k Kind) String() string {
	switch k {
	case KindProperty:
		return "property"
	case KindTrade:
		return "trade"
	case KindFinancial:
		return "financial"
	case KindMagical:
		return "magical"
	case KindPolitical:
		return "political"
	case KindDark:
		return "dark"
	default:
		return "unknown"
	}
}

// RiskLevel sets the base return rate and the exposure multiplier.
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
	RiskExtreme
)

// ReturnRate is the annual compound growth rate for a risk level.
func (r RiskLevel) ReturnRate() float64 {
	switch r {
	case RiskLow:
		return 0.03
	case RiskMedium:
		return 0.06
	case RiskHigh:
		return 0.10
	case RiskExtreme:
		return 0.15
	default:
		return 0.05
	}
}

// VarianceRange returns the bounds of the yearly income multiplier for a
// kind. Property is the steadiest; trade and dark ventures swing hardest.
func (k Kind) VarianceRange() (lo, hi float64) {
	switch k {
	case KindProperty:
		return 0.95, 1.05
	case KindFinancial:
		return 0.90, 1.10
	case KindPolitical:
		return 0.90, 1.15
	case KindMagical:
		return 0.85, 1.25
	case KindTrade:
		return 0.80, 1.30
	case KindDark:
		return 0.75, 1.40
	default:
		return 1.0, 1.0
	}
}

// Investment is one asset in the portfolio. Assigned agents are referenced
// by id; the agent roster owns them.
type Investment struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Kind Kind      `json:"kind"`
	Risk RiskLevel `json:"risk_level"`

	BaseIncome    money.Money `json:"base_income"`
	CurrentValue  money.Money `json:"current_value"`
	PurchasePrice money.Money `json:"purchase_price"`

	AssignedAgents []string `json:"assigned_agents,omitempty"`

	PurchaseYear uint64 `json:"purchase_year"`
	YearsHeld    uint   `json:"years_held"`
}

// AssignAgent records an agent assignment by id. Duplicates are ignored.
func (inv *Investment) AssignAgent(agentID string) {
	for _, existing := range inv.AssignedAgents {
		if existing == agentID {
			return
		}
	}
	inv.AssignedAgents = append(inv.AssignedAgents, agentID)
}

// UnassignAgent drops an agent assignment. Unknown ids are ignored.
func (inv *Investment) UnassignAgent(agentID string) {
	for i, existing := range inv.AssignedAgents {
		if existing == agentID {
			inv.AssignedAgents = append(inv.AssignedAgents[:i], inv.AssignedAgents[i+1:]...)
			return
		}
	}
}

// RollVariance draws this year's income multiplier for the investment's kind.
func (inv *Investment) RollVariance(src *entropy.Source) float64 {
	lo, hi := inv.Kind.VarianceRange()
	return src.FloatRange(lo, hi)
}

// AccrueYear computes one year of income and growth. The income is
// base × variance × the product of assigned-agent modifiers × the market
// modifier from the economic cycle; the current value compounds at the
// risk-level return rate scaled by the same market modifier.
func (inv *Investment) AccrueYear(src *entropy.Source, agentModifiers []float64, marketModifier float64) money.Money {
	income := inv.BaseIncome.MulFloat(inv.RollVariance(src))
	for _, m := range agentModifiers {
		income = income.MulFloat(m)
	}
	income = income.MulFloat(marketModifier)

	inv.CurrentValue = inv.CurrentValue.MulFloat(1.0 + inv.Risk.ReturnRate()*marketModifier)
	inv.YearsHeld++

	return income
}

// ExposureContribution is how much attention the asset draws per year.
// Value sets the base tier, risk level multiplies it, and dark assets count
// double.
func (inv *Investment) ExposureContribution() uint {
	value := inv.CurrentValue.Float64()

	var base uint
	switch {
	case value < 1_000:
		base = 0
	case value < 10_000:
		base = 1
	case value < 100_000:
		base = 2
	case value < 1_000_000:
		base = 3
	default:
		base = 5
	}

	var mult uint
	switch inv.Risk {
	case RiskLow:
		mult = 1
	case RiskMedium:
		mult = 2
	case RiskHigh:
		mult = 3
	case RiskExtreme:
		mult = 5
	default:
		mult = 1
	}

	if inv.Kind == KindDark {
		mult *= 2
	}

	return base * mult
}
