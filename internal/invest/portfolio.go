package invest

import (
	"errors"

	"github.com/talgya/slumber/internal/money"
)

// ErrInsufficientFunds is returned when a purchase costs more gold than the
// portfolio holds.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrUnknownInvestment is returned when an id does not match any holding.
var ErrUnknownInvestment = errors.New("unknown investment")

// Snapshot is one point in the portfolio's value history.
type Snapshot struct {
	Year            uint64      `json:"year"`
	TotalValue      money.Money `json:"total_value"`
	Gold            money.Money `json:"gold"`
	InvestmentValue money.Money `json:"investment_value"`
}

// Portfolio owns the gold reserve and all investments. Iteration follows
// insertion order, which the deterministic replay depends on.
type Portfolio struct {
	Gold        money.Money   `json:"gold"`
	Investments []*Investment `json:"investments"`
	History     []Snapshot    `json:"history,omitempty"`

	index map[string]int
}

// NewPortfolio creates an empty portfolio with the given starting gold.
func NewPortfolio(gold money.Money) *Portfolio {
	return &Portfolio{
		Gold:  gold,
		index: map[string]int{},
	}
}

// Rebuild restores the id index after deserialization.
func (p *Portfolio) Rebuild() {
	p.index = make(map[string]int, len(p.Investments))
	for i, inv := range p.Investments {
		p.index[inv.ID] = i
	}
}

// Get looks an investment up by id.
func (p *Portfolio) Get(id string) (*Investment, bool) {
	if p.index == nil {
		p.Rebuild()
	}
	i, ok := p.index[id]
	if !ok {
		return nil, false
	}
	return p.Investments[i], true
}

// Purchase debits gold by cost and inserts the investment at the end of the
// iteration order.
func (p *Portfolio) Purchase(inv *Investment, cost money.Money) error {
	if p.Gold.Cmp(cost) < 0 {
		return ErrInsufficientFunds
	}
	if p.index == nil {
		p.Rebuild()
	}
	p.Gold = p.Gold.Sub(cost)
	inv.PurchasePrice = cost
	p.index[inv.ID] = len(p.Investments)
	p.Investments = append(p.Investments, inv)
	return nil
}

// Sell removes the investment and credits its current value to gold.
func (p *Portfolio) Sell(id string) (money.Money, error) {
	inv, ok := p.Get(id)
	if !ok {
		return money.Zero(), ErrUnknownInvestment
	}
	p.remove(id)
	p.Gold = p.Gold.Add(inv.CurrentValue)
	return inv.CurrentValue, nil
}

// Seize removes the investment without compensation.
func (p *Portfolio) Seize(id string) error {
	if _, ok := p.Get(id); !ok {
		return ErrUnknownInvestment
	}
	p.remove(id)
	return nil
}

func (p *Portfolio) remove(id string) {
	i := p.index[id]
	p.Investments = append(p.Investments[:i], p.Investments[i+1:]...)
	delete(p.index, id)
	for j := i; j < len(p.Investments); j++ {
		p.index[p.Investments[j].ID] = j
	}
}

// InvestmentValue sums the current value of all holdings.
func (p *Portfolio) InvestmentValue() money.Money {
	total := money.Zero()
	for _, inv := range p.Investments {
		total = total.Add(inv.CurrentValue)
	}
	return total
}

// TotalValue is gold plus the value of all holdings.
func (p *Portfolio) TotalValue() money.Money {
	return p.Gold.Add(p.InvestmentValue())
}

// RecordSnapshot appends a history entry for the given year. Recording the
// same year twice replaces the previous entry, so history years stay
// strictly increasing.
func (p *Portfolio) RecordSnapshot(year uint64) Snapshot {
	snap := Snapshot{
		Year:            year,
		Gold:            p.Gold,
		InvestmentValue: p.InvestmentValue(),
	}
	snap.TotalValue = snap.Gold.Add(snap.InvestmentValue)
	if n := len(p.History); n > 0 && p.History[n-1].Year == year {
		p.History[n-1] = snap
		return snap
	}
	p.History = append(p.History, snap)
	return snap
}

// MaxYearsHeld is the longest any current holding has been held.
func (p *Portfolio) MaxYearsHeld() uint {
	var max uint
	for _, inv := range p.Investments {
		if inv.YearsHeld > max {
			max = inv.YearsHeld
		}
	}
	return max
}
