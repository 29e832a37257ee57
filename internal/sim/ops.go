package sim

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/talgya/slumber/internal/achieve"
	"github.com/talgya/slumber/internal/agent"
	"github.com/talgya/slumber/internal/events"
	"github.com/talgya/slumber/internal/invest"
	"github.com/talgya/slumber/internal/money"
	"github.com/talgya/slumber/internal/worldsim"
)

// InvestmentSpec describes a purchase. Cost becomes the purchase price and
// the opening current value.
type InvestmentSpec struct {
	Name       string
	Kind       invest.Kind
	Risk       invest.RiskLevel
	Cost       money.Money
	BaseIncome money.Money
}

// PurchaseInvestment buys a new holding between slumbers. The first dark
// venture marks the lich's dark awakening.
func (w *WorldState) PurchaseInvestment(spec InvestmentSpec) (*invest.Investment, error) {
	if spec.Name == "" || spec.Cost.IsNegative() || spec.BaseIncome.IsNegative() {
		return nil, ErrInvalidInput
	}

	inv := &invest.Investment{
		ID:           w.mintID("inv"),
		Name:         spec.Name,
		Kind:         spec.Kind,
		Risk:         spec.Risk,
		BaseIncome:   spec.BaseIncome,
		CurrentValue: spec.Cost,
		PurchaseYear: w.World.CurrentYear,
	}
	if err := w.Portfolio.Purchase(inv, spec.Cost); err != nil {
		return nil, err
	}

	if spec.Kind == invest.KindDark {
		w.Tracker.OnDarkUnlock()
	}
	return inv, nil
}

// SellInvestment liquidates a holding at current value. Selling a dark
// venture counts as trading in souls.
func (w *WorldState) SellInvestment(id string) (money.Money, error) {
	inv, ok := w.Portfolio.Get(id)
	if !ok {
		return money.Zero(), ErrUnknownInvestment
	}

	for _, agentID := range inv.AssignedAgents {
		if a, found := w.Agent(agentID); found {
			a.UnassignInvestment(id)
		}
	}

	proceeds, err := w.Portfolio.Sell(id)
	if err != nil {
		return money.Zero(), err
	}
	if inv.Kind == invest.KindDark {
		w.Tracker.OnSoulTrade()
	}
	return proceeds, nil
}

// AssignAgent puts an agent in charge of an investment, wiring the reference
// on both sides.
func (w *WorldState) AssignAgent(agentID, investmentID string) error {
	a, ok := w.Agent(agentID)
	if !ok {
		return ErrUnknownAgent
	}
	inv, ok := w.Portfolio.Get(investmentID)
	if !ok {
		return ErrUnknownInvestment
	}
	a.AssignInvestment(investmentID)
	inv.AssignAgent(agentID)
	return nil
}

// UnassignAgent releases an agent from an investment.
func (w *WorldState) UnassignAgent(agentID, investmentID string) error {
	a, ok := w.Agent(agentID)
	if !ok {
		return ErrUnknownAgent
	}
	inv, ok := w.Portfolio.Get(investmentID)
	if !ok {
		return ErrUnknownInvestment
	}
	a.UnassignInvestment(investmentID)
	inv.UnassignAgent(agentID)
	return nil
}

// RecruitAgent has an existing servant bring in a new one. The sponsor must
// pass the recruitment gate; families and bound agents never sponsor.
func (w *WorldState) RecruitAgent(sponsorID, name string, kind agent.Kind) (*agent.Agent, error) {
	if name == "" {
		return nil, ErrInvalidInput
	}
	sponsor, ok := w.Agent(sponsorID)
	if !ok {
		return nil, ErrUnknownAgent
	}
	if !sponsor.CanRecruit() {
		return nil, ErrInvalidInput
	}

	id := w.mintID("agent")
	var recruit *agent.Agent
	switch kind {
	case agent.KindFamily:
		recruit = agent.NewFamily(id, name, w.World.CurrentYear)
	case agent.KindCult:
		recruit = agent.NewCult(id, name)
	case agent.KindBound:
		recruit = agent.NewBound(id, name)
	default:
		recruit = agent.New(id, name)
	}

	w.Agents = append(w.Agents, recruit)
	return recruit, nil
}

// ResolveEventChoice applies the deferred effects of one pending choice.
func (w *WorldState) ResolveEventChoice(eventID string, choiceIndex int) error {
	for _, e := range w.PendingEvents {
		if e.ID != eventID {
			continue
		}
		if e.Resolved {
			return ErrAlreadyResolved
		}
		if choiceIndex < 0 || choiceIndex >= len(e.Choices) {
			return ErrInvalidInput
		}
		for _, eff := range e.Choices[choiceIndex].Effects {
			w.applyEffect(eff)
		}
		e.Resolved = true
		return nil
	}
	return ErrUnknownEvent
}

// StartProject begins work on an available megaproject.
func (w *WorldState) StartProject(id string) error {
	p, ok := w.Project(id)
	if !ok {
		return ErrInvalidInput
	}
	return p.Start(w.PhylacteryLevel)
}

// PauseProject suspends a megaproject.
func (w *WorldState) PauseProject(id string) error {
	p, ok := w.Project(id)
	if !ok {
		return ErrInvalidInput
	}
	return p.Pause()
}

// ResumeProject continues a paused megaproject.
func (w *WorldState) ResumeProject(id string) error {
	p, ok := w.Project(id)
	if !ok {
		return ErrInvalidInput
	}
	return p.Resume()
}

// HideProject covers a discovered megaproject's tracks.
func (w *WorldState) HideProject(id string) error {
	p, ok := w.Project(id)
	if !ok {
		return ErrInvalidInput
	}
	return p.Hide()
}

// DestroyProject abandons a megaproject for good.
func (w *WorldState) DestroyProject(id string) error {
	p, ok := w.Project(id)
	if !ok {
		return ErrInvalidInput
	}
	return p.Destroy()
}

// Prestige ends the current existence: the hoard and the roster are given
// up, the ledger thins to the retained fraction, and the accumulated wealth
// and slumbered years condense into echoes.
func (w *WorldState) Prestige(retention float64) error {
	if retention < 0 || retention > 1 {
		return ErrInvalidInput
	}

	w.Echoes += w.echoReward()

	w.Ledger.ApplyRetention(retention, w.src)
	w.Portfolio = invest.NewPortfolio(money.New(StartingGold))
	w.Agents = nil
	w.Projects = defaultProjects()
	w.PendingEvents = nil
	w.MarketShifts = map[invest.Kind]float64{}
	w.World = worldsim.NewWorld(w.Seed)
	w.unlockProjects()

	w.Tracker.OnPrestige()
	return nil
}

// echoReward converts the hoard and the slumbered centuries into echoes:
// floor(log10(gold) * (1 + years/1000) / 10).
func (w *WorldState) echoReward() uint64 {
	gold := w.Portfolio.TotalValue().Float64()
	if gold <= 1 {
		return 0
	}
	years := float64(w.Tracker.Stat(achieve.StatTotalYearsSlumbered))
	return uint64(math.Floor(math.Log10(gold) * (1 + years/1000) / 10))
}

// PendingChoices lists unresolved choice events awaiting the player.
func (w *WorldState) PendingChoices() []*events.Event {
	var out []*events.Event
	for _, e := range w.PendingEvents {
		if !e.Resolved {
			out = append(out, e)
		}
	}
	return out
}

// CompletionPercent is the unlocked share of all achievements, 0 to 100.
func (w *WorldState) CompletionPercent() float64 {
	total := len(w.Tracker.Achievements)
	if total == 0 {
		return 0
	}
	return float64(w.Tracker.UnlockedCount()) / float64(total) * 100
}

// mintID draws a fresh prefixed id from the entropy stream.
func (w *WorldState) mintID(prefix string) string {
	id, err := uuid.NewRandomFromReader(w.src)
	if err != nil {
		// The entropy source never fails a read.
		return prefix
	}
	return fmt.Sprintf("%s-%s", prefix, id)
}
