// Package events generates the economic, political, magical and personal
// happenings the lich sleeps through, and applies their effects.
package events

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/talgya/slumber/internal/entropy"
	"github.com/talgya/slumber/internal/money"
)

// ErrUnknownEvent is returned when an event id does not match any pending
// event.
var ErrUnknownEvent = errors.New("unknown event")

// ErrAlreadyResolved is returned when a choice event is resolved twice.
var ErrAlreadyResolved = errors.New("event already resolved")

// Kind classifies an event.
type Kind int

const (
	KindEconomic Kind = iota
	KindPolitical
	KindMagical
	KindPersonal
)

func (k Kind) String() string {
	switch k {
	case KindEconomic:
		return "economic"
	case KindPolitical:
		return "political"
	case KindMagical:
		return "magical"
	case KindPersonal:
		return "personal"
	default:
		return "unknown"
	}
}

// Severity scales an event's impact.
type Severity int

const (
	SeverityMinor Severity = iota
	SeverityModerate
	SeverityMajor
	SeverityCatastrophic
)

func (s Severity) String() string {
	switch s {
	case SeverityMinor:
		return "minor"
	case SeverityModerate:
		return "moderate"
	case SeverityMajor:
		return "major"
	case SeverityCatastrophic:
		return "catastrophic"
	default:
		return "unknown"
	}
}

// Effect is one deterministic state mutation carried by an event or choice.
// Zero-valued fields mean no change; MarketModifier zero means untouched.
type Effect struct {
	GoldDelta      money.Money `json:"gold_delta,omitempty"`
	LoyaltyDelta   int         `json:"loyalty_delta,omitempty"`
	ExposureDelta  int         `json:"exposure_delta,omitempty"`
	StabilityDelta int         `json:"stability_delta,omitempty"`

	// Market effects. AffectedInvestKind is an invest.Kind value, or -1
	// for all kinds.
	MarketModifier     float64 `json:"market_modifier,omitempty"`
	AffectedInvestKind int     `json:"affected_invest_kind,omitempty"`

	CausesWar  bool `json:"causes_war,omitempty"`
	IsBetrayal bool `json:"is_betrayal,omitempty"`
	IsDeath    bool `json:"is_death,omitempty"`
}

// Choice is one way the player can resolve a deferred event.
type Choice struct {
	Text    string   `json:"text"`
	Effects []Effect `json:"effects"`
}

// Event is one happening. Events without choices apply their effects when
// generated; events with choices wait for the player to wake and decide.
type Event struct {
	ID          string   `json:"id"`
	Year        uint64   `json:"year"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Kind        Kind     `json:"kind"`
	Severity    Severity `json:"severity"`

	Effects  []Effect `json:"effects,omitempty"`
	Choices  []Choice `json:"choices,omitempty"`
	Resolved bool     `json:"resolved,omitempty"`
}

// HasChoices reports whether the event defers its effects to the player.
func (e *Event) HasChoices() bool {
	return len(e.Choices) > 0
}

// Synthesize builds an event outside the template tables for happenings the
// driver reports directly, such as deaths, betrayals and successions.
func Synthesize(src *entropy.Source, year uint64, name, description string, kind Kind, severity Severity) *Event {
	return &Event{
		ID:          mintID(src, "life"),
		Year:        year,
		Name:        name,
		Description: description,
		Kind:        kind,
		Severity:    severity,
	}
}

// mintID builds a deterministic event id from the shared random stream.
func mintID(src *entropy.Source, prefix string) string {
	id, err := uuid.NewRandomFromReader(src)
	if err != nil {
		// The entropy source never fails a read.
		return prefix
	}
	return fmt.Sprintf("%s-%s", prefix, id)
}
