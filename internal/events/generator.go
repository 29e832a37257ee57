package events

import (
	"github.com/talgya/slumber/internal/entropy"
	"github.com/talgya/slumber/internal/invest"
	"github.com/talgya/slumber/internal/worldsim"
)

// Default roll chances per cadence.
const (
	defaultYearlyChance = 0.3
	defaultDecadeChance = 0.7
	defaultEraChance    = 0.9
)

// Generator produces events at yearly, decade and era cadence. All rolls go
// through the shared entropy source.
type Generator struct {
	YearlyChance float64 `json:"yearly_chance"`
	DecadeChance float64 `json:"decade_chance"`
	EraChance    float64 `json:"era_chance"`
}

// NewGenerator returns a generator with the default chances.
func NewGenerator() *Generator {
	return &Generator{
		YearlyChance: defaultYearlyChance,
		DecadeChance: defaultDecadeChance,
		EraChance:    defaultEraChance,
	}
}

// pickKind selects an event kind. Under heavy exposure the world pays more
// attention to the supernatural and the personal.
func pickKind(src *entropy.Source, level worldsim.ExposureLevel) Kind {
	if level >= worldsim.ExposureSuspicion {
		switch src.IntN(6) {
		case 0:
			return KindEconomic
		case 1:
			return KindPolitical
		case 2, 3:
			return KindMagical
		default:
			return KindPersonal
		}
	}
	switch src.IntN(4) {
	case 0:
		return KindEconomic
	case 1:
		return KindPolitical
	case 2:
		return KindMagical
	default:
		return KindPersonal
	}
}

// GenerateYearly rolls for this year's event. Yearly events are usually
// minor, occasionally moderate.
func (g *Generator) GenerateYearly(src *entropy.Source, year uint64, level worldsim.ExposureLevel) []*Event {
	if !src.Chance(g.YearlyChance) {
		return nil
	}

	kind := pickKind(src, level)
	severity := SeverityModerate
	if src.Chance(0.75) {
		severity = SeverityMinor
	}

	return []*Event{g.create(src, year, kind, severity)}
}

// GenerateDecade rolls for decade events: one or two, usually moderate,
// sometimes major.
func (g *Generator) GenerateDecade(src *entropy.Source, year uint64, level worldsim.ExposureLevel) []*Event {
	if !src.Chance(g.DecadeChance) {
		return nil
	}

	count := 1
	if src.Chance(0.3) {
		count = 2
	}

	out := make([]*Event, 0, count)
	for i := 0; i < count; i++ {
		severity := SeverityMajor
		if src.Chance(0.6) {
			severity = SeverityModerate
		}
		out = append(out, g.create(src, year, pickKind(src, level), severity))
	}
	return out
}

// GenerateEra rolls for the once-a-century world-shaking event.
func (g *Generator) GenerateEra(src *entropy.Source, year uint64) []*Event {
	if !src.Chance(g.EraChance) {
		return nil
	}

	severity := SeverityCatastrophic
	if src.Chance(0.7) {
		severity = SeverityMajor
	}

	switch src.IntN(3) {
	case 0:
		// Political upheaval with economic fallout.
		return []*Event{
			g.create(src, year, KindPolitical, severity),
			g.create(src, year, KindEconomic, SeverityModerate),
		}
	case 1:
		return []*Event{g.create(src, year, KindMagical, severity)}
	default:
		return []*Event{g.create(src, year, KindEconomic, severity)}
	}
}

// create instantiates an event of the given kind and severity from its
// template table.
func (g *Generator) create(src *entropy.Source, year uint64, kind Kind, severity Severity) *Event {
	switch kind {
	case KindEconomic:
		table := economicTable(severity)
		tmpl := table[src.IntN(len(table))]
		return &Event{
			ID:          mintID(src, "econ"),
			Year:        year,
			Name:        tmpl.name,
			Description: tmpl.description,
			Kind:        kind,
			Severity:    severity,
			Effects: []Effect{{
				MarketModifier:     tmpl.marketModifier,
				AffectedInvestKind: tmpl.affectedKind,
			}},
		}

	case KindPolitical:
		table := politicalTable(severity)
		tmpl := table[src.IntN(len(table))]
		return &Event{
			ID:          mintID(src, "poli"),
			Year:        year,
			Name:        tmpl.name,
			Description: tmpl.description,
			Kind:        kind,
			Severity:    severity,
			Effects: []Effect{{
				StabilityDelta: tmpl.stabilityImpact,
				CausesWar:      tmpl.causesWar,
			}},
		}

	case KindMagical:
		table := magicalTable(severity)
		tmpl := table[src.IntN(len(table))]
		affected := allInvestKinds
		if tmpl.affectsDark {
			affected = int(invest.KindDark)
		}
		return &Event{
			ID:          mintID(src, "magi"),
			Year:        year,
			Name:        tmpl.name,
			Description: tmpl.description,
			Kind:        kind,
			Severity:    severity,
			Effects: []Effect{{
				ExposureDelta:      tmpl.exposureImpact,
				AffectedInvestKind: affected,
			}},
		}

	default:
		table := personalTable(severity)
		tmpl := table[src.IntN(len(table))]
		return &Event{
			ID:          mintID(src, "pers"),
			Year:        year,
			Name:        tmpl.name,
			Description: tmpl.description,
			Kind:        kind,
			Severity:    severity,
			Effects: []Effect{{
				IsBetrayal: tmpl.isBetrayal,
				IsDeath:    tmpl.isDeath,
			}},
			Choices: tmpl.choices,
		}
	}
}
