// Package trait defines bloodline traits carried by agents: heritable
// modifiers to income, loyalty and discovery rolls.
package trait

import "github.com/talgya/slumber/internal/entropy"

// Trait is a heritable agent quality. Income and discovery modifiers are
// queried at calculation time, never stored on the agent; only the loyalty
// modifier is applied once, when the trait is granted.
type Trait struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	InheritanceChance float64 `json:"inheritance_chance"`
	IncomeModifier    float64 `json:"income_modifier"`
	LoyaltyModifier   int     `json:"loyalty_modifier"`
	DiscoveryModifier float64 `json:"discovery_modifier"`

	Conflicts []string `json:"conflicts,omitempty"`
}

// ConflictsWith reports whether the two traits are mutually exclusive. The
// check is symmetric: a conflict declared on either side counts.
func (t Trait) ConflictsWith(o Trait) bool {
	return t.conflictsWithID(o.ID) || o.conflictsWithID(t.ID)
}

func (t Trait) conflictsWithID(id string) bool {
	for _, c := range t.Conflicts {
		if c == id {
			return true
		}
	}
	return false
}

// RollInheritance reports whether a successor of the given generation
// inherits the trait. The chance grows 2% per generation as the trait
// establishes itself in the bloodline, capped at 95%. A base chance of 1
// marks a fixed bloodline trait and always passes; the draw is still
// consumed to keep the stream position independent of trait values.
func (t Trait) RollInheritance(src *entropy.Source, generation uint) bool {
	effective := t.InheritanceChance + float64(generation)*0.02
	if effective > 0.95 {
		effective = 0.95
	}
	if t.InheritanceChance >= 1.0 {
		effective = 1.0
	}
	return src.Chance(effective)
}

// Builtin returns the pool of traits that can emerge in bloodlines, in
// declaration order. Callers receive fresh copies.
func Builtin() []Trait {
	return []Trait{
		{ID: "shrewd", Name: "Shrewd", Description: "Natural business acumen", InheritanceChance: 0.6, IncomeModifier: 1.15, LoyaltyModifier: 0, DiscoveryModifier: 1.0},
		{ID: "loyal", Name: "Devoted", Description: "Exceptional loyalty", InheritanceChance: 0.5, IncomeModifier: 1.0, LoyaltyModifier: 15, DiscoveryModifier: 0.8, Conflicts: []string{"greedy"}},
		{ID: "cunning", Name: "Cunning", Description: "Skilled at deception", InheritanceChance: 0.4, IncomeModifier: 1.1, LoyaltyModifier: -5, DiscoveryModifier: 0.7},
		{ID: "ambitious", Name: "Ambitious", Description: "Driven to succeed", InheritanceChance: 0.5, IncomeModifier: 1.2, LoyaltyModifier: -10, DiscoveryModifier: 1.1, Conflicts: []string{"cautious"}},
		{ID: "cautious", Name: "Cautious", Description: "Avoids unnecessary risks", InheritanceChance: 0.6, IncomeModifier: 0.95, LoyaltyModifier: 5, DiscoveryModifier: 0.6},
		{ID: "charismatic", Name: "Charismatic", Description: "Natural leader", InheritanceChance: 0.4, IncomeModifier: 1.1, LoyaltyModifier: 5, DiscoveryModifier: 1.0, Conflicts: []string{"secretive"}},
		{ID: "secretive", Name: "Secretive", Description: "Keeps secrets well", InheritanceChance: 0.5, IncomeModifier: 1.0, LoyaltyModifier: 0, DiscoveryModifier: 0.5},
		{ID: "greedy", Name: "Greedy", Description: "Motivated by wealth", InheritanceChance: 0.4, IncomeModifier: 1.25, LoyaltyModifier: -15, DiscoveryModifier: 1.2},
	}
}

// Random picks one builtin trait uniformly.
func Random(src *entropy.Source) Trait {
	pool := Builtin()
	return pool[src.IntN(len(pool))]
}

// ByID looks a builtin trait up by id.
func ByID(id string) (Trait, bool) {
	for _, t := range Builtin() {
		if t.ID == id {
			return t, true
		}
	}
	return Trait{}, false
}
