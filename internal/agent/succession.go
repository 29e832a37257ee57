package agent

import (
	"fmt"

	"github.com/talgya/slumber/internal/entropy"
	"github.com/talgya/slumber/internal/trait"
)

// newTraitChance is the base probability a fresh trait emerges in a
// bloodline at succession, before the per-generation bonus.
const newTraitChance = 0.05

// advanceGeneration replaces a dead family head with the next-generation
// heir. Bloodline traits are re-rolled for inheritance, head-only traits may
// join the bloodline, and occasionally a new trait emerges. Returns the id
// of the emerged trait, or "".
func (a *Agent) advanceGeneration(src *entropy.Source) string {
	a.Generation++

	inherited := a.rollInheritance(src)

	a.Traits = a.Traits[:0]
	for _, t := range inherited {
		if len(a.Traits) >= MaxTraits {
			break
		}
		a.Traits = append(a.Traits, t)
	}

	emerged := ""
	if t, ok := a.rollNewTrait(src); ok {
		a.addBloodlineTrait(t)
		if len(a.Traits) < MaxTraits {
			a.Traits = append(a.Traits, t)
		}
		emerged = t.ID
	}

	// Longevity runs in the blood: the heir keeps the family's max age.
	a.Age = uint(src.IntRange(18, 24))

	branch := "Junior"
	if src.IntN(2) == 1 {
		branch = "Senior"
	}
	a.Name = fmt.Sprintf("%s %s (Gen %d)", a.FamilyName, branch, a.Generation)

	// A new head may be less devoted than the old one.
	a.SetLoyalty(a.Loyalty - src.IntN(10))

	return emerged
}

// rollInheritance samples which traits pass to the next generation. Each
// bloodline trait rolls independently; conflicting later winners are skipped
// so the first trait kept wins its conflict group. Traits held only by the
// dying head have a 50% chance to join the bloodline and carry over.
func (a *Agent) rollInheritance(src *entropy.Source) []trait.Trait {
	var inherited []trait.Trait

	for _, t := range a.BloodlineTraits {
		if !t.RollInheritance(src, a.Generation) {
			continue
		}
		conflicts := false
		for _, kept := range inherited {
			if t.ConflictsWith(kept) {
				conflicts = true
				break
			}
		}
		if !conflicts && len(inherited) < MaxTraits {
			inherited = append(inherited, t)
		}
	}

	for _, t := range a.Traits {
		if a.hasBloodlineTrait(t.ID) {
			continue
		}
		if src.IntN(100) < 50 {
			a.addBloodlineTrait(t)
			if len(inherited) < MaxTraits {
				inherited = append(inherited, t)
			}
		}
	}

	return inherited
}

// rollNewTrait occasionally produces a brand-new bloodline trait. Emergence
// chance starts at 5% and grows 1% per generation, capped at 15%. Up to five
// attempts are made to find one that neither duplicates nor conflicts with
// the bloodline.
func (a *Agent) rollNewTrait(src *entropy.Source) (trait.Trait, bool) {
	chance := newTraitChance + float64(a.Generation)*0.01
	if chance > 0.15 {
		chance = 0.15
	}
	if !src.Chance(chance) {
		return trait.Trait{}, false
	}

	for attempts := 0; attempts < 5; attempts++ {
		candidate := trait.Random(src)
		if a.hasBloodlineTrait(candidate.ID) {
			continue
		}
		conflicts := false
		for _, existing := range a.BloodlineTraits {
			if candidate.ConflictsWith(existing) {
				conflicts = true
				break
			}
		}
		if !conflicts {
			return candidate, true
		}
	}
	return trait.Trait{}, false
}

func (a *Agent) hasBloodlineTrait(id string) bool {
	for _, t := range a.BloodlineTraits {
		if t.ID == id {
			return true
		}
	}
	return false
}

func (a *Agent) addBloodlineTrait(t trait.Trait) {
	if a.hasBloodlineTrait(t.ID) {
		return
	}
	a.BloodlineTraits = append(a.BloodlineTraits, t)
}

// replaceFigurehead installs a new mouthpiece for a cult. The organisation
// keeps its traits and its name; only the mortal at the front changes.
func (a *Agent) replaceFigurehead(src *entropy.Source) {
	a.Generation++
	a.Age = uint(src.IntRange(25, 40))
	a.MaxAge = uint(src.IntRange(60, 84))
	a.SetLoyalty(a.Loyalty - src.IntN(5))
}
