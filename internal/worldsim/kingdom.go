package worldsim

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/slumber/internal/entropy"
)

// Kingdom attribute bounds and tick tuning.
const (
	defaultAttribute = 50

	collapseThreshold  = 10
	collapseBaseChance = 0.05

	yearlyDrift = 2
)

// Kingdom is one polity in the wider world. Attributes sit in [0, 100] and
// drift each year; low stability risks collapse.
type Kingdom struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Stability  int `json:"stability"`
	Prosperity int `json:"prosperity"`
	Military   int `json:"military"`
	Culture    int `json:"culture"`
	Tolerance  int `json:"tolerance"`

	AtWarWith    string `json:"at_war_with,omitempty"`
	Collapsed    bool   `json:"collapsed,omitempty"`
	DynastyYears uint   `json:"dynasty_years"`

	// Fraction of the crown's debt held by the player, in [0, 1].
	PlayerDebtFraction float64 `json:"player_debt_fraction"`
}

// NewKingdom creates a kingdom with all attributes at the midline.
func NewKingdom(id, name string) *Kingdom {
	return &Kingdom{
		ID:         id,
		Name:       name,
		Stability:  defaultAttribute,
		Prosperity: defaultAttribute,
		Military:   defaultAttribute,
		Culture:    defaultAttribute,
		Tolerance:  defaultAttribute,
	}
}

func clampAttr(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// TickYear drifts the kingdom's attributes one year. Stability and
// prosperity feed each other, war strains both, and a slow simplex swell
// indexed by kingdom gives each realm its own long economic seasons.
func (k *Kingdom) TickYear(src *entropy.Source, noise opensimplex.Noise, index int, year uint64) {
	if k.Collapsed {
		return
	}

	k.DynastyYears++

	drift := src.IntRange(-yearlyDrift, yearlyDrift)
	if k.Prosperity > 60 {
		drift++
	}
	if k.Prosperity < 40 {
		drift--
	}
	if k.AtWarWith != "" {
		drift -= 2
	}
	k.Stability = clampAttr(k.Stability + drift)

	drift = src.IntRange(-yearlyDrift, yearlyDrift)
	if k.Stability > 60 {
		drift++
	}
	if k.Stability < 40 {
		drift--
	}
	if k.AtWarWith != "" {
		drift--
	}
	swell := noise.Eval2(float64(index)*17.0, float64(year)/30.0)
	if swell > 0.4 {
		drift++
	} else if swell < -0.4 {
		drift--
	}
	k.Prosperity = clampAttr(k.Prosperity + drift)

	drift = src.IntRange(-yearlyDrift/2, yearlyDrift/2)
	if k.AtWarWith != "" {
		drift += 2
	}
	k.Military = clampAttr(k.Military + drift)

	k.Culture = clampAttr(k.Culture + src.IntRange(-1, 1))
	k.Tolerance = clampAttr(k.Tolerance + src.IntRange(-1, 1))
}

// RollCollapse checks whether a destabilised kingdom falls this year.
// Chance rises from 5% at the threshold to 20% at zero stability.
func (k *Kingdom) RollCollapse(src *entropy.Source) bool {
	if k.Collapsed || k.Stability > collapseThreshold {
		return false
	}
	chance := collapseBaseChance +
		float64(collapseThreshold-k.Stability)/float64(collapseThreshold)*0.15
	if src.Chance(chance) {
		k.Collapsed = true
		k.AtWarWith = ""
		return true
	}
	return false
}
