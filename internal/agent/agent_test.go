package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/slumber/internal/entropy"
	"github.com/talgya/slumber/internal/trait"
)

func TestBetrayalChance(t *testing.T) {
	tests := []struct {
		name      string
		loyalty   int
		knowledge KnowledgeLevel
		want      int
	}{
		{"loyal and ignorant", 100, KnowledgeNone, 0},
		{"zero loyalty no knowledge stays at 10", 0, KnowledgeNone, 10},
		{"zero loyalty suspicious", 0, KnowledgeSuspicious, 20},
		{"zero loyalty aware capped", 0, KnowledgeAware, 25},
		{"zero loyalty full capped", 0, KnowledgeFull, 25},
		{"high loyalty full", 90, KnowledgeFull, 10},
		{"mid loyalty aware", 60, KnowledgeAware, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New("a1", "Test")
			a.Loyalty = tt.loyalty
			a.Knowledge = tt.knowledge
			assert.Equal(t, tt.want, a.BetrayalChance())
		})
	}
}

func TestExposureContribution(t *testing.T) {
	tests := []struct {
		cover     CoverStatus
		knowledge KnowledgeLevel
		want      uint
	}{
		{CoverSecure, KnowledgeFull, 0},
		{CoverSuspicious, KnowledgeNone, 2},
		{CoverSuspicious, KnowledgeSuspicious, 3}, // 2 * 1.5 truncates
		{CoverCompromised, KnowledgeSuspicious, 7},
		{CoverCompromised, KnowledgeAware, 10},
		{CoverExposed, KnowledgeFull, 30},
	}
	for _, tt := range tests {
		a := New("a1", "Test")
		a.Cover = tt.cover
		a.Knowledge = tt.knowledge
		assert.Equal(t, tt.want, a.ExposureContribution(),
			"cover=%s knowledge=%s", tt.cover, tt.knowledge)
	}
}

func TestIncomeModifier(t *testing.T) {
	a := New("a1", "Test")
	a.Competence = 0
	assert.InDelta(t, 0.5, a.IncomeModifier(), 1e-9)

	a.Competence = 100
	assert.InDelta(t, 1.5, a.IncomeModifier(), 1e-9)

	a.Competence = 50
	greedy, _ := trait.ByID("greedy")
	require.True(t, a.GrantTrait(greedy))
	assert.InDelta(t, 1.0*1.25, a.IncomeModifier(), 1e-9)
}

func TestGrantTrait(t *testing.T) {
	a := New("a1", "Test")
	a.Loyalty = 50

	devoted, _ := trait.ByID("loyal")
	require.True(t, a.GrantTrait(devoted))
	assert.Equal(t, 65, a.Loyalty)

	// Duplicate refused, no second loyalty bump.
	assert.False(t, a.GrantTrait(devoted))
	assert.Equal(t, 65, a.Loyalty)

	// Conflicting trait refused.
	greedy, _ := trait.ByID("greedy")
	assert.False(t, a.GrantTrait(greedy))
}

func TestCanRecruit(t *testing.T) {
	a := New("a1", "Test")
	assert.True(t, a.CanRecruit())

	a.Loyalty = 49
	assert.False(t, a.CanRecruit())

	a.Loyalty = 50
	a.Competence = 29
	assert.False(t, a.CanRecruit())

	a.Competence = 30
	a.Cover = CoverExposed
	assert.False(t, a.CanRecruit())

	f := NewFamily("f1", "Blackwood", 847)
	assert.False(t, f.CanRecruit())

	b := NewBound("b1", "Thrall")
	assert.False(t, b.CanRecruit())
}

func TestTickYearDeathIndividual(t *testing.T) {
	a := New("a1", "Test")
	a.Age = 69
	a.MaxAge = 70

	out := a.TickYear(entropy.NewSource(1))
	assert.True(t, out.Died)
	assert.False(t, out.Succeeded)
}

func TestTickYearLoyaltyNeverDecaysWithoutKnowledge(t *testing.T) {
	a := New("a1", "Test")
	a.Age = 0
	a.MaxAge = 10000
	a.Knowledge = KnowledgeNone
	src := entropy.NewSource(2)

	for i := 0; i < 500; i++ {
		a.TickYear(src)
	}
	assert.Equal(t, 50, a.Loyalty)
}

func TestBoundAgentSuppressesBetrayal(t *testing.T) {
	a := NewBound("b1", "Thrall")
	a.Loyalty = 0
	a.Knowledge = KnowledgeAware
	src := entropy.NewSource(3)

	for i := 0; i < 1000; i++ {
		assert.False(t, a.RollBetrayal(src))
	}
}

func TestBoundAgentTripleLifespan(t *testing.T) {
	a := NewBound("b1", "Thrall")
	assert.Equal(t, uint(210), a.MaxAge)
}

func TestFamilySuccession(t *testing.T) {
	f := NewFamily("f1", "Blackwood", 847)
	f.Age = 59
	f.MaxAge = 60
	f.Loyalty = 80

	// A certainty trait always survives succession.
	certain := trait.Trait{ID: "heirloom", Name: "Heirloom", InheritanceChance: 1.0}
	f.BloodlineTraits = append(f.BloodlineTraits, certain)

	out := f.TickYear(entropy.NewSource(7))
	require.True(t, out.Succeeded)
	assert.False(t, out.Died)
	assert.Equal(t, uint(2), f.Generation)
	assert.Equal(t, uint(2), out.NewGeneration)

	assert.True(t, f.HasTrait("heirloom"))
	assert.GreaterOrEqual(t, f.Age, uint(18))
	assert.LessOrEqual(t, f.Age, uint(24))
	assert.Equal(t, uint(60), f.MaxAge, "heirs keep the family lifespan")
	assert.Contains(t, f.Name, "Blackwood")
	assert.Contains(t, f.Name, "(Gen 2)")
	assert.LessOrEqual(t, f.Loyalty, 80)
	assert.GreaterOrEqual(t, f.Loyalty, 71)
}

func TestFamilySuccessionConflictFirstKeptWins(t *testing.T) {
	f := NewFamily("f1", "Blackwood", 847)
	first := trait.Trait{ID: "first", InheritanceChance: 1.0, Conflicts: []string{"second"}}
	second := trait.Trait{ID: "second", InheritanceChance: 1.0}
	f.BloodlineTraits = []trait.Trait{first, second}

	f.advanceGeneration(entropy.NewSource(4))

	assert.True(t, f.HasTrait("first"))
	assert.False(t, f.HasTrait("second"))
}

func TestCultSuccessionKeepsTraits(t *testing.T) {
	c := NewCult("c1", "Order of the Veil")
	c.Age = 69
	c.MaxAge = 70
	secretive, _ := trait.ByID("secretive")
	require.True(t, c.GrantTrait(secretive))

	out := c.TickYear(entropy.NewSource(5))
	require.True(t, out.Succeeded)
	assert.True(t, c.HasTrait("secretive"))
	assert.Equal(t, uint(2), c.Generation)
}

func TestAssignUnassignInvestment(t *testing.T) {
	a := New("a1", "Test")
	a.AssignInvestment("inv-1")
	a.AssignInvestment("inv-1")
	a.AssignInvestment("inv-2")
	assert.Equal(t, []string{"inv-1", "inv-2"}, a.AssignedInvestments)

	a.UnassignInvestment("inv-1")
	assert.Equal(t, []string{"inv-2"}, a.AssignedInvestments)

	a.UnassignInvestment("missing")
	assert.Equal(t, []string{"inv-2"}, a.AssignedInvestments)
}
