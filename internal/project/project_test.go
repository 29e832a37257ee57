package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/slumber/internal/entropy"
	"github.com/talgya/slumber/internal/money"
)

func newTestProject(risk int) *Megaproject {
	return New("catacombs", "Endless Catacombs", money.New(100), 2, risk, []Phase{
		{Name: "Excavation", Years: 100},
		{Name: "Warding", Years: 100, EffectType: EffectPropertyIncomeBonus, EffectValue: 0.10},
	})
}

func TestUnlockAndStart(t *testing.T) {
	m := newTestProject(0)

	// Below the unlock level nothing moves.
	assert.False(t, m.Unlock(1))
	assert.ErrorIs(t, m.Start(5), ErrStateMachineViolation)

	require.True(t, m.Unlock(2))
	assert.Equal(t, StateAvailable, m.State)

	require.NoError(t, m.Start(2))
	assert.Equal(t, StateActive, m.State)

	// Starting twice is a violation.
	assert.ErrorIs(t, m.Start(2), ErrStateMachineViolation)
}

func TestPauseResume(t *testing.T) {
	m := newTestProject(0)
	m.Unlock(2)
	require.NoError(t, m.Start(2))

	require.NoError(t, m.Pause())
	assert.Equal(t, StatePaused, m.State)

	// Paused projects make no progress.
	_, err := m.AdvanceYears(10)
	assert.ErrorIs(t, err, ErrStateMachineViolation)

	require.NoError(t, m.Resume())
	assert.Equal(t, StateActive, m.State)

	assert.ErrorIs(t, m.Resume(), ErrStateMachineViolation)
}

func TestAdvanceYearsPhaseSpill(t *testing.T) {
	m := newTestProject(0)
	m.Unlock(2)
	require.NoError(t, m.Start(2))

	completed, err := m.AdvanceYears(150)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, 0, completed[0].Index)
	assert.Equal(t, "Excavation", completed[0].Phase.Name)

	assert.Equal(t, uint(150), m.YearsInvested)
	assert.Equal(t, 1, m.CurrentPhaseIndex)
	assert.Equal(t, uint(50), m.YearsInCurrentPhase)

	// First phase grants nothing.
	assert.Equal(t, 0.0, m.Effects.PropertyIncomeBonus)

	completed, err = m.AdvanceYears(50)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, StateComplete, m.State)
	assert.InDelta(t, 0.10, m.Effects.PropertyIncomeBonus, 1e-9)
}

func TestYearsInvestedInvariant(t *testing.T) {
	m := newTestProject(0)
	m.Unlock(2)
	require.NoError(t, m.Start(2))

	for i := 0; i < 130; i++ {
		_, err := m.AdvanceYears(1)
		require.NoError(t, err)

		var sum uint
		for j := 0; j < m.CurrentPhaseIndex; j++ {
			sum += m.Phases[j].Years
		}
		assert.Equal(t, sum+m.YearsInCurrentPhase, m.YearsInvested)
	}
}

func TestSinglePhaseOneYearCompletes(t *testing.T) {
	m := New("shrine", "Hidden Shrine", money.New(10), 0, 0, []Phase{
		{Name: "Consecration", Years: 1, EffectType: EffectAgentTravel},
	})
	m.Unlock(0)
	require.NoError(t, m.Start(0))

	completed, err := m.AdvanceYears(1)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, StateComplete, m.State)
	assert.True(t, m.Effects.AgentTravel)
}

func TestDiscoveryBlocksProgress(t *testing.T) {
	m := newTestProject(100)
	m.Unlock(2)
	require.NoError(t, m.Start(2))

	// Certain discovery at 100 risk.
	require.True(t, m.RollDiscovery(entropy.NewSource(1)))
	assert.Equal(t, StateDiscovered, m.State)

	_, err := m.AdvanceYears(1)
	assert.ErrorIs(t, err, ErrStateMachineViolation)

	require.NoError(t, m.Hide())
	assert.Equal(t, StateActive, m.State)

	_, err = m.AdvanceYears(1)
	assert.NoError(t, err)
}

func TestZeroRiskNeverDiscovered(t *testing.T) {
	m := newTestProject(0)
	m.Unlock(2)
	require.NoError(t, m.Start(2))

	src := entropy.NewSource(13)
	for i := 0; i < 100; i++ {
		assert.False(t, m.RollDiscovery(src))
	}
	assert.Equal(t, StateActive, m.State)
}

func TestDestroyIsTerminal(t *testing.T) {
	m := newTestProject(0)
	m.Unlock(2)
	require.NoError(t, m.Start(2))
	require.NoError(t, m.Destroy())
	assert.Equal(t, StateDestroyed, m.State)

	assert.ErrorIs(t, m.Destroy(), ErrStateMachineViolation)
	_, err := m.AdvanceYears(1)
	assert.ErrorIs(t, err, ErrStateMachineViolation)

	done := newTestProject(0)
	done.Unlock(2)
	require.NoError(t, done.Start(2))
	_, err = done.AdvanceYears(200)
	require.NoError(t, err)
	require.Equal(t, StateComplete, done.State)
	assert.ErrorIs(t, done.Destroy(), ErrStateMachineViolation)
}

func TestCompletionFraction(t *testing.T) {
	m := newTestProject(0)
	m.Unlock(2)
	require.NoError(t, m.Start(2))
	_, err := m.AdvanceYears(50)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, m.CompletionFraction(), 1e-9)
}
