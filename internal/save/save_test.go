package save

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/slumber/internal/agent"
	"github.com/talgya/slumber/internal/invest"
	"github.com/talgya/slumber/internal/money"
	"github.com/talgya/slumber/internal/sim"
)

func TestMemoryContextTypedRoundTrip(t *testing.T) {
	ctx := NewMemoryContext()

	ctx.BeginSection("outer")
	ctx.WriteString("name", "lich")
	ctx.BeginSection("inner")
	ctx.WriteInt("signed", -42)
	ctx.WriteUint("unsigned", 42)
	ctx.WriteDouble("ratio", 0.125)
	ctx.WriteBool("flag", true)
	ctx.EndSection()
	ctx.EndSection()

	require.True(t, ctx.EnterSection("outer"))
	assert.Equal(t, "lich", ctx.ReadString("name", ""))
	require.True(t, ctx.EnterSection("inner"))
	assert.Equal(t, int64(-42), ctx.ReadInt("signed", 0))
	assert.Equal(t, uint64(42), ctx.ReadUint("unsigned", 0))
	assert.Equal(t, 0.125, ctx.ReadDouble("ratio", 0))
	assert.True(t, ctx.ReadBool("flag", false))
	ctx.LeaveSection()
	ctx.LeaveSection()
}

func TestMemoryContextDefaults(t *testing.T) {
	ctx := NewMemoryContext()
	assert.Equal(t, "fallback", ctx.ReadString("missing", "fallback"))
	assert.Equal(t, int64(7), ctx.ReadInt("missing", 7))
	assert.False(t, ctx.EnterSection("ghost"))
	ctx.LeaveSection()

	// Malformed values also fall back.
	ctx.WriteString("bad", "not-a-number")
	assert.Equal(t, uint64(3), ctx.ReadUint("bad", 3))
}

func playedState(t *testing.T, seed int64) *sim.WorldState {
	t.Helper()
	st := sim.NewGame(seed)
	require.NoError(t, st.AddAgent(agent.New("steward", "The Steward")))
	_, err := st.PurchaseInvestment(sim.InvestmentSpec{
		Name:       "Harbor Shares",
		Kind:       invest.KindTrade,
		Risk:       invest.RiskMedium,
		Cost:       money.New(400),
		BaseIncome: money.New(40),
	})
	require.NoError(t, err)
	st.Slumber(120)
	return st
}

func TestCodecRoundTrip(t *testing.T) {
	st := playedState(t, 77)

	ctx := NewMemoryContext()
	require.NoError(t, Encode(ctx, st))

	loaded, err := Decode(ctx)
	require.NoError(t, err)

	assert.Equal(t, st.Seed, loaded.Seed)
	assert.Equal(t, st.CurrentYear(), loaded.CurrentYear())
	assert.Equal(t, st.EntropyDraws(), loaded.EntropyDraws())
	assert.Equal(t, st.Echoes, loaded.Echoes)
	assert.Equal(t, len(st.Agents), len(loaded.Agents))
	assert.Equal(t, 0, st.Portfolio.TotalValue().Cmp(loaded.Portfolio.TotalValue()))
	assert.Equal(t, st.Tracker.Stats, loaded.Tracker.Stats)
}

func TestCodecRoundTripResimulatesIdentically(t *testing.T) {
	st := playedState(t, 101)

	ctx := NewMemoryContext()
	require.NoError(t, Encode(ctx, st))
	loaded, err := Decode(ctx)
	require.NoError(t, err)

	e1, s1 := st.Slumber(200)
	e2, s2 := loaded.Slumber(200)

	require.Equal(t, len(e1), len(e2))
	for i := range e1 {
		assert.Equal(t, e1[i].ID, e2[i].ID)
		assert.Equal(t, e1[i].Year, e2[i].Year)
	}
	require.Equal(t, len(s1), len(s2))
	for i := range s1 {
		assert.Equal(t, s1[i].TotalValue, s2[i].TotalValue)
	}
	assert.Equal(t, st.EntropyDraws(), loaded.EntropyDraws())
}

func TestDecodeMissingState(t *testing.T) {
	_, err := Decode(NewMemoryContext())
	require.ErrorIs(t, err, ErrPersistence)
}

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slumber.db")
	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	st := playedState(t, 13)

	has, err := store.Has("main")
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, store.Save("main", st))

	has, err = store.Has("main")
	require.NoError(t, err)
	assert.True(t, has)

	loaded, err := store.Load("main")
	require.NoError(t, err)
	assert.Equal(t, st.CurrentYear(), loaded.CurrentYear())
	assert.Equal(t, st.EntropyDraws(), loaded.EntropyDraws())

	slots, err := store.Slots()
	require.NoError(t, err)
	assert.Equal(t, []string{"main"}, slots)

	_, err = store.Load("ghost")
	require.ErrorIs(t, err, ErrPersistence)
}

func TestStoreSaveReplacesSlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slumber.db")
	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	st := playedState(t, 21)
	require.NoError(t, store.Save("main", st))

	st.Slumber(50)
	require.NoError(t, store.Save("main", st))

	loaded, err := store.Load("main")
	require.NoError(t, err)
	assert.Equal(t, st.CurrentYear(), loaded.CurrentYear())
}
