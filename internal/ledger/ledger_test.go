package ledger

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/slumber/internal/entropy"
)

func TestProgressToDiscovery(t *testing.T) {
	l := New()
	l.Register("tax-records", CategoryEconomic, 3)

	assert.Equal(t, Progressed, l.Progress("tax-records", CategoryEconomic))
	assert.Equal(t, Progressed, l.Progress("tax-records", CategoryEconomic))
	assert.False(t, l.IsDiscovered("tax-records"))

	assert.Equal(t, Progressed, l.Progress("tax-records", CategoryEconomic))
	assert.True(t, l.IsDiscovered("tax-records"))
	assert.Equal(t, uint(1), l.DiscoveredCount(CategoryEconomic))

	// Further progress is refused without state change.
	assert.Equal(t, AlreadyDiscovered, l.Progress("tax-records", CategoryEconomic))
	e, _ := l.Get("tax-records")
	assert.Equal(t, e.Required, e.Current)
}

func TestAutoRegisterOnProgress(t *testing.T) {
	l := New()
	assert.Equal(t, Progressed, l.Progress("whisper", CategoryPersonal))

	e, ok := l.Get("whisper")
	require.True(t, ok)
	assert.True(t, e.Discovered)
	assert.Equal(t, uint(1), e.Required)
}

func TestDiscoverIdempotent(t *testing.T) {
	l := New()
	assert.True(t, l.Discover("ritual", CategoryMagical))
	assert.False(t, l.Discover("ritual", CategoryMagical))
	assert.Equal(t, uint(1), l.DiscoveredCount(CategoryMagical))
}

func TestEntryInvariants(t *testing.T) {
	l := New()
	l.Register("a", CategoryEconomic, 5)
	for i := 0; i < 10; i++ {
		l.Progress("a", CategoryEconomic)
	}
	e, _ := l.Get("a")
	assert.LessOrEqual(t, e.Current, e.Required)
	assert.Equal(t, e.Discovered, e.Current == e.Required)
}

func TestRetentionFullIsNoOp(t *testing.T) {
	l := New()
	l.Discover("a", CategoryEconomic)
	l.Register("b", CategoryPolitical, 2)
	l.Progress("b", CategoryPolitical)

	src := entropy.NewSource(1)
	l.ApplyRetention(1.0, src)

	assert.Len(t, l.Entries, 2)
	assert.Equal(t, uint64(0), src.Draws())
}

func TestRetentionDropsInProgress(t *testing.T) {
	l := New()
	for i := 0; i < 6; i++ {
		l.Discover(fmt.Sprintf("done-%d", i), CategoryEconomic)
	}
	for i := 0; i < 4; i++ {
		id := fmt.Sprintf("partial-%d", i)
		l.Register(id, CategoryMagical, 2)
		l.Progress(id, CategoryMagical)
	}

	l.ApplyRetention(0.5, entropy.NewSource(9))

	// All in-progress entries are gone regardless of the rolls.
	for i := 0; i < 4; i++ {
		_, ok := l.Get(fmt.Sprintf("partial-%d", i))
		assert.False(t, ok)
	}

	// Category counters match exactly the surviving set.
	var discovered uint
	for _, e := range l.Entries {
		require.True(t, e.Discovered)
		discovered++
	}
	assert.Equal(t, discovered, l.DiscoveredCount(CategoryEconomic))
	assert.Equal(t, uint(0), l.DiscoveredCount(CategoryMagical))
}

func TestRetentionDeterministic(t *testing.T) {
	build := func() *Ledger {
		l := New()
		for i := 0; i < 10; i++ {
			l.Discover(fmt.Sprintf("e-%d", i), CategoryPolitical)
		}
		return l
	}

	a, b := build(), build()
	a.ApplyRetention(0.5, entropy.NewSource(77))
	b.ApplyRetention(0.5, entropy.NewSource(77))

	require.Equal(t, len(a.Entries), len(b.Entries))
	for i := range a.Entries {
		assert.Equal(t, a.Entries[i].ID, b.Entries[i].ID)
	}
}

func TestRebuildRestoresCounters(t *testing.T) {
	l := New()
	l.Discover("a", CategoryEconomic)
	l.Discover("b", CategoryEconomic)
	l.Register("c", CategoryPersonal, 3)

	loaded := &Ledger{Entries: l.Entries}
	loaded.Rebuild()

	assert.Equal(t, uint(2), loaded.DiscoveredCount(CategoryEconomic))
	assert.Equal(t, uint(0), loaded.DiscoveredCount(CategoryPersonal))
	assert.Equal(t, uint(2), loaded.TotalDiscovered())
}
