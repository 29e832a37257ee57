package save

import (
	"encoding/json"
	"fmt"

	"github.com/talgya/slumber/internal/achieve"
	"github.com/talgya/slumber/internal/events"
	"github.com/talgya/slumber/internal/invest"
	"github.com/talgya/slumber/internal/ledger"
	"github.com/talgya/slumber/internal/sim"
	"github.com/talgya/slumber/internal/worldsim"
)

// Encode writes the full game state into the context: a meta section with
// the seed and the entropy stream position, and one JSON document per
// subsystem.
func Encode(ctx Context, st *sim.WorldState) error {
	ctx.BeginSection("meta")
	ctx.WriteInt("seed", st.Seed)
	ctx.WriteUint("draws", st.EntropyDraws())
	ctx.WriteUint("year", st.CurrentYear())
	ctx.WriteUint("phylactery_level", uint64(st.PhylacteryLevel))
	ctx.WriteUint("echoes", st.Echoes)
	ctx.WriteUint("diagnostics", st.Diagnostics)
	ctx.EndSection()

	ctx.BeginSection("state")
	defer ctx.EndSection()

	sections := []struct {
		key string
		v   any
	}{
		{"world", st.World},
		{"portfolio", st.Portfolio},
		{"agents", st.Agents},
		{"ledger", st.Ledger},
		{"projects", st.Projects},
		{"generator", st.Generator},
		{"tracker", st.Tracker},
		{"pending_events", st.PendingEvents},
		{"market_shifts", st.MarketShifts},
	}
	for _, s := range sections {
		b, err := json.Marshal(s.v)
		if err != nil {
			return fmt.Errorf("%w: encode %s: %v", ErrPersistence, s.key, err)
		}
		ctx.WriteString(s.key, string(b))
	}
	return nil
}

// Decode rebuilds a game state from the context. The entropy stream is
// fast-forwarded to the recorded position so resimulation is bit-identical.
func Decode(ctx Context) (*sim.WorldState, error) {
	if !ctx.EnterSection("meta") {
		ctx.LeaveSection()
		return nil, fmt.Errorf("%w: no meta section", ErrPersistence)
	}
	st := &sim.WorldState{
		Seed:            ctx.ReadInt("seed", 0),
		PhylacteryLevel: uint(ctx.ReadUint("phylactery_level", 1)),
		Echoes:          ctx.ReadUint("echoes", 0),
		Diagnostics:     ctx.ReadUint("diagnostics", 0),
	}
	draws := ctx.ReadUint("draws", 0)
	ctx.LeaveSection()

	if !ctx.EnterSection("state") {
		ctx.LeaveSection()
		return nil, fmt.Errorf("%w: no state section", ErrPersistence)
	}
	defer ctx.LeaveSection()

	st.World = &worldsim.World{}
	st.Portfolio = &invest.Portfolio{}
	st.Ledger = &ledger.Ledger{}
	st.Generator = events.NewGenerator()
	st.Tracker = achieve.NewTracker(nil)

	sections := []struct {
		key      string
		v        any
		required bool
	}{
		{"world", st.World, true},
		{"portfolio", st.Portfolio, true},
		{"agents", &st.Agents, false},
		{"ledger", st.Ledger, true},
		{"projects", &st.Projects, true},
		{"generator", st.Generator, false},
		{"tracker", st.Tracker, true},
		{"pending_events", &st.PendingEvents, false},
		{"market_shifts", &st.MarketShifts, false},
	}
	for _, s := range sections {
		raw := ctx.ReadString(s.key, "")
		if raw == "" {
			if s.required {
				return nil, fmt.Errorf("%w: missing %s", ErrPersistence, s.key)
			}
			continue
		}
		if err := json.Unmarshal([]byte(raw), s.v); err != nil {
			return nil, fmt.Errorf("%w: decode %s: %v", ErrPersistence, s.key, err)
		}
	}

	st.Rebuild(draws)
	return st, nil
}
