// Command slumbersim runs the lich's slumber from the command line: load or
// start a game, sleep the configured number of years, report what the world
// did in the meantime, and save.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/talgya/slumber/internal/config"
	"github.com/talgya/slumber/internal/save"
	"github.com/talgya/slumber/internal/sim"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	slog.Info("slumber engine", "seed", cfg.Seed, "years", cfg.Years, "slot", cfg.Slot)

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		os.MkdirAll(dir, 0755)
	}
	store, err := save.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open save database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	st, err := loadOrNew(store, cfg)
	if err != nil {
		slog.Error("failed to load game", "error", err)
		os.Exit(1)
	}

	wakeYear := st.CurrentYear()
	events, snaps := st.Slumber(cfg.Years)

	slog.Info("the lich wakes",
		"slept_from", wakeYear,
		"slept_to", st.CurrentYear(),
		"events", humanize.Comma(int64(len(events))),
	)

	for _, e := range events {
		slog.Debug("chronicle entry",
			"year", e.Year,
			"name", e.Name,
			"kind", e.Kind.String(),
			"severity", e.Severity.String(),
		)
	}

	first, last := snaps[0], snaps[len(snaps)-1]
	slog.Info("the hoard",
		"gold", last.Gold.Format(),
		"holdings", last.InvestmentValue.Format(),
		"total", last.TotalValue.Format(),
		"was", first.TotalValue.Format(),
	)
	slog.Info("the world",
		"exposure", st.World.Exposure.Value,
		"level", st.World.Exposure.Level().String(),
		"agents", len(st.Agents),
		"pending_choices", len(st.PendingChoices()),
		"completion_pct", fmt.Sprintf("%.0f", st.CompletionPercent()),
	)

	for _, e := range st.PendingChoices() {
		slog.Info("awaiting your decision", "event", e.Name, "year", e.Year, "choices", len(e.Choices))
	}

	if err := store.Save(cfg.Slot, st); err != nil {
		slog.Error("save failed", "error", err)
		os.Exit(1)
	}
}

func loadOrNew(store *save.Store, cfg config.Config) (*sim.WorldState, error) {
	has, err := store.Has(cfg.Slot)
	if err != nil {
		return nil, err
	}
	if has {
		return store.Load(cfg.Slot)
	}
	slog.Info("no saved game found, beginning a new existence", "seed", cfg.Seed)
	return sim.NewGame(cfg.Seed), nil
}
