package save

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/slumber/internal/sim"
)

// Store keeps save slots in a SQLite database. Each slot is the flat
// key-value image of one encoded game state, replaced wholesale on save.
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates the save database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("%w: open db: %v", ErrPersistence, err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: migrate: %v", ErrPersistence, err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS save_slots (
		slot TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (slot, key)
	);

	CREATE INDEX IF NOT EXISTS idx_save_slots_slot ON save_slots(slot);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Save writes the full game state into a slot, replacing any previous save.
func (s *Store) Save(slot string, st *sim.WorldState) error {
	ctx := NewMemoryContext()
	if err := Encode(ctx, st); err != nil {
		return err
	}

	tx, err := s.conn.Beginx()
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrPersistence, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM save_slots WHERE slot = ?", slot); err != nil {
		return fmt.Errorf("%w: clear slot: %v", ErrPersistence, err)
	}

	stmt, err := tx.Preparex("INSERT INTO save_slots (slot, key, value) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("%w: prepare: %v", ErrPersistence, err)
	}
	defer stmt.Close()

	keys := make([]string, 0, len(ctx.Values))
	for k := range ctx.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if _, err := stmt.Exec(slot, k, ctx.Values[k]); err != nil {
			return fmt.Errorf("%w: insert %s: %v", ErrPersistence, k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrPersistence, err)
	}

	slog.Info("game saved", "slot", slot, "year", st.CurrentYear(), "keys", len(keys))
	return nil
}

// Has reports whether the slot holds a save.
func (s *Store) Has(slot string) (bool, error) {
	var n int
	err := s.conn.Get(&n, "SELECT COUNT(*) FROM save_slots WHERE slot = ?", slot)
	if err != nil {
		return false, fmt.Errorf("%w: probe slot: %v", ErrPersistence, err)
	}
	return n > 0, nil
}

// Load rebuilds the game state stored in a slot.
func (s *Store) Load(slot string) (*sim.WorldState, error) {
	rows, err := s.conn.Queryx("SELECT key, value FROM save_slots WHERE slot = ?", slot)
	if err != nil {
		return nil, fmt.Errorf("%w: query slot: %v", ErrPersistence, err)
	}
	defer rows.Close()

	values := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", ErrPersistence, err)
		}
		values[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate: %v", ErrPersistence, err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: empty slot %q", ErrPersistence, slot)
	}

	st, err := Decode(FromValues(values))
	if err != nil {
		return nil, err
	}
	slog.Info("game loaded", "slot", slot, "year", st.CurrentYear())
	return st, nil
}

// Slots lists the occupied save slots.
func (s *Store) Slots() ([]string, error) {
	var slots []string
	err := s.conn.Select(&slots, "SELECT DISTINCT slot FROM save_slots ORDER BY slot")
	if err != nil {
		return nil, fmt.Errorf("%w: list slots: %v", ErrPersistence, err)
	}
	return slots, nil
}
