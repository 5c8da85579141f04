package settings

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store persists the settings record as a single-row JSON snapshot in
// SQLite and serves consistent copies to readers. The tick loop reads a
// snapshot every evaluation; only the web layer writes, and a write becomes
// visible atomically on the next tick.
type Store struct {
	db *sql.DB

	mu      sync.RWMutex
	current Settings
	version int64
}

// Open opens (or creates) the database, initializes the schema and loads
// the stored record, falling back to defaults on first run.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	st := &Store{db: db}
	if err := st.load(); err != nil {
		db.Close()
		return nil, err
	}
	return st, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS settings (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			payload TEXT NOT NULL,
			version INTEGER NOT NULL DEFAULT 1,
			updated_at INTEGER NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create settings table: %w", err)
	}
	return nil
}

func (st *Store) load() error {
	var payload string
	var version int64
	err := st.db.QueryRow(`SELECT payload, version FROM settings WHERE id = 1`).Scan(&payload, &version)
	switch {
	case err == sql.ErrNoRows:
		st.current = Defaults()
		st.version = 0
		return nil
	case err != nil:
		return fmt.Errorf("failed to load settings: %w", err)
	}

	s := Defaults()
	if err := json.Unmarshal([]byte(payload), &s); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	s.Normalize()
	st.current = s
	st.version = version
	return nil
}

// Snapshot returns a consistent copy of the current record.
func (st *Store) Snapshot() Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current
}

// Version returns the monotonically increasing write counter.
func (st *Store) Version() int64 {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.version
}

// Save persists the record and publishes it as the new snapshot. The
// in-memory swap happens only after the database write succeeds, so readers
// never observe a half-committed record.
func (st *Store) Save(s Settings) error {
	s.Normalize()

	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	next := st.version + 1
	_, err = st.db.Exec(`
		INSERT INTO settings (id, payload, version, updated_at) VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload,
			version = excluded.version, updated_at = excluded.updated_at
	`, string(payload), next, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	st.current = s
	st.version = next
	return nil
}

// Reset restores factory defaults, persisting them.
func (st *Store) Reset() error {
	return st.Save(Defaults())
}

// Close closes the database.
func (st *Store) Close() error {
	return st.db.Close()
}
