package playerbook

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"aoe4scout/internal/aoe4world"
)

type store struct {
	mu sync.RWMutex
	db *sql.DB
}

// New creates a new PlayerBook backed by the given database.
func New(db *sql.DB) PlayerBook {
	return &store{db: db}
}

var _ PlayerBook = (*store)(nil)

// Upsert inserts the user or refreshes its name, steam id and avatar. The
// added_at timestamp of an existing entry is preserved.
func (s *store) Upsert(user aoe4world.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO players (id, steam_id, name, avatar_url, added_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			steam_id = excluded.steam_id,
			name = excluded.name,
			avatar_url = excluded.avatar_url;
	`, user.ID, user.SteamID, user.Username, user.AvatarURL, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("upserting player %d: %w", user.ID, err)
	}
	log.Debug("Upserted player", "id", user.ID, "name", user.Username)
	return nil
}

func (s *store) Get(id int64) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, steam_id, name, avatar_url, added_at, last_checked_at
		FROM players WHERE id = ?
	`, id)
	return scanEntry(row)
}

func (s *store) FindByName(name string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, steam_id, name, avatar_url, added_at, last_checked_at
		FROM players WHERE name = ? COLLATE NOCASE
	`, name)
	return scanEntry(row)
}

func (s *store) All() ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, steam_id, name, avatar_url, added_at, last_checked_at
		FROM players ORDER BY name COLLATE NOCASE
	`)
	if err != nil {
		return nil, fmt.Errorf("listing players: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntryFromRows(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *store) Touch(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("UPDATE players SET last_checked_at = ? WHERE id = ?", time.Now().Unix(), id)
	if err != nil {
		return fmt.Errorf("touching player %d: %w", id, err)
	}
	return nil
}

func (s *store) Remove(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM players WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("removing player %d: %w", id, err)
	}
	return nil
}

func scanEntry(row *sql.Row) (*Entry, error) {
	var (
		entry         Entry
		steamID       sql.NullString
		avatarURL     sql.NullString
		addedAt       int64
		lastCheckedAt sql.NullInt64
	)
	err := row.Scan(&entry.ID, &steamID, &entry.Name, &avatarURL, &addedAt, &lastCheckedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning player: %w", err)
	}
	entry.SteamID = steamID.String
	entry.AvatarURL = avatarURL.String
	entry.AddedAt = time.Unix(addedAt, 0)
	if lastCheckedAt.Valid {
		checked := time.Unix(lastCheckedAt.Int64, 0)
		entry.LastCheckedAt = &checked
	}
	return &entry, nil
}

func scanEntryFromRows(rows *sql.Rows) (Entry, error) {
	var (
		entry         Entry
		steamID       sql.NullString
		avatarURL     sql.NullString
		addedAt       int64
		lastCheckedAt sql.NullInt64
	)
	if err := rows.Scan(&entry.ID, &steamID, &entry.Name, &avatarURL, &addedAt, &lastCheckedAt); err != nil {
		return Entry{}, fmt.Errorf("scanning player: %w", err)
	}
	entry.SteamID = steamID.String
	entry.AvatarURL = avatarURL.String
	entry.AddedAt = time.Unix(addedAt, 0)
	if lastCheckedAt.Valid {
		checked := time.Unix(lastCheckedAt.Int64, 0)
		entry.LastCheckedAt = &checked
	}
	return entry, nil
}
