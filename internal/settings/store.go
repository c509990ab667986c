// Package settings persists the provider API keys between runs.
package settings

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ngmaloney/mariner-console/internal/database"
	"github.com/ngmaloney/mariner-console/internal/models"
)

// Fixed keys for the two credentials.
const (
	KeyOpenWeatherMap = "openWeatherMapApiKey"
	KeyStormGlass     = "stormGlassApiKey"
)

// Store reads and writes credentials in the settings table
type Store struct {
	dbPath string
}

// NewStore creates a store backed by the SQLite file at dbPath
func NewStore(dbPath string) *Store {
	if dbPath == "" {
		dbPath = database.DBPath()
	}
	return &Store{dbPath: dbPath}
}

// Load returns the saved credentials. Missing keys come back empty.
func (s *Store) Load() (models.Credentials, error) {
	var creds models.Credentials

	db, err := database.Open(s.dbPath)
	if err != nil {
		return creds, err
	}
	defer db.Close()

	if creds.OpenWeatherMap, err = get(db, KeyOpenWeatherMap); err != nil {
		return creds, err
	}
	if creds.StormGlass, err = get(db, KeyStormGlass); err != nil {
		return creds, err
	}

	return creds, nil
}

// Save writes both credentials, replacing earlier values. Empty values are
// stored as-is so a key can be cleared.
func (s *Store) Save(creds models.Credentials) error {
	db, err := database.Open(s.dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	for key, value := range map[string]string{
		KeyOpenWeatherMap: creds.OpenWeatherMap,
		KeyStormGlass:     creds.StormGlass,
	} {
		_, err := tx.Exec(`
			INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`, key, value, now)
		if err != nil {
			return fmt.Errorf("saving %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing settings: %w", err)
	}
	return nil
}

// Seed fills any empty stored key from fallback and saves when something
// changed. It returns the effective credentials.
func (s *Store) Seed(fallback models.Credentials) (models.Credentials, error) {
	creds, err := s.Load()
	if err != nil {
		return creds, err
	}

	changed := false
	if creds.OpenWeatherMap == "" && fallback.OpenWeatherMap != "" {
		creds.OpenWeatherMap = fallback.OpenWeatherMap
		changed = true
	}
	if creds.StormGlass == "" && fallback.StormGlass != "" {
		creds.StormGlass = fallback.StormGlass
		changed = true
	}

	if changed {
		if err := s.Save(creds); err != nil {
			return creds, err
		}
	}
	return creds, nil
}

func get(db *sql.DB, key string) (string, error) {
	var value string
	err := db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("loading %s: %w", key, err)
	}
	return value, nil
}
