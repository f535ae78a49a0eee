package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
	"github.com/civita-labs/urbanista-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.TerritoryCache = (*Store)(nil)

// schema holds the territorial dataset as one row per comune. The
// dataset is replaced wholesale on save, never updated row by row.
const schema = `
CREATE TABLE IF NOT EXISTS territories (
	municipality      TEXT NOT NULL,
	municipality_code TEXT NOT NULL DEFAULT '',
	province          TEXT NOT NULL,
	province_code     TEXT NOT NULL DEFAULT '',
	region            TEXT NOT NULL,
	region_code       TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_territories_municipality
	ON territories (municipality);
`

// Store is a SQLite-backed TerritoryCache.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a territory cache at the specified data directory.
// If dataDir is empty, defaults to ~/.urbanista/data/territories.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".urbanista", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "territories.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the cached dataset, or domain.ErrNotFound when the cache
// is empty.
func (s *Store) Load(ctx context.Context) ([]domain.Territory, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT municipality, municipality_code, province, province_code, region, region_code
		FROM territories
		ORDER BY region, province, municipality`)
	if err != nil {
		return nil, fmt.Errorf("querying territories: %w", err)
	}
	defer rows.Close()

	var entries []domain.Territory
	for rows.Next() {
		var t domain.Territory
		if err := rows.Scan(
			&t.Municipality, &t.MunicipalityCode,
			&t.Province, &t.ProvinceCode,
			&t.Region, &t.RegionCode,
		); err != nil {
			return nil, fmt.Errorf("scanning territory: %w", err)
		}
		entries = append(entries, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading territories: %w", err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("territory cache: %w", domain.ErrNotFound)
	}
	return entries, nil
}

// Save replaces the cached dataset wholesale inside one transaction.
func (s *Store) Save(ctx context.Context, entries []domain.Territory) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM territories"); err != nil {
		return fmt.Errorf("clearing territories: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO territories
			(municipality, municipality_code, province, province_code, region, region_code)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range entries {
		if _, err := stmt.ExecContext(ctx,
			t.Municipality, t.MunicipalityCode,
			t.Province, t.ProvinceCode,
			t.Region, t.RegionCode,
		); err != nil {
			return fmt.Errorf("inserting %s: %w", t.Municipality, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing territories: %w", err)
	}
	return nil
}
