// Package bank persists generated problems in a MySQL table so exercise sets
// can be reviewed and reissued.
package bank

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dbsmedya/goschedule/internal/schedule"
	"github.com/dbsmedya/goschedule/internal/search"
)

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = 20

// Record is one stored problem.
type Record struct {
	ID                   int64     `yaml:"id"`
	Seed                 int64     `yaml:"seed"`
	Schedule             string    `yaml:"schedule"`
	ConflictSerializable bool      `yaml:"conflict_serializable"`
	Serializable         bool      `yaml:"serializable"`
	S2PL                 bool      `yaml:"s2pl"`
	CreatedAt            time.Time `yaml:"created_at"`
}

// RecordFromProblem flattens a problem into its stored form.
func RecordFromProblem(p *search.Problem) Record {
	return Record{
		Seed:                 p.Seed,
		Schedule:             schedule.Format(p.Schedule),
		ConflictSerializable: p.ConflictSerializable,
		Serializable:         p.Serializable,
		S2PL:                 p.S2PL,
	}
}

// Store reads and writes problems in a single table.
type Store struct {
	db    *sql.DB
	table string
}

// NewStore returns a Store on table. The table name must already be validated.
func NewStore(db *sql.DB, table string) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database is nil")
	}
	if table == "" {
		return nil, fmt.Errorf("table name is empty")
	}
	return &Store{db: db, table: table}, nil
}

// quoteIdentifier wraps a MySQL identifier in backticks.
func quoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// EnsureSchema creates the problem table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
  id BIGINT AUTO_INCREMENT PRIMARY KEY,
  seed BIGINT NOT NULL,
  schedule VARCHAR(255) NOT NULL,
  conflict_serializable BOOLEAN NOT NULL,
  serializable BOOLEAN NOT NULL,
  s2pl BOOLEAN NOT NULL,
  created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`, quoteIdentifier(s.table))

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create table %s: %w", s.table, err)
	}
	return nil
}

// Save stores p and returns the new row id.
func (s *Store) Save(ctx context.Context, p *search.Problem) (int64, error) {
	if p == nil {
		return 0, fmt.Errorf("problem is nil")
	}
	r := RecordFromProblem(p)

	query := fmt.Sprintf(
		"INSERT INTO %s (seed, schedule, conflict_serializable, serializable, s2pl) VALUES (?, ?, ?, ?, ?)",
		quoteIdentifier(s.table))

	res, err := s.db.ExecContext(ctx, query, r.Seed, r.Schedule, r.ConflictSerializable, r.Serializable, r.S2PL)
	if err != nil {
		return 0, fmt.Errorf("failed to save problem: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted id: %w", err)
	}
	return id, nil
}

// List returns up to limit problems, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	query := fmt.Sprintf(
		"SELECT id, seed, schedule, conflict_serializable, serializable, s2pl, created_at FROM %s ORDER BY id DESC LIMIT ?",
		quoteIdentifier(s.table))

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list problems: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Seed, &r.Schedule, &r.ConflictSerializable, &r.Serializable, &r.S2PL, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan problem: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate problems: %w", err)
	}

	return records, nil
}

// Load parses the stored schedule of r back into a Schedule.
func (r Record) Load() (schedule.Schedule, error) {
	s, err := schedule.Parse(r.Schedule)
	if err != nil {
		return nil, fmt.Errorf("problem %d: %w", r.ID, err)
	}
	return s, nil
}
