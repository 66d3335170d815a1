// Package postgres provides a PostgreSQL-backed Database for deployments
// where several stations share one roster archive.
package postgres

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rbenali/garrison-duty/pkg/core/roster"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB provides database operations using PostgreSQL
type DB struct {
	pool *pgxpool.Pool
}

// New creates a new PostgreSQL database connection and runs pending
// migrations
func New(ctx context.Context, connString string) (*DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{pool: pool}
	if err := db.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the database connection pool
func (db *DB) Close() error {
	db.pool.Close()
	return nil
}

// runMigrations executes all pending SQL migration files in order,
// tracking applied ones in a schema_migrations table
func (db *DB) runMigrations(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	rows, err := db.pool.Query(ctx, `SELECT filename FROM schema_migrations`)
	if err != nil {
		return fmt.Errorf("failed to query applied migrations: %w", err)
	}
	applied := make(map[string]bool)
	for rows.Next() {
		var filename string
		if err := rows.Scan(&filename); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan migration filename: %w", err)
		}
		applied[filename] = true
	}
	rows.Close()

	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}
	var sqlFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			sqlFiles = append(sqlFiles, entry.Name())
		}
	}
	sort.Strings(sqlFiles)

	for _, filename := range sqlFiles {
		if applied[filename] {
			continue
		}
		content, err := fs.ReadFile(migrationsFS, "migrations/"+filename)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", filename, err)
		}

		tx, err := db.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("failed to begin transaction for %s: %w", filename, err)
		}
		if _, err := tx.Exec(ctx, string(content)); err != nil {
			tx.Rollback(ctx)
			return fmt.Errorf("failed to execute migration %s: %w", filename, err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO schema_migrations (filename) VALUES ($1)`, filename); err != nil {
			tx.Rollback(ctx)
			return fmt.Errorf("failed to record migration %s: %w", filename, err)
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("failed to commit migration %s: %w", filename, err)
		}
	}
	return nil
}

func (db *DB) ListPersonnel(ctx context.Context) ([]roster.Person, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, first_name, last_name, rank, specialties, medical_restriction, exempt
		FROM personnel ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query personnel: %w", err)
	}
	defer rows.Close()

	var personnel []roster.Person
	for rows.Next() {
		var p roster.Person
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Rank,
			&p.Specialties, &p.MedicalRestriction, &p.Exempt); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		personnel = append(personnel, p)
	}
	return personnel, rows.Err()
}

func (db *DB) ReplacePersonnel(ctx context.Context, personnel []roster.Person) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM personnel`); err != nil {
		return fmt.Errorf("failed to clear personnel: %w", err)
	}
	for _, p := range personnel {
		if _, err := tx.Exec(ctx, `
			INSERT INTO personnel (id, first_name, last_name, rank, specialties, medical_restriction, exempt)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			p.ID, p.FirstName, p.LastName, p.Rank, p.Specialties,
			p.MedicalRestriction, p.Exempt); err != nil {
			return fmt.Errorf("failed to insert person %s: %w", p.ID, err)
		}
	}
	return tx.Commit(ctx)
}

func (db *DB) ListAbsences(ctx context.Context) ([]roster.AbsenceRecord, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, person_id, category, start_date::text, end_date::text, note
		FROM absences ORDER BY start_date`)
	if err != nil {
		return nil, fmt.Errorf("failed to query absences: %w", err)
	}
	defer rows.Close()

	var absences []roster.AbsenceRecord
	for rows.Next() {
		var a roster.AbsenceRecord
		if err := rows.Scan(&a.ID, &a.PersonID, &a.Category, &a.Start, &a.End, &a.Note); err != nil {
			return nil, fmt.Errorf("failed to scan absence: %w", err)
		}
		absences = append(absences, a)
	}
	return absences, rows.Err()
}

func (db *DB) ReplaceAbsences(ctx context.Context, absences []roster.AbsenceRecord) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM absences`); err != nil {
		return fmt.Errorf("failed to clear absences: %w", err)
	}
	for _, a := range absences {
		if _, err := tx.Exec(ctx, `
			INSERT INTO absences (id, person_id, category, start_date, end_date, note)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			a.ID, a.PersonID, string(a.Category), string(a.Start), string(a.End), a.Note); err != nil {
			return fmt.Errorf("failed to insert absence %s: %w", a.ID, err)
		}
	}
	return tx.Commit(ctx)
}

func (db *DB) GetRoster(ctx context.Context, date roster.Date) (*roster.Roster, error) {
	var payload []byte
	err := db.pool.QueryRow(ctx,
		`SELECT payload FROM rosters WHERE roster_date = $1`, string(date)).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query roster %s: %w", date, err)
	}
	var r roster.Roster
	if err := json.Unmarshal(payload, &r); err != nil {
		return nil, fmt.Errorf("failed to decode roster payload: %w", err)
	}
	return &r, nil
}

func (db *DB) ListRostersBefore(ctx context.Context, date roster.Date) ([]*roster.Roster, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT payload FROM rosters WHERE roster_date < $1 ORDER BY roster_date DESC`, string(date))
	if err != nil {
		return nil, fmt.Errorf("failed to query rosters before %s: %w", date, err)
	}
	defer rows.Close()

	var rosters []*roster.Roster
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan roster: %w", err)
		}
		var r roster.Roster
		if err := json.Unmarshal(payload, &r); err != nil {
			return nil, fmt.Errorf("failed to decode roster payload: %w", err)
		}
		rosters = append(rosters, &r)
	}
	return rosters, rows.Err()
}

// SaveRoster upserts the whole roster row for its date. Last writer wins.
func (db *DB) SaveRoster(ctx context.Context, r *roster.Roster) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode roster %s: %w", r.Date, err)
	}
	_, err = db.pool.Exec(ctx, `
		INSERT INTO rosters (roster_date, classification, status, payload)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (roster_date) DO UPDATE SET
			classification = EXCLUDED.classification,
			status = EXCLUDED.status,
			payload = EXCLUDED.payload`,
		string(r.Date), string(r.Classification), string(r.Status), payload)
	if err != nil {
		return fmt.Errorf("failed to save roster %s: %w", r.Date, err)
	}
	return nil
}
