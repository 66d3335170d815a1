// Package sqlite provides a SQLite-backed Database for single-station
// deployments where the roster lives on the duty computer itself.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rbenali/garrison-duty/pkg/core/roster"
)

// DB implements db.Database on a SQLite file. Opened with WAL so reads
// never block the single writer. Use ":memory:" for an ephemeral database.
type DB struct {
	db *sql.DB
}

// New opens (and if necessary creates) the database at path and migrates
// the schema
func New(path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &DB{db: conn}
	if err := store.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the underlying database handle
func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS personnel (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		rank TEXT NOT NULL,
		specialties TEXT NOT NULL DEFAULT '[]',
		medical_restriction INTEGER NOT NULL DEFAULT 0,
		exempt INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS absences (
		id TEXT PRIMARY KEY,
		person_id TEXT NOT NULL REFERENCES personnel(id),
		category TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		note TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_absences_person ON absences(person_id);

	CREATE TABLE IF NOT EXISTS rosters (
		roster_date TEXT PRIMARY KEY,
		classification TEXT NOT NULL,
		status TEXT NOT NULL,
		payload TEXT NOT NULL
	);
	`
	if _, err := d.db.Exec(schema); err != nil {
		return err
	}
	return nil
}

func (d *DB) ListPersonnel(ctx context.Context) ([]roster.Person, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, rank, specialties, medical_restriction, exempt
		FROM personnel ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query personnel: %w", err)
	}
	defer rows.Close()

	var personnel []roster.Person
	for rows.Next() {
		var p roster.Person
		var specialties string
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Rank,
			&specialties, &p.MedicalRestriction, &p.Exempt); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		if err := json.Unmarshal([]byte(specialties), &p.Specialties); err != nil {
			return nil, fmt.Errorf("failed to decode specialties for %s: %w", p.ID, err)
		}
		personnel = append(personnel, p)
	}
	return personnel, rows.Err()
}

func (d *DB) ReplacePersonnel(ctx context.Context, personnel []roster.Person) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM personnel`); err != nil {
		return fmt.Errorf("failed to clear personnel: %w", err)
	}
	for _, p := range personnel {
		specialties, err := json.Marshal(emptyIfNil(p.Specialties))
		if err != nil {
			return fmt.Errorf("failed to encode specialties for %s: %w", p.ID, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO personnel (id, first_name, last_name, rank, specialties, medical_restriction, exempt)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.FirstName, p.LastName, p.Rank, string(specialties),
			p.MedicalRestriction, p.Exempt); err != nil {
			return fmt.Errorf("failed to insert person %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

func (d *DB) ListAbsences(ctx context.Context) ([]roster.AbsenceRecord, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, person_id, category, start_date, end_date, note
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

func (d *DB) ReplaceAbsences(ctx context.Context, absences []roster.AbsenceRecord) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM absences`); err != nil {
		return fmt.Errorf("failed to clear absences: %w", err)
	}
	for _, a := range absences {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO absences (id, person_id, category, start_date, end_date, note)
			VALUES (?, ?, ?, ?, ?, ?)`,
			a.ID, a.PersonID, string(a.Category), string(a.Start), string(a.End), a.Note); err != nil {
			return fmt.Errorf("failed to insert absence %s: %w", a.ID, err)
		}
	}
	return tx.Commit()
}

func (d *DB) GetRoster(ctx context.Context, date roster.Date) (*roster.Roster, error) {
	var payload string
	err := d.db.QueryRowContext(ctx,
		`SELECT payload FROM rosters WHERE roster_date = ?`, string(date)).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query roster %s: %w", date, err)
	}
	return decodeRoster(payload)
}

func (d *DB) ListRostersBefore(ctx context.Context, date roster.Date) ([]*roster.Roster, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT payload FROM rosters WHERE roster_date < ? ORDER BY roster_date DESC`, string(date))
	if err != nil {
		return nil, fmt.Errorf("failed to query rosters before %s: %w", date, err)
	}
	defer rows.Close()

	var rosters []*roster.Roster
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan roster: %w", err)
		}
		r, err := decodeRoster(payload)
		if err != nil {
			return nil, err
		}
		rosters = append(rosters, r)
	}
	return rosters, rows.Err()
}

// SaveRoster upserts the whole roster row for its date. Last writer wins.
func (d *DB) SaveRoster(ctx context.Context, r *roster.Roster) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode roster %s: %w", r.Date, err)
	}
	_, err = d.db.ExecContext(ctx, `
		INSERT INTO rosters (roster_date, classification, status, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(roster_date) DO UPDATE SET
			classification = excluded.classification,
			status = excluded.status,
			payload = excluded.payload`,
		string(r.Date), string(r.Classification), string(r.Status), string(payload))
	if err != nil {
		return fmt.Errorf("failed to save roster %s: %w", r.Date, err)
	}
	return nil
}

func decodeRoster(payload string) (*roster.Roster, error) {
	var r roster.Roster
	if err := json.NewDecoder(strings.NewReader(payload)).Decode(&r); err != nil {
		return nil, fmt.Errorf("failed to decode roster payload: %w", err)
	}
	return &r, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
