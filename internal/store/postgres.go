package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/JonMunkholm/roster/internal/member"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// pgUniqueViolation is the SQLSTATE for unique constraint violations.
const pgUniqueViolation = "23505"

// Schema creates the members table. It is idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS members (
	id                   BIGSERIAL PRIMARY KEY,
	name                 TEXT NOT NULL,
	year                 TEXT NOT NULL,
	student_number       TEXT NOT NULL,
	email                TEXT NOT NULL,
	phone                TEXT NOT NULL,
	dietary_requirements TEXT NOT NULL,
	role                 TEXT NOT NULL,
	tags                 TEXT[] NOT NULL DEFAULT '{}',
	created_at           TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS members_student_number_key ON members (lower(student_number));
`

// Postgres is a Store backed by a PostgreSQL members table.
type Postgres struct {
	db DBTX
}

// NewPostgres wraps a pool or transaction.
func NewPostgres(db DBTX) *Postgres {
	return &Postgres{db: db}
}

// EnsureSchema creates the members table if it does not exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("ensure members schema: %w", err)
	}
	return nil
}

// Has implements Store.
func (p *Postgres) Has(ctx context.Context, r member.Record) (bool, error) {
	var exists bool
	err := p.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM members WHERE lower(student_number) = lower($1))`,
		r.StudentNumber().String(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check member %s: %w", r.StudentNumber(), err)
	}
	return exists, nil
}

// Add implements Store.
func (p *Postgres) Add(ctx context.Context, r member.Record) error {
	f := r.Fields()
	tags := f.Tags
	if tags == nil {
		tags = []string{}
	}

	_, err := p.db.Exec(ctx,
		`INSERT INTO members (name, year, student_number, email, phone, dietary_requirements, role, tags)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		f.Name, f.Year, f.StudentNumber, f.Email, f.Phone, f.DietaryRequirements, f.Role, tags,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("insert member %s: %w", f.StudentNumber, err)
	}
	return nil
}

// List implements Store.
func (p *Postgres) List(ctx context.Context) ([]member.Record, error) {
	rows, err := p.db.Query(ctx,
		`SELECT name, year, student_number, email, phone, dietary_requirements, role, tags
		 FROM members ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var records []member.Record
	for rows.Next() {
		var f member.Fields
		if err := rows.Scan(&f.Name, &f.Year, &f.StudentNumber, &f.Email, &f.Phone,
			&f.DietaryRequirements, &f.Role, &f.Tags); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}

		r, err := member.New(f)
		if err != nil {
			return nil, fmt.Errorf("stored member %s is invalid: %w", f.StudentNumber, err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return records, nil
}

// Count implements Store.
func (p *Postgres) Count(ctx context.Context) (int, error) {
	var n int
	if err := p.db.QueryRow(ctx, `SELECT count(*) FROM members`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count members: %w", err)
	}
	return n, nil
}
