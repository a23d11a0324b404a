// Package repo contains all database access logic for the travel search API.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/avickers/travel-search/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// LedgerRepo defines the persistence operations for the itinerary ledger.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type LedgerRepo interface {
	// Insert appends a new entry and returns the persisted record (with
	// DB-generated id, position, and created_at populated). Duplicates of the
	// same route are permitted — each insert is a distinct entry.
	Insert(ctx context.Context, route domain.DerivedRoute) (domain.LedgerEntry, error)

	// List returns all entries in insertion order (ascending position).
	List(ctx context.Context) ([]domain.LedgerEntry, error)

	// DeleteByID removes one entry. Returns domain.ErrNotFound if it does not exist.
	DeleteByID(ctx context.Context, id uuid.UUID) error

	// DeleteAll empties the ledger unconditionally.
	DeleteAll(ctx context.Context) error
}

// pgLedgerRepo is the Postgres implementation of LedgerRepo.
// The derived route is stored whole as jsonb — the ledger never queries into
// route internals, so a flat column per field would buy nothing.
type pgLedgerRepo struct {
	db db
}

// NewLedgerRepo constructs a LedgerRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewLedgerRepo(db db) LedgerRepo {
	return &pgLedgerRepo{db: db}
}

func (r *pgLedgerRepo) Insert(ctx context.Context, route domain.DerivedRoute) (domain.LedgerEntry, error) {
	const q = `
		INSERT INTO ledger_entries (route)
		VALUES (@route)
		RETURNING id, position, route, created_at`

	raw, err := json.Marshal(route)
	if err != nil {
		return domain.LedgerEntry{}, fmt.Errorf("repo.LedgerRepo.Insert: marshal route: %w", err)
	}

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"route": raw})
	entry, err := scanEntry(row)
	if err != nil {
		return domain.LedgerEntry{}, fmt.Errorf("repo.LedgerRepo.Insert: %w", err)
	}
	return entry, nil
}

func (r *pgLedgerRepo) List(ctx context.Context) ([]domain.LedgerEntry, error) {
	const q = `
		SELECT id, position, route, created_at
		FROM ledger_entries
		ORDER BY position ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.LedgerRepo.List: %w", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.LedgerRepo.List: scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.LedgerRepo.List: rows: %w", err)
	}

	return entries, nil
}

func (r *pgLedgerRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM ledger_entries WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.LedgerRepo.DeleteByID: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.LedgerRepo.DeleteByID: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgLedgerRepo) DeleteAll(ctx context.Context) error {
	const q = `DELETE FROM ledger_entries`

	if _, err := r.db.Exec(ctx, q); err != nil {
		return fmt.Errorf("repo.LedgerRepo.DeleteAll: %w", err)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanEntry to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanEntry maps a single database row into a domain.LedgerEntry,
// unmarshalling the jsonb route column.
func scanEntry(s scanner) (domain.LedgerEntry, error) {
	var (
		e   domain.LedgerEntry
		raw []byte
	)

	err := s.Scan(&e.ID, &e.Position, &raw, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.LedgerEntry{}, domain.ErrNotFound
		}
		return domain.LedgerEntry{}, err
	}

	if err := json.Unmarshal(raw, &e.Route); err != nil {
		return domain.LedgerEntry{}, fmt.Errorf("unmarshal route: %w", err)
	}
	return e, nil
}
