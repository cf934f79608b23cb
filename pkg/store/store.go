// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package store provides the minimal concrete implementation of the
// value-store contract needed to exercise and test the core: a
// sqlite-backed collaborator over jmoiron/sqlx, with range/purge queries
// built via Masterminds/squirrel and schema migration via
// golang-migrate/migrate/v4, grounded on the teacher's
// internal/repository connection/migration pair. This package is not the
// deliverable — the value store is an external collaborator; this is the
// smallest real thing the batch engine can commit against.
package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/xapiens/RVPF-sub009/pkg/log"
	"github.com/xapiens/RVPF-sub009/pkg/temporal"
	"github.com/xapiens/RVPF-sub009/pkg/value"
)

//go:embed migrations/*
var migrationFiles embed.FS

// ErrStoreUnavailable signals that the store collaborator is down; the
// batch engine responds by retrying with exponential backoff.
var ErrStoreUnavailable = fmt.Errorf("store: unavailable")

// Store is a sqlite-backed implementation of the batch engine's
// Store contract (put/getRange/getLatest/purge/commit).
type Store struct {
	db *sqlx.DB
	// pending buffers writes between Commit calls: Put only appends here and
	// writes nothing to the table; Commit writes every pending value in one
	// transaction and blocks until durable, which keeps the commit-boundary
	// semantics honest under a future networked backend.
	pending []value.PointValue
}

// Open connects to a sqlite database file (":memory:" for tests) and runs
// pending migrations, mirroring the teacher's Connect + checkDBVersion
// pairing but collapsed into one call since this package owns a single
// table.
func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", path))
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrStoreUnavailable, path, err)
	}
	db.SetMaxOpenConns(1) // sqlite does not multithread (teacher's dbConnection.go comment)

	if err := migrateUp(db.DB); err != nil {
		return nil, fmt.Errorf("%w: migrating schema: %v", ErrStoreUnavailable, err)
	}
	return &Store{db: db}, nil
}

func migrateUp(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return err
	}
	src, err := iofs.New(migrationFiles, "migrations/sqlite3")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

// Put stages values for the next Commit. Idempotent on (uuid, timestamp):
// a later Put for the same key overwrites the earlier one at commit time.
func (s *Store) Put(_ context.Context, values []value.PointValue) error {
	s.pending = append(s.pending, values...)
	return nil
}

// Commit flushes every pending Put into one sqlite transaction using an
// upsert, idempotent on (uuid, timestamp).
func (s *Store) Commit(ctx context.Context) error {
	if len(s.pending) == 0 {
		return nil
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrStoreUnavailable, err)
	}
	for _, pv := range s.pending {
		deleted := 0
		if pv.Deleted {
			deleted = 1
		}
		q, args, err := sq.Insert("point_values").
			Columns("point_uuid", "stamp", "deleted", "payload").
			Values(pv.PointUUID.String(), int64(pv.Timestamp), deleted, value.EncodePointValue(pv)).
			Suffix("ON CONFLICT(point_uuid, stamp) DO UPDATE SET deleted=excluded.deleted, payload=excluded.payload").
			ToSql()
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("%w: building insert: %v", ErrStoreUnavailable, err)
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			tx.Rollback()
			return fmt.Errorf("%w: exec: %v", ErrStoreUnavailable, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrStoreUnavailable, err)
	}
	s.pending = nil
	log.Debug("store: committed batch")
	return nil
}

// GetRange returns every value for point within interval, ascending by
// timestamp, limited to limit rows if limit > 0.
func (s *Store) GetRange(ctx context.Context, point uuid.UUID, interval temporal.Interval, limit int) ([]value.PointValue, error) {
	builder := sq.Select("payload", "deleted").
		From("point_values").
		Where(sq.Eq{"point_uuid": point.String()}).
		Where(sq.GtOrEq{"stamp": int64(interval.NotBefore)}).
		Where(sq.LtOrEq{"stamp": int64(interval.NotAfter)}).
		OrderBy("stamp ASC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	q, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: building range query: %v", ErrStoreUnavailable, err)
	}
	rows, err := s.db.QueryxContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %v", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var out []value.PointValue
	for rows.Next() {
		var payload []byte
		var deleted int
		if err := rows.Scan(&payload, &deleted); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", ErrStoreUnavailable, err)
		}
		pv, err := value.DecodePointValue(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: decode: %v", ErrStoreUnavailable, err)
		}
		pv.Deleted = deleted != 0
		out = append(out, pv)
	}
	return out, rows.Err()
}

// GetLatest returns the most recent value for point at or before
// atOrBefore, if any.
func (s *Store) GetLatest(ctx context.Context, point uuid.UUID, atOrBefore temporal.Timestamp) (value.PointValue, bool, error) {
	q, args, err := sq.Select("payload", "deleted").
		From("point_values").
		Where(sq.Eq{"point_uuid": point.String()}).
		Where(sq.LtOrEq{"stamp": int64(atOrBefore)}).
		OrderBy("stamp DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return value.PointValue{}, false, fmt.Errorf("%w: building latest query: %v", ErrStoreUnavailable, err)
	}
	var payload []byte
	var deleted int
	if err := s.db.QueryRowContext(ctx, q, args...).Scan(&payload, &deleted); err != nil {
		if err == sql.ErrNoRows {
			return value.PointValue{}, false, nil
		}
		return value.PointValue{}, false, fmt.Errorf("%w: query: %v", ErrStoreUnavailable, err)
	}
	pv, err := value.DecodePointValue(payload)
	if err != nil {
		return value.PointValue{}, false, fmt.Errorf("%w: decode: %v", ErrStoreUnavailable, err)
	}
	pv.Deleted = deleted != 0
	return pv, true, nil
}

// Purge deletes every value for point within interval, returning the
// count removed.
func (s *Store) Purge(ctx context.Context, point uuid.UUID, interval temporal.Interval) (int, error) {
	q, args, err := sq.Delete("point_values").
		Where(sq.Eq{"point_uuid": point.String()}).
		Where(sq.GtOrEq{"stamp": int64(interval.NotBefore)}).
		Where(sq.LtOrEq{"stamp": int64(interval.NotAfter)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: building purge query: %v", ErrStoreUnavailable, err)
	}
	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: exec: %v", ErrStoreUnavailable, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: rows affected: %v", ErrStoreUnavailable, err)
	}
	return int(n), nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
