// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manga

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yomira-shelf/internal/platform/apperr"
	"github.com/taibuivan/yomira-shelf/internal/platform/database/schema"
	"github.com/taibuivan/yomira-shelf/internal/platform/dberr"
)

const resourceName = "Manga"

// PostgresRepository implements [Repository] over shelf.manga.
// The volume ledger is stored as a JSONB array on the record row.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed manga store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var selectColumns = strings.Join(schema.ShelfManga.Columns(), ", ")

func scanRecord(row pgx.Row) (*Record, error) {
	record := &Record{}
	var rawVolumes []byte

	err := row.Scan(
		&record.ID, &record.CollectionID, &record.OwnerID, &record.CatalogID,
		&record.Title, &record.TitleEnglish, &record.ImageURL, &record.Synopsis,
		&record.Chapters, &record.Score, &record.Status, &record.Published,
		&record.TotalVolumes, &record.Rating, &record.Notes, &rawVolumes,
		&record.Version, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(rawVolumes, &record.Volumes); err != nil {
		return nil, fmt.Errorf("decode volumes of %s: %w", record.ID, err)
	}
	return record, nil
}

func encodeVolumes(volumes []Volume) ([]byte, error) {
	if volumes == nil {
		volumes = []Volume{}
	}
	return json.Marshal(volumes)
}

func (repository *PostgresRepository) queryRecords(ctx context.Context, action, query string, args ...any) ([]*Record, error) {
	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, resourceName, action)
	}
	defer rows.Close()

	records := []*Record{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resourceName, "scan_manga")
		}
		records = append(records, record)
	}

	return records, dberr.Wrap(rows.Err(), resourceName, action)
}

// # Manga Retrieval

// FindByID retrieves a record by id, filtered on owner.
func (repository *PostgresRepository) FindByID(ctx context.Context, ownerID, id string) (*Record, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		selectColumns, schema.ShelfManga.Table, schema.ShelfManga.ID, schema.ShelfManga.OwnerID)

	record, err := scanRecord(repository.pool.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName, "get_manga_by_id")
	}
	return record, nil
}

// ListByCollection returns the records of one collection in insertion order.
func (repository *PostgresRepository) ListByCollection(ctx context.Context, ownerID, collectionID string) ([]*Record, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2 ORDER BY %s ASC`,
		selectColumns, schema.ShelfManga.Table,
		schema.ShelfManga.CollectionID, schema.ShelfManga.OwnerID, schema.ShelfManga.CreatedAt)

	return repository.queryRecords(ctx, "list_manga_by_collection", query, collectionID, ownerID)
}

// ListByOwner returns every record of the owner, newest first.
func (repository *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*Record, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC`,
		selectColumns, schema.ShelfManga.Table, schema.ShelfManga.OwnerID, schema.ShelfManga.CreatedAt)

	return repository.queryRecords(ctx, "list_manga_by_owner", query, ownerID)
}

// # Manga Mutation

// Create inserts a record with an empty or provided ledger at version 1.
func (repository *PostgresRepository) Create(ctx context.Context, record *Record) error {
	volumes, err := encodeVolumes(record.Volumes)
	if err != nil {
		return apperr.Internal(err)
	}

	columns := schema.ShelfManga.Columns()
	// Timestamps are filled by the database.
	insertColumns := columns[:len(columns)-2]

	placeholders := make([]string, len(insertColumns))
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING %s, %s`,
		schema.ShelfManga.Table,
		strings.Join(insertColumns, ", "), strings.Join(placeholders, ", "),
		schema.ShelfManga.CreatedAt, schema.ShelfManga.UpdatedAt)

	record.Version = 1
	err = repository.pool.QueryRow(ctx, query,
		record.ID, record.CollectionID, record.OwnerID, record.CatalogID,
		record.Title, record.TitleEnglish, record.ImageURL, record.Synopsis,
		record.Chapters, record.Score, record.Status, record.Published,
		record.TotalVolumes, record.Rating, record.Notes, volumes, record.Version,
	).Scan(&record.CreatedAt, &record.UpdatedAt)

	return dberr.Wrap(err, resourceName, "create_manga")
}

/*
Save performs the compare-and-swap write of a record's mutable fields.

Description: The UPDATE matches on id, owner and version. When no row matches,
a follow-up probe tells a stale version (VERSION_CONFLICT) from a missing
record (NOT_FOUND).
*/
func (repository *PostgresRepository) Save(ctx context.Context, record *Record, expectedVersion int) error {
	volumes, err := encodeVolumes(record.Volumes)
	if err != nil {
		return apperr.Internal(err)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $4, %s = $5, %s = $6, %s = $7, %s = %s + 1, %s = NOW()
		WHERE %s = $1 AND %s = $2 AND %s = $3
		RETURNING %s, %s`,
		schema.ShelfManga.Table,
		schema.ShelfManga.Rating, schema.ShelfManga.Notes, schema.ShelfManga.TotalVolumes,
		schema.ShelfManga.Volumes, schema.ShelfManga.Version, schema.ShelfManga.Version,
		schema.ShelfManga.UpdatedAt,
		schema.ShelfManga.ID, schema.ShelfManga.OwnerID, schema.ShelfManga.Version,
		schema.ShelfManga.Version, schema.ShelfManga.UpdatedAt,
	)

	err = repository.pool.QueryRow(ctx, query,
		record.ID, record.OwnerID, expectedVersion,
		record.Rating, record.Notes, record.TotalVolumes, volumes,
	).Scan(&record.Version, &record.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return repository.classifyMissedWrite(ctx, record.OwnerID, record.ID)
	}
	return dberr.Wrap(err, resourceName, "save_manga")
}

func (repository *PostgresRepository) classifyMissedWrite(ctx context.Context, ownerID, id string) error {
	query := fmt.Sprintf(`SELECT 1 FROM %s WHERE %s = $1 AND %s = $2`,
		schema.ShelfManga.Table, schema.ShelfManga.ID, schema.ShelfManga.OwnerID)

	var exists int
	if err := repository.pool.QueryRow(ctx, query, id, ownerID).Scan(&exists); err != nil {
		return dberr.Wrap(err, resourceName, "probe_manga_version")
	}
	return apperr.VersionConflict(resourceName)
}

// Delete removes one owned record.
func (repository *PostgresRepository) Delete(ctx context.Context, ownerID, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.ShelfManga.Table, schema.ShelfManga.ID, schema.ShelfManga.OwnerID)

	tag, err := repository.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return dberr.Wrap(err, resourceName, "delete_manga")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceName)
	}
	return nil
}
