// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yomira-shelf/internal/platform/apperr"
	"github.com/taibuivan/yomira-shelf/internal/platform/database/schema"
	"github.com/taibuivan/yomira-shelf/internal/platform/dberr"
	"github.com/taibuivan/yomira-shelf/internal/platform/postgres"
)

const resourceName = "Collection"

// PostgresRepository implements [Repository] over shelf.collection.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed collection store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var selectColumns = strings.Join(schema.ShelfCollection.Columns(), ", ")

func scanCollection(row pgx.Row) (*Collection, error) {
	collection := &Collection{}
	err := row.Scan(
		&collection.ID, &collection.OwnerID, &collection.Name, &collection.Slug,
		&collection.Description, &collection.CreatedAt, &collection.UpdatedAt,
	)
	return collection, err
}

// # Collection Retrieval

/*
ListByOwner returns every collection owned by ownerID.

Description: Ordered by createdat DESC so the most recent shelf comes first.
*/
func (repository *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*Collection, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC`,
		selectColumns, schema.ShelfCollection.Table,
		schema.ShelfCollection.OwnerID, schema.ShelfCollection.CreatedAt,
	)

	rows, err := repository.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, dberr.Wrap(err, resourceName, "list_collections")
	}
	defer rows.Close()

	collections := []*Collection{}
	for rows.Next() {
		collection, err := scanCollection(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resourceName, "scan_collection")
		}
		collections = append(collections, collection)
	}

	return collections, dberr.Wrap(rows.Err(), resourceName, "list_collections")
}

// FindByID retrieves a collection by id, filtered on owner.
func (repository *PostgresRepository) FindByID(ctx context.Context, ownerID, id string) (*Collection, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		selectColumns, schema.ShelfCollection.Table,
		schema.ShelfCollection.ID, schema.ShelfCollection.OwnerID,
	)

	collection, err := scanCollection(repository.pool.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName, "get_collection_by_id")
	}
	return collection, nil
}

// # Collection Mutation

// Create inserts a new collection row.
func (repository *PostgresRepository) Create(ctx context.Context, collection *Collection) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING %s, %s`,
		schema.ShelfCollection.Table,
		schema.ShelfCollection.ID, schema.ShelfCollection.OwnerID, schema.ShelfCollection.Name,
		schema.ShelfCollection.Slug, schema.ShelfCollection.Description,
		schema.ShelfCollection.CreatedAt, schema.ShelfCollection.UpdatedAt,
		schema.ShelfCollection.CreatedAt, schema.ShelfCollection.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		collection.ID, collection.OwnerID, collection.Name, collection.Slug, collection.Description,
	).Scan(&collection.CreatedAt, &collection.UpdatedAt)

	return dberr.Wrap(err, resourceName, "create_collection")
}

// Update modifies the name, slug and description of an owned collection.
func (repository *PostgresRepository) Update(ctx context.Context, collection *Collection) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1 AND %s = $2
		RETURNING %s`,
		schema.ShelfCollection.Table,
		schema.ShelfCollection.Name, schema.ShelfCollection.Slug,
		schema.ShelfCollection.Description, schema.ShelfCollection.UpdatedAt,
		schema.ShelfCollection.ID, schema.ShelfCollection.OwnerID,
		schema.ShelfCollection.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		collection.ID, collection.OwnerID, collection.Name, collection.Slug, collection.Description,
	).Scan(&collection.UpdatedAt)

	return dberr.Wrap(err, resourceName, "update_collection")
}

/*
Delete removes a collection together with its manga records.

Description: Both statements run in one transaction so a failure never
leaves orphaned manga records behind.
*/
func (repository *PostgresRepository) Delete(ctx context.Context, ownerID, id string) (int, error) {
	var removedManga int

	err := postgres.WithTx(ctx, repository.pool, func(tx pgx.Tx) error {
		deleteManga := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
			schema.ShelfManga.Table, schema.ShelfManga.CollectionID, schema.ShelfManga.OwnerID)

		tag, err := tx.Exec(ctx, deleteManga, id, ownerID)
		if err != nil {
			return err
		}
		removedManga = int(tag.RowsAffected())

		deleteCollection := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
			schema.ShelfCollection.Table, schema.ShelfCollection.ID, schema.ShelfCollection.OwnerID)

		tag, err = tx.Exec(ctx, deleteCollection, id, ownerID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound(resourceName)
		}
		return nil
	})
	if err != nil {
		return 0, dberr.Wrap(err, resourceName, "delete_collection")
	}

	return removedManga, nil
}
