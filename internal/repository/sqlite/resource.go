package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/lgsobral/eduhub/internal/apperror"
	"github.com/lgsobral/eduhub/internal/model"
	"github.com/lgsobral/eduhub/internal/repository"
)

// Compile-time check that *DB implements repository.ResourceRepository.
// If a method is missing or has the wrong signature, this line fails to
// compile instead of blowing up later where the interface is used.
var _ repository.ResourceRepository = (*DB)(nil)

// encodeTags serializes the tags slice for the TEXT column. A nil slice
// encodes as "[]" so the column never holds SQL NULL or JSON null.
func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encoding tags: %w", err)
	}
	return string(raw), nil
}

func decodeTags(raw string, dst *[]string) error {
	if raw == "" {
		*dst = []string{}
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("decoding tags: %w", err)
	}
	if *dst == nil {
		*dst = []string{}
	}
	return nil
}

// Create inserts a new resource.
//
// ID GENERATION WITH xid:
// xid generates 20-char URL-safe IDs that sort by creation time (they
// start with a timestamp). That property matters here: the list query
// orders by created_at DESC with id DESC as the tie-breaker, and a
// time-sortable id keeps that order total and stable even for rows
// created within the same clock tick.
//
// The caller's struct is modified in place — after Create() it carries
// the generated ID and both timestamps (created_at == updated_at).
func (db *DB) Create(ctx context.Context, resource *model.Resource) error {
	resource.ID = xid.New().String()

	now := time.Now().UTC()
	resource.CreatedAt = now
	resource.UpdatedAt = now

	tags, err := encodeTags(resource.Tags)
	if err != nil {
		return fmt.Errorf("sqlite: creating resource: %w", err)
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO resources (id, title, description, resource_type, url, tags, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		resource.ID,
		resource.Title,
		resource.Description,
		string(resource.ResourceType),
		resource.URL,
		tags,
		resource.CreatedAt,
		resource.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating resource: %w", err)
	}

	return nil
}

// GetByID retrieves a single resource by its ID.
// sql.ErrNoRows is translated to the domain's NotFound error so the
// handler knows to answer 404 — the database detail never leaks up.
func (db *DB) GetByID(ctx context.Context, id string) (*model.Resource, error) {
	var (
		res     model.Resource
		rawTags string
	)

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, title, description, resource_type, url, tags, created_at, updated_at
		 FROM resources
		 WHERE id = ?`,
		id,
	).Scan(
		&res.ID,
		&res.Title,
		&res.Description,
		&res.ResourceType,
		&res.URL,
		&rawTags,
		&res.CreatedAt,
		&res.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("resource", id)
		}
		return nil, fmt.Errorf("sqlite: getting resource %s: %w", id, err)
	}

	if err := decodeTags(rawTags, &res.Tags); err != nil {
		return nil, fmt.Errorf("sqlite: getting resource %s: %w", id, err)
	}

	return &res, nil
}

// filterClause builds the WHERE clause shared by List and Count so the
// two queries always agree on which rows are "in" the filtered set.
// The search match is case-insensitive: LOWER(title) LIKE LOWER(?) with
// the term wrapped in %, mirroring PostgreSQL's ilike.
func filterClause(filter repository.Filter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	if filter.ResourceType != "" {
		conds = append(conds, "resource_type = ?")
		args = append(args, string(filter.ResourceType))
	}
	if filter.Search != "" {
		conds = append(conds, "LOWER(title) LIKE LOWER(?)")
		args = append(args, "%"+filter.Search+"%")
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List retrieves resources matching the filter, newest first.
//
// ORDER BY created_at DESC, id DESC gives a total order: created_at
// alone can collide (same timestamp), and a partial order would let the
// database reshuffle equal rows between requests — which breaks the
// "same filter, same pages" guarantee the pagination tests rely on.
func (db *DB) List(ctx context.Context, filter repository.Filter, opts repository.ListOptions) ([]model.Resource, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	where, args := filterClause(filter)
	args = append(args, limit, offset)

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, description, resource_type, url, tags, created_at, updated_at
		 FROM resources`+where+`
		 ORDER BY created_at DESC, id DESC
		 LIMIT ? OFFSET ?`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing resources: %w", err)
	}
	defer rows.Close()

	resources := make([]model.Resource, 0, limit)

	for rows.Next() {
		var (
			res     model.Resource
			rawTags string
		)
		if err := rows.Scan(
			&res.ID, &res.Title, &res.Description, &res.ResourceType,
			&res.URL, &rawTags, &res.CreatedAt, &res.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning resource row: %w", err)
		}
		if err := decodeTags(rawTags, &res.Tags); err != nil {
			return nil, fmt.Errorf("sqlite: scanning resource row: %w", err)
		}
		resources = append(resources, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating resources: %w", err)
	}

	return resources, nil
}

// Count returns how many resources match the filter. Runs as a separate
// query instead of loading every row just to count it.
func (db *DB) Count(ctx context.Context, filter repository.Filter) (int, error) {
	where, args := filterClause(filter)

	var total int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM resources`+where,
		args...,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting resources: %w", err)
	}

	return total, nil
}

// Update rewrites the mutable fields of an existing resource and
// refreshes updated_at. id and created_at are immutable.
// RowsAffected == 0 means the WHERE matched nothing → NotFound, which
// is one query instead of a SELECT-then-UPDATE pair.
func (db *DB) Update(ctx context.Context, resource *model.Resource) error {
	resource.UpdatedAt = time.Now().UTC()

	tags, err := encodeTags(resource.Tags)
	if err != nil {
		return fmt.Errorf("sqlite: updating resource %s: %w", resource.ID, err)
	}

	result, err := db.conn.ExecContext(ctx,
		`UPDATE resources
		 SET title = ?, description = ?, resource_type = ?, url = ?, tags = ?, updated_at = ?
		 WHERE id = ?`,
		resource.Title,
		resource.Description,
		string(resource.ResourceType),
		resource.URL,
		tags,
		resource.UpdatedAt,
		resource.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating resource %s: %w", resource.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("resource", resource.ID)
	}

	return nil
}

// Delete removes a resource permanently (hard delete, no soft-delete
// flag). A second delete of the same id reports NotFound rather than
// silently succeeding — same RowsAffected pattern as Update.
func (db *DB) Delete(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM resources WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting resource %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("resource", id)
	}

	return nil
}
