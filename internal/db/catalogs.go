package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/context-engine/internal/types"
)

// -----------------------------------------------------------------------------
// Catalog Methods
// -----------------------------------------------------------------------------

// SaveCatalog stores a catalog record and all of its artifacts, replacing any
// previous catalog with the same name (re-ingestion is a full rewrite, never
// an in-place update, matching the build-then-freeze discipline).
func (db *DB) SaveCatalog(ctx context.Context, file *types.CatalogFile, source string) (*CatalogRecord, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM catalogs WHERE name = $1`, file.Name); err != nil {
		return nil, fmt.Errorf("failed to clear previous catalog: %w", err)
	}

	var record CatalogRecord
	err = tx.QueryRow(ctx,
		`INSERT INTO catalogs (name, source, artifact_count)
		 VALUES ($1, $2, $3)
		 RETURNING id, name, source, artifact_count, created_at`,
		file.Name, source, len(file.Artifacts),
	).Scan(&record.ID, &record.Name, &record.Source, &record.Artifacts, &record.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog: %w", err)
	}

	for _, artifact := range file.Artifacts {
		_, err := tx.Exec(ctx,
			`INSERT INTO catalog_artifacts (catalog_id, artifact_id, kind, bounded_context,
			                                 full_content, signature_view, size_full,
			                                 size_signature, semantic_weight)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			record.ID, artifact.ID, string(artifact.Kind), artifact.BoundedContext,
			artifact.FullContent, nullIfEmpty(artifact.SignatureView), artifact.SizeFull,
			artifact.SizeSignature, artifact.SemanticWeight,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to save artifact %s: %w", artifact.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit catalog: %w", err)
	}
	return &record, nil
}

// GetCatalog retrieves a catalog record by name
func (db *DB) GetCatalog(ctx context.Context, name string) (*CatalogRecord, error) {
	var record CatalogRecord
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, source, artifact_count, created_at
		 FROM catalogs WHERE name = $1`,
		name,
	).Scan(&record.ID, &record.Name, &record.Source, &record.Artifacts, &record.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get catalog: %w", err)
	}
	return &record, nil
}

// GetCatalogArtifacts loads every artifact of a catalog, ordered by artifact
// id for reproducible catalog reconstruction.
func (db *DB) GetCatalogArtifacts(ctx context.Context, catalogID uuid.UUID) ([]types.Artifact, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT artifact_id, kind, bounded_context, full_content,
		        COALESCE(signature_view, ''), size_full, size_signature, semantic_weight
		 FROM catalog_artifacts
		 WHERE catalog_id = $1
		 ORDER BY artifact_id`,
		catalogID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog artifacts: %w", err)
	}
	defer rows.Close()

	var artifacts []types.Artifact
	for rows.Next() {
		var a types.Artifact
		var kind string
		if err := rows.Scan(&a.ID, &kind, &a.BoundedContext, &a.FullContent,
			&a.SignatureView, &a.SizeFull, &a.SizeSignature, &a.SemanticWeight); err != nil {
			return nil, fmt.Errorf("failed to scan artifact: %w", err)
		}
		a.Kind = types.Kind(kind)
		artifacts = append(artifacts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalog artifacts: %w", err)
	}
	return artifacts, nil
}

// ListCatalogs returns all catalog records, newest first
func (db *DB) ListCatalogs(ctx context.Context) ([]CatalogRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, source, artifact_count, created_at
		 FROM catalogs ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalogs: %w", err)
	}
	defer rows.Close()

	var records []CatalogRecord
	for rows.Next() {
		var record CatalogRecord
		if err := rows.Scan(&record.ID, &record.Name, &record.Source, &record.Artifacts, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan catalog: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalogs: %w", err)
	}
	return records, nil
}

// DeleteCatalog removes a catalog and its artifacts
func (db *DB) DeleteCatalog(ctx context.Context, catalogID uuid.UUID) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM catalogs WHERE id = $1`, catalogID)
	if err != nil {
		return fmt.Errorf("failed to delete catalog: %w", err)
	}
	return nil
}

// SavePolicyTable stores a policy table JSON blob under a name so serve-mode
// deployments can manage policies without file access.
func (db *DB) SavePolicyTable(ctx context.Context, name string, table *types.PolicyTable) error {
	data, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("failed to marshal policy table: %w", err)
	}
	_, err = db.pool.Exec(ctx,
		`INSERT INTO policy_tables (name, content)
		 VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET content = $2, updated_at = NOW()`,
		name, data,
	)
	if err != nil {
		return fmt.Errorf("failed to save policy table: %w", err)
	}
	return nil
}

// GetPolicyTable retrieves a stored policy table by name, nil if absent
func (db *DB) GetPolicyTable(ctx context.Context, name string) (*types.PolicyTable, error) {
	var data []byte
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM policy_tables WHERE name = $1`, name,
	).Scan(&data)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get policy table: %w", err)
	}

	var table types.PolicyTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse stored policy table: %w", err)
	}
	return &table, nil
}

// nullIfEmpty converts empty strings to nil for nullable columns
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
