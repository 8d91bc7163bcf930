package contents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/lightway/internal/common"
	"github.com/dmitrijs2005/lightway/internal/dbx"
	"github.com/dmitrijs2005/lightway/internal/server/models"
)

// PostgresRepository stores gallery contents over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, content *models.FacadeContent) (*models.FacadeContent, error) {
	query := `
		INSERT INTO facade_contents (facade_identity_id, content_text, image_key)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, applause_count
	`
	err := r.db.QueryRowContext(ctx, query, content.IdentityID, content.Text, content.ImageKey).
		Scan(&content.ID, &content.CreatedAt, &content.ApplauseCount)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return content, nil
}

// GetForUpdate returns a non-deleted content and locks its row for the rest
// of the transaction.
func (r *PostgresRepository) GetForUpdate(ctx context.Context, id string) (*models.FacadeContent, error) {
	query := `
		SELECT id, facade_identity_id, content_text, image_key, created_at, applause_count, is_deleted
		FROM facade_contents
		WHERE id = $1 AND NOT is_deleted
		FOR UPDATE
	`
	var c models.FacadeContent
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.IdentityID, &c.Text, &c.ImageKey, &c.CreatedAt, &c.ApplauseCount, &c.Deleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &c, nil
}

// IncrementApplause bumps the applause counter and returns the new value.
func (r *PostgresRepository) IncrementApplause(ctx context.Context, id string) (int, error) {
	query := `UPDATE facade_contents SET applause_count = applause_count + 1 WHERE id = $1 RETURNING applause_count`

	var count int
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&count); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

// ListGallery returns non-deleted contents whose poster identity is still
// active at now, newest first.
func (r *PostgresRepository) ListGallery(ctx context.Context, now time.Time, limit, offset int) ([]models.GalleryEntry, error) {
	query := `
		SELECT c.id, c.facade_identity_id, c.content_text, c.image_key, c.created_at, c.applause_count, i.expires_at
		FROM facade_contents c
		JOIN facade_identities i ON i.id = c.facade_identity_id
		WHERE NOT c.is_deleted AND i.state = 'active' AND i.expires_at > $1
		ORDER BY c.created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, now, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.GalleryEntry, 0, limit)
	for rows.Next() {
		var e models.GalleryEntry
		if err := rows.Scan(&e.Content.ID, &e.Content.IdentityID, &e.Content.Text, &e.Content.ImageKey,
			&e.Content.CreatedAt, &e.Content.ApplauseCount, &e.IdentityExpiresAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
