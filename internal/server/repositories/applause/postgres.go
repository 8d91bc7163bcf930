package applause

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/lightway/internal/dbx"
	"github.com/dmitrijs2005/lightway/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, a *models.Applause) (bool, error) {
	query := `
		INSERT INTO facade_applause (content_id, applauder_ip_hash)
		VALUES ($1, $2)
		ON CONFLICT (content_id, applauder_ip_hash) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query, a.ContentID, a.ApplauderIPHash)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := dbx.RowsAffected(res)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
