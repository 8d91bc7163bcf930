package identities

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

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, identity *models.FacadeIdentity) (*models.FacadeIdentity, error) {
	query :=
		`INSERT INTO facade_identities (identity_token, expires_at, state, creator_ip_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		identity.Token, identity.ExpiresAt, string(identity.State), identity.CreatorIPHash,
	).Scan(&identity.ID, &identity.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return identity, nil
}

// GetActiveByToken returns the identity for token if it is active and has
// not expired at now, common.ErrorNotFound otherwise.
func (r *PostgresRepository) GetActiveByToken(ctx context.Context, token string, now time.Time) (*models.FacadeIdentity, error) {
	query :=
		`SELECT id, identity_token, created_at, expires_at, state, creator_ip_hash
		 FROM facade_identities
		 WHERE identity_token = $1 AND state = 'active' AND expires_at > $2
		 `

	var (
		identity models.FacadeIdentity
		state    string
	)
	err := r.db.QueryRowContext(ctx, query, token, now).Scan(
		&identity.ID, &identity.Token, &identity.CreatedAt, &identity.ExpiresAt, &state, &identity.CreatorIPHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	identity.State = models.IdentityState(state)

	return &identity, nil
}

func (r *PostgresRepository) TokenExists(ctx context.Context, token string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM facade_identities WHERE identity_token = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, token).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

// ExpireStale moves every active identity whose expiry has passed to
// expired and returns how many were changed.
func (r *PostgresRepository) ExpireStale(ctx context.Context, now time.Time) (int, error) {
	query :=
		`UPDATE facade_identities SET state = 'expired'
		 WHERE state = 'active' AND expires_at <= $1
		 `

	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := dbx.RowsAffected(res)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
