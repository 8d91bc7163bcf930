// Package identities persists facade identities.
package identities

import (
	"context"
	"time"

	"github.com/dmitrijs2005/lightway/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, identity *models.FacadeIdentity) (*models.FacadeIdentity, error)
	GetActiveByToken(ctx context.Context, token string, now time.Time) (*models.FacadeIdentity, error)
	TokenExists(ctx context.Context, token string) (bool, error)
	ExpireStale(ctx context.Context, now time.Time) (int, error)
}
