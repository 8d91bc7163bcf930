// Package letters persists time capsule letters.
package letters

import (
	"context"
	"time"

	"github.com/dmitrijs2005/lightway/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, letter *models.Letter) (*models.Letter, error)
	GetByID(ctx context.Context, id string) (*models.Letter, error)
	GetForUpdate(ctx context.Context, id string) (*models.Letter, error)
	UpdateState(ctx context.Context, letter *models.Letter) error
	SelectOpenable(ctx context.Context, now time.Time) ([]*models.Letter, error)
	DestroyVoid(ctx context.Context, now time.Time) (int, error)
}
