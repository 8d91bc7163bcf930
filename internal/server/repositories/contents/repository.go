// Package contents persists gallery posts.
package contents

import (
	"context"
	"time"

	"github.com/dmitrijs2005/lightway/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, content *models.FacadeContent) (*models.FacadeContent, error)
	GetForUpdate(ctx context.Context, id string) (*models.FacadeContent, error)
	IncrementApplause(ctx context.Context, id string) (int, error)
	ListGallery(ctx context.Context, now time.Time, limit, offset int) ([]models.GalleryEntry, error)
}
