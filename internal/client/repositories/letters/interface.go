// Package letters is the client ledger of letters sealed from this machine.
package letters

import (
	"context"
	"time"

	"github.com/dmitrijs2005/lightway/internal/client/models"
)

type Repository interface {
	Add(ctx context.Context, l *models.SealedLetter) error
	List(ctx context.Context) ([]*models.SealedLetter, error)
	MarkOpened(ctx context.Context, id string, at time.Time) error
}
