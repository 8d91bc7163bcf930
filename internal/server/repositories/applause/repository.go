// Package applause records who applauded which gallery post.
package applause

import (
	"context"

	"github.com/dmitrijs2005/lightway/internal/server/models"
)

type Repository interface {
	// Create stores the applause and reports whether a new row was written.
	// A second applause from the same hashed address yields false.
	Create(ctx context.Context, a *models.Applause) (bool, error)
}
