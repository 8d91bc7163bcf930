package letters

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/lightway/internal/client/models"
	"github.com/dmitrijs2005/lightway/internal/common"
	"github.com/dmitrijs2005/lightway/internal/dbx"
)

// Timestamps are stored as fixed-width UTC text so that they sort
// chronologically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Add(ctx context.Context, l *models.SealedLetter) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO letters (id, title, open_at, sealed_at, send_to_void)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, l.ID, l.Title, formatTime(l.OpenAt), formatTime(l.SealedAt), l.SendToVoid)
	if err != nil {
		return fmt.Errorf("add letter %s: %w", l.ID, err)
	}
	return nil
}

// List returns every remembered letter, earliest open date first.
func (r *SQLiteRepository) List(ctx context.Context) ([]*models.SealedLetter, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, open_at, sealed_at, send_to_void, opened_at
		FROM letters
		ORDER BY open_at, sealed_at
	`)
	if err != nil {
		return nil, fmt.Errorf("list letters: %w", err)
	}
	defer rows.Close()

	result := make([]*models.SealedLetter, 0)
	for rows.Next() {
		var (
			l                models.SealedLetter
			openAt, sealedAt string
			openedAt         sql.NullString
		)
		if err := rows.Scan(&l.ID, &l.Title, &openAt, &sealedAt, &l.SendToVoid, &openedAt); err != nil {
			return nil, fmt.Errorf("scan letter row: %w", err)
		}
		if l.OpenAt, err = time.Parse(timeLayout, openAt); err != nil {
			return nil, fmt.Errorf("letter %s open_at: %w", l.ID, err)
		}
		if l.SealedAt, err = time.Parse(timeLayout, sealedAt); err != nil {
			return nil, fmt.Errorf("letter %s sealed_at: %w", l.ID, err)
		}
		if openedAt.Valid {
			t, err := time.Parse(timeLayout, openedAt.String)
			if err != nil {
				return nil, fmt.Errorf("letter %s opened_at: %w", l.ID, err)
			}
			l.OpenedAt = &t
		}
		result = append(result, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate letter rows: %w", err)
	}

	return result, nil
}

// MarkOpened records the first time a letter was opened; later calls keep
// the original timestamp. Unknown ids yield common.ErrorNotFound.
func (r *SQLiteRepository) MarkOpened(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE letters SET opened_at = COALESCE(opened_at, ?) WHERE id = ?
	`, formatTime(at), id)
	if err != nil {
		return fmt.Errorf("mark letter %s opened: %w", id, err)
	}

	n, err := dbx.RowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
