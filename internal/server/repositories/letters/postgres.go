package letters

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

const letterColumns = `id, encrypted_content, encrypted_title, created_at, open_at, state,
		send_to_void, opened_at, destroyed_at, creator_ip_hash`

// PostgresRepository stores letters over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the letter and fills in its generated id and created_at.
func (r *PostgresRepository) Create(ctx context.Context, letter *models.Letter) (*models.Letter, error) {
	query := `
		INSERT INTO letters (encrypted_content, encrypted_title, open_at, state, send_to_void, destroyed_at, creator_ip_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		letter.EncryptedContent, letter.EncryptedTitle, letter.OpenAt, string(letter.State),
		letter.SendToVoid, nullTime(letter.DestroyedAt), letter.CreatorIPHash,
	).Scan(&letter.ID, &letter.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return letter, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Letter, error) {
	query := `SELECT ` + letterColumns + ` FROM letters WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetForUpdate reads the letter and locks its row until the surrounding
// transaction ends.
func (r *PostgresRepository) GetForUpdate(ctx context.Context, id string) (*models.Letter, error) {
	query := `SELECT ` + letterColumns + ` FROM letters WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) getOne(ctx context.Context, query, id string) (*models.Letter, error) {
	letter, err := scanLetter(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return letter, nil
}

// UpdateState persists the letter's state together with its opened and
// destroyed timestamps.
func (r *PostgresRepository) UpdateState(ctx context.Context, letter *models.Letter) error {
	query := `UPDATE letters SET state = $2, opened_at = $3, destroyed_at = $4 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		letter.ID, string(letter.State), nullTime(letter.OpenedAt), nullTime(letter.DestroyedAt))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
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

// SelectOpenable returns sealed, non-void letters whose open instant has
// passed, oldest first.
func (r *PostgresRepository) SelectOpenable(ctx context.Context, now time.Time) ([]*models.Letter, error) {
	query := `SELECT ` + letterColumns + ` FROM letters
		WHERE open_at <= $1 AND state = 'sealed' AND NOT send_to_void
		ORDER BY open_at`

	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Letter
	for rows.Next() {
		letter, err := scanLetter(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, letter)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// DestroyVoid moves void letters that are still sealed to destroyed and
// scrubs the ciphertext of every void letter that still carries one. It
// returns the number of letters touched.
func (r *PostgresRepository) DestroyVoid(ctx context.Context, now time.Time) (int, error) {
	query := `
		UPDATE letters
		SET state = 'destroyed',
			destroyed_at = COALESCE(destroyed_at, $1),
			encrypted_content = ''::bytea,
			encrypted_title = NULL
		WHERE send_to_void
		  AND state <> 'opened'
		  AND (state <> 'destroyed' OR octet_length(encrypted_content) > 0 OR encrypted_title IS NOT NULL)
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

type scanner interface {
	Scan(dest ...any) error
}

func scanLetter(row scanner) (*models.Letter, error) {
	var (
		l                     models.Letter
		state                 string
		openedAt, destroyedAt sql.NullTime
	)
	if err := row.Scan(&l.ID, &l.EncryptedContent, &l.EncryptedTitle, &l.CreatedAt, &l.OpenAt, &state,
		&l.SendToVoid, &openedAt, &destroyedAt, &l.CreatorIPHash); err != nil {
		return nil, err
	}
	l.State = models.LetterState(state)
	l.OpenedAt = timePtr(openedAt)
	l.DestroyedAt = timePtr(destroyedAt)
	return &l, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}
