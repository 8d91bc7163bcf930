// Package services holds Lightway's business logic: sealing and opening
// time capsule letters, and the short-lived facade gallery.
package services

import (
	"context"
	"database/sql"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/lightway/internal/common"
	"github.com/dmitrijs2005/lightway/internal/cryptox"
	"github.com/dmitrijs2005/lightway/internal/dbx"
	sc "github.com/dmitrijs2005/lightway/internal/server/config"
	"github.com/dmitrijs2005/lightway/internal/server/models"
	"github.com/dmitrijs2005/lightway/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/lightway/internal/timex"
	"github.com/google/uuid"
)

type LetterService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	timelock    *cryptox.TimeLock
	config      *sc.Config
	clock       timex.Clock
}

func NewLetterService(db *sql.DB, repomanager repomanager.RepositoryManager, timelock *cryptox.TimeLock,
	config *sc.Config, clock timex.Clock) *LetterService {
	return &LetterService{
		db:          db,
		repomanager: repomanager,
		timelock:    timelock,
		config:      config,
		clock:       clock,
	}
}

// CreateLetter seals content (and the optional title) until openAt. A void
// letter is sealed under the current instant and stored already destroyed:
// nobody will ever open it.
func (s *LetterService) CreateLetter(ctx context.Context, content, title string, openAt time.Time,
	sendToVoid bool, creatorIP string) (*models.Letter, error) {

	if strings.TrimSpace(content) == "" {
		return nil, common.ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > s.config.MaxLetterLength {
		return nil, common.ErrLetterTooLong
	}

	now := s.clock.Now()
	openAt = cryptox.CanonicalInstant(openAt)

	if sendToVoid {
		openAt = cryptox.CanonicalInstant(now)
	} else {
		if !openAt.After(now) {
			return nil, common.ErrOpenDateNotInFuture
		}
		if openAt.After(now.Add(s.config.MaxFutureDuration)) {
			return nil, common.ErrOpenDateTooFar
		}
	}

	encContent, err := s.timelock.Encrypt([]byte(content), openAt)
	if err != nil {
		return nil, err
	}

	var encTitle []byte
	if title != "" {
		encTitle, err = s.timelock.Encrypt([]byte(title), openAt)
		if err != nil {
			return nil, err
		}
	}

	letter := &models.Letter{
		EncryptedContent: encContent,
		EncryptedTitle:   encTitle,
		OpenAt:           openAt,
		State:            models.LetterSealed,
		SendToVoid:       sendToVoid,
		CreatorIPHash:    hashIfSet(creatorIP),
	}

	if sendToVoid {
		if letter.State, err = letter.State.Transition(models.LetterDestroyed); err != nil {
			return nil, err
		}
		letter.DestroyedAt = &now
	}

	return s.repomanager.Letters(s.db).Create(ctx, letter)
}

// OpenLetter decrypts a letter whose open instant has passed and marks it
// opened. The first successful open stamps OpenedAt; later opens return the
// same plaintext again.
func (s *LetterService) OpenLetter(ctx context.Context, id string) (*models.OpenedLetter, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}

	var opened *models.OpenedLetter

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Letters(tx)

		letter, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if letter.State == models.LetterDestroyed {
			return common.ErrLetterDestroyed
		}

		now := s.clock.Now()
		if !letter.CanBeOpened(now) {
			return cryptox.ErrNotYetOpenable
		}

		content, err := s.timelock.Decrypt(letter.EncryptedContent, letter.OpenAt, now)
		if err != nil {
			return err
		}

		var title []byte
		if len(letter.EncryptedTitle) > 0 {
			if title, err = s.timelock.Decrypt(letter.EncryptedTitle, letter.OpenAt, now); err != nil {
				return err
			}
		}

		if letter.State, err = letter.State.Transition(models.LetterOpened); err != nil {
			return err
		}
		if letter.OpenedAt == nil {
			letter.OpenedAt = &now
		}

		if err := repo.UpdateState(ctx, letter); err != nil {
			return err
		}

		opened = &models.OpenedLetter{
			ID:        letter.ID,
			Title:     string(title),
			Content:   string(content),
			CreatedAt: letter.CreatedAt,
			OpenedAt:  *letter.OpenedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return opened, nil
}

// ListOpenable returns sealed letters that have reached their open instant.
func (s *LetterService) ListOpenable(ctx context.Context) ([]*models.Letter, error) {
	return s.repomanager.Letters(s.db).SelectOpenable(ctx, s.clock.Now())
}

// DestroyVoidLetters finishes off void letters and scrubs their ciphertext.
func (s *LetterService) DestroyVoidLetters(ctx context.Context) (int, error) {
	return s.repomanager.Letters(s.db).DestroyVoid(ctx, s.clock.Now())
}

func hashIfSet(addr string) string {
	if addr == "" {
		return ""
	}
	return cryptox.HashIdentifier(addr)
}
