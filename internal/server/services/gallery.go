package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/lightway/internal/common"
	"github.com/dmitrijs2005/lightway/internal/cryptox"
	"github.com/dmitrijs2005/lightway/internal/dbx"
	"github.com/dmitrijs2005/lightway/internal/server/auth"
	sc "github.com/dmitrijs2005/lightway/internal/server/config"
	"github.com/dmitrijs2005/lightway/internal/server/models"
	"github.com/dmitrijs2005/lightway/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/lightway/internal/timex"
	"github.com/google/uuid"
)

const (
	DefaultGalleryLimit = 10
	MaxGalleryLimit     = 50

	maxTokenAttempts = 5
)

// IdentitySession is a freshly created identity together with the signed
// session token the caller presents on later requests.
type IdentitySession struct {
	Identity     *models.FacadeIdentity
	SessionToken string
}

// CreatedContent is a stored gallery post. UploadURL is set when the post
// expects an image; the caller PUTs the image bytes there.
type CreatedContent struct {
	Content   *models.FacadeContent
	UploadURL string
}

type GalleryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	storage     ImageStorage
	config      *sc.Config
	clock       timex.Clock
}

func NewGalleryService(db *sql.DB, repomanager repomanager.RepositoryManager, storage ImageStorage,
	config *sc.Config, clock timex.Clock) *GalleryService {
	return &GalleryService{
		db:          db,
		repomanager: repomanager,
		storage:     storage,
		config:      config,
		clock:       clock,
	}
}

// CreateIdentity issues a new anonymous identity valid for the configured
// lifetime.
func (s *GalleryService) CreateIdentity(ctx context.Context, creatorIP string) (*IdentitySession, error) {
	repo := s.repomanager.Identities(s.db)

	token, err := s.uniqueToken(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	identity, err := repo.Create(ctx, &models.FacadeIdentity{
		Token:         token,
		ExpiresAt:     now.Add(s.config.IdentityLifetime),
		State:         models.IdentityActive,
		CreatorIPHash: hashIfSet(creatorIP),
	})
	if err != nil {
		return nil, err
	}

	session, err := auth.GenerateToken(identity.Token, []byte(s.config.SecretKey), now, identity.ExpiresAt)
	if err != nil {
		return nil, err
	}

	return &IdentitySession{Identity: identity, SessionToken: session}, nil
}

func (s *GalleryService) uniqueToken(ctx context.Context) (string, error) {
	repo := s.repomanager.Identities(s.db)

	for i := 0; i < maxTokenAttempts; i++ {
		token, err := cryptox.GenerateToken()
		if err != nil {
			return "", err
		}
		exists, err := repo.TokenExists(ctx, token)
		if err != nil {
			return "", err
		}
		if !exists {
			return token, nil
		}
	}
	return "", fmt.Errorf("no unique identity token after %d attempts: %w", maxTokenAttempts, common.ErrorInternal)
}

// GetIdentity returns the identity for token while it is active and
// unexpired.
func (s *GalleryService) GetIdentity(ctx context.Context, token string) (*models.FacadeIdentity, error) {
	identity, err := s.repomanager.Identities(s.db).GetActiveByToken(ctx, token, s.clock.Now())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidIdentity
		}
		return nil, err
	}
	return identity, nil
}

// CreateContent posts text and/or an image to the gallery on behalf of the
// identity behind token.
func (s *GalleryService) CreateContent(ctx context.Context, token, text string, withImage bool) (*CreatedContent, error) {
	identity, err := s.GetIdentity(ctx, token)
	if err != nil {
		return nil, err
	}

	if text == "" && !withImage {
		return nil, common.ErrEmptyContent
	}
	if utf8.RuneCountInString(text) > s.config.MaxContentLength {
		return nil, common.ErrContentTooLong
	}

	content := &models.FacadeContent{IdentityID: identity.ID, Text: text}
	result := &CreatedContent{Content: content}

	if withImage {
		content.ImageKey = NewImageKey(s.clock.Now())
		if result.UploadURL, err = s.storage.PresignPut(ctx, content.ImageKey); err != nil {
			return nil, err
		}
	}

	if _, err := s.repomanager.Contents(s.db).Create(ctx, content); err != nil {
		return nil, err
	}

	return result, nil
}

// ListGallery returns a page of live gallery posts, newest first.
func (s *GalleryService) ListGallery(ctx context.Context, limit, offset int) ([]models.GalleryItem, error) {
	limit, offset = clampPage(limit, offset)
	now := s.clock.Now()

	entries, err := s.repomanager.Contents(s.db).ListGallery(ctx, now, limit, offset)
	if err != nil {
		return nil, err
	}

	items := make([]models.GalleryItem, 0, len(entries))
	for _, e := range entries {
		item := models.GalleryItem{
			ID:            e.Content.ID,
			Text:          e.Content.Text,
			CreatedAt:     e.Content.CreatedAt,
			ApplauseCount: e.Content.ApplauseCount,
			TimeRemaining: TimeRemaining(e.IdentityExpiresAt, now),
		}
		if e.Content.ImageKey != "" {
			if item.ImageURL, err = s.storage.PresignGet(ctx, e.Content.ImageKey); err != nil {
				return nil, err
			}
		}
		items = append(items, item)
	}

	return items, nil
}

func clampPage(limit, offset int) (int, int) {
	switch {
	case limit == 0:
		limit = DefaultGalleryLimit
	case limit < 1:
		limit = 1
	case limit > MaxGalleryLimit:
		limit = MaxGalleryLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// Applaud records one applause per hashed address and returns the new
// applause count.
func (s *GalleryService) Applaud(ctx context.Context, contentID, applauderIP string) (int, error) {
	if _, err := uuid.Parse(contentID); err != nil {
		return 0, common.ErrorNotFound
	}

	var count int

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		contents := s.repomanager.Contents(tx)

		content, err := contents.GetForUpdate(ctx, contentID)
		if err != nil {
			return err
		}
		if content.ApplauseCount >= s.config.MaxApplause {
			return common.ErrApplauseLimit
		}

		inserted, err := s.repomanager.Applause(tx).Create(ctx, &models.Applause{
			ContentID:       contentID,
			ApplauderIPHash: cryptox.HashIdentifier(applauderIP),
		})
		if err != nil {
			return err
		}
		if !inserted {
			return common.ErrAlreadyApplauded
		}

		count, err = contents.IncrementApplause(ctx, contentID)
		return err
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

// CleanupExpiredIdentities expires identities whose lifetime has run out.
func (s *GalleryService) CleanupExpiredIdentities(ctx context.Context) (int, error) {
	return s.repomanager.Identities(s.db).ExpireStale(ctx, s.clock.Now())
}

// TimeRemaining renders how long an identity has left: "expired", "Nm" or
// "Hh Mm".
func TimeRemaining(expiresAt, now time.Time) string {
	remaining := expiresAt.Sub(now)
	if remaining <= 0 {
		return "expired"
	}

	hours := int(remaining / time.Hour)
	minutes := int(remaining % time.Hour / time.Minute)

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
