package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/lightway/internal/api"
	"github.com/dmitrijs2005/lightway/internal/client/client"
	"github.com/dmitrijs2005/lightway/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/lightway/internal/common"
	"github.com/dmitrijs2005/lightway/internal/netx"
	"github.com/dmitrijs2005/lightway/internal/timex"
)

// ErrNoIdentity means no usable facade identity is stored locally.
var ErrNoIdentity = errors.New("no active identity, create one with 'identity new'")

// Test seams.
var (
	readFile = os.ReadFile
	upload   = netx.UploadToS3PresignedURL
)

// GalleryService defines the facade gallery operations of the CLI. The
// current session survives restarts through the metadata store.
type GalleryService interface {
	RestoreSession(ctx context.Context) error
	NewIdentity(ctx context.Context) (*api.CreateIdentityResponse, error)
	Identity(ctx context.Context) (*api.GetIdentityResponse, error)
	Post(ctx context.Context, text, imagePath string) (*api.CreateContentResponse, error)
	Gallery(ctx context.Context, limit, offset int) ([]api.GalleryItem, error)
	Applaud(ctx context.Context, contentID string) (int, error)
}

type galleryService struct {
	client   client.Client
	metadata metadata.Repository
	clock    timex.Clock
	active   bool
}

func NewGalleryService(client client.Client, metadata metadata.Repository, clock timex.Clock) GalleryService {
	return &galleryService{client: client, metadata: metadata, clock: clock}
}

// RestoreSession loads a stored, unexpired session token into the client.
// An expired one is forgotten.
func (s *galleryService) RestoreSession(ctx context.Context) error {
	token, err := s.metadata.Get(ctx, metadata.KeySessionToken)
	if errors.Is(err, common.ErrorNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	raw, err := s.metadata.Get(ctx, metadata.KeySessionExpiresAt)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return err
	}
	expiresAt, perr := time.Parse(time.RFC3339Nano, raw)
	if perr != nil || !s.clock.Now().Before(expiresAt) {
		return s.forget(ctx)
	}

	s.client.SetSessionToken(token)
	s.active = true
	return nil
}

func (s *galleryService) NewIdentity(ctx context.Context) (*api.CreateIdentityResponse, error) {
	resp, err := s.client.CreateIdentity(ctx)
	if err != nil {
		return nil, err
	}
	s.active = true

	if err := s.metadata.Set(ctx, metadata.KeyIdentityToken, resp.IdentityToken); err != nil {
		return resp, fmt.Errorf("save identity: %w", err)
	}
	if err := s.metadata.Set(ctx, metadata.KeySessionToken, resp.SessionToken); err != nil {
		return resp, fmt.Errorf("save identity: %w", err)
	}
	if err := s.metadata.Set(ctx, metadata.KeySessionExpiresAt, resp.ExpiresAt.UTC().Format(time.RFC3339Nano)); err != nil {
		return resp, fmt.Errorf("save identity: %w", err)
	}
	return resp, nil
}

func (s *galleryService) Identity(ctx context.Context) (*api.GetIdentityResponse, error) {
	if !s.active {
		return nil, ErrNoIdentity
	}
	resp, err := s.client.GetIdentity(ctx)
	if err != nil {
		return nil, s.dropIfRejected(ctx, err)
	}
	return resp, nil
}

// Post publishes text and, when imagePath is set, uploads the image to the
// presigned URL the server hands back.
func (s *galleryService) Post(ctx context.Context, text, imagePath string) (*api.CreateContentResponse, error) {
	if !s.active {
		return nil, ErrNoIdentity
	}

	var image []byte
	if imagePath != "" {
		var err error
		if image, err = readFile(imagePath); err != nil {
			return nil, fmt.Errorf("read image: %w", err)
		}
	}

	resp, err := s.client.CreateContent(ctx, text, image != nil)
	if err != nil {
		return nil, s.dropIfRejected(ctx, err)
	}

	if image != nil {
		if resp.UploadURL == "" {
			return resp, fmt.Errorf("server returned no upload URL")
		}
		if err := upload(ctx, resp.UploadURL, image); err != nil {
			return resp, fmt.Errorf("upload image: %w", err)
		}
	}
	return resp, nil
}

func (s *galleryService) Gallery(ctx context.Context, limit, offset int) ([]api.GalleryItem, error) {
	return s.client.ListGallery(ctx, limit, offset)
}

func (s *galleryService) Applaud(ctx context.Context, contentID string) (int, error) {
	return s.client.Applaud(ctx, contentID)
}

// dropIfRejected forgets the local session when the server no longer
// accepts it.
func (s *galleryService) dropIfRejected(ctx context.Context, err error) error {
	if !errors.Is(err, client.ErrUnauthorized) {
		return err
	}
	if ferr := s.forget(ctx); ferr != nil {
		return errors.Join(err, ferr)
	}
	return fmt.Errorf("%w (%w)", ErrNoIdentity, err)
}

func (s *galleryService) forget(ctx context.Context) error {
	s.active = false
	s.client.SetSessionToken("")
	return s.metadata.Delete(ctx, metadata.KeyIdentityToken, metadata.KeySessionToken, metadata.KeySessionExpiresAt)
}
