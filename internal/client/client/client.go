package client

import (
	"context"
	"time"

	"github.com/dmitrijs2005/lightway/internal/api"
)

type Client interface {
	Close() error
	Ping(ctx context.Context) (*api.PingResponse, error)

	CreateLetter(ctx context.Context, content, title string, openAt time.Time, sendToVoid bool) (*api.CreateLetterResponse, error)
	OpenLetter(ctx context.Context, id string) (*api.OpenLetterResponse, error)
	ListOpenableLetters(ctx context.Context) ([]api.LetterSummary, error)

	// SetSessionToken replaces the token attached to identity-bound calls.
	SetSessionToken(token string)
	CreateIdentity(ctx context.Context) (*api.CreateIdentityResponse, error)
	GetIdentity(ctx context.Context) (*api.GetIdentityResponse, error)
	CreateContent(ctx context.Context, text string, withImage bool) (*api.CreateContentResponse, error)
	ListGallery(ctx context.Context, limit, offset int) ([]api.GalleryItem, error)
	Applaud(ctx context.Context, contentID string) (int, error)
}
