package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/lightway/internal/api"
	"github.com/dmitrijs2005/lightway/internal/client/models"
	"github.com/dmitrijs2005/lightway/internal/common"
)

type fakeClient struct {
	err error

	createLetterResp *api.CreateLetterResponse
	gotOpenAt        time.Time
	gotVoid          bool

	openResp *api.OpenLetterResponse
	openable []api.LetterSummary

	sessionToken    string
	identityResp    *api.CreateIdentityResponse
	getIdentityResp *api.GetIdentityResponse
	contentResp     *api.CreateContentResponse
	gotWithImage    bool
	items           []api.GalleryItem
	applause        int
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) Ping(ctx context.Context) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, f.err
}

func (f *fakeClient) CreateLetter(ctx context.Context, content, title string, openAt time.Time, sendToVoid bool) (*api.CreateLetterResponse, error) {
	f.gotOpenAt = openAt
	f.gotVoid = sendToVoid
	return f.createLetterResp, f.err
}

func (f *fakeClient) OpenLetter(ctx context.Context, id string) (*api.OpenLetterResponse, error) {
	return f.openResp, f.err
}

func (f *fakeClient) ListOpenableLetters(ctx context.Context) ([]api.LetterSummary, error) {
	return f.openable, f.err
}

func (f *fakeClient) SetSessionToken(token string) { f.sessionToken = token }

func (f *fakeClient) CreateIdentity(ctx context.Context) (*api.CreateIdentityResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sessionToken = f.identityResp.SessionToken
	return f.identityResp, nil
}

func (f *fakeClient) GetIdentity(ctx context.Context) (*api.GetIdentityResponse, error) {
	return f.getIdentityResp, f.err
}

func (f *fakeClient) CreateContent(ctx context.Context, text string, withImage bool) (*api.CreateContentResponse, error) {
	f.gotWithImage = withImage
	return f.contentResp, f.err
}

func (f *fakeClient) ListGallery(ctx context.Context, limit, offset int) ([]api.GalleryItem, error) {
	return f.items, f.err
}

func (f *fakeClient) Applaud(ctx context.Context, contentID string) (int, error) {
	return f.applause, f.err
}

type fakeLedger struct {
	letters []*models.SealedLetter
	addErr  error
	opened  map[string]time.Time
}

func (f *fakeLedger) Add(ctx context.Context, l *models.SealedLetter) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.letters = append(f.letters, l)
	return nil
}

func (f *fakeLedger) List(ctx context.Context) ([]*models.SealedLetter, error) {
	return f.letters, nil
}

func (f *fakeLedger) MarkOpened(ctx context.Context, id string, at time.Time) error {
	for _, l := range f.letters {
		if l.ID == id {
			if f.opened == nil {
				f.opened = map[string]time.Time{}
			}
			f.opened[id] = at
			return nil
		}
	}
	return common.ErrorNotFound
}

type fakeMetadata struct {
	values map[string]string
}

func newFakeMetadata() *fakeMetadata {
	return &fakeMetadata{values: map[string]string{}}
}

func (f *fakeMetadata) Get(ctx context.Context, key string) (string, error) {
	v, ok := f.values[key]
	if !ok {
		return "", common.ErrorNotFound
	}
	return v, nil
}

func (f *fakeMetadata) Set(ctx context.Context, key, value string) error {
	f.values[key] = value
	return nil
}

func (f *fakeMetadata) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.values, k)
	}
	return nil
}
