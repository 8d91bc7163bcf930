package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/lightway/internal/common"
	"github.com/dmitrijs2005/lightway/internal/dbx"
	sc "github.com/dmitrijs2005/lightway/internal/server/config"
	"github.com/dmitrijs2005/lightway/internal/server/models"
	"github.com/dmitrijs2005/lightway/internal/server/repositories/applause"
	"github.com/dmitrijs2005/lightway/internal/server/repositories/contents"
	"github.com/dmitrijs2005/lightway/internal/server/repositories/identities"
	"github.com/dmitrijs2005/lightway/internal/server/repositories/letters"
	"github.com/google/uuid"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func testConfig() *sc.Config {
	return &sc.Config{
		SecretKey:         "k",
		EncryptionKey:     "master",
		IdentityLifetime:  24 * time.Hour,
		MaxLetterLength:   20,
		MaxFutureDuration: 5 * 365 * 24 * time.Hour,
		MaxContentLength:  10,
		MaxApplause:       2,
	}
}

// --- letters ---

type fakeLettersRepo struct {
	byID map[string]*models.Letter

	createErr error
	updateErr error

	openable    []*models.Letter
	openableNow time.Time
	destroyed   int
	destroyNow  time.Time
}

func newFakeLetters() *fakeLettersRepo {
	return &fakeLettersRepo{byID: map[string]*models.Letter{}}
}

func (f *fakeLettersRepo) Create(ctx context.Context, l *models.Letter) (*models.Letter, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	l.ID = uuid.NewString()
	l.CreatedAt = time.Now()
	cp := *l
	f.byID[l.ID] = &cp
	return l, nil
}

func (f *fakeLettersRepo) GetByID(ctx context.Context, id string) (*models.Letter, error) {
	l, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeLettersRepo) GetForUpdate(ctx context.Context, id string) (*models.Letter, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeLettersRepo) UpdateState(ctx context.Context, l *models.Letter) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	cp := *l
	f.byID[l.ID] = &cp
	return nil
}

func (f *fakeLettersRepo) SelectOpenable(ctx context.Context, now time.Time) ([]*models.Letter, error) {
	f.openableNow = now
	return f.openable, nil
}

func (f *fakeLettersRepo) DestroyVoid(ctx context.Context, now time.Time) (int, error) {
	f.destroyNow = now
	return f.destroyed, nil
}

// --- identities ---

type fakeIdentitiesRepo struct {
	byToken map[string]*models.FacadeIdentity

	existsAnswers []bool
	existsCalls   int

	expired   int
	expireNow time.Time
}

func newFakeIdentities() *fakeIdentitiesRepo {
	return &fakeIdentitiesRepo{byToken: map[string]*models.FacadeIdentity{}}
}

func (f *fakeIdentitiesRepo) Create(ctx context.Context, i *models.FacadeIdentity) (*models.FacadeIdentity, error) {
	i.ID = uuid.NewString()
	cp := *i
	f.byToken[i.Token] = &cp
	return i, nil
}

func (f *fakeIdentitiesRepo) GetActiveByToken(ctx context.Context, token string, now time.Time) (*models.FacadeIdentity, error) {
	i, ok := f.byToken[token]
	if !ok || !i.Valid(now) {
		return nil, common.ErrorNotFound
	}
	cp := *i
	return &cp, nil
}

func (f *fakeIdentitiesRepo) TokenExists(ctx context.Context, token string) (bool, error) {
	defer func() { f.existsCalls++ }()
	if f.existsCalls < len(f.existsAnswers) {
		return f.existsAnswers[f.existsCalls], nil
	}
	_, ok := f.byToken[token]
	return ok, nil
}

func (f *fakeIdentitiesRepo) ExpireStale(ctx context.Context, now time.Time) (int, error) {
	f.expireNow = now
	return f.expired, nil
}

// --- contents ---

type fakeContentsRepo struct {
	byID    map[string]*models.FacadeContent
	created []*models.FacadeContent

	gallery                 []models.GalleryEntry
	gotLimit, gotOffset     int
	incrementErr, createErr error
}

func newFakeContents() *fakeContentsRepo {
	return &fakeContentsRepo{byID: map[string]*models.FacadeContent{}}
}

func (f *fakeContentsRepo) Create(ctx context.Context, c *models.FacadeContent) (*models.FacadeContent, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	c.ID = uuid.NewString()
	f.created = append(f.created, c)
	cp := *c
	f.byID[c.ID] = &cp
	return c, nil
}

func (f *fakeContentsRepo) GetForUpdate(ctx context.Context, id string) (*models.FacadeContent, error) {
	c, ok := f.byID[id]
	if !ok || c.Deleted {
		return nil, common.ErrorNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeContentsRepo) IncrementApplause(ctx context.Context, id string) (int, error) {
	if f.incrementErr != nil {
		return 0, f.incrementErr
	}
	f.byID[id].ApplauseCount++
	return f.byID[id].ApplauseCount, nil
}

func (f *fakeContentsRepo) ListGallery(ctx context.Context, now time.Time, limit, offset int) ([]models.GalleryEntry, error) {
	f.gotLimit, f.gotOffset = limit, offset
	return f.gallery, nil
}

// --- applause ---

type fakeApplauseRepo struct {
	seen map[string]bool
}

func (f *fakeApplauseRepo) Create(ctx context.Context, a *models.Applause) (bool, error) {
	if f.seen == nil {
		f.seen = map[string]bool{}
	}
	k := a.ContentID + "/" + a.ApplauderIPHash
	if f.seen[k] {
		return false, nil
	}
	f.seen[k] = true
	return true, nil
}

// --- manager ---

type fakeRepoManager struct {
	letters    *fakeLettersRepo
	identities *fakeIdentitiesRepo
	contents   *fakeContentsRepo
	applause   *fakeApplauseRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		letters:    newFakeLetters(),
		identities: newFakeIdentities(),
		contents:   newFakeContents(),
		applause:   &fakeApplauseRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Letters(db dbx.DBTX) letters.Repository       { return m.letters }
func (m *fakeRepoManager) Identities(db dbx.DBTX) identities.Repository { return m.identities }
func (m *fakeRepoManager) Contents(db dbx.DBTX) contents.Repository     { return m.contents }
func (m *fakeRepoManager) Applause(db dbx.DBTX) applause.Repository     { return m.applause }

// --- storage ---

type fakeStorage struct {
	putKeys []string
	err     error
}

func (f *fakeStorage) PresignPut(ctx context.Context, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.putKeys = append(f.putKeys, key)
	return "https://s3.local/put/" + key, nil
}

func (f *fakeStorage) PresignGet(ctx context.Context, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "https://s3.local/get/" + key, nil
}
