package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/lightway/internal/api"
	"github.com/dmitrijs2005/lightway/internal/common"
	"github.com/dmitrijs2005/lightway/internal/logging"
	"github.com/dmitrijs2005/lightway/internal/server/auth"
	"github.com/dmitrijs2005/lightway/internal/server/models"
	"github.com/dmitrijs2005/lightway/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

// ---- fakes ----

type fakeLetters struct {
	created   *models.Letter
	createErr error
	gotIP     string

	opened  *models.OpenedLetter
	openErr error

	openable []*models.Letter
	listErr  error
}

func (f *fakeLetters) CreateLetter(ctx context.Context, content, title string, openAt time.Time, sendToVoid bool, creatorIP string) (*models.Letter, error) {
	f.gotIP = creatorIP
	return f.created, f.createErr
}

func (f *fakeLetters) OpenLetter(ctx context.Context, id string) (*models.OpenedLetter, error) {
	return f.opened, f.openErr
}

func (f *fakeLetters) ListOpenable(ctx context.Context) ([]*models.Letter, error) {
	return f.openable, f.listErr
}

type fakeGallery struct {
	session   *services.IdentitySession
	createErr error

	identity    *models.FacadeIdentity
	identityErr error
	gotToken    string

	content    *services.CreatedContent
	contentErr error

	items   []models.GalleryItem
	listErr error

	applause   int
	applaudErr error
	gotIP      string
}

func (f *fakeGallery) CreateIdentity(ctx context.Context, creatorIP string) (*services.IdentitySession, error) {
	f.gotIP = creatorIP
	return f.session, f.createErr
}

func (f *fakeGallery) GetIdentity(ctx context.Context, token string) (*models.FacadeIdentity, error) {
	f.gotToken = token
	return f.identity, f.identityErr
}

func (f *fakeGallery) CreateContent(ctx context.Context, token, text string, withImage bool) (*services.CreatedContent, error) {
	f.gotToken = token
	return f.content, f.contentErr
}

func (f *fakeGallery) ListGallery(ctx context.Context, limit, offset int) ([]models.GalleryItem, error) {
	return f.items, f.listErr
}

func (f *fakeGallery) Applaud(ctx context.Context, contentID, applauderIP string) (int, error) {
	f.gotIP = applauderIP
	return f.applause, f.applaudErr
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:0", nopLogger{}, &fakeLetters{}, &fakeGallery{}, "secret")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on graceful stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:99999", nopLogger{}, &fakeLetters{}, &fakeGallery{}, "secret")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := srv.Run(ctx); err == nil {
		t.Fatal("expected error from Run on bad address, got nil")
	}
}

// startBufconn serves s over an in-memory listener and returns a client for it.
func startBufconn(t *testing.T, s *GRPCServer) *api.Client {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		<-done
	})

	return api.NewClient(conn)
}

func TestServe_RoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	openAt := now.Add(time.Hour)

	letters := &fakeLetters{
		created: &models.Letter{ID: "l1", OpenAt: openAt, CreatedAt: now},
		openErr: common.ErrLetterDestroyed,
	}
	gallery := &fakeGallery{
		identity: &models.FacadeIdentity{Token: "tok", CreatedAt: now, ExpiresAt: now.Add(2*time.Hour + 5*time.Minute)},
	}

	s := NewGRPCServer("", nopLogger{}, letters, gallery, "secret")
	s.now = func() time.Time { return now }
	client := startBufconn(t, s)

	ctx := context.Background()

	ping, err := client.Ping(ctx, &api.PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "OK", ping.Status)
	assert.Equal(t, common.AppName, ping.App)

	created, err := client.CreateLetter(ctx, &api.CreateLetterRequest{Content: "hi", OpenAt: openAt})
	require.NoError(t, err)
	assert.Equal(t, "l1", created.ID)
	assert.True(t, created.OpenAt.Equal(openAt))
	assert.NotEmpty(t, created.Message)

	_, err = client.OpenLetter(ctx, &api.OpenLetterRequest{ID: "l1"})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	_, err = client.GetIdentity(ctx, &api.GetIdentityRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	session, err := auth.GenerateToken("tok", []byte("secret"), now, now.Add(time.Hour))
	require.NoError(t, err)
	authed := metadata.AppendToOutgoingContext(ctx, common.IdentityTokenHeaderName, session)

	ident, err := client.GetIdentity(authed, &api.GetIdentityRequest{})
	require.NoError(t, err)
	assert.Equal(t, "tok", ident.IdentityToken)
	assert.Equal(t, "2h 5m", ident.TimeRemaining)
	assert.Equal(t, "tok", gallery.gotToken)
}
