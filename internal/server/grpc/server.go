// Package grpc exposes the Lightway services over gRPC using the JSON codec
// declared in internal/api.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/lightway/internal/api"
	"github.com/dmitrijs2005/lightway/internal/logging"
	"github.com/dmitrijs2005/lightway/internal/server/models"
	"github.com/dmitrijs2005/lightway/internal/server/services"
	"google.golang.org/grpc"
)

// LetterService is the subset of services.LetterService the transport uses.
type LetterService interface {
	CreateLetter(ctx context.Context, content, title string, openAt time.Time, sendToVoid bool, creatorIP string) (*models.Letter, error)
	OpenLetter(ctx context.Context, id string) (*models.OpenedLetter, error)
	ListOpenable(ctx context.Context) ([]*models.Letter, error)
}

// GalleryService is the subset of services.GalleryService the transport uses.
type GalleryService interface {
	CreateIdentity(ctx context.Context, creatorIP string) (*services.IdentitySession, error)
	GetIdentity(ctx context.Context, token string) (*models.FacadeIdentity, error)
	CreateContent(ctx context.Context, token, text string, withImage bool) (*services.CreatedContent, error)
	ListGallery(ctx context.Context, limit, offset int) ([]models.GalleryItem, error)
	Applaud(ctx context.Context, contentID, applauderIP string) (int, error)
}

type GRPCServer struct {
	address   string
	letters   LetterService
	gallery   GalleryService
	logger    logging.Logger
	jwtSecret []byte
	now       func() time.Time
}

func NewGRPCServer(a string, l logging.Logger, ls LetterService, gs GalleryService, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		letters:   ls,
		gallery:   gs,
		jwtSecret: []byte(secretKey),
		now:       time.Now,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.identityTokenInterceptor))
	api.RegisterLightwayServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis and stops gracefully once ctx is done.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	<-stopped
	return nil
}
