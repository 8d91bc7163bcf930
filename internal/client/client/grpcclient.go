package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/lightway/internal/api"
	"github.com/dmitrijs2005/lightway/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// lightwayAPI is the generated-style stub surface GRPCClient calls through.
type lightwayAPI interface {
	Ping(ctx context.Context, in *api.PingRequest, opts ...grpc.CallOption) (*api.PingResponse, error)
	CreateLetter(ctx context.Context, in *api.CreateLetterRequest, opts ...grpc.CallOption) (*api.CreateLetterResponse, error)
	OpenLetter(ctx context.Context, in *api.OpenLetterRequest, opts ...grpc.CallOption) (*api.OpenLetterResponse, error)
	ListOpenableLetters(ctx context.Context, in *api.ListOpenableLettersRequest, opts ...grpc.CallOption) (*api.ListOpenableLettersResponse, error)
	CreateIdentity(ctx context.Context, in *api.CreateIdentityRequest, opts ...grpc.CallOption) (*api.CreateIdentityResponse, error)
	GetIdentity(ctx context.Context, in *api.GetIdentityRequest, opts ...grpc.CallOption) (*api.GetIdentityResponse, error)
	CreateContent(ctx context.Context, in *api.CreateContentRequest, opts ...grpc.CallOption) (*api.CreateContentResponse, error)
	ListGallery(ctx context.Context, in *api.ListGalleryRequest, opts ...grpc.CallOption) (*api.ListGalleryResponse, error)
	Applaud(ctx context.Context, in *api.ApplaudRequest, opts ...grpc.CallOption) (*api.ApplaudResponse, error)
}

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      lightwayAPI

	mu           sync.RWMutex
	sessionToken string
}

func withSessionToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.IdentityTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) sessionTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if token := s.token(); token != "" {
		ctx = withSessionToken(ctx, token)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func NewLightwayClientService(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {
	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.sessionTokenInterceptor),
	)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionToken
}

func (s *GRPCClient) SetSessionToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionToken = token
}

func (s *GRPCClient) Ping(ctx context.Context) (*api.PingResponse, error) {
	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	if resp.Status != "OK" {
		return nil, ErrUnavailable
	}
	return resp, nil
}

func (s *GRPCClient) CreateLetter(ctx context.Context, content, title string, openAt time.Time, sendToVoid bool) (*api.CreateLetterResponse, error) {
	req := &api.CreateLetterRequest{Content: content, Title: title, OpenAt: openAt, SendToVoid: sendToVoid}

	resp, err := s.client.CreateLetter(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) OpenLetter(ctx context.Context, id string) (*api.OpenLetterResponse, error) {
	resp, err := s.client.OpenLetter(ctx, &api.OpenLetterRequest{ID: id})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) ListOpenableLetters(ctx context.Context) ([]api.LetterSummary, error) {
	resp, err := s.client.ListOpenableLetters(ctx, &api.ListOpenableLettersRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Letters, nil
}

// CreateIdentity starts a new facade identity and makes its session token
// the one attached to later calls.
func (s *GRPCClient) CreateIdentity(ctx context.Context) (*api.CreateIdentityResponse, error) {
	resp, err := s.client.CreateIdentity(ctx, &api.CreateIdentityRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	s.SetSessionToken(resp.SessionToken)
	return resp, nil
}

func (s *GRPCClient) GetIdentity(ctx context.Context) (*api.GetIdentityResponse, error) {
	resp, err := s.client.GetIdentity(ctx, &api.GetIdentityRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) CreateContent(ctx context.Context, text string, withImage bool) (*api.CreateContentResponse, error) {
	resp, err := s.client.CreateContent(ctx, &api.CreateContentRequest{Text: text, WithImage: withImage})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) ListGallery(ctx context.Context, limit, offset int) ([]api.GalleryItem, error) {
	resp, err := s.client.ListGallery(ctx, &api.ListGalleryRequest{Limit: limit, Offset: offset})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Items, nil
}

func (s *GRPCClient) Applaud(ctx context.Context, contentID string) (int, error) {
	resp, err := s.client.Applaud(ctx, &api.ApplaudRequest{ContentID: contentID})
	if err != nil {
		return 0, s.mapError(err)
	}
	return resp.ApplauseCount, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return &ServerError{Code: st.Code(), Message: st.Message()}
	}
}
