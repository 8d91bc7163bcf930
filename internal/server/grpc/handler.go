package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/lightway/internal/api"
	"github.com/dmitrijs2005/lightway/internal/common"
	"github.com/dmitrijs2005/lightway/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// callerAddr returns the remote host of the current call, without port.
func callerAddr(ctx context.Context) string {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return ""
	}
	addr := p.Addr.String()
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK", App: common.AppName, Version: common.Version}, nil
}

func (s *GRPCServer) CreateLetter(ctx context.Context, req *api.CreateLetterRequest) (*api.CreateLetterResponse, error) {
	letter, err := s.letters.CreateLetter(ctx, req.Content, req.Title, req.OpenAt, req.SendToVoid, callerAddr(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	msg := "Your letter is sealed and will open at the chosen time."
	if letter.SendToVoid {
		msg = "Your letter has been sent into the void."
	}

	s.logger.Info(ctx, "letter created", "id", letter.ID, "void", letter.SendToVoid)
	return &api.CreateLetterResponse{
		ID:         letter.ID,
		OpenAt:     letter.OpenAt,
		SendToVoid: letter.SendToVoid,
		Message:    msg,
	}, nil
}

func (s *GRPCServer) OpenLetter(ctx context.Context, req *api.OpenLetterRequest) (*api.OpenLetterResponse, error) {
	opened, err := s.letters.OpenLetter(ctx, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.OpenLetterResponse{
		ID:        opened.ID,
		Title:     opened.Title,
		Content:   opened.Content,
		CreatedAt: opened.CreatedAt,
		OpenedAt:  opened.OpenedAt,
	}, nil
}

func (s *GRPCServer) ListOpenableLetters(ctx context.Context, req *api.ListOpenableLettersRequest) (*api.ListOpenableLettersResponse, error) {
	letters, err := s.letters.ListOpenable(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	resp := &api.ListOpenableLettersResponse{Letters: make([]api.LetterSummary, 0, len(letters))}
	for _, l := range letters {
		resp.Letters = append(resp.Letters, api.LetterSummary{ID: l.ID, CreatedAt: l.CreatedAt, OpenAt: l.OpenAt})
	}
	return resp, nil
}

func (s *GRPCServer) CreateIdentity(ctx context.Context, req *api.CreateIdentityRequest) (*api.CreateIdentityResponse, error) {
	session, err := s.gallery.CreateIdentity(ctx, callerAddr(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.CreateIdentityResponse{
		IdentityToken: session.Identity.Token,
		SessionToken:  session.SessionToken,
		ExpiresAt:     session.Identity.ExpiresAt,
	}, nil
}

func (s *GRPCServer) GetIdentity(ctx context.Context, req *api.GetIdentityRequest) (*api.GetIdentityResponse, error) {
	token, ok := identityTokenFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing identity token")
	}

	identity, err := s.gallery.GetIdentity(ctx, token)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.GetIdentityResponse{
		IdentityToken: identity.Token,
		CreatedAt:     identity.CreatedAt,
		ExpiresAt:     identity.ExpiresAt,
		TimeRemaining: services.TimeRemaining(identity.ExpiresAt, s.now()),
	}, nil
}

func (s *GRPCServer) CreateContent(ctx context.Context, req *api.CreateContentRequest) (*api.CreateContentResponse, error) {
	token, ok := identityTokenFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing identity token")
	}

	created, err := s.gallery.CreateContent(ctx, token, req.Text, req.WithImage)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.CreateContentResponse{
		ID:        created.Content.ID,
		CreatedAt: created.Content.CreatedAt,
		UploadURL: created.UploadURL,
	}, nil
}

func (s *GRPCServer) ListGallery(ctx context.Context, req *api.ListGalleryRequest) (*api.ListGalleryResponse, error) {
	items, err := s.gallery.ListGallery(ctx, req.Limit, req.Offset)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	resp := &api.ListGalleryResponse{Items: make([]api.GalleryItem, 0, len(items))}
	for _, it := range items {
		resp.Items = append(resp.Items, api.GalleryItem{
			ID:            it.ID,
			Text:          it.Text,
			ImageURL:      it.ImageURL,
			CreatedAt:     it.CreatedAt,
			ApplauseCount: it.ApplauseCount,
			TimeRemaining: it.TimeRemaining,
		})
	}
	return resp, nil
}

func (s *GRPCServer) Applaud(ctx context.Context, req *api.ApplaudRequest) (*api.ApplaudResponse, error) {
	count, err := s.gallery.Applaud(ctx, req.ContentID, callerAddr(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.ApplaudResponse{ApplauseCount: count}, nil
}
