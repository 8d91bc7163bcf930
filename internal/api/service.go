package api

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "lightway.Lightway"

const (
	MethodPing                = "Ping"
	MethodCreateLetter        = "CreateLetter"
	MethodOpenLetter          = "OpenLetter"
	MethodListOpenableLetters = "ListOpenableLetters"
	MethodCreateIdentity      = "CreateIdentity"
	MethodGetIdentity         = "GetIdentity"
	MethodCreateContent       = "CreateContent"
	MethodListGallery         = "ListGallery"
	MethodApplaud             = "Applaud"
)

// FullMethod returns the gRPC path of method, e.g. "/lightway.Lightway/Ping".
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// LightwayServer is implemented by the gRPC server.
type LightwayServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	CreateLetter(context.Context, *CreateLetterRequest) (*CreateLetterResponse, error)
	OpenLetter(context.Context, *OpenLetterRequest) (*OpenLetterResponse, error)
	ListOpenableLetters(context.Context, *ListOpenableLettersRequest) (*ListOpenableLettersResponse, error)
	CreateIdentity(context.Context, *CreateIdentityRequest) (*CreateIdentityResponse, error)
	GetIdentity(context.Context, *GetIdentityRequest) (*GetIdentityResponse, error)
	CreateContent(context.Context, *CreateContentRequest) (*CreateContentResponse, error)
	ListGallery(context.Context, *ListGalleryRequest) (*ListGalleryResponse, error)
	Applaud(context.Context, *ApplaudRequest) (*ApplaudResponse, error)
}

// unary builds the method descriptor for one request/response call,
// running the registered interceptor chain when there is one.
func unary[Req, Resp any](method string, call func(LightwayServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(LightwayServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(LightwayServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes the Lightway service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LightwayServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodPing, LightwayServer.Ping),
		unary(MethodCreateLetter, LightwayServer.CreateLetter),
		unary(MethodOpenLetter, LightwayServer.OpenLetter),
		unary(MethodListOpenableLetters, LightwayServer.ListOpenableLetters),
		unary(MethodCreateIdentity, LightwayServer.CreateIdentity),
		unary(MethodGetIdentity, LightwayServer.GetIdentity),
		unary(MethodCreateContent, LightwayServer.CreateContent),
		unary(MethodListGallery, LightwayServer.ListGallery),
		unary(MethodApplaud, LightwayServer.Applaud),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "lightway",
}

func RegisterLightwayServer(s grpc.ServiceRegistrar, srv LightwayServer) {
	s.RegisterService(&ServiceDesc, srv)
}
