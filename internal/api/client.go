package api

import (
	"context"

	"google.golang.org/grpc"
)

// Client is a typed stub for the Lightway service. Every call uses the JSON
// codec.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *Client) CreateLetter(ctx context.Context, in *CreateLetterRequest, opts ...grpc.CallOption) (*CreateLetterResponse, error) {
	return invoke[CreateLetterResponse](ctx, c.cc, MethodCreateLetter, in, opts)
}

func (c *Client) OpenLetter(ctx context.Context, in *OpenLetterRequest, opts ...grpc.CallOption) (*OpenLetterResponse, error) {
	return invoke[OpenLetterResponse](ctx, c.cc, MethodOpenLetter, in, opts)
}

func (c *Client) ListOpenableLetters(ctx context.Context, in *ListOpenableLettersRequest, opts ...grpc.CallOption) (*ListOpenableLettersResponse, error) {
	return invoke[ListOpenableLettersResponse](ctx, c.cc, MethodListOpenableLetters, in, opts)
}

func (c *Client) CreateIdentity(ctx context.Context, in *CreateIdentityRequest, opts ...grpc.CallOption) (*CreateIdentityResponse, error) {
	return invoke[CreateIdentityResponse](ctx, c.cc, MethodCreateIdentity, in, opts)
}

func (c *Client) GetIdentity(ctx context.Context, in *GetIdentityRequest, opts ...grpc.CallOption) (*GetIdentityResponse, error) {
	return invoke[GetIdentityResponse](ctx, c.cc, MethodGetIdentity, in, opts)
}

func (c *Client) CreateContent(ctx context.Context, in *CreateContentRequest, opts ...grpc.CallOption) (*CreateContentResponse, error) {
	return invoke[CreateContentResponse](ctx, c.cc, MethodCreateContent, in, opts)
}

func (c *Client) ListGallery(ctx context.Context, in *ListGalleryRequest, opts ...grpc.CallOption) (*ListGalleryResponse, error) {
	return invoke[ListGalleryResponse](ctx, c.cc, MethodListGallery, in, opts)
}

func (c *Client) Applaud(ctx context.Context, in *ApplaudRequest, opts ...grpc.CallOption) (*ApplaudResponse, error) {
	return invoke[ApplaudResponse](ctx, c.cc, MethodApplaud, in, opts)
}
