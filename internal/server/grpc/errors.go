package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/lightway/internal/common"
	"github.com/dmitrijs2005/lightway/internal/cryptox"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var statusMap = []struct {
	err  error
	code codes.Code
}{
	{common.ErrEmptyContent, codes.InvalidArgument},
	{common.ErrLetterTooLong, codes.InvalidArgument},
	{common.ErrOpenDateNotInFuture, codes.InvalidArgument},
	{common.ErrOpenDateTooFar, codes.InvalidArgument},
	{common.ErrContentTooLong, codes.InvalidArgument},
	{common.ErrorNotFound, codes.NotFound},
	{cryptox.ErrNotYetOpenable, codes.FailedPrecondition},
	{common.ErrLetterDestroyed, codes.FailedPrecondition},
	{common.ErrAlreadyApplauded, codes.AlreadyExists},
	{common.ErrApplauseLimit, codes.ResourceExhausted},
	{common.ErrInvalidIdentity, codes.Unauthenticated},
	{context.Canceled, codes.Canceled},
	{context.DeadlineExceeded, codes.DeadlineExceeded},
}

// toStatus converts a service error into a gRPC status. Known domain errors
// keep their message; anything else, decryption failures included, becomes
// an opaque Internal error after being logged.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	for _, m := range statusMap {
		if errors.Is(err, m.err) {
			return status.Error(m.code, m.err.Error())
		}
	}
	s.logger.Error(ctx, "request failed", "error", err)
	return status.Error(codes.Internal, "internal error")
}
