package interceptors

import (
	"context"
	"errors"

	"booktrackr/internal/validate"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ValidateUnaryInterceptor проверяет запрос по тегам `validate` до вызова хэндлера.
// Нарушение возвращается как InvalidArgument с errdetails.BadRequest.
func ValidateUnaryInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if err := validate.Struct(req); err != nil {
		return nil, invalidArgument(err)
	}
	return handler(ctx, req)
}

func invalidArgument(err error) error {
	st := status.New(codes.InvalidArgument, "validation failed: "+err.Error())

	var ve *validate.Error
	if !errors.As(err, &ve) {
		return st.Err()
	}
	detailed, detailsErr := st.WithDetails(&errdetails.BadRequest{
		FieldViolations: []*errdetails.BadRequest_FieldViolation{{Field: ve.Field, Description: ve.Reason}},
	})
	if detailsErr != nil {
		return st.Err()
	}
	return detailed.Err()
}
