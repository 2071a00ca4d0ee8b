package interceptors

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"google.golang.org/grpc"
)

// wrappedServerStream считает и логирует сообщения стрима
type wrappedServerStream struct {
	grpc.ServerStream
	log  *zap.Logger
	sent int
}

func (w *wrappedServerStream) RecvMsg(m any) error {
	err := w.ServerStream.RecvMsg(m)
	switch {
	case err == nil:
		w.log.Debug("stream message received", zap.String("type", fmt.Sprintf("%T", m)))
	case errors.Is(err, io.EOF):
		w.log.Debug("stream closed by client")
	default:
		w.log.Warn("stream receive failed", zap.Error(err))
	}
	return err
}

func (w *wrappedServerStream) SendMsg(m any) error {
	err := w.ServerStream.SendMsg(m)
	if err != nil {
		w.log.Warn("stream send failed", zap.Error(err))
		return err
	}
	w.sent++
	w.log.Debug("stream message sent", zap.String("type", fmt.Sprintf("%T", m)))
	return nil
}

// StreamInterceptor логирует открытие, сообщения и завершение стрима
func StreamInterceptor(log *zap.Logger) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		streamLog := log.With(zap.String("method", info.FullMethod))
		streamLog.Info("stream opened")

		wrapped := &wrappedServerStream{ServerStream: ss, log: streamLog}
		err := handler(srv, wrapped)
		if err != nil {
			streamLog.Warn("stream failed", zap.Int("sent", wrapped.sent), zap.Error(err))
		} else {
			streamLog.Info("stream completed", zap.Int("sent", wrapped.sent))
		}
		return err
	}
}
