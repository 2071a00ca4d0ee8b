package grpc

import (
	"time"

	"booktrackr/internal/api/grpc/interceptors"
	booksv1 "booktrackr/pkg/api/books/v1"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"
)

const defaultMaxConcurrentStreams = 25

// ServerOptions настройки gRPC сервера
type ServerOptions struct {
	MaxConcurrentStreams int
	AuthToken            string
	UseReflection        bool
}

// NewServer создает и настраивает gRPC сервер с интерцепторами и конфигурацией.
// Порядок интерцепторов: Logger (логирует и заблокированные запросы) → Validate → Auth.
func NewServer(handler booksv1.BooksServiceServer, opts ServerOptions, log *zap.Logger) *grpc.Server {
	maxStreams := opts.MaxConcurrentStreams
	if maxStreams <= 0 {
		maxStreams = defaultMaxConcurrentStreams
	}
	log = log.Named("grpc")

	grpcServer := grpc.NewServer(
		grpc.MaxConcurrentStreams(uint32(maxStreams)),
		grpc.KeepaliveParams(keepalive.ServerParameters{
			MaxConnectionIdle:     30 * time.Minute,
			MaxConnectionAge:      1 * time.Hour,
			MaxConnectionAgeGrace: 5 * time.Second,
			Time:                  10 * time.Minute,
			Timeout:               20 * time.Second,
		}),
		grpc.ChainUnaryInterceptor(
			interceptors.LoggerUnaryInterceptor(log),
			interceptors.ValidateUnaryInterceptor,
			interceptors.AuthUnaryInterceptor(opts.AuthToken),
		),
		grpc.ChainStreamInterceptor(
			interceptors.StreamInterceptor(log),
			interceptors.AuthStreamInterceptor(opts.AuthToken),
		),
	)

	booksv1.RegisterBooksServiceServer(grpcServer, handler)
	log.Info("registered service", zap.String("service", booksv1.ServiceName))

	if opts.UseReflection {
		reflection.Register(grpcServer)
		log.Info("enabled gRPC reflection")
	}

	return grpcServer
}
