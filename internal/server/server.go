package server

import (
	"context"
	"errors"
	"math/rand/v2"
	"net"
	"net/http"
	"strconv"
	"time"

	"booktrackr/internal/api/gateway"
	grpcapi "booktrackr/internal/api/grpc"
	"booktrackr/internal/config"
	"booktrackr/internal/repository/memory"
	svc "booktrackr/internal/service"
	"booktrackr/internal/service/books"

	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	defaultGRPCPort        = 50051
	defaultHTTPPort        = 8080
	defaultShutdownTimeout = 10 * time.Second
)

// Server представляет сервер приложения с gRPC и HTTP Gateway
type Server struct {
	cfg *config.Config
	log *zap.Logger

	grpcListener net.Listener
	httpListener net.Listener
	grpcServer   *grpc.Server
	httpServer   *http.Server
	gatewayConn  *grpc.ClientConn

	bookService svc.BookService

	// ctx отменяется при shutdown: стримы слушают его, так как
	// GracefulStop ждет их завершения
	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer открывает listener'ы gRPC и HTTP по портам из конфигурации
func NewServer(cfg *config.Config, log *zap.Logger) (*Server, error) {
	if cfg.Server == nil {
		cfg.Server = &config.ConfigServer{}
	}
	log = log.Named("server")

	grpcPort := cfg.Server.PortGRPC
	if grpcPort == 0 {
		grpcPort = defaultGRPCPort
		log.Warn("grpc port is not set, using default", zap.Int("port", grpcPort))
	}
	httpPort := cfg.Server.PortHTTP
	if httpPort == 0 {
		httpPort = defaultHTTPPort
		log.Warn("http port is not set, using default", zap.Int("port", httpPort))
	}

	grpcListener, err := net.Listen("tcp", "0.0.0.0:"+strconv.Itoa(grpcPort))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "listen grpc port %d", grpcPort)
	}
	httpListener, err := net.Listen("tcp", "0.0.0.0:"+strconv.Itoa(httpPort))
	if err != nil {
		_ = grpcListener.Close()
		return nil, pkgerrors.Wrapf(err, "listen http port %d", httpPort)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		cfg:          cfg,
		log:          log,
		grpcListener: grpcListener,
		httpListener: httpListener,
		ctx:          ctx,
		cancel:       cancel,
	}, nil
}

// GRPCAddr адрес gRPC listener'а
func (s *Server) GRPCAddr() string { return s.grpcListener.Addr().String() }

// HTTPAddr адрес HTTP listener'а
func (s *Server) HTTPAddr() string { return s.httpListener.Addr().String() }

// Initialize собирает компоненты: Repository → Service → Handler → gRPC сервер → Gateway
func (s *Server) Initialize(ctx context.Context) error {
	bookRepo := memory.NewRepository()
	s.bookService = books.NewBookService(bookRepo, books.NewEventService(), s.log)
	s.log.Debug("initialized book service with in-memory repository")

	if err := s.seed(ctx); err != nil {
		return err
	}

	var opts grpcapi.ServerOptions
	opts.MaxConcurrentStreams = s.cfg.Server.MaxConcurrentStreams
	opts.UseReflection = s.cfg.Server.UseReflection
	if s.cfg.Auth != nil {
		opts.AuthToken = s.cfg.Auth.Token
	}
	if opts.AuthToken == "" {
		s.log.Warn("auth token is empty, authorization is disabled")
	}
	s.grpcServer = grpcapi.NewServer(grpcapi.NewHandler(s.ctx, s.bookService, s.log), opts, s.log)

	conn, err := grpc.NewClient(dialTarget(s.GRPCAddr()), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return pkgerrors.Wrap(err, "dial grpc for gateway")
	}
	s.gatewayConn = conn

	handler, err := gateway.NewHandler(conn, s.cfg.Gateway, s.log)
	if err != nil {
		return pkgerrors.Wrap(err, "gateway handler")
	}
	s.httpServer = &http.Server{
		Handler:           handler,
		ReadTimeout:       seconds(s.cfg.Server.HTTPReadTimeout),
		WriteTimeout:      seconds(s.cfg.Server.HTTPWriteTimeout),
		IdleTimeout:       seconds(s.cfg.Server.HTTPIdleTimeout),
		ReadHeaderTimeout: seconds(s.cfg.Server.HTTPReadHeaderTimeout),
	}
	return nil
}

// seed добавляет случайные книги в режиме отладки
func (s *Server) seed(ctx context.Context) error {
	if s.cfg.Debug == nil || s.cfg.Debug.SeedBooks <= 0 {
		return nil
	}

	seedValue := uint64(s.cfg.Debug.SeedValue)
	if seedValue == 0 {
		seedValue = uint64(time.Now().UnixNano())
	}
	seeded, err := books.Seed(ctx, s.bookService, s.cfg.Debug.SeedBooks, rand.New(rand.NewPCG(seedValue, seedValue)))
	if err != nil {
		return pkgerrors.Wrap(err, "seed books")
	}
	s.log.Info("seeded sample books", zap.Int("count", len(seeded)), zap.Uint64("seed", seedValue))
	return nil
}

// Run запускает gRPC и HTTP серверы и блокируется до отмены ctx или ошибки
// одного из них. Затем выполняет graceful shutdown.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info("grpc server listening", zap.String("addr", s.GRPCAddr()))
		if err := s.grpcServer.Serve(s.grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return pkgerrors.Wrap(err, "grpc server")
		}
		return nil
	})

	g.Go(func() error {
		s.log.Info("http gateway listening", zap.String("addr", s.HTTPAddr()))
		if err := s.httpServer.Serve(s.httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return pkgerrors.Wrap(err, "http gateway")
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return s.Shutdown()
	})

	return g.Wait()
}

// Shutdown останавливает HTTP и gRPC серверы с таймаутом из конфигурации
func (s *Server) Shutdown() error {
	s.log.Info("starting graceful shutdown")

	// Сначала отменяем контекст стримов, иначе GracefulStop будет их ждать
	s.cancel()

	timeout := seconds(s.cfg.Server.GracefulShutdownTimeout)
	if timeout == 0 {
		timeout = defaultShutdownTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, pkgerrors.Wrap(err, "http shutdown"))
	}
	if err := s.gatewayConn.Close(); err != nil {
		s.log.Debug("close gateway connection", zap.Error(err))
	}

	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		s.log.Info("grpc server stopped gracefully")
	case <-ctx.Done():
		s.log.Warn("graceful shutdown timeout, forcing stop")
		s.grpcServer.Stop()
		errs = append(errs, ctx.Err())
	}
	return errors.Join(errs...)
}

// dialTarget заменяет адрес 0.0.0.0 / [::] на localhost для клиента gateway
func dialTarget(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
