// Package gateway отдает BooksService по HTTP/JSON поверх gRPC клиента.
package gateway

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"booktrackr/internal/api/http/middleware"
	"booktrackr/internal/api/swagger"
	"booktrackr/internal/config"
	booksv1 "booktrackr/pkg/api/books/v1"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/rs/cors"
	"github.com/tmc/grpc-websocket-proxy/wsproxy"
	"go.uber.org/zap"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const apiPrefix = "/api/v1"

// errorBody тело ответа об ошибке
type errorBody struct {
	Code       string           `json:"code"`
	Message    string           `json:"message"`
	Violations []fieldViolation `json:"violations,omitempty"`
	Reason     string           `json:"reason,omitempty"`
}

type fieldViolation struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

type gateway struct {
	client booksv1.BooksServiceClient
	mux    *runtime.ServeMux
	log    *zap.Logger
}

// route описывает HTTP маршрут и вызываемый gRPC метод
type route struct {
	method     string
	pattern    string
	rpc        string
	statusCode int
	call       func(ctx context.Context, r *http.Request, params map[string]string) (any, error)
}

// NewHandler собирает HTTP обработчик gateway: маршруты /api/v1, /health и /swagger.json,
// затем rate limit, логирование, CORS и websocket прокси для WatchBooks.
func NewHandler(conn grpc.ClientConnInterface, cfg *config.ConfigGateway, log *zap.Logger) (http.Handler, error) {
	if cfg == nil {
		cfg = &config.ConfigGateway{}
	}
	log = log.Named("gateway")

	g := &gateway{
		client: booksv1.NewBooksServiceClient(conn),
		log:    log,
	}
	g.mux = runtime.NewServeMux(
		// Authorization из HTTP передается в gRPC metadata для Auth интерцептора
		runtime.WithMetadata(func(ctx context.Context, req *http.Request) metadata.MD {
			md := metadata.New(nil)
			if auth := req.Header.Get("Authorization"); auth != "" {
				md.Set("authorization", auth)
			}
			return md
		}),
		runtime.WithMarshalerOption(runtime.MIMEWildcard, &runtime.JSONBuiltin{}),
		runtime.WithErrorHandler(writeError),
	)

	for _, rt := range g.routes() {
		if err := g.mux.HandlePath(rt.method, rt.pattern, g.handle(rt)); err != nil {
			return nil, err
		}
	}
	if err := g.mux.HandlePath(http.MethodGet, apiPrefix+"/watch", g.watch); err != nil {
		return nil, err
	}
	if err := g.mux.HandlePath(http.MethodGet, "/health", health); err != nil {
		return nil, err
	}
	if err := swagger.Register(g.mux); err != nil {
		return nil, err
	}

	// Порядок выполнения: wsproxy → CORS → Logging → RateLimit → mux
	var handler http.Handler = g.mux
	handler = middleware.RateLimit(handler, cfg.RateLimitRPS, cfg.RateLimitBurst, log)
	handler = middleware.Logging(handler, log)
	handler = setupCORS(cfg).Handler(handler)
	handler = wsproxy.WebsocketProxy(handler)

	log.Info("gateway configured", zap.String("cors_origins", cfg.CORSAllowedOrigins))
	return handler, nil
}

func (g *gateway) routes() []route {
	books := apiPrefix + "/books"
	return []route{
		{method: http.MethodPost, pattern: books, rpc: booksv1.BooksService_CreateBook_FullMethodName, statusCode: http.StatusCreated,
			call: func(ctx context.Context, r *http.Request, _ map[string]string) (any, error) {
				req := new(booksv1.CreateBookRequest)
				if err := g.decode(r, req); err != nil {
					return nil, err
				}
				return g.client.CreateBook(ctx, req)
			}},
		{method: http.MethodPost, pattern: books + "/quick", rpc: booksv1.BooksService_QuickAddBook_FullMethodName, statusCode: http.StatusCreated,
			call: func(ctx context.Context, r *http.Request, _ map[string]string) (any, error) {
				req := new(booksv1.QuickAddBookRequest)
				if err := g.decode(r, req); err != nil {
					return nil, err
				}
				return g.client.QuickAddBook(ctx, req)
			}},
		{method: http.MethodGet, pattern: books, rpc: booksv1.BooksService_ListBooks_FullMethodName,
			call: func(ctx context.Context, r *http.Request, _ map[string]string) (any, error) {
				req, err := listRequest(r)
				if err != nil {
					return nil, err
				}
				return g.client.ListBooks(ctx, req)
			}},
		{method: http.MethodGet, pattern: books + "/{id}", rpc: booksv1.BooksService_GetBook_FullMethodName,
			call: func(ctx context.Context, _ *http.Request, params map[string]string) (any, error) {
				return g.client.GetBook(ctx, &booksv1.GetBookRequest{Id: params["id"]})
			}},
		{method: http.MethodGet, pattern: books + "/{id}/summary", rpc: booksv1.BooksService_GetSummary_FullMethodName,
			call: func(ctx context.Context, _ *http.Request, params map[string]string) (any, error) {
				return g.client.GetSummary(ctx, &booksv1.GetSummaryRequest{Id: params["id"]})
			}},
		{method: http.MethodPatch, pattern: books + "/{id}", rpc: booksv1.BooksService_UpdateBook_FullMethodName,
			call: func(ctx context.Context, r *http.Request, params map[string]string) (any, error) {
				req := new(booksv1.UpdateBookRequest)
				if err := g.decode(r, req); err != nil {
					return nil, err
				}
				req.Id = params["id"]
				return g.client.UpdateBook(ctx, req)
			}},
		{method: http.MethodPut, pattern: books + "/{id}/status", rpc: booksv1.BooksService_UpdateStatus_FullMethodName,
			call: func(ctx context.Context, r *http.Request, params map[string]string) (any, error) {
				req := new(booksv1.UpdateStatusRequest)
				if err := g.decode(r, req); err != nil {
					return nil, err
				}
				req.Id = params["id"]
				return g.client.UpdateStatus(ctx, req)
			}},
		{method: http.MethodPut, pattern: books + "/{id}/rating", rpc: booksv1.BooksService_UpdateRating_FullMethodName,
			call: func(ctx context.Context, r *http.Request, params map[string]string) (any, error) {
				req := new(booksv1.UpdateRatingRequest)
				if err := g.decode(r, req); err != nil {
					return nil, err
				}
				req.Id = params["id"]
				return g.client.UpdateRating(ctx, req)
			}},
		{method: http.MethodPut, pattern: books + "/{id}/review", rpc: booksv1.BooksService_UpdateReview_FullMethodName,
			call: func(ctx context.Context, r *http.Request, params map[string]string) (any, error) {
				req := new(booksv1.UpdateReviewRequest)
				if err := g.decode(r, req); err != nil {
					return nil, err
				}
				req.Id = params["id"]
				return g.client.UpdateReview(ctx, req)
			}},
		{method: http.MethodDelete, pattern: books + "/{id}", rpc: booksv1.BooksService_DeleteBook_FullMethodName, statusCode: http.StatusNoContent,
			call: func(ctx context.Context, _ *http.Request, params map[string]string) (any, error) {
				return g.client.DeleteBook(ctx, &booksv1.DeleteBookRequest{Id: params["id"]})
			}},
		{method: http.MethodGet, pattern: apiPrefix + "/genres", rpc: booksv1.BooksService_ListGenres_FullMethodName,
			call: func(ctx context.Context, _ *http.Request, _ map[string]string) (any, error) {
				return g.client.ListGenres(ctx, &booksv1.ListGenresRequest{})
			}},
	}
}

// handle оборачивает вызов gRPC метода в runtime.HandlerFunc
func (g *gateway) handle(rt route) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, params map[string]string) {
		_, outbound := runtime.MarshalerForRequest(g.mux, r)

		ctx, err := runtime.AnnotateContext(r.Context(), g.mux, r, rt.rpc, runtime.WithHTTPPathPattern(rt.pattern))
		if err != nil {
			runtime.HTTPError(r.Context(), g.mux, outbound, w, r, err)
			return
		}

		resp, err := rt.call(ctx, r, params)
		if err != nil {
			runtime.HTTPError(ctx, g.mux, outbound, w, r, err)
			return
		}

		code := rt.statusCode
		if code == 0 {
			code = http.StatusOK
		}
		if code == http.StatusNoContent {
			w.WriteHeader(code)
			return
		}

		buf, err := outbound.Marshal(resp)
		if err != nil {
			g.log.Error("marshal response", zap.String("rpc", rt.rpc), zap.Error(err))
			runtime.HTTPError(ctx, g.mux, outbound, w, r, status.Error(codes.Internal, "marshal response"))
			return
		}
		w.Header().Set("Content-Type", outbound.ContentType(resp))
		w.WriteHeader(code)
		if _, err := w.Write(buf); err != nil {
			g.log.Debug("write response", zap.Error(err))
		}
	}
}

// watch передает события WatchBooks построчно (NDJSON); через wsproxy
// каждая строка становится websocket сообщением
func (g *gateway) watch(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	_, outbound := runtime.MarshalerForRequest(g.mux, r)
	ctx, err := runtime.AnnotateContext(r.Context(), g.mux, r, booksv1.BooksService_WatchBooks_FullMethodName,
		runtime.WithHTTPPathPattern(apiPrefix+"/watch"))
	if err != nil {
		runtime.HTTPError(r.Context(), g.mux, outbound, w, r, err)
		return
	}

	stream, err := g.client.WatchBooks(ctx, &booksv1.WatchBooksRequest{})
	if err != nil {
		runtime.HTTPError(ctx, g.mux, outbound, w, r, err)
		return
	}
	// Первое событие (subscribed) приходит сразу; ошибка вызова, например
	// авторизации, видна только на Recv
	event, err := stream.Recv()
	if err != nil {
		runtime.HTTPError(ctx, g.mux, outbound, w, r, err)
		return
	}

	// Поток живет дольше WriteTimeout сервера
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		g.log.Debug("reset write deadline", zap.Error(err))
	}
	w.Header().Set("Content-Type", "application/x-ndjson")
	w.WriteHeader(http.StatusOK)
	flusher, _ := w.(http.Flusher)

	for {
		buf, err := outbound.Marshal(event)
		if err != nil {
			g.log.Error("marshal event", zap.Error(err))
			return
		}
		if _, err := w.Write(append(buf, '\n')); err != nil {
			return
		}
		if flusher != nil {
			flusher.Flush()
		}

		event, err = stream.Recv()
		if errors.Is(err, io.EOF) || status.Code(err) == codes.Canceled {
			return
		}
		if err != nil {
			g.log.Warn("watch stream", zap.Error(err))
			return
		}
	}
}

func listRequest(r *http.Request) (*booksv1.ListBooksRequest, error) {
	query := r.URL.Query()
	req := &booksv1.ListBooksRequest{
		Status: query.Get("status"),
		Sort:   query.Get("sort"),
	}
	if raw := query.Get("rating"); raw != "" {
		rating, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "rating %q is not a number", raw)
		}
		v := int32(rating)
		req.Rating = &v
	}
	return req, nil
}

func (g *gateway) decode(r *http.Request, v any) error {
	inbound, _ := runtime.MarshalerForRequest(g.mux, r)
	if err := inbound.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return status.Errorf(codes.InvalidArgument, "malformed request body: %v", err)
	}
	return nil
}

func health(w http.ResponseWriter, _ *http.Request, _ map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, `{"status":"ok"}`)
}

// writeError пишет gRPC ошибку как JSON с HTTP кодом по таблице grpc-gateway
func writeError(ctx context.Context, _ *runtime.ServeMux, marshaler runtime.Marshaler, w http.ResponseWriter, _ *http.Request, err error) {
	st := status.Convert(err)
	body := errorBody{
		Code:    st.Code().String(),
		Message: st.Message(),
	}
	for _, detail := range st.Details() {
		switch d := detail.(type) {
		case *errdetails.BadRequest:
			for _, v := range d.GetFieldViolations() {
				body.Violations = append(body.Violations, fieldViolation{Field: v.GetField(), Description: v.GetDescription()})
			}
		case *errdetails.ErrorInfo:
			body.Reason = d.GetReason()
		}
	}

	buf, merr := marshaler.Marshal(body)
	if merr != nil {
		buf = []byte(`{"code":"Internal","message":"failed to marshal error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(runtime.HTTPStatusFromCode(st.Code()))
	_, _ = w.Write(buf)
}

// setupCORS настраивает CORS middleware используя конфигурацию
func setupCORS(cfg *config.ConfigGateway) *cors.Cors {
	var origins []string
	for _, origin := range strings.Split(cfg.CORSAllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}

	maxAge := cfg.CORSMaxAge
	if maxAge == 0 {
		maxAge = 86400
	}

	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           maxAge,
	})
}
