package grpc

import (
	"context"
	"errors"

	"booktrackr/internal/converter"
	svc "booktrackr/internal/service"
	"booktrackr/internal/validate"
	booksv1 "booktrackr/pkg/api/books/v1"

	"go.uber.org/zap"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const errorDomain = "booktrackr.books.v1"

// Handler реализует gRPC сервер для BooksService
type Handler struct {
	booksv1.UnimplementedBooksServiceServer

	bookService svc.BookService
	log         *zap.Logger
	// serverCtx отменяется при shutdown: стримы завершаются до GracefulStop
	serverCtx context.Context
}

// NewHandler создает новый экземпляр gRPC хэндлера
func NewHandler(serverCtx context.Context, bookService svc.BookService, log *zap.Logger) *Handler {
	return &Handler{
		bookService: bookService,
		log:         log.Named("grpc"),
		serverCtx:   serverCtx,
	}
}

// CreateBook создает книгу из полной формы
func (h *Handler) CreateBook(ctx context.Context, req *booksv1.CreateBookRequest) (*booksv1.CreateBookResponse, error) {
	created, err := h.bookService.Create(ctx, converter.CreateRequestToParams(req))
	if err != nil {
		return nil, handleError(err)
	}
	return &booksv1.CreateBookResponse{
		Book:     converter.ModelToAPI(created.Book),
		Warnings: created.Warnings,
	}, nil
}

// QuickAddBook создает книгу по заголовку, автору и году
func (h *Handler) QuickAddBook(ctx context.Context, req *booksv1.QuickAddBookRequest) (*booksv1.QuickAddBookResponse, error) {
	book, err := h.bookService.QuickAdd(ctx, req.Title, req.Author, int(req.Year))
	if err != nil {
		return nil, handleError(err)
	}
	return &booksv1.QuickAddBookResponse{Book: converter.ModelToAPI(book)}, nil
}

// GetBook возвращает книгу по ID
func (h *Handler) GetBook(ctx context.Context, req *booksv1.GetBookRequest) (*booksv1.GetBookResponse, error) {
	book, err := h.bookService.Get(ctx, req.Id)
	if err != nil {
		return nil, handleError(err)
	}
	return &booksv1.GetBookResponse{Book: converter.ModelToAPI(book)}, nil
}

// ListBooks возвращает книги с фильтрами и сортировкой
func (h *Handler) ListBooks(ctx context.Context, req *booksv1.ListBooksRequest) (*booksv1.ListBooksResponse, error) {
	books, err := h.bookService.List(ctx, converter.ListRequestToFilter(req))
	if err != nil {
		return nil, handleError(err)
	}
	return &booksv1.ListBooksResponse{Books: converter.ModelsToAPI(books)}, nil
}

// UpdateBook атомарно меняет переданные поля
func (h *Handler) UpdateBook(ctx context.Context, req *booksv1.UpdateBookRequest) (*booksv1.UpdateBookResponse, error) {
	book, err := h.bookService.Update(ctx, req.Id, converter.UpdateRequestToParams(req))
	if err != nil {
		return nil, handleError(err)
	}
	return &booksv1.UpdateBookResponse{Book: converter.ModelToAPI(book)}, nil
}

func (h *Handler) UpdateStatus(ctx context.Context, req *booksv1.UpdateStatusRequest) (*booksv1.UpdateBookResponse, error) {
	book, err := h.bookService.UpdateStatus(ctx, req.Id, req.Status)
	if err != nil {
		return nil, handleError(err)
	}
	return &booksv1.UpdateBookResponse{Book: converter.ModelToAPI(book)}, nil
}

func (h *Handler) UpdateRating(ctx context.Context, req *booksv1.UpdateRatingRequest) (*booksv1.UpdateBookResponse, error) {
	book, err := h.bookService.UpdateRating(ctx, req.Id, int(req.Rating))
	if err != nil {
		return nil, handleError(err)
	}
	return &booksv1.UpdateBookResponse{Book: converter.ModelToAPI(book)}, nil
}

func (h *Handler) UpdateReview(ctx context.Context, req *booksv1.UpdateReviewRequest) (*booksv1.UpdateBookResponse, error) {
	book, err := h.bookService.UpdateReview(ctx, req.Id, req.Review)
	if err != nil {
		return nil, handleError(err)
	}
	return &booksv1.UpdateBookResponse{Book: converter.ModelToAPI(book)}, nil
}

// DeleteBook удаляет книгу. Удаление отсутствующей книги успешно.
func (h *Handler) DeleteBook(ctx context.Context, req *booksv1.DeleteBookRequest) (*booksv1.DeleteBookResponse, error) {
	if err := h.bookService.Delete(ctx, req.Id); err != nil {
		return nil, handleError(err)
	}
	return &booksv1.DeleteBookResponse{}, nil
}

// GetSummary возвращает подробное описание книги
func (h *Handler) GetSummary(ctx context.Context, req *booksv1.GetSummaryRequest) (*booksv1.GetSummaryResponse, error) {
	summary, err := h.bookService.Summary(ctx, req.Id)
	if err != nil {
		return nil, handleError(err)
	}
	return &booksv1.GetSummaryResponse{Summary: summary}, nil
}

// ListGenres возвращает допустимые жанры и статусы
func (h *Handler) ListGenres(ctx context.Context, _ *booksv1.ListGenresRequest) (*booksv1.ListGenresResponse, error) {
	resp := &booksv1.ListGenresResponse{}
	for _, g := range h.bookService.Genres(ctx) {
		resp.Genres = append(resp.Genres, string(g))
	}
	for _, s := range h.bookService.Statuses(ctx) {
		resp.Statuses = append(resp.Statuses, string(s))
	}
	return resp, nil
}

// WatchBooks отправляет клиенту события изменения книг до отключения клиента
func (h *Handler) WatchBooks(_ *booksv1.WatchBooksRequest, stream booksv1.BooksService_WatchBooksServer) error {
	ctx := stream.Context()
	events := h.bookService.Subscribe()
	defer h.bookService.Unsubscribe(events)

	if err := stream.Send(&booksv1.BookEvent{Type: booksv1.EventSubscribed}); err != nil {
		return err
	}
	h.log.Debug("watcher subscribed")
	for {
		select {
		case <-ctx.Done():
			h.log.Debug("watcher disconnected", zap.Error(ctx.Err()))
			return nil
		case <-h.serverCtx.Done():
			h.log.Debug("server shutting down, closing watcher")
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if err := stream.Send(converter.EventToAPI(event)); err != nil {
				h.log.Warn("send book event", zap.Error(err))
				return err
			}
		}
	}
}

// handleError конвертирует ошибки сервиса в gRPC статусы с детализацией
func handleError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, svc.ErrBookNotFound) {
		st := status.New(codes.NotFound, err.Error())
		if detailed, detailsErr := st.WithDetails(&errdetails.ErrorInfo{
			Reason: "BOOK_NOT_FOUND",
			Domain: errorDomain,
		}); detailsErr == nil {
			st = detailed
		}
		return st.Err()
	}

	if violations := fieldViolations(err); len(violations) > 0 {
		st := status.New(codes.InvalidArgument, err.Error())
		if detailed, detailsErr := st.WithDetails(&errdetails.BadRequest{FieldViolations: violations}); detailsErr == nil {
			st = detailed
		}
		return st.Err()
	}

	st := status.New(codes.Internal, "internal error")
	if detailed, detailsErr := st.WithDetails(&errdetails.ErrorInfo{
		Reason: "INTERNAL_ERROR",
		Domain: errorDomain,
	}); detailsErr == nil {
		st = detailed
	}
	return st.Err()
}

// fieldViolations собирает все ошибки валидации, в том числе объединенные errors.Join
func fieldViolations(err error) []*errdetails.BadRequest_FieldViolation {
	var out []*errdetails.BadRequest_FieldViolation
	var walk func(error)
	walk = func(err error) {
		var ve *validate.Error
		if errors.As(err, &ve) {
			if joined, ok := err.(interface{ Unwrap() []error }); ok {
				for _, e := range joined.Unwrap() {
					walk(e)
				}
				return
			}
			out = append(out, &errdetails.BadRequest_FieldViolation{
				Field:       ve.Field,
				Description: ve.Reason,
			})
		}
	}
	walk(err)
	return out
}
