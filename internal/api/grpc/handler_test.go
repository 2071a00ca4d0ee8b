package grpc

import (
	"context"
	"errors"
	"testing"

	"booktrackr/internal/model"
	svc "booktrackr/internal/service"
	mock_service "booktrackr/internal/service/mocks"
	"booktrackr/internal/validate"
	booksv1 "booktrackr/pkg/api/books/v1"

	"github.com/golang/mock/gomock"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func newTestHandler(t *testing.T) (*Handler, *mock_service.MockBookService) {
	ctrl := gomock.NewController(t)
	mockService := mock_service.NewMockBookService(ctrl)
	return NewHandler(context.Background(), mockService, zap.NewNop()), mockService
}

func dune(t *testing.T) model.Book {
	book, err := model.NewBuilder("Dune", "Frank Herbert").Year(1965).Build()
	require.NoError(t, err)
	return book
}

func TestGetBook_NotFoundWithDetails(t *testing.T) {
	// Arrange
	handler, mockService := newTestHandler(t)
	id := "5f0c6c1e-6f7a-4b43-9a55-2f1d9f6c0a11"
	mockService.EXPECT().Get(gomock.Any(), id).
		Return(model.Book{}, pkgerrors.Wrapf(svc.ErrBookNotFound, "id %s", id))

	// Act
	_, err := handler.GetBook(context.Background(), &booksv1.GetBookRequest{Id: id})

	// Assert
	require.Error(t, err)
	st := status.Convert(err)
	assert.Equal(t, codes.NotFound, st.Code())
	assert.Contains(t, st.Message(), "book not found")

	require.Len(t, st.Details(), 1)
	info, ok := st.Details()[0].(*errdetails.ErrorInfo)
	require.True(t, ok, "detail should be ErrorInfo")
	assert.Equal(t, "BOOK_NOT_FOUND", info.Reason)
	assert.Equal(t, errorDomain, info.Domain)
}

func TestGetBook_Success(t *testing.T) {
	// Arrange
	handler, mockService := newTestHandler(t)
	book := dune(t)
	mockService.EXPECT().Get(gomock.Any(), book.ID().String()).Return(book, nil)

	// Act
	resp, err := handler.GetBook(context.Background(), &booksv1.GetBookRequest{Id: book.ID().String()})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, resp.Book)
	assert.Equal(t, book.ID().String(), resp.Book.Id)
	assert.Equal(t, "Dune", resp.Book.Title)
	assert.Equal(t, "Dune by Frank Herbert (1965)", resp.Book.Label)
}

func TestCreateBook_NoWarningsForValidInput(t *testing.T) {
	handler, mockService := newTestHandler(t)
	mockService.EXPECT().Create(gomock.Any(), gomock.Any()).Return(svc.Created{Book: dune(t)}, nil)

	resp, err := handler.CreateBook(context.Background(), &booksv1.CreateBookRequest{
		Title: "Dune", Author: "Frank Herbert", Year: 1965, Rating: 4,
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Warnings)
}

func TestCreateBook_OutOfRangeRatingWarns(t *testing.T) {
	// Arrange
	handler, mockService := newTestHandler(t)
	book := dune(t)
	mockService.EXPECT().
		Create(gomock.Any(), svc.CreateParams{Title: "Dune", Author: "Frank Herbert", Year: 1965, Rating: 9}).
		Return(svc.Created{Book: book, Warnings: []string{"rating 9 is out of range 0-5, book is stored as unrated"}}, nil)

	// Act
	resp, err := handler.CreateBook(context.Background(), &booksv1.CreateBookRequest{
		Title: "Dune", Author: "Frank Herbert", Year: 1965, Rating: 9,
	})

	// Assert
	require.NoError(t, err)
	assert.Zero(t, resp.Book.Rating)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "rating 9 is out of range")
}

func TestCreateBook_ValidationErrors(t *testing.T) {
	// Arrange
	handler, mockService := newTestHandler(t)
	mockService.EXPECT().Create(gomock.Any(), gomock.Any()).Return(svc.Created{}, errors.Join(
		&validate.Error{Field: "title", Value: "", Reason: "must not be blank"},
		&validate.Error{Field: "genre", Value: "Poetry", Reason: "is not a known genre"},
	))

	// Act
	_, err := handler.CreateBook(context.Background(), &booksv1.CreateBookRequest{Author: "X", Genre: "Poetry"})

	// Assert
	st := status.Convert(err)
	assert.Equal(t, codes.InvalidArgument, st.Code())
	require.Len(t, st.Details(), 1)
	badRequest, ok := st.Details()[0].(*errdetails.BadRequest)
	require.True(t, ok, "detail should be BadRequest")
	require.Len(t, badRequest.FieldViolations, 2)
	assert.Equal(t, "title", badRequest.FieldViolations[0].Field)
	assert.Equal(t, "genre", badRequest.FieldViolations[1].Field)
}

func TestListBooks_PassesFilter(t *testing.T) {
	// Arrange
	handler, mockService := newTestHandler(t)
	rating := int32(0)
	mockService.EXPECT().List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter svc.ListFilter) ([]model.Book, error) {
			require.NotNil(t, filter.Rating)
			assert.Equal(t, 0, *filter.Rating)
			assert.Nil(t, filter.Status)
			require.NotNil(t, filter.Sort)
			assert.Equal(t, model.SortByAuthor, *filter.Sort)
			return nil, nil
		})

	// Act
	resp, err := handler.ListBooks(context.Background(), &booksv1.ListBooksRequest{Rating: &rating, Sort: "author"})

	// Assert
	require.NoError(t, err)
	assert.NotNil(t, resp.Books)
	assert.Empty(t, resp.Books)
}

func TestDeleteBook_Idempotent(t *testing.T) {
	handler, mockService := newTestHandler(t)
	id := "5f0c6c1e-6f7a-4b43-9a55-2f1d9f6c0a11"
	mockService.EXPECT().Delete(gomock.Any(), id).Return(nil).Times(2)

	for i := 0; i < 2; i++ {
		_, err := handler.DeleteBook(context.Background(), &booksv1.DeleteBookRequest{Id: id})
		require.NoError(t, err)
	}
}

func TestListGenres(t *testing.T) {
	handler, mockService := newTestHandler(t)
	mockService.EXPECT().Genres(gomock.Any()).Return(model.Genres())
	mockService.EXPECT().Statuses(gomock.Any()).Return(model.Statuses())

	resp, err := handler.ListGenres(context.Background(), &booksv1.ListGenresRequest{})

	require.NoError(t, err)
	assert.Len(t, resp.Genres, len(model.Genres()))
	assert.Equal(t, []string{"to-be-read", "reading", "finished", "did-not-finish"}, resp.Statuses)
}

// watchStream стрим WatchBooks без сети
type watchStream struct {
	grpc.ServerStream
	ctx  context.Context
	sent []*booksv1.BookEvent
}

func (s *watchStream) Context() context.Context { return s.ctx }

func (s *watchStream) Send(event *booksv1.BookEvent) error {
	s.sent = append(s.sent, event)
	return nil
}

func TestWatchBooks_ForwardsEventsAndUnsubscribes(t *testing.T) {
	// Arrange
	handler, mockService := newTestHandler(t)
	events := make(chan svc.Event, 2)
	events <- svc.Event{Type: svc.EventAdded, Book: dune(t)}
	events <- svc.Event{Type: svc.EventRemoved, Book: dune(t)}
	close(events)

	mockService.EXPECT().Subscribe().Return(events)
	mockService.EXPECT().Unsubscribe(events)
	stream := &watchStream{ctx: context.Background()}

	// Act
	err := handler.WatchBooks(&booksv1.WatchBooksRequest{}, stream)

	// Assert
	require.NoError(t, err)
	require.Len(t, stream.sent, 3)
	assert.Equal(t, booksv1.EventSubscribed, stream.sent[0].Type)
	assert.Nil(t, stream.sent[0].Book)
	assert.Equal(t, "added", stream.sent[1].Type)
	assert.Equal(t, "removed", stream.sent[2].Type)
	assert.Equal(t, "Dune", stream.sent[1].Book.Title)
}

func TestWatchBooks_StopsOnCancel(t *testing.T) {
	handler, mockService := newTestHandler(t)
	events := make(chan svc.Event)
	mockService.EXPECT().Subscribe().Return(events)
	mockService.EXPECT().Unsubscribe(events)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := handler.WatchBooks(&booksv1.WatchBooksRequest{}, &watchStream{ctx: ctx})
	assert.NoError(t, err)
}

func TestHandleError_InternalError(t *testing.T) {
	grpcErr := handleError(errors.New("disk on fire"))

	st := status.Convert(grpcErr)
	assert.Equal(t, codes.Internal, st.Code())
	assert.Equal(t, "internal error", st.Message(), "internal details are not leaked")
	require.Len(t, st.Details(), 1)
	info, ok := st.Details()[0].(*errdetails.ErrorInfo)
	require.True(t, ok)
	assert.Equal(t, "INTERNAL_ERROR", info.Reason)
}

func TestHandleError_Nil(t *testing.T) {
	assert.NoError(t, handleError(nil))
}

func TestWatchBooks_StopsOnServerShutdown(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := mock_service.NewMockBookService(ctrl)
	serverCtx, shutdown := context.WithCancel(context.Background())
	handler := NewHandler(serverCtx, mockService, zap.NewNop())

	events := make(chan svc.Event)
	mockService.EXPECT().Subscribe().Return(events)
	mockService.EXPECT().Unsubscribe(events)
	shutdown()

	stream := &watchStream{ctx: context.Background()}
	err := handler.WatchBooks(&booksv1.WatchBooksRequest{}, stream)

	assert.NoError(t, err)
	assert.Len(t, stream.sent, 1, "only the subscription notice is sent")
}
