package booksv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "booktrackr.books.v1.BooksService"

const (
	BooksService_CreateBook_FullMethodName   = "/" + ServiceName + "/CreateBook"
	BooksService_QuickAddBook_FullMethodName = "/" + ServiceName + "/QuickAddBook"
	BooksService_GetBook_FullMethodName      = "/" + ServiceName + "/GetBook"
	BooksService_ListBooks_FullMethodName    = "/" + ServiceName + "/ListBooks"
	BooksService_UpdateBook_FullMethodName   = "/" + ServiceName + "/UpdateBook"
	BooksService_UpdateStatus_FullMethodName = "/" + ServiceName + "/UpdateStatus"
	BooksService_UpdateRating_FullMethodName = "/" + ServiceName + "/UpdateRating"
	BooksService_UpdateReview_FullMethodName = "/" + ServiceName + "/UpdateReview"
	BooksService_DeleteBook_FullMethodName   = "/" + ServiceName + "/DeleteBook"
	BooksService_GetSummary_FullMethodName   = "/" + ServiceName + "/GetSummary"
	BooksService_ListGenres_FullMethodName   = "/" + ServiceName + "/ListGenres"
	BooksService_WatchBooks_FullMethodName   = "/" + ServiceName + "/WatchBooks"
)

// BooksServiceServer серверная часть сервиса книг
type BooksServiceServer interface {
	CreateBook(context.Context, *CreateBookRequest) (*CreateBookResponse, error)
	QuickAddBook(context.Context, *QuickAddBookRequest) (*QuickAddBookResponse, error)
	GetBook(context.Context, *GetBookRequest) (*GetBookResponse, error)
	ListBooks(context.Context, *ListBooksRequest) (*ListBooksResponse, error)
	UpdateBook(context.Context, *UpdateBookRequest) (*UpdateBookResponse, error)
	UpdateStatus(context.Context, *UpdateStatusRequest) (*UpdateBookResponse, error)
	UpdateRating(context.Context, *UpdateRatingRequest) (*UpdateBookResponse, error)
	UpdateReview(context.Context, *UpdateReviewRequest) (*UpdateBookResponse, error)
	DeleteBook(context.Context, *DeleteBookRequest) (*DeleteBookResponse, error)
	GetSummary(context.Context, *GetSummaryRequest) (*GetSummaryResponse, error)
	ListGenres(context.Context, *ListGenresRequest) (*ListGenresResponse, error)
	WatchBooks(*WatchBooksRequest, BooksService_WatchBooksServer) error
}

// UnimplementedBooksServiceServer встраивается в реализации для совместимости
type UnimplementedBooksServiceServer struct{}

func (UnimplementedBooksServiceServer) CreateBook(context.Context, *CreateBookRequest) (*CreateBookResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateBook not implemented")
}
func (UnimplementedBooksServiceServer) QuickAddBook(context.Context, *QuickAddBookRequest) (*QuickAddBookResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method QuickAddBook not implemented")
}
func (UnimplementedBooksServiceServer) GetBook(context.Context, *GetBookRequest) (*GetBookResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetBook not implemented")
}
func (UnimplementedBooksServiceServer) ListBooks(context.Context, *ListBooksRequest) (*ListBooksResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListBooks not implemented")
}
func (UnimplementedBooksServiceServer) UpdateBook(context.Context, *UpdateBookRequest) (*UpdateBookResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateBook not implemented")
}
func (UnimplementedBooksServiceServer) UpdateStatus(context.Context, *UpdateStatusRequest) (*UpdateBookResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateStatus not implemented")
}
func (UnimplementedBooksServiceServer) UpdateRating(context.Context, *UpdateRatingRequest) (*UpdateBookResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateRating not implemented")
}
func (UnimplementedBooksServiceServer) UpdateReview(context.Context, *UpdateReviewRequest) (*UpdateBookResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateReview not implemented")
}
func (UnimplementedBooksServiceServer) DeleteBook(context.Context, *DeleteBookRequest) (*DeleteBookResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteBook not implemented")
}
func (UnimplementedBooksServiceServer) GetSummary(context.Context, *GetSummaryRequest) (*GetSummaryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSummary not implemented")
}
func (UnimplementedBooksServiceServer) ListGenres(context.Context, *ListGenresRequest) (*ListGenresResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListGenres not implemented")
}
func (UnimplementedBooksServiceServer) WatchBooks(*WatchBooksRequest, BooksService_WatchBooksServer) error {
	return status.Error(codes.Unimplemented, "method WatchBooks not implemented")
}

// BooksService_WatchBooksServer серверная сторона потока событий
type BooksService_WatchBooksServer interface {
	Send(*BookEvent) error
	grpc.ServerStream
}

type booksServiceWatchBooksServer struct {
	grpc.ServerStream
}

func (x *booksServiceWatchBooksServer) Send(m *BookEvent) error {
	return x.ServerStream.SendMsg(m)
}

// RegisterBooksServiceServer регистрирует реализацию сервиса на gRPC сервере
func RegisterBooksServiceServer(s grpc.ServiceRegistrar, srv BooksServiceServer) {
	s.RegisterService(&BooksService_ServiceDesc, srv)
}

// unaryHandler строит grpc.MethodHandler для унарного метода
func unaryHandler[Req, Resp any](fullMethod string, call func(BooksServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(BooksServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(BooksServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func watchBooksHandler(srv any, stream grpc.ServerStream) error {
	m := new(WatchBooksRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(BooksServiceServer).WatchBooks(m, &booksServiceWatchBooksServer{stream})
}

// BooksService_ServiceDesc дескриптор сервиса для grpc.ServiceRegistrar
var BooksService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BooksServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateBook", Handler: unaryHandler(BooksService_CreateBook_FullMethodName, BooksServiceServer.CreateBook)},
		{MethodName: "QuickAddBook", Handler: unaryHandler(BooksService_QuickAddBook_FullMethodName, BooksServiceServer.QuickAddBook)},
		{MethodName: "GetBook", Handler: unaryHandler(BooksService_GetBook_FullMethodName, BooksServiceServer.GetBook)},
		{MethodName: "ListBooks", Handler: unaryHandler(BooksService_ListBooks_FullMethodName, BooksServiceServer.ListBooks)},
		{MethodName: "UpdateBook", Handler: unaryHandler(BooksService_UpdateBook_FullMethodName, BooksServiceServer.UpdateBook)},
		{MethodName: "UpdateStatus", Handler: unaryHandler(BooksService_UpdateStatus_FullMethodName, BooksServiceServer.UpdateStatus)},
		{MethodName: "UpdateRating", Handler: unaryHandler(BooksService_UpdateRating_FullMethodName, BooksServiceServer.UpdateRating)},
		{MethodName: "UpdateReview", Handler: unaryHandler(BooksService_UpdateReview_FullMethodName, BooksServiceServer.UpdateReview)},
		{MethodName: "DeleteBook", Handler: unaryHandler(BooksService_DeleteBook_FullMethodName, BooksServiceServer.DeleteBook)},
		{MethodName: "GetSummary", Handler: unaryHandler(BooksService_GetSummary_FullMethodName, BooksServiceServer.GetSummary)},
		{MethodName: "ListGenres", Handler: unaryHandler(BooksService_ListGenres_FullMethodName, BooksServiceServer.ListGenres)},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "WatchBooks",
			Handler:       watchBooksHandler,
			ServerStreams: true,
		},
	},
	Metadata: "pkg/api/books/v1",
}

// BooksServiceClient клиентская часть сервиса книг. Все вызовы используют JSON кодек.
type BooksServiceClient interface {
	CreateBook(ctx context.Context, in *CreateBookRequest, opts ...grpc.CallOption) (*CreateBookResponse, error)
	QuickAddBook(ctx context.Context, in *QuickAddBookRequest, opts ...grpc.CallOption) (*QuickAddBookResponse, error)
	GetBook(ctx context.Context, in *GetBookRequest, opts ...grpc.CallOption) (*GetBookResponse, error)
	ListBooks(ctx context.Context, in *ListBooksRequest, opts ...grpc.CallOption) (*ListBooksResponse, error)
	UpdateBook(ctx context.Context, in *UpdateBookRequest, opts ...grpc.CallOption) (*UpdateBookResponse, error)
	UpdateStatus(ctx context.Context, in *UpdateStatusRequest, opts ...grpc.CallOption) (*UpdateBookResponse, error)
	UpdateRating(ctx context.Context, in *UpdateRatingRequest, opts ...grpc.CallOption) (*UpdateBookResponse, error)
	UpdateReview(ctx context.Context, in *UpdateReviewRequest, opts ...grpc.CallOption) (*UpdateBookResponse, error)
	DeleteBook(ctx context.Context, in *DeleteBookRequest, opts ...grpc.CallOption) (*DeleteBookResponse, error)
	GetSummary(ctx context.Context, in *GetSummaryRequest, opts ...grpc.CallOption) (*GetSummaryResponse, error)
	ListGenres(ctx context.Context, in *ListGenresRequest, opts ...grpc.CallOption) (*ListGenresResponse, error)
	WatchBooks(ctx context.Context, in *WatchBooksRequest, opts ...grpc.CallOption) (BooksService_WatchBooksClient, error)
}

type booksServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewBooksServiceClient(cc grpc.ClientConnInterface) BooksServiceClient {
	return &booksServiceClient{cc}
}

func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	if err := cc.Invoke(ctx, method, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *booksServiceClient) CreateBook(ctx context.Context, in *CreateBookRequest, opts ...grpc.CallOption) (*CreateBookResponse, error) {
	return invoke[CreateBookResponse](ctx, c.cc, BooksService_CreateBook_FullMethodName, in, opts)
}

func (c *booksServiceClient) QuickAddBook(ctx context.Context, in *QuickAddBookRequest, opts ...grpc.CallOption) (*QuickAddBookResponse, error) {
	return invoke[QuickAddBookResponse](ctx, c.cc, BooksService_QuickAddBook_FullMethodName, in, opts)
}

func (c *booksServiceClient) GetBook(ctx context.Context, in *GetBookRequest, opts ...grpc.CallOption) (*GetBookResponse, error) {
	return invoke[GetBookResponse](ctx, c.cc, BooksService_GetBook_FullMethodName, in, opts)
}

func (c *booksServiceClient) ListBooks(ctx context.Context, in *ListBooksRequest, opts ...grpc.CallOption) (*ListBooksResponse, error) {
	return invoke[ListBooksResponse](ctx, c.cc, BooksService_ListBooks_FullMethodName, in, opts)
}

func (c *booksServiceClient) UpdateBook(ctx context.Context, in *UpdateBookRequest, opts ...grpc.CallOption) (*UpdateBookResponse, error) {
	return invoke[UpdateBookResponse](ctx, c.cc, BooksService_UpdateBook_FullMethodName, in, opts)
}

func (c *booksServiceClient) UpdateStatus(ctx context.Context, in *UpdateStatusRequest, opts ...grpc.CallOption) (*UpdateBookResponse, error) {
	return invoke[UpdateBookResponse](ctx, c.cc, BooksService_UpdateStatus_FullMethodName, in, opts)
}

func (c *booksServiceClient) UpdateRating(ctx context.Context, in *UpdateRatingRequest, opts ...grpc.CallOption) (*UpdateBookResponse, error) {
	return invoke[UpdateBookResponse](ctx, c.cc, BooksService_UpdateRating_FullMethodName, in, opts)
}

func (c *booksServiceClient) UpdateReview(ctx context.Context, in *UpdateReviewRequest, opts ...grpc.CallOption) (*UpdateBookResponse, error) {
	return invoke[UpdateBookResponse](ctx, c.cc, BooksService_UpdateReview_FullMethodName, in, opts)
}

func (c *booksServiceClient) DeleteBook(ctx context.Context, in *DeleteBookRequest, opts ...grpc.CallOption) (*DeleteBookResponse, error) {
	return invoke[DeleteBookResponse](ctx, c.cc, BooksService_DeleteBook_FullMethodName, in, opts)
}

func (c *booksServiceClient) GetSummary(ctx context.Context, in *GetSummaryRequest, opts ...grpc.CallOption) (*GetSummaryResponse, error) {
	return invoke[GetSummaryResponse](ctx, c.cc, BooksService_GetSummary_FullMethodName, in, opts)
}

func (c *booksServiceClient) ListGenres(ctx context.Context, in *ListGenresRequest, opts ...grpc.CallOption) (*ListGenresResponse, error) {
	return invoke[ListGenresResponse](ctx, c.cc, BooksService_ListGenres_FullMethodName, in, opts)
}

func (c *booksServiceClient) WatchBooks(ctx context.Context, in *WatchBooksRequest, opts ...grpc.CallOption) (BooksService_WatchBooksClient, error) {
	stream, err := c.cc.NewStream(ctx, &BooksService_ServiceDesc.Streams[0], BooksService_WatchBooks_FullMethodName, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	x := &booksServiceWatchBooksClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// BooksService_WatchBooksClient клиентская сторона потока событий
type BooksService_WatchBooksClient interface {
	Recv() (*BookEvent, error)
	grpc.ClientStream
}

type booksServiceWatchBooksClient struct {
	grpc.ClientStream
}

func (x *booksServiceWatchBooksClient) Recv() (*BookEvent, error) {
	m := new(BookEvent)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}
