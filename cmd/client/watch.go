package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	booksv1 "booktrackr/pkg/api/books/v1"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// runWatch печатает события изменения книг до Ctrl+C или закрытия стрима сервером
func runWatch(ctx context.Context, client booksv1.BooksServiceClient, out io.Writer, _ []string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stream, err := client.WatchBooks(ctx, &booksv1.WatchBooksRequest{})
	if err != nil {
		return err
	}

	for {
		event, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out, "stream closed by server")
			return nil
		}
		if status.Code(err) == codes.Canceled {
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(out, formatEvent(event))
	}
}

func formatEvent(event *booksv1.BookEvent) string {
	if event.Type == booksv1.EventSubscribed || event.Book == nil {
		return "watching for book changes (Ctrl+C to stop)"
	}
	return fmt.Sprintf("%-8s %s %s", event.Type, event.Book.Id, event.Book.Label)
}
