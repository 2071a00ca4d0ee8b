package main

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	booksv1 "booktrackr/pkg/api/books/v1"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"
)

type command struct {
	usage     string
	streaming bool
	run       func(ctx context.Context, client booksv1.BooksServiceClient, out io.Writer, args []string) error
}

var commands = map[string]command{
	"add":    {usage: "add a book: --title T --author A [--year --genre --status --rating --review]", run: runAdd},
	"quick":  {usage: "quick add: TITLE AUTHOR [YEAR]", run: runQuick},
	"list":   {usage: "list books: [--status S] [--rating N] [--sort title|author|year]", run: runList},
	"show":   {usage: "show book details: ID", run: runShow},
	"status": {usage: "change reading status: ID STATUS", run: runStatus},
	"rate":   {usage: "change rating 0-5: ID RATING", run: runRate},
	"review": {usage: "change review: ID TEXT", run: runReview},
	"remove": {usage: "remove a book: ID", run: runRemove},
	"watch":  {usage: "print book changes until interrupted", streaming: true, run: runWatch},
	"genres": {usage: "list genres and statuses", run: runGenres},
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func runAdd(ctx context.Context, client booksv1.BooksServiceClient, out io.Writer, args []string) error {
	flags := pflag.NewFlagSet("add", pflag.ContinueOnError)
	req := &booksv1.CreateBookRequest{}
	flags.StringVarP(&req.Title, "title", "t", "", "book title")
	flags.StringVarP(&req.Author, "author", "a", "", "book author")
	flags.Int32VarP(&req.Year, "year", "y", 0, "publication year, 0 if unknown")
	flags.StringVarP(&req.Genre, "genre", "g", "", "genre, see 'genres'")
	flags.StringVarP(&req.Status, "status", "s", "", "reading status, default to-be-read")
	flags.Int32VarP(&req.Rating, "rating", "r", 0, "rating 1-5, 0 for unrated")
	flags.StringVar(&req.Review, "review", "", "review text")
	if err := flags.Parse(args); err != nil {
		return err
	}

	resp, err := client.CreateBook(ctx, req)
	if err != nil {
		return err
	}
	for _, warning := range resp.Warnings {
		fmt.Fprintf(out, "warning: %s\n", warning)
	}
	fmt.Fprintf(out, "added %s %s\n", resp.Book.Id, resp.Book.Label)
	return nil
}

func runQuick(ctx context.Context, client booksv1.BooksServiceClient, out io.Writer, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return errors.New("usage: quick TITLE AUTHOR [YEAR]")
	}
	req := &booksv1.QuickAddBookRequest{Title: args[0], Author: args[1]}
	if len(args) == 3 {
		year, err := strconv.ParseInt(args[2], 10, 32)
		if err != nil {
			return errors.Wrapf(err, "year %q", args[2])
		}
		req.Year = int32(year)
	}

	resp, err := client.QuickAddBook(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "added %s %s\n", resp.Book.Id, resp.Book.Label)
	return nil
}

func runList(ctx context.Context, client booksv1.BooksServiceClient, out io.Writer, args []string) error {
	flags := pflag.NewFlagSet("list", pflag.ContinueOnError)
	req := &booksv1.ListBooksRequest{}
	flags.StringVarP(&req.Status, "status", "s", "", "filter by reading status")
	rating := flags.Int32P("rating", "r", 0, "filter by exact rating, 0 for unrated")
	flags.StringVar(&req.Sort, "sort", "", "sort by title, author or year")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.Changed("rating") {
		req.Rating = rating
	}

	resp, err := client.ListBooks(ctx, req)
	if err != nil {
		return err
	}
	return printBooks(out, resp.Books)
}

func runShow(ctx context.Context, client booksv1.BooksServiceClient, out io.Writer, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: show ID")
	}
	resp, err := client.GetSummary(ctx, &booksv1.GetSummaryRequest{Id: args[0]})
	if err != nil {
		return err
	}
	fmt.Fprint(out, resp.Summary)
	return nil
}

func runStatus(ctx context.Context, client booksv1.BooksServiceClient, out io.Writer, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: status ID STATUS")
	}
	resp, err := client.UpdateStatus(ctx, &booksv1.UpdateStatusRequest{Id: args[0], Status: args[1]})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s is now %s\n", resp.Book.Label, resp.Book.Status)
	return nil
}

func runRate(ctx context.Context, client booksv1.BooksServiceClient, out io.Writer, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: rate ID RATING")
	}
	rating, err := strconv.ParseInt(args[1], 10, 32)
	if err != nil {
		return errors.Wrapf(err, "rating %q", args[1])
	}
	resp, err := client.UpdateRating(ctx, &booksv1.UpdateRatingRequest{Id: args[0], Rating: int32(rating)})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s rated %s\n", resp.Book.Label, formatRating(resp.Book.Rating))
	return nil
}

func runReview(ctx context.Context, client booksv1.BooksServiceClient, out io.Writer, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: review ID TEXT")
	}
	resp, err := client.UpdateReview(ctx, &booksv1.UpdateReviewRequest{Id: args[0], Review: strings.Join(args[1:], " ")})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "review saved for %s\n", resp.Book.Label)
	return nil
}

func runRemove(ctx context.Context, client booksv1.BooksServiceClient, out io.Writer, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: remove ID")
	}
	if _, err := client.DeleteBook(ctx, &booksv1.DeleteBookRequest{Id: args[0]}); err != nil {
		return err
	}
	fmt.Fprintf(out, "removed %s\n", args[0])
	return nil
}

func runGenres(ctx context.Context, client booksv1.BooksServiceClient, out io.Writer, _ []string) error {
	resp, err := client.ListGenres(ctx, &booksv1.ListGenresRequest{})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Genres:   %s\n", strings.Join(resp.Genres, ", "))
	fmt.Fprintf(out, "Statuses: %s\n", strings.Join(resp.Statuses, ", "))
	return nil
}

func printBooks(out io.Writer, books []*booksv1.Book) error {
	if len(books) == 0 {
		_, err := fmt.Fprintln(out, "no books")
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tBOOK\tGENRE\tSTATUS\tRATING")
	for _, b := range books {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", b.Id, b.Label, b.Genre, b.Status, formatRating(b.Rating))
	}
	return tw.Flush()
}

func formatRating(rating int32) string {
	if rating == 0 {
		return "-"
	}
	return fmt.Sprintf("%d/5", rating)
}

// describeError раскрывает детали gRPC статуса: нарушенные поля и причину
func describeError(err error) string {
	st, ok := status.FromError(err)
	if !ok {
		return "error: " + err.Error()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "error (%s): %s", st.Code(), st.Message())
	for _, detail := range st.Details() {
		switch d := detail.(type) {
		case *errdetails.BadRequest:
			for _, v := range d.GetFieldViolations() {
				fmt.Fprintf(&b, "\n  %s: %s", v.GetField(), v.GetDescription())
			}
		case *errdetails.ErrorInfo:
			fmt.Fprintf(&b, "\n  reason: %s", d.GetReason())
		}
	}
	return b.String()
}
