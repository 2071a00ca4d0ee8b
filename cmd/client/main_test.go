package main

import (
	"bytes"
	"errors"
	"testing"

	booksv1 "booktrackr/pkg/api/books/v1"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestPrintBooks(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, printBooks(&out, []*booksv1.Book{
		{Id: "1", Label: "Dune by Frank Herbert (1965)", Genre: "Sci-Fi", Status: "finished", Rating: 5},
		{Id: "2", Label: "Emma by Jane Austen (1815)", Status: "to-be-read"},
	}))

	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Contains(t, string(lines[1]), "5/5")
	assert.Contains(t, string(lines[2]), "-")

	out.Reset()
	require.NoError(t, printBooks(&out, nil))
	assert.Equal(t, "no books\n", out.String())
}

func TestDescribeError(t *testing.T) {
	st, err := status.New(codes.InvalidArgument, "invalid rating").
		WithDetails(&errdetails.BadRequest{FieldViolations: []*errdetails.BadRequest_FieldViolation{
			{Field: "rating", Description: "must be at most 5"},
		}})
	require.NoError(t, err)

	got := describeError(st.Err())
	assert.Contains(t, got, "InvalidArgument")
	assert.Contains(t, got, "rating: must be at most 5")

	assert.Equal(t, "error: boom", describeError(errors.New("boom")))
}

func TestFormatEvent(t *testing.T) {
	assert.Contains(t, formatEvent(&booksv1.BookEvent{Type: booksv1.EventSubscribed}), "watching")
	assert.Equal(t, "added    1 Dune by Frank Herbert",
		formatEvent(&booksv1.BookEvent{Type: "added", Book: &booksv1.Book{Id: "1", Label: "Dune by Frank Herbert"}}))
}

func TestCommandNames(t *testing.T) {
	assert.Equal(t,
		[]string{"add", "genres", "list", "quick", "rate", "remove", "review", "show", "status", "watch"},
		commandNames())
}
