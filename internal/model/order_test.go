package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(books []Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title()
	}
	return out
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortByTitle, ParseSortKey("Title"))
	assert.Equal(t, SortByAuthor, ParseSortKey("author"))
	assert.Equal(t, SortByYear, ParseSortKey(" YEAR "))
	assert.Equal(t, SortByTitle, ParseSortKey("rating"), "unknown key falls back to title")
	assert.Equal(t, SortByTitle, ParseSortKey(""))

	assert.Equal(t, "year", SortByYear.String())
	assert.Equal(t, "title", SortKey(42).String())
}

func TestSortBooks_CaseInsensitiveTitle(t *testing.T) {
	dune := mustBuild(t, NewBuilder("Dune", "Frank Herbert").Year(1965))
	it := mustBuild(t, NewBuilder("it", "Stephen King").Year(1986))
	books := []Book{it, dune}

	SortBooks(books, SortByTitle)
	assert.Equal(t, []string{"Dune", "it"}, titles(books))

	SortBooks(books, SortByYear)
	assert.Equal(t, []string{"Dune", "it"}, titles(books))
}

func TestSortBooks_Author(t *testing.T) {
	books := []Book{
		mustBuild(t, NewBuilder("Carrie", "stephen King")),
		mustBuild(t, NewBuilder("Emma", "Austen")),
		mustBuild(t, NewBuilder("Dune", "Frank Herbert")),
	}

	SortBooks(books, SortByAuthor)
	assert.Equal(t, []string{"Emma", "Dune", "Carrie"}, titles(books))
}

func TestSortBooks_YearUnspecifiedFirst(t *testing.T) {
	books := []Book{
		mustBuild(t, NewBuilder("B", "X").Year(2001)),
		mustBuild(t, NewBuilder("A", "X")),
		mustBuild(t, NewBuilder("C", "X").Year(1999)),
	}

	SortBooks(books, SortByYear)
	assert.Equal(t, []string{"A", "C", "B"}, titles(books))
}

func TestSortBooks_DeterministicTies(t *testing.T) {
	var books []Book
	for i := 0; i < 10; i++ {
		books = append(books, mustBuild(t, NewBuilder("Same", "Author")))
	}
	reversed := make([]Book, len(books))
	for i := range books {
		reversed[len(books)-1-i] = books[i]
	}

	SortBooks(books, SortByTitle)
	SortBooks(reversed, SortByTitle)
	require.Equal(t, len(books), len(reversed))
	for i := range books {
		assert.Equal(t, books[i].ID(), reversed[i].ID(), "ties must break the same way regardless of input order")
	}

	again := append([]Book(nil), books...)
	SortBooks(again, SortByTitle)
	assert.Equal(t, books, again, "sorting is idempotent")
}

func TestSortKey_UnknownUsesTitle(t *testing.T) {
	a := mustBuild(t, NewBuilder("alpha", "Z"))
	b := mustBuild(t, NewBuilder("Beta", "A"))

	assert.Negative(t, SortKey(99).Comparator()(a, b))
}
