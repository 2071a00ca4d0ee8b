package converter

import (
	"testing"

	"booktrackr/internal/model"
	svc "booktrackr/internal/service"
	booksv1 "booktrackr/pkg/api/books/v1"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelToAPI(t *testing.T) {
	book, err := model.NewBuilder("Dune", "Frank Herbert").
		Year(1965).
		Genre("sci-fi").
		Status("finished").
		Rating(5).
		Build()
	require.NoError(t, err)

	out := ModelToAPI(book)

	assert.Equal(t, book.ID().String(), out.Id)
	assert.Equal(t, "Dune", out.Title)
	assert.Equal(t, int32(1965), out.Year)
	assert.Equal(t, "Sci-Fi", out.Genre)
	assert.Equal(t, "finished", out.Status)
	assert.Equal(t, int32(5), out.Rating)
	assert.Equal(t, "Dune by Frank Herbert (1965)", out.Label)
	assert.Empty(t, out.CreatedAt, "book not stored yet")
}

func TestModelsToAPI_Empty(t *testing.T) {
	out := ModelsToAPI(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestListRequestToFilter(t *testing.T) {
	rating := int32(0)
	filter := ListRequestToFilter(&booksv1.ListBooksRequest{Status: "reading", Rating: &rating, Sort: "YEAR"})

	require.NotNil(t, filter.Status)
	assert.Equal(t, "reading", *filter.Status)
	require.NotNil(t, filter.Rating)
	assert.Equal(t, 0, *filter.Rating)
	require.NotNil(t, filter.Sort)
	assert.Equal(t, model.SortByYear, *filter.Sort)

	assert.Equal(t, svc.ListFilter{}, ListRequestToFilter(&booksv1.ListBooksRequest{}))
}

func TestUpdateRequestToParams(t *testing.T) {
	title := "Emma"
	year := int32(1815)
	params := UpdateRequestToParams(&booksv1.UpdateBookRequest{Id: "x", Title: &title, Year: &year})

	require.NotNil(t, params.Title)
	assert.Equal(t, "Emma", *params.Title)
	require.NotNil(t, params.Year)
	assert.Equal(t, 1815, *params.Year)
	assert.Nil(t, params.Rating)
	assert.Nil(t, params.Review)
}
