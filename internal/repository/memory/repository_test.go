package memory

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"booktrackr/internal/model"
	"booktrackr/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBook(t *testing.T, title, author string, year, rating int) model.Book {
	t.Helper()
	book, err := model.NewBuilder(title, author).Year(year).Rating(rating).Build()
	require.NoError(t, err)
	return book
}

func labels(books []model.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Label()
	}
	return out
}

func TestRepository_AddFindRemove(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	book := newBook(t, "Dune", "Frank Herbert", 1965, 5)

	require.NoError(t, repo.Add(ctx, book))

	found, ok := repo.FindByID(ctx, book.ID())
	require.True(t, ok)
	assert.Equal(t, book.ID(), found.ID())
	assert.Equal(t, book.Title(), found.Title())
	assert.Equal(t, book.Author(), found.Author())
	assert.Equal(t, book.Year(), found.Year())
	assert.Equal(t, book.Rating(), found.Rating())
	assert.False(t, found.CreatedAt().IsZero(), "repository stamps creation time")

	assert.True(t, repo.Remove(ctx, book))
	_, ok = repo.FindByID(ctx, book.ID())
	assert.False(t, ok)
	assert.Zero(t, repo.Count(ctx))
}

func TestRepository_RemoveMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	require.NoError(t, repo.Add(ctx, newBook(t, "Dune", "Frank Herbert", 1965, 0)))

	assert.False(t, repo.RemoveByID(ctx, uuid.New()))
	assert.Equal(t, 1, repo.Count(ctx))
}

func TestRepository_AddDuplicateID(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	book := newBook(t, "Dune", "Frank Herbert", 1965, 0)
	require.NoError(t, repo.Add(ctx, book))

	_, _, err := repo.Edit(ctx, book.ID(), func(b *model.Book) error {
		return b.SetTitle("Dune Messiah")
	})
	require.NoError(t, err)

	err = repo.Add(ctx, book)
	require.ErrorIs(t, err, repository.ErrDuplicateID)

	stored, _ := repo.FindByID(ctx, book.ID())
	assert.Equal(t, "Dune Messiah", stored.Title(), "existing record must not be overwritten")
}

func TestRepository_AddZeroBook(t *testing.T) {
	repo := NewRepository()
	assert.Error(t, repo.Add(context.Background(), model.Book{}))
}

func TestRepository_ListAllSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	dune := newBook(t, "Dune", "Frank Herbert", 1965, 0)
	require.NoError(t, repo.Add(ctx, dune))

	snapshot := repo.ListAll(ctx)
	require.Len(t, snapshot, 1)

	require.NoError(t, repo.Add(ctx, newBook(t, "It", "Stephen King", 1986, 0)))
	repo.RemoveByID(ctx, dune.ID())
	assert.Len(t, snapshot, 1, "earlier snapshot must not see later add/remove")
	assert.Equal(t, "Dune", snapshot[0].Title())

	// Изменение копии не затрагивает хранимую книгу
	require.NoError(t, snapshot[0].SetTitle("Changed"))
	require.NoError(t, repo.Add(ctx, dune))
	stored, ok := repo.FindByID(ctx, dune.ID())
	require.True(t, ok)
	assert.Equal(t, "Dune", stored.Title())
}

func TestRepository_SortedByScenario(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	require.NoError(t, repo.Add(ctx, newBook(t, "it", "Stephen King", 1986, 0)))
	require.NoError(t, repo.Add(ctx, newBook(t, "Dune", "Frank Herbert", 1965, 0)))

	byTitle := repo.SortedBy(ctx, model.SortByTitle)
	assert.Equal(t, []string{"Dune by Frank Herbert (1965)", "it by Stephen King (1986)"}, labels(byTitle))

	byYear := repo.SortedBy(ctx, model.SortByYear)
	assert.Equal(t, []string{"Dune by Frank Herbert (1965)", "it by Stephen King (1986)"}, labels(byYear))

	byAuthor := repo.SortedBy(ctx, model.ParseSortKey("Author"))
	assert.Equal(t, "Frank Herbert", byAuthor[0].Author())

	fallback := repo.SortedBy(ctx, model.ParseSortKey("genre"))
	assert.Equal(t, labels(byTitle), labels(fallback))
}

func TestRepository_SortedByIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	for _, title := range []string{"b", "A", "a", "C", "b"} {
		require.NoError(t, repo.Add(ctx, newBook(t, title, "X", 0, 0)))
	}

	first := repo.SortedBy(ctx, model.SortByTitle)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, repo.SortedBy(ctx, model.SortByTitle))
	}
}

func TestRepository_ListByRating(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	unrated1 := newBook(t, "A", "X", 0, 0)
	rated := newBook(t, "B", "X", 0, 3)
	unrated2 := newBook(t, "C", "X", 0, 0)
	for _, b := range []model.Book{unrated1, rated, unrated2} {
		require.NoError(t, repo.Add(ctx, b))
	}

	unrated := repo.ListByRating(ctx, 0)
	require.Len(t, unrated, 2)
	ids := []uuid.UUID{unrated[0].ID(), unrated[1].ID()}
	assert.ElementsMatch(t, []uuid.UUID{unrated1.ID(), unrated2.ID()}, ids)

	three := repo.ListByRating(ctx, 3)
	require.Len(t, three, 1)
	assert.Equal(t, rated.ID(), three[0].ID())

	assert.Empty(t, repo.ListByRating(ctx, 5))
}

func TestRepository_ListByStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	reading, err := model.NewBuilder("Dune", "Frank Herbert").Status("reading").Build()
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, reading))
	require.NoError(t, repo.Add(ctx, newBook(t, "It", "Stephen King", 1986, 0)))

	got := repo.ListByStatus(ctx, "READING")
	require.Len(t, got, 1)
	assert.Equal(t, reading.ID(), got[0].ID())

	assert.Len(t, repo.ListByStatus(ctx, "to-be-read"), 1)
	assert.Empty(t, repo.ListByStatus(ctx, "finished"))
	assert.Empty(t, repo.ListByStatus(ctx, "unknown"))
}

func TestRepository_UpdateMethods(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	book := newBook(t, "Dune", "Frank Herbert", 1965, 2)
	require.NoError(t, repo.Add(ctx, book))

	found, err := repo.UpdateRating(ctx, book.ID(), 5)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = repo.UpdateRating(ctx, book.ID(), 6)
	assert.True(t, found)
	assert.Error(t, err)

	found, err = repo.UpdateStatus(ctx, book.ID(), model.StatusFinished)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = repo.UpdateReview(ctx, book.ID(), strings.Repeat("r", 501))
	assert.True(t, found)
	assert.Error(t, err)

	found, err = repo.UpdateReview(ctx, book.ID(), "Spice must flow")
	require.NoError(t, err)
	assert.True(t, found)

	stored, _ := repo.FindByID(ctx, book.ID())
	assert.Equal(t, 5, stored.Rating())
	assert.Equal(t, model.StatusFinished, stored.Status())
	assert.Equal(t, "Spice must flow", stored.Review())
}

func TestRepository_UpdateMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	found, err := repo.UpdateStatus(ctx, uuid.New(), model.StatusReading)
	assert.False(t, found)
	assert.NoError(t, err)

	found, err = repo.UpdateRating(ctx, uuid.New(), 3)
	assert.False(t, found)
	assert.NoError(t, err)

	found, err = repo.UpdateReview(ctx, uuid.New(), "text")
	assert.False(t, found)
	assert.NoError(t, err)
}

func TestRepository_EditIsAtomic(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	book := newBook(t, "Dune", "Frank Herbert", 1965, 4)
	require.NoError(t, repo.Add(ctx, book))

	_, found, err := repo.Edit(ctx, book.ID(), func(b *model.Book) error {
		if err := b.SetTitle("Dune Messiah"); err != nil {
			return err
		}
		return b.SetRating(10)
	})
	assert.True(t, found)
	require.Error(t, err)

	stored, _ := repo.FindByID(ctx, book.ID())
	assert.Equal(t, "Dune", stored.Title(), "failed edit must not be committed partially")
	assert.Equal(t, 4, stored.Rating())
}

func TestRepository_EditUpdatesTimestamp(t *testing.T) {
	ctx := context.Background()
	r := NewRepository().(*repo)
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return clock }

	book := newBook(t, "Dune", "Frank Herbert", 1965, 0)
	require.NoError(t, r.Add(ctx, book))

	clock = clock.Add(time.Minute)
	updated, found, err := r.Edit(ctx, book.ID(), func(b *model.Book) error {
		return b.SetYear(1966)
	})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), updated.CreatedAt())
	assert.Equal(t, clock, updated.UpdatedAt())
}

func TestRepository_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			b, err := model.NewQuickBook("Dune", "Frank Herbert", 1965)
			if err == nil {
				_ = repo.Add(ctx, b)
			}
		}()
		go func() {
			defer wg.Done()
			_ = repo.SortedBy(ctx, model.SortByYear)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, repo.Count(ctx))
}
