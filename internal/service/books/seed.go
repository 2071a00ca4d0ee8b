package books

import (
	"context"
	"fmt"
	"math/rand/v2"

	"booktrackr/internal/model"
	svc "booktrackr/internal/service"

	pkgerrors "github.com/pkg/errors"
)

const sampleReview = "Generic detailed text that tests multi-line rendering.\n" +
	"Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor " +
	"incididunt ut labore et dolore magna aliqua."

// Seed добавляет n книг со случайными данными (режим отладки).
// rnd задается снаружи, чтобы тесты были воспроизводимыми.
func Seed(ctx context.Context, books svc.BookService, n int, rnd *rand.Rand) ([]model.Book, error) {
	genres := model.Genres()
	seeded := make([]model.Book, 0, n)

	for i := 0; i < n; i++ {
		letter := rune('A' + rnd.IntN(26))
		num := rnd.IntN(1000)
		title := fmt.Sprintf("%c. Title %d", letter, num)

		created, err := books.Create(ctx, svc.CreateParams{
			Title:  title,
			Author: fmt.Sprintf("%c%d", letter, num),
			Year:   2000 + rnd.IntN(100),
			Genre:  string(genres[rnd.IntN(len(genres))]),
			Status: string(model.StatusToBeRead),
			Rating: 1 + rnd.IntN(5),
			Review: fmt.Sprintf("%s\nTitle: '%s'.", sampleReview, title),
		})
		if err != nil {
			return seeded, pkgerrors.Wrapf(err, "seed book %d", i)
		}
		seeded = append(seeded, created.Book)
	}
	return seeded, nil
}
