package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"booktrackr/internal/model"
	"booktrackr/internal/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var _ repository.BookRepository = (*repo)(nil)

type repo struct {
	mu    sync.RWMutex
	books map[uuid.UUID]model.Book
	now   func() time.Time
}

// NewRepository создает новый экземпляр in-memory репозитория на основе map
func NewRepository() repository.BookRepository {
	return &repo{
		books: make(map[uuid.UUID]model.Book),
		now:   time.Now,
	}
}

// Add сохраняет книгу. Совпадение ID означает ошибку генерации идентификаторов,
// поэтому прежняя запись не перезаписывается.
func (r *repo) Add(ctx context.Context, book model.Book) error {
	if book.IsZero() {
		return errors.New("book has no id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.books[book.ID()]; exists {
		return errors.Wrapf(repository.ErrDuplicateID, "add %s", book.ID())
	}

	book.Touch(r.now())
	r.books[book.ID()] = book
	return nil
}

func (r *repo) Remove(ctx context.Context, book model.Book) bool {
	return r.RemoveByID(ctx, book.ID())
}

func (r *repo) RemoveByID(ctx context.Context, id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.books[id]; !exists {
		return false
	}
	delete(r.books, id)
	return true
}

func (r *repo) FindByID(ctx context.Context, id uuid.UUID) (model.Book, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	book, exists := r.books[id]
	return book, exists
}

func (r *repo) ListAll(ctx context.Context) []model.Book {
	return r.filter(func(model.Book) bool { return true })
}

func (r *repo) ListByStatus(ctx context.Context, status string) []model.Book {
	status = strings.TrimSpace(status)
	return r.filter(func(b model.Book) bool {
		return strings.EqualFold(string(b.Status()), status)
	})
}

func (r *repo) ListByRating(ctx context.Context, rating int) []model.Book {
	return r.filter(func(b model.Book) bool {
		return b.Rating() == rating
	})
}

func (r *repo) SortedBy(ctx context.Context, key model.SortKey) []model.Book {
	books := r.ListAll(ctx)
	model.SortBooks(books, key)
	return books
}

func (r *repo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) (bool, error) {
	_, found, err := r.Edit(ctx, id, func(b *model.Book) error {
		return b.SetStatus(status)
	})
	return found, err
}

func (r *repo) UpdateRating(ctx context.Context, id uuid.UUID, rating int) (bool, error) {
	_, found, err := r.Edit(ctx, id, func(b *model.Book) error {
		return b.SetRating(rating)
	})
	return found, err
}

func (r *repo) UpdateReview(ctx context.Context, id uuid.UUID, review string) (bool, error) {
	_, found, err := r.Edit(ctx, id, func(b *model.Book) error {
		return b.SetReview(review)
	})
	return found, err
}

// Edit выполняется под блокировкой записи: fn получает копию книги,
// и копия сохраняется обратно только при успехе. fn не должна обращаться к репозиторию.
func (r *repo) Edit(ctx context.Context, id uuid.UUID, fn func(book *model.Book) error) (model.Book, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	book, exists := r.books[id]
	if !exists {
		return model.Book{}, false, nil
	}

	if err := fn(&book); err != nil {
		return r.books[id], true, err
	}
	if book.ID() != id {
		return r.books[id], true, errors.Errorf("edit changed book id %s", id)
	}

	book.Touch(r.now())
	r.books[id] = book
	return book, true, nil
}

func (r *repo) Count(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.books)
}

// filter собирает новый слайс, поэтому вызывающий код не может
// изменить состояние репозитория через результат
func (r *repo) filter(keep func(model.Book) bool) []model.Book {
	r.mu.RLock()
	defer r.mu.RUnlock()

	books := make([]model.Book, 0, len(r.books))
	for _, book := range r.books {
		if keep(book) {
			books = append(books, book)
		}
	}
	return books
}
