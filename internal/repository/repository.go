package repository

import (
	"context"
	"errors"

	"booktrackr/internal/model"

	"github.com/google/uuid"
)

// ErrDuplicateID возвращается при попытке добавить книгу с уже занятым идентификатором
var ErrDuplicateID = errors.New("book id already exists")

// BookRepository интерфейс хранилища книг. Хранилище единолично владеет записями:
// все методы чтения возвращают копии, а изменения проходят через Update*/Edit.
// Отсутствие книги - нормальный результат, а не ошибка.
type BookRepository interface {
	// Add добавляет книгу под её идентификатором
	Add(ctx context.Context, book model.Book) error
	// Remove удаляет книгу; возвращает false, если её не было
	Remove(ctx context.Context, book model.Book) bool
	// RemoveByID удаляет книгу по ID; возвращает false, если её не было
	RemoveByID(ctx context.Context, id uuid.UUID) bool
	// FindByID возвращает копию книги и признак наличия
	FindByID(ctx context.Context, id uuid.UUID) (model.Book, bool)
	// ListAll возвращает снимок всех книг в неопределенном порядке
	ListAll(ctx context.Context) []model.Book
	// ListByStatus возвращает книги со статусом (без учета регистра)
	ListByStatus(ctx context.Context, status string) []model.Book
	// ListByRating возвращает книги с точно такой оценкой (0 - без оценки)
	ListByRating(ctx context.Context, rating int) []model.Book
	// SortedBy возвращает снимок всех книг, упорядоченный по ключу
	SortedBy(ctx context.Context, key model.SortKey) []model.Book
	// UpdateStatus, UpdateRating и UpdateReview делегируют сеттерам книги.
	// found=false, если книги нет; err - отклоненное значение.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) (found bool, err error)
	UpdateRating(ctx context.Context, id uuid.UUID, rating int) (found bool, err error)
	UpdateReview(ctx context.Context, id uuid.UUID, review string) (found bool, err error)
	// Edit выдает fn изменяемую копию книги и сохраняет её, только если fn вернула nil
	Edit(ctx context.Context, id uuid.UUID, fn func(book *model.Book) error) (updated model.Book, found bool, err error)
	// Count возвращает количество книг
	Count(ctx context.Context) int
}
