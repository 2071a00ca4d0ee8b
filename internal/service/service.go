package service

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

import (
	"context"
	"errors"

	"booktrackr/internal/model"
)

// ErrBookNotFound возвращается сервисом для операций по ID, если книги нет.
// Репозиторий при этом считает отсутствие нормальным результатом.
var ErrBookNotFound = errors.New("book not found")

// CreateParams данные формы создания книги
type CreateParams struct {
	Title  string
	Author string
	Year   int
	Genre  string
	Status string
	Rating int
	Review string
}

// Created результат создания книги. Warnings содержит поправки, внесенные
// при сборке (например, обнуленная оценка вне диапазона).
type Created struct {
	Book     model.Book
	Warnings []string
}

// UpdateParams частичное изменение книги: nil означает "не менять"
type UpdateParams struct {
	Title  *string
	Author *string
	Year   *int
	Genre  *string
	Status *string
	Rating *int
	Review *string
}

// ListFilter параметры выборки. Если заданы и Status, и Rating, применяются оба.
type ListFilter struct {
	Status *string
	Rating *int
	Sort   *model.SortKey
}

// EventType тип события изменения книги
type EventType string

const (
	EventAdded   EventType = "added"
	EventUpdated EventType = "updated"
	EventRemoved EventType = "removed"
)

// Event событие изменения набора книг
type Event struct {
	Type EventType
	Book model.Book
}

// BookService интерфейс для бизнес-логики работы с книгами
type BookService interface {
	// Create создает книгу из полной формы
	Create(ctx context.Context, params CreateParams) (Created, error)
	// QuickAdd создает книгу по заголовку, автору и году
	QuickAdd(ctx context.Context, title, author string, year int) (model.Book, error)
	// Get возвращает книгу по ID
	Get(ctx context.Context, id string) (model.Book, error)
	// List возвращает книги с учетом фильтра
	List(ctx context.Context, filter ListFilter) ([]model.Book, error)
	// Update атомарно меняет переданные поля книги
	Update(ctx context.Context, id string, params UpdateParams) (model.Book, error)
	// UpdateStatus меняет статус чтения
	UpdateStatus(ctx context.Context, id, status string) (model.Book, error)
	// UpdateRating меняет оценку
	UpdateRating(ctx context.Context, id string, rating int) (model.Book, error)
	// UpdateReview меняет отзыв
	UpdateReview(ctx context.Context, id, review string) (model.Book, error)
	// Delete удаляет книгу; удаление отсутствующей книги не ошибка
	Delete(ctx context.Context, id string) error
	// Summary возвращает подробное текстовое описание книги
	Summary(ctx context.Context, id string) (string, error)
	// Genres возвращает допустимые жанры
	Genres(ctx context.Context) []model.Genre
	// Statuses возвращает допустимые статусы чтения
	Statuses(ctx context.Context) []model.Status
	// Subscribe подписывает на события изменения книг
	Subscribe() chan Event
	// Unsubscribe отписывает и закрывает канал
	Unsubscribe(ch chan Event)
}
