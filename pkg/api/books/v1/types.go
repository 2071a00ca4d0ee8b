// Package booksv1 описывает wire-контракт сервиса книг: сообщения,
// gRPC дескриптор сервиса, клиент и JSON кодек.
package booksv1

// Book представление книги в API
type Book struct {
	Id        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Year      int32  `json:"year,omitempty"`
	Genre     string `json:"genre,omitempty"`
	Status    string `json:"status"`
	Rating    int32  `json:"rating,omitempty"`
	Review    string `json:"review,omitempty"`
	Label     string `json:"label"`
	CreatedAt string `json:"created_at,omitempty"` // RFC 3339
	UpdatedAt string `json:"updated_at,omitempty"` // RFC 3339
}

type CreateBookRequest struct {
	Title  string `json:"title" validate:"notblank"`
	Author string `json:"author" validate:"notblank"`
	Year   int32  `json:"year" validate:"min=0,max=9999"`
	Genre  string `json:"genre"`
	Status string `json:"status"`
	// Rating вне диапазона не отклоняется: книга сохраняется без оценки
	Rating int32  `json:"rating"`
	Review string `json:"review" validate:"max=500"`
}

type CreateBookResponse struct {
	Book     *Book    `json:"book"`
	Warnings []string `json:"warnings,omitempty"`
}

type QuickAddBookRequest struct {
	Title  string `json:"title" validate:"notblank"`
	Author string `json:"author" validate:"notblank"`
	Year   int32  `json:"year" validate:"min=0,max=9999"`
}

type QuickAddBookResponse struct {
	Book *Book `json:"book"`
}

type GetBookRequest struct {
	Id string `json:"id" validate:"required,uuid"`
}

type GetBookResponse struct {
	Book *Book `json:"book"`
}

type ListBooksRequest struct {
	// Status фильтр по статусу без учета регистра; пустой - без фильтра
	Status string `json:"status"`
	// Rating фильтр по точной оценке; nil - без фильтра, 0 - книги без оценки
	Rating *int32 `json:"rating,omitempty" validate:"omitempty,min=0,max=5"`
	// Sort title, author или year; неизвестное значение сортирует по title
	Sort string `json:"sort"`
}

type ListBooksResponse struct {
	Books []*Book `json:"books"`
}

type UpdateBookRequest struct {
	Id     string  `json:"id" validate:"required,uuid"`
	Title  *string `json:"title,omitempty"`
	Author *string `json:"author,omitempty"`
	Year   *int32  `json:"year,omitempty"`
	Genre  *string `json:"genre,omitempty"`
	Status *string `json:"status,omitempty"`
	Rating *int32  `json:"rating,omitempty"`
	Review *string `json:"review,omitempty"`
}

type UpdateBookResponse struct {
	Book *Book `json:"book"`
}

type UpdateStatusRequest struct {
	Id     string `json:"id" validate:"required,uuid"`
	Status string `json:"status" validate:"required"`
}

type UpdateRatingRequest struct {
	Id     string `json:"id" validate:"required,uuid"`
	Rating int32  `json:"rating"`
}

type UpdateReviewRequest struct {
	Id     string `json:"id" validate:"required,uuid"`
	Review string `json:"review"`
}

type DeleteBookRequest struct {
	Id string `json:"id" validate:"required,uuid"`
}

type DeleteBookResponse struct{}

type GetSummaryRequest struct {
	Id string `json:"id" validate:"required,uuid"`
}

type GetSummaryResponse struct {
	Summary string `json:"summary"`
}

type ListGenresRequest struct{}

type ListGenresResponse struct {
	Genres   []string `json:"genres"`
	Statuses []string `json:"statuses"`
}

type WatchBooksRequest struct{}

// EventSubscribed первое сообщение потока WatchBooks: подписка активна
const EventSubscribed = "subscribed"

// BookEvent событие потока WatchBooks
type BookEvent struct {
	Type string `json:"type"` // subscribed, added, updated, removed
	Book *Book  `json:"book,omitempty"`
}
