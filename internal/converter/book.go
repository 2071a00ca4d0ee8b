package converter

import (
	"time"

	"booktrackr/internal/model"
	svc "booktrackr/internal/service"
	booksv1 "booktrackr/pkg/api/books/v1"
)

// ModelToAPI конвертирует domain модель Book в представление API
func ModelToAPI(book model.Book) *booksv1.Book {
	return &booksv1.Book{
		Id:        book.ID().String(),
		Title:     book.Title(),
		Author:    book.Author(),
		Year:      int32(book.Year()),
		Genre:     string(book.Genre()),
		Status:    string(book.Status()),
		Rating:    int32(book.Rating()),
		Review:    book.Review(),
		Label:     book.Label(),
		CreatedAt: formatTime(book.CreatedAt()),
		UpdatedAt: formatTime(book.UpdatedAt()),
	}
}

// ModelsToAPI конвертирует слайс domain моделей. Пустой результат - пустой слайс, не nil.
func ModelsToAPI(books []model.Book) []*booksv1.Book {
	out := make([]*booksv1.Book, len(books))
	for i, book := range books {
		out[i] = ModelToAPI(book)
	}
	return out
}

// CreateRequestToParams конвертирует запрос создания в параметры сервиса
func CreateRequestToParams(req *booksv1.CreateBookRequest) svc.CreateParams {
	return svc.CreateParams{
		Title:  req.Title,
		Author: req.Author,
		Year:   int(req.Year),
		Genre:  req.Genre,
		Status: req.Status,
		Rating: int(req.Rating),
		Review: req.Review,
	}
}

// UpdateRequestToParams конвертирует запрос частичного изменения
func UpdateRequestToParams(req *booksv1.UpdateBookRequest) svc.UpdateParams {
	return svc.UpdateParams{
		Title:  req.Title,
		Author: req.Author,
		Year:   intPtr(req.Year),
		Genre:  req.Genre,
		Status: req.Status,
		Rating: intPtr(req.Rating),
		Review: req.Review,
	}
}

// ListRequestToFilter конвертирует запрос выборки в фильтр. Пустые строки
// означают отсутствие фильтра.
func ListRequestToFilter(req *booksv1.ListBooksRequest) svc.ListFilter {
	var filter svc.ListFilter
	if req.Status != "" {
		filter.Status = &req.Status
	}
	filter.Rating = intPtr(req.Rating)
	if req.Sort != "" {
		key := model.ParseSortKey(req.Sort)
		filter.Sort = &key
	}
	return filter
}

// EventToAPI конвертирует событие сервиса
func EventToAPI(event svc.Event) *booksv1.BookEvent {
	return &booksv1.BookEvent{
		Type: string(event.Type),
		Book: ModelToAPI(event.Book),
	}
}

func intPtr(v *int32) *int {
	if v == nil {
		return nil
	}
	i := int(*v)
	return &i
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
