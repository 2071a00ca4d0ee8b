package model

import (
	"errors"
	"fmt"
	"strings"

	"booktrackr/internal/validate"

	"github.com/google/uuid"
)

// Builder собирает новую книгу из данных формы.
//
// Политика: ошибки в заголовке, авторе, годе, жанре, статусе и отзыве отклоняют
// создание, а оценка вне диапазона 0..5 обнуляется с предупреждением (см. Warnings).
type Builder struct {
	title    string
	author   string
	year     int
	genre    string
	status   string
	rating   int
	review   string
	warnings []string
}

// NewBuilder начинает сборку книги с обязательными полями
func NewBuilder(title, author string) *Builder {
	return &Builder{title: title, author: author}
}

func (b *Builder) Year(year int) *Builder {
	b.year = year
	return b
}

func (b *Builder) Genre(genre string) *Builder {
	b.genre = genre
	return b
}

// Status задает статус чтения; пустой статус означает to-be-read
func (b *Builder) Status(status string) *Builder {
	b.status = status
	return b
}

func (b *Builder) Rating(rating int) *Builder {
	b.rating = rating
	return b
}

func (b *Builder) Review(review string) *Builder {
	b.review = review
	return b
}

// Warnings возвращает предупреждения последнего вызова Build
func (b *Builder) Warnings() []string {
	return b.warnings
}

// Build валидирует поля и создает книгу с новым идентификатором.
// Все ошибки валидации объединяются через errors.Join.
func (b *Builder) Build() (Book, error) {
	b.warnings = nil

	book := Book{
		id:     uuid.New(),
		status: StatusToBeRead,
	}

	var errs []error
	if err := book.SetTitle(b.title); err != nil {
		errs = append(errs, err)
	}
	if err := book.SetAuthor(b.author); err != nil {
		errs = append(errs, err)
	}
	if err := book.SetYear(b.year); err != nil {
		errs = append(errs, err)
	}
	if genre, err := ParseGenre(b.genre); err != nil {
		errs = append(errs, err)
	} else {
		book.genre = genre
	}
	if strings.TrimSpace(b.status) != "" {
		status, err := ParseStatus(b.status)
		if err != nil {
			errs = append(errs, err)
		} else {
			book.status = status
		}
	}
	if err := book.SetReview(b.review); err != nil {
		errs = append(errs, err)
	}
	if err := validate.Rating(b.rating); err != nil {
		b.warnings = append(b.warnings,
			fmt.Sprintf("rating %d is out of range 0-%d, book is stored as unrated", b.rating, validate.MaxRating))
	} else {
		book.rating = b.rating
	}

	if len(errs) > 0 {
		return Book{}, errors.Join(errs...)
	}
	return book, nil
}

// NewQuickBook создает книгу по минимальному набору полей:
// статус to-be-read, жанр не указан, без оценки и отзыва
func NewQuickBook(title, author string, year int) (Book, error) {
	return NewBuilder(title, author).Year(year).Build()
}
