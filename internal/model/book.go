package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"booktrackr/internal/validate"

	"github.com/google/uuid"
)

// Book запись о книге (доменная модель). Идентификатор назначается при создании
// и больше не меняется; остальные поля меняются только через сеттеры,
// которые повторно валидируют значение.
//
// Book передается по значению: копия, полученная из репозитория, является
// снимком и не связана с хранимым экземпляром.
type Book struct {
	id        uuid.UUID
	title     string
	author    string
	year      int // 0 - год не указан
	genre     Genre
	status    Status
	rating    int // 0 - без оценки
	review    string
	createdAt time.Time
	updatedAt time.Time
}

func (b Book) ID() uuid.UUID        { return b.id }
func (b Book) Title() string        { return b.title }
func (b Book) Author() string       { return b.author }
func (b Book) Year() int            { return b.year }
func (b Book) Genre() Genre         { return b.genre }
func (b Book) Status() Status       { return b.status }
func (b Book) Rating() int          { return b.rating }
func (b Book) Review() string       { return b.review }
func (b Book) CreatedAt() time.Time { return b.createdAt }
func (b Book) UpdatedAt() time.Time { return b.updatedAt }

// IsZero проверяет, что книга не была создана конструктором
func (b Book) IsZero() bool {
	return b.id == uuid.Nil
}

// SetTitle меняет заголовок. Пустой заголовок отклоняется, прежнее значение сохраняется.
func (b *Book) SetTitle(title string) error {
	title = strings.TrimSpace(title)
	if err := validate.Title(title); err != nil {
		return err
	}
	b.title = title
	return nil
}

// SetAuthor меняет автора
func (b *Book) SetAuthor(author string) error {
	author = strings.TrimSpace(author)
	if err := validate.Author(author); err != nil {
		return err
	}
	b.author = author
	return nil
}

// SetYear меняет год издания (0 - не указан)
func (b *Book) SetYear(year int) error {
	if err := validate.Year(year); err != nil {
		return err
	}
	b.year = year
	return nil
}

// SetGenre меняет жанр
func (b *Book) SetGenre(genre Genre) error {
	if !genre.Valid() {
		return &validate.Error{Field: "genre", Value: genre, Reason: "is not a known genre"}
	}
	b.genre = genre
	return nil
}

// SetStatus меняет статус чтения. Допустим любой переход.
func (b *Book) SetStatus(status Status) error {
	if !status.Valid() {
		return &validate.Error{Field: "status", Value: status, Reason: "must be one of " + joinStatuses()}
	}
	b.status = status
	return nil
}

// SetRating меняет оценку. В отличие от конструктора, оценка вне диапазона
// не обнуляется, а отклоняется.
func (b *Book) SetRating(rating int) error {
	if err := validate.Rating(rating); err != nil {
		return err
	}
	b.rating = rating
	return nil
}

// SetReview меняет отзыв
func (b *Book) SetReview(review string) error {
	if err := validate.Review(review); err != nil {
		return err
	}
	b.review = review
	return nil
}

// Touch обновляет временные метки. createdAt выставляется один раз.
func (b *Book) Touch(now time.Time) {
	if b.createdAt.IsZero() {
		b.createdAt = now
	}
	b.updatedAt = now
}

// Summary возвращает многострочное описание книги, в которое попадают
// только заполненные поля
func (b Book) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Title: %s\n", b.title)
	fmt.Fprintf(&sb, "Author: %s\n", b.author)
	if b.year > 0 {
		fmt.Fprintf(&sb, "Year: %d\n", b.year)
	}
	if b.genre != GenreUnspecified {
		fmt.Fprintf(&sb, "Genre: %s\n", b.genre)
	}
	fmt.Fprintf(&sb, "Status: %s\n", b.status)
	if b.rating > 0 {
		fmt.Fprintf(&sb, "Rating: %d/5\n", b.rating)
	}
	if b.review != "" {
		fmt.Fprintf(&sb, "Review: %s\n", b.review)
	}
	return sb.String()
}

// Label возвращает однострочное представление: "<title> by <author> (<year>)"
func (b Book) Label() string {
	label := b.title + " by " + b.author
	if b.year > 0 {
		label += " (" + strconv.Itoa(b.year) + ")"
	}
	return label
}

func (b Book) String() string {
	return b.Label()
}
