package model

import (
	"slices"
	"strings"

	"booktrackr/internal/validate"
)

// Status статус чтения книги. Переходы между статусами не ограничены:
// из любого статуса можно перейти в любой другой (например finished -> to-be-read).
type Status string

const (
	StatusToBeRead     Status = "to-be-read"
	StatusReading      Status = "reading"
	StatusFinished     Status = "finished"
	StatusDidNotFinish Status = "did-not-finish"
)

var statuses = []Status{StatusToBeRead, StatusReading, StatusFinished, StatusDidNotFinish}

// Statuses возвращает все допустимые статусы в порядке отображения
func Statuses() []Status {
	return slices.Clone(statuses)
}

// Valid проверяет принадлежность статуса фиксированному набору
func (s Status) Valid() bool {
	return slices.Contains(statuses, s)
}

// ParseStatus разбирает статус без учета регистра
func ParseStatus(raw string) (Status, error) {
	trimmed := strings.TrimSpace(raw)
	for _, s := range statuses {
		if strings.EqualFold(string(s), trimmed) {
			return s, nil
		}
	}
	return "", &validate.Error{Field: "status", Value: raw, Reason: "must be one of " + joinStatuses()}
}

func joinStatuses() string {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// Genre жанр книги. Пустое значение означает "не указан".
type Genre string

const GenreUnspecified Genre = ""

var genres = []Genre{
	"Action", "Adventure", "Animation", "Biography", "Comedy", "Crime",
	"Documentary", "Drama", "Family", "Fantasy", "History", "Horror", "Musical", "Mystery", "Romance",
	"Sci-Fi", "Sport", "Thriller", "War", "Western",
}

// Genres возвращает фиксированный набор жанров (без пустого значения)
func Genres() []Genre {
	return slices.Clone(genres)
}

// ParseGenre приводит жанр к каноническому написанию. Пустая строка дает GenreUnspecified.
func ParseGenre(raw string) (Genre, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return GenreUnspecified, nil
	}
	for _, g := range genres {
		if strings.EqualFold(string(g), trimmed) {
			return g, nil
		}
	}
	return "", &validate.Error{Field: "genre", Value: raw, Reason: "is not a known genre"}
}

// Valid проверяет, что жанр пустой или входит в набор
func (g Genre) Valid() bool {
	return g == GenreUnspecified || slices.Contains(genres, g)
}
