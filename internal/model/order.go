package model

import (
	"bytes"
	"cmp"
	"slices"
	"strings"
)

// SortKey ключ сортировки списка книг
type SortKey int

const (
	SortByTitle SortKey = iota
	SortByAuthor
	SortByYear
)

var sortKeyNames = map[SortKey]string{
	SortByTitle:  "title",
	SortByAuthor: "author",
	SortByYear:   "year",
}

func (k SortKey) String() string {
	if name, ok := sortKeyNames[k]; ok {
		return name
	}
	return sortKeyNames[SortByTitle]
}

// ParseSortKey разбирает ключ без учета регистра. Неизвестный ключ дает SortByTitle.
func ParseSortKey(raw string) SortKey {
	raw = strings.TrimSpace(raw)
	for k, name := range sortKeyNames {
		if strings.EqualFold(name, raw) {
			return k
		}
	}
	return SortByTitle
}

// Comparator сравнивает две книги в стиле cmp.Compare
type Comparator func(a, b Book) int

var orderings = map[SortKey]Comparator{
	SortByTitle:  CompareByTitle,
	SortByAuthor: CompareByAuthor,
	SortByYear:   CompareByYear,
}

// Comparator возвращает упорядочивание для ключа. Равные по ключу книги
// упорядочиваются по идентификатору, поэтому повторная сортировка
// одних и тех же данных дает одинаковый порядок.
func (k SortKey) Comparator() Comparator {
	order, ok := orderings[k]
	if !ok {
		order = CompareByTitle
	}
	return func(a, b Book) int {
		return cmp.Or(order(a, b), bytes.Compare(a.id[:], b.id[:]))
	}
}

// CompareByTitle естественный порядок книг: по заголовку без учета регистра
func CompareByTitle(a, b Book) int {
	return compareFold(a.title, b.title)
}

func CompareByAuthor(a, b Book) int {
	return compareFold(a.author, b.author)
}

// CompareByYear сортирует по году по возрастанию; книги без года (0) идут первыми
func CompareByYear(a, b Book) int {
	return cmp.Compare(a.year, b.year)
}

// SortBooks сортирует слайс на месте
func SortBooks(books []Book, key SortKey) {
	slices.SortStableFunc(books, key.Comparator())
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
