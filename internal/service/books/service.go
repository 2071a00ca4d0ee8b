package books

import (
	"context"
	"errors"
	"slices"
	"strings"

	"booktrackr/internal/model"
	"booktrackr/internal/repository"
	svc "booktrackr/internal/service"
	"booktrackr/internal/validate"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
)

var _ svc.BookService = (*service)(nil)

type service struct {
	bookRepository repository.BookRepository
	events         *EventService
	log            *zap.Logger
}

// NewBookService создает новый экземпляр сервиса для работы с книгами
func NewBookService(bookRepository repository.BookRepository, events *EventService, log *zap.Logger) svc.BookService {
	return &service{
		bookRepository: bookRepository,
		events:         events,
		log:            log.Named("books"),
	}
}

// Create создает книгу из полной формы. Оценка вне диапазона не отклоняет
// создание: книга сохраняется без оценки, предупреждение пишется в лог и
// возвращается вызывающему.
func (s *service) Create(ctx context.Context, params svc.CreateParams) (svc.Created, error) {
	builder := model.NewBuilder(params.Title, params.Author).
		Year(params.Year).
		Genre(params.Genre).
		Status(params.Status).
		Rating(params.Rating).
		Review(params.Review)

	book, err := builder.Build()
	if err != nil {
		s.log.Warn("book rejected", zap.String("title", params.Title), zap.Error(err))
		return svc.Created{}, err
	}
	for _, warning := range builder.Warnings() {
		s.log.Warn("book input adjusted",
			zap.Stringer("id", book.ID()),
			zap.String("title", book.Title()),
			zap.String("warning", warning))
	}

	stored, err := s.add(ctx, book)
	if err != nil {
		return svc.Created{}, err
	}
	return svc.Created{Book: stored, Warnings: builder.Warnings()}, nil
}

// QuickAdd создает книгу по минимальному набору полей
func (s *service) QuickAdd(ctx context.Context, title, author string, year int) (model.Book, error) {
	book, err := model.NewQuickBook(title, author, year)
	if err != nil {
		s.log.Warn("book rejected", zap.String("title", title), zap.Error(err))
		return model.Book{}, err
	}
	return s.add(ctx, book)
}

func (s *service) add(ctx context.Context, book model.Book) (model.Book, error) {
	if err := s.bookRepository.Add(ctx, book); err != nil {
		s.log.Error("add book", zap.Stringer("id", book.ID()), zap.Error(err))
		return model.Book{}, pkgerrors.Wrap(err, "add book")
	}

	stored, _ := s.bookRepository.FindByID(ctx, book.ID())
	s.log.Debug("book added", zap.Stringer("id", stored.ID()), zap.String("label", stored.Label()))
	s.events.Publish(svc.Event{Type: svc.EventAdded, Book: stored})
	return stored, nil
}

// Get возвращает книгу по её ID
func (s *service) Get(ctx context.Context, id string) (model.Book, error) {
	bookID, err := parseID(id)
	if err != nil {
		return model.Book{}, err
	}

	book, found := s.bookRepository.FindByID(ctx, bookID)
	if !found {
		return model.Book{}, notFound(id)
	}
	return book, nil
}

// List возвращает книги с учетом фильтров по статусу и оценке и сортировки
// Оценка сравнивается на равенство: значение вне 0..5 просто ничего не находит.
func (s *service) List(ctx context.Context, filter svc.ListFilter) ([]model.Book, error) {
	var books []model.Book
	switch {
	case filter.Status != nil:
		books = s.bookRepository.ListByStatus(ctx, *filter.Status)
		if filter.Rating != nil {
			rating := *filter.Rating
			books = slices.DeleteFunc(books, func(b model.Book) bool { return b.Rating() != rating })
		}
	case filter.Rating != nil:
		books = s.bookRepository.ListByRating(ctx, *filter.Rating)
	case filter.Sort != nil:
		return s.bookRepository.SortedBy(ctx, *filter.Sort), nil
	default:
		return s.bookRepository.ListAll(ctx), nil
	}

	if filter.Sort != nil {
		model.SortBooks(books, *filter.Sort)
	}
	return books, nil
}

// Update атомарно применяет изменения: если хотя бы одно поле невалидно,
// книга остается без изменений
func (s *service) Update(ctx context.Context, id string, params svc.UpdateParams) (model.Book, error) {
	bookID, err := parseID(id)
	if err != nil {
		return model.Book{}, err
	}

	updated, found, err := s.bookRepository.Edit(ctx, bookID, func(b *model.Book) error {
		return applyUpdate(b, params)
	})
	if !found {
		return model.Book{}, notFound(id)
	}
	if err != nil {
		s.log.Warn("book update rejected", zap.String("id", id), zap.Error(err))
		return model.Book{}, err
	}

	s.events.Publish(svc.Event{Type: svc.EventUpdated, Book: updated})
	return updated, nil
}

func applyUpdate(b *model.Book, params svc.UpdateParams) error {
	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	if params.Title != nil {
		collect(b.SetTitle(*params.Title))
	}
	if params.Author != nil {
		collect(b.SetAuthor(*params.Author))
	}
	if params.Year != nil {
		collect(b.SetYear(*params.Year))
	}
	if params.Genre != nil {
		genre, err := model.ParseGenre(*params.Genre)
		collect(err)
		if err == nil {
			collect(b.SetGenre(genre))
		}
	}
	if params.Status != nil {
		status, err := model.ParseStatus(*params.Status)
		collect(err)
		if err == nil {
			collect(b.SetStatus(status))
		}
	}
	if params.Rating != nil {
		collect(b.SetRating(*params.Rating))
	}
	if params.Review != nil {
		collect(b.SetReview(*params.Review))
	}
	return errors.Join(errs...)
}

// UpdateStatus меняет статус чтения. Переходы не ограничены.
func (s *service) UpdateStatus(ctx context.Context, id, status string) (model.Book, error) {
	bookID, err := parseID(id)
	if err != nil {
		return model.Book{}, err
	}
	parsed, err := model.ParseStatus(status)
	if err != nil {
		s.log.Warn("status rejected", zap.String("id", id), zap.Error(err))
		return model.Book{}, err
	}

	found, err := s.bookRepository.UpdateStatus(ctx, bookID, parsed)
	return s.afterUpdate(ctx, id, bookID, found, err)
}

// UpdateRating меняет оценку; значение вне 0..5 отклоняется
func (s *service) UpdateRating(ctx context.Context, id string, rating int) (model.Book, error) {
	bookID, err := parseID(id)
	if err != nil {
		return model.Book{}, err
	}

	found, err := s.bookRepository.UpdateRating(ctx, bookID, rating)
	return s.afterUpdate(ctx, id, bookID, found, err)
}

// UpdateReview меняет отзыв как есть, без обрезки пробелов; отзыв длиннее
// 500 символов отклоняется
func (s *service) UpdateReview(ctx context.Context, id, review string) (model.Book, error) {
	bookID, err := parseID(id)
	if err != nil {
		return model.Book{}, err
	}

	found, err := s.bookRepository.UpdateReview(ctx, bookID, review)
	return s.afterUpdate(ctx, id, bookID, found, err)
}

func (s *service) afterUpdate(ctx context.Context, id string, bookID uuid.UUID, found bool, err error) (model.Book, error) {
	if !found {
		return model.Book{}, notFound(id)
	}
	if err != nil {
		s.log.Warn("book update rejected", zap.String("id", id), zap.Error(err))
		return model.Book{}, err
	}

	book, found := s.bookRepository.FindByID(ctx, bookID)
	if !found {
		return model.Book{}, notFound(id)
	}
	s.events.Publish(svc.Event{Type: svc.EventUpdated, Book: book})
	return book, nil
}

// Delete удаляет книгу по ID. Повторное удаление не считается ошибкой.
func (s *service) Delete(ctx context.Context, id string) error {
	bookID, err := parseID(id)
	if err != nil {
		return err
	}

	book, found := s.bookRepository.FindByID(ctx, bookID)
	if !found || !s.bookRepository.Remove(ctx, book) {
		s.log.Debug("delete of missing book", zap.String("id", id))
		return nil
	}

	s.events.Publish(svc.Event{Type: svc.EventRemoved, Book: book})
	return nil
}

// Summary возвращает подробное описание книги
func (s *service) Summary(ctx context.Context, id string) (string, error) {
	book, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return book.Summary(), nil
}

func (s *service) Genres(ctx context.Context) []model.Genre {
	return model.Genres()
}

func (s *service) Statuses(ctx context.Context) []model.Status {
	return model.Statuses()
}

func (s *service) Subscribe() chan svc.Event {
	return s.events.Subscribe()
}

func (s *service) Unsubscribe(ch chan svc.Event) {
	s.events.Unsubscribe(ch)
}

func parseID(id string) (uuid.UUID, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return uuid.Nil, &validate.Error{Field: "id", Value: id, Reason: "must not be blank"}
	}
	bookID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, &validate.Error{Field: "id", Value: id, Reason: "must be a valid UUID"}
	}
	return bookID, nil
}

func notFound(id string) error {
	return pkgerrors.Wrapf(svc.ErrBookNotFound, "id %s", id)
}
