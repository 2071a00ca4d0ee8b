// Package validate содержит общие правила валидации полей книги и входящих запросов.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

const (
	MaxYear      = 9999
	MaxRating    = 5
	MaxReviewLen = 500
)

// Error описывает отклонённое значение поля. Ошибка не фатальна:
// вызывающий код сохраняет предыдущее валидное состояние.
type Error struct {
	Field  string
	Value  any
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, fmt.Sprint(e.Value), e.Reason)
}

// IsValidationError сообщает, есть ли в цепочке err ошибка валидации
func IsValidationError(err error) bool {
	var ve *Error
	return errors.As(err, &ve)
}

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	if err := val.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("register notblank validation: %v", err))
	}

	// В сообщениях об ошибках используем имена полей из json тегов
	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return val
}

// Title проверяет, что заголовок не пустой после обрезки пробелов
func Title(title string) error {
	return check("title", title, "notblank", "must not be blank")
}

// Author проверяет, что автор не пустой после обрезки пробелов
func Author(author string) error {
	return check("author", author, "notblank", "must not be blank")
}

// Year проверяет год: 0 означает "не указан", иначе 0..9999
func Year(year int) error {
	return check("year", year, fmt.Sprintf("min=0,max=%d", MaxYear),
		fmt.Sprintf("must be between 0 and %d", MaxYear))
}

// Rating проверяет оценку: 0 означает "без оценки", иначе 1..5
func Rating(rating int) error {
	return check("rating", rating, fmt.Sprintf("min=0,max=%d", MaxRating),
		fmt.Sprintf("must be between 0 and %d", MaxRating))
}

// Review проверяет длину отзыва в символах (не в байтах)
func Review(review string) error {
	return check("review", review, fmt.Sprintf("max=%d", MaxReviewLen),
		fmt.Sprintf("must be at most %d characters", MaxReviewLen))
}

// Struct валидирует структуру по тегам `validate`. Возвращает *Error
// для первого нарушенного правила.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	return &Error{Field: fe.Field(), Value: fe.Value(), Reason: reason(fe)}
}

func check(field string, value any, tag, msg string) error {
	if err := v.Var(value, tag); err != nil {
		return &Error{Field: field, Value: value, Reason: msg}
	}
	return nil
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "must not be blank"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "failed on the '" + fe.Tag() + "' rule"
	}
}
