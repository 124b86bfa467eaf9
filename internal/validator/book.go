package validator // import "github.com/Xunop/aldiaa/internal/validator"

import (
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/Xunop/aldiaa/internal/model"
)

const (
	maxFieldLength = 512
	maxNotesLength = 8192
)

// ValidateBookForm checks a submitted form. Blank fields are allowed and a
// volume count below one is clamped later, not rejected.
func ValidateBookForm(form *model.BookForm) error {
	if form == nil {
		return errors.New("book is nil")
	}
	fields := map[string]string{
		"title":       form.Title,
		"author":      form.Author,
		"editor":      form.Editor,
		"course":      form.Course,
		"publisher":   form.Publisher,
		"print_place": form.PrintPlace,
	}
	for name, value := range fields {
		if utf8.RuneCountInString(value) > maxFieldLength {
			return errors.Errorf("%s is too long", name)
		}
	}
	if utf8.RuneCountInString(form.Notes) > maxNotesLength {
		return errors.New("notes is too long")
	}
	return nil
}
