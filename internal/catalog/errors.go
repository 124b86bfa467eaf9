package catalog

import (
	"fmt"

	"github.com/Xunop/aldiaa/internal/model"
	"github.com/pkg/errors"
)

var (
	ErrDuplicateTitle = errors.New("a book with the same title already exists")
	ErrBookNotFound   = errors.New("book not found")
)

// DuplicateError carries the book whose title collided. It matches
// ErrDuplicateTitle with errors.Is.
type DuplicateError struct {
	Existing *model.Book
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s: %q", ErrDuplicateTitle, e.Existing.Title)
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicateTitle
}
