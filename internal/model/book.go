package model // import "github.com/Xunop/aldiaa/internal/model"

// Book is one entry of the record store.
type Book struct {
	ID string `json:"id"`
	// UserID is the owner of the book. Empty means the anonymous scope.
	UserID     string `json:"user_id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	Editor     string `json:"editor"`
	Course     string `json:"course"`
	Volumes    int    `json:"volumes"`
	Publisher  string `json:"publisher"`
	PrintPlace string `json:"print_place"`
	Notes      string `json:"notes"`
	// CreatedAt is a unix timestamp in milliseconds, set once on insert.
	CreatedAt int64 `json:"created_at"`
}

// BookForm holds the fields a user can fill in or replace.
type BookForm struct {
	Title      string `json:"title"`
	Author     string `json:"author"`
	Editor     string `json:"editor"`
	Course     string `json:"course"`
	Volumes    int    `json:"volumes"`
	Publisher  string `json:"publisher"`
	PrintPlace string `json:"print_place"`
	Notes      string `json:"notes"`
}

// Normalize clamps the volume count to at least one.
func (f *BookForm) Normalize() {
	if f.Volumes < 1 {
		f.Volumes = 1
	}
}

// Apply replaces every editable field of b with the form values.
// ID, UserID and CreatedAt are never touched.
func (f BookForm) Apply(b *Book) {
	f.Normalize()
	b.Title = f.Title
	b.Author = f.Author
	b.Editor = f.Editor
	b.Course = f.Course
	b.Volumes = f.Volumes
	b.Publisher = f.Publisher
	b.PrintPlace = f.PrintPlace
	b.Notes = f.Notes
}

// Form returns the editable part of b.
func (b *Book) Form() BookForm {
	return BookForm{
		Title:      b.Title,
		Author:     b.Author,
		Editor:     b.Editor,
		Course:     b.Course,
		Volumes:    b.Volumes,
		Publisher:  b.Publisher,
		PrintPlace: b.PrintPlace,
		Notes:      b.Notes,
	}
}

type FindBook struct {
	ID *string `json:"id"`
	// UserID scopes the result to one owner. nil with AnyUser false means the anonymous scope.
	UserID  *string `json:"user_id"`
	AnyUser bool    `json:"any_user"`
	// The maximum number of books to return.
	Limit *int `json:"limit"`
}

// SearchFilters are the six per-field substring filters of the search bar.
type SearchFilters struct {
	Title      string `json:"title"`
	Author     string `json:"author"`
	Publisher  string `json:"publisher"`
	PrintPlace string `json:"print_place"`
	Editor     string `json:"editor"`
	Course     string `json:"course"`
}

// Stats is derived from the list of books, never stored.
type Stats struct {
	TotalBooks   int `json:"total_books"`
	TotalVolumes int `json:"total_volumes"`
	TotalAuthors int `json:"total_authors"`
}
