package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/Xunop/aldiaa/internal/log"
	"github.com/Xunop/aldiaa/internal/model"
	"github.com/Xunop/aldiaa/internal/util"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const bookColumns = `
            id,
            user_id,
            title,
            author,
            editor,
            course,
            volumes,
            publisher,
            print_place,
            notes,
            created_at`

func (s *Store) GetBook(ctx context.Context, find *model.FindBook) (*model.Book, error) {
	if find.ID != nil {
		if cache, ok := s.BookCache.Load(*find.ID); ok {
			book := cache.(*model.Book)
			if find.AnyUser || book.UserID == scopeOf(find) {
				return book, nil
			}
		}
	}

	list, err := s.ListBooks(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}

	book := list[0]
	s.BookCache.Store(book.ID, book)
	return book, nil
}

// ListBooks returns the books matching find, newest first.
func (s *Store) ListBooks(ctx context.Context, find *model.FindBook) ([]*model.Book, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if !find.AnyUser {
		where, args = append(where, "user_id = ?"), append(args, scopeOf(find))
	}

	query := `
        SELECT` + bookColumns + `
        FROM books
        WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_at DESC, id`
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %s\n", query, args))

	return s.queryBooks(ctx, query, args...)
}

// FindBooksByTitle returns the books of a user scope whose normalized title
// equals the normalized candidate.
func (s *Store) FindBooksByTitle(ctx context.Context, userID, title string) ([]*model.Book, error) {
	query := `
        SELECT` + bookColumns + `
        FROM books
        WHERE user_id = ? AND ` + util.NormalizeTitleFunc + `(title) = ?
        ORDER BY created_at DESC`
	args := []any{userID, util.NormalizeTitle(title)}

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %s\n", query, args))

	return s.queryBooks(ctx, query, args...)
}

func (s *Store) queryBooks(ctx context.Context, query string, args ...any) ([]*model.Book, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("Failed to query books", zap.Error(err))
		return nil, errors.Wrap(err, "failed to query books")
	}
	defer rows.Close()

	list := make([]*model.Book, 0)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			log.Error("Failed to scan book", zap.Error(err))
			return nil, errors.Wrap(err, "failed to scan book")
		}
		list = append(list, book)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBook(row scanner) (*model.Book, error) {
	var book model.Book
	// The ordering of scan targets should be consistent with bookColumns
	if err := row.Scan(
		&book.ID,
		&book.UserID,
		&book.Title,
		&book.Author,
		&book.Editor,
		&book.Course,
		&book.Volumes,
		&book.Publisher,
		&book.PrintPlace,
		&book.Notes,
		&book.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &book, nil
}

// UpsertBook puts a book keyed by its id. On conflict only the editable
// fields are replaced, user_id and created_at keep their first value.
func (s *Store) UpsertBook(ctx context.Context, book *model.Book) (*model.Book, error) {
	if book == nil || book.ID == "" {
		return nil, errors.New("book id is required")
	}
	if book.Volumes < 1 {
		book.Volumes = 1
	}

	stmt := `
        INSERT INTO books (` + bookColumns + `
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            title = EXCLUDED.title,
            author = EXCLUDED.author,
            editor = EXCLUDED.editor,
            course = EXCLUDED.course,
            volumes = EXCLUDED.volumes,
            publisher = EXCLUDED.publisher,
            print_place = EXCLUDED.print_place,
            notes = EXCLUDED.notes
        RETURNING` + bookColumns
	args := []any{
		book.ID,
		book.UserID,
		book.Title,
		book.Author,
		book.Editor,
		book.Course,
		book.Volumes,
		book.Publisher,
		book.PrintPlace,
		book.Notes,
		book.CreatedAt,
	}

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %s\n", stmt, args))

	saved, err := scanBook(tx.QueryRowContext(ctx, stmt, args...))
	if err != nil {
		log.Error("Failed to put book", zap.String("id", book.ID), zap.Error(err))
		return nil, errors.Wrapf(err, "failed to put book %s", book.ID)
	}
	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "failed to commit book")
	}

	s.BookCache.Store(saved.ID, saved)
	return saved, nil
}

// DeleteBook removes a book by id. A missing id is not an error.
func (s *Store) DeleteBook(ctx context.Context, id string) error {
	stmt := `DELETE FROM books WHERE id = ?`
	args := []any{id}

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %s\n", stmt, args))

	if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
		log.Error("Failed to delete book", zap.String("id", id), zap.Error(err))
		return errors.Wrapf(err, "failed to delete book %s", id)
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit delete")
	}

	s.BookCache.Delete(id)
	return nil
}

func scopeOf(find *model.FindBook) string {
	if find.UserID == nil {
		return ""
	}
	return *find.UserID
}
