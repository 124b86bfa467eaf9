package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/Xunop/aldiaa/internal/log"
	"github.com/Xunop/aldiaa/internal/model"
	"github.com/Xunop/aldiaa/internal/session"
	"github.com/Xunop/aldiaa/internal/util"
	"github.com/Xunop/aldiaa/internal/worker"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// BookStore is the part of the record store the catalog needs.
type BookStore interface {
	ListBooks(ctx context.Context, find *model.FindBook) ([]*model.Book, error)
	FindBooksByTitle(ctx context.Context, userID, title string) ([]*model.Book, error)
	GetBook(ctx context.Context, find *model.FindBook) (*model.Book, error)
	UpsertBook(ctx context.Context, book *model.Book) (*model.Book, error)
	DeleteBook(ctx context.Context, id string) error
}

// View is one rendering of the catalog: the visible window of the filtered
// list plus the header numbers.
type View struct {
	Books   []*model.Book `json:"books"`
	Matched int           `json:"matched"`
	Total   int           `json:"total"`
	Visible int           `json:"visible"`
	HasMore bool          `json:"has_more"`
	Stats   model.Stats   `json:"stats"`
}

// Catalog holds the books of the current session scope in memory, newest
// first. Every operation runs under one mutex.
type Catalog struct {
	store    BookStore
	session  *session.Holder
	sync     worker.WorkPool
	pageSize int

	mu     sync.Mutex
	books  []*model.Book
	scope  string
	loaded bool
	lastTs int64

	now   func() time.Time
	newID func() string
}

// New returns a catalog over store for the user of holder. pool may be nil,
// in which case mutations are never synced.
func New(store BookStore, holder *session.Holder, pool worker.WorkPool, pageSize int) *Catalog {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	c := &Catalog{
		store:    store,
		session:  holder,
		sync:     pool,
		pageSize: pageSize,
		now:      time.Now,
		newID:    util.GenUUID,
	}
	holder.Subscribe(func(*model.User) { c.Reset() })
	return c
}

// PageSize is the number of books one "load more" step reveals.
func (c *Catalog) PageSize() int {
	return c.pageSize
}

// Load reads the books of the current scope from the store. On failure the
// list is empty, the error is returned for the caller to report and the next
// access tries again.
func (c *Catalog) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	user, err := c.session.Current(ctx)
	if err != nil {
		log.Error("Failed to read session", zap.Error(err))
	}
	return c.load(ctx, scopeOf(user))
}

func (c *Catalog) load(ctx context.Context, scope string) error {
	c.books = []*model.Book{}
	c.scope = scope
	c.loaded = false
	c.lastTs = 0

	books, err := c.store.ListBooks(ctx, &model.FindBook{UserID: &scope})
	if err != nil {
		log.Error("Failed to load books", zap.String("user_id", scope), zap.Error(err))
		return errors.Wrap(err, "failed to load books")
	}
	c.books = books
	c.loaded = true
	for _, b := range books {
		if b.CreatedAt > c.lastTs {
			c.lastTs = b.CreatedAt
		}
	}
	log.Debug("Books loaded", zap.String("user_id", scope), zap.Int("count", len(books)))
	return nil
}

// ensure makes sure the in-memory list belongs to the current session
// scope and returns the current user. Reads treat an unreadable session as
// anonymous; writes pass strict and get the error, so nothing is written
// into the wrong scope.
func (c *Catalog) ensure(ctx context.Context, strict bool) (*model.User, error) {
	user, err := c.session.Current(ctx)
	if err != nil {
		if strict {
			return nil, errors.Wrap(err, "failed to read session")
		}
		log.Error("Failed to read session", zap.Error(err))
		user = nil
	}
	scope := scopeOf(user)
	if !c.loaded || c.scope != scope {
		if err := c.load(ctx, scope); err != nil {
			return user, err
		}
	}
	return user, nil
}

// Books returns a copy of the in-memory list.
func (c *Catalog) Books(ctx context.Context) ([]*model.Book, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.ensure(ctx, false)
	return append([]*model.Book{}, c.books...), err
}

// Get returns the book with id from the current scope.
func (c *Catalog) Get(ctx context.Context, id string) (*model.Book, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	user, err := c.ensure(ctx, false)
	if err != nil {
		return nil, err
	}
	book, _, err := c.lookup(ctx, scopeOf(user), id)
	return book, err
}

// lookup finds id in the list, then in the store within scope, in case
// another process added it since the list was loaded. The index is -1 when
// the book is only in the store.
func (c *Catalog) lookup(ctx context.Context, scope, id string) (*model.Book, int, error) {
	if i := c.indexOf(id); i >= 0 {
		return c.books[i], i, nil
	}
	book, err := c.store.GetBook(ctx, &model.FindBook{ID: &id, UserID: &scope})
	if err != nil {
		return nil, -1, err
	}
	if book == nil {
		return nil, -1, ErrBookNotFound
	}
	return book, -1, nil
}

// Create adds a book to the current scope. Unless force is set, a book with
// the same normalized title in the scope makes it fail with *DuplicateError.
func (c *Catalog) Create(ctx context.Context, form model.BookForm, force bool) (*model.Book, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	user, err := c.ensure(ctx, true)
	if err != nil {
		return nil, err
	}
	scope := scopeOf(user)

	if !force {
		existing, err := c.findDuplicate(ctx, scope, form.Title)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, &DuplicateError{Existing: existing}
		}
	}

	book := &model.Book{
		ID:        c.newID(),
		UserID:    scope,
		CreatedAt: c.nextTs(),
	}
	form.Apply(book)

	saved, err := c.store.UpsertBook(ctx, book)
	if err != nil {
		return nil, err
	}
	c.books = append([]*model.Book{saved}, c.books...)
	log.Info("Book created", zap.String("id", saved.ID), zap.String("title", saved.Title), zap.Bool("force", force))

	c.pushSync(user, "create")
	return saved, nil
}

// findDuplicate scans the in-memory list first, then asks the store in case
// another process added the title since the list was loaded.
func (c *Catalog) findDuplicate(ctx context.Context, scope, title string) (*model.Book, error) {
	if existing := FindDuplicate(c.books, scope, title, ""); existing != nil {
		return existing, nil
	}
	if util.NormalizeTitle(title) == "" {
		return nil, nil
	}
	candidates, err := c.store.FindBooksByTitle(ctx, scope, title)
	if err != nil {
		return nil, err
	}
	return FindDuplicate(candidates, scope, title, ""), nil
}

// Update replaces every editable field of the book with id. The id, the
// owner and the creation time stay as they were.
func (c *Catalog) Update(ctx context.Context, id string, form model.BookForm) (*model.Book, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	user, err := c.ensure(ctx, true)
	if err != nil {
		return nil, err
	}
	book, i, err := c.lookup(ctx, scopeOf(user), id)
	if err != nil {
		return nil, err
	}

	updated := *book
	form.Apply(&updated)
	saved, err := c.store.UpsertBook(ctx, &updated)
	if err != nil {
		return nil, err
	}
	if i >= 0 {
		c.books[i] = saved
	} else {
		// Not in the list yet, pick it up with the next load
		c.loaded = false
	}
	log.Info("Book updated", zap.String("id", saved.ID))

	c.pushSync(user, "update")
	return saved, nil
}

// Delete removes the book with id from the store and the list. Unknown ids
// are ignored.
func (c *Catalog) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	user, err := c.ensure(ctx, true)
	if err != nil {
		return err
	}
	_, i, err := c.lookup(ctx, scopeOf(user), id)
	if errors.Is(err, ErrBookNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := c.store.DeleteBook(ctx, id); err != nil {
		return err
	}
	if i >= 0 {
		c.books = append(c.books[:i:i], c.books[i+1:]...)
	}
	log.Info("Book deleted", zap.String("id", id))

	c.pushSync(user, "delete")
	return nil
}

// View filters the list and cuts the visible window. A non-positive visible
// means one page. Stats always cover the whole list.
func (c *Catalog) View(ctx context.Context, filters model.SearchFilters, visible int) (*View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.ensure(ctx, false)
	if visible <= 0 {
		visible = c.pageSize
	}
	matched := Filter(c.books, filters)
	return &View{
		Books:   Window(matched, visible),
		Matched: len(matched),
		Total:   len(c.books),
		Visible: visible,
		HasMore: HasMore(len(matched), visible),
		Stats:   ComputeStats(c.books),
	}, err
}

// Stats returns the header numbers of the current scope.
func (c *Catalog) Stats(ctx context.Context) (model.Stats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.ensure(ctx, false)
	return ComputeStats(c.books), err
}

// Reset forgets the in-memory list. The next access reloads it.
func (c *Catalog) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.books = nil
	c.scope = ""
	c.loaded = false
	c.lastTs = 0
}

func (c *Catalog) indexOf(id string) int {
	for i, b := range c.books {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// nextTs is the creation time of a new book, strictly after every loaded one.
func (c *Catalog) nextTs() int64 {
	ts := c.now().UnixMilli()
	if ts <= c.lastTs {
		ts = c.lastTs + 1
	}
	c.lastTs = ts
	return ts
}

func (c *Catalog) pushSync(user *model.User, reason string) {
	if c.sync == nil || user == nil {
		return
	}
	c.sync.Push(model.SyncJob{
		ID:        util.GenUUID(),
		UserID:    user.ID,
		Reason:    reason,
		CreatedTs: c.now().Unix(),
	})
}

func scopeOf(user *model.User) string {
	if user == nil {
		return ""
	}
	return user.ID
}
