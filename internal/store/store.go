package store // import "github.com/Xunop/aldiaa/internal/store"

import (
	"context"
	"database/sql"
	"sync"
)

type Store struct {
	db        *sql.DB    // db is the local record store
	dbLock    sync.Mutex // dbLock serializes writers
	BookCache sync.Map   // map[string]*model.Book
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}
