package main

import (
	"context"

	"github.com/Xunop/aldiaa/internal/catalog"
	"github.com/Xunop/aldiaa/internal/config"
	"github.com/Xunop/aldiaa/internal/log"
	"github.com/Xunop/aldiaa/internal/session"
	"github.com/Xunop/aldiaa/internal/store"
	"github.com/Xunop/aldiaa/internal/store/db"
	"github.com/Xunop/aldiaa/internal/worker"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// app wires the record store, the session and the catalog for one command.
type app struct {
	store    *store.Store
	session  *session.Holder
	catalog  *catalog.Catalog
	syncPool *worker.SyncPool
}

func newApp(ctx context.Context) (*app, error) {
	d, err := db.NewDB(config.Opts.DSN)
	if err != nil {
		log.Error("Error opening database", zap.Error(err))
		return nil, err
	}
	if err := d.Migrate(ctx); err != nil {
		d.Close()
		log.Error("Error migrating database", zap.Error(err))
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	s := store.NewStore(d.DB)
	if err := s.Ping(ctx); err != nil {
		s.Close()
		log.Error("Error pinging database", zap.Error(err))
		return nil, err
	}

	pool := worker.NewSyncPool(config.Opts.SyncWorkers, config.Opts.SyncDelay())
	holder := session.NewHolder(s, config.Opts.LoginDelay())
	return &app{
		store:    s,
		session:  holder,
		catalog:  catalog.New(s, holder, pool, config.Opts.PageSize),
		syncPool: pool,
	}, nil
}

func (a *app) Close() {
	a.syncPool.Close()
	if err := a.store.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}
}
