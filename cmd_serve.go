package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	v1 "github.com/Xunop/aldiaa/internal/api/v1"
	"github.com/Xunop/aldiaa/internal/config"
	"github.com/Xunop/aldiaa/internal/log"
	"github.com/Xunop/aldiaa/internal/server"
	"github.com/Xunop/aldiaa/internal/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.catalog.Load(ctx); err != nil {
				// Serve anyway, the list starts empty
				log.Warn("Catalog starts empty", zap.Error(err))
			}

			fmt.Fprint(cmd.OutOrStdout(), greetingBanner)
			log.Info("Aldiaa started",
				zap.String("version", version.GetCurrentVersion()),
				zap.String("addr", config.Opts.Addr()),
				zap.String("dsn", config.Opts.DSN))

			handler := v1.NewHandler(a.catalog, a.session, a.syncPool)
			_, done := server.StartServer(ctx, a.store, handler)
			<-done
			return nil
		},
	}
}
