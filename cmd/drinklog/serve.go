package main

import (
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vbonduro/drinklog/internal/catalog"
	"github.com/vbonduro/drinklog/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API and refresh the drink catalog on a schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return withApp(ctx, func(a *app) error {
			if _, err := a.catalog.RefreshIfNeeded(ctx); err != nil {
				a.logger.Warn("initial catalog refresh failed", "error", err)
			}

			refresher, err := catalog.NewRefresher(a.catalog, a.cfg.CatalogRefreshSchedule, a.logger)
			if err != nil {
				return err
			}
			refresher.Start()
			defer func() { <-refresher.Stop().Done() }()

			server := web.NewServer(a.ledger, a.catalog, a.cfg.CatalogRefreshPerMinute, a.logger)
			if err := server.ListenAndServe(ctx, a.cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("server error", "error", err)
				return err
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
