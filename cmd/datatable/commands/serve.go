package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/mux"
	"github.com/ncobase/datatable/config"
	"github.com/ncobase/datatable/logging/logger"
	"github.com/ncobase/datatable/router"
	"github.com/ncobase/datatable/source"
	"github.com/spf13/cobra"
)

func newServeCommand(a *app) *cobra.Command {
	var rows int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo dataset as a paginated endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			h, err := newHandler(a.cfg, rows)
			if err != nil {
				return err
			}
			srv := &http.Server{
				Addr:              a.cfg.Server.Addr(),
				Handler:           h,
				ReadHeaderTimeout: 5 * time.Second,
			}

			if a.cfg.Viper.ConfigFileUsed() != "" {
				a.cfg.Watch(func(*config.Config) {
					logger.Infof(ctx, "configuration changed, restart to apply server settings")
				})
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Infof(ctx, "serving %s on http://%s%s via %s", a.cfg.Server.Route, srv.Addr, a.cfg.Server.Path, a.cfg.Server.Router)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer cancel()
			logger.Infof(ctx, "shutting down")
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().IntVar(&rows, "rows", 137, "number of demo rows")
	return cmd
}

// newHandler registers the demo source on the configured router.
func newHandler(cfg *config.Config, rows int) (router.Interface, error) {
	var r router.Interface
	switch cfg.Server.Router {
	case "gin":
		if cfg.RunMode != gin.DebugMode {
			gin.SetMode(gin.ReleaseMode)
		}
		r = router.NewGinAdapter(gin.New())
	case "mux":
		r = router.NewMuxAdapter(mux.NewRouter())
	default:
		return nil, fmt.Errorf("unknown router %q", cfg.Server.Router)
	}

	src := peopleSource(rows, cfg.Server.PerPage, cfg.Server.MaxPerPage)
	r.Named(cfg.Server.Route, http.MethodGet, cfg.Server.Path, source.Handler(src))
	return r, nil
}
