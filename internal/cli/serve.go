package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/surfrank/surfrank/internal/server"
	"github.com/surfrank/surfrank/pkg/config"
	"github.com/surfrank/surfrank/pkg/session"
)

// shutdownTimeout bounds graceful shutdown of in-flight requests.
const shutdownTimeout = 10 * time.Second

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	configPath string // optional TOML config file
	addr       string // listen address override
}

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), c, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "path to a TOML config file")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (overrides config)")

	return cmd
}

// runServe loads the config, selects the session backend, and serves
// until ctx is cancelled.
func runServe(ctx context.Context, c *CLI, opts *serveOpts) error {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}

	store, err := newSessionStore(ctx, c, cfg)
	if err != nil {
		return err
	}

	srv := server.New(store, cfg.TTL(), c.Logger)
	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Infof("Listening on %s", cfg.Server.Addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newSessionStore picks the session backend from the config: Redis when
// enabled, otherwise in-process memory.
func newSessionStore(ctx context.Context, c *CLI, cfg config.Config) (session.Store, error) {
	if !cfg.Redis.Enabled {
		c.Logger.Debug("using in-memory session store")
		return session.NewMemoryStore(), nil
	}
	c.Logger.Debugf("using redis session store at %s", cfg.Redis.Addr)
	return session.NewRedisStore(ctx, session.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}
