package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/depscope/depscope/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr string // listen address, overrides config when set
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the graph snapshot HTTP API",
		Long: `Run an HTTP server that builds dependency graphs from uploaded lock
files and stores them as snapshots for later retrieval.

Endpoints:
  POST   /graphs                     build a graph from the lock file in the body
  GET    /graphs/{id}                fetch a stored snapshot
  DELETE /graphs/{id}                delete a snapshot
  GET    /graphs/{id}/paths/{pkg}    list reference paths to a package
  GET    /healthz                    liveness check

The snapshot store backend (memory or mongo) is chosen via the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			st, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := st.Close(closeCtx); err != nil {
					logger.Warnf("Store close failed: %v", err)
				}
			}()

			addr := opts.addr
			if addr == "" {
				addr = c.Config.Serve.Addr
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           newServer(st, logger).routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errc := make(chan error, 1)
			go func() {
				logger.Infof("Listening on %s (store: %s)", addr, c.Config.Store.Backend)
				errc <- srv.ListenAndServe()
			}()

			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					return fmt.Errorf("shutdown: %w", err)
				}
				return ctx.Err()
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (overrides config)")

	return cmd
}

// newStore creates the snapshot store configured for this CLI instance.
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	if c.Config.Store.Backend == StoreBackendMongo {
		st, err := store.NewMongoStore(ctx, store.MongoConfig{
			URI:      c.Config.Store.Mongo.URI,
			Database: c.Config.Store.Mongo.Database,
		})
		if err != nil {
			return nil, fmt.Errorf("connect mongo store: %w", err)
		}
		return st, nil
	}
	return store.NewMemoryStore(), nil
}
