package container

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"statcalc/adapters/excel"
	"statcalc/adapters/stats/engine"
	"statcalc/internal"
	"statcalc/internal/api"
	"statcalc/internal/config"
	"statcalc/internal/lesson"
	"statcalc/ports"
	"statcalc/ui"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	Engine  *engine.Engine
	Catalog *lesson.Catalog
	// Samples is nil unless SAMPLE_FILE is configured
	Samples ports.SourcePort
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	logger := internal.NewLogger(cfg.Log.Level)
	c := &Container{
		Config: cfg,
		Logger: logger,
		Engine: engine.NewEngine(
			engine.WithStrictParsing(cfg.Engine.StrictParse),
			engine.WithMinimumCount(engine.OpQuantiles, cfg.Engine.QuartileMinCount),
			engine.WithMinimumCount(engine.OpBundle, cfg.Engine.HeightMinCount),
		),
	}

	catalog, err := lesson.NewCatalog(c.Engine)
	if err != nil {
		return nil, fmt.Errorf("failed to build lesson catalog: %w", err)
	}
	c.Catalog = catalog

	if cfg.Data.SampleFile != "" {
		reader := excel.NewDataReader(excel.Config{
			FilePath: cfg.Data.SampleFile,
			Column:   cfg.Data.SampleColumn,
		}).WithLogger(logger.With("excel"))
		c.Samples = reader
		logger.Info("using sample heights from %s", cfg.Data.SampleFile)
	}

	return c, nil
}

// UIServer builds the HTML front end on the configured port
func (c *Container) UIServer() (*http.Server, error) {
	app, err := ui.NewApp(ui.Config{
		MaxBodyBytes: c.Config.Server.MaxBodyBytes,
		Samples:      c.Samples,
	}, c.Engine, c.Catalog, c.Logger.With("ui"))
	if err != nil {
		return nil, fmt.Errorf("failed to create UI app: %w", err)
	}
	return c.httpServer(c.Config.Server.Port, app.Handler()), nil
}

// APIServer builds the JSON API on the configured API port
func (c *Container) APIServer() *http.Server {
	server := api.NewServer(api.Config{
		GinMode:      c.Config.Server.GinMode,
		MaxBodyBytes: c.Config.Server.MaxBodyBytes,
	}, c.Engine, c.Catalog, c.Logger.With("api"))
	return c.httpServer(c.Config.Server.APIPort, server.Handler())
}

func (c *Container) httpServer(port string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Serve runs the servers until ctx is cancelled or one of them fails, then
// shuts all of them down within the configured timeout
func (c *Container) Serve(ctx context.Context, servers ...*http.Server) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, srv := range servers {
		srv := srv
		g.Go(func() error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", srv.Addr, err)
			}
			c.Logger.Info("listening on http://localhost%s", srv.Addr)
			if err := srv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server on %s failed: %w", srv.Addr, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), c.Config.Server.ShutdownTimeout)
		defer cancel()

		var firstErr error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("shutdown of %s failed: %w", srv.Addr, err)
			}
		}
		c.Logger.Info("servers stopped")
		return firstErr
	})

	return g.Wait()
}
