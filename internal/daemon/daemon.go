package daemon

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/perfkit/boostd/internal/api"
	"github.com/perfkit/boostd/internal/app/boost"
	"github.com/perfkit/boostd/internal/app/gamelist"
	"github.com/perfkit/boostd/internal/app/policy"
	"github.com/perfkit/boostd/internal/domain"
	"github.com/perfkit/boostd/internal/health"
	_ "github.com/perfkit/boostd/internal/infra/metrics" // Register Prometheus metrics
	"github.com/perfkit/boostd/internal/infra/powerhal"
	"github.com/perfkit/boostd/internal/infra/sqlite"
)

// Daemon is the core boostd runtime. It wires together all services.
type Daemon struct {
	Config    Config
	DB        *sqlite.DB
	Policy    *policy.Table
	Scheduler *boost.Scheduler
	Games     *gamelist.Registry
	Server    *api.Server
	Health    *health.Checker
	NodeID    string

	remote *powerhal.RemoteSink
	mock   *powerhal.MockSink
	cancel context.CancelFunc
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	// Open SQLite
	db, err := sqlite.Open(boostdHome())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Policy table with config duration overrides
	table, err := policy.New(policy.Overrides(cfg.Policy.DurationOverridesMs))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("build policy table: %w", err)
	}

	d := &Daemon{
		Config: cfg,
		DB:     db,
		Policy: table,
	}

	// Stable node identity, minted on first run
	nodeID := cfg.Node.ID
	if nodeID == "" {
		nodeID, _ = db.GetInfo("node_id")
	}
	if nodeID == "" {
		nodeID = "boostd-" + uuid.NewString()[:8]
		if err := db.SetInfo("node_id", nodeID); err != nil {
			log.Printf("[daemon] WARNING: persist node id: %v", err)
		}
	}
	d.NodeID = nodeID

	// Hint sink provider: sysfs, then remote HAL, then mock (if allowed).
	// The scheduler re-runs this chain lazily whenever its sink is absent.
	if url := cfg.Hints.RemoteURL; url != "" {
		d.remote = powerhal.NewRemoteSink(url)
	}
	if cfg.Hints.AllowMock {
		d.mock = powerhal.NewMockSink(cfg.Logging.Debug)
	}
	provider := d.acquireSink
	if sink := provider(); sink == nil {
		fmt.Fprintf(os.Stderr, "WARNING: no hint sink reachable (boost requests will be dropped)\n")
	} else if _, isMock := sink.(*powerhal.MockSink); isMock {
		fmt.Fprintf(os.Stderr, "WARNING: power HAL not found, using mock sink (hints are not applied)\n")
	}

	// Boost scheduler
	d.Scheduler = boost.New(
		boost.Config{Debug: cfg.Logging.Debug},
		table,
		provider,
		boost.SystemClock(),
		db,
	)

	// Game package registry (persisted)
	d.Games = gamelist.New(db)

	// Health checker
	grace := time.Duration(cfg.Hints.StuckGraceMs) * time.Millisecond
	d.Health = health.NewChecker(db, d.Scheduler, grace)

	// API server
	srv := api.NewServer(d.Scheduler, table, d.Games, db, d.Health)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}
	d.Server = srv

	return d, nil
}

// acquireSink walks the configured sink chain. Returns nil when nothing is
// reachable; the scheduler treats that as a silent drop.
func (d *Daemon) acquireSink() domain.HintSink {
	if dir := d.Config.Hints.SysfsDir; dir != "" {
		if sink, err := powerhal.NewSysfsSink(dir); err == nil {
			return sink
		}
	}
	if d.remote != nil && d.remote.Available() {
		return d.remote
	}
	if d.mock != nil {
		return d.mock
	}
	return nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	// Health checker (always runs)
	go d.Health.Run(ctx)

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("boostd (%s) serving on http://%s\n", d.NodeID, addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
