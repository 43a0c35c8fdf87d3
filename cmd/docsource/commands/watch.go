package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docsource/internal/config"
	"git.home.luguber.info/inful/docsource/internal/logfields"
	"git.home.luguber.info/inful/docsource/internal/manifest"
	"git.home.luguber.info/inful/docsource/internal/metrics"
	"git.home.luguber.info/inful/docsource/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	LoadFlags `embed:""`

	Metrics  bool          `help:"Serve Prometheus metrics on metrics.listen"`
	Debounce time.Duration `help:"Quiet period before reloading after a change" default:"500ms"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return w.run(ctx, g, root.Config)
}

// watchSession holds the state that survives between reloads.
type watchSession struct {
	cmd        *WatchCmd
	g          *Global
	configPath string
	cfg        *config.Config
	recorder   metrics.Recorder
	lastHash   string
}

func (w *WatchCmd) run(ctx context.Context, g *Global, configPath string) error {
	cfg, err := loadConfig(g, configPath)
	if err != nil {
		return err
	}
	if err := w.apply(cfg); err != nil {
		return err
	}

	s := &watchSession{cmd: w, g: g, configPath: configPath, cfg: cfg, recorder: metrics.NoopRecorder{}}

	if w.Metrics || cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		s.recorder = metrics.NewPrometheusRecorder(reg)
		stop := serveMetrics(g, cfg.Metrics.Listen, reg)
		defer stop()
	}

	paths := []string{w.manifestPath(cfg)}
	if _, statErr := os.Stat(configPath); statErr == nil {
		paths = append(paths, configPath)
	}

	watcher, err := watch.New(paths, s.onChange, watch.WithDebounce(w.Debounce), watch.WithLogger(g.Logger))
	if err != nil {
		return err
	}

	s.render(ctx, true)
	g.Logger.Info("Watching for changes", logfields.File(paths[0]))
	return watcher.Run(ctx)
}

func (s *watchSession) onChange(ctx context.Context, changed []string) {
	configAbs, _ := filepath.Abs(s.configPath)
	configChanged := false
	for _, p := range changed {
		if p == configAbs {
			configChanged = true
		}
	}

	if configChanged {
		cfg, err := config.Load(s.configPath)
		if err == nil {
			err = s.cmd.apply(cfg)
		}
		if err != nil {
			s.g.Logger.Error("Configuration reload failed, keeping previous configuration", logfields.Error(err))
		} else {
			s.cfg = cfg
			s.g.Logger.Info("Configuration reloaded", logfields.File(s.configPath))
		}
	}

	s.render(ctx, configChanged)
}

// render loads and writes once. Unchanged manifests are skipped unless forced.
func (s *watchSession) render(ctx context.Context, force bool) {
	m, err := manifest.Read(s.cmd.manifestPath(s.cfg))
	if err != nil {
		s.g.Logger.Error("Manifest read failed", logfields.Error(err))
		return
	}

	hash, err := m.Hash()
	if err == nil && hash == s.lastHash && !force {
		s.g.Logger.Debug("Manifest unchanged, skipping reload")
		return
	}

	r := runner{cfg: s.cfg, recorder: s.recorder, logger: s.g.Logger, outputFile: s.cmd.outputPath(s.cfg)}
	res, err := r.load(ctx, m)
	if err != nil {
		s.g.Logger.Error("Load failed", logfields.Error(err))
		return
	}
	if err := r.write(s.g.Stdout, res); err != nil {
		s.g.Logger.Error("Writing output failed", logfields.Error(err))
		return
	}
	s.lastHash = hash
}

// serveMetrics exposes reg on addr until the returned stop function is called.
func serveMetrics(g *Global, addr string, reg *prometheus.Registry) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		g.Logger.Info("Serving metrics", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			g.Logger.Error("Metrics server failed", logfields.Error(err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
