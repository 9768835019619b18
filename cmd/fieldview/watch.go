package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/soilution/fieldview/internal/logging"
	"github.com/soilution/fieldview/internal/responsive/compensation"
	"github.com/soilution/fieldview/internal/responsive/engine"
	"github.com/soilution/fieldview/internal/responsive/signal"
	"github.com/soilution/fieldview/internal/tui/dashboard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow terminal resizes and print every region write",
	Long: `Runs the viewport engine headless. Each terminal resize is debounced,
classified and compensated; every property write the applicator makes is
printed as "region.property = value". Reverts to the baseline print as an
empty value.

Stop with Ctrl+C.`,
	RunE: runWatch,
}

// printSurface is a region store where every region is present. Writes are
// echoed to out.
type printSurface struct {
	mu    sync.Mutex
	out   io.Writer
	store *dashboard.RegionStore
}

func newPrintSurface(out io.Writer) *printSurface {
	return &printSurface{out: out, store: dashboard.NewRegionStore()}
}

func (p *printSurface) HasRegion(string) bool { return true }

func (p *printSurface) SetRegionProperty(region, property, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.store.SetRegionProperty(region, property, value); err != nil {
		return err
	}
	_, err := fmt.Fprintf(p.out, "%s.%s = %s\n", region, property, value)
	return err
}

func (p *printSurface) RegionProperty(region, property string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.store.RegionProperty(region, property)
}

// buildWatch wires a controller that prints its writes and announces each
// tier change on out.
func buildWatch(env signal.Environment, cat compensation.Catalog, out io.Writer) *engine.Controller {
	surface := newPrintSurface(out)
	return engine.New(signal.NewReader(env), surface, cat, engine.Options{
		Debounce: cfg.Debounce,
		OnTransition: func(from, to engine.State) {
			surface.mu.Lock()
			defer surface.mu.Unlock()
			fmt.Fprintf(out, "# %s -> %s (%dpx)\n", from.Profile, to.Profile, to.Signal.WidthPx)
		},
		Logger: logger.Named(logging.Engine),
	})
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}
	env := signal.NewTerminalEnvironment(cfg.CellWidthPx, cfg.UserAgent)
	ctrl := buildWatch(env, cat, cmd.OutOrStdout())

	resizes := make(chan struct{}, 1)
	stop := notifyResize(resizes, env.ViewportWidth)
	defer stop()

	var catalogs <-chan compensation.Catalog
	if cfg.WatchCatalog && cfg.CatalogPath != "" {
		w, err := engine.WatchCatalog(cfg.CatalogPath, logger.Named(logging.Watcher))
		if err != nil {
			return fmt.Errorf("watch catalog: %w", err)
		}
		defer w.Close()
		catalogs = w.Catalogs()
	}

	logger.Info("watching viewport",
		zap.Int("width_px", env.ViewportWidth()),
		zap.Duration("debounce", cfg.Debounce))

	err = ctrl.Serve(cmd.Context(), resizes, catalogs)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
