package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/soilution/fieldview/internal/logging"
	"github.com/soilution/fieldview/internal/responsive/compensation"
	"github.com/soilution/fieldview/internal/responsive/engine"
	"github.com/soilution/fieldview/internal/tui/dashboard"
	"github.com/soilution/fieldview/internal/tui/theme"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runDashboard launches the Bubble Tea dashboard.
func runDashboard(cmd *cobra.Command, _ []string) error {
	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}

	var catalogs <-chan compensation.Catalog
	if cfg.WatchCatalog {
		w, err := engine.WatchCatalog(cfg.CatalogPath, logger.Named(logging.Watcher))
		if err != nil {
			return fmt.Errorf("watch catalog: %w", err)
		}
		defer w.Close()
		catalogs = w.Catalogs()
	}

	model := dashboard.New(dashboard.Options{
		Config:   cfg,
		Catalog:  cat,
		Catalogs: catalogs,
		Theme:    theme.Current(cfg.Theme),
		Logger:   logger,
	})

	logger.Info("starting dashboard",
		zap.String("catalog", cfg.CatalogPath),
		zap.Int("cell_width_px", cfg.CellWidthPx),
		zap.Duration("debounce", cfg.Debounce))

	p := tea.NewProgram(model,
		tea.WithContext(cmd.Context()),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	if m, ok := final.(dashboard.Model); ok {
		st := m.Controller().Current()
		logger.Info("dashboard closed",
			zap.Stringer("profile", st.Profile),
			zap.Int("transitions", st.Transitions),
			zap.Int("failures", st.Failures))
	}
	return nil
}
