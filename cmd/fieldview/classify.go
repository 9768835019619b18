package main

import (
	"errors"
	"time"

	"github.com/soilution/fieldview/internal/cli"
	"github.com/soilution/fieldview/internal/responsive/compensation"
	"github.com/soilution/fieldview/internal/responsive/signal"
	"github.com/soilution/fieldview/internal/tui/layout"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	classifyWidthPx   int
	classifyCols      int
	classifyUserAgent string
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a viewport and list the overrides that apply",
	Long: `Classifies a viewport width into a tier and prints the profile and
the compensation overrides the catalog applies for it.

Without --width-px or --cols the current terminal is measured.

Example:
  fieldview classify --width-px 320
  fieldview classify --cols 96 --user-agent "Mozilla/5.0 (iPad)"`,
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().IntVar(&classifyWidthPx, "width-px", 0, "viewport width in pixels")
	classifyCmd.Flags().IntVar(&classifyCols, "cols", 0, "viewport width in terminal columns")
	classifyCmd.Flags().StringVar(&classifyUserAgent, "user-agent", "", "client user agent (default from config)")
	classifyCmd.MarkFlagsMutuallyExclusive("width-px", "cols")
}

type classification struct {
	WidthPx   int              `yaml:"width_px" json:"width_px"`
	Tier      string           `yaml:"tier" json:"tier"`
	Classes   []string         `yaml:"classes" json:"classes"`
	Touch     bool             `yaml:"touch" json:"touch"`
	Overrides compensation.Set `yaml:"overrides" json:"overrides"`
}

func runClassify(cmd *cobra.Command, _ []string) error {
	if classifyWidthPx < 0 || classifyCols < 0 {
		return cli.WithCode(cli.CodeUsage, "", errors.New("width must not be negative"))
	}
	agent := cfg.UserAgent
	if classifyUserAgent != "" {
		agent = classifyUserAgent
	}

	var env signal.Environment
	switch {
	case classifyWidthPx > 0:
		env = signal.StaticEnvironment{WidthPx: classifyWidthPx, Agent: agent}
	case classifyCols > 0:
		env = signal.StaticEnvironment{WidthPx: signal.ColumnsToPx(classifyCols, cfg.CellWidthPx), Agent: agent}
	default:
		env = signal.NewTerminalEnvironment(cfg.CellWidthPx, agent)
	}

	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}

	sig := signal.NewReader(env).Read()
	profile := compensation.Profile{Tier: layout.Classify(sig), Touch: sig.IsTouchDevice}
	out := classification{
		WidthPx:   sig.WidthPx,
		Tier:      profile.Tier.String(),
		Classes:   profile.Tier.Classes(),
		Touch:     profile.Touch,
		Overrides: cat.For(profile),
	}

	if jsonOutput {
		return cli.PrintJSON(cmd.OutOrStdout(), cli.NewResponseOK(cmd.Name(), out, time.Now()))
	}
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(out)
}
