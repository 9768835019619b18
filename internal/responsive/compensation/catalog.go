package compensation

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/soilution/fieldview/internal/tui/layout"
	"gopkg.in/yaml.v3"
)

// Catalog maps tiers to their compensation sets. Touch overrides are
// layered over whatever tier is current when the client is a touch device.
type Catalog struct {
	Tiers map[layout.Tier]Set
	Touch Set
}

// For returns the effective set for a profile. Tier entries win over touch
// entries on the same key.
func (c Catalog) For(p Profile) Set {
	var out Set
	if p.Touch {
		out = append(out, c.Touch...)
	}
	out = append(out, c.Tiers[p.Tier]...)
	return out.Normalize()
}

// Regions returns every region the catalog references, sorted.
func (c Catalog) Regions() []string {
	seen := make(map[string]bool)
	add := func(s Set) {
		for _, o := range s {
			seen[o.Region] = true
		}
	}
	for _, s := range c.Tiers {
		add(s)
	}
	add(c.Touch)

	out := make([]string, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// Region names used by the dashboard.
const (
	RegionSidebar        = "sidebar"
	RegionInbox          = "inbox-sidebar"
	RegionProfileMenu    = "profile-dropdown"
	RegionNotifications  = "notification-dropdown"
	RegionMainContent    = "main-content"
	RegionStatsGrid      = "stats-grid"
	RegionStatsCard      = "stats-card"
	RegionStatsCardTitle = "stats-card-title"
	RegionStatsCardValue = "stats-card-value"
	RegionStatsCardIcon  = "stats-card-icon"
	RegionChartContainer = "chart-container"
	RegionChartTitle     = "chart-title"
	RegionCropChart      = "crop-history-chart"
	RegionActionButtons  = "action-buttons"
	RegionSearchInput    = "search-input"
	RegionReadingsTable  = "readings-table"
)

// DefaultCatalog returns the built-in catalog. Only VeryNarrow compensates.
func DefaultCatalog() Catalog {
	return Catalog{
		Tiers: map[layout.Tier]Set{
			layout.VeryNarrow: {
				{RegionSidebar, "width", "7"},
				{RegionInbox, "width", "100%"},
				{RegionInbox, "align", "right"},
				{RegionProfileMenu, "align", "right"},
				{RegionProfileMenu, "width", "24"},
				{RegionNotifications, "align", "right"},
				{RegionNotifications, "width", "30"},
				{RegionMainContent, "padding", "0"},
				{RegionMainContent, "margin-left", "0"},
				{RegionStatsGrid, "gap", "0"},
				{RegionStatsCard, "padding", "0"},
				{RegionStatsCard, "margin-bottom", "0"},
				{RegionStatsCardTitle, "label-mode", "short"},
				{RegionStatsCardValue, "label-mode", "short"},
				{RegionStatsCardIcon, "display", "none"},
				{RegionChartContainer, "margin-top", "0"},
				{RegionChartContainer, "padding", "0"},
				{RegionChartTitle, "label-mode", "short"},
				{RegionCropChart, "width", "100%"},
				{RegionCropChart, "height", "8"},
				{RegionCropChart, "legend-position", "bottom"},
			},
		},
		Touch: Set{
			{RegionActionButtons, "padding", "0 2"},
			{RegionSearchInput, "padding", "0 1"},
		},
	}
}

type catalogFile struct {
	Tiers map[string]Set `yaml:"tiers"`
	Touch Set            `yaml:"touch,omitempty"`
}

// ParseCatalog decodes a YAML catalog.
func ParseCatalog(data []byte) (Catalog, error) {
	var f catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}

	cat := Catalog{Tiers: make(map[layout.Tier]Set, len(f.Tiers))}
	for name, set := range f.Tiers {
		tier, err := layout.ParseTier(name)
		if err != nil {
			return Catalog{}, fmt.Errorf("catalog: %w", err)
		}
		if err := validateSet(set); err != nil {
			return Catalog{}, fmt.Errorf("catalog tier %s: %w", tier, err)
		}
		cat.Tiers[tier] = set.Normalize()
	}
	if err := validateSet(f.Touch); err != nil {
		return Catalog{}, fmt.Errorf("catalog touch: %w", err)
	}
	cat.Touch = f.Touch.Normalize()
	return cat, nil
}

// LoadCatalog reads and parses a catalog file.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, err
	}
	return ParseCatalog(data)
}

// MarshalYAML renders the catalog in file form with tiers in ascending order.
func (c Catalog) MarshalYAML() (interface{}, error) {
	tiers := &yaml.Node{Kind: yaml.MappingNode}
	for _, t := range layout.Tiers {
		set, ok := c.Tiers[t]
		if !ok {
			continue
		}
		var val yaml.Node
		if err := val.Encode(set); err != nil {
			return nil, err
		}
		tiers.Content = append(tiers.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: t.String()}, &val)
	}

	root := &yaml.Node{Kind: yaml.MappingNode}
	root.Content = append(root.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: "tiers"}, tiers)
	if len(c.Touch) > 0 {
		var touch yaml.Node
		if err := touch.Encode(c.Touch); err != nil {
			return nil, err
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: "touch"}, &touch)
	}
	return root, nil
}

func validateSet(s Set) error {
	for i, o := range s {
		if o.Region == "" || o.Property == "" {
			return fmt.Errorf("entry %d: region and property are required", i)
		}
	}
	return nil
}
