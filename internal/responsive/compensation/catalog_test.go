package compensation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/soilution/fieldview/internal/tui/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultCatalogOnlyCompensatesVeryNarrow(t *testing.T) {
	cat := DefaultCatalog()
	for _, tier := range layout.Tiers {
		set := cat.For(Profile{Tier: tier})
		if tier == layout.VeryNarrow {
			assert.NotEmpty(t, set)
			continue
		}
		assert.Empty(t, set, "tier %s", tier)
	}
	assert.Contains(t, cat.For(veryNarrow), Override{RegionSidebar, "width", "7"})
}

func TestSetNormalize(t *testing.T) {
	s := Set{
		{"a", "width", "1"},
		{"b", "width", "2"},
		{"a", "width", "3"},
	}
	assert.Equal(t, Set{{"a", "width", "3"}, {"b", "width", "2"}}, s.Normalize())
	assert.Nil(t, Set(nil).Normalize())
}

func TestCatalogRegions(t *testing.T) {
	assert.Equal(t, []string{"buttons", "chart", "sidebar", "stats-card"}, testCatalog().Regions())
}

func TestParseCatalog(t *testing.T) {
	data := []byte(`
tiers:
  very-narrow:
    - {region: sidebar, property: width, value: "7"}
    - {region: sidebar, property: width, value: "6"}
  tablet:
    - {region: chart, property: height, value: "12"}
touch:
  - {region: buttons, property: padding, value: "0 2"}
`)
	cat, err := ParseCatalog(data)
	require.NoError(t, err)

	assert.Equal(t, Set{{"sidebar", "width", "6"}}, cat.Tiers[layout.VeryNarrow])
	assert.Equal(t, Set{{"chart", "height", "12"}}, cat.Tiers[layout.Tablet])
	assert.Equal(t, Set{{"buttons", "padding", "0 2"}}, cat.Touch)
}

func TestParseCatalogErrors(t *testing.T) {
	tests := map[string]string{
		"unknown tier":    "tiers:\n  huge:\n    - {region: a, property: b, value: c}\n",
		"missing region":  "tiers:\n  narrow:\n    - {property: b, value: c}\n",
		"unknown field":   "tiers: {}\nextra: 1\n",
		"touch no region": "touch:\n  - {property: b, value: c}\n",
		"not yaml":        "tiers: [",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestCatalogYAMLRoundTrip(t *testing.T) {
	out, err := yaml.Marshal(DefaultCatalog())
	require.NoError(t, err)
	assert.Contains(t, string(out), "very-narrow:")

	back, err := ParseCatalog(out)
	require.NoError(t, err)
	assert.Equal(t, DefaultCatalog(), back)
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tiers:\n  narrow:\n    - {region: a, property: b, value: c}\n"), 0o644))

	cat, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, Set{{"a", "b", "c"}}, cat.Tiers[layout.Narrow])

	_, err = LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseEmptyCatalog(t *testing.T) {
	cat, err := ParseCatalog(nil)
	require.NoError(t, err)
	assert.Empty(t, cat.For(veryNarrow))
}
