package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/soilution/fieldview/internal/cli"
	"github.com/soilution/fieldview/internal/config"
	"github.com/soilution/fieldview/internal/responsive/compensation"
	"github.com/soilution/fieldview/internal/responsive/signal"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func setupTest(t *testing.T) *bytes.Buffer {
	t.Helper()
	cfg = config.Default()
	logger = zap.NewNop()
	reset := func() {
		classifyWidthPx, classifyCols, classifyUserAgent, catalogFile = 0, 0, "", ""
		jsonOutput = false
	}
	reset()
	t.Cleanup(reset)
	return &bytes.Buffer{}
}

func command(out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetOut(out)
	cmd.SetContext(context.Background())
	return cmd
}

func TestClassifyVeryNarrow(t *testing.T) {
	out := setupTest(t)
	classifyWidthPx = 320

	require.NoError(t, runClassify(command(out), nil))

	var got classification
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 320, got.WidthPx)
	assert.Equal(t, "very-narrow", got.Tier)
	assert.False(t, got.Touch)
	assert.Contains(t, got.Overrides, compensation.Override{
		Region: compensation.RegionSidebar, Property: "width", Value: "7",
	})
}

func TestClassifyColumnsAndTouch(t *testing.T) {
	out := setupTest(t)
	classifyCols = 120
	classifyUserAgent = "Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X)"

	require.NoError(t, runClassify(command(out), nil))

	var got classification
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 960, got.WidthPx)
	assert.Equal(t, "tablet", got.Tier)
	assert.True(t, got.Touch)
	assert.Equal(t, compensation.DefaultCatalog().Touch.Normalize(), got.Overrides)
}

func TestClassifyJSON(t *testing.T) {
	out := setupTest(t)
	classifyWidthPx = 800
	jsonOutput = true

	require.NoError(t, runClassify(command(out), nil))

	var resp struct {
		Status string         `json:"status"`
		Data   classification `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "tablet", resp.Data.Tier)
	assert.Equal(t, []string{"tablet"}, resp.Data.Classes)
	assert.Empty(t, resp.Data.Overrides)
}

func TestVersionCommand(t *testing.T) {
	out := setupTest(t)
	cmd := command(out)
	require.NoError(t, versionCmd.RunE(cmd, nil))
	assert.True(t, strings.HasPrefix(out.String(), "fieldview "))
}

func TestCatalogErrorsAreCoded(t *testing.T) {
	_, err := loadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	resp := cli.NewResponseError("catalog", err, time.Now())
	assert.Equal(t, cli.CodeCatalog, resp.Error.Code)
}

func TestClassifyRejectsNegativeWidth(t *testing.T) {
	out := setupTest(t)
	classifyWidthPx = -1
	assert.Error(t, runClassify(command(out), nil))
}

func TestCatalogRoundTrip(t *testing.T) {
	out := setupTest(t)

	require.NoError(t, runCatalog(command(out), nil))
	parsed, err := compensation.ParseCatalog(out.Bytes())
	require.NoError(t, err)
	assert.Equal(t, compensation.DefaultCatalog(), parsed)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, out.Bytes(), 0o644))
	catalogFile = path
	again := &bytes.Buffer{}
	require.NoError(t, runCatalog(command(again), nil))
	assert.Equal(t, out.String(), again.String())
}

func TestCatalogBadFile(t *testing.T) {
	out := setupTest(t)
	catalogFile = filepath.Join(t.TempDir(), "missing.yaml")
	assert.Error(t, runCatalog(command(out), nil))
}

func TestWatchPrintsWrites(t *testing.T) {
	out := setupTest(t)
	env := &signal.StaticEnvironment{WidthPx: 320}

	ctrl := buildWatch(env, compensation.DefaultCatalog(), out)
	defer ctrl.Close()
	_, err := ctrl.Start(context.Background())
	require.NoError(t, err)

	assert.Contains(t, out.String(), "sidebar.width = 7\n")
	assert.Contains(t, out.String(), "-> very-narrow (320px)\n")

	out.Reset()
	env.WidthPx = 1280
	_, err = ctrl.Evaluate(context.Background())
	require.NoError(t, err)

	assert.Contains(t, out.String(), "sidebar.width = \n")
	assert.Contains(t, out.String(), "very-narrow -> desktop (1280px)\n")
}
