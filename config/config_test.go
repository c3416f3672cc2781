package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dexpack/interdex/capacity"
)

func TestParseFullDocument(t *testing.T) {
	doc := `
coldstart_classes:
  - com/app/Main
  - com/app/Splash
emit_canaries: true
static_prune_classes: true
normal_primary_dex: false
legacy_linear_alloc: true
`
	cfg, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, []string{"com/app/Main", "com/app/Splash"}, cfg.ColdStartClasses())
	require.True(t, cfg.EmitCanaries)
	require.True(t, cfg.StaticPrune)
	require.False(t, cfg.NormalPrimaryDex)
	require.Equal(t, capacity.Legacy, cfg.Profile())
}

func TestParseDefaultsToModernProfile(t *testing.T) {
	cfg, err := Parse(strings.NewReader(`emit_canaries: false`))
	require.NoError(t, err)
	require.Equal(t, capacity.Modern, cfg.Profile())
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
}
