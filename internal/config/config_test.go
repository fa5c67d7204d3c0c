package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdsite/internal/siteerr"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvSourceDir, EnvAssetsDir, EnvOutDir, EnvRootTitle} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "mdsite.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "mdsite.yaml")
	require.NoError(t, os.WriteFile(path, []byte("out_dir: site\nroot_title: Docs\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "site", cfg.OutDir)
	require.Equal(t, "Docs", cfg.RootTitle)
	require.Equal(t, DefaultSourceDir, cfg.SourceDir)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "mdsite.yaml")
	require.NoError(t, os.WriteFile(path, []byte("out_dir: site\n"), 0o644))
	t.Setenv(EnvOutDir, "dist")
	t.Setenv(EnvRootTitle, "Handbook")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "dist", cfg.OutDir)
	require.Equal(t, "Handbook", cfg.RootTitle)
}

func TestLoad_MalformedFile_Fails(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "mdsite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n\t- not yaml"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	require.True(t, siteerr.IsKind(err, siteerr.KindConfig))
}

func TestValidate_OutputAliasingRejected(t *testing.T) {
	cfg := Default()
	cfg.OutDir = cfg.SourceDir
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.OutDir = cfg.AssetsDir
	require.Error(t, cfg.Validate())
}

func TestValidate_EmptyFieldsRejected(t *testing.T) {
	for _, mutate := range []func(*Config){
		func(c *Config) { c.SourceDir = "" },
		func(c *Config) { c.OutDir = "" },
		func(c *Config) { c.RootTitle = "" },
	} {
		cfg := Default()
		mutate(&cfg)
		require.Error(t, cfg.Validate())
	}
}
