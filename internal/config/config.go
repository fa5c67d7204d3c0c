// Package config resolves the build configuration from defaults, an
// optional YAML file, environment variables and (in the CLI) flags, in that
// order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/mdsite/internal/siteerr"
)

// Defaults match the conventional layout: markdown articles in ./articles,
// static assets in ./public, generated site in ./build.
const (
	DefaultSourceDir = "articles"
	DefaultAssetsDir = "public"
	DefaultOutDir    = "build"
	DefaultRootTitle = "root"
)

// Environment variable names.
const (
	EnvSourceDir = "SOURCE_DIR"
	EnvAssetsDir = "ASSETS_DIR"
	EnvOutDir    = "OUT_DIR"
	EnvRootTitle = "ROOT_TITLE"
)

// Config holds everything a build needs.
type Config struct {
	SourceDir string `yaml:"source_dir"`
	AssetsDir string `yaml:"assets_dir"`
	OutDir    string `yaml:"out_dir"`
	RootTitle string `yaml:"root_title"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		SourceDir: DefaultSourceDir,
		AssetsDir: DefaultAssetsDir,
		OutDir:    DefaultOutDir,
		RootTitle: DefaultRootTitle,
	}
}

// Load resolves the configuration. path names an optional mdsite.yaml; a
// missing file is not an error so a bare checkout builds with defaults.
// .env/.env.local are loaded first without overriding the process
// environment. Callers validate after applying their own overrides.
func Load(path string) (Config, error) {
	loadEnvFiles()

	cfg := Default()
	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

// loadEnvFiles loads .env then .env.local. Existing process environment
// variables are not overwritten; absent files are ignored.
func loadEnvFiles() {
	for _, name := range []string{".env", ".env.local"} {
		if err := godotenv.Load(name); err == nil {
			fmt.Fprintf(os.Stderr, "Loaded environment variables from %s\n", name)
		}
	}
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return siteerr.Wrap(err, siteerr.KindConfig, path, "unable to read configuration file")
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return siteerr.Wrap(err, siteerr.KindConfig, path, "unable to parse configuration file")
	}

	overlay(&c.SourceDir, file.SourceDir)
	overlay(&c.AssetsDir, file.AssetsDir)
	overlay(&c.OutDir, file.OutDir)
	overlay(&c.RootTitle, file.RootTitle)
	return nil
}

func (c *Config) applyEnv() {
	overlay(&c.SourceDir, os.Getenv(EnvSourceDir))
	overlay(&c.AssetsDir, os.Getenv(EnvAssetsDir))
	overlay(&c.OutDir, os.Getenv(EnvOutDir))
	overlay(&c.RootTitle, os.Getenv(EnvRootTitle))
}

func overlay(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// Validate rejects configurations the build cannot run with. The output
// directory is removed wholesale at the start of each run, so it must never
// alias the source or assets tree.
func (c Config) Validate() error {
	if c.SourceDir == "" {
		return siteerr.Config("source directory must not be empty")
	}
	if c.OutDir == "" {
		return siteerr.Config("output directory must not be empty")
	}
	if c.RootTitle == "" {
		return siteerr.Config("root title must not be empty")
	}
	if c.OutDir == c.SourceDir {
		return siteerr.Config("output directory must not equal the source directory")
	}
	if c.AssetsDir != "" && c.OutDir == c.AssetsDir {
		return siteerr.Config("output directory must not equal the assets directory")
	}
	return nil
}
