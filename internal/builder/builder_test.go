package builder

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdsite/internal/config"
	"git.home.luguber.info/inful/mdsite/internal/siteerr"
)

func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for path, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(path))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o750))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

func fixtureConfig(t *testing.T) config.Config {
	t.Helper()
	base := t.TempDir()
	cfg := config.Config{
		SourceDir: filepath.Join(base, "articles"),
		AssetsDir: filepath.Join(base, "public"),
		OutDir:    filepath.Join(base, "build"),
		RootTitle: "root",
	}
	require.NoError(t, os.MkdirAll(cfg.SourceDir, 0o750))
	return cfg
}

// snapshot maps every file below root to its content.
func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	got := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		got[filepath.ToSlash(rel)] = string(content)
		return nil
	})
	require.NoError(t, err)
	return got
}

func TestRun_FullBuild(t *testing.T) {
	cfg := fixtureConfig(t)
	writeTree(t, cfg.SourceDir, map[string]string{
		"README.md":       "# Welcome",
		"intro.md":        "# Intro",
		"guides/setup.md": "# Setup",
	})
	writeTree(t, cfg.AssetsDir, map[string]string{"style.css": "body{}"})

	require.NoError(t, New(cfg).Run(context.Background()))

	got := snapshot(t, cfg.OutDir)
	require.Contains(t, got, "index.html")
	require.Contains(t, got, "intro.html")
	require.Contains(t, got, "guides/index.html")
	require.Contains(t, got, "guides/setup.html")
	require.Contains(t, got, "style.css")
	require.Contains(t, got["index.html"], "Welcome")
	// guides has no README, so its index is the generated listing.
	require.Contains(t, got["guides/index.html"], `<li class="file-listing"><a href="/guides/setup.html">setup.md</a></li>`)
}

func TestRun_TwiceIsByteIdentical(t *testing.T) {
	cfg := fixtureConfig(t)
	writeTree(t, cfg.SourceDir, map[string]string{
		"README.md":     "# Home",
		"a/b/deep.md":   "content",
		"a/page.md":     "page",
		"a/b/README.md": "# B",
	})
	writeTree(t, cfg.AssetsDir, map[string]string{"app.js": "1;"})

	require.NoError(t, New(cfg).Run(context.Background()))
	first := snapshot(t, cfg.OutDir)

	require.NoError(t, New(cfg).Run(context.Background()))
	second := snapshot(t, cfg.OutDir)

	require.Equal(t, first, second)
}

func TestRun_RootWithoutMarkdown_GetsListingIndex(t *testing.T) {
	cfg := fixtureConfig(t)
	writeTree(t, cfg.AssetsDir, map[string]string{"style.css": "body{}"})

	require.NoError(t, New(cfg).Run(context.Background()))

	index, err := os.ReadFile(filepath.Join(cfg.OutDir, "index.html"))
	require.NoError(t, err)
	require.Contains(t, string(index), "<ul></ul>")
}

func TestRun_MissingAssetsDir_Skipped(t *testing.T) {
	cfg := fixtureConfig(t)
	writeTree(t, cfg.SourceDir, map[string]string{"a.md": "x"})
	// AssetsDir never created.

	require.NoError(t, New(cfg).Run(context.Background()))
}

func TestRun_UnreadableFile_AbortsWithPath(t *testing.T) {
	cfg := fixtureConfig(t)
	writeTree(t, cfg.SourceDir, map[string]string{"ok.md": "fine"})
	broken := filepath.Join(cfg.SourceDir, "broken.md")
	require.NoError(t, os.Symlink(filepath.Join(cfg.SourceDir, "gone"), broken))

	err := New(cfg).Run(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), broken)
	require.Equal(t, broken, siteerr.PathOf(err))
}

func TestRun_SiblingCollision_Aborts(t *testing.T) {
	cfg := fixtureConfig(t)
	writeTree(t, cfg.SourceDir, map[string]string{
		"c/x.md":   "a",
		"c/x.html": "b",
	})

	err := New(cfg).Run(context.Background())
	require.Error(t, err)
	require.True(t, siteerr.IsKind(err, siteerr.KindCollision))
}

func TestRun_CancelledContext(t *testing.T) {
	cfg := fixtureConfig(t)
	writeTree(t, cfg.SourceDir, map[string]string{"a.md": "x"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(cfg).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRun_NonMarkdownPassThrough(t *testing.T) {
	cfg := fixtureConfig(t)
	writeTree(t, cfg.SourceDir, map[string]string{
		"logo.svg": "<svg>raw</svg>",
	})

	require.NoError(t, New(cfg).Run(context.Background()))

	got, err := os.ReadFile(filepath.Join(cfg.OutDir, "logo.svg"))
	require.NoError(t, err)
	require.Equal(t, "<svg>raw</svg>", string(got))
}
