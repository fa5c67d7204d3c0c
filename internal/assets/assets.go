// Package assets mirrors a static-assets directory verbatim into the output
// directory, sibling to the generated pages.
package assets

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/mdsite/internal/logfields"
	"git.home.luguber.info/inful/mdsite/internal/siteerr"
)

// CopyTree recursively copies every entry of srcDir into dstDir, creating
// directories and byte-copying files. Any single read, copy or metadata
// failure is fatal; there is no partial-success tracking.
func CopyTree(srcDir, dstDir string) error {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return siteerr.AssetCopy(srcDir, err)
	}
	for _, entry := range entries {
		if err := copyEntry(entry, srcDir, dstDir); err != nil {
			return err
		}
	}
	return nil
}

func copyEntry(entry os.DirEntry, srcDir, dstDir string) error {
	src := filepath.Join(srcDir, entry.Name())
	dst := filepath.Join(dstDir, entry.Name())

	info, err := entry.Info()
	if err != nil {
		return siteerr.AssetCopy(src, err)
	}

	if info.IsDir() {
		if err := os.Mkdir(dst, 0o750); err != nil {
			return siteerr.AssetCopy(dst, err)
		}
		return CopyTree(src, dst)
	}

	slog.Debug("copying asset", logfields.Path(src))
	return copyFile(src, dst)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return siteerr.AssetCopy(src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return siteerr.AssetCopy(dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return siteerr.AssetCopy(dst, err)
	}
	if err := out.Close(); err != nil {
		return siteerr.AssetCopy(dst, err)
	}
	return nil
}
