// Package materialize writes the rendered site tree to the output directory.
package materialize

import (
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/mdsite/internal/logfields"
	"git.home.luguber.info/inful/mdsite/internal/siteerr"
	"git.home.luguber.info/inful/mdsite/internal/sitetree"
)

// Write materializes node under outputRoot: one directory per directory
// node (holding its index.html), one file per file node. The output root is
// expected to have been cleared beforehand; an already-existing directory is
// a build failure, not a condition to merge into. The first write failure
// aborts, since partial output cannot be told apart from success.
func Write(node sitetree.RenderedNode, outputRoot string) error {
	switch n := node.(type) {
	case *sitetree.RenderedFile:
		path := filepath.Join(outputRoot, filepath.FromSlash(n.Path))
		slog.Debug("writing page", logfields.Path(path))
		if err := os.WriteFile(path, n.Content, 0o644); err != nil {
			return siteerr.Write(path, err)
		}
		return nil

	case *sitetree.RenderedDir:
		path := filepath.Join(outputRoot, filepath.FromSlash(n.Path))
		slog.Debug("writing directory", logfields.Path(path))
		if err := os.Mkdir(path, 0o750); err != nil {
			return siteerr.DirectoryCreate(path, err)
		}
		indexPath := filepath.Join(path, "index.html")
		if err := os.WriteFile(indexPath, n.Index, 0o644); err != nil {
			return siteerr.Write(indexPath, err)
		}
		for _, child := range n.Children {
			if err := Write(child, outputRoot); err != nil {
				return err
			}
		}
		return nil
	}
	return nil
}
