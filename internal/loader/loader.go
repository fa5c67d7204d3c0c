// Package loader walks a source directory tree and produces the intermediate
// site tree consumed by the renderer.
package loader

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"git.home.luguber.info/inful/mdsite/internal/logfields"
	"git.home.luguber.info/inful/mdsite/internal/siteerr"
	"git.home.luguber.info/inful/mdsite/internal/sitetree"
)

const readmeName = "README.md"

// Load builds the intermediate tree for the directory at sourceDir. The root
// node carries rootTitle as its display name and contributes no URL segment.
//
// Traversal is strictly sequential and fails on the first metadata, read or
// enumeration error, surfacing the offending path. The one local-recovery
// case is an entry whose name is not valid UTF-8: it degrades to a
// placeholder file node describing the problem and its siblings still load.
func Load(sourceDir, rootTitle string) (*sitetree.SourceDir, error) {
	return loadDir(sourceDir, rootTitle, nil, true)
}

func loadDir(dir, title string, ancestors []sitetree.Ancestor, isRoot bool) (*sitetree.SourceDir, error) {
	slog.Debug("loading directory", logfields.Path(dir))

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, siteerr.DirectoryRead(dir, err)
	}

	readme, err := readOptionalReadme(dir)
	if err != nil {
		return nil, err
	}

	segment := title
	if isRoot {
		segment = ""
	}
	childChain := append(slices.Clone(ancestors), sitetree.Ancestor{Name: title, Segment: segment})

	children := make([]sitetree.SourceNode, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if name == readmeName {
			continue
		}

		if !utf8.ValidString(name) {
			// Best-effort: record the entry as a file whose content is the
			// error description and keep loading its siblings.
			placeholder := siteerr.InvalidFileName(dir, strings.ToValidUTF8(name, "�"))
			slog.Warn("skipping entry with invalid name", logfields.Dir(dir), logfields.Error(placeholder))
			children = append(children, &sitetree.SourceFile{
				NodeInfo: sitetree.NodeInfo{FileName: placeholder.Msg, Ancestors: childChain},
				Content:  []byte(placeholder.Error()),
			})
			continue
		}

		entryPath := filepath.Join(dir, name)
		info, err := entry.Info()
		if err != nil {
			return nil, siteerr.MetadataRead(entryPath, err)
		}

		if info.IsDir() {
			child, err := loadDir(entryPath, name, childChain, false)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
			continue
		}

		child, err := loadFile(entryPath, name, childChain)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	return &sitetree.SourceDir{
		NodeInfo: sitetree.NodeInfo{FileName: title, Ancestors: ancestors},
		Readme:   readme,
		Children: children,
	}, nil
}

func loadFile(path, name string, ancestors []sitetree.Ancestor) (*sitetree.SourceFile, error) {
	slog.Debug("loading file", logfields.Path(path))

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, siteerr.FileRead(path, err)
	}

	markdown := strings.HasSuffix(name, ".md")
	if markdown && !utf8.Valid(content) {
		return nil, siteerr.FileRead(path, errors.New("content is not valid UTF-8 text"))
	}

	return &sitetree.SourceFile{
		NodeInfo: sitetree.NodeInfo{FileName: name, Ancestors: ancestors},
		Content:  content,
		Markdown: markdown,
	}, nil
}

// readOptionalReadme reads dir/README.md. Absence is not an error and yields
// nil; any other failure is fatal.
func readOptionalReadme(dir string) ([]byte, error) {
	path := filepath.Join(dir, readmeName)
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, siteerr.FileRead(path, err)
	}
	return content, nil
}
