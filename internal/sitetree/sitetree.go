// Package sitetree defines the intermediate and rendered forms of the site
// tree plus the pure path and breadcrumb functions shared by the pipeline.
//
// Both node families are closed variant sets: a node is either a file or a
// directory, nothing else. The marker methods keep the sets sealed to this
// package's two implementations.
package sitetree

// Ancestor is one step in a node's lineage. Name is the human-readable
// directory title used in breadcrumbs; Segment is the URL segment the
// directory contributes to output paths. The root directory's Segment is
// always empty, so it never contributes to a path.
type Ancestor struct {
	Name    string
	Segment string
}

// NodeInfo carries the identity every source node has: its own segment name
// and its lineage from the root down to (excluding) itself.
type NodeInfo struct {
	FileName  string
	Ancestors []Ancestor
}

// Name returns the node's own segment name.
func (n NodeInfo) Name() string { return n.FileName }

// Lineage returns the node's ancestor chain, root-to-parent.
func (n NodeInfo) Lineage() []Ancestor { return n.Ancestors }

// SourceNode is the pre-conversion form of one tree node.
type SourceNode interface {
	Name() string
	Lineage() []Ancestor
	sourceNode()
}

// SourceFile is a leaf holding raw file bytes. Markdown is true when the
// file name carries a .md extension; anything else passes through the
// pipeline untouched.
type SourceFile struct {
	NodeInfo
	Content  []byte
	Markdown bool
}

// SourceDir holds an optional README.md body plus child nodes. Readme is nil
// when the directory has no README.md; README.md never appears among the
// children.
type SourceDir struct {
	NodeInfo
	Readme   []byte
	Children []SourceNode
}

func (*SourceFile) sourceNode() {}
func (*SourceDir) sourceNode()  {}

// RenderedNode is the post-conversion form of one tree node. Path is the
// node's output location relative to the output root ("" for the root
// directory itself).
type RenderedNode interface {
	OutPath() string
	renderedNode()
}

// RenderedFile holds the final bytes for one output file: wrapped HTML for
// markdown sources, the original bytes for pass-through files.
type RenderedFile struct {
	Path    string
	Content []byte
}

// RenderedDir holds a directory's index page plus its rendered children.
type RenderedDir struct {
	Path     string
	Index    []byte
	Children []RenderedNode
}

func (f *RenderedFile) OutPath() string { return f.Path }
func (d *RenderedDir) OutPath() string  { return d.Path }

func (*RenderedFile) renderedNode() {}
func (*RenderedDir) renderedNode()  {}

// Count returns the number of nodes in the subtree rooted at node,
// including node itself.
func Count(node SourceNode) int {
	dir, ok := node.(*SourceDir)
	if !ok {
		return 1
	}
	n := 1
	for _, child := range dir.Children {
		n += Count(child)
	}
	return n
}
