// Package render converts the intermediate site tree into the HTML tree:
// markdown bodies through goldmark, directory indexes from the README or an
// auto-generated listing, everything wrapped in the embedded templates.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"git.home.luguber.info/inful/mdsite/internal/logfields"
	"git.home.luguber.info/inful/mdsite/internal/siteerr"
	"git.home.luguber.info/inful/mdsite/internal/sitetree"
)

//go:embed templates/*.html
var templateFS embed.FS

const readmeName = "README.md"

// Renderer holds the configured markdown engine and the parsed page and
// listing templates. It is stateless across Render calls and safe to reuse.
type Renderer struct {
	md        goldmark.Markdown
	templates *template.Template
}

type pageData struct {
	Breadcrumbs string
	Content     string
}

type listingData struct {
	Name    string
	Listing string
}

// New constructs a Renderer. Raw HTML in articles is passed through
// unescaped; articles are trusted input.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}

// Render converts one source node (and, for directories, its whole subtree)
// into its rendered form. The only failure mode is a sibling output-path
// collision; markdown conversion is total over arbitrary text.
func (r *Renderer) Render(node sitetree.SourceNode) (sitetree.RenderedNode, error) {
	switch n := node.(type) {
	case *sitetree.SourceFile:
		return r.renderFile(n)
	case *sitetree.SourceDir:
		return r.renderDir(n)
	default:
		return nil, fmt.Errorf("unknown source node type %T", node)
	}
}

func (r *Renderer) renderFile(n *sitetree.SourceFile) (*sitetree.RenderedFile, error) {
	path := sitetree.OutputRelPath(n.Ancestors, n.FileName)

	if !n.Markdown {
		// Non-markdown content is passed through byte-identical.
		slog.Debug("passing through file", logfields.File(n.FileName))
		return &sitetree.RenderedFile{Path: path, Content: n.Content}, nil
	}

	slog.Debug("rendering file", logfields.File(n.FileName))
	body, err := r.markdownToHTML(n.Content)
	if err != nil {
		return nil, err
	}
	page, err := r.wrapPage(sitetree.Breadcrumbs(n.Ancestors, n.FileName), body)
	if err != nil {
		return nil, err
	}
	return &sitetree.RenderedFile{Path: path, Content: page}, nil
}

func (r *Renderer) renderDir(n *sitetree.SourceDir) (*sitetree.RenderedDir, error) {
	slog.Debug("rendering directory", logfields.Dir(n.FileName))

	if err := checkCollisions(n); err != nil {
		return nil, err
	}

	segment := n.FileName
	if len(n.Ancestors) == 0 {
		segment = ""
	}
	chain := append(slices.Clone(n.Ancestors), sitetree.Ancestor{Name: n.FileName, Segment: segment})

	var body, crumbs string
	if n.Readme != nil {
		// The index page IS the directory's own README.
		converted, err := r.markdownToHTML(n.Readme)
		if err != nil {
			return nil, err
		}
		body = converted
		crumbs = sitetree.Breadcrumbs(chain, readmeName)
	} else {
		listing, err := r.listingHTML(n)
		if err != nil {
			return nil, err
		}
		body = listing
		crumbs = sitetree.Breadcrumbs(n.Ancestors, n.FileName)
	}

	index, err := r.wrapPage(crumbs, body)
	if err != nil {
		return nil, err
	}

	children := make([]sitetree.RenderedNode, 0, len(n.Children))
	for _, child := range n.Children {
		rendered, err := r.Render(child)
		if err != nil {
			return nil, err
		}
		children = append(children, rendered)
	}

	return &sitetree.RenderedDir{
		Path:     sitetree.DirRelPath(chain),
		Index:    index,
		Children: children,
	}, nil
}

// listingHTML builds the auto-generated index body for a README-less
// directory: its children sorted lexicographically by raw name, each linking
// to its computed path, directories and files tagged apart.
func (r *Renderer) listingHTML(n *sitetree.SourceDir) (string, error) {
	sorted := slices.Clone(n.Children)
	slices.SortFunc(sorted, func(a, b sitetree.SourceNode) int {
		return strings.Compare(a.Name(), b.Name())
	})

	var items strings.Builder
	for _, child := range sorted {
		class := "file-listing"
		if _, ok := child.(*sitetree.SourceDir); ok {
			class = "directory-listing"
		}
		href := "/" + sitetree.OutputRelPath(child.Lineage(), child.Name())
		fmt.Fprintf(&items, `<li class="%s"><a href="%s">%s</a></li>`, class, href, child.Name())
	}

	var buf bytes.Buffer
	data := listingData{Name: n.FileName, Listing: "<ul>" + items.String() + "</ul>"}
	if err := r.templates.ExecuteTemplate(&buf, "listing.html", data); err != nil {
		return "", fmt.Errorf("execute listing template: %w", err)
	}
	return buf.String(), nil
}

func (r *Renderer) wrapPage(breadcrumbs, content string) ([]byte, error) {
	var buf bytes.Buffer
	data := pageData{Breadcrumbs: breadcrumbs, Content: content}
	if err := r.templates.ExecuteTemplate(&buf, "page.html", data); err != nil {
		return nil, fmt.Errorf("execute page template: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) markdownToHTML(source []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(source, &buf); err != nil {
		return "", fmt.Errorf("markdown conversion: %w", err)
	}
	return buf.String(), nil
}

// checkCollisions rejects sibling sets whose names normalize to the same
// output name. The directory's own index.html is reserved, so a child named
// index.md (or a literal index.html) collides as well.
func checkCollisions(n *sitetree.SourceDir) error {
	seen := map[string]string{"index.html": "the directory index"}
	for _, child := range n.Children {
		out := sitetree.RewriteName(child.Name())
		if prev, ok := seen[out]; ok {
			return siteerr.Collision(n.FileName, out, prev, child.Name())
		}
		seen[out] = child.Name()
	}
	return nil
}
