package sitetree

import "strings"

// OutputRelPath maps a node's ancestor chain and its own file name to the
// node's output path relative to the output root. The same string, prefixed
// with "/", is the absolute URL the site uses to link to the node.
//
// Rewrite rules, in order: a README.md suffix becomes index.html; otherwise
// every literal ".md" in the name becomes ".html" (names are expected to
// carry at most one markdown extension). Ancestors with an empty segment,
// i.e. the root, contribute nothing. Total over any non-empty name.
func OutputRelPath(ancestors []Ancestor, fileName string) string {
	segments := nonEmptySegments(ancestors)
	return strings.Join(append(segments, RewriteName(fileName)), "/")
}

// DirRelPath maps a directory's full chain (its ancestors extended with its
// own Ancestor) to the directory's output path. The root directory maps to
// "", the output root itself.
func DirRelPath(chain []Ancestor) string {
	return strings.Join(nonEmptySegments(chain), "/")
}

// RewriteName applies the output naming rule to a single file name.
func RewriteName(name string) string {
	if rest, ok := strings.CutSuffix(name, "README.md"); ok {
		return rest + "index.html"
	}
	return strings.ReplaceAll(name, ".md", ".html")
}

func nonEmptySegments(ancestors []Ancestor) []string {
	segments := make([]string, 0, len(ancestors))
	for _, a := range ancestors {
		if a.Segment == "" {
			continue
		}
		segments = append(segments, a.Segment)
	}
	return segments
}
