package sitetree

import (
	"fmt"
	"strings"
)

// Breadcrumbs renders the navigation fragment for a page at the given
// position. Every ancestor but the last becomes a link to its accumulated
// URL prefix. The last ancestor becomes a plain <span> when the page being
// rendered is that directory's own README (the page IS the directory's
// index, so no trailing file label is added); otherwise it stays a link and
// the current file name is appended as the plain label. An empty chain
// yields an empty string: the root page has no breadcrumbs.
func Breadcrumbs(ancestors []Ancestor, currentFileName string) string {
	parts := make([]string, 0, len(ancestors)+1)
	prefix := ""
	for i, a := range ancestors {
		// The root's empty segment collapses the prefix to "/"; the next
		// segment replaces it instead of appending to it.
		if prefix == "/" {
			prefix = "/" + a.Segment
		} else {
			prefix += "/" + a.Segment
		}

		if i < len(ancestors)-1 {
			parts = append(parts, fmt.Sprintf(`<a href="%s">%s</a>`, prefix, a.Name))
			continue
		}
		if currentFileName == "README.md" {
			parts = append(parts, fmt.Sprintf("<span>%s</span>", a.Name))
		} else {
			parts = append(parts, fmt.Sprintf(`<a href="%s">%s</a>`, prefix, a.Name))
			parts = append(parts, fmt.Sprintf("<span>%s</span>", currentFileName))
		}
	}
	return strings.Join(parts, " / ")
}
