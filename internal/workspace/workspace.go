// Package workspace manages the output root across runs.
package workspace

import (
	"fmt"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/mdsite/internal/logfields"
)

// Manager owns the output root of one build target. A run removes the
// previous output entirely before writing, which is the only recovery
// mechanism for a prior failed run and what makes repeated builds
// idempotent.
type Manager struct {
	root string
}

// NewManager creates a manager for the given output root.
func NewManager(root string) *Manager {
	return &Manager{root: root}
}

// Path returns the output root path.
func (m *Manager) Path() string {
	return m.root
}

// Clean removes the previous run's output tree. A missing output root is
// not an error.
func (m *Manager) Clean() error {
	if _, err := os.Stat(m.root); os.IsNotExist(err) {
		slog.Debug("output directory already absent", logfields.Path(m.root))
		return nil
	}
	if err := os.RemoveAll(m.root); err != nil {
		return fmt.Errorf("failed to clean output directory %s: %w", m.root, err)
	}
	slog.Debug("removed previous output", logfields.Path(m.root))
	return nil
}

// Promote replaces the output root with the fully built tree at
// stagingRoot. The previous output is only removed once staging has
// succeeded, so a failed build never costs the last good output.
func (m *Manager) Promote(stagingRoot string) error {
	if _, err := os.Stat(stagingRoot); err != nil {
		return fmt.Errorf("staged output missing at %s: %w", stagingRoot, err)
	}
	if err := m.Clean(); err != nil {
		return err
	}
	if err := os.Rename(stagingRoot, m.root); err != nil {
		return fmt.Errorf("failed to promote staged output to %s: %w", m.root, err)
	}
	slog.Debug("promoted staged output", logfields.Path(m.root))
	return nil
}
