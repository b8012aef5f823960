package loader

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ErrUnknownEntryPoint is returned when no feature is registered under the
// entry point's name.
var ErrUnknownEntryPoint = errors.New("unknown entry point")

// Mount describes what a feature is asked to serve.
type Mount struct {
	// EntryPoint is the full entry point, e.g. "static:./public".
	EntryPoint string
	// Target is the part after the first colon, empty when absent.
	Target string
	// Mode is the runtime mode (development, production).
	Mode string
}

// Development reports whether the mount runs in development mode.
func (m Mount) Development() bool {
	return m.Mode == "development"
}

// Feature is an application the builtin server can serve.
type Feature interface {
	// Name is the entry point name selecting this feature.
	Name() string
	// Load registers the feature's routes on router. ctx bounds any checks
	// done while loading.
	Load(ctx context.Context, router fiber.Router, mount Mount) error
}

// Manager holds the registry of available features.
type Manager struct {
	features map[string]Feature
}

// NewManager creates an empty registry.
func NewManager() *Manager {
	return &Manager{features: make(map[string]Feature)}
}

// Register adds a feature. A later registration with the same name replaces
// the earlier one.
func (m *Manager) Register(f Feature) {
	m.features[f.Name()] = f
}

// Names lists the registered entry point names in order.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.features))
	for name := range m.features {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load mounts the feature named by entryPoint on router.
func (m *Manager) Load(ctx context.Context, router fiber.Router, entryPoint, mode string) error {
	name, target := SplitEntryPoint(entryPoint)
	f, ok := m.features[name]
	if !ok {
		return fmt.Errorf("%w %q (available: %s)", ErrUnknownEntryPoint, name, strings.Join(m.Names(), ", "))
	}
	if err := f.Load(ctx, router, Mount{EntryPoint: entryPoint, Target: target, Mode: mode}); err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	return nil
}

// SplitEntryPoint splits "name:target" at the first colon.
func SplitEntryPoint(entryPoint string) (name, target string) {
	name, target, _ = strings.Cut(strings.TrimSpace(entryPoint), ":")
	return name, target
}
