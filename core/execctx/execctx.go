package execctx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const (
	// EnvVirtualEnv records the active context directory.
	EnvVirtualEnv = "VIRTUAL_ENV"
	// EnvPath is the executable search path the context's bin dir is prepended to.
	EnvPath = "PATH"
	// EnvPythonHome is cleared while a context is active, as activate scripts do.
	EnvPythonHome = "PYTHONHOME"
)

var (
	ErrNotFound     = errors.New("execution context not found")
	ErrNotDirectory = errors.New("execution context is not a directory")
	ErrNoBinDir     = errors.New("execution context has no bin directory")
)

// Activation is an applied set of environment changes. Restore puts back every
// variable it touched.
type Activation struct {
	Dir    string
	BinDir string

	saved    map[string]*string
	restored bool
}

// BinDirName returns the executables directory of a context for the current OS.
func BinDirName() string {
	if runtime.GOOS == "windows" {
		return "Scripts"
	}
	return "bin"
}

// Activate activates the virtualenv-style context at dir. An empty dir is a
// no-op activation.
func Activate(dir string) (*Activation, error) {
	a := &Activation{saved: make(map[string]*string)}
	if dir == "" {
		return a, nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, abs)
		}
		return nil, fmt.Errorf("stat %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, abs)
	}

	bin := filepath.Join(abs, BinDirName())
	if info, err := os.Stat(bin); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNoBinDir, bin)
	}

	a.Dir = abs
	a.BinDir = bin

	path := bin
	if current := os.Getenv(EnvPath); current != "" {
		path = bin + string(os.PathListSeparator) + current
	}

	if err := a.set(EnvVirtualEnv, abs); err != nil {
		return nil, err
	}
	if err := a.set(EnvPath, path); err != nil {
		a.Restore()
		return nil, err
	}
	if err := a.unset(EnvPythonHome); err != nil {
		a.Restore()
		return nil, err
	}

	return a, nil
}

// Active reports whether the activation changed the environment and has not
// been restored yet.
func (a *Activation) Active() bool {
	return a != nil && a.Dir != "" && !a.restored
}

// Export sets additional variables for the lifetime of the activation.
func (a *Activation) Export(vars map[string]string) error {
	for k, v := range vars {
		if err := a.set(k, v); err != nil {
			return err
		}
	}
	return nil
}

// Restore undoes every change made through the activation. It is safe to call
// more than once.
func (a *Activation) Restore() {
	if a == nil || a.restored {
		return
	}
	a.restored = true
	for k, v := range a.saved {
		if v == nil {
			_ = os.Unsetenv(k)
		} else {
			_ = os.Setenv(k, *v)
		}
	}
}

func (a *Activation) remember(key string) {
	if _, ok := a.saved[key]; ok {
		return
	}
	if v, ok := os.LookupEnv(key); ok {
		a.saved[key] = &v
	} else {
		a.saved[key] = nil
	}
}

func (a *Activation) set(key, value string) error {
	a.remember(key)
	if err := os.Setenv(key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (a *Activation) unset(key string) error {
	a.remember(key)
	if err := os.Unsetenv(key); err != nil {
		return fmt.Errorf("unset %s: %w", key, err)
	}
	return nil
}
