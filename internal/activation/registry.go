// Package activation provides the scalar transforms applied to each cell's
// weighted neighborhood sum.
package activation

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrActivationExists   = errors.New("activation already registered")
	ErrActivationNotFound = errors.New("activation not found")
)

// Func maps a neighborhood sum to the next cell value. It must be pure; the
// engine may call it from several goroutines at once.
type Func func(x float32) float32

// Identity returns its input unchanged.
func Identity(x float32) float32 { return x }

var registry = struct {
	mu sync.RWMutex
	m  map[string]Func
}{
	m: make(map[string]Func),
}

func init() {
	registerBuiltins()
}

// Register adds fn under name.
func Register(name string, fn Func) error {
	if name == "" {
		return errors.New("activation name is required")
	}
	if fn == nil {
		return errors.New("activation function is required")
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	if _, exists := registry.m[name]; exists {
		return fmt.Errorf("%w: %s", ErrActivationExists, name)
	}
	registry.m[name] = fn
	return nil
}

// MustRegister is Register for package initialization; it panics on error.
func MustRegister(name string, fn Func) {
	if err := Register(name, fn); err != nil {
		panic(err)
	}
}

// Lookup returns the activation registered under name.
func Lookup(name string) (Func, error) {
	registry.mu.RLock()
	fn, ok := registry.m[name]
	registry.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrActivationNotFound, name)
	}
	return fn, nil
}

// Names lists registered activations in sorted order.
func Names() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	names := make([]string, 0, len(registry.m))
	for name := range registry.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve picks a scripted expression when expr is non-empty and falls back to
// the named activation otherwise.
func Resolve(name, expr string) (Func, error) {
	if expr != "" {
		return Compile(expr)
	}
	return Lookup(name)
}

func resetRegistryForTests() {
	registry.mu.Lock()
	registry.m = make(map[string]Func)
	registry.mu.Unlock()
	registerBuiltins()
}
