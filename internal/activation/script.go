package activation

import (
	"errors"
	"fmt"
	"math"

	starlarkmath "go.starlark.net/lib/math"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// ErrScript wraps failures to compile a scripted activation.
var ErrScript = errors.New("activation script")

// Compile turns a Starlark expression in x into a Func, e.g.
// "math.fabs(1.2 * x)". The math module is predeclared.
//
// Evaluation errors at call time yield NaN, which the engine's clamp maps to
// zero.
func Compile(expr string) (Func, error) {
	if expr == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrScript)
	}
	src := "def activation(x):\n    return " + expr + "\n"

	thread := &starlark.Thread{Name: "activation"}
	predeclared := starlark.StringDict{"math": starlarkmath.Module}
	globals, err := starlark.ExecFileOptions(&syntax.FileOptions{}, thread, "activation", src, predeclared)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrScript, expr, err)
	}
	fn, ok := globals["activation"].(*starlark.Function)
	if !ok {
		return nil, fmt.Errorf("%w: %q did not define a function", ErrScript, expr)
	}
	globals.Freeze()

	// Probe once so type errors in the expression surface at compile time.
	if _, err := call(fn, 0.5); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrScript, expr, err)
	}

	return func(x float32) float32 {
		v, err := call(fn, x)
		if err != nil {
			return float32(math.NaN())
		}
		return v
	}, nil
}

// call runs fn on its own thread; starlark threads are not shareable.
func call(fn *starlark.Function, x float32) (float32, error) {
	thread := &starlark.Thread{Name: "activation"}
	rv, err := starlark.Call(thread, fn, starlark.Tuple{starlark.Float(x)}, nil)
	if err != nil {
		return 0, err
	}
	f, ok := starlark.AsFloat(rv)
	if !ok {
		return 0, fmt.Errorf("activation returned %s, not a number", rv.Type())
	}
	return float32(f), nil
}
