package js

import (
	"errors"
	"fmt"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"l14ui/pkg/mainloop"
)

// Engine executes JavaScript on the main goroutine and exposes the document
// and component tree to it.
type Engine struct {
	vm       *goja.Runtime
	logger   *zap.Logger
	dispatch func(mainloop.Task)

	ui  *uiContext
	dom *domContext
}

// New creates a new JS engine with a fresh goja runtime.
func New(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	vm := goja.New()
	e := &Engine{
		vm:       vm,
		logger:   logger.Named("js"),
		dispatch: func(t mainloop.Task) { t() },
	}

	// Register console API
	c := &consoleAPI{logger: e.logger.Named("console")}
	c.register(vm)

	return e
}

// SetDispatch routes script callbacks fired by native events. Backends that
// deliver events on their own goroutine pass the main queue's Post here; the
// default runs callbacks immediately.
func (e *Engine) SetDispatch(fn func(mainloop.Task)) {
	e.dispatch = fn
}

// Release drops every cached proxy. Call it once the document and tree it
// was bound to are torn down.
func (e *Engine) Release() {
	if e.ui != nil {
		clear(e.ui.cache)
	}
	if e.dom != nil {
		clear(e.dom.cache)
	}
}

// Runtime exposes the underlying goja runtime.
func (e *Engine) Runtime() *goja.Runtime {
	return e.vm
}

// Execute runs source under the given script name. Errors thrown by the
// script are returned wrapped; callers may choose to log and continue rather
// than fail.
func (e *Engine) Execute(name, source string) error {
	_, err := e.vm.RunScript(name, source)
	if err != nil {
		var ex *goja.Exception
		if errors.As(err, &ex) {
			return fmt.Errorf("script %s: %w", name, ex)
		}
		return fmt.Errorf("script %s: %w", name, err)
	}
	return nil
}

// call invokes a script function as an event callback. Exceptions are
// logged; there is no script frame to rethrow into.
func (e *Engine) call(fn goja.Callable, name string, args ...any) {
	vals := make([]goja.Value, len(args))
	for i, a := range args {
		vals[i] = e.vm.ToValue(a)
	}
	if _, err := fn(goja.Undefined(), vals...); err != nil {
		e.logger.Error("event handler threw", zap.String("event", name), zap.Error(err))
	}
}
