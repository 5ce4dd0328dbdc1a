package js

import (
	"errors"
	"strings"
	"unicode"

	"github.com/dop251/goja"

	"l14ui/pkg/component"
	"l14ui/pkg/layout"
	"l14ui/pkg/native"
)

// uiContext holds shared state for component bindings and keeps one JS
// object per component.
type uiContext struct {
	e     *Engine
	vm    *goja.Runtime
	comp  *component.Context
	root  component.Node
	cache map[component.Node]*goja.Object
}

// BindUI sets up the global `ui` object, through which script builds the
// component tree under root.
func (e *Engine) BindUI(comp *component.Context, root component.Node) {
	ctx := &uiContext{
		e:     e,
		vm:    e.vm,
		comp:  comp,
		root:  root,
		cache: make(map[component.Node]*goja.Object),
	}
	e.ui = ctx
	ui := e.vm.NewObject()
	ui.Set("root", ctx.nodeProxy(root))
	ui.Set("createElement", func(call goja.FunctionCall) goja.Value {
		kind := native.Kind(strings.ToLower(call.Argument(0).String()))
		n, err := component.New(comp, kind)
		if err != nil {
			panic(e.vm.NewTypeError(err.Error()))
		}
		return ctx.nodeProxy(n)
	})
	e.vm.Set("ui", ui)
}

func (ctx *uiContext) nodeProxy(n component.Node) goja.Value {
	if n == nil {
		return goja.Null()
	}
	if v, ok := ctx.cache[n]; ok {
		return v
	}
	v := ctx.vm.NewDynamicObject(&nodeAccessor{ctx: ctx, node: n})
	ctx.cache[n] = v
	return v
}

func (ctx *uiContext) unwrapNode(val goja.Value) component.Node {
	if val == nil || goja.IsNull(val) || goja.IsUndefined(val) {
		return nil
	}
	obj := val.ToObject(ctx.vm)
	for n, cached := range ctx.cache {
		if cached.SameAs(obj) {
			return n
		}
	}
	return nil
}

// throw converts a component error into a script exception: coercion
// failures become TypeErrors, everything else an Error wrapping the Go value.
func (ctx *uiContext) throw(err error) {
	var ce *component.PropertyCoercionError
	if errors.As(err, &ce) {
		panic(ctx.vm.NewTypeError(ce.Error()))
	}
	panic(ctx.vm.NewGoError(err))
}

// toValue converts a script value into a tagged property value.
func toValue(v goja.Value) component.Value {
	if v == nil || goja.IsNull(v) || goja.IsUndefined(v) {
		return component.Null()
	}
	switch x := v.Export().(type) {
	case bool:
		return component.Bool(x)
	case int64:
		return component.Number(float64(x))
	case float64:
		return component.Number(x)
	case string:
		return component.String(x)
	}
	return component.String(v.String())
}

// nodeAccessor implements goja.DynamicObject for component nodes.
type nodeAccessor struct {
	ctx  *uiContext
	node component.Node
}

var nodeKeys = []string{"id", "kind", "parent", "children", "style", "layout", "value", "text",
	"setParent", "appendChild", "remove", "setProperty", "setEventListener", "focus"}

func (a *nodeAccessor) Get(key string) goja.Value {
	ctx := a.ctx
	vm := ctx.vm
	n := a.node
	switch key {
	case "id":
		return vm.ToValue(n.ID())
	case "kind":
		return vm.ToValue(string(n.Kind()))
	case "parent":
		return ctx.nodeProxy(n.Parent())
	case "children":
		children := n.Children()
		items := make([]any, len(children))
		for i, c := range children {
			items[i] = ctx.nodeProxy(c)
		}
		return vm.NewArray(items...)
	case "style":
		return vm.NewDynamicObject(&nodeStyleAccessor{ctx: ctx, node: n})
	case "layout":
		return vm.NewDynamicObject(&nodeLayoutAccessor{ctx: ctx, node: n})
	case "value":
		if in, ok := n.(*component.Input); ok {
			return vm.ToValue(in.Value())
		}
		return goja.Undefined()
	case "text":
		if t, ok := n.(*component.Text); ok {
			return vm.ToValue(t.Text())
		}
		return goja.Undefined()
	case "setParent":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			parent := ctx.unwrapNode(call.Argument(0))
			if err := n.SetParent(parent); err != nil {
				ctx.throw(err)
			}
			return goja.Undefined()
		})
	case "appendChild":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			child := ctx.unwrapNode(call.Argument(0))
			if child == nil {
				panic(vm.NewTypeError("appendChild: argument is not a ui node"))
			}
			if err := child.SetParent(n); err != nil {
				ctx.throw(err)
			}
			return call.Argument(0)
		})
	case "remove":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			component.Walk(n, func(c component.Node) { delete(ctx.cache, c) })
			n.Remove()
			return goja.Undefined()
		})
	case "setProperty":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if err := n.SetProperty(call.Argument(0).String(), toValue(call.Argument(1))); err != nil {
				ctx.throw(err)
			}
			return goja.Undefined()
		})
	case "setEventListener":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			name := call.Argument(0).String()
			fn, ok := goja.AssertFunction(call.Argument(1))
			if !ok {
				n.SetEventListener(name, nil)
				return goja.Undefined()
			}
			n.SetEventListener(name, func(args ...any) {
				ctx.e.dispatch(func() { ctx.e.call(fn, name, args...) })
			})
			return goja.Undefined()
		})
	case "focus":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if in, ok := n.(*component.Input); ok {
				in.Focus()
			}
			return goja.Undefined()
		})
	}
	return goja.Undefined()
}

func (a *nodeAccessor) Set(key string, val goja.Value) bool {
	if key == "value" || key == "text" {
		if err := a.node.SetProperty(key, toValue(val)); err != nil {
			a.ctx.throw(err)
		}
		return true
	}
	return false
}

func (a *nodeAccessor) Has(key string) bool    { return contains(nodeKeys, key) }
func (a *nodeAccessor) Delete(key string) bool { return false }
func (a *nodeAccessor) Keys() []string         { return nodeKeys }

// nodeStyleAccessor maps camelCase property access to the node's explicit
// style. Reads return the effective value from the last resolution.
type nodeStyleAccessor struct {
	ctx  *uiContext
	node component.Node
}

func (s *nodeStyleAccessor) Get(key string) goja.Value {
	if v, ok := s.node.Style().Get(camelToKebab(key)); ok {
		return s.ctx.vm.ToValue(v)
	}
	return s.ctx.vm.ToValue("")
}

func (s *nodeStyleAccessor) Set(key string, val goja.Value) bool {
	s.node.SetStyleProperty(camelToKebab(key), toValue(val))
	return true
}

func (s *nodeStyleAccessor) Has(key string) bool {
	return true
}

func (s *nodeStyleAccessor) Delete(key string) bool {
	s.node.SetStyleProperty(camelToKebab(key), component.Null())
	return true
}

func (s *nodeStyleAccessor) Keys() []string {
	eff := s.node.Style().Effective()
	keys := make([]string, 0, len(eff))
	for k := range eff {
		keys = append(keys, k)
	}
	return keys
}

// nodeLayoutAccessor writes layout properties. Lengths and flex factors can
// be read back.
type nodeLayoutAccessor struct {
	ctx  *uiContext
	node component.Node
}

func (l *nodeLayoutAccessor) Get(key string) goja.Value {
	lay := l.node.Layout()
	var v layout.Value
	switch key {
	case "width":
		v = lay.Width
	case "height":
		v = lay.Height
	case "minWidth":
		v = lay.MinWidth
	case "minHeight":
		v = lay.MinHeight
	case "maxWidth":
		v = lay.MaxWidth
	case "maxHeight":
		v = lay.MaxHeight
	case "flexBasis":
		v = lay.FlexBasis
	case "flexGrow":
		return l.ctx.vm.ToValue(lay.FlexGrow)
	case "flexShrink":
		return l.ctx.vm.ToValue(lay.FlexShrink)
	default:
		return goja.Undefined()
	}
	return l.ctx.vm.ToValue(v.String())
}

func (l *nodeLayoutAccessor) Set(key string, val goja.Value) bool {
	if err := l.node.SetLayoutProperty(key, toValue(val)); err != nil {
		l.ctx.throw(err)
	}
	return true
}

func (l *nodeLayoutAccessor) Has(key string) bool {
	return true
}

func (l *nodeLayoutAccessor) Delete(key string) bool {
	return false
}

func (l *nodeLayoutAccessor) Keys() []string {
	return []string{"width", "height", "minWidth", "minHeight", "maxWidth", "maxHeight", "flexBasis", "flexGrow", "flexShrink"}
}

// camelToKebab converts a JS camelCase property name to kebab-case.
func camelToKebab(s string) string {
	var sb strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(unicode.ToLower(r))
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
