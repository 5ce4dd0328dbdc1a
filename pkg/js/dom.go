package js

import (
	"github.com/dop251/goja"

	"l14ui/pkg/dom"
)

// domContext holds shared state for DOM bindings. It maintains an
// element-to-proxy cache so the same JS object is returned for the same
// element (needed for === identity checks).
type domContext struct {
	vm    *goja.Runtime
	doc   *dom.Document
	head  goja.Value
	cache map[dom.Element]*goja.Object
}

// BindDocument sets up the global `document` object.
func (e *Engine) BindDocument(doc *dom.Document) {
	ctx := &domContext{
		vm:    e.vm,
		doc:   doc,
		cache: make(map[dom.Element]*goja.Object),
	}
	e.dom = ctx
	ctx.head = e.vm.NewDynamicObject(&headAccessor{ctx: ctx})
	e.vm.Set("document", e.vm.NewDynamicObject(&documentAccessor{ctx: ctx}))
}

// elementProxy creates (or retrieves from cache) the JS object for el.
func (ctx *domContext) elementProxy(el dom.Element) goja.Value {
	if el == nil {
		return goja.Null()
	}
	if v, ok := ctx.cache[el]; ok {
		return v
	}
	var v *goja.Object
	switch el := el.(type) {
	case *dom.ScriptElement:
		v = ctx.vm.NewDynamicObject(&scriptAccessor{ctx: ctx, el: el})
	case *dom.StyleElement:
		v = ctx.vm.NewDynamicObject(&styleElementAccessor{ctx: ctx, el: el})
	default:
		return goja.Null()
	}
	ctx.cache[el] = v
	return v
}

// unwrapElement finds the element behind a proxy created by elementProxy.
func (ctx *domContext) unwrapElement(val goja.Value) dom.Element {
	if val == nil || goja.IsNull(val) || goja.IsUndefined(val) {
		return nil
	}
	obj := val.ToObject(ctx.vm)
	for el, cached := range ctx.cache {
		if cached.SameAs(obj) {
			return el
		}
	}
	return nil
}

func (ctx *domContext) fn(f func(call goja.FunctionCall) goja.Value) goja.Value {
	return ctx.vm.ToValue(f)
}

// documentAccessor implements goja.DynamicObject for `document`.
type documentAccessor struct {
	ctx *domContext
}

var documentKeys = []string{"head", "origin", "createElement", "createTextNode", "querySelector", "execute"}

func (d *documentAccessor) Get(key string) goja.Value {
	ctx := d.ctx
	switch key {
	case "head":
		return ctx.head
	case "origin":
		return ctx.vm.ToValue(ctx.doc.Origin())
	case "createElement":
		return ctx.fn(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				panic(ctx.vm.NewTypeError("Failed to execute 'createElement' on 'Document': 1 argument required"))
			}
			return ctx.elementProxy(ctx.doc.CreateElement(call.Arguments[0].String()))
		})
	case "createTextNode":
		return ctx.fn(func(call goja.FunctionCall) goja.Value {
			return ctx.vm.ToValue(ctx.doc.CreateTextNode(call.Argument(0).String()))
		})
	case "querySelector":
		return ctx.fn(func(call goja.FunctionCall) goja.Value {
			if ctx.doc.QuerySelector(call.Argument(0).String()) == nil {
				return goja.Null()
			}
			return ctx.head
		})
	case "execute":
		return ctx.fn(func(call goja.FunctionCall) goja.Value {
			if err := ctx.doc.Execute("document.execute", call.Argument(0).String()); err != nil {
				panic(ctx.vm.NewGoError(err))
			}
			return goja.Undefined()
		})
	}
	return goja.Undefined()
}

func (d *documentAccessor) Set(key string, val goja.Value) bool { return false }
func (d *documentAccessor) Has(key string) bool { return contains(documentKeys, key) }
func (d *documentAccessor) Delete(key string) bool { return false }
func (d *documentAccessor) Keys() []string { return documentKeys }

// headAccessor implements goja.DynamicObject for `document.head`.
type headAccessor struct {
	ctx *domContext
}

var headKeys = []string{"tagName", "childNodes", "appendChild", "removeChild"}

func (h *headAccessor) Get(key string) goja.Value {
	ctx := h.ctx
	head := ctx.doc.Head()
	switch key {
	case "tagName":
		return ctx.vm.ToValue("HEAD")
	case "childNodes":
		children := head.ChildNodes()
		items := make([]any, len(children))
		for i, c := range children {
			items[i] = ctx.elementProxy(c)
		}
		return ctx.vm.NewArray(items...)
	case "appendChild", "removeChild":
		return ctx.fn(func(call goja.FunctionCall) goja.Value {
			arg := call.Argument(0)
			el := ctx.unwrapElement(arg)
			if el == nil {
				panic(ctx.vm.NewTypeError("Failed to execute '" + key + "' on 'Node': parameter 1 is not a script or style element"))
			}
			if key == "appendChild" {
				head.AppendChild(el)
			} else {
				head.RemoveChild(el)
			}
			return arg
		})
	}
	return goja.Undefined()
}

func (h *headAccessor) Set(key string, val goja.Value) bool { return false }
func (h *headAccessor) Has(key string) bool { return contains(headKeys, key) }
func (h *headAccessor) Delete(key string) bool { return false }
func (h *headAccessor) Keys() []string { return headKeys }

// attributeStub returns the no-op setAttribute/removeAttribute pair shared
// by every element proxy.
func attributeStub(ctx *domContext, el dom.Element, key string) goja.Value {
	return ctx.fn(func(call goja.FunctionCall) goja.Value {
		if key == "setAttribute" {
			el.SetAttribute(call.Argument(0).String(), call.Argument(1).String())
		} else {
			el.RemoveAttribute(call.Argument(0).String())
		}
		return goja.Undefined()
	})
}

// scriptAccessor implements goja.DynamicObject for script elements.
type scriptAccessor struct {
	ctx *domContext
	el  *dom.ScriptElement
}

var scriptKeys = []string{"tagName", "src", "charset", "crossOrigin", "parentNode", "setAttribute", "removeAttribute"}

func (s *scriptAccessor) Get(key string) goja.Value {
	vm := s.ctx.vm
	switch key {
	case "tagName":
		return vm.ToValue("SCRIPT")
	case "src":
		return vm.ToValue(s.el.Src)
	case "charset":
		return nullable(vm, s.el.Charset)
	case "crossOrigin":
		return nullable(vm, s.el.CrossOrigin)
	case "parentNode":
		return s.ctx.head
	case "setAttribute", "removeAttribute":
		return attributeStub(s.ctx, s.el, key)
	}
	return goja.Undefined()
}

func (s *scriptAccessor) Set(key string, val goja.Value) bool {
	switch key {
	case "src":
		s.el.Src = val.String()
	case "charset":
		s.el.Charset = val.String()
	case "crossOrigin":
		s.el.CrossOrigin = val.String()
	default:
		return false
	}
	return true
}

func (s *scriptAccessor) Has(key string) bool { return contains(scriptKeys, key) }
func (s *scriptAccessor) Delete(key string) bool { return false }
func (s *scriptAccessor) Keys() []string { return scriptKeys }

// styleElementAccessor implements goja.DynamicObject for style elements.
type styleElementAccessor struct {
	ctx *domContext
	el  *dom.StyleElement
}

var styleElementKeys = []string{"tagName", "enabled", "childNodes", "firstChild", "parentNode",
	"appendChild", "removeChild", "setAttribute", "removeAttribute"}

func (s *styleElementAccessor) Get(key string) goja.Value {
	vm := s.ctx.vm
	switch key {
	case "tagName":
		return vm.ToValue("STYLE")
	case "enabled":
		return vm.ToValue(s.el.Enabled())
	case "childNodes":
		nodes := s.el.ChildNodes()
		items := make([]any, len(nodes))
		for i, n := range nodes {
			items[i] = n
		}
		return vm.NewArray(items...)
	case "firstChild":
		if first, ok := s.el.FirstChild(); ok {
			return vm.ToValue(first)
		}
		return goja.Null()
	case "parentNode":
		return s.ctx.head
	case "appendChild":
		return s.ctx.fn(func(call goja.FunctionCall) goja.Value {
			return vm.ToValue(s.el.AppendChild(call.Argument(0).String()))
		})
	case "removeChild":
		return s.ctx.fn(func(call goja.FunctionCall) goja.Value {
			return vm.ToValue(s.el.RemoveChild(call.Argument(0).String()))
		})
	case "setAttribute", "removeAttribute":
		return attributeStub(s.ctx, s.el, key)
	}
	return goja.Undefined()
}

func (s *styleElementAccessor) Set(key string, val goja.Value) bool { return false }
func (s *styleElementAccessor) Has(key string) bool { return contains(styleElementKeys, key) }
func (s *styleElementAccessor) Delete(key string) bool { return false }
func (s *styleElementAccessor) Keys() []string { return styleElementKeys }

func nullable(vm *goja.Runtime, s string) goja.Value {
	if s == "" {
		return goja.Null()
	}
	return vm.ToValue(s)
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
