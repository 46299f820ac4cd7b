//go:build js && wasm

// Package jsdom implements surface.Surface on top of the browser document,
// for the widget compiled to WebAssembly.
package jsdom

import (
	"sync"
	"syscall/js"

	"github.com/iafluence/chatwidget/internal/surface"
)

// Document is the page's global document.
type Document struct {
	doc js.Value

	mu    sync.Mutex
	funcs []js.Func
}

// New wraps the global document.
func New() *Document {
	return &Document{doc: js.Global().Get("document")}
}

// ElementByID implements surface.Surface.
func (d *Document) ElementByID(id string) (surface.Element, bool) {
	v := d.doc.Call("getElementById", id)
	if v.IsNull() || v.IsUndefined() {
		return nil, false
	}
	return &Element{doc: d, v: v}, true
}

// CreateElement implements surface.Surface.
func (d *Document) CreateElement(tag string) surface.Element {
	return &Element{doc: d, v: d.doc.Call("createElement", tag)}
}

// Release frees the Go callbacks registered as event listeners.
func (d *Document) Release() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, f := range d.funcs {
		f.Release()
	}
	d.funcs = nil
}

func (d *Document) keep(f js.Func) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.funcs = append(d.funcs, f)
}

// Element is a DOM element.
type Element struct {
	doc *Document
	v   js.Value
}

var _ surface.Element = (*Element)(nil)

func (e *Element) ID() string {
	return e.v.Get("id").String()
}

func (e *Element) SetID(id string) {
	e.v.Set("id", id)
}

func (e *Element) Attr(name string) (string, bool) {
	if !e.v.Call("hasAttribute", name).Bool() {
		return "", false
	}
	return e.v.Call("getAttribute", name).String(), true
}

func (e *Element) SetAttr(name, value string) {
	e.v.Call("setAttribute", name, value)
}

func (e *Element) AddClass(names ...string) {
	list := e.v.Get("classList")
	for _, name := range names {
		list.Call("add", name)
	}
}

func (e *Element) SetStyle(property, value string) {
	e.v.Get("style").Call("setProperty", property, value)
}

func (e *Element) Style(property string) string {
	return e.v.Get("style").Call("getPropertyValue", property).String()
}

func (e *Element) SetText(text string) {
	e.v.Set("textContent", text)
}

func (e *Element) SetHTML(markup string) {
	e.v.Set("innerHTML", markup)
}

func (e *Element) AppendChild(child surface.Element) {
	if c, ok := child.(*Element); ok {
		e.v.Call("appendChild", c.v)
	}
}

func (e *Element) Remove() {
	e.v.Call("remove")
}

func (e *Element) Clear() {
	e.v.Call("replaceChildren")
}

func (e *Element) On(event string, fn func(surface.Event)) {
	f := js.FuncOf(func(this js.Value, args []js.Value) any {
		ev := surface.Event{Type: event}
		if len(args) > 0 {
			if key := args[0].Get("key"); key.Type() == js.TypeString {
				ev.Key = key.String()
			}
		}
		// Read now: typing continues while the listener waits for the widget lock.
		if value := this.Get("value"); value.Type() == js.TypeString {
			ev.Value = value.String()
		}
		// Listeners may block on the widget lock; keep the JS event loop free.
		go fn(ev)
		return nil
	})
	e.doc.keep(f)
	e.v.Call("addEventListener", event, f)
}

func (e *Element) Focus() {
	e.v.Call("focus")
}

func (e *Element) Value() string {
	return e.v.Get("value").String()
}

func (e *Element) SetValue(value string) {
	e.v.Set("value", value)
}

func (e *Element) ScrollToBottom() {
	e.v.Set("scrollTop", e.v.Get("scrollHeight"))
}
