// Package memdom is an in-memory rendering surface backed by golang.org/x/net/html.
// It is used to drive the widget without a browser: tests, the CLI and the
// server-side preview all render through it.
package memdom

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/iafluence/chatwidget/internal/surface"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const emptyPage = "<!DOCTYPE html><html><head></head><body></body></html>"

// Document is an HTML document that implements surface.Surface.
type Document struct {
	mu        sync.Mutex
	root      *html.Node
	head      *html.Node
	body      *html.Node
	listeners map[*html.Node]map[string][]func(surface.Event)
	values    map[*html.Node]string
	scrolls   map[*html.Node]int
	focused   *html.Node
}

// New returns an empty document.
func New() *Document {
	doc, err := Parse(strings.NewReader(emptyPage))
	if err != nil {
		panic(fmt.Sprintf("memdom: parse empty page: %v", err))
	}
	return doc
}

// Parse builds a document from existing markup, e.g. a host page holding a mount element.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	d := &Document{
		root:      root,
		listeners: make(map[*html.Node]map[string][]func(surface.Event)),
		values:    make(map[*html.Node]string),
		scrolls:   make(map[*html.Node]int),
	}
	d.head = findElement(root, atom.Head)
	d.body = findElement(root, atom.Body)
	if d.body == nil {
		return nil, fmt.Errorf("document has no body")
	}
	return d, nil
}

// Head returns the <head> element.
func (d *Document) Head() *Element {
	return &Element{doc: d, node: d.head}
}

// Body returns the <body> element.
func (d *Document) Body() *Element {
	return &Element{doc: d, node: d.body}
}

// ElementByID implements surface.Surface.
func (d *Document) ElementByID(id string) (surface.Element, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := d.findByIDLocked(id)
	if n == nil {
		return nil, false
	}
	return &Element{doc: d, node: n}, true
}

// CreateElement implements surface.Surface.
func (d *Document) CreateElement(tag string) surface.Element {
	return d.NewElement(tag)
}

// NewElement is CreateElement with a concrete return type.
func (d *Document) NewElement(tag string) *Element {
	a := atom.Lookup([]byte(tag))
	return &Element{doc: d, node: &html.Node{Type: html.ElementNode, Data: tag, DataAtom: a}}
}

// Dispatch delivers ev to the listeners of the attached element with the given id.
// An empty ev.Value is filled with the element's current value.
// It reports whether such an element exists.
func (d *Document) Dispatch(id string, ev surface.Event) bool {
	d.mu.Lock()
	n := d.findByIDLocked(id)
	if n == nil {
		d.mu.Unlock()
		return false
	}
	if ev.Value == "" {
		ev.Value = d.values[n]
	}
	fns := append([]func(surface.Event){}, d.listeners[n][ev.Type]...)
	d.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
	return true
}

// Click dispatches a click event.
func (d *Document) Click(id string) bool {
	return d.Dispatch(id, surface.Event{Type: "click"})
}

// Press dispatches a keypress event.
func (d *Document) Press(id, key string) bool {
	return d.Dispatch(id, surface.Event{Type: "keypress", Key: key})
}

// Type sets the value of an input as a user typing would.
func (d *Document) Type(id, value string) bool {
	el, ok := d.ElementByID(id)
	if !ok {
		return false
	}
	el.SetValue(value)
	return true
}

// FocusedID returns the id of the focused element, or "".
func (d *Document) FocusedID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.focused == nil {
		return ""
	}
	return attr(d.focused, "id")
}

// Render writes the whole document as HTML.
func (d *Document) Render(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return html.Render(w, d.root)
}

// String renders the document, ignoring write errors.
func (d *Document) String() string {
	var buf bytes.Buffer
	_ = d.Render(&buf)
	return buf.String()
}

func (d *Document) findByIDLocked(id string) *html.Node {
	if id == "" {
		return nil
	}
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && attr(n, "id") == id {
			found = n
			return false
		}
		return true
	})
	return found
}

func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if !visit(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}

func findElement(root *html.Node, a atom.Atom) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == a {
			found = n
			return false
		}
		return true
	})
	return found
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
