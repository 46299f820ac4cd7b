package memdom

import (
	"bytes"
	"strings"

	"github.com/iafluence/chatwidget/internal/surface"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element wraps a node of a Document and implements surface.Element.
type Element struct {
	doc  *Document
	node *html.Node
}

var _ surface.Element = (*Element)(nil)

func (e *Element) ID() string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return attr(e.node, "id")
}

func (e *Element) SetID(id string) {
	e.SetAttr("id", id)
}

func (e *Element) Attr(name string) (string, bool) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	for _, a := range e.node.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (e *Element) SetAttr(name, value string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	setAttr(e.node, name, value)
}

func (e *Element) AddClass(names ...string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	classes := strings.Fields(attr(e.node, "class"))
	for _, name := range names {
		if !contains(classes, name) {
			classes = append(classes, name)
		}
	}
	setAttr(e.node, "class", strings.Join(classes, " "))
}

// HasClass reports whether the element carries the class.
func (e *Element) HasClass(name string) bool {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return contains(strings.Fields(attr(e.node, "class")), name)
}

func (e *Element) SetStyle(property, value string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	decls := parseStyle(attr(e.node, "style"))
	replaced := false
	for i := range decls {
		if decls[i][0] == property {
			decls[i][1] = value
			replaced = true
		}
	}
	if !replaced {
		decls = append(decls, [2]string{property, value})
	}
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d[0]+": "+d[1]+";")
	}
	setAttr(e.node, "style", strings.Join(parts, " "))
}

func (e *Element) Style(property string) string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	for _, d := range parseStyle(attr(e.node, "style")) {
		if d[0] == property {
			return d[1]
		}
	}
	return ""
}

func (e *Element) SetText(text string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	clearChildren(e.node)
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

func (e *Element) SetHTML(markup string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	clearChildren(e.node)
	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		e.node.AppendChild(&html.Node{Type: html.TextNode, Data: markup})
		return
	}
	for _, n := range nodes {
		e.node.AppendChild(n)
	}
}

func (e *Element) AppendChild(child surface.Element) {
	c, ok := child.(*Element)
	if !ok {
		return
	}
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	if c.node.Parent != nil {
		c.node.Parent.RemoveChild(c.node)
	}
	e.node.AppendChild(c.node)
}

func (e *Element) Remove() {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	if e.node.Parent != nil {
		e.node.Parent.RemoveChild(e.node)
	}
}

func (e *Element) Clear() {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	clearChildren(e.node)
}

func (e *Element) On(event string, fn func(surface.Event)) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	byType := e.doc.listeners[e.node]
	if byType == nil {
		byType = make(map[string][]func(surface.Event))
		e.doc.listeners[e.node] = byType
	}
	byType[event] = append(byType[event], fn)
}

func (e *Element) Focus() {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	e.doc.focused = e.node
}

func (e *Element) Value() string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return e.doc.values[e.node]
}

func (e *Element) SetValue(value string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	e.doc.values[e.node] = value
}

func (e *Element) ScrollToBottom() {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	e.doc.scrolls[e.node]++
}

// Scrolls returns how many times the element was scrolled to the bottom.
func (e *Element) Scrolls() int {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return e.doc.scrolls[e.node]
}

// Children returns the element children in document order.
func (e *Element) Children() []*Element {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, &Element{doc: e.doc, node: c})
		}
	}
	return out
}

// Text returns the concatenated text content.
func (e *Element) Text() string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	var sb strings.Builder
	walk(e.node, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		return true
	})
	return sb.String()
}

// InnerHTML renders the children of the element.
func (e *Element) InnerHTML() string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	var buf bytes.Buffer
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

// OuterHTML renders the element itself.
func (e *Element) OuterHTML() string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	var buf bytes.Buffer
	_ = html.Render(&buf, e.node)
	return buf.String()
}

func setAttr(n *html.Node, name, value string) {
	for i := range n.Attr {
		if n.Attr[i].Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

func clearChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

func parseStyle(style string) [][2]string {
	var decls [][2]string
	for _, part := range strings.Split(style, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		decls = append(decls, [2]string{strings.TrimSpace(prop), strings.TrimSpace(value)})
	}
	return decls
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
