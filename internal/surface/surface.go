// Package surface defines the rendering capabilities the widget needs from a
// host page. Implementations live in subpackages: memdom keeps an in-memory
// HTML tree, jsdom drives a browser document from WebAssembly.
package surface

// Event is a UI event delivered to a listener.
type Event struct {
	Type string
	Key  string
	// Value is the target's input value when the event fired.
	Value string
}

// Element is a node of the host page.
type Element interface {
	ID() string
	SetID(id string)
	Attr(name string) (string, bool)
	SetAttr(name, value string)
	AddClass(names ...string)
	SetStyle(property, value string)
	Style(property string) string
	// SetText replaces the children with a single text node.
	SetText(text string)
	// SetHTML replaces the children with trusted markup.
	SetHTML(markup string)
	AppendChild(child Element)
	// Remove detaches the element from its parent. Detached elements are a no-op.
	Remove()
	Clear()
	On(event string, fn func(Event))
	Focus()
	Value() string
	SetValue(value string)
	ScrollToBottom()
}

// Surface is the host page as seen by the widget.
type Surface interface {
	// ElementByID only finds elements attached to the page.
	ElementByID(id string) (Element, bool)
	CreateElement(tag string) Element
}
