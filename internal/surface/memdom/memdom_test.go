package memdom

import (
	"strings"
	"testing"

	"github.com/iafluence/chatwidget/internal/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElementByIDOnlyFindsAttachedElements(t *testing.T) {
	doc := New()
	el := doc.NewElement("div")
	el.SetID("box")

	_, ok := doc.ElementByID("box")
	assert.False(t, ok)

	doc.Body().AppendChild(el)
	found, ok := doc.ElementByID("box")
	require.True(t, ok)
	assert.Equal(t, "box", found.ID())

	el.Remove()
	_, ok = doc.ElementByID("box")
	assert.False(t, ok)

	el.Remove()
}

func TestParseKeepsHostMarkup(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<html><body><div id="mount" data-position="top-left"></div></body></html>`))
	require.NoError(t, err)

	mount, ok := doc.ElementByID("mount")
	require.True(t, ok)
	v, ok := mount.Attr("data-position")
	assert.True(t, ok)
	assert.Equal(t, "top-left", v)

	_, ok = mount.Attr("data-missing")
	assert.False(t, ok)
}

func TestStylesAndClasses(t *testing.T) {
	doc := New()
	el := doc.NewElement("div")
	el.AddClass("a", "b")
	el.AddClass("a", "c")
	el.SetStyle("display", "none")
	el.SetStyle("color", "red")
	el.SetStyle("display", "flex")

	assert.True(t, el.HasClass("c"))
	assert.Equal(t, "flex", el.Style("display"))
	assert.Equal(t, "red", el.Style("color"))
	assert.Equal(t, `<div class="a b c" style="display: flex; color: red;"></div>`, el.OuterHTML())
}

func TestSetTextEscapesAndSetHTMLParses(t *testing.T) {
	doc := New()
	el := doc.NewElement("div")

	el.SetText("<b>x</b>")
	assert.Equal(t, "&lt;b&gt;x&lt;/b&gt;", el.InnerHTML())

	el.SetHTML(`a<br>b <a href="https://example.com">link</a>`)
	assert.Equal(t, `a<br/>b <a href="https://example.com">link</a>`, el.InnerHTML())
	assert.Equal(t, "ab link", el.Text())
}

func TestDispatchAndInput(t *testing.T) {
	doc := New()
	input := doc.NewElement("input")
	input.SetID("in")
	doc.Body().AppendChild(input)

	var keys, values []string
	input.On("keypress", func(ev surface.Event) {
		keys = append(keys, ev.Key)
		values = append(values, ev.Value)
	})

	assert.True(t, doc.Type("in", "hello"))
	assert.Equal(t, "hello", input.Value())
	assert.True(t, doc.Press("in", "Enter"))
	assert.False(t, doc.Press("missing", "Enter"))
	assert.True(t, doc.Dispatch("in", surface.Event{Type: "keypress", Key: "Enter", Value: "earlier"}))
	assert.Equal(t, []string{"Enter", "Enter"}, keys)
	assert.Equal(t, []string{"hello", "earlier"}, values)

	input.Focus()
	assert.Equal(t, "in", doc.FocusedID())
}

func TestClearAndScroll(t *testing.T) {
	doc := New()
	list := doc.NewElement("ul")
	list.AppendChild(doc.NewElement("li"))
	list.AppendChild(doc.NewElement("li"))
	require.Len(t, list.Children(), 2)

	list.ScrollToBottom()
	list.ScrollToBottom()
	assert.Equal(t, 2, list.Scrolls())

	list.Clear()
	assert.Empty(t, list.Children())
}
