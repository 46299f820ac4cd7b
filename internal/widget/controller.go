package widget

import (
	"fmt"
	"html"
	"time"

	"github.com/iafluence/chatwidget/internal/domain"
	"github.com/iafluence/chatwidget/internal/surface"
)

// Parts of the widget tree. Each rendered part gets the id "<mount id>-<part>".
const (
	PartButton   = "button"
	PartWindow   = "window"
	PartHeader   = "header"
	PartClose    = "close"
	PartMessages = "messages"
	PartFooter   = "footer"
	PartInput    = "input"
	PartSend     = "send"
)

// ElementID returns the id of a widget part rendered under mountID.
func ElementID(mountID, part string) string {
	return mountID + "-" + part
}

const (
	chatIconPath  = "M12 2C6.48 2 2 6.48 2 12s4.48 10 10 10 10-4.48 10-10S17.52 2 12 2zm0 18c-4.41 0-8-3.59-8-8s3.59-8 8-8 8 3.59 8 8-3.59 8-8 8zm-1-13h2v6h-2zm0 8h2v2h-2z"
	closeIconPath = "M19 6.41L17.59 5 12 10.59 6.41 5 5 6.41 10.59 12 5 17.59 6.41 19 12 13.41 17.59 19 19 17.59 13.41 12z"
	sendIconPath  = "M2.01 21L23 12 2.01 3 2 10l15 2-15 2z"
)

// Handlers are the widget callbacks wired to UI events.
type Handlers struct {
	Toggle func()
	Close  func()
	// Submit sends the current content of the input field.
	Submit func()

	// SubmitText sends the input value captured when the event fired.
	SubmitText func(text string)
}

// Controller owns the widget's subtree under the mount point. It holds no
// lock of its own: callers serialize access.
type Controller struct {
	surface surface.Surface
	mount   surface.Element
	mountID string
	cfg     domain.WidgetConfig
	now     func() time.Time

	placeholder  string
	brandingName string
	brandingURL  string

	button   surface.Element
	window   surface.Element
	messages surface.Element
	input    surface.Element

	rendered   bool
	loadingSeq uint64
}

func newController(s surface.Surface, mount surface.Element, cfg domain.WidgetConfig, opts Options) *Controller {
	return &Controller{
		surface:      s,
		mount:        mount,
		mountID:      opts.MountID,
		cfg:          cfg,
		now:          opts.Now,
		placeholder:  opts.Placeholder,
		brandingName: opts.BrandingName,
		brandingURL:  opts.BrandingURL,
	}
}

// Render builds the button and panel once and wires h to their events.
// It reports whether this call did the rendering.
func (c *Controller) Render(h Handlers, open bool) bool {
	if c.rendered {
		return false
	}
	cfg := c.cfg
	pos := string(cfg.Position)

	c.button = c.create("div", PartButton, "chatwidget-button", "chatwidget-button-"+pos)
	c.button.SetStyle("background-color", cfg.PrimaryColor)
	c.button.SetHTML(`<div class="chatwidget-button-icon">` + icon(chatIconPath, cfg.SecondaryColor, 24) + `</div>`)

	c.window = c.create("div", PartWindow, "chatwidget-window", "chatwidget-window-"+pos)
	c.SetVisible(open)

	header := c.create("div", PartHeader, "chatwidget-header")
	header.SetStyle("background-color", cfg.PrimaryColor)
	header.SetStyle("color", cfg.SecondaryColor)
	header.AppendChild(c.logo())
	title := c.create("div", "", "chatwidget-title")
	title.SetText(cfg.ChatbotName)
	header.AppendChild(title)
	closeButton := c.create("div", PartClose, "chatwidget-close")
	closeButton.SetHTML(icon(closeIconPath, cfg.SecondaryColor, 18))
	header.AppendChild(closeButton)

	c.messages = c.create("div", PartMessages, "chatwidget-messages")

	footer := c.create("div", PartFooter, "chatwidget-footer")
	c.input = c.create("input", PartInput, "chatwidget-input")
	c.input.SetAttr("type", "text")
	c.input.SetAttr("placeholder", c.placeholder)
	send := c.create("button", PartSend, "chatwidget-send")
	send.SetStyle("background-color", cfg.PrimaryColor)
	send.SetStyle("color", cfg.SecondaryColor)
	send.SetHTML(icon(sendIconPath, cfg.SecondaryColor, 18))
	footer.AppendChild(c.input)
	footer.AppendChild(send)
	if cfg.ShowBranding {
		footer.AppendChild(c.branding())
	}

	c.window.AppendChild(header)
	c.window.AppendChild(c.messages)
	c.window.AppendChild(footer)
	c.mount.AppendChild(c.button)
	c.mount.AppendChild(c.window)

	c.button.On("click", func(surface.Event) { h.Toggle() })
	closeButton.On("click", func(surface.Event) { h.Close() })
	send.On("click", func(surface.Event) { h.Submit() })
	c.input.On("keypress", func(ev surface.Event) {
		if ev.Key == "Enter" {
			h.SubmitText(ev.Value)
		}
	})

	c.rendered = true
	return true
}

// SetVisible shows or hides the panel.
func (c *Controller) SetVisible(open bool) {
	if c.window == nil {
		return
	}
	if open {
		c.window.SetStyle("display", "flex")
	} else {
		c.window.SetStyle("display", "none")
	}
}

// FocusInput moves focus to the text field.
func (c *Controller) FocusInput() {
	if c.input != nil {
		c.input.Focus()
	}
}

// InputValue returns the current text of the input field.
func (c *Controller) InputValue() string {
	if c.input == nil {
		return ""
	}
	return c.input.Value()
}

// ClearInput empties the input field.
func (c *Controller) ClearInput() {
	if c.input != nil {
		c.input.SetValue("")
	}
}

// AppendMessage renders msg at the bottom of the message list.
func (c *Controller) AppendMessage(msg domain.Message) {
	if !c.attached() {
		return
	}
	el := c.create("div", "", "chatwidget-message", "chatwidget-message-"+string(msg.Sender))
	el.SetID(msg.ID)
	el.SetHTML(`<div class="chatwidget-message-content">` + FormatContent(msg.Content) + `</div>` +
		`<div class="chatwidget-message-time">` + FormatTime(c.messageTime(msg)) + `</div>`)
	c.messages.AppendChild(el)
	c.messages.ScrollToBottom()
}

// AddLoading renders a loading placeholder and returns its id.
func (c *Controller) AddLoading() string {
	c.loadingSeq++
	id := fmt.Sprintf("%s-loading-%d-%d", c.mountID, c.now().UnixMilli(), c.loadingSeq)
	if !c.attached() {
		return id
	}
	el := c.create("div", "", "chatwidget-message", "chatwidget-message-bot")
	el.SetID(id)
	el.SetHTML(`<div class="chatwidget-loading"><span></span><span></span><span></span></div>`)
	c.messages.AppendChild(el)
	c.messages.ScrollToBottom()
	return id
}

// RemoveLoading removes the placeholder, if it is still on the page.
func (c *Controller) RemoveLoading(id string) {
	if el, ok := c.surface.ElementByID(id); ok {
		el.Remove()
	}
}

// Teardown detaches everything the controller added to the mount point.
func (c *Controller) Teardown() {
	if !c.rendered {
		return
	}
	c.button.Remove()
	c.window.Remove()
}

func (c *Controller) attached() bool {
	if !c.rendered {
		return false
	}
	_, ok := c.surface.ElementByID(ElementID(c.mountID, PartMessages))
	return ok
}

func (c *Controller) messageTime(msg domain.Message) time.Time {
	if t, err := time.Parse(time.RFC3339, msg.Timestamp); err == nil {
		return t.Local()
	}
	return c.now()
}

func (c *Controller) create(tag, part string, classes ...string) surface.Element {
	el := c.surface.CreateElement(tag)
	if part != "" {
		el.SetID(ElementID(c.mountID, part))
	}
	if len(classes) > 0 {
		el.AddClass(classes...)
	}
	return el
}

func (c *Controller) logo() surface.Element {
	if c.cfg.LogoURL != "" {
		img := c.create("img", "", "chatwidget-logo")
		img.SetAttr("src", c.cfg.LogoURL)
		img.SetAttr("alt", "Logo")
		return img
	}
	el := c.create("div", "", "chatwidget-default-logo")
	el.SetHTML(icon(chatIconPath, c.cfg.SecondaryColor, 24))
	return el
}

func (c *Controller) branding() surface.Element {
	el := c.create("div", "", "chatwidget-branding")
	el.SetHTML(fmt.Sprintf(`Powered by <a href="%s" target="_blank" rel="noopener noreferrer">%s</a>`,
		html.EscapeString(c.brandingURL), html.EscapeString(c.brandingName)))
	return el
}

func icon(path, fill string, size int) string {
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" fill="%s" width="%d" height="%d"><path d="%s"></path></svg>`,
		html.EscapeString(fill), size, size, path)
}
