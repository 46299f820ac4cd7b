// Package widget is the session and messaging engine of the embeddable chat
// widget: configuration resolution, conversation state, the open/close
// lifecycle and the request/response pipeline talking to the assistant.
//
// The engine renders through surface.Surface, so the same code drives a
// browser page (WebAssembly) or an in-memory document.
package widget

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/iafluence/chatwidget/internal/domain"
	"github.com/iafluence/chatwidget/internal/surface"
	"go.uber.org/zap"
)

// Options tune a widget instance. Zero values pick defaults.
type Options struct {
	// MountID is the id of the host element to render into.
	MountID string
	// Transport overrides the HTTP transport built from the configuration.
	Transport Transport
	// HTTPClient is used by the default transport.
	HTTPClient *http.Client
	// Logger is the diagnostic channel for configuration and transport faults.
	Logger       *zap.Logger
	Scheduler    Scheduler
	NewSessionID func() string
	Now          func() time.Time

	Placeholder  string
	BrandingName string
	BrandingURL  string
}

func (o Options) withDefaults() Options {
	if o.MountID == "" {
		o.MountID = domain.DefaultMountID
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Scheduler == nil {
		o.Scheduler = clockScheduler{}
	}
	if o.NewSessionID == nil {
		o.NewSessionID = NewSessionID
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Placeholder == "" {
		o.Placeholder = "Type your message..."
	}
	if o.BrandingName == "" {
		o.BrandingName = "ChatWidget"
	}
	if o.BrandingURL == "" {
		o.BrandingURL = "https://github.com/iafluence/chatwidget"
	}
	return o
}

// state is shared by the controller and the pipeline. mu plays the page's
// UI thread: every DOM mutation, store access and state change holds it.
type state struct {
	mu        sync.Mutex
	cfg       domain.WidgetConfig
	sessionID string
	store     *Store
	logger    *zap.Logger
	isOpen    bool
	destroyed bool
}

// Widget is one chat widget attached to a host page.
type Widget struct {
	st       *state
	ui       *Controller
	pipeline *Pipeline
	autoOpen Timer
}

// New resolves the configuration against the mount element's attributes and
// prepares the widget. Nothing is rendered until Render. It fails with
// domain.ErrMountPointNotFound when the page has no mount element.
func New(s surface.Surface, base domain.WidgetConfig, opts Options) (*Widget, error) {
	opts = opts.withDefaults()

	mount, ok := s.ElementByID(opts.MountID)
	if !ok {
		opts.Logger.Error("widget mount point not found", zap.String("mount_id", opts.MountID))
		return nil, fmt.Errorf("%w: #%s", domain.ErrMountPointNotFound, opts.MountID)
	}

	cfg := ResolveConfig(base, MountAttributes(mount))
	st := &state{
		cfg:       cfg,
		sessionID: opts.NewSessionID(),
		store:     NewStore(opts.Now),
		logger:    opts.Logger.With(zap.String("component", "chatwidget")),
	}

	transport := opts.Transport
	if transport == nil {
		transport = NewHTTPTransport(cfg.ServerURL, opts.HTTPClient)
	}

	w := &Widget{st: st}
	w.ui = newController(s, mount, cfg, opts)
	w.pipeline = newPipeline(st, w.ui, transport)

	if cfg.AutoOpen {
		w.autoOpen = opts.Scheduler.AfterFunc(time.Duration(cfg.DelayAutoOpen)*time.Millisecond, w.Open)
	}
	return w, nil
}

// Init creates and renders a widget.
func Init(s surface.Surface, base domain.WidgetConfig, opts Options) (*Widget, error) {
	w, err := New(s, base, opts)
	if err != nil {
		return nil, err
	}
	w.Render()
	return w, nil
}

// Render builds the UI and shows the welcome message. Later calls do nothing.
func (w *Widget) Render() {
	w.st.mu.Lock()
	defer w.st.mu.Unlock()
	if w.st.destroyed {
		return
	}

	rendered := w.ui.Render(Handlers{
		Toggle:     w.Toggle,
		Close:      w.Close,
		Submit:     func() { w.pipeline.Submit() },
		SubmitText: func(text string) { w.pipeline.Send(text) },
	}, w.st.isOpen)
	if rendered && w.st.cfg.WelcomeMessage != "" {
		w.ui.AppendMessage(w.st.store.Append(domain.SenderBot, w.st.cfg.WelcomeMessage))
	}
}

// Open shows the panel and focuses the input. No-op when already open.
func (w *Widget) Open() {
	w.st.mu.Lock()
	defer w.st.mu.Unlock()
	w.openLocked()
}

// Close hides the panel. No-op when already closed.
func (w *Widget) Close() {
	w.st.mu.Lock()
	defer w.st.mu.Unlock()
	w.closeLocked()
}

// Toggle opens a closed panel and closes an open one.
func (w *Widget) Toggle() {
	w.st.mu.Lock()
	defer w.st.mu.Unlock()
	if w.st.isOpen {
		w.closeLocked()
	} else {
		w.openLocked()
	}
}

func (w *Widget) openLocked() {
	if w.st.destroyed || w.st.isOpen {
		return
	}
	w.st.isOpen = true
	w.ui.SetVisible(true)
	w.ui.FocusInput()
}

func (w *Widget) closeLocked() {
	if w.st.destroyed || !w.st.isOpen {
		return
	}
	w.st.isOpen = false
	w.ui.SetVisible(false)
}

// IsOpen reports the panel state.
func (w *Widget) IsOpen() bool {
	w.st.mu.Lock()
	defer w.st.mu.Unlock()
	return w.st.isOpen
}

// Send starts a turn with raw as the user message. Blank input is ignored
// and reported with false.
func (w *Widget) Send(raw string) (*Turn, bool) {
	return w.pipeline.Send(raw)
}

// Wait blocks until all in-flight turns have completed.
func (w *Widget) Wait() {
	w.pipeline.Wait()
}

// Conversation returns the messages exchanged so far, in order.
func (w *Widget) Conversation() []domain.Message {
	w.st.mu.Lock()
	defer w.st.mu.Unlock()
	return w.st.store.Snapshot()
}

// SessionID returns the identifier sent with every request of this instance.
func (w *Widget) SessionID() string {
	return w.st.sessionID
}

// Config returns the resolved configuration.
func (w *Widget) Config() domain.WidgetConfig {
	return w.st.cfg
}

// Destroy cancels a pending auto-open and removes the widget from the page.
// In-flight turns still complete but no longer touch the page.
func (w *Widget) Destroy() {
	w.st.mu.Lock()
	defer w.st.mu.Unlock()
	if w.st.destroyed {
		return
	}
	w.st.destroyed = true
	if w.autoOpen != nil {
		w.autoOpen.Stop()
	}
	w.ui.Teardown()
}
