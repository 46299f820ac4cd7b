package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/iafluence/chatwidget/internal/config"
	"github.com/iafluence/chatwidget/internal/domain"
	"github.com/iafluence/chatwidget/internal/repository"
	"github.com/iafluence/chatwidget/internal/surface/memdom"
	"github.com/iafluence/chatwidget/internal/widget"
	"go.uber.org/zap"
)

// Asset paths served by the api package.
const (
	ScriptPath     = "/widgets/js/chatbot-widget.js"
	StylesheetPath = "/widgets/css/chatbot-widget.css"
)

// WidgetService feeds embedded widgets: base configuration, mount markup and previews
type WidgetService struct {
	cfg        *config.Config
	clientRepo *repository.ClientRepository
	logger     *zap.Logger
}

// NewWidgetService creates a new widget service
func NewWidgetService(
	cfg *config.Config,
	clientRepo *repository.ClientRepository,
	logger *zap.Logger,
) *WidgetService {
	return &WidgetService{
		cfg:        cfg,
		clientRepo: clientRepo,
		logger:     logger,
	}
}

// GetWidgetConfig returns the base configuration object for a client's widgets
func (s *WidgetService) GetWidgetConfig(ctx context.Context, clientID string) (*domain.WidgetConfig, error) {
	client, err := s.clientRepo.Get(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	cfg := client.Options
	cfg.ClientID = client.ID
	cfg.ServerURL = client.ServerURL
	if cfg.ServerURL == "" {
		cfg.ServerURL = s.cfg.Assistant.ServerURL
	}
	return &cfg, nil
}

// EmbedSnippet returns the markup a host page includes to embed the widget:
// the mount element carrying the client's options, the stylesheet and the
// scripts booting the widget with its base configuration.
func (s *WidgetService) EmbedSnippet(ctx context.Context, clientID string) (string, error) {
	base, err := s.GetWidgetConfig(ctx, clientID)
	if err != nil {
		return "", err
	}

	doc := memdom.New()
	parts := []*memdom.Element{mountElement(doc, *base)}
	parts = append(parts, s.assetElements(doc, *base)...)

	var sb strings.Builder
	for _, el := range parts {
		sb.WriteString(el.OuterHTML())
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// Preview renders a standalone page with the widget as it first appears.
func (s *WidgetService) Preview(ctx context.Context, clientID string, open bool) (string, error) {
	base, err := s.GetWidgetConfig(ctx, clientID)
	if err != nil {
		return "", err
	}

	doc := memdom.New()
	title := doc.NewElement("title")
	title.SetText(base.ChatbotName + " preview")
	doc.Head().AppendChild(title)
	link := doc.NewElement("link")
	link.SetAttr("rel", "stylesheet")
	link.SetAttr("href", s.assetURL(StylesheetPath))
	doc.Head().AppendChild(link)
	if style := customStyle(doc, base.CustomCSS); style != nil {
		doc.Head().AppendChild(style)
	}
	doc.Body().AppendChild(mountElement(doc, *base))

	// Previews are static: a pending auto-open would fire on a page nobody sees.
	w, err := widget.Init(doc, *base, widget.Options{
		Logger:    s.logger,
		Scheduler: widget.HeldScheduler{},
	})
	if err != nil {
		return "", fmt.Errorf("failed to render preview: %w", err)
	}
	if open {
		w.Open()
	}

	return doc.String(), nil
}

func (s *WidgetService) assetElements(doc *memdom.Document, base domain.WidgetConfig) []*memdom.Element {
	link := doc.NewElement("link")
	link.SetAttr("rel", "stylesheet")
	link.SetAttr("href", s.assetURL(StylesheetPath))

	// json.Marshal escapes <, > and &, so the payload cannot close the script.
	payload, _ := json.Marshal(base)
	options := doc.NewElement("script")
	options.SetText("window.chatwidgetOptions = " + string(payload) + ";")

	loader := doc.NewElement("script")
	loader.SetAttr("src", s.assetURL(ScriptPath))
	loader.SetAttr("defer", "")

	elements := []*memdom.Element{link}
	if style := customStyle(doc, base.CustomCSS); style != nil {
		elements = append(elements, style)
	}
	return append(elements, options, loader)
}

// customStyle wraps the client's CSS in a style element, or returns nil when
// there is none. Style content is raw text, so "<" is CSS-escaped to keep
// the rules from closing the element.
func customStyle(doc *memdom.Document, css string) *memdom.Element {
	css = strings.TrimSpace(css)
	if css == "" {
		return nil
	}
	style := doc.NewElement("style")
	style.SetID(domain.DefaultMountID + "-custom-css")
	style.SetText(strings.ReplaceAll(css, "<", `\3c `))
	return style
}

func (s *WidgetService) assetURL(path string) string {
	return strings.TrimRight(s.cfg.Server.BaseURL, "/") + path
}

// mountElement builds the host element the widget attaches to, with the
// options written as the data attributes the widget reads back.
func mountElement(doc *memdom.Document, opts domain.WidgetConfig) *memdom.Element {
	mount := doc.NewElement("div")
	mount.SetID(domain.DefaultMountID)
	mount.SetAttr(domain.AttrPosition, string(opts.Position))
	mount.SetAttr(domain.AttrPrimaryColor, opts.PrimaryColor)
	mount.SetAttr(domain.AttrSecondaryColor, opts.SecondaryColor)
	mount.SetAttr(domain.AttrChatbotName, opts.ChatbotName)
	mount.SetAttr(domain.AttrWelcomeMessage, opts.WelcomeMessage)
	mount.SetAttr(domain.AttrLogoURL, opts.LogoURL)
	mount.SetAttr(domain.AttrShowBranding, strconv.FormatBool(opts.ShowBranding))
	mount.SetAttr(domain.AttrAutoOpen, strconv.FormatBool(opts.AutoOpen))
	mount.SetAttr(domain.AttrDelayAutoOpen, strconv.Itoa(opts.DelayAutoOpen))
	return mount
}
