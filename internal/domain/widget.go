package domain

// Position is the corner of the host page the widget is pinned to.
type Position string

const (
	PositionBottomRight Position = "bottom-right"
	PositionBottomLeft  Position = "bottom-left"
	PositionTopRight    Position = "top-right"
	PositionTopLeft     Position = "top-left"
)

// Valid reports whether p is one of the four supported corners.
func (p Position) Valid() bool {
	switch p {
	case PositionBottomRight, PositionBottomLeft, PositionTopRight, PositionTopLeft:
		return true
	}
	return false
}

// WidgetConfig is the effective configuration of one widget instance.
// ServerURL and ClientID are transport fields; the rest drive rendering.
type WidgetConfig struct {
	ClientID       string   `json:"client_id" mapstructure:"client_id"`
	ServerURL      string   `json:"server_url" mapstructure:"server_url"`
	Position       Position `json:"position" mapstructure:"position"`
	PrimaryColor   string   `json:"primary_color" mapstructure:"primary_color"`
	SecondaryColor string   `json:"secondary_color" mapstructure:"secondary_color"`
	ChatbotName    string   `json:"chatbot_name" mapstructure:"chatbot_name"`
	WelcomeMessage string   `json:"welcome_message" mapstructure:"welcome_message"`
	LogoURL        string   `json:"logo_url,omitempty" mapstructure:"logo_url"`
	ShowBranding   bool     `json:"show_branding" mapstructure:"show_branding"`
	AutoOpen       bool     `json:"auto_open" mapstructure:"auto_open"`
	DelayAutoOpen  int      `json:"delay_auto_open" mapstructure:"delay_auto_open"`
	// CustomCSS is injected by the host page next to the widget stylesheet.
	CustomCSS      string   `json:"custom_css,omitempty" mapstructure:"custom_css"`
}

// Mount element attributes read by the widget at construction time.
const (
	AttrPosition       = "data-position"
	AttrPrimaryColor   = "data-primary-color"
	AttrSecondaryColor = "data-secondary-color"
	AttrChatbotName    = "data-chatbot-name"
	AttrWelcomeMessage = "data-welcome-message"
	AttrLogoURL        = "data-logo-url"
	AttrShowBranding   = "data-show-branding"
	AttrAutoOpen       = "data-auto-open"
	AttrDelayAutoOpen  = "data-delay-auto-open"
)

// OverrideAttributes lists every mount element attribute that can override the base configuration.
var OverrideAttributes = []string{
	AttrPosition,
	AttrPrimaryColor,
	AttrSecondaryColor,
	AttrChatbotName,
	AttrWelcomeMessage,
	AttrLogoURL,
	AttrShowBranding,
	AttrAutoOpen,
	AttrDelayAutoOpen,
}

// DefaultMountID is the id of the host-page element the widget attaches to.
const DefaultMountID = "chatwidget-container"

// DefaultWidgetConfig returns default widget configuration
func DefaultWidgetConfig() WidgetConfig {
	return WidgetConfig{
		Position:       PositionBottomRight,
		PrimaryColor:   "#4f46e5",
		SecondaryColor: "#ffffff",
		ChatbotName:    "AI Assistant",
		WelcomeMessage: "Hello! How can I help you today?",
		ShowBranding:   true,
		AutoOpen:       false,
		DelayAutoOpen:  5000,
	}
}
