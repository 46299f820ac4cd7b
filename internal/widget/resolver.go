package widget

import (
	"strconv"
	"strings"

	"github.com/iafluence/chatwidget/internal/domain"
	"github.com/iafluence/chatwidget/internal/surface"
)

// ResolveConfig merges per-page overrides, keyed by mount element attribute
// name, into base. Strings win when non-empty, the position only when it names
// a supported corner, booleans only on the literal
// "true", and the auto-open delay only when it parses as a non-negative integer.
// The transport fields are never overridden.
func ResolveConfig(base domain.WidgetConfig, overrides map[string]string) domain.WidgetConfig {
	cfg := base

	if pos := domain.Position(overrides[domain.AttrPosition]); pos.Valid() {
		cfg.Position = pos
	}
	overrideString(&cfg.PrimaryColor, overrides[domain.AttrPrimaryColor])
	overrideString(&cfg.SecondaryColor, overrides[domain.AttrSecondaryColor])
	overrideString(&cfg.ChatbotName, overrides[domain.AttrChatbotName])
	overrideString(&cfg.WelcomeMessage, overrides[domain.AttrWelcomeMessage])
	overrideString(&cfg.LogoURL, overrides[domain.AttrLogoURL])

	if overrides[domain.AttrShowBranding] == "true" {
		cfg.ShowBranding = true
	}
	if overrides[domain.AttrAutoOpen] == "true" {
		cfg.AutoOpen = true
	}
	if v, ok := overrides[domain.AttrDelayAutoOpen]; ok {
		if delay, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && delay >= 0 {
			cfg.DelayAutoOpen = delay
		}
	}

	return cfg
}

func overrideString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// MountAttributes collects the override attributes present on a mount element.
func MountAttributes(mount surface.Element) map[string]string {
	attrs := make(map[string]string, len(domain.OverrideAttributes))
	for _, name := range domain.OverrideAttributes {
		if v, ok := mount.Attr(name); ok {
			attrs[name] = v
		}
	}
	return attrs
}
