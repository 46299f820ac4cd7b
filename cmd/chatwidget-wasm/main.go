//go:build js && wasm

// Command chatwidget-wasm is the browser build of the widget. The host page
// sets window.chatwidgetOptions to the base configuration served by
// /api/widgets/config/:client_id and provides the mount element.
package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/iafluence/chatwidget/internal/domain"
	"github.com/iafluence/chatwidget/internal/surface/jsdom"
	"github.com/iafluence/chatwidget/internal/widget"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	base := domain.DefaultWidgetConfig()
	if opts := js.Global().Get("chatwidgetOptions"); opts.Truthy() {
		raw := js.Global().Get("JSON").Call("stringify", opts).String()
		if err := json.Unmarshal([]byte(raw), &base); err != nil {
			logger.Error("invalid chatwidgetOptions", zap.Error(err))
			return
		}
	}

	doc := jsdom.New()
	w, err := widget.Init(doc, base, widget.Options{Logger: logger})
	if err != nil {
		// Already logged; the host page keeps running without a widget.
		return
	}

	api := map[string]any{
		"open":   js.FuncOf(func(js.Value, []js.Value) any { go w.Open(); return nil }),
		"close":  js.FuncOf(func(js.Value, []js.Value) any { go w.Close(); return nil }),
		"toggle": js.FuncOf(func(js.Value, []js.Value) any { go w.Toggle(); return nil }),
		"destroy": js.FuncOf(func(js.Value, []js.Value) any {
			go func() {
				w.Destroy()
				doc.Release()
			}()
			return nil
		}),
	}
	js.Global().Set("chatwidget", js.ValueOf(api))

	select {}
}
