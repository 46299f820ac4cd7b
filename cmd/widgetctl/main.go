// Command widgetctl drives the chat widget engine from a terminal: it mounts
// the widget into an in-memory page and talks to the assistant exactly like
// the browser build does.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/iafluence/chatwidget/internal/domain"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:           "widgetctl",
	Short:         "Run the chat widget against an assistant endpoint",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	flagServerURL string
	flagClientID  string
	flagHostURL   string
	flagAttrs     []string
	flagVerbose   bool
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagServerURL, "server-url", os.Getenv("CHATWIDGET_ASSISTANT_SERVER_URL"), "assistant base URL (from env CHATWIDGET_ASSISTANT_SERVER_URL if set)")
	flags.StringVar(&flagClientID, "client-id", "", "client identifier sent with every request")
	flags.StringVar(&flagHostURL, "host-url", "", "optional widget host server to fetch the client's base configuration from")
	flags.StringArrayVar(&flagAttrs, "attr", nil, "mount attribute override as key=value, e.g. chatbot-name=Ada; repeatable")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "log engine diagnostics to stderr")

	rootCmd.AddCommand(chatCmd, renderCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "widgetctl:", err)
		os.Exit(1)
	}
}

func newLogger() (*zap.Logger, error) {
	if !flagVerbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

// parseAttrs turns key=value pairs into mount attributes. Keys may omit the
// data- prefix.
func parseAttrs(pairs []string) (map[string]string, error) {
	known := make(map[string]bool, len(domain.OverrideAttributes))
	for _, name := range domain.OverrideAttributes {
		known[name] = true
	}

	attrs := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --attr %q: expected key=value", pair)
		}
		key = strings.TrimSpace(key)
		if !strings.HasPrefix(key, "data-") {
			key = "data-" + key
		}
		if !known[key] {
			return nil, fmt.Errorf("unknown mount attribute %q", key)
		}
		attrs[key] = value
	}
	return attrs, nil
}
