package main

import (
	"context"

	"github.com/iafluence/chatwidget/internal/widget"
	"github.com/spf13/cobra"
)

var flagRenderOpen bool

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the page with the widget rendered into it",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		attrs, err := parseAttrs(flagAttrs)
		if err != nil {
			return err
		}
		base, err := baseConfig(context.Background())
		if err != nil {
			return err
		}

		page := newPage(attrs)
		w, err := widget.Init(page, base, widget.Options{
			Logger:    logger,
			Scheduler: widget.HeldScheduler{},
		})
		if err != nil {
			return err
		}
		defer w.Destroy()
		if flagRenderOpen {
			w.Open()
		}
		return page.Render(cmd.OutOrStdout())
	},
}

func init() {
	renderCmd.Flags().BoolVar(&flagRenderOpen, "open", false, "render with the chat panel open")
}
