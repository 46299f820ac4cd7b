package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/iafluence/chatwidget/internal/widget"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the assistant through the widget engine",
	Long: `Reads one message per line from stdin and prints the assistant's reply.
Failed turns print the same apology the widget shows in the page.`,
	RunE: runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	attrs, err := parseAttrs(flagAttrs)
	if err != nil {
		return err
	}
	base, err := baseConfig(ctx)
	if err != nil {
		return err
	}

	w, err := widget.Init(newPage(attrs), base, widget.Options{Logger: logger})
	if err != nil {
		return err
	}
	defer w.Destroy()
	w.Open()

	cfg := w.Config()
	logger.Debug("widget ready",
		zap.String("session_id", w.SessionID()),
		zap.String("server_url", cfg.ServerURL),
	)

	out := cmd.OutOrStdout()
	for _, msg := range w.Conversation() {
		fmt.Fprintf(out, "%s: %s\n", cfg.ChatbotName, msg.Content)
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		fmt.Fprint(out, "> ")
		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case l, ok := <-lines:
			if !ok {
				return nil
			}
			line = l
		}

		turn, ok := w.Send(line)
		if !ok {
			continue
		}
		res, err := turn.Wait(ctx)
		if err != nil {
			fmt.Fprintln(out)
			return nil
		}
		fmt.Fprintf(out, "%s: %s\n", cfg.ChatbotName, strings.TrimSpace(res.Reply.Content))
	}
}
