package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/sjt-catalog/internal/catalog"
	"github.com/handiism/sjt-catalog/internal/config"
	"github.com/handiism/sjt-catalog/internal/contact"
	"github.com/handiism/sjt-catalog/internal/server"
)

func main() {
	var (
		configFlag = flag.String("config", "", "Path to config file (json, yaml or toml)")
		addrFlag   = flag.String("addr", "", "Listen address (overrides config)")
		outboxFlag = flag.String("outbox", "", "SQLite outbox path; messages are only logged when empty (overrides config)")
	)

	flag.Parse()

	settings, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *addrFlag != "" {
		settings.RelayAddr = *addrFlag
	}
	if *outboxFlag != "" {
		settings.OutboxPath = *outboxFlag
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: settings.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var mailer contact.Mailer = contact.NewLogMailer(logger)
	if settings.OutboxPath != "" {
		outbox, err := contact.OpenOutbox(settings.OutboxPath)
		if err != nil {
			slog.Error("outbox", "path", settings.OutboxPath, "error", err)
			os.Exit(1)
		}
		defer outbox.Close()
		mailer = outbox
		slog.Info("storing messages in outbox", "path", settings.OutboxPath)
	}

	relay := contact.NewRelay(mailer, contact.RelayConfig{
		To:            settings.MailTo,
		From:          settings.MailFrom,
		SubjectPrefix: settings.SubjectPrefix,
		Redirect:      settings.RedirectTarget,
	}, logger)

	var data catalog.Source
	if settings.DataSource != "" {
		data = catalog.FileSource{Path: settings.DataSource}
	}

	if err := server.ListenAndServe(ctx, settings.RelayAddr, server.NewRouter(relay, data, logger), logger); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
