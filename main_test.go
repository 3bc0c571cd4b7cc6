package main

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"homework-notifier/config"
)

func TestSetupLogger_CriticalLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := setupLogger(&buf, "info")
	logger.Debug("hidden")
	logger.Log(context.Background(), LevelCritical, "missing token")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message written at info level: %q", out)
	}
	if !strings.Contains(out, "CRT") || !strings.Contains(out, "missing token") {
		t.Errorf("critical message not rendered: %q", out)
	}
}

func TestSetupLogger_UnknownLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := setupLogger(&buf, "verbose")
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("unknown level should fall back to debug")
	}
}

func TestNewPoller(t *testing.T) {
	cfg := &config.Config{
		PracticumToken: "p",
		TelegramToken:  "123:abc",
		TelegramChatID: "42",
		TelegramAPIURL: "http://127.0.0.1:1",
		Endpoint:       config.DefaultEndpoint,
		RetryPeriod:    time.Minute,
		NtfyTopic:      "homework",
		NtfyURL:        "http://127.0.0.1:1",
	}
	now := time.Unix(1700000000, 0)

	p, err := newPoller(cfg, now)
	if err != nil {
		t.Fatalf("newPoller: %v", err)
	}
	if p.Timestamp() != now.Unix() {
		t.Errorf("timestamp = %d", p.Timestamp())
	}

	cfg.TelegramToken = ""
	if _, err := newPoller(cfg, now); err == nil {
		t.Error("expected error without telegram token")
	}
}
