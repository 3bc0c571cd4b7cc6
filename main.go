package main

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"homework-notifier/config"
	"homework-notifier/notifier"
	"homework-notifier/poller"
	"homework-notifier/practicum"
)

// LevelCritical sits above slog.LevelError for failures that stop the process.
const LevelCritical = slog.LevelError + 4

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("can't load .env file: %v", err)
	}

	cfg := config.MustLoadConfig()
	setupLogger(os.Stdout, cfg.LogLevel)

	if err := cfg.CheckTokens(); err != nil {
		fatalErr("required credentials are missing", err)
	}

	p, err := newPoller(cfg, time.Now())
	if err != nil {
		fatalErr("can't create notifier", err)
	}

	slog.Info("start watching homework statuses",
		slog.Duration("retry_period", cfg.RetryPeriod), slog.Int64("from_date", p.Timestamp()))
	if !cfg.AdvanceFromDate {
		slog.Warn("from_date stays at the start time for every request; set advance_from_date to follow current_date")
	}

	if err := p.Run(ctx); err != nil {
		fatalErr("poller stopped", err)
	}

	slog.Info("done")
}

func newPoller(cfg *config.Config, now time.Time) (*poller.Poller, error) {
	tg, err := notifier.NewTelegram(cfg.TelegramAPIURL, cfg.TelegramToken, cfg.TelegramChatID)
	if err != nil {
		return nil, err
	}
	channels := notifier.Multi{tg}
	if cfg.NtfyTopic != "" {
		channels = append(channels, notifier.NewNtfy(cfg.NtfyURL, cfg.NtfyTopic))
	}

	client := practicum.NewClient(cfg.Endpoint, cfg.PracticumToken, cfg.RequestTimeout)
	return poller.New(cfg, client, channels, now), nil
}

func fatalErr(message string, err error) {
	slog.Log(context.Background(), LevelCritical, message, slog.Any("error", err))
	os.Exit(1)
}

func setupLogger(w io.Writer, level string) *slog.Logger {
	envLogLevel := strings.ToLower(level)
	var slogLevel slog.Level
	err := slogLevel.UnmarshalText([]byte(envLogLevel))
	if err != nil {
		log.Printf("unknown log level %q, falling back to debug", envLogLevel)
		slogLevel = slog.LevelDebug
	}
	slog.SetLogLoggerLevel(slogLevel)

	replaceAttrs := func(groups []string, a slog.Attr) slog.Attr {
		switch a.Key {
		case slog.SourceKey:
			if source, ok := a.Value.Any().(*slog.Source); ok {
				source.File = filepath.Base(source.File)
			}
		case slog.LevelKey:
			if lvl, ok := a.Value.Any().(slog.Level); ok && lvl >= LevelCritical {
				return slog.String(slog.LevelKey, "CRT")
			}
		}
		return a
	}

	logger := slog.New(tint.NewHandler(w, &tint.Options{
		AddSource:   true,
		Level:       slogLevel,
		ReplaceAttr: replaceAttrs,
		TimeFormat:  time.DateTime,
		NoColor:     w != os.Stdout,
	}))

	slog.SetDefault(logger)
	logger.Debug("debug messages are enabled")

	return logger
}
