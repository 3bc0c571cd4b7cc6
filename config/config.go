package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	"github.com/spf13/viper"

	"homework-notifier/model"
)

const DefaultEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"

// Config is built once in main and passed to every component by pointer.
// Nothing reads the environment after Load returns.
type Config struct {
	PracticumToken  string        `mapstructure:"practicum_token"`
	TelegramToken   string        `mapstructure:"telegram_token"`
	TelegramChatID  string        `mapstructure:"telegram_chat_id"`
	TelegramAPIURL  string        `mapstructure:"telegram_api_url"`
	Endpoint        string        `mapstructure:"endpoint"`
	RetryPeriod     time.Duration `mapstructure:"retry_period"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	AdvanceFromDate bool          `mapstructure:"advance_from_date"`
	LogLevel        string        `mapstructure:"log_level"`
	NtfyTopic       string        `mapstructure:"ntfy_topic"`
	NtfyURL         string        `mapstructure:"ntfy_url"`
}

// credentials maps config keys to the environment variables they are read from.
var credentials = []struct {
	key  string
	envs []string
}{
	{"practicum_token", []string{"PRACTICUM_TOKEN"}},
	{"telegram_token", []string{"TELEGRAM_TOKEN", "BOT_TOKEN"}},
	{"telegram_chat_id", []string{"TELEGRAM_CHAT_ID", "CHAT_ID"}},
}

// Load reads defaults, an optional config.yaml from dir and the environment.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path.Join(dir))
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetDefault("endpoint", DefaultEndpoint)
	v.SetDefault("retry_period", 10*time.Minute)
	v.SetDefault("request_timeout", 30*time.Second)
	v.SetDefault("advance_from_date", false)
	v.SetDefault("log_level", "debug")
	v.SetDefault("ntfy_topic", "")
	v.SetDefault("ntfy_url", "https://ntfy.sh")
	v.SetDefault("telegram_api_url", "https://api.telegram.org")

	for _, c := range credentials {
		if err := v.BindEnv(append([]string{c.key}, c.envs...)...); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", c.key, err)
		}
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.RetryPeriod <= 0 {
		return nil, fmt.Errorf("retry_period must be positive, got %s", cfg.RetryPeriod)
	}
	if cfg.RequestTimeout < 0 {
		return nil, fmt.Errorf("request_timeout must not be negative, got %s", cfg.RequestTimeout)
	}

	return &cfg, nil
}

func MustLoadConfig() *Config {
	cfg, err := Load(".")
	if err != nil {
		slog.Error("can't initialize config.", slog.String("err", err.Error()))
		os.Exit(1)
	}

	return cfg
}

// CheckTokens reports every required secret that is missing or blank.
func (c *Config) CheckTokens() error {
	values := map[string]string{
		"practicum_token":  c.PracticumToken,
		"telegram_token":   c.TelegramToken,
		"telegram_chat_id": c.TelegramChatID,
	}

	var missing []string
	for _, cred := range credentials {
		if strings.TrimSpace(values[cred.key]) == "" {
			missing = append(missing, cred.envs[0])
		}
	}
	if len(missing) == 0 {
		return nil
	}

	return model.NewError(model.KindMissingCredential,
		"missing environment variables: "+strings.Join(missing, ", "), nil)
}
