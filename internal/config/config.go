package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// Config holds all application configuration. Every knob the pipeline
// uses is here; there are no hidden module-level constants.
type Config struct {
	Screen struct {
		StartDate      string  `yaml:"start_date"`
		EndDate        string  `yaml:"end_date"` // empty means today
		Confidence     float64 `yaml:"confidence"`
		Threshold      float64 `yaml:"threshold"`
		PageSize       int     `yaml:"page_size"`
		Workers        int     `yaml:"workers"`
		SymbolTimeout  int     `yaml:"symbol_timeout_seconds"`
		RequestTimeout int     `yaml:"request_timeout_seconds"`
		HistogramDir   string  `yaml:"histogram_dir"`
	} `yaml:"screen"`
	Source struct {
		Kind       string `yaml:"kind"` // "scrape" or "api"
		BaseURL    string `yaml:"base_url"`
		APIBaseURL string `yaml:"api_base_url"`
	} `yaml:"source"`
	Universe struct {
		TickersFile  string `yaml:"tickers_file"`
		MetadataFile string `yaml:"metadata_file"`
		MaxSymbols   int    `yaml:"max_symbols"`
	} `yaml:"universe"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		Cron string `yaml:"cron"` // empty means one-shot run
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SCREEN_CONFIDENCE"); v != "" {
		if c, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Screen.Confidence = c
		}
	}
	if v := os.Getenv("SCREEN_THRESHOLD"); v != "" {
		if t, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Screen.Threshold = t
		}
	}
	if v := os.Getenv("TICKERS_FILE"); v != "" {
		cfg.Universe.TickersFile = v
	}
	if v := os.Getenv("SCREEN_CRON"); v != "" {
		cfg.Schedule.Cron = v
	}

	// Defaults
	if cfg.Screen.Confidence == 0 {
		cfg.Screen.Confidence = 0.95
	}
	if cfg.Screen.Threshold == 0 {
		cfg.Screen.Threshold = -0.03
	}
	if cfg.Screen.PageSize == 0 {
		cfg.Screen.PageSize = 100
	}
	if cfg.Screen.Workers == 0 {
		cfg.Screen.Workers = 30
	}
	if cfg.Screen.SymbolTimeout == 0 {
		cfg.Screen.SymbolTimeout = 120
	}
	if cfg.Screen.RequestTimeout == 0 {
		cfg.Screen.RequestTimeout = 30
	}
	if cfg.Screen.StartDate == "" {
		cfg.Screen.StartDate = time.Now().AddDate(-10, 0, 0).Format(dateLayout)
	}
	if cfg.Source.Kind == "" {
		cfg.Source.Kind = "scrape"
	}
	if cfg.Universe.TickersFile == "" {
		cfg.Universe.TickersFile = "nasdaqlisted.txt"
	}
	if cfg.Universe.MaxSymbols == 0 {
		cfg.Universe.MaxSymbols = 100
	}

	return cfg, nil
}

// Validate checks that all required fields are consistent.
func (c *Config) Validate() error {
	if c.Screen.Confidence <= 0 || c.Screen.Confidence >= 1 {
		return fmt.Errorf("screen.confidence must be in (0,1), got %v", c.Screen.Confidence)
	}
	if c.Screen.PageSize <= 0 {
		return fmt.Errorf("screen.page_size must be positive")
	}
	if c.Screen.Workers <= 0 {
		return fmt.Errorf("screen.workers must be positive")
	}
	if c.Source.Kind != "scrape" && c.Source.Kind != "api" {
		return fmt.Errorf("source.kind must be \"scrape\" or \"api\", got %q", c.Source.Kind)
	}
	if c.Source.Kind == "api" && c.Source.APIBaseURL == "" {
		return fmt.Errorf("source.api_base_url is required for the api source")
	}
	start, end, err := c.Dates()
	if err != nil {
		return err
	}
	if start.After(end) {
		return fmt.Errorf("screen.start_date %s is after end_date %s",
			start.Format(dateLayout), end.Format(dateLayout))
	}
	return nil
}

// Dates parses the configured date range. An empty end date means
// today.
func (c *Config) Dates() (start, end time.Time, err error) {
	start, err = time.Parse(dateLayout, c.Screen.StartDate)
	if err != nil {
		return start, end, fmt.Errorf("screen.start_date: %w", err)
	}
	if c.Screen.EndDate == "" {
		now := time.Now()
		end = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		return start, end, nil
	}
	end, err = time.Parse(dateLayout, c.Screen.EndDate)
	if err != nil {
		return start, end, fmt.Errorf("screen.end_date: %w", err)
	}
	return start, end, nil
}

// SymbolTimeout returns the per-symbol pipeline deadline.
func (c *Config) SymbolTimeout() time.Duration {
	return time.Duration(c.Screen.SymbolTimeout) * time.Second
}

// RequestTimeout returns the per-request HTTP timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Screen.RequestTimeout) * time.Second
}
