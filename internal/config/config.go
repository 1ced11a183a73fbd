package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"SalesEcho/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Audio struct {
		SampleRate      int     `yaml:"sample_rate"`
		DurationSeconds float64 `yaml:"duration_seconds"`
		LagDays         *int    `yaml:"lag_days"`
		Mode            string  `yaml:"mode"`
		Ticks           *bool   `yaml:"ticks"`
	} `yaml:"audio"`
	DataSource struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
		Days    int    `yaml:"days"`
		Seed    uint64 `yaml:"seed"`
	} `yaml:"data_source"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Session struct {
		StateFile string `yaml:"state_file"`
	} `yaml:"session"`
	Playback struct {
		Backend string `yaml:"backend"` // none, oto or command
		Command string `yaml:"command"`
	} `yaml:"playback"`
	Output struct {
		Dir string `yaml:"dir"`
	} `yaml:"output"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
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
	if v := os.Getenv("METRICS_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("METRICS_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SAMPLE_RATE"); v != "" {
		rate, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("SAMPLE_RATE: %w", err)
		}
		cfg.Audio.SampleRate = rate
	}
	if v := os.Getenv("LAG_DAYS"); v != "" {
		lag, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("LAG_DAYS: %w", err)
		}
		cfg.Audio.LagDays = &lag
	}
	if v := os.Getenv("SOUND_MODE"); v != "" {
		cfg.Audio.Mode = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("PLAYBACK_BACKEND"); v != "" {
		cfg.Playback.Backend = v
	}

	// Defaults
	if cfg.Audio.SampleRate == 0 {
		cfg.Audio.SampleRate = 48000
	}
	if cfg.Audio.DurationSeconds == 0 {
		cfg.Audio.DurationSeconds = 18
	}
	if cfg.Audio.LagDays == nil {
		lag := 1
		cfg.Audio.LagDays = &lag
	}
	if cfg.Audio.Mode == "" {
		cfg.Audio.Mode = string(model.ModeContinuous)
	}
	if cfg.Audio.Ticks == nil {
		ticks := true
		cfg.Audio.Ticks = &ticks
	}
	if cfg.DataSource.Days == 0 {
		cfg.DataSource.Days = 30
	}
	if cfg.DataSource.Seed == 0 {
		cfg.DataSource.Seed = 42
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 0 9 * * *"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/salesecho.db"
	}
	if cfg.Session.StateFile == "" {
		cfg.Session.StateFile = "data/session_state.json"
	}
	if cfg.Playback.Backend == "" {
		cfg.Playback.Backend = "none"
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "out"
	}

	return cfg, nil
}

// Mode returns the parsed default render mode.
func (c *Config) Mode() model.Mode {
	mode, err := model.ParseMode(c.Audio.Mode)
	if err != nil {
		return model.ModeContinuous
	}
	return mode
}

// Validate checks the render and playback settings.
func (c *Config) Validate() error {
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio.sample_rate must be positive")
	}
	if c.Audio.DurationSeconds <= 0 {
		return fmt.Errorf("audio.duration_seconds must be positive")
	}
	if *c.Audio.LagDays < 0 {
		return fmt.Errorf("audio.lag_days must not be negative")
	}
	if _, err := model.ParseMode(c.Audio.Mode); err != nil {
		return fmt.Errorf("audio.mode: %w", err)
	}
	if c.DataSource.Days < 2 {
		return fmt.Errorf("data_source.days must be at least 2")
	}
	switch c.Playback.Backend {
	case "none", "oto":
	case "command":
		if c.Playback.Command == "" {
			return fmt.Errorf("playback.command is required for the command backend")
		}
	default:
		return fmt.Errorf("playback.backend must be none, oto or command, got %q", c.Playback.Backend)
	}
	return nil
}

// ValidateBot checks the fields needed to run as a Telegram bot.
func (c *Config) ValidateBot() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	return nil
}
