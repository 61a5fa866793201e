package config

import (
	"time"

	"github.com/fox-one/pkg/store/db"
)

type (
	// Config steward config
	Config struct {
		DB       db.Config `json:"db"`
		API      API       `json:"api"`
		Auth     Auth      `json:"auth"`
		Panel    Panel     `json:"panel"`
		Janitor  Janitor   `json:"janitor"`
		Location string    `json:"location"`
		Admins   []string  `json:"admins"`
	}

	// API backend endpoint the review panel talks to
	API struct {
		Base string `json:"base"`
	}

	// Auth auth config. Token is a fixed reviewer token; OAuth takes
	// precedence when a token url is configured.
	Auth struct {
		JWTSecret       string   `json:"jwt_secret"`
		Issuers         []string `json:"issuers"`
		SessionCapacity int      `json:"session_capacity"`
		Token           string   `json:"token"`
		OAuth           OAuth    `json:"oauth"`
	}

	// OAuth reviewer token exchange
	OAuth struct {
		TokenURL     string `json:"token_url"`
		ClientID     string `json:"client_id"`
		ClientSecret string `json:"client_secret"`
	}

	// Panel review panel config
	Panel struct {
		BoardID     string `json:"board_id"`
		PollSeconds int64  `json:"poll_seconds"`
	}

	// Janitor resolved approval retention
	Janitor struct {
		RetentionDays int64 `json:"retention_days"`
	}
)

// PollInterval poll interval with the 15s default
func (p Panel) PollInterval() time.Duration {
	if p.PollSeconds <= 0 {
		return 15 * time.Second
	}

	return time.Duration(p.PollSeconds) * time.Second
}

// Retention retention window with the 30 day default
func (j Janitor) Retention() time.Duration {
	if j.RetentionDays <= 0 {
		return 30 * 24 * time.Hour
	}

	return time.Duration(j.RetentionDays) * 24 * time.Hour
}

func defaultConfig(cfg *Config) {
	if cfg.Auth.SessionCapacity <= 0 {
		cfg.Auth.SessionCapacity = 512
	}
}
