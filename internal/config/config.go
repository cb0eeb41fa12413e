package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	BackendAPIURL string
	CardAmount    int64
	CardCurrency  string
	VerifyDelay   time.Duration
	SupportEmail  string
	Env           string
	Port          string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		BackendAPIURL: strings.TrimSpace(os.Getenv("BACKEND_API_URL")),
		CardCurrency:  strings.TrimSpace(os.Getenv("CARD_CURRENCY")),
		SupportEmail:  strings.TrimSpace(os.Getenv("SUPPORT_EMAIL")),
		Env:           strings.TrimSpace(os.Getenv("ENV")),
		Port:          strings.TrimSpace(os.Getenv("PORT")),
	}

	if cfg.BackendAPIURL == "" {
		cfg.BackendAPIURL = "https://arkid-bk3nd.onrender.com/api"
	}
	cfg.BackendAPIURL = strings.TrimRight(cfg.BackendAPIURL, "/")

	if cfg.CardCurrency == "" {
		cfg.CardCurrency = "NGN"
	}
	if len(cfg.CardCurrency) != 3 {
		return Config{}, errors.New("CARD_CURRENCY must be a 3-letter code")
	}
	cfg.CardCurrency = strings.ToUpper(cfg.CardCurrency)

	if cfg.SupportEmail == "" {
		cfg.SupportEmail = "support@arkid.com"
	}
	if cfg.Env == "" {
		cfg.Env = "dev"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	amount := strings.TrimSpace(os.Getenv("CARD_AMOUNT"))
	if amount == "" {
		cfg.CardAmount = 30000
	} else {
		v, err := strconv.ParseInt(amount, 10, 64)
		if err != nil || v <= 0 {
			return Config{}, errors.New("CARD_AMOUNT must be a positive integer")
		}
		cfg.CardAmount = v
	}

	delay := strings.TrimSpace(os.Getenv("VERIFY_DELAY_MS"))
	if delay == "" {
		cfg.VerifyDelay = 2000 * time.Millisecond
	} else {
		v, err := strconv.ParseInt(delay, 10, 64)
		if err != nil || v < 0 {
			return Config{}, errors.New("VERIFY_DELAY_MS must be a non-negative integer")
		}
		cfg.VerifyDelay = time.Duration(v) * time.Millisecond
	}

	return cfg, nil
}
