package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Billing struct {
		// Fallback commission for providers whose tier carries no rate.
		DefaultCommissionBps int `yaml:"default_commission_bps"`
		// Smallest withdrawal the wallet accepts, in pesewas.
		MinWithdrawalPesewas int64 `yaml:"min_withdrawal_pesewas"`
		// Fixed stamp duty percentage quoted to clients for rental
		// agreements. The engine only surfaces it; no tax computation.
		StampDutyBps int `yaml:"stamp_duty_bps"`
	} `yaml:"billing"`

	Worker struct {
		// Cadence of the subscription expiry sweep, in minutes.
		ExpirySweepMinutes int `yaml:"expiry_sweep_minutes"`
	} `yaml:"worker"`
}

var AppConfig *Config

// LoadConfig reads config.yaml, or falls back to environment variables when
// DATABASE_URL is set (test and container deployments).
func LoadConfig() {
	var cfg Config

	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyBillingDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = 60

	applyBillingDefaults(&cfg)
	AppConfig = &cfg
}

func applyBillingDefaults(cfg *Config) {
	if cfg.Billing.DefaultCommissionBps == 0 {
		cfg.Billing.DefaultCommissionBps = 1200 // 12%
	}
	if cfg.Billing.MinWithdrawalPesewas == 0 {
		cfg.Billing.MinWithdrawalPesewas = 1000 // GHS 10
	}
	if cfg.Billing.StampDutyBps == 0 {
		cfg.Billing.StampDutyBps = 50 // 0.5%
	}
	if cfg.Worker.ExpirySweepMinutes == 0 {
		cfg.Worker.ExpirySweepMinutes = 60
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
