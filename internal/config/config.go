package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type AppCfg struct {
	Env                 string `yaml:"env"`
	Port                int    `yaml:"port"`
	ReadTimeoutSeconds  int    `yaml:"readTimeoutSeconds"`
	WriteTimeoutSeconds int    `yaml:"writeTimeoutSeconds"`
	IdleTimeoutSeconds  int    `yaml:"idleTimeoutSeconds"`
	ServerURL           string `yaml:"server_url"`
	JWT                 struct {
		Secret         string `yaml:"secret"`
		SessionTTLDays int    `yaml:"sessionTTLDays"`
	} `yaml:"jwt"`

	// Computed from the *Seconds knobs after unmarshal.
	ReadTimeout  time.Duration `yaml:"-"`
	WriteTimeout time.Duration `yaml:"-"`
	IdleTimeout  time.Duration `yaml:"-"`
}

type MongoCfg struct {
	URI                   string `yaml:"uri"`
	Database              string `yaml:"database"`
	UserCollection        string `yaml:"userCollection"`
	TweetCollection       string `yaml:"tweetCollection"`
	Transactions          bool   `yaml:"transactions"`
	ConnectTimeoutSeconds int    `yaml:"connectTimeoutSeconds"`

	ConnectTimeout time.Duration `yaml:"-"`
}

type RedisCfg struct {
	Addr               string `yaml:"addr"`
	Password           string `yaml:"password"`
	DB                 int    `yaml:"db"`
	DialTimeoutSeconds int    `yaml:"dialTimeoutSeconds"`

	DialTimeout time.Duration `yaml:"-"`
}

type KafkaCfg struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

type SecurityCfg struct {
	BcryptCost           int `yaml:"bcryptCost"`
	ResetTokenTTLMinutes int `yaml:"resetTokenTTLMinutes"`
	AuthRateLimitPerMin  int `yaml:"authRateLimitPerMinute"`
}

type Config struct {
	App      AppCfg      `yaml:"app"`
	Mongo    MongoCfg    `yaml:"mongo"`
	Redis    RedisCfg    `yaml:"redis"`
	Kafka    KafkaCfg    `yaml:"kafka"`
	Security SecurityCfg `yaml:"security"`
}

// Load reads the yaml config, then applies .env / environment overrides and
// validates the keys the process cannot run without.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	override := func(env string, apply func(string)) {
		if v := os.Getenv(env); v != "" {
			apply(v)
		}
	}

	override("APP_ENV", func(v string) { cfg.App.Env = v })
	override("APP_PORT", func(v string) {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.App.Port = n
		}
	})
	override("SERVER_URL", func(v string) { cfg.App.ServerURL = v })
	override("JWT_SECRET", func(v string) { cfg.App.JWT.Secret = v })
	override("JWT_SESSION_TTL_DAYS", func(v string) {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.App.JWT.SessionTTLDays = n
		}
	})
	override("MONGO_URI", func(v string) { cfg.Mongo.URI = v })
	override("MONGO_DB", func(v string) { cfg.Mongo.Database = v })
	override("REDIS_ADDR", func(v string) { cfg.Redis.Addr = v })
	override("REDIS_PASSWORD", func(v string) { cfg.Redis.Password = v })
	override("KAFKA_BROKERS", func(v string) { cfg.Kafka.Brokers = strings.Split(v, ",") })
	override("KAFKA_TOPIC", func(v string) { cfg.Kafka.Topic = v })
	override("BCRYPT_COST", func(v string) {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Security.BcryptCost = n
		}
	})
	override("RESET_TOKEN_TTL_MINUTES", func(v string) {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Security.ResetTokenTTLMinutes = n
		}
	})

	if cfg.App.Port == 0 {
		cfg.App.Port = 5000
	}
	if cfg.App.JWT.SessionTTLDays == 0 {
		cfg.App.JWT.SessionTTLDays = 15
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = "usersDb"
	}
	if cfg.Mongo.UserCollection == "" {
		cfg.Mongo.UserCollection = "users"
	}
	if cfg.Mongo.TweetCollection == "" {
		cfg.Mongo.TweetCollection = "tweets"
	}
	if cfg.App.ReadTimeoutSeconds == 0 {
		cfg.App.ReadTimeoutSeconds = 15
	}
	if cfg.App.WriteTimeoutSeconds == 0 {
		cfg.App.WriteTimeoutSeconds = 15
	}
	if cfg.App.IdleTimeoutSeconds == 0 {
		cfg.App.IdleTimeoutSeconds = 60
	}
	if cfg.Mongo.ConnectTimeoutSeconds == 0 {
		cfg.Mongo.ConnectTimeoutSeconds = 15
	}
	if cfg.Redis.DialTimeoutSeconds == 0 {
		cfg.Redis.DialTimeoutSeconds = 5
	}
	cfg.App.ReadTimeout = time.Duration(cfg.App.ReadTimeoutSeconds) * time.Second
	cfg.App.WriteTimeout = time.Duration(cfg.App.WriteTimeoutSeconds) * time.Second
	cfg.App.IdleTimeout = time.Duration(cfg.App.IdleTimeoutSeconds) * time.Second
	cfg.Mongo.ConnectTimeout = time.Duration(cfg.Mongo.ConnectTimeoutSeconds) * time.Second
	cfg.Redis.DialTimeout = time.Duration(cfg.Redis.DialTimeoutSeconds) * time.Second
	if cfg.Security.ResetTokenTTLMinutes == 0 {
		cfg.Security.ResetTokenTTLMinutes = 60
	}
	if cfg.Security.AuthRateLimitPerMin == 0 {
		cfg.Security.AuthRateLimitPerMin = 30
	}

	if cfg.App.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required (set in .env or config.yaml)")
	}
	if cfg.Mongo.URI == "" {
		return nil, errors.New("MONGO_URI is required")
	}

	return cfg, nil
}

// SessionTTL is the lifetime of issued session tokens.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.App.JWT.SessionTTLDays) * 24 * time.Hour
}

// ResetTokenTTL is the validity window of password-reset tokens.
func (c *Config) ResetTokenTTL() time.Duration {
	return time.Duration(c.Security.ResetTokenTTLMinutes) * time.Minute
}
