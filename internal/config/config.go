package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Hermes     HermesConfig     `yaml:"hermes"`
	Catalog    CatalogConfig    `yaml:"catalog"`
	Vocabulary VocabularyConfig `yaml:"vocabulary"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Curation   CurationConfig   `yaml:"curation"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	AdminToken  string `yaml:"admin_token"`
	// Per-client request rate for the public API; 0 disables limiting.
	RateLimitPerSecond float64  `yaml:"rate_limit_per_second"`
	RateLimitBurst     int      `yaml:"rate_limit_burst"`
	AllowedOrigins     []string `yaml:"allowed_origins"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type HermesConfig struct {
	URL string `yaml:"url"`
}

type CatalogConfig struct {
	OpenFoodFactsURL   string  `yaml:"open_food_facts_url"`
	OpenBeautyFactsURL string  `yaml:"open_beauty_facts_url"`
	UserAgent          string  `yaml:"user_agent"`
	TimeoutMs          int     `yaml:"timeout_ms"`
	RequestsPerSecond  float64 `yaml:"requests_per_second"`
}

// Vocabulary sources.
const (
	VocabularyBuiltin  = "builtin"
	VocabularyFile     = "file"
	VocabularyPostgres = "postgres"
)

type VocabularyConfig struct {
	Source        string `yaml:"source"`
	Path          string `yaml:"path"`
	TTLSeconds    int    `yaml:"ttl_seconds"`
	LoadTimeoutMs int    `yaml:"load_timeout_ms"`
}

type ScoringConfig struct {
	BaseScore           float64 `yaml:"base_score"`
	MaxWeightMultiplier float64 `yaml:"max_weight_multiplier"`
	VolumePerToken      float64 `yaml:"volume_per_token"`
	VolumeCap           float64 `yaml:"volume_cap"`
	ConcernThreshold    float64 `yaml:"concern_threshold"`
	MaxConcerns         int     `yaml:"max_concerns"`
	MaxTokens           int     `yaml:"max_tokens"`
	ModerateAbove       float64 `yaml:"moderate_above"`
	ElevatedAbove       float64 `yaml:"elevated_above"`
	MinPartialAliasLen  int     `yaml:"min_partial_alias_len"`
	FallbackMaxLen      int     `yaml:"fallback_max_len"`
}

type CurationConfig struct {
	FlushIntervalMs int `yaml:"flush_interval_ms"`
	BufferSize      int `yaml:"buffer_size"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) CatalogTimeout() time.Duration {
	return time.Duration(c.Catalog.TimeoutMs) * time.Millisecond
}

func (c *Config) VocabularyTTL() time.Duration {
	return time.Duration(c.Vocabulary.TTLSeconds) * time.Second
}

func (c *Config) VocabularyLoadTimeout() time.Duration {
	return time.Duration(c.Vocabulary.LoadTimeoutMs) * time.Millisecond
}

func (c *Config) CurationFlushInterval() time.Duration {
	return time.Duration(c.Curation.FlushIntervalMs) * time.Millisecond
}

// Validate catches settings that would otherwise fail late at runtime.
func (c *Config) Validate() error {
	switch c.Vocabulary.Source {
	case VocabularyBuiltin, VocabularyPostgres:
	case VocabularyFile:
		if c.Vocabulary.Path == "" {
			return fmt.Errorf("vocabulary.path is required when source is %q", VocabularyFile)
		}
	default:
		return fmt.Errorf("unknown vocabulary source %q", c.Vocabulary.Source)
	}
	if c.Vocabulary.Source == VocabularyPostgres && c.Database.URL == "" {
		return fmt.Errorf("database.url is required when vocabulary source is %q", VocabularyPostgres)
	}
	if c.Curation.BufferSize <= 0 {
		return fmt.Errorf("curation.buffer_size must be positive")
	}
	return nil
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:               8700,
			MetricsPort:        8701,
			RateLimitPerSecond: 10,
			RateLimitBurst:     20,
			AllowedOrigins:     []string{"*"},
		},
		Hermes: HermesConfig{
			URL: "nats://localhost:4222",
		},
		Catalog: CatalogConfig{
			OpenFoodFactsURL:   "https://world.openfoodfacts.org",
			OpenBeautyFactsURL: "https://world.openbeautyfacts.org",
			UserAgent:          "Toxscan/1.0 (+https://github.com/MikeSquared-Agency/Toxscan)",
			TimeoutMs:          10000,
			RequestsPerSecond:  5,
		},
		Vocabulary: VocabularyConfig{
			Source:        VocabularyBuiltin,
			TTLSeconds:    300,
			LoadTimeoutMs: 10000,
		},
		Scoring: ScoringConfig{
			BaseScore:           20,
			MaxWeightMultiplier: 8,
			VolumePerToken:      0.5,
			VolumeCap:           20,
			ConcernThreshold:    5,
			MaxConcerns:         10,
			MaxTokens:           50,
			ModerateAbove:       3,
			ElevatedAbove:       6,
			MinPartialAliasLen:  4,
			FallbackMaxLen:      8,
		},
		Curation: CurationConfig{
			FlushIntervalMs: 30000,
			BufferSize:      1024,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TOXSCAN_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("TOXSCAN_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("TOXSCAN_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("TOXSCAN_RATE_LIMIT_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Server.RateLimitPerSecond = f
		}
	}
	if v := os.Getenv("TOXSCAN_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("TOXSCAN_HERMES_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("TOXSCAN_OFF_URL"); v != "" {
		cfg.Catalog.OpenFoodFactsURL = v
	}
	if v := os.Getenv("TOXSCAN_OBF_URL"); v != "" {
		cfg.Catalog.OpenBeautyFactsURL = v
	}
	if v := os.Getenv("TOXSCAN_USER_AGENT"); v != "" {
		cfg.Catalog.UserAgent = v
	}
	if v := os.Getenv("TOXSCAN_VOCABULARY_SOURCE"); v != "" {
		cfg.Vocabulary.Source = v
	}
	if v := os.Getenv("TOXSCAN_VOCABULARY_PATH"); v != "" {
		cfg.Vocabulary.Path = v
	}
	if v := os.Getenv("TOXSCAN_VOCABULARY_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Vocabulary.TTLSeconds = n
		}
	}
	if v := os.Getenv("TOXSCAN_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("TOXSCAN_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
