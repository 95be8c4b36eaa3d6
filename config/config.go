package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the lucid service.
type Config struct {
	General   GeneralConfig   `mapstructure:"general"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Search    SearchConfig    `mapstructure:"search"`
	Agent     AgentConfig     `mapstructure:"agent"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// GeneralConfig contains general application settings.
type GeneralConfig struct {
	Debug     bool   `mapstructure:"debug"`
	LogLevel  string `mapstructure:"log_level"`
	Listen    string `mapstructure:"listen"`
	JWTSecret string `mapstructure:"jwt_secret"`
	Env       string `mapstructure:"env"`
}

// LLMConfig contains completion-provider settings.
type LLMConfig struct {
	Provider    string           `mapstructure:"provider"` // openai
	APIKey      string           `mapstructure:"api_key"`
	BaseURL     string           `mapstructure:"base_url"`
	Timeout     time.Duration    `mapstructure:"timeout"`
	MaxTokens   int              `mapstructure:"max_tokens"`
	Temperature float64          `mapstructure:"temperature"`
	Routing     LLMRoutingConfig `mapstructure:"routing"`
}

// LLMRoutingConfig defines which model to use for each pipeline stage.
type LLMRoutingConfig struct {
	Router      string `mapstructure:"router"`      // proceed/inquire classification
	Inquiry     string `mapstructure:"inquiry"`     // clarification generation
	Research    string `mapstructure:"research"`    // search tool selection
	Synthesis   string `mapstructure:"synthesis"`   // structured answer synthesis
	Suggestions string `mapstructure:"suggestions"` // related query generation
	Fallback    string `mapstructure:"fallback"`
}

// SearchConfig contains web-search provider settings.
type SearchConfig struct {
	Provider   string        `mapstructure:"provider"` // tavily
	APIKey     string        `mapstructure:"api_key"`
	Endpoint   string        `mapstructure:"endpoint"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxResults int           `mapstructure:"max_results"`
	CacheTTL   time.Duration `mapstructure:"cache_ttl"`
}

// AgentConfig contains pipeline tuning knobs.
type AgentConfig struct {
	MaxResearchAttempts int           `mapstructure:"max_research_attempts"`
	RetryBackoff        time.Duration `mapstructure:"retry_backoff"`
	HistoryWindow       int           `mapstructure:"history_window"`
	ChunkDelay          time.Duration `mapstructure:"chunk_delay"`
}

// StorageConfig contains storage and persistence settings.
type StorageConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// PostgresConfig contains Postgres connection settings.
type PostgresConfig struct {
	URL      string        `mapstructure:"url"`
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	User     string        `mapstructure:"user"`
	Password string        `mapstructure:"password"`
	DBName   string        `mapstructure:"dbname"`
	SSLMode  string        `mapstructure:"sslmode"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// RedisConfig contains Redis connection settings.
type RedisConfig struct {
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// TelemetryConfig contains monitoring settings.
type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// DSN builds a Postgres connection string from the configured fields.
func (p PostgresConfig) DSN() (string, error) {
	if p.URL != "" {
		return p.URL, nil
	}
	if p.Host == "" || p.DBName == "" {
		return "", fmt.Errorf("postgres not configured (storage.postgres.host/dbname or url)")
	}
	port := p.Port
	if port == "" {
		port = "5432"
	}
	ssl := p.SSLMode
	if ssl == "" {
		ssl = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", p.User, p.Password, p.Host, port, p.DBName, ssl), nil
}

// Addr returns host:port for the Redis connection.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

// LoadConfig loads configuration from file and environment variables.
func LoadConfig(path string) (*Config, error) {
	viper.SetConfigName("lucid_config")
	viper.SetConfigType("json")
	if path != "" {
		viper.AddConfigPath(path)
	}
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("LUCID")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	// Config file is optional; defaults plus env cover the common case.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	overrideFromEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults() {
	viper.SetDefault("general.debug", false)
	viper.SetDefault("general.log_level", "info")
	viper.SetDefault("general.listen", ":8080")
	viper.SetDefault("general.env", "dev")

	viper.SetDefault("llm.provider", "openai")
	viper.SetDefault("llm.timeout", "60s")
	viper.SetDefault("llm.max_tokens", 2500)
	viper.SetDefault("llm.temperature", 0.2)
	viper.SetDefault("llm.routing.router", "gpt-4o-mini")
	viper.SetDefault("llm.routing.inquiry", "gpt-4o")
	viper.SetDefault("llm.routing.research", "gpt-4o")
	viper.SetDefault("llm.routing.synthesis", "gpt-4o")
	viper.SetDefault("llm.routing.suggestions", "gpt-4o-mini")
	viper.SetDefault("llm.routing.fallback", "gpt-4o-mini")

	viper.SetDefault("search.provider", "tavily")
	viper.SetDefault("search.endpoint", "https://api.tavily.com/search")
	viper.SetDefault("search.timeout", "30s")
	viper.SetDefault("search.max_results", 10)
	viper.SetDefault("search.cache_ttl", "10m")

	viper.SetDefault("agent.max_research_attempts", 3)
	viper.SetDefault("agent.retry_backoff", "500ms")
	viper.SetDefault("agent.history_window", 4)
	viper.SetDefault("agent.chunk_delay", "50ms")

	viper.SetDefault("storage.postgres.host", "")
	viper.SetDefault("storage.postgres.port", "5432")
	viper.SetDefault("storage.postgres.sslmode", "disable")
	viper.SetDefault("storage.postgres.timeout", "5s")
	viper.SetDefault("storage.redis.host", "")
	viper.SetDefault("storage.redis.port", "6379")
	viper.SetDefault("storage.redis.db", 0)
	viper.SetDefault("storage.redis.timeout", "5s")

	viper.SetDefault("telemetry.enabled", true)
}

// overrideFromEnv overrides configuration with environment variables for
// secrets that are conventionally supplied outside the config file.
func overrideFromEnv() {
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		viper.Set("llm.api_key", apiKey)
	}
	if baseURL := os.Getenv("OPENAI_API_BASE"); baseURL != "" {
		viper.Set("llm.base_url", baseURL)
	}
	if apiKey := os.Getenv("TAVILY_API_KEY"); apiKey != "" {
		viper.Set("search.api_key", apiKey)
	}
	if secret := os.Getenv("LUCID_JWT_SECRET"); secret != "" {
		viper.Set("general.jwt_secret", secret)
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		viper.Set("storage.postgres.url", url)
	}
	if host := os.Getenv("POSTGRES_HOST"); host != "" {
		viper.Set("storage.postgres.host", host)
	}
	if port := os.Getenv("POSTGRES_PORT"); port != "" {
		viper.Set("storage.postgres.port", port)
	}
	if user := os.Getenv("POSTGRES_USER"); user != "" {
		viper.Set("storage.postgres.user", user)
	}
	if pass := os.Getenv("POSTGRES_PASSWORD"); pass != "" {
		viper.Set("storage.postgres.password", pass)
	}
	if db := os.Getenv("POSTGRES_DB"); db != "" {
		viper.Set("storage.postgres.dbname", db)
	}
	if host := os.Getenv("REDIS_HOST"); host != "" {
		viper.Set("storage.redis.host", host)
	}
	if port := os.Getenv("REDIS_PORT"); port != "" {
		viper.Set("storage.redis.port", port)
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		viper.Set("storage.redis.password", password)
	}
	if db := os.Getenv("REDIS_DB"); db != "" {
		if n, err := strconv.Atoi(db); err == nil {
			viper.Set("storage.redis.db", n)
		}
	}
}

// validateConfig validates the configuration.
func validateConfig(config *Config) error {
	if config.LLM.Provider == "" {
		return fmt.Errorf("llm provider must be configured")
	}
	if config.Agent.MaxResearchAttempts <= 0 {
		return fmt.Errorf("agent.max_research_attempts must be positive")
	}
	if config.Agent.HistoryWindow <= 0 {
		return fmt.Errorf("agent.history_window must be positive")
	}
	routingModels := []string{
		config.LLM.Routing.Router,
		config.LLM.Routing.Inquiry,
		config.LLM.Routing.Research,
		config.LLM.Routing.Synthesis,
		config.LLM.Routing.Suggestions,
	}
	for _, model := range routingModels {
		if model == "" && config.LLM.Routing.Fallback == "" {
			return fmt.Errorf("llm routing incomplete and no fallback model configured")
		}
	}
	return nil
}
