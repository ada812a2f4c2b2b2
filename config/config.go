package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig
	RateLimit  RateLimitConfig

	// Dispatch core
	Brain     BrainConfig
	Fast      FastConfig
	Router    RouterConfig
	Knowledge KnowledgeConfig

	// Vector knowledge backend
	Qdrant QdrantConfig
	Voyage VoyageConfig

	// LLM Provider Abstraction (slow model)
	LLM LLMConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type RateLimitConfig struct {
	PerMin int
}

// BrainConfig is the dispatcher's process-wide settings.
type BrainConfig struct {
	FastModel         string
	SlowModel         string
	MemoryPath        string
	KnowledgePath     string
	SystemPromptPath  string
	ConstitutionPath  string
	DeepTimeout       time.Duration
	DegradePolicy     string
	WatchSystemPrompt bool
}

// FastConfig points the cortex tier at an OpenAI-compatible local endpoint.
// An empty BaseURL keeps the templated acknowledgement.
type FastConfig struct {
	BaseURL string
	APIKey  string
	Budget  time.Duration
}

type RouterConfig struct {
	StrategyKeywords     []string
	InterrogativeMarkers []string
	ShortInputThreshold  int
}

type KnowledgeConfig struct {
	CacheSize   int
	CacheTTL    time.Duration
	MaxPassages int
	MinScore    float64
}

type QdrantConfig struct {
	URL            string
	APIKey         string
	CollectionName string
	VectorSize     int
}

type VoyageConfig struct {
	APIKey string
	Model  string
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"`
	Temperature     float64          `yaml:"temperature"`
	MaxTokens       int              `yaml:"max_tokens"`
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

// Enabled reports whether at least one slow-model provider is switched on.
func (c LLMConfig) Enabled() bool {
	for _, p := range c.Providers {
		if p.Enabled {
			return true
		}
	}
	return false
}

// VectorKnowledge reports whether qdrant and voyage are both configured.
func (c *Config) VectorKnowledge() bool {
	return c.Qdrant.URL != "" && c.Voyage.APIKey != ""
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, . and /etc/app/
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")
	cfg.RateLimit.PerMin = viper.GetInt("rate_limit.per_min")

	// Dispatch core
	cfg.Brain.FastModel = viper.GetString("brain.fast_model")
	cfg.Brain.SlowModel = viper.GetString("brain.slow_model")
	cfg.Brain.MemoryPath = viper.GetString("brain.memory_path")
	cfg.Brain.KnowledgePath = viper.GetString("brain.knowledge_path")
	cfg.Brain.SystemPromptPath = viper.GetString("brain.system_prompt_path")
	cfg.Brain.ConstitutionPath = viper.GetString("brain.constitution_path")
	cfg.Brain.DeepTimeout = viper.GetDuration("brain.deep_timeout")
	cfg.Brain.DegradePolicy = viper.GetString("brain.degrade_policy")
	cfg.Brain.WatchSystemPrompt = viper.GetBool("brain.watch_system_prompt")

	cfg.Fast.BaseURL = viper.GetString("fast.base_url")
	cfg.Fast.APIKey = viper.GetString("fast.api_key")
	cfg.Fast.Budget = viper.GetDuration("fast.budget")

	cfg.Router.StrategyKeywords = getStringList("router.strategy_keywords")
	cfg.Router.InterrogativeMarkers = getStringList("router.interrogative_markers")
	cfg.Router.ShortInputThreshold = viper.GetInt("router.short_input_threshold")

	cfg.Knowledge.CacheSize = viper.GetInt("knowledge.cache_size")
	cfg.Knowledge.CacheTTL = viper.GetDuration("knowledge.cache_ttl")
	cfg.Knowledge.MaxPassages = viper.GetInt("knowledge.max_passages")
	cfg.Knowledge.MinScore = viper.GetFloat64("knowledge.min_score")

	// Vector knowledge backend
	cfg.Qdrant.URL = viper.GetString("qdrant.url")
	cfg.Qdrant.APIKey = viper.GetString("qdrant.api_key")
	cfg.Qdrant.CollectionName = viper.GetString("qdrant.collection_name")
	cfg.Qdrant.VectorSize = viper.GetInt("qdrant.vector_size")
	if qdrantURL := viper.GetString("qdrant_url"); qdrantURL != "" {
		cfg.Qdrant.URL = qdrantURL
	}

	cfg.Voyage.APIKey = viper.GetString("voyage.api_key")
	cfg.Voyage.Model = viper.GetString("voyage.model")
	if voyageKey := viper.GetString("voyage_api_key"); voyageKey != "" {
		cfg.Voyage.APIKey = voyageKey
	}

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")
	cfg.LLM.Temperature = viper.GetFloat64("llm.temperature")
	cfg.LLM.MaxTokens = viper.GetInt("llm.max_tokens")

	// Load provider configurations
	if viper.IsSet("llm.providers") {
		providersRaw := viper.Get("llm.providers")
		if providersList, ok := providersRaw.([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					provider := ProviderConfig{
						Name:     getStringFromMap(providerMap, "name"),
						Enabled:  getBoolFromMap(providerMap, "enabled"),
						Priority: getIntFromMap(providerMap, "priority"),
						APIKey:   expandEnvVar(getStringFromMap(providerMap, "api_key")),
						BaseURL:  getStringFromMap(providerMap, "base_url"),
						Model:    getStringFromMap(providerMap, "model"),
						Timeout:  getStringFromMap(providerMap, "timeout"),
					}
					cfg.LLM.Providers = append(cfg.LLM.Providers, provider)
				}
			}
		}
	}

	// Providers are optional: without them the deep tier writes template plans.
	if len(cfg.LLM.Providers) > 0 {
		if err := validateLLMConfig(&cfg.LLM); err != nil {
			return nil, fmt.Errorf("invalid llm config: %w", err)
		}
	}

	if err := validateBrainConfig(&cfg.Brain); err != nil {
		return nil, fmt.Errorf("invalid brain config: %w", err)
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("rate_limit.per_min", 60)

	// Dispatch core
	viper.SetDefault("brain.fast_model", "llama3")
	viper.SetDefault("brain.slow_model", "gemini-2.0-flash-thinking")
	viper.SetDefault("brain.knowledge_path", "./knowledge")
	viper.SetDefault("brain.system_prompt_path", "./SYSTEM_PROMPT.md")
	viper.SetDefault("brain.deep_timeout", "30s")
	viper.SetDefault("brain.degrade_policy", "fallback")
	viper.SetDefault("brain.watch_system_prompt", false)
	viper.SetDefault("fast.budget", "200ms")
	viper.SetDefault("router.short_input_threshold", 50)

	viper.SetDefault("knowledge.cache_size", 256)
	viper.SetDefault("knowledge.cache_ttl", "5m")
	viper.SetDefault("knowledge.max_passages", 5)

	viper.SetDefault("qdrant.collection_name", "knowledge")
	viper.SetDefault("qdrant.vector_size", 1024)
	viper.SetDefault("voyage.model", "voyage-3")

	// LLM defaults
	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_attempts", 3)
	viper.SetDefault("llm.retry_delay", "1s")
	viper.SetDefault("llm.max_total_timeout", "60s") // Default: 60 seconds for entire fallback chain
	viper.SetDefault("llm.temperature", 0.7)
	viper.SetDefault("llm.max_tokens", 2048)
}

// getStringList reads a list that may come from YAML or a comma-separated
// env var.
func getStringList(key string) []string {
	var raw []string
	if s, ok := viper.Get(key).(string); ok {
		raw = strings.Split(s, ",")
	} else {
		raw = viper.GetStringSlice(key)
	}

	var out []string
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	// Check if value is in format ${VAR_NAME}
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		// Try viper first (handles both env and config)
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		// Try lowercase version
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		// Try direct os.Getenv as last resort
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}

func validateBrainConfig(cfg *BrainConfig) error {
	if cfg.FastModel == "" || cfg.SlowModel == "" {
		return fmt.Errorf("fast_model and slow_model are required")
	}
	if cfg.DeepTimeout < 0 {
		return fmt.Errorf("deep_timeout must not be negative")
	}
	switch cfg.DegradePolicy {
	case "fallback", "report":
	default:
		return fmt.Errorf("unknown degrade_policy %q", cfg.DegradePolicy)
	}
	return nil
}

// validateLLMConfig validates the LLM configuration
func validateLLMConfig(cfg *LLMConfig) error {
	if len(cfg.Providers) == 0 {
		return fmt.Errorf("no LLM providers configured")
	}

	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		// Check required fields
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if provider.Model == "" {
			return fmt.Errorf("provider %s: model is required", provider.Name)
		}

		if provider.Enabled {
			// Check priority is valid
			if provider.Priority <= 0 {
				return fmt.Errorf("provider %s: priority must be positive", provider.Name)
			}

			// Check for duplicate priorities
			if priorityMap[provider.Priority] {
				return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
			}
			priorityMap[provider.Priority] = true
		}
	}

	return nil
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		// Handle float64 from JSON unmarshaling
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
