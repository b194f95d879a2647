package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for YourHome
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Database   DatabaseConfig   `mapstructure:"database"`
	LLM        LLMConfig        `mapstructure:"llm"`
	RAG        RAGConfig        `mapstructure:"rag"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Comparison ComparisonConfig `mapstructure:"comparison"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	BaseURL string `mapstructure:"base_url"`
}

// StorageConfig holds object storage configuration
type StorageConfig struct {
	Bucket          string        `mapstructure:"bucket"`
	Project         string        `mapstructure:"project"`
	CredentialsFile string        `mapstructure:"credentials_file"`
	URLTTL          time.Duration `mapstructure:"url_ttl"`
}

// DatabaseConfig holds the accounts database configuration
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LLMConfig holds LLM provider configuration
type LLMConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	EmbeddingModel string `mapstructure:"embedding_model"`
}

// RAGConfig holds retrieval index configuration
type RAGConfig struct {
	IndexDir     string `mapstructure:"index_dir"`
	ChunkSize    int    `mapstructure:"chunk_size"`
	ChunkOverlap int    `mapstructure:"chunk_overlap"`
	TopK         int    `mapstructure:"top_k"`
}

// AuthConfig holds login session and subscription configuration
type AuthConfig struct {
	PaymentURL string        `mapstructure:"payment_url"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

// ComparisonConfig holds tenant comparison configuration
type ComparisonConfig struct {
	MonthlyRent float64 `mapstructure:"monthly_rent"`
}

// Load loads configuration from file and environment
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("YOURHOME")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")

	v.SetDefault("storage.bucket", "yourhome-documents")
	v.SetDefault("storage.project", "")
	v.SetDefault("storage.credentials_file", "")
	v.SetDefault("storage.url_ttl", 15*time.Minute)

	v.SetDefault("database.path", "./data/yourhome.db")

	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.embedding_model", "text-embedding-3-small")

	v.SetDefault("rag.index_dir", "./data/indexes")
	v.SetDefault("rag.chunk_size", 1000)
	v.SetDefault("rag.chunk_overlap", 200)
	v.SetDefault("rag.top_k", 5)

	v.SetDefault("auth.payment_url", "https://billing.yourhome.ai/subscribe")
	v.SetDefault("auth.session_ttl", 24*time.Hour)

	v.SetDefault("comparison.monthly_rent", 1000.0)
}

// Address returns the server address
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
