package config

import (
	"fmt"
	"time"
)

// SourceConfig selects where messages come from
type SourceConfig struct {
	Type string
}

// CSVConfig represents the configuration for the CSV source
type CSVConfig struct {
	Path string
}

// IMAPConfig represents the configuration for the IMAP source
type IMAPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	UseKeyring bool
	KeyringDir string
	Mailbox    string
	Limit      int
	TLS        bool
	Keywords   []string
}

// DisplayConfig represents the configuration for the terminal display
type DisplayConfig struct {
	Keywords   []string
	MaxBody    int
	MaxSubject int
	MaxDate    int
	ShowDrafts bool
}

// RelayConfig represents the configuration for the SMTP relay
type RelayConfig struct {
	ListenAddress     string
	PriorityHeader    string
	UrgencyHeader     string
	SentimentHeader   string
	ModifySubject     bool
	SubjectPrefix     string
	DownstreamEnabled bool
	DownstreamAddress string
	DownstreamPort    int
}

// PolishConfig represents the configuration for draft polishing
type PolishConfig struct {
	Provider string
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
	MaxBodySize int
}

// CacheConfig represents the configuration for the polished draft cache
type CacheConfig struct {
	Type             string
	Enabled          bool
	TTL              time.Duration
	CleanupFrequency time.Duration
	SQLitePath       string
	MySQLDSN         string
}

// MetricsConfig represents the configuration for the metrics endpoint
type MetricsConfig struct {
	Enabled       bool
	ListenAddress string
}

// GetSource returns the source selection
func (c *Config) GetSource() SourceConfig {
	return SourceConfig{
		Type: c.GetString("source.type"),
	}
}

// GetCSV returns the CSV source configuration
func (c *Config) GetCSV() CSVConfig {
	return CSVConfig{
		Path: c.GetString("csv.path"),
	}
}

// GetIMAP returns the IMAP source configuration
func (c *Config) GetIMAP() IMAPConfig {
	return IMAPConfig{
		Host:       c.GetString("imap.host"),
		Port:       c.GetInt("imap.port"),
		Username:   c.GetString("imap.username"),
		Password:   c.GetString("imap.password"),
		UseKeyring: c.GetBool("imap.use_keyring"),
		KeyringDir: c.GetString("imap.keyring_dir"),
		Mailbox:    c.GetString("imap.mailbox"),
		Limit:      c.GetInt("imap.limit"),
		TLS:        c.GetBool("imap.tls"),
		Keywords:   c.GetStringSlice("imap.keywords"),
	}
}

// GetDisplay returns the display configuration
func (c *Config) GetDisplay() DisplayConfig {
	return DisplayConfig{
		Keywords:   c.GetStringSlice("display.keywords"),
		MaxBody:    c.GetInt("display.max_body"),
		MaxSubject: c.GetInt("display.max_subject"),
		MaxDate:    c.GetInt("display.max_date"),
		ShowDrafts: c.GetBool("display.show_drafts"),
	}
}

// GetRelay returns the SMTP relay configuration
func (c *Config) GetRelay() RelayConfig {
	return RelayConfig{
		ListenAddress:     c.GetString("relay.listen_address"),
		PriorityHeader:    c.GetString("relay.headers.priority"),
		UrgencyHeader:     c.GetString("relay.headers.urgency"),
		SentimentHeader:   c.GetString("relay.headers.sentiment"),
		ModifySubject:     c.GetBool("relay.modify_subject"),
		SubjectPrefix:     c.GetString("relay.subject_prefix"),
		DownstreamEnabled: c.GetBool("relay.downstream.enabled"),
		DownstreamAddress: c.GetString("relay.downstream.address"),
		DownstreamPort:    c.GetInt("relay.downstream.port"),
	}
}

// GetPolish returns the polishing configuration
func (c *Config) GetPolish() PolishConfig {
	return PolishConfig{
		Provider: c.GetString("polish.provider"),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
		TopP:        float32(c.GetFloat64("bedrock.top_p")),
		MaxBodySize: c.GetInt("bedrock.max_body_size"),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		TopP:        float32(c.GetFloat64("gemini.top_p")),
		MaxBodySize: c.GetInt("gemini.max_body_size"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		BaseURL:     c.GetString("openai.base_url"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
		MaxBodySize: c.GetInt("openai.max_body_size"),
	}
}

// GetCache returns the draft cache configuration
func (c *Config) GetCache() (CacheConfig, error) {
	ttl, err := c.GetDuration("cache.ttl")
	if err != nil {
		return CacheConfig{}, fmt.Errorf("invalid cache ttl: %w", err)
	}
	cleanupFreq, err := c.GetDuration("cache.cleanup_frequency")
	if err != nil {
		return CacheConfig{}, fmt.Errorf("invalid cache cleanup frequency: %w", err)
	}
	return CacheConfig{
		Type:             c.GetString("cache.type"),
		Enabled:          c.GetBool("cache.enabled"),
		TTL:              ttl,
		CleanupFrequency: cleanupFreq,
		SQLitePath:       c.GetString("cache.sqlite_path"),
		MySQLDSN:         c.GetString("cache.mysql_dsn"),
	}, nil
}

// GetMetrics returns the metrics configuration
func (c *Config) GetMetrics() MetricsConfig {
	return MetricsConfig{
		Enabled:       c.GetBool("metrics.enabled"),
		ListenAddress: c.GetString("metrics.listen_address"),
	}
}
