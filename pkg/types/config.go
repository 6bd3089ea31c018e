package types

import "time"

// PlatformConfig holds connection settings for the knowledge-base platform's
// SQL endpoint. The API key authenticates the session.
type PlatformConfig struct {
	// Host is the platform hostname or IP.
	Host string `json:"host" yaml:"host"`

	// Port is the platform's MySQL-wire port (default 47335).
	Port int `json:"port" yaml:"port"`

	// User is the session login name (default "mindsdb").
	User string `json:"user" yaml:"user"`

	// APIKey is the platform credential, sent as the session password.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Project is an optional namespace qualifying knowledge-base and
	// table names.
	Project string `json:"project,omitempty" yaml:"project,omitempty"`

	// StatementTimeout bounds each remote statement (default 60s).
	StatementTimeout time.Duration `json:"statement_timeout" yaml:"statement_timeout"`
}

// EngineConfig describes the embedding/reranking engine to create on the
// platform. The provider credential is embedded in the create statement and
// never logged in the clear.
type EngineConfig struct {
	// Name is the engine identifier (default "google_gemini_engine").
	Name string `json:"name" yaml:"name"`

	// Provider is the platform handler name (default "google_gemini").
	Provider string `json:"provider" yaml:"provider"`

	// ModelName is the provider model (default "gemini-2-5-flash").
	ModelName string `json:"model_name" yaml:"model_name"`

	// APIKey is the embedding-provider credential.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// KnowledgeBaseConfig describes a knowledge base to create or target.
type KnowledgeBaseConfig struct {
	// Name is the knowledge-base identifier.
	Name string `json:"name" yaml:"name"`

	// Project optionally qualifies the name (project.name).
	Project string `json:"project,omitempty" yaml:"project,omitempty"`

	// EngineName is the engine used for both embedding and reranking.
	EngineName string `json:"engine_name" yaml:"engine_name"`

	// EmbeddingModel is the embedding model name.
	EmbeddingModel string `json:"embedding_model" yaml:"embedding_model"`

	// RerankingModel is the reranking model name.
	RerankingModel string `json:"reranking_model" yaml:"reranking_model"`

	// Provider is the model provider for both model blocks.
	Provider string `json:"provider" yaml:"provider"`

	// IDColumn is the identifier column.
	IDColumn string `json:"id_column" yaml:"id_column"`

	// ContentColumns are the columns embedded for search.
	ContentColumns []string `json:"content_columns" yaml:"content_columns"`

	// MetadataColumns are stored but not embedded.
	MetadataColumns []string `json:"metadata_columns" yaml:"metadata_columns"`
}

// PollConfig bounds the job polling loop. Polling stops at the first
// terminal status or when Timeout elapses, whichever comes first.
type PollConfig struct {
	// Interval is the delay between status checks (default 2s).
	Interval time.Duration `json:"interval" yaml:"interval"`

	// Timeout is the total time budget for polling (default 2m).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// LoggingConfig holds settings for the process logger.
type LoggingConfig struct {
	// Level is the minimum level: debug, info, warn, error.
	Level string `json:"level" yaml:"level"`

	// FilePath, when set, adds a JSON log sink rotated at MaxSizeMB.
	FilePath string `json:"file_path,omitempty" yaml:"file_path,omitempty"`

	// MaxSizeMB is the rotation threshold for the file sink (default 20).
	MaxSizeMB int `json:"max_size_mb" yaml:"max_size_mb"`
}

// Defaults fills zero values with the documented defaults.
func (c *PlatformConfig) Defaults() {
	if c.Host == "" {
		c.Host = "127.0.0.1"
	}
	if c.Port == 0 {
		c.Port = 47335
	}
	if c.User == "" {
		c.User = "mindsdb"
	}
	if c.StatementTimeout == 0 {
		c.StatementTimeout = 60 * time.Second
	}
}

// Defaults fills zero values with the documented defaults.
func (c *PollConfig) Defaults() {
	if c.Interval <= 0 {
		c.Interval = 2 * time.Second
	}
	if c.Timeout <= 0 {
		c.Timeout = 2 * time.Minute
	}
}
