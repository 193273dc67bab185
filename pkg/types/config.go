// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the per-request timeout (default 10s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "citation-verifier/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// RegistryConfig holds settings for the existence-checking stage.
type RegistryConfig struct {
	HTTPConfig `yaml:",inline"`

	// CacheTTL is how long a successful registry lookup stays cached
	// (default 24h).
	CacheTTL time.Duration `json:"cache_ttl" yaml:"cache_ttl"`

	// MaxAttempts is the total attempt budget per lookup, including the
	// first try (default 3).
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts"`

	// RequestsPerSecond caps the client-side request rate per registry
	// (default 2). Negative disables limiting.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`

	// ContactEmail is sent to registries that run polite pools
	// (Crossref mailto convention).
	ContactEmail string `json:"contact_email,omitempty" yaml:"contact_email,omitempty"`
}

// ValidationConfig holds settings for the orchestration stage.
type ValidationConfig struct {
	// EnableAPIChecks gates layer 2. When false the pipeline runs
	// offline: format, cross-project, and red-flag layers only.
	EnableAPIChecks bool `json:"enable_api_checks" yaml:"enable_api_checks"`

	// MaxConcurrent bounds the project-wide fan-out worker pool
	// (default 4).
	MaxConcurrent int `json:"max_concurrent" yaml:"max_concurrent"`
}

// StoreConfig holds settings for the source store.
type StoreConfig struct {
	// DataDir is the base directory holding the SQLite database
	// (default "data").
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Registry   RegistryConfig   `json:"registry" yaml:"registry"`
	Validation ValidationConfig `json:"validation" yaml:"validation"`
	Store      StoreConfig      `json:"store" yaml:"store"`
}
