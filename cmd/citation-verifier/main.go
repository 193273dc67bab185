// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the citation-verifier CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/citation-verifier/internal/secrets"
	"github.com/pdiddy/citation-verifier/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when set, else the named secret.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the citation-verifier CLI.
var rootCmd = &cobra.Command{
	Use:   "citation-verifier",
	Short: "Multi-layer verification of citations and sources",
	Long: `citation-verifier checks the citations of a writing project before export.
Five layers run in order: identifier format and checksums, registry
existence (Crossref, Open Library, arXiv), content verification requests,
cross-document conflict detection, and integrity red flags.

Validate a single citation with "validate", a whole document with
"project", and manage the local source store with "store".`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./citation-verifier.yaml or ~/.config/citation-verifier/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("citation-verifier")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "citation-verifier"))
		}
	}

	viper.SetDefault("validation.enable_api_checks", true)
	viper.SetDefault("store.data_dir", "data")

	viper.SetEnvPrefix("CITATION_VERIFIER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pipelineConfig resolves the stage configuration from viper and the
// secrets directory. Zero values fall through to stage defaults.
func pipelineConfig() types.PipelineConfig {
	userAgent := viper.GetString("registry.user_agent")
	if userAgent == "" {
		userAgent = "citation-verifier/" + version
	}

	return types.PipelineConfig{
		Registry: types.RegistryConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("registry.timeout"),
				UserAgent: userAgent,
			},
			CacheTTL:          viper.GetDuration("registry.cache_ttl"),
			MaxAttempts:       viper.GetInt("registry.max_attempts"),
			RequestsPerSecond: viper.GetFloat64("registry.requests_per_second"),
			ContactEmail:      secretDefault("contact-email", viper.GetString("registry.contact_email")),
		},
		Validation: types.ValidationConfig{
			EnableAPIChecks: viper.GetBool("validation.enable_api_checks"),
			MaxConcurrent:   viper.GetInt("validation.max_concurrent"),
		},
		Store: types.StoreConfig{
			DataDir: viper.GetString("store.data_dir"),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
