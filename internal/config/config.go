// Package config loads divreport settings from the environment and an
// optional YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/ukaji3/divreport-go/pkg/divreport"
)

// EnvPrefix is the prefix of every environment variable, e.g. DIVREPORT_INPUT_DIR.
const EnvPrefix = "DIVREPORT"

// Config represents the complete application configuration.
type Config struct {
	Report  ReportConfig  `yaml:"report" envconfig:"REPORT"`
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// ReportConfig controls the report pipeline.
type ReportConfig struct {
	InputDir      string `yaml:"input_dir" envconfig:"INPUT_DIR" default:"."`
	ReferenceFile string `yaml:"reference_file" envconfig:"REFERENCE_FILE" default:"division wis.xlsx"`
	OutputFile    string `yaml:"output_file" envconfig:"OUTPUT_FILE" default:"division_mapped_output.xlsx"`
	Untagged      string `yaml:"untagged" envconfig:"UNTAGGED" default:"blank"`
	Strict        bool   `yaml:"strict" envconfig:"STRICT" default:"false"`
}

// ServerConfig contains HTTP front-end configuration.
type ServerConfig struct {
	Addr           string        `yaml:"addr" envconfig:"ADDR" default:":8501"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes" envconfig:"MAX_UPLOAD_BYTES" default:"33554432"`
	DownloadTTL    time.Duration `yaml:"download_ttl" envconfig:"DOWNLOAD_TTL" default:"15m"`
	PreviewRows    int           `yaml:"preview_rows" envconfig:"PREVIEW_ROWS" default:"50"`
	DevMode        bool          `yaml:"dev_mode" envconfig:"DEV_MODE" default:"false"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT" default:"false"`
}

// Load reads configuration from DIVREPORT_* environment variables and
// struct defaults, then overlays the YAML file at path when path is set.
func Load(path string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks field values that the pipeline cannot recover from.
func (c *Config) Validate() error {
	if _, err := divreport.ParseUntaggedPolicy(c.Report.Untagged); err != nil {
		return err
	}
	if c.Report.ReferenceFile == "" {
		return fmt.Errorf("reference file must be set")
	}
	if c.Report.OutputFile == "" {
		return fmt.Errorf("output file must be set")
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("max upload bytes must be positive")
	}
	if c.Server.DownloadTTL <= 0 {
		return fmt.Errorf("download ttl must be positive")
	}
	return nil
}

// ReferencePath resolves the reference file against the input directory.
func (c *Config) ReferencePath() string {
	return c.resolve(c.Report.ReferenceFile)
}

// OutputPath resolves the output file against the input directory.
func (c *Config) OutputPath() string {
	return c.resolve(c.Report.OutputFile)
}

func (c *Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Report.InputDir, name)
}

// Options converts the report settings into pipeline options.
func (c *Config) Options() divreport.Options {
	opts := divreport.DefaultOptions()
	opts.Untagged = divreport.UntaggedPolicy(c.Report.Untagged)
	if c.Report.Strict {
		opts.Unmatched = divreport.UnmatchedFail
	}
	return opts
}
