// Package config loads docproc configuration from the process environment,
// optionally seeded from a .env file in the working directory.
//
// Credentials (AWS keys, Unstructured API key, bucket names) come from the
// environment only. Tunables (poll interval, job timeout, region, work dir)
// may additionally be set in ~/.docproc/config.yaml; environment variables
// win over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps all configuration validation failures.
var ErrInvalidConfig = errors.New("invalid configuration")

// Defaults applied when neither environment nor config file set a value.
const (
	DefaultRegion       = "us-east-2"
	DefaultAPIURL       = "https://platform.unstructuredapp.io"
	DefaultPollInterval = 10 * time.Second
	DefaultJobTimeout   = 30 * time.Minute
)

// Config holds everything needed to run an extraction: S3 staging buckets,
// AWS credentials, and Unstructured platform access.
type Config struct {
	SourceBucket      string `validate:"required"`
	DestinationBucket string `validate:"required"`
	AWSKey            string `validate:"required"`
	AWSSecret         string `validate:"required"`
	Region            string `validate:"required"`
	APIKey            string `validate:"required"`
	APIURL            string `validate:"required,url"`

	PollInterval time.Duration `validate:"gt=0"`
	JobTimeout   time.Duration `validate:"gt=0"`

	// WorkDir is where downloaded result JSON is written before decoding.
	// Files placed there are removed after each extraction.
	WorkDir string `validate:"required"`
}

// fileOverrides is the shape of ~/.docproc/config.yaml. Only operational
// tunables live here; credentials never do.
type fileOverrides struct {
	Region       string `yaml:"region,omitempty"`
	APIURL       string `yaml:"api_url,omitempty"`
	PollInterval string `yaml:"poll_interval,omitempty"`
	JobTimeout   string `yaml:"job_timeout,omitempty"`
	WorkDir      string `yaml:"work_dir,omitempty"`
}

// envNames maps Config fields to their environment variables. The credential
// names are kept compatible with existing deployments.
const (
	EnvSourceBucket      = "AWS_S3_SOURCE_BUCKET"
	EnvDestinationBucket = "AWS_S3_DESTINATION_BUCKET"
	EnvAWSKey            = "AWS_KEY"
	EnvAWSSecret         = "AWS_SECRET"
	EnvRegion            = "AWS_REGION"
	EnvAPIKey            = "UNSTRUCTURED_API_KEY"
	EnvAPIURL            = "UNSTRUCTURED_API_URL"
	EnvPollInterval      = "DOCPROC_POLL_INTERVAL"
	EnvJobTimeout        = "DOCPROC_JOB_TIMEOUT"
	EnvWorkDir           = "DOCPROC_WORK_DIR"
)

// Load reads configuration from the environment, seeded from an optional
// .env file in the current directory and topped up from the optional config
// file. Returns ErrInvalidConfig (wrapped) listing every missing or invalid
// value, so a misconfigured deployment fails with one actionable message.
func Load() (*Config, error) {
	// Missing .env is the normal case for deployed servers; only a present
	// but unreadable file is worth surfacing.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		SourceBucket:      os.Getenv(EnvSourceBucket),
		DestinationBucket: os.Getenv(EnvDestinationBucket),
		AWSKey:            os.Getenv(EnvAWSKey),
		AWSSecret:         os.Getenv(EnvAWSSecret),
		Region:            os.Getenv(EnvRegion),
		APIKey:            os.Getenv(EnvAPIKey),
		APIURL:            os.Getenv(EnvAPIURL),
		WorkDir:           os.Getenv(EnvWorkDir),
		PollInterval:      DefaultPollInterval,
		JobTimeout:        DefaultJobTimeout,
	}

	if d, err := envDuration(EnvPollInterval); err != nil {
		return nil, err
	} else if d > 0 {
		cfg.PollInterval = d
	}
	if d, err := envDuration(EnvJobTimeout); err != nil {
		return nil, err
	} else if d > 0 {
		cfg.JobTimeout = d
	}

	if err := cfg.applyFile(filePath()); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFile fills unset tunables from the YAML overrides file, if present.
func (c *Config) applyFile(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	var f fileOverrides
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if c.Region == "" {
		c.Region = f.Region
	}
	if c.APIURL == "" {
		c.APIURL = f.APIURL
	}
	if c.WorkDir == "" {
		c.WorkDir = f.WorkDir
	}
	if os.Getenv(EnvPollInterval) == "" && f.PollInterval != "" {
		d, err := time.ParseDuration(f.PollInterval)
		if err != nil {
			return fmt.Errorf("%w: poll_interval %q: %v", ErrInvalidConfig, f.PollInterval, err)
		}
		c.PollInterval = d
	}
	if os.Getenv(EnvJobTimeout) == "" && f.JobTimeout != "" {
		d, err := time.ParseDuration(f.JobTimeout)
		if err != nil {
			return fmt.Errorf("%w: job_timeout %q: %v", ErrInvalidConfig, f.JobTimeout, err)
		}
		c.JobTimeout = d
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.WorkDir == "" {
		c.WorkDir = defaultWorkDir()
	}
}

// Validate checks the assembled configuration and reports every problem at
// once, naming the environment variable for each missing credential.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	var b strings.Builder
	for _, fe := range verrs {
		if b.Len() > 0 {
			b.WriteString("; ")
		}
		switch fe.Tag() {
		case "required":
			fmt.Fprintf(&b, "%s is not set", envName(fe.Field()))
		case "url":
			fmt.Fprintf(&b, "%s is not a valid URL", envName(fe.Field()))
		default:
			fmt.Fprintf(&b, "%s failed %s check", fe.Field(), fe.Tag())
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, b.String())
}

// envName maps a Config field name back to the environment variable a user
// would need to set.
func envName(field string) string {
	switch field {
	case "SourceBucket":
		return EnvSourceBucket
	case "DestinationBucket":
		return EnvDestinationBucket
	case "AWSKey":
		return EnvAWSKey
	case "AWSSecret":
		return EnvAWSSecret
	case "Region":
		return EnvRegion
	case "APIKey":
		return EnvAPIKey
	case "APIURL":
		return EnvAPIURL
	case "WorkDir":
		return EnvWorkDir
	}
	return field
}

func envDuration(name string) (time.Duration, error) {
	v := os.Getenv(name)
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, name, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, name)
	}
	return d, nil
}

// filePathFunc returns the overrides file location. Tests override this to
// point at a temp directory.
var filePathFunc = defaultFilePath

func filePath() string { return filePathFunc() }

func defaultFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".docproc", "config.yaml")
}

func defaultWorkDir() string {
	cache, err := os.UserCacheDir()
	if err != nil {
		return "processed_files"
	}
	return filepath.Join(cache, "docproc", "processed_files")
}
