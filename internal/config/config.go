// Package config loads run settings from built-in defaults, an optional
// YAML file and CDMEC_* environment variables (a .env file is honored).
// Command-line flags are applied on top by the cli packages.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"cdmec/internal/artifact"
	"cdmec/internal/engine"
	"cdmec/internal/search"
)

// Config holds all run configuration.
type Config struct {
	Search    SearchConfig   `yaml:"search"`
	Threshold int            `yaml:"threshold"`
	Workers   int            `yaml:"workers"`
	DedupeCap int            `yaml:"dedupe_cap"`
	OutputDir string         `yaml:"output_dir"`
	StoreDSN  string         `yaml:"store_dsn"`
	Artifact  ArtifactConfig `yaml:"artifact"`
	Rules     []RuleConfig   `yaml:"rules"`
	Log       LogConfig      `yaml:"log"`
}

// SearchConfig describes the homology search step.
type SearchConfig struct {
	ARGTool     string `yaml:"arg_tool"`
	MGETool     string `yaml:"mge_tool"`
	ARGDB       string `yaml:"arg_db"`
	MGEDB       string `yaml:"mge_db"`
	Threads     int    `yaml:"threads"`
	EValue      string `yaml:"evalue"`
	TimeoutSecs int    `yaml:"timeout_secs"`
	// HitsDir switches to precomputed <sample>.arg.tsv / .mge.tsv tables.
	HitsDir string `yaml:"hits_dir"`
}

// ArtifactConfig selects where per-sample reports are written.
type ArtifactConfig struct {
	Backend   string `yaml:"backend"` // fs | s3
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// RuleConfig is one keyword rule of a custom status taxonomy.
type RuleConfig struct {
	Label        string   `yaml:"label"`
	Contains     []string `yaml:"contains"`
	ContainsFold []string `yaml:"contains_fold"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text | json
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Search: SearchConfig{
			ARGTool:     search.DefaultARGTool,
			MGETool:     search.DefaultMGETool,
			ARGDB:       "card_protein_homolog_db",
			MGEDB:       "combined_C_Diff_mge_nucl_db",
			Threads:     4,
			EValue:      search.DefaultEValue,
			TimeoutSecs: int(search.DefaultTimeout / time.Second),
		},
		Threshold: engine.DefaultThreshold,
		Workers:   2,
		OutputDir: "./cdmec_analysis_reports",
		Artifact:  ArtifactConfig{Backend: "fs", Region: "us-east-1"},
		Log:       LogConfig{Level: "info", Format: "text"},
	}
}

// Load layers an optional YAML file and the environment over Defaults.
// Variables from envFiles (default ".env", ignored when absent) are added
// to the process environment without overriding it.
func Load(path string, envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFiles...); err != nil {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config yaml: %w", err)
		}
	}
	if err := applyEnvironmentOverrides(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnvironmentOverrides(cfg *Config) error {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
		return nil
	}

	str("CDMEC_ARG_TOOL", &cfg.Search.ARGTool)
	str("CDMEC_MGE_TOOL", &cfg.Search.MGETool)
	str("CDMEC_ARG_DB", &cfg.Search.ARGDB)
	str("CDMEC_MGE_DB", &cfg.Search.MGEDB)
	str("CDMEC_EVALUE", &cfg.Search.EValue)
	str("CDMEC_HITS_DIR", &cfg.Search.HitsDir)
	str("CDMEC_OUTPUT_DIR", &cfg.OutputDir)
	str("CDMEC_STORE_DSN", &cfg.StoreDSN)
	str("CDMEC_LOG_LEVEL", &cfg.Log.Level)
	str("CDMEC_LOG_FORMAT", &cfg.Log.Format)

	str("CDMEC_ARTIFACT_BACKEND", &cfg.Artifact.Backend)
	str("CDMEC_S3_ENDPOINT", &cfg.Artifact.Endpoint)
	str("CDMEC_S3_REGION", &cfg.Artifact.Region)
	cfg.Artifact.AccessKey = firstNonEmpty(os.Getenv("CDMEC_S3_ACCESS_KEY"), os.Getenv("MINIO_ROOT_USER"), cfg.Artifact.AccessKey)
	cfg.Artifact.SecretKey = firstNonEmpty(os.Getenv("CDMEC_S3_SECRET_KEY"), os.Getenv("MINIO_ROOT_PASSWORD"), cfg.Artifact.SecretKey)
	str("CDMEC_S3_BUCKET", &cfg.Artifact.Bucket)
	str("CDMEC_S3_PREFIX", &cfg.Artifact.Prefix)
	if v := strings.TrimSpace(os.Getenv("CDMEC_S3_USE_SSL")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CDMEC_S3_USE_SSL: %w", err)
		}
		cfg.Artifact.UseSSL = b
	}

	for key, dst := range map[string]*int{
		"CDMEC_BLAST_THREADS": &cfg.Search.Threads,
		"CDMEC_TIMEOUT_SECS":  &cfg.Search.TimeoutSecs,
		"CDMEC_THRESHOLD":     &cfg.Threshold,
		"CDMEC_WORKERS":       &cfg.Workers,
		"CDMEC_DEDUPE_CAP":    &cfg.DedupeCap,
	} {
		if err := num(key, dst); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	if c.Threshold < 0 {
		return fmt.Errorf("threshold must be >= 0, got %d", c.Threshold)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.DedupeCap < 0 {
		return fmt.Errorf("dedupe_cap must be >= 0, got %d", c.DedupeCap)
	}
	if c.Search.Threads < 0 {
		return fmt.Errorf("search.threads must be >= 0, got %d", c.Search.Threads)
	}
	if c.Search.TimeoutSecs <= 0 {
		return fmt.Errorf("search.timeout_secs must be > 0, got %d", c.Search.TimeoutSecs)
	}
	if c.Search.HitsDir == "" && (c.Search.ARGDB == "" || c.Search.MGEDB == "") {
		return fmt.Errorf("search.arg_db and search.mge_db are required unless hits_dir is set")
	}
	switch c.Artifact.Backend {
	case "fs":
		if strings.TrimSpace(c.OutputDir) == "" {
			return fmt.Errorf("output_dir is required")
		}
	case "s3":
		if c.Artifact.Endpoint == "" || c.Artifact.Bucket == "" {
			return fmt.Errorf("artifact.endpoint and artifact.bucket are required for the s3 backend")
		}
	default:
		return fmt.Errorf("artifact.backend must be fs or s3, got %q", c.Artifact.Backend)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	for i, r := range c.Rules {
		if strings.TrimSpace(r.Label) == "" {
			return fmt.Errorf("rules[%d]: label is required", i)
		}
		if len(r.Contains)+len(r.ContainsFold) == 0 {
			return fmt.Errorf("rules[%d] (%s): at least one keyword is required", i, r.Label)
		}
	}
	return nil
}

// SearchTimeout returns the per-search timeout.
func (c Config) SearchTimeout() time.Duration {
	return time.Duration(c.Search.TimeoutSecs) * time.Second
}

// EngineRules builds the status taxonomy. Without custom rules it returns
// nil so the resolver uses its stock taxonomy. Custom keyword rules are
// bracketed by the overlap rule and the generic fallback.
func (c Config) EngineRules() []engine.Rule {
	if len(c.Rules) == 0 {
		return nil
	}
	out := []engine.Rule{engine.EmbeddedRule()}
	for _, r := range c.Rules {
		out = append(out, engine.KeywordRule(r.Label, r.Contains, r.ContainsFold))
	}
	return append(out, engine.FallbackRule(engine.CategoryGeneric))
}

// S3 returns the report bucket settings.
func (c Config) S3() artifact.S3Config {
	a := c.Artifact
	return artifact.S3Config{
		Endpoint:  a.Endpoint,
		Region:    a.Region,
		AccessKey: a.AccessKey,
		SecretKey: a.SecretKey,
		Bucket:    a.Bucket,
		Prefix:    a.Prefix,
		UseSSL:    a.UseSSL,
	}
}

// ParseLevel maps a level name to slog.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return l, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
