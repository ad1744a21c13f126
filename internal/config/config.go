// Copyright (c) "Neo4j"
// Neo4j Sweden AB [http://neo4j.com]

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/neo4j/graphsemantics/internal/logger"
)

type TransportMode string

type MatchPolicy string

const (
	TransportModeStdio TransportMode = "stdio"
	TransportModeHTTP  TransportMode = "http"

	// MatchExact resolves candidates by title/name equality.
	MatchExact MatchPolicy = "exact"
	// MatchContains resolves candidates by substring containment.
	MatchContains MatchPolicy = "contains"

	DefaultModel         = "gpt-3.5-turbo"
	DefaultAgentMaxSteps = 5
	DefaultDatasetURL    = "https://raw.githubusercontent.com/tomasonjo/blog-datasets/main/movies/movies_small.csv"
)

// ValidTransportModes defines the allowed transport mode values
var ValidTransportModes = []TransportMode{TransportModeStdio, TransportModeHTTP}

// ValidMatchPolicies defines the allowed candidate matching policies
var ValidMatchPolicies = []MatchPolicy{MatchExact, MatchContains}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config holds the application configuration
type Config struct {
	URI      string `validate:"required"`
	Username string `validate:"required"`
	Password string `validate:"required"`
	Database string

	OpenAIAPIKey  string
	OpenAIBaseURL string  `validate:"omitempty,url"`
	Model         string  `validate:"required"`
	Temperature   float64 `validate:"gte=0,lte=2"`
	AgentMaxSteps int     `validate:"gte=1,lte=20"`

	MatchPolicy  MatchPolicy   `validate:"oneof=exact contains"`
	QueryTimeout time.Duration `validate:"gte=0"` // zero means no gateway timeout
	DatasetURL   string        `validate:"required,url"`

	ReadOnly  bool // If true, the import tool is not exposed over MCP
	LogLevel  string
	LogFormat string

	TransportMode      TransportMode `validate:"oneof=stdio http"`
	HTTPHost           string
	HTTPPort           string
	HTTPAllowedOrigins string // Comma-separated list of allowed CORS origins (optional, "*" for all)
}

// fieldMessages maps validator failures to the messages users see.
var fieldMessages = map[string]string{
	"URI.required":        "Neo4j URI is required but was empty",
	"Username.required":   "Neo4j username is required but was empty",
	"Password.required":   "Neo4j password is required but was empty",
	"Model.required":      "model name is required but was empty",
	"DatasetURL.required": "dataset URL is required but was empty",
	"DatasetURL.url":      "dataset URL must be an absolute URL",
	"OpenAIBaseURL.url":   "OpenAI base URL must be an absolute URL",
	"Temperature.gte":     "temperature must be between 0 and 2",
	"Temperature.lte":     "temperature must be between 0 and 2",
	"AgentMaxSteps.gte":   "agent max steps must be between 1 and 20",
	"AgentMaxSteps.lte":   "agent max steps must be between 1 and 20",
	"QueryTimeout.gte":    "query timeout must not be negative",
	"MatchPolicy.oneof":   fmt.Sprintf("invalid match policy, must be one of %v", ValidMatchPolicies),
	"TransportMode.oneof": fmt.Sprintf("invalid transport mode, must be one of %v", ValidTransportModes),
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("configuration is required but was nil")
	}

	// Defaults for configs constructed directly (tests, embedding callers).
	if c.TransportMode == "" {
		c.TransportMode = TransportModeStdio
	}
	if c.MatchPolicy == "" {
		c.MatchPolicy = MatchExact
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.AgentMaxSteps == 0 {
		c.AgentMaxSteps = DefaultAgentMaxSteps
	}
	if c.DatasetURL == "" {
		c.DatasetURL = DefaultDatasetURL
	}

	if err := validate.Struct(c); err != nil {
		return validationError(err)
	}
	return nil
}

// ValidateAgent checks the settings only the natural-language agent needs.
func (c *Config) ValidateAgent() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OpenAI API key is required for natural language queries (set OPENAI_API_KEY)")
	}
	return nil
}

// AllowedOrigins splits HTTPAllowedOrigins into a list, dropping blanks.
func (c *Config) AllowedOrigins() []string {
	if c.HTTPAllowedOrigins == "" {
		return nil
	}
	var origins []string
	for _, origin := range strings.Split(c.HTTPAllowedOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	// Report the first failure, matching the order of the struct fields.
	fe := verrs[0]
	if msg, ok := fieldMessages[fe.StructField()+"."+fe.Tag()]; ok {
		return errors.New(msg)
	}
	return fmt.Errorf("invalid configuration: field '%s' failed rule '%s' (got '%v')", fe.StructField(), fe.Tag(), fe.Value())
}

// CLIOverrides holds optional configuration values from CLI flags
type CLIOverrides struct {
	URI         string
	Username    string
	Password    string
	Database    string
	Model       string
	Temperature string
	MatchPolicy string
	ReadOnly    string
	Transport   string
	Port        string
	Host        string
	LogLevel    string
}

// LoadEnvFile loads variables from a dotenv file without overriding variables already set.
// An empty path loads ./.env when present.
func LoadEnvFile(path string) error {
	if path == "" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// LoadConfig loads configuration from environment variables, applies CLI overrides, and validates.
// CLI flag values take precedence over environment variables.
func LoadConfig(cliOverrides *CLIOverrides) (*Config, error) {
	logLevel := GetEnvWithDefault("GRAPHSEMANTICS_LOG_LEVEL", "info")
	logFormat := GetEnvWithDefault("GRAPHSEMANTICS_LOG_FORMAT", "text")

	if !slices.Contains(logger.ValidLogFormats, logFormat) {
		fmt.Fprintf(os.Stderr, "Warning: invalid GRAPHSEMANTICS_LOG_FORMAT '%s', using default 'text'. Valid values: %v\n", logFormat, logger.ValidLogFormats)
		logFormat = "text"
	}

	cfg := &Config{
		URI:                GetEnv("NEO4J_URI"),
		Username:           GetEnv("NEO4J_USERNAME"),
		Password:           GetEnv("NEO4J_PASSWORD"),
		Database:           GetEnvWithDefault("NEO4J_DATABASE", "neo4j"),
		OpenAIAPIKey:       GetEnv("OPENAI_API_KEY"),
		OpenAIBaseURL:      GetEnv("OPENAI_BASE_URL"),
		Model:              GetEnvWithDefault("GRAPHSEMANTICS_MODEL", DefaultModel),
		Temperature:        ParseFloat(GetEnv("GRAPHSEMANTICS_TEMPERATURE"), 0),
		AgentMaxSteps:      ParseInt(GetEnv("GRAPHSEMANTICS_AGENT_MAX_STEPS"), DefaultAgentMaxSteps),
		MatchPolicy:        MatchPolicy(GetEnvWithDefault("GRAPHSEMANTICS_MATCH_POLICY", string(MatchExact))),
		QueryTimeout:       ParseDuration(GetEnv("GRAPHSEMANTICS_QUERY_TIMEOUT"), 0),
		DatasetURL:         GetEnvWithDefault("GRAPHSEMANTICS_DATASET_URL", DefaultDatasetURL),
		ReadOnly:           ParseBool(GetEnv("GRAPHSEMANTICS_READ_ONLY"), false),
		LogLevel:           logLevel,
		LogFormat:          logFormat,
		TransportMode:      TransportMode(GetEnvWithDefault("GRAPHSEMANTICS_TRANSPORT", string(TransportModeStdio))),
		HTTPHost:           GetEnvWithDefault("GRAPHSEMANTICS_HTTP_HOST", "127.0.0.1"),
		HTTPPort:           GetEnvWithDefault("GRAPHSEMANTICS_HTTP_PORT", "8080"),
		HTTPAllowedOrigins: GetEnv("GRAPHSEMANTICS_HTTP_ALLOWED_ORIGINS"),
	}

	if cliOverrides != nil {
		applyOverrides(cfg, cliOverrides)
	}

	if !slices.Contains(logger.ValidLogLevels, strings.ToLower(cfg.LogLevel)) {
		fmt.Fprintf(os.Stderr, "Warning: invalid log level '%s', using default 'info'. Valid values: %v\n", cfg.LogLevel, logger.ValidLogLevels)
		cfg.LogLevel = "info"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyOverrides(cfg *Config, o *CLIOverrides) {
	if o.URI != "" {
		cfg.URI = o.URI
	}
	if o.Username != "" {
		cfg.Username = o.Username
	}
	if o.Password != "" {
		cfg.Password = o.Password
	}
	if o.Database != "" {
		cfg.Database = o.Database
	}
	if o.Model != "" {
		cfg.Model = o.Model
	}
	if o.Temperature != "" {
		cfg.Temperature = ParseFloat(o.Temperature, cfg.Temperature)
	}
	if o.MatchPolicy != "" {
		cfg.MatchPolicy = MatchPolicy(o.MatchPolicy)
	}
	if o.ReadOnly != "" {
		cfg.ReadOnly = ParseBool(o.ReadOnly, cfg.ReadOnly)
	}
	if o.Transport != "" {
		cfg.TransportMode = TransportMode(o.Transport)
	}
	if o.Port != "" {
		cfg.HTTPPort = o.Port
	}
	if o.Host != "" {
		cfg.HTTPHost = o.Host
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
}

// GetEnv returns the value of an environment variable or empty string if not set
func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetEnvWithDefault returns the value of an environment variable or a default value
func GetEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// ParseBool parses a string to bool using strconv.ParseBool.
// Returns the default value if the string is empty or invalid.
func ParseBool(value string, defaultValue bool) bool {
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Warning: Invalid boolean value %q, using default: %v", value, defaultValue)
		return defaultValue
	}
	return parsed
}

// ParseInt parses a base 10 integer, returning the default value if empty or invalid.
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: Invalid integer value %q, using default: %v", value, defaultValue)
		return defaultValue
	}
	return parsed
}

// ParseFloat parses a float, returning the default value if empty or invalid.
func ParseFloat(value string, defaultValue float64) float64 {
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value %q, using default: %v", value, defaultValue)
		return defaultValue
	}
	return parsed
}

// ParseDuration parses a Go duration ("30s", "1m"), returning the default value if empty or invalid.
func ParseDuration(value string, defaultValue time.Duration) time.Duration {
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: Invalid duration value %q, using default: %v", value, defaultValue)
		return defaultValue
	}
	return parsed
}
