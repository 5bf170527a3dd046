package cmakeast

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// ErrConfigValidation is returned when configuration validation fails
var ErrConfigValidation = errors.New("configuration validation failed")

// Config represents the cmake-ast tool configuration
type Config struct {
	Output   OutputConfig   `yaml:"output"`
	Markdown MarkdownConfig `yaml:"markdown"`
}

// OutputConfig represents AST dump output settings
type OutputConfig struct {
	// Format selects the dump rendering: text, json or yaml
	Format string `yaml:"format"`

	// Color controls diagnostic coloring: auto, always or never
	Color string `yaml:"color"`

	// Indent is the number of spaces per nesting level in json and yaml output
	Indent int `yaml:"indent"`

	// Path is the default output file, empty means stdout
	Path string `yaml:"path"`
}

// MarkdownConfig represents fenced code block extraction settings
type MarkdownConfig struct {
	// Languages lists the fence info strings treated as CMake scripts
	Languages []string `yaml:"languages"`
}

// LoadConfig loads configuration from the specified file
func LoadConfig(configPath string) (*Config, error) {
	// Load .env files first
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	// Check if config file exists
	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		// Return default configuration if file doesn't exist
		config := getDefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML with strict mode to detect unknown fields
	var config Config

	err = yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Validate the configuration
	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	// Apply defaults for missing values
	applyDefaults(&config)

	// Expand environment variables
	expandConfigEnvVars(&config)

	return &config, nil
}

// validateConfig validates the configuration for common errors and inconsistencies
func validateConfig(config *Config) error {
	validFormats := map[string]bool{
		"text": true,
		"json": true,
		"yaml": true,
	}
	if config.Output.Format != "" && !validFormats[config.Output.Format] {
		return fmt.Errorf("%w: invalid output format '%s': must be one of text, json, yaml", ErrConfigValidation, config.Output.Format)
	}

	validColorModes := map[string]bool{
		"auto":   true,
		"always": true,
		"never":  true,
	}
	if config.Output.Color != "" && !validColorModes[config.Output.Color] {
		return fmt.Errorf("%w: invalid color mode '%s': must be one of auto, always, never", ErrConfigValidation, config.Output.Color)
	}

	if config.Output.Indent < 0 {
		return fmt.Errorf("%w: output.indent must be non-negative, got %d", ErrConfigValidation, config.Output.Indent)
	}

	for _, lang := range config.Markdown.Languages {
		if strings.TrimSpace(lang) == "" {
			return fmt.Errorf("%w: markdown.languages must not contain empty entries", ErrConfigValidation)
		}
	}

	return nil
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *Config {
	config := &Config{}
	applyDefaults(config)

	return config
}

// applyDefaults applies default values to missing configuration fields
func applyDefaults(config *Config) {
	if config.Output.Format == "" {
		config.Output.Format = "text"
	}

	if config.Output.Color == "" {
		config.Output.Color = "auto"
	}

	if config.Output.Indent == 0 {
		config.Output.Indent = 2
	}

	if len(config.Markdown.Languages) == 0 {
		config.Markdown.Languages = []string{"cmake"}
	}
}

// loadEnvFiles loads .env files if they exist
func loadEnvFiles() error {
	// Try to load .env file from current directory
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	// Pattern for ${VAR} format
	re1 := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re1.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1] // Remove ${ and }
		return os.Getenv(varName)
	})

	// Pattern for $VAR format (word boundaries)
	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:] // Remove $
		return os.Getenv(varName)
	})

	return s
}

// expandConfigEnvVars expands environment variables in config path fields
func expandConfigEnvVars(config *Config) {
	config.Output.Path = expandEnvVars(config.Output.Path)
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
