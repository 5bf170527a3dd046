package cmakeast

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".cmake-ast.yaml")
	err := os.WriteFile(path, []byte(content), 0o644)
	assert.NoError(t, err)

	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "no-such-file.yaml"))
	assert.NoError(t, err)
	assert.True(t, config != nil)

	assert.Equal(t, "text", config.Output.Format)
	assert.Equal(t, "auto", config.Output.Color)
	assert.Equal(t, 2, config.Output.Indent)
	assert.Equal(t, "", config.Output.Path)
	assert.Equal(t, []string{"cmake"}, config.Markdown.Languages)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfigFile(t, `
output:
  format: json
  indent: 4
markdown:
  languages:
    - cmake
    - bash
`)

	config, err := LoadConfig(path)
	assert.NoError(t, err)

	assert.Equal(t, "json", config.Output.Format)
	assert.Equal(t, 4, config.Output.Indent)
	assert.Equal(t, []string{"cmake", "bash"}, config.Markdown.Languages)

	// Missing fields fall back to defaults
	assert.Equal(t, "auto", config.Output.Color)
	assert.Equal(t, "", config.Output.Path)
}

func TestLoadConfigUnknownField(t *testing.T) {
	path := writeConfigFile(t, `
output:
  format: text
formatting:
  style: fancy
`)

	config, err := LoadConfig(path)
	assert.Error(t, err)
	assert.True(t, config == nil)
}

func TestLoadConfigValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "invalid format",
			content: `
output:
  format: xml
`,
		},
		{
			name: "invalid color mode",
			content: `
output:
  color: blue
`,
		},
		{
			name: "negative indent",
			content: `
output:
  indent: -2
`,
		},
		{
			name: "empty language entry",
			content: `
markdown:
  languages:
    - cmake
    - "  "
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.content)

			config, err := LoadConfig(path)
			assert.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfigValidation))
			assert.True(t, config == nil)
		})
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"zero config", Config{}, false},
		{"valid full config", Config{
			Output:   OutputConfig{Format: "yaml", Color: "never", Indent: 2, Path: "out.yaml"},
			Markdown: MarkdownConfig{Languages: []string{"cmake"}},
		}, false},
		{"invalid format", Config{Output: OutputConfig{Format: "csv"}}, true},
		{"invalid color", Config{Output: OutputConfig{Color: "sometimes"}}, true},
		{"negative indent", Config{Output: OutputConfig{Indent: -1}}, true},
		{"blank language", Config{Markdown: MarkdownConfig{Languages: []string{""}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfig(&tt.config)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ErrConfigValidation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	config := &Config{}
	applyDefaults(config)

	assert.Equal(t, "text", config.Output.Format)
	assert.Equal(t, "auto", config.Output.Color)
	assert.Equal(t, 2, config.Output.Indent)
	assert.Equal(t, []string{"cmake"}, config.Markdown.Languages)

	// Explicit values survive
	config = &Config{
		Output:   OutputConfig{Format: "json", Color: "always", Indent: 4},
		Markdown: MarkdownConfig{Languages: []string{"bash"}},
	}
	applyDefaults(config)

	assert.Equal(t, "json", config.Output.Format)
	assert.Equal(t, "always", config.Output.Color)
	assert.Equal(t, 4, config.Output.Indent)
	assert.Equal(t, []string{"bash"}, config.Markdown.Languages)
}

func TestLoadConfigEnvExpansion(t *testing.T) {
	t.Setenv("CMAKE_AST_OUT_DIR", "/var/dumps")

	path := writeConfigFile(t, `
output:
  path: ${CMAKE_AST_OUT_DIR}/tree.txt
`)

	config, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, "/var/dumps/tree.txt", config.Output.Path)
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("CMAKE_AST_TEST_VAR", "value")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"braced", "${CMAKE_AST_TEST_VAR}", "value"},
		{"bare", "$CMAKE_AST_TEST_VAR", "value"},
		{"embedded", "out/${CMAKE_AST_TEST_VAR}/x", "out/value/x"},
		{"unset braced", "${CMAKE_AST_NO_SUCH_VAR}", ""},
		{"no variables", "plain/path.txt", "plain/path.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandEnvVars(tt.input))
		})
	}
}
