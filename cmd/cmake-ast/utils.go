package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	cmakeast "github.com/polysquare/cmake-ast"
	"github.com/polysquare/cmake-ast/markdownparser"
)

// readInput reads the named file, or stdin when filename is "-". The
// returned name is the one to use in diagnostics.
func readInput(filename string) ([]byte, string, error) {
	if filename == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read stdin: %w", err)
		}

		return data, "<stdin>", nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}

	return data, filename, nil
}

// scriptSource returns the CMake source of an input. Markdown documents
// are reduced to their fenced script blocks, reassembled at the original
// line offsets so positions in diagnostics match the document.
func scriptSource(data []byte, filename string, languages []string) (string, error) {
	if !isMarkdownFile(filename) {
		return string(data), nil
	}

	blocks, err := markdownparser.ExtractScripts(bytes.NewReader(data), languages...)
	if err != nil {
		return "", fmt.Errorf("failed to extract scripts from %s: %w", filename, err)
	}

	if len(blocks) == 0 {
		return "", fmt.Errorf("%w: %s", cmakeast.ErrNoScriptBlocks, filename)
	}

	return markdownparser.Source(blocks), nil
}

// isMarkdownFile checks if a file is a Markdown document
func isMarkdownFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".md" || ext == ".markdown"
}

// isCheckTarget reports whether a walked file should be parsed by check
func isCheckTarget(path string) bool {
	if strings.EqualFold(filepath.Base(path), "CMakeLists.txt") {
		return true
	}

	return strings.ToLower(filepath.Ext(path)) == ".cmake" || isMarkdownFile(path)
}

// applyColorMode maps the configured color mode onto the global color
// toggle. Mode auto keeps the library's terminal detection.
func applyColorMode(mode string) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}
}
