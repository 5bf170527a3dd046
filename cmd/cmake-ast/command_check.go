package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	cmakeast "github.com/polysquare/cmake-ast"
	"github.com/polysquare/cmake-ast/parser"
)

var ErrChecksFailed = errors.New("some files failed to parse")

// CheckCmd represents the check command
type CheckCmd struct {
	Paths []string `arg:"" name:"path" help:"Files or directories to check"`
}

// Run executes the check command
func (cmd *CheckCmd) Run(ctx *Context) error {
	config, err := cmakeast.LoadConfig(ctx.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	applyColorMode(config.Output.Color)

	files, err := collectCheckFiles(cmd.Paths)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("%w: %s", cmakeast.ErrNoInputFiles, strings.Join(cmd.Paths, ", "))
	}

	if ctx.Verbose {
		color.Blue("Checking %d files", len(files))
	}

	failed := 0

	for _, path := range files {
		if err := checkFile(path, config); err != nil {
			color.Red("ERROR %s: %v", path, err)

			failed++

			continue
		}

		if !ctx.Quiet {
			color.Green("OK %s", path)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrChecksFailed, failed, len(files))
	}

	return nil
}

// collectCheckFiles expands the given paths into the list of files to
// parse. Directories are walked recursively for CMakeLists.txt, .cmake
// scripts and Markdown documents; named files are taken as they are.
func collectCheckFiles(paths []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat input: %w", err)
		}

		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		err = filepath.Walk(path, func(walked string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				return nil
			}

			if isCheckTarget(walked) {
				files = append(files, walked)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk directory: %w", err)
		}
	}

	return files, nil
}

// checkFile parses a single file and reports the first error found
func checkFile(path string, config *cmakeast.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	source, err := scriptSource(data, path, config.Markdown.Languages)
	if err != nil {
		// A document without script blocks has nothing to check
		if errors.Is(err, cmakeast.ErrNoScriptBlocks) {
			return nil
		}

		return err
	}

	_, err = parser.Parse(source)

	return err
}
