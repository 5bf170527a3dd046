package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	cmakeast "github.com/polysquare/cmake-ast"
	"github.com/polysquare/cmake-ast/parser"
	"github.com/polysquare/cmake-ast/printer"
)

var ErrOutputFileCreation = errors.New("failed to create output file")

// DumpCmd represents the dump command
type DumpCmd struct {
	File   string `arg:"" help:"CMake file, Markdown document, or - for stdin"`
	Format string `short:"f" help:"Output format: text, json or yaml (default from config)"`
	Output string `short:"o" help:"Output file (default: stdout)"`
}

// Run executes the dump command
func (cmd *DumpCmd) Run(ctx *Context) error {
	config, err := cmakeast.LoadConfig(ctx.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	applyColorMode(config.Output.Color)

	format := strings.ToLower(cmd.Format)
	if format == "" {
		format = config.Output.Format
	}

	if !printer.IsValidOutputFormat(format) {
		return fmt.Errorf("%w: %s", printer.ErrInvalidOutputFormat, format)
	}

	data, filename, err := readInput(cmd.File)
	if err != nil {
		return err
	}

	source, err := scriptSource(data, filename, config.Markdown.Languages)
	if err != nil {
		return err
	}

	if ctx.Verbose {
		color.Blue("Parsing %s", filename)
	}

	tree, err := parser.Parse(source)
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}

	// Determine output destination
	var output *os.File

	outputPath := cmd.Output
	if outputPath == "" {
		outputPath = config.Output.Path
	}

	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrOutputFileCreation, err)
		}
		defer file.Close()

		output = file
	} else {
		output = os.Stdout
	}

	treePrinter := printer.NewPrinter(printer.OutputFormat(format))
	treePrinter.Indent = config.Output.Indent

	return treePrinter.Print(tree, output)
}
