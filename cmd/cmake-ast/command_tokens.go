package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	cmakeast "github.com/polysquare/cmake-ast"
	"github.com/polysquare/cmake-ast/tokenizer"
)

// TokensCmd represents the tokens command
type TokensCmd struct {
	File         string `arg:"" help:"CMake file, Markdown document, or - for stdin"`
	SkipComments bool   `help:"Drop comment and documentation tokens"`
	Output       string `short:"o" help:"Output file (default: stdout)"`
}

// Run executes the tokens command
func (cmd *TokensCmd) Run(ctx *Context) error {
	config, err := cmakeast.LoadConfig(ctx.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
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
		color.Blue("Tokenizing %s", filename)
	}

	// Determine output destination
	var output *os.File

	if cmd.Output != "" {
		file, err := os.Create(cmd.Output)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrOutputFileCreation, err)
		}
		defer file.Close()

		output = file
	} else {
		output = os.Stdout
	}

	scriptTokenizer := tokenizer.NewScriptTokenizer(source, tokenizer.TokenizerOptions{
		SkipComments: cmd.SkipComments,
	})

	for token, err := range scriptTokenizer.Tokens() {
		if err != nil {
			return fmt.Errorf("%s: %w", filename, err)
		}

		fmt.Fprintf(output, "%d:%d %s %s\n",
			token.Position.Line, token.Position.Column, token.Type, token.Value)
	}

	return nil
}
