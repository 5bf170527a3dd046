package markdownparser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// ScriptBlock is one fenced code block extracted from a document
type ScriptBlock struct {
	Code      string // block contents without the fences
	Language  string // lowercased info string of the fence
	StartLine int    // 1-based line of the first content line
}

// DefaultLanguages are the fence info strings treated as build scripts
// when the caller does not name any
var DefaultLanguages = []string{"cmake"}

// ExtractScripts reads a Markdown document and returns the fenced code
// blocks whose language matches one of langs, case-insensitively. Each
// block keeps the line it starts on, so diagnostics for the extracted
// script can point back into the document.
func ExtractScripts(reader io.Reader, langs ...string) ([]ScriptBlock, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}
	if len(langs) == 0 {
		langs = DefaultLanguages
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
	doc := md.Parser().Parse(text.NewReader(content))

	var blocks []ScriptBlock

	err = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		codeBlock, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		language := blockLanguage(codeBlock, content)
		if !matchesLanguage(language, langs) {
			return ast.WalkContinue, nil
		}

		blocks = append(blocks, ScriptBlock{
			Code:      blockContent(codeBlock, content),
			Language:  language,
			StartLine: blockStartLine(codeBlock, content),
		})
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk markdown document: %w", err)
	}

	return blocks, nil
}

// blockLanguage extracts the fence info string, lowercased
func blockLanguage(codeBlock *ast.FencedCodeBlock, content []byte) string {
	if codeBlock.Info == nil {
		return ""
	}
	segment := codeBlock.Info.Segment
	return strings.ToLower(strings.TrimSpace(string(content[segment.Start:segment.Stop])))
}

func matchesLanguage(language string, langs []string) bool {
	for _, lang := range langs {
		if strings.EqualFold(language, lang) {
			return true
		}
	}
	return false
}

// blockContent joins the block's source lines without the fences
func blockContent(codeBlock *ast.FencedCodeBlock, content []byte) string {
	var builder strings.Builder

	lines := codeBlock.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		builder.Write(content[line.Start:line.Stop])
	}

	return strings.TrimRight(builder.String(), "\n")
}

// blockStartLine returns the line number of the first content line. An
// empty block has no content lines, so the fence's info line anchors it.
func blockStartLine(codeBlock *ast.FencedCodeBlock, content []byte) int {
	lines := codeBlock.Lines()
	if lines.Len() > 0 {
		return lineAt(content, lines.At(0).Start)
	}
	if codeBlock.Info != nil {
		return lineAt(content, codeBlock.Info.Segment.Start) + 1
	}
	return 0
}

// lineAt converts a byte offset to a 1-based line number
func lineAt(content []byte, offset int) int {
	return bytes.Count(content[:offset], []byte("\n")) + 1
}

// Source reassembles extracted blocks into a single script, padded with
// blank lines so every statement keeps the line number it has in the
// original document.
func Source(blocks []ScriptBlock) string {
	var builder strings.Builder

	line := 1
	for _, block := range blocks {
		for ; line < block.StartLine; line++ {
			builder.WriteByte('\n')
		}

		builder.WriteString(block.Code)
		builder.WriteByte('\n')
		line += strings.Count(block.Code, "\n") + 1
	}

	return builder.String()
}
