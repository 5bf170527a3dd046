package printer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/polysquare/cmake-ast/ast"
)

// ErrInvalidOutputFormat is returned for formats Print does not support
var ErrInvalidOutputFormat = errors.New("invalid output format")

// OutputFormat represents the supported dump formats
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// IsValidOutputFormat checks if the output format is valid
func IsValidOutputFormat(format string) bool {
	f := OutputFormat(strings.ToLower(format))
	return f == FormatText || f == FormatJSON || f == FormatYAML
}

// defaultIndent is the indent width used when none is configured
const defaultIndent = 2

// Printer renders parse trees for inspection
type Printer struct {
	Format OutputFormat

	// Indent is the number of spaces per nesting level in json and yaml
	// output. Zero or negative falls back to the default width.
	Indent int
}

// NewPrinter creates a new tree printer
func NewPrinter(format OutputFormat) *Printer {
	return &Printer{Format: format, Indent: defaultIndent}
}

// Print renders node to output in the configured format
func (p *Printer) Print(node ast.AstNode, output io.Writer) error {
	switch p.Format {
	case FormatText:
		return p.printText(node, output)
	case FormatJSON:
		return p.printJSON(node, output)
	case FormatYAML:
		return p.printYAML(node, output)
	default:
		return fmt.Errorf("%w: %s", ErrInvalidOutputFormat, p.Format)
	}
}

// printText writes one line per node: depth, indent, kind and position,
// plus the call name or word contents where the node carries one. The
// root body itself gets no line.
func (p *Printer) printText(node ast.AstNode, output io.Writer) error {
	var writeErr error

	ast.Inspect(node, func(n ast.AstNode, depth int) bool {
		if writeErr != nil {
			return false
		}
		if n.Type() == ast.TOPLEVEL_BODY {
			return true
		}
		_, writeErr = fmt.Fprintln(output, nodeLine(n, depth))
		return writeErr == nil
	})

	return writeErr
}

func (p *Printer) printJSON(node ast.AstNode, output io.Writer) error {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", strings.Repeat(" ", p.indentWidth()))
	return encoder.Encode(Tree(node))
}

func (p *Printer) printYAML(node ast.AstNode, output io.Writer) error {
	encoder := yaml.NewEncoder(output, yaml.Indent(p.indentWidth()))
	defer encoder.Close()

	if err := encoder.Encode(Tree(node)); err != nil {
		return fmt.Errorf("failed to marshal tree to YAML: %w", err)
	}

	return nil
}

func (p *Printer) indentWidth() int {
	if p.Indent <= 0 {
		return defaultIndent
	}
	return p.Indent
}

// nodeLine renders a single dump line
func nodeLine(node ast.AstNode, depth int) string {
	pos := node.Position()
	line := fmt.Sprintf("%d%s %s (%d:%d)",
		depth, strings.Repeat(" ", depth), node.Type(), pos.Line, pos.Column)

	switch n := node.(type) {
	case *ast.FunctionCall:
		if n.Name != nil {
			line += " [" + n.Name.Contents + "]"
		}
	case *ast.Word:
		line += " [" + n.String() + "]"
	}

	return line
}

// Text renders the text dump as a string
func Text(node ast.AstNode) string {
	var builder strings.Builder
	printer := NewPrinter(FormatText)
	_ = printer.Print(node, &builder) // strings.Builder writes cannot fail
	return builder.String()
}
