package cmakeast

import "errors"

// Common errors shared by the cmake-ast commands
var (
	// ErrNoInputFiles indicates no CMake sources were found under the given paths.
	ErrNoInputFiles = errors.New("no CMake files found")
	// ErrNoScriptBlocks indicates a Markdown document contained no matching fenced blocks.
	ErrNoScriptBlocks = errors.New("no script blocks found in document")
)
