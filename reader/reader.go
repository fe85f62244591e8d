// Package reader loads source files into the padded buffer shape the
// classifier and s-expression index expect (spec.md §6 "Input"),
// grounded on original_source/src/AlignedFileReader.cpp's block layout:
// file bytes followed by one tile's worth of sentinel padding.
package reader

import (
	"fmt"
	"os"

	"github.com/yazandaba/widelips"
)

// ReadFile reads path and returns its contents padded per widelips.Pad.
// A missing file is not an error here: AlignedFileReader.cpp's own
// "!exists(filePath)" branch returns an all-padding, empty-content
// block rather than failing, and callers that do want a hard failure on
// a missing path should stat it themselves before calling ReadFile.
func ReadFile(path string) ([]byte, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return widelips.Pad(nil), nil
	}

	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reader: read %s: %w", path, err)
	}
	return widelips.Pad(content), nil
}

// ReadAll pads an already-in-memory buffer, for callers that read from
// stdin or a network connection instead of a filesystem path.
func ReadAll(content []byte) []byte {
	return widelips.Pad(content)
}
