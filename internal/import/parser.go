// Package import_parser reads hand-written trace outlines into datasets
package import_parser

import (
	"fmt"

	"github.com/pstuifzand/tui-flamechart/internal/model"
)

// ImportFormat names an outline syntax
type ImportFormat string

const (
	FormatIndentedText ImportFormat = "indented"
)

// Parser turns outline text into a dataset
type Parser interface {
	Parse(content string) (*model.Dataset, error)
	Name() string
}

var parsers = map[ImportFormat]func() Parser{
	FormatIndentedText: func() Parser { return &IndentedTextParser{} },
}

// ImportFile parses content written in format. Errors are prefixed with the
// parser name.
func ImportFile(content string, format ImportFormat) (*model.Dataset, error) {
	newParser, ok := parsers[format]
	if !ok {
		return nil, fmt.Errorf("unsupported import format %q", format)
	}

	p := newParser()
	ds, err := p.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name(), err)
	}
	return ds, nil
}
