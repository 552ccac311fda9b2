package storage

import (
	"github.com/pstuifzand/tui-flamechart/internal/export"
	import_parser "github.com/pstuifzand/tui-flamechart/internal/import"
	"github.com/pstuifzand/tui-flamechart/internal/model"
)

// textCodec reads and writes the indented text outline format
type textCodec struct{}

func (textCodec) decode(data []byte) (*model.Dataset, error) {
	return import_parser.ImportFile(string(data), import_parser.FormatIndentedText)
}

func (textCodec) encode(ds *model.Dataset) ([]byte, error) {
	return export.Indented(ds), nil
}
