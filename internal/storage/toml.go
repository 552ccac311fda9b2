package storage

import (
	"github.com/pelletier/go-toml/v2"

	"github.com/pstuifzand/tui-flamechart/internal/model"
)

type tomlCodec struct{}

func (tomlCodec) decode(data []byte) (*model.Dataset, error) {
	var ds model.Dataset
	if err := toml.Unmarshal(data, &ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

func (tomlCodec) encode(ds *model.Dataset) ([]byte, error) {
	return toml.Marshal(ds)
}
