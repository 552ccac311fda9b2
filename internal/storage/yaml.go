package storage

import (
	"gopkg.in/yaml.v3"

	"github.com/pstuifzand/tui-flamechart/internal/model"
)

type yamlCodec struct{}

func (yamlCodec) decode(data []byte) (*model.Dataset, error) {
	var ds model.Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

func (yamlCodec) encode(ds *model.Dataset) ([]byte, error) {
	return yaml.Marshal(ds)
}
