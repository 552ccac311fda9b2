package storage

import (
	"bytes"
	"encoding/json"

	"github.com/pstuifzand/tui-flamechart/internal/model"
)

type jsonCodec struct{}

// decode accepts a dataset object or a bare array of root nodes
func (jsonCodec) decode(data []byte) (*model.Dataset, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var nodes []*model.Node
		if err := json.Unmarshal(trimmed, &nodes); err != nil {
			return nil, err
		}
		return &model.Dataset{Nodes: nodes}, nil
	}

	var ds model.Dataset
	if err := json.Unmarshal(trimmed, &ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

func (jsonCodec) encode(ds *model.Dataset) ([]byte, error) {
	return json.MarshalIndent(ds, "", "  ")
}
