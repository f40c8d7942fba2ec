package codec

import (
	"encoding/json"
	"fmt"

	"github.com/pbanos/cropforest"
)

type jsonEncodeDecoder struct{}

// NewJSON returns an EncodeDecoder that encodes forests as JSON documents.
func NewJSON() EncodeDecoder {
	return &jsonEncodeDecoder{}
}

func (jed *jsonEncodeDecoder) Encode(f *cropforest.Forest) ([]byte, error) {
	doc, err := toDoc(f)
	if err != nil {
		return nil, fmt.Errorf("encoding forest: %w", err)
	}
	return json.Marshal(doc)
}

func (jed *jsonEncodeDecoder) Decode(data []byte, opts ...cropforest.Option) (*cropforest.Forest, error) {
	doc := &forestDoc{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("decoding forest: %v", err)
	}
	return fromDoc(doc, opts)
}
