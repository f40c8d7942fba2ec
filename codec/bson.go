package codec

import (
	"fmt"

	"github.com/pbanos/cropforest"
	"gopkg.in/mgo.v2/bson"
)

type bsonEncodeDecoder struct{}

// NewBSON returns an EncodeDecoder that encodes forests as BSON documents.
func NewBSON() EncodeDecoder {
	return &bsonEncodeDecoder{}
}

func (bed *bsonEncodeDecoder) Encode(f *cropforest.Forest) ([]byte, error) {
	doc, err := toDoc(f)
	if err != nil {
		return nil, fmt.Errorf("encoding forest: %w", err)
	}
	return bson.Marshal(doc)
}

func (bed *bsonEncodeDecoder) Decode(data []byte, opts ...cropforest.Option) (*cropforest.Forest, error) {
	doc := &forestDoc{}
	if err := bson.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("decoding forest: %v", err)
	}
	return fromDoc(doc, opts)
}
