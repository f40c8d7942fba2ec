package dataset

import (
	"fmt"

	"github.com/pbanos/cropforest/feature"
)

/*
Sample is a labeled observation: the feature values of a piece of land
and the crop it is suited to.
*/
type Sample struct {
	Vector feature.Vector
	Label  string
}

/*
NewSample takes a feature vector and a label and returns a sample.
*/
func NewSample(v feature.Vector, label string) Sample {
	return Sample{Vector: v, Label: label}
}

// Validate returns an error if the sample's vector is invalid or it has no label.
func (s Sample) Validate() error {
	if s.Label == "" {
		return fmt.Errorf("sample has an empty label")
	}
	return s.Vector.Validate()
}

func (s Sample) String() string {
	return fmt.Sprintf("[%s %v]", s.Label, s.Vector)
}
