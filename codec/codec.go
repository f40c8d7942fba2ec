/*
Package codec encodes trained forests into slices of bytes and decodes
them back, so they can be stored in files or key-value stores.

Forests are encoded as a document with the forest hyperparameters and a
list of trees, each tree a nested tagged union of split and leaf nodes.
*/
package codec

import (
	"fmt"

	"github.com/pbanos/cropforest"
	"github.com/pbanos/cropforest/feature"
	"github.com/pbanos/cropforest/tree"
)

/*
EncodeDecoder is an interface for objects
that allow encoding forests into slices of
bytes and decoding them back to forests.
*/
type EncodeDecoder interface {

	//Encode receives a *cropforest.Forest
	//and returns a slice of bytes with the forest
	//encoded or an error if the encoding could not
	//be performed for some reason.
	Encode(*cropforest.Forest) ([]byte, error)

	//Decode receives a slice of bytes and a list of
	//options for the decoded forest and returns a
	//*cropforest.Forest decoded from the slice of bytes
	//or an error if the decoding could not be performed
	//for some reason.
	Decode([]byte, ...cropforest.Option) (*cropforest.Forest, error)
}

// Node types.
const (
	splitNode = "split"
	leafNode  = "leaf"
)

type forestDoc struct {
	NumTrees        int        `json:"numTrees" bson:"numTrees"`
	MaxDepth        int        `json:"maxDepth" bson:"maxDepth"`
	MinSamplesSplit int        `json:"minSamplesSplit" bson:"minSamplesSplit"`
	MaxFeatures     int        `json:"maxFeatures" bson:"maxFeatures"`
	Trees           []*nodeDoc `json:"trees" bson:"trees"`
}

type nodeDoc struct {
	Type      string   `json:"t" bson:"t"`
	Feature   string   `json:"f,omitempty" bson:"f,omitempty"`
	Threshold float64  `json:"th,omitempty" bson:"th,omitempty"`
	Left      *nodeDoc `json:"l,omitempty" bson:"l,omitempty"`
	Right     *nodeDoc `json:"r,omitempty" bson:"r,omitempty"`
	Label     string   `json:"label,omitempty" bson:"label,omitempty"`
	Samples   int      `json:"n" bson:"n"`
}

func toDoc(f *cropforest.Forest) (*forestDoc, error) {
	trees := f.Trees()
	if len(trees) == 0 {
		return nil, cropforest.ErrModelNotTrained
	}
	doc := &forestDoc{
		NumTrees:        f.NumTrees,
		MaxDepth:        f.MaxDepth,
		MinSamplesSplit: f.MinSamplesSplit,
		MaxFeatures:     f.MaxFeatures,
		Trees:           make([]*nodeDoc, 0, len(trees)),
	}
	for _, t := range trees {
		doc.Trees = append(doc.Trees, toNodeDoc(t.Root))
	}
	return doc, nil
}

func toNodeDoc(n *tree.Node) *nodeDoc {
	if n.IsLeaf() {
		return &nodeDoc{Type: leafNode, Label: n.Label, Samples: n.Samples}
	}
	return &nodeDoc{
		Type:      splitNode,
		Feature:   n.Criterion.Feature.Name(),
		Threshold: n.Criterion.Threshold,
		Left:      toNodeDoc(n.Left),
		Right:     toNodeDoc(n.Right),
		Samples:   n.Samples,
	}
}

func fromDoc(doc *forestDoc, opts []cropforest.Option) (*cropforest.Forest, error) {
	if len(doc.Trees) == 0 {
		return nil, fmt.Errorf("decoding forest: no trees")
	}
	trees := make([]*tree.Tree, 0, len(doc.Trees))
	for i, nd := range doc.Trees {
		root, err := fromNodeDoc(nd)
		if err != nil {
			return nil, fmt.Errorf("decoding tree %d: %v", i, err)
		}
		trees = append(trees, tree.New(root))
	}
	opts = append([]cropforest.Option{
		cropforest.WithNumTrees(doc.NumTrees),
		cropforest.WithMaxDepth(doc.MaxDepth),
		cropforest.WithMinSamplesSplit(doc.MinSamplesSplit),
		cropforest.WithMaxFeatures(doc.MaxFeatures),
	}, opts...)
	f := cropforest.New(opts...)
	f.SetTrees(trees)
	return f, nil
}

func fromNodeDoc(nd *nodeDoc) (*tree.Node, error) {
	if nd == nil {
		return nil, fmt.Errorf("missing node")
	}
	switch nd.Type {
	case leafNode:
		if nd.Label == "" {
			return nil, fmt.Errorf("leaf node without label")
		}
		return tree.NewLeaf(nd.Label, nd.Samples), nil
	case splitNode:
		f, err := feature.Parse(nd.Feature)
		if err != nil {
			return nil, err
		}
		if !f.IsNumeric() {
			return nil, fmt.Errorf("split on non-numeric feature %s", f.Name())
		}
		left, err := fromNodeDoc(nd.Left)
		if err != nil {
			return nil, err
		}
		right, err := fromNodeDoc(nd.Right)
		if err != nil {
			return nil, err
		}
		return tree.NewSplit(feature.NewCriterion(f, nd.Threshold), left, right, nd.Samples), nil
	}
	return nil, fmt.Errorf("unknown node type %q", nd.Type)
}
