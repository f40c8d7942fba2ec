package tree

import (
	"fmt"

	"github.com/pbanos/cropforest/feature"
)

/*
Node is a node of a decision tree. It is either an internal node, with a
criterion and two subtrees, or a leaf with the label it predicts.
*/
type Node struct {
	// The constraint this node imposes on samples. Samples satisfying it
	// continue down the Left subtree, the rest down the Right one.
	// It is nil on leaves.
	Criterion *feature.Criterion
	Left      *Node
	Right     *Node
	// The label predicted for samples reaching this node. Only set on leaves.
	Label string
	// The number of training samples that reached the node.
	Samples int
}

// NewLeaf takes a label and a number of samples and returns a leaf node.
func NewLeaf(label string, samples int) *Node {
	return &Node{Label: label, Samples: samples}
}

/*
NewSplit takes a criterion, the left and right subtrees and a number of
samples and returns an internal node.
*/
func NewSplit(c *feature.Criterion, left, right *Node, samples int) *Node {
	return &Node{Criterion: c, Left: left, Right: right, Samples: samples}
}

// IsLeaf reports whether the node has no subtrees.
func (n *Node) IsLeaf() bool {
	return n.Criterion == nil
}

func (n *Node) String() string {
	if n.IsLeaf() {
		return fmt.Sprintf("%s (%d samples)", n.Label, n.Samples)
	}
	return fmt.Sprintf("%v (%d samples)", n.Criterion, n.Samples)
}
