package tree

import (
	"fmt"
	"strings"

	"github.com/pbanos/cropforest/dataset"
	"github.com/pbanos/cropforest/feature"
)

// TreeError represents an error produced when walking a tree.
type TreeError string

func (te TreeError) Error() string {
	return string(te)
}

// ErrEmptyTree is returned when predicting with a tree that has no nodes.
const ErrEmptyTree = TreeError("tree has no root node")

// Tree represents a binary classification tree.
type Tree struct {
	Root *Node
}

// New takes the root Node and returns a tree for it.
func New(root *Node) *Tree {
	return &Tree{Root: root}
}

/*
Predict takes a feature vector and walks the tree from its root, going left
when the vector satisfies a node's criterion and right otherwise, and
returns the label of the reached leaf. It returns an error if a criterion
cannot be evaluated on the vector.
*/
func (t *Tree) Predict(v feature.Vector) (string, error) {
	if t == nil || t.Root == nil {
		return "", ErrEmptyTree
	}
	n := t.Root
	for !n.IsLeaf() {
		ok, err := n.Criterion.SatisfiedBy(v)
		if err != nil {
			return "", fmt.Errorf("predicting sample: %w", err)
		}
		if ok {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Label, nil
}

/*
Test takes a dataset and returns the prediction success rate of the tree
over it, or an error if a prediction could not be made. An empty dataset
has a success rate of 0.
*/
func (t *Tree) Test(ds dataset.Dataset) (float64, error) {
	if len(ds) == 0 {
		return 0.0, nil
	}
	var hits int
	for _, s := range ds {
		label, err := t.Predict(s.Vector)
		if err != nil {
			return 0.0, err
		}
		if label == s.Label {
			hits++
		}
	}
	return float64(hits) / float64(len(ds)), nil
}

// Traverse takes a bottomup boolean and an error-returning
// function that takes a node and its depth as parameters,
// and goes through the tree running the function with every
// traversed node.
// Traverse will call the function with a parent node before
// calling it for its children if bottomup is false, and
// call it after its children if bottomup is true.
// If the call to the function returns an error, the traversing
// is aborted and the error is returned.
func (t *Tree) Traverse(bottomup bool, f func(n *Node, depth int) error) error {
	if t == nil || t.Root == nil {
		return nil
	}
	return traverse(t.Root, 0, bottomup, f)
}

func traverse(n *Node, depth int, bottomup bool, f func(*Node, int) error) error {
	if !bottomup {
		if err := f(n, depth); err != nil {
			return err
		}
	}
	if !n.IsLeaf() {
		if err := traverse(n.Left, depth+1, bottomup, f); err != nil {
			return err
		}
		if err := traverse(n.Right, depth+1, bottomup, f); err != nil {
			return err
		}
	}
	if bottomup {
		return f(n, depth)
	}
	return nil
}

// Depth returns the number of edges in the longest path from the root to a leaf.
func (t *Tree) Depth() int {
	var max int
	t.Traverse(false, func(n *Node, depth int) error {
		if depth > max {
			max = depth
		}
		return nil
	})
	return max
}

// Leaves returns the number of leaves in the tree.
func (t *Tree) Leaves() int {
	var count int
	t.Traverse(false, func(n *Node, _ int) error {
		if n.IsLeaf() {
			count++
		}
		return nil
	})
	return count
}

func (t *Tree) String() string {
	if t == nil || t.Root == nil {
		return "[empty]\n"
	}
	return subtreeString(t.Root, "root")
}

func subtreeString(n *Node, id string) string {
	result := fmt.Sprintf("[%s]\n", id)
	if n.IsLeaf() {
		return fmt.Sprintf("%s{ %s }\n", result, n.Label)
	}
	result = fmt.Sprintf("%s{ %v }\n|\n", result, n.Criterion)
	subtrees := []*Node{n.Left, n.Right}
	ids := []string{id + ".L", id + ".R"}
	for i, st := range subtrees {
		for j, line := range strings.Split(subtreeString(st, ids[i]), "\n") {
			if len(line) > 0 {
				if j == 0 {
					result = fmt.Sprintf("%s|__%s\n", result, line)
				} else {
					if i == len(subtrees)-1 {
						result = fmt.Sprintf("%s   %s\n", result, line)
					} else {
						result = fmt.Sprintf("%s|  %s\n", result, line)
					}
				}
			}
		}
	}
	return result
}
