package queue

import (
	"fmt"
	"strconv"
)

// Task represents a tree to be grown for a forest.
type Task struct {
	// The position of the tree in the forest.
	Index int
	// The seed for the random source used to draw the
	// tree's bootstrap sample and split features.
	Seed int64
}

// ID returns a string that identifies the
// task, the index of its tree.
func (t *Task) ID() string {
	return strconv.Itoa(t.Index)
}

func (t *Task) String() string {
	return fmt.Sprintf("{Task %d}", t.Index)
}
