package cropforest

import (
	"context"
	"math/rand"

	"github.com/pbanos/cropforest/dataset"
	"github.com/pbanos/cropforest/queue"
	"github.com/pbanos/cropforest/tree"
)

/*
GrowTree takes a training dataset, a pruning strategy, the number of
features to consider at every split and a random source and returns a
tree grown on the dataset. The dataset is expected to be non-empty and
valid.
*/
func GrowTree(ds dataset.Dataset, ps *PruningStrategy, maxFeatures int, rng *rand.Rand) *tree.Tree {
	return tree.New(buildTree(ds, 0, ps, maxFeatures, rng))
}

func buildTree(ds dataset.Dataset, depth int, ps *PruningStrategy, maxFeatures int, rng *rand.Rand) *tree.Node {
	if ps.Prune(ds, depth) {
		return tree.NewLeaf(ds.MajorityLabel(), len(ds))
	}
	p := findBestSplit(ds, maxFeatures, rng)
	if p == nil {
		return tree.NewLeaf(ds.MajorityLabel(), len(ds))
	}
	left, right, err := ds.Partition(p.Criterion)
	if err != nil || len(left) == 0 || len(right) == 0 {
		return tree.NewLeaf(ds.MajorityLabel(), len(ds))
	}
	return tree.NewSplit(
		p.Criterion,
		buildTree(left, depth+1, ps, maxFeatures, rng),
		buildTree(right, depth+1, ps, maxFeatures, rng),
		len(ds),
	)
}

// Work takes a context, a queue and a function to grow
// the tree described by a task, and enters a loop in which
// it:
//   * pulls a task from the queue,
//   * runs the given function on it,
//   * marks the task as completed on the queue
//
// When no task can be pulled from the queue the worker ends
// returning nil.
//
// Work will return a non-nil error if the given context
// times out or is cancelled, if the function returns a
// non-nil error or if an operation with the given queue
// returns a non-nil error.
func Work(ctx context.Context, q queue.Queue, grow func(context.Context, *queue.Task) error) error {
	for {
		task, err := q.Pull(ctx)
		if err != nil {
			return err
		}
		if task == nil {
			return nil
		}
		err = workTask(ctx, task, q, grow)
		if err != nil {
			return err
		}
	}
}

func workTask(ctx context.Context, task *queue.Task, q queue.Queue, grow func(context.Context, *queue.Task) error) error {
	if err := grow(ctx, task); err != nil {
		q.Drop(context.Background(), task.ID())
		return err
	}
	return q.Complete(ctx, task.ID())
}
