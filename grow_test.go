package cropforest

import (
	"math/rand"
	"testing"

	"github.com/pbanos/cropforest/dataset"
	"github.com/pbanos/cropforest/feature"
	"github.com/pbanos/cropforest/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkSubtree walks the node with the training samples that reach it and
// verifies leaves predict a label present among them and splits send
// samples both ways.
func checkSubtree(t *testing.T, n *tree.Node, ds dataset.Dataset) {
	t.Helper()
	require.Equal(t, len(ds), n.Samples)
	if n.IsLeaf() {
		assert.Contains(t, ds.Labels(), n.Label)
		return
	}
	left, right, err := ds.Partition(n.Criterion)
	require.NoError(t, err)
	require.NotEmpty(t, left, "empty left partition at %v", n.Criterion)
	require.NotEmpty(t, right, "empty right partition at %v", n.Criterion)
	checkSubtree(t, n.Left, left)
	checkSubtree(t, n.Right, right)
}

func TestGrowTreeStructure(t *testing.T) {
	strategies := []*PruningStrategy{
		{MaxDepth: 0, MinSamplesSplit: 2},
		{MaxDepth: 1, MinSamplesSplit: 2},
		{MaxDepth: 4, MinSamplesSplit: 5},
		{MaxDepth: 12, MinSamplesSplit: 2},
	}
	ds := dataset.GenerateDefault(rand.New(rand.NewSource(21)))
	for seed := int64(0); seed < 5; seed++ {
		for _, ps := range strategies {
			rng := rand.New(rand.NewSource(seed))
			boot := ds.Bootstrap(rng)
			tr := GrowTree(boot, ps, 3, rng)
			assert.LessOrEqual(t, tr.Depth(), ps.MaxDepth)
			checkSubtree(t, tr.Root, boot)
		}
	}
}

func TestGrowTreeMinSamples(t *testing.T) {
	ds := rainfallDataset(2, 2)
	tr := GrowTree(ds, &PruningStrategy{MaxDepth: 10, MinSamplesSplit: 5}, 7, rand.New(rand.NewSource(1)))
	require.True(t, tr.Root.IsLeaf())
	assert.Equal(t, "rice", tr.Root.Label)
	assert.Equal(t, 4, tr.Root.Samples)
}

func TestGrowTreeSeparates(t *testing.T) {
	ds := rainfallDataset(10, 10)
	tr := GrowTree(ds, &PruningStrategy{MaxDepth: 3, MinSamplesSplit: 2}, 7, rand.New(rand.NewSource(1)))
	require.False(t, tr.Root.IsLeaf())
	assert.Equal(t, feature.Rainfall, tr.Root.Criterion.Feature)
	assert.Equal(t, 115.5, tr.Root.Criterion.Threshold)
	assert.LessOrEqual(t, tr.Depth(), 3)
	accuracy, err := tr.Test(ds)
	require.NoError(t, err)
	assert.Equal(t, 1.0, accuracy)
}

func TestGrowTreeConstantFeatures(t *testing.T) {
	ds := dataset.Dataset{
		dataset.NewSample(baseVector(), "wheat"),
		dataset.NewSample(baseVector(), "rice"),
		dataset.NewSample(baseVector(), "rice"),
		dataset.NewSample(baseVector(), "wheat"),
	}
	tr := GrowTree(ds, &PruningStrategy{MaxDepth: 5, MinSamplesSplit: 2}, 7, rand.New(rand.NewSource(1)))
	require.True(t, tr.Root.IsLeaf())
	assert.Equal(t, "wheat", tr.Root.Label)
}
