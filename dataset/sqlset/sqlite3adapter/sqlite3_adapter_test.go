package sqlite3adapter

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/pbanos/cropforest/dataset"
	"github.com/pbanos/cropforest/dataset/sqlset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAndReadDataset(t *testing.T) {
	ctx := context.Background()
	a, err := New(filepath.Join(t.TempDir(), "samples.db"))
	require.NoError(t, err)
	defer a.Close()

	// 23 samples exercise full and partial insertion batches.
	profiles := dataset.DefaultCatalog()[:1]
	ds := dataset.Generate(profiles, 23, dataset.DefaultJitter(), rand.New(rand.NewSource(1)))
	require.NoError(t, sqlset.Write(ctx, a, ds))

	count, err := a.CountSamples(ctx)
	require.NoError(t, err)
	assert.Equal(t, 23, count)

	read, err := sqlset.Read(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, ds, read)
}

func TestIterateOnSamplesStops(t *testing.T) {
	ctx := context.Background()
	a, err := New(filepath.Join(t.TempDir(), "samples.db"))
	require.NoError(t, err)
	defer a.Close()
	require.NoError(t, sqlset.Write(ctx, a, dataset.GenerateDefault(rand.New(rand.NewSource(2)))))

	var seen int
	err = a.IterateOnSamples(ctx, func(i int, s dataset.Sample) (bool, error) {
		seen++
		return i < 4, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 5, seen)
}

func TestEmptyDatabase(t *testing.T) {
	ctx := context.Background()
	a, err := New(filepath.Join(t.TempDir(), "samples.db"))
	require.NoError(t, err)
	defer a.Close()
	require.NoError(t, a.CreateSampleTable(ctx))
	n, err := a.AddSamples(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	read, err := sqlset.Read(ctx, a)
	require.NoError(t, err)
	assert.Empty(t, read)
}
