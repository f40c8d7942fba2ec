package sqlset

import (
	"context"
	"fmt"

	"github.com/pbanos/cropforest/dataset"
)

/*
Write takes a context, an Adapter and a dataset, ensures the samples table
exists and adds the dataset samples to it.
*/
func Write(ctx context.Context, a Adapter, ds dataset.Dataset) error {
	if err := a.CreateSampleTable(ctx); err != nil {
		return err
	}
	n, err := a.AddSamples(ctx, ds)
	if err != nil {
		return fmt.Errorf("storing dataset: %v", err)
	}
	if n != len(ds) {
		return fmt.Errorf("storing dataset: stored %d of %d samples", n, len(ds))
	}
	return nil
}

/*
Read takes a context and an Adapter and returns the dataset with all the
samples stored on the adapter's database, validating each of them.
*/
func Read(ctx context.Context, a Adapter) (dataset.Dataset, error) {
	var samples []dataset.Sample
	err := a.IterateOnSamples(ctx, func(i int, s dataset.Sample) (bool, error) {
		if err := s.Validate(); err != nil {
			return false, fmt.Errorf("sample %d: %v", i, err)
		}
		samples = append(samples, s)
		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %v", err)
	}
	return dataset.New(samples), nil
}
