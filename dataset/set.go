package dataset

import (
	"math/rand"

	"github.com/pbanos/cropforest/feature"
)

/*
Dataset represents a collection of samples. Its methods never modify
the receiver: subsetting, shuffling and resampling return new datasets
that may share samples with the original one.
*/
type Dataset []Sample

/*
New takes a slice of samples and returns a dataset built with them.
*/
func New(samples []Sample) Dataset {
	return Dataset(samples)
}

// Count returns the number of samples in the dataset.
func (ds Dataset) Count() int {
	return len(ds)
}

// Labels returns the distinct labels in the dataset in order of first appearance.
func (ds Dataset) Labels() []string {
	var labels []string
	seen := make(map[string]bool)
	for _, s := range ds {
		if !seen[s.Label] {
			seen[s.Label] = true
			labels = append(labels, s.Label)
		}
	}
	return labels
}

// CountLabels returns the number of samples in the dataset for each label.
func (ds Dataset) CountLabels() map[string]int {
	counts := make(map[string]int)
	for _, s := range ds {
		counts[s.Label]++
	}
	return counts
}

/*
MajorityLabel returns the most frequent label in the dataset. Ties are
broken in favor of the label that appears first. An empty dataset
returns "".
*/
func (ds Dataset) MajorityLabel() string {
	counts := ds.CountLabels()
	var label string
	var max int
	for _, l := range ds.Labels() {
		if counts[l] > max {
			max = counts[l]
			label = l
		}
	}
	return label
}

/*
Gini returns the Gini impurity of the dataset labels: the probability
that two samples drawn at random with replacement carry different labels.
*/
func (ds Dataset) Gini() float64 {
	return Gini(ds.CountLabels(), len(ds))
}

/*
Gini takes a count of samples per label and the total number of samples
and returns 1 minus the sum of the squared label proportions. An empty
set has an impurity of 0.

The squared counts are added as integers, so the result does not depend
on the iteration order of counts.
*/
func Gini(counts map[string]int, total int) float64 {
	if total == 0 {
		return 0
	}
	var sumSquares int
	for _, c := range counts {
		sumSquares += c * c
	}
	return 1 - float64(sumSquares)/(float64(total)*float64(total))
}

/*
Partition takes a criterion and splits the dataset into the samples that
satisfy it (left) and those that do not (right), keeping the relative
order of the samples. It returns an error if the criterion cannot be
evaluated on the samples.
*/
func (ds Dataset) Partition(c *feature.Criterion) (Dataset, Dataset, error) {
	var left, right Dataset
	for _, s := range ds {
		ok, err := c.SatisfiedBy(s.Vector)
		if err != nil {
			return nil, nil, err
		}
		if ok {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}
	return left, right, nil
}

/*
Bootstrap returns a dataset of the same size drawn uniformly at random
with replacement from this one.
*/
func (ds Dataset) Bootstrap(rng *rand.Rand) Dataset {
	sample := make(Dataset, len(ds))
	for i := range sample {
		sample[i] = ds[rng.Intn(len(ds))]
	}
	return sample
}

// Shuffle returns a copy of the dataset with its samples in random order.
func (ds Dataset) Shuffle(rng *rand.Rand) Dataset {
	shuffled := make(Dataset, len(ds))
	copy(shuffled, ds)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

/*
Split takes a fraction in (0, 1) and returns the first floor(fraction*n)
samples and the rest as two datasets.
*/
func (ds Dataset) Split(fraction float64) (Dataset, Dataset) {
	n := int(fraction * float64(len(ds)))
	if n < 0 {
		n = 0
	}
	if n > len(ds) {
		n = len(ds)
	}
	return ds[:n:n], ds[n:]
}
