package cropforest

import (
	"math/bits"
	"math/rand"
	"sort"

	"github.com/pbanos/cropforest/dataset"
	"github.com/pbanos/cropforest/feature"
)

/*
Partition represents a split of a dataset on a numeric feature: the
criterion separating the samples and the weighted Gini impurity of the
resulting left and right subsets.
*/
type Partition struct {
	Criterion *feature.Criterion
	Impurity  float64

	purity purity
}

/*
purity is the exact sum of squared label counts of each side divided by
the side size, kept as the fraction num/den with
num = sumSq(left)*|right| + sumSq(right)*|left| and den = |left|*|right|.
The weighted Gini impurity of a split is 1 - num/(den*n), so comparing
purities compares impurities without rounding.
*/
type purity struct {
	num, den uint64
}

// greaterThan reports whether p is strictly purer than o.
func (p purity) greaterThan(o purity) bool {
	hi1, lo1 := bits.Mul64(p.num, o.den)
	hi2, lo2 := bits.Mul64(o.num, p.den)
	return hi1 > hi2 || (hi1 == hi2 && lo1 > lo2)
}

/*
selectFeatures draws n distinct numeric features uniformly at random,
in the order they were drawn.
*/
func selectFeatures(n int, rng *rand.Rand) []feature.Feature {
	features := feature.Numeric()
	if n >= len(features) {
		n = len(features)
	}
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(features)-i)
		features[i], features[j] = features[j], features[i]
	}
	return features[:n]
}

/*
findBestSplit takes a dataset, the number of features to consider and a
random source, and returns the partition with the lowest weighted Gini
impurity among the midpoints between adjacent distinct values of a fresh
random subset of numeric features. Ties keep the first candidate found
going through the features in drawn order and thresholds in ascending
order. It returns nil when every selected feature is constant.
*/
func findBestSplit(ds dataset.Dataset, maxFeatures int, rng *rand.Rand) *Partition {
	var best *Partition
	for _, f := range selectFeatures(maxFeatures, rng) {
		p := bestThreshold(ds, f)
		if p != nil && (best == nil || p.purity.greaterThan(best.purity)) {
			best = p
		}
	}
	return best
}

type labeledValue struct {
	x     float64
	label string
}

/*
bestThreshold sweeps the samples sorted by their value for f, moving
them from the right subset to the left one, and evaluates the weighted
impurity at every boundary between distinct values.
*/
func bestThreshold(ds dataset.Dataset, f feature.Feature) *Partition {
	values := make([]labeledValue, len(ds))
	for i, s := range ds {
		x, _ := s.Vector.ValueFor(f)
		values[i] = labeledValue{x, s.Label}
	}
	sort.SliceStable(values, func(i, j int) bool { return values[i].x < values[j].x })
	total := len(values)
	left := make(map[string]int)
	right := ds.CountLabels()
	var leftSq, rightSq uint64
	for _, c := range right {
		rightSq += uint64(c * c)
	}
	var best *Partition
	for i := 0; i < total-1; i++ {
		label := values[i].label
		leftSq += uint64(2*left[label] + 1)
		rightSq -= uint64(2*right[label] - 1)
		left[label]++
		right[label]--
		if values[i].x == values[i+1].x {
			continue
		}
		nl := uint64(i + 1)
		nr := uint64(total) - nl
		p := purity{num: leftSq*nr + rightSq*nl, den: nl * nr}
		if best == nil || p.greaterThan(best.purity) {
			threshold := (values[i].x + values[i+1].x) / 2
			best = &Partition{
				Criterion: feature.NewCriterion(f, threshold),
				Impurity:  1 - float64(p.num)/(float64(p.den)*float64(total)),
				purity:    p,
			}
		}
	}
	return best
}
