package dataset

import "github.com/pbanos/cropforest/feature"

// LabelSummary holds the number of samples of a label and their mean feature values.
type LabelSummary struct {
	Label string
	Count int
	Means map[feature.Feature]float64
}

/*
Summarize returns a LabelSummary for each label of the dataset in order of
first appearance.
*/
func (ds Dataset) Summarize() []LabelSummary {
	byLabel := make(map[string]*LabelSummary)
	var summaries []*LabelSummary
	for _, s := range ds {
		ls, ok := byLabel[s.Label]
		if !ok {
			ls = &LabelSummary{Label: s.Label, Means: make(map[feature.Feature]float64)}
			byLabel[s.Label] = ls
			summaries = append(summaries, ls)
		}
		ls.Count++
		for _, f := range feature.Numeric() {
			x, _ := s.Vector.ValueFor(f)
			ls.Means[f] += x
		}
	}
	result := make([]LabelSummary, 0, len(summaries))
	for _, ls := range summaries {
		for f := range ls.Means {
			ls.Means[f] /= float64(ls.Count)
		}
		result = append(result, *ls)
	}
	return result
}
