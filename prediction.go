package cropforest

import (
	"fmt"
	"sort"
	"strings"
)

// Vote holds the number of trees that predicted a label and the fraction of the forest it represents.
type Vote struct {
	Label      string
	Count      int
	Confidence float64
}

/*
Prediction represents a prediction made by a Forest: the labels voted by
its trees sorted by descending confidence. Labels with the same number of
votes keep the order in which they were first voted.
*/
type Prediction struct {
	votes  []Vote
	weight int
}

/*
NewPrediction takes the labels voted by each tree of a forest and
returns the prediction tallying them.
*/
func NewPrediction(labels []string) *Prediction {
	var votes []Vote
	index := make(map[string]int)
	for _, l := range labels {
		i, ok := index[l]
		if !ok {
			i = len(votes)
			index[l] = i
			votes = append(votes, Vote{Label: l})
		}
		votes[i].Count++
	}
	for i := range votes {
		votes[i].Confidence = float64(votes[i].Count) / float64(len(labels))
	}
	sort.SliceStable(votes, func(i, j int) bool { return votes[i].Count > votes[j].Count })
	return &Prediction{votes: votes, weight: len(labels)}
}

// Votes returns a copy of the prediction votes sorted by descending confidence.
func (p *Prediction) Votes() []Vote {
	votes := make([]Vote, len(p.votes))
	copy(votes, p.votes)
	return votes
}

// Top returns at most n votes with the highest confidence.
func (p *Prediction) Top(n int) []Vote {
	votes := p.Votes()
	if n >= 0 && n < len(votes) {
		votes = votes[:n]
	}
	return votes
}

/*
ProbabilityOf takes a label and returns the fraction of trees that voted
for it.
*/
func (p *Prediction) ProbabilityOf(label string) float64 {
	for _, v := range p.votes {
		if v.Label == label {
			return v.Confidence
		}
	}
	return 0.0
}

/*
PredictedValue returns the label with the most votes and its confidence.
*/
func (p *Prediction) PredictedValue() (string, float64) {
	if len(p.votes) == 0 {
		return "", 0.0
	}
	return p.votes[0].Label, p.votes[0].Confidence
}

/*
Weight returns the weight of the prediction: the number of trees that
voted.
*/
func (p *Prediction) Weight() int {
	return p.weight
}

func (p *Prediction) String() string {
	parts := make([]string, 0, len(p.votes))
	for _, v := range p.votes {
		parts = append(parts, fmt.Sprintf("%s:%.4f", v.Label, v.Confidence))
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, " "))
}
