package feature

import "fmt"

/*
Criterion represents a constraint on a numeric feature: a threshold that
sends vectors whose value is less than or equal to it to the left branch
of a split and every other vector to the right branch.
*/
type Criterion struct {
	Feature   Feature
	Threshold float64
}

/*
NewCriterion takes a feature and a threshold and returns a Criterion
for them.
*/
func NewCriterion(f Feature, threshold float64) *Criterion {
	return &Criterion{Feature: f, Threshold: threshold}
}

/*
SatisfiedBy receives a vector and returns a boolean indicating if the vector
satisfies the criterion, that is, if its value for the criterion feature is
less than or equal to the threshold. An error is returned when the criterion
feature has no numeric value.
*/
func (c *Criterion) SatisfiedBy(v Vector) (bool, error) {
	x, err := v.ValueFor(c.Feature)
	if err != nil {
		return false, err
	}
	return x <= c.Threshold, nil
}

func (c *Criterion) String() string {
	return fmt.Sprintf("%s <= %f", c.Feature.Name(), c.Threshold)
}
