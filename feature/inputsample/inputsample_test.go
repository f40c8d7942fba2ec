package inputsample

import (
	"errors"
	"strings"
	"testing"

	"github.com/pbanos/cropforest/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	requested []feature.Feature
	rejected  []string
	failOn    feature.Feature
}

func (r *recorder) RequestValueFor(f feature.Feature) error {
	r.requested = append(r.requested, f)
	if f == r.failOn {
		return errors.New("closed")
	}
	return nil
}

func (r *recorder) RejectValueFor(_ feature.Feature, v string) error {
	r.rejected = append(r.rejected, v)
	return nil
}

func TestRead(t *testing.T) {
	input := "6.5\nlots\n80\n40\n40\n25\nInf\n70\n150\npeat\n alluvial\n"
	r := &recorder{failOn: -1}
	v, err := Read(strings.NewReader(input), r)
	require.NoError(t, err)
	assert.Equal(t, feature.All(), r.requested)
	assert.Equal(t, []string{"lots", "Inf", "peat"}, r.rejected)
	assert.Equal(t, feature.Vector{
		SoilPH: 6.5, Nitrogen: 80, Phosphorus: 40, Potassium: 40,
		Temperature: 25, Humidity: 70, Rainfall: 150, SoilType: feature.Alluvial,
	}, v)
}

func TestReadErrors(t *testing.T) {
	_, err := Read(strings.NewReader("6.5\n80\n"), &recorder{failOn: -1})
	assert.Error(t, err)
	_, err = Read(strings.NewReader("6.5\n"), &recorder{failOn: feature.Nitrogen})
	assert.EqualError(t, err, "closed")
}
