package dataset

import (
	"math/rand"

	"github.com/pbanos/cropforest/feature"
)

// DefaultSamplesPerClass is the number of samples generated per crop by default.
const DefaultSamplesPerClass = 50

/*
Generate takes a catalog of crop profiles, a number of samples per crop, the
jitter to apply on each numeric feature and a random source, and returns a
labeled dataset with samplesPerClass samples for every profile, grouped by
profile in catalog order.

Each sample gets a soil type drawn uniformly from the six valid ones,
independently of the crop, and numeric values drawn uniformly within
mean +/- width/2. Features missing from the jitter get no noise.
*/
func Generate(profiles []Profile, samplesPerClass int, jitter Jitter, rng *rand.Rand) Dataset {
	if samplesPerClass < 0 {
		samplesPerClass = 0
	}
	soils := feature.SoilTypes()
	numeric := feature.Numeric()
	ds := make(Dataset, 0, samplesPerClass*len(profiles))
	for _, p := range profiles {
		for i := 0; i < samplesPerClass; i++ {
			v := feature.Vector{SoilType: soils[rng.Intn(len(soils))]}
			for _, f := range numeric {
				v = v.With(f, p.Means[f]+(rng.Float64()-0.5)*jitter[f])
			}
			ds = append(ds, NewSample(v, p.Name))
		}
	}
	return ds
}

/*
GenerateDefault generates DefaultSamplesPerClass samples per crop of the
default catalog with the default jitter.
*/
func GenerateDefault(rng *rand.Rand) Dataset {
	return Generate(DefaultCatalog(), DefaultSamplesPerClass, DefaultJitter(), rng)
}
