package dataset

import (
	"fmt"
	"math"

	"github.com/pbanos/cropforest/feature"
)

/*
Profile describes the reference growing conditions of a crop: the mean
value of every numeric feature around which training samples for it are
generated, plus descriptive metadata.
*/
type Profile struct {
	// Name is the crop identifier used as sample label.
	Name string
	// Label is a human readable name for the crop.
	Label          string
	Seasons        []string
	Duration       string
	PreferredSoils []feature.SoilType
	// Means holds the reference value for each numeric feature.
	Means map[feature.Feature]float64
}

/*
Jitter holds, for each numeric feature, the width of the uniform noise
added to profile means when generating samples: values fall within
mean +/- width/2.
*/
type Jitter map[feature.Feature]float64

// Validate returns an error if the profile has no name or lacks a finite mean for a numeric feature.
func (p Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("crop profile has no name")
	}
	for _, f := range feature.Numeric() {
		m, ok := p.Means[f]
		if !ok {
			return fmt.Errorf("crop profile %s: missing mean for %s", p.Name, f.Name())
		}
		if math.IsNaN(m) || math.IsInf(m, 0) {
			return fmt.Errorf("crop profile %s: mean for %s must be finite", p.Name, f.Name())
		}
	}
	for _, st := range p.PreferredSoils {
		if !st.Valid() {
			return fmt.Errorf("crop profile %s: unknown preferred soil %q", p.Name, st)
		}
	}
	return nil
}

/*
DefaultJitter returns the noise widths used for the default catalog.
*/
func DefaultJitter() Jitter {
	return Jitter{
		feature.SoilPH:      1.5,
		feature.Nitrogen:    40,
		feature.Phosphorus:  30,
		feature.Potassium:   30,
		feature.Temperature: 8,
		feature.Humidity:    25,
		feature.Rainfall:    60,
	}
}

func means(ph, n, p, k, t, h, r float64) map[feature.Feature]float64 {
	return map[feature.Feature]float64{
		feature.SoilPH:      ph,
		feature.Nitrogen:    n,
		feature.Phosphorus:  p,
		feature.Potassium:   k,
		feature.Temperature: t,
		feature.Humidity:    h,
		feature.Rainfall:    r,
	}
}

/*
DefaultCatalog returns the profiles of the eight crops grown in the region,
based on local agricultural research.
*/
func DefaultCatalog() []Profile {
	return []Profile{
		{
			Name: "rice", Label: "Rice (Paddy)", Seasons: []string{"Kharif", "Rabi"}, Duration: "120-150 days",
			PreferredSoils: []feature.SoilType{feature.Loamy, feature.Clay, feature.Alluvial},
			Means:          means(6.5, 80, 40, 40, 25, 80, 150),
		},
		{
			Name: "wheat", Label: "Wheat", Seasons: []string{"Rabi"}, Duration: "110-130 days",
			PreferredSoils: []feature.SoilType{feature.Loamy, feature.Black, feature.Alluvial},
			Means:          means(6.8, 100, 50, 30, 22, 60, 80),
		},
		{
			Name: "cotton", Label: "Cotton", Seasons: []string{"Kharif"}, Duration: "180-210 days",
			PreferredSoils: []feature.SoilType{feature.Black, feature.Red, feature.Alluvial},
			Means:          means(6.5, 120, 60, 50, 28, 65, 100),
		},
		{
			Name: "sugarcane", Label: "Sugarcane", Seasons: []string{"Year-round"}, Duration: "300-365 days",
			PreferredSoils: []feature.SoilType{feature.Loamy, feature.Black, feature.Alluvial},
			Means:          means(6.5, 110, 55, 60, 30, 75, 140),
		},
		{
			Name: "maize", Label: "Maize (Corn)", Seasons: []string{"Kharif", "Rabi"}, Duration: "80-110 days",
			PreferredSoils: []feature.SoilType{feature.Loamy, feature.Sandy, feature.Black},
			Means:          means(6.5, 90, 45, 45, 26, 70, 90),
		},
		{
			Name: "pulses", Label: "Pulses (Lentils, Gram)", Seasons: []string{"Rabi", "Kharif"}, Duration: "90-120 days",
			PreferredSoils: []feature.SoilType{feature.Red, feature.Black, feature.Loamy},
			Means:          means(7.0, 40, 50, 40, 24, 65, 70),
		},
		{
			Name: "vegetables", Label: "Vegetables", Seasons: []string{"Year-round"}, Duration: "60-120 days",
			PreferredSoils: []feature.SoilType{feature.Loamy, feature.Sandy, feature.Alluvial},
			Means:          means(6.5, 100, 70, 80, 25, 75, 110),
		},
		{
			Name: "oilseeds", Label: "Oilseeds (Groundnut, Mustard)", Seasons: []string{"Kharif", "Rabi"}, Duration: "100-140 days",
			PreferredSoils: []feature.SoilType{feature.Sandy, feature.Red, feature.Loamy},
			Means:          means(6.8, 70, 60, 50, 27, 60, 85),
		},
	}
}
