package feature

import (
	"fmt"
	"math"
)

/*
Vector holds the observed values of every feature for a piece of land.
It is what trees are asked to classify and what training samples carry.
*/
type Vector struct {
	SoilPH      float64  `json:"soilPH" yaml:"soil_ph"`
	Nitrogen    float64  `json:"nitrogen" yaml:"nitrogen"`
	Phosphorus  float64  `json:"phosphorus" yaml:"phosphorus"`
	Potassium   float64  `json:"potassium" yaml:"potassium"`
	Temperature float64  `json:"temperature" yaml:"temperature"`
	Humidity    float64  `json:"humidity" yaml:"humidity"`
	Rainfall    float64  `json:"rainfall" yaml:"rainfall"`
	SoilType    SoilType `json:"soilType" yaml:"soil_type"`
}

/*
ValueFor takes a numeric feature and returns the vector's value for it.
Asking for the soil type, which cannot be compared against a threshold,
returns an error.
*/
func (v Vector) ValueFor(f Feature) (float64, error) {
	switch f {
	case SoilPH:
		return v.SoilPH, nil
	case Nitrogen:
		return v.Nitrogen, nil
	case Phosphorus:
		return v.Phosphorus, nil
	case Potassium:
		return v.Potassium, nil
	case Temperature:
		return v.Temperature, nil
	case Humidity:
		return v.Humidity, nil
	case Rainfall:
		return v.Rainfall, nil
	}
	return 0, fmt.Errorf("feature %s has no numeric value", f.Name())
}

/*
With returns a copy of the vector with the given numeric feature set to
value. Non-numeric features leave the copy unchanged.
*/
func (v Vector) With(f Feature, value float64) Vector {
	switch f {
	case SoilPH:
		v.SoilPH = value
	case Nitrogen:
		v.Nitrogen = value
	case Phosphorus:
		v.Phosphorus = value
	case Potassium:
		v.Potassium = value
	case Temperature:
		v.Temperature = value
	case Humidity:
		v.Humidity = value
	case Rainfall:
		v.Rainfall = value
	}
	return v
}

/*
Validate returns an error describing the first problem found on the
vector: a NaN or infinite numeric value or an unknown soil type.
*/
func (v Vector) Validate() error {
	for _, f := range Numeric() {
		x, _ := v.ValueFor(f)
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%s must be finite, got %v", f.Name(), x)
		}
	}
	if !v.SoilType.Valid() {
		return fmt.Errorf("unknown soil type %q", v.SoilType)
	}
	return nil
}

func (v Vector) String() string {
	return fmt.Sprintf("[pH:%.2f N:%.1f P:%.1f K:%.1f T:%.1f H:%.1f R:%.1f soil:%s]",
		v.SoilPH, v.Nitrogen, v.Phosphorus, v.Potassium, v.Temperature, v.Humidity, v.Rainfall, v.SoilType)
}
