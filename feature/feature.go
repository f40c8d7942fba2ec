package feature

import "fmt"

/*
Feature identifies a property of a piece of land that can be observed:
one of the seven numeric soil and climate measurements or the
categorical soil type.
*/
type Feature int

// Features known to the classifier. The numeric ones come first and
// their order is the canonical iteration order used everywhere.
const (
	SoilPH Feature = iota
	Nitrogen
	Phosphorus
	Potassium
	Temperature
	Humidity
	Rainfall
	SoilTypeFeature
)

// NumericCount is the number of numeric features.
const NumericCount = int(SoilTypeFeature)

var names = [...]string{
	SoilPH:          "soil_ph",
	Nitrogen:        "nitrogen",
	Phosphorus:      "phosphorus",
	Potassium:       "potassium",
	Temperature:     "temperature",
	Humidity:        "humidity",
	Rainfall:        "rainfall",
	SoilTypeFeature: "soil_type",
}

/*
Numeric returns a new slice with the numeric features in canonical order.
Callers may reorder the returned slice freely.
*/
func Numeric() []Feature {
	fs := make([]Feature, 0, NumericCount)
	for f := SoilPH; f < SoilTypeFeature; f++ {
		fs = append(fs, f)
	}
	return fs
}

/*
All returns a new slice with every feature, the numeric ones followed by
the soil type.
*/
func All() []Feature {
	return append(Numeric(), SoilTypeFeature)
}

/*
Parse takes a feature name as returned by Name and returns the
corresponding Feature or an error if the name is unknown.
*/
func Parse(name string) (Feature, error) {
	for i, n := range names {
		if n == name {
			return Feature(i), nil
		}
	}
	return 0, fmt.Errorf("unknown feature %q", name)
}

/*
Name returns the snake_case name of the feature, used as CSV header,
SQL column, YAML key and JSON value.
*/
func (f Feature) Name() string {
	if f < 0 || int(f) >= len(names) {
		return fmt.Sprintf("feature(%d)", int(f))
	}
	return names[f]
}

// IsNumeric reports whether the feature holds a float64 value.
func (f Feature) IsNumeric() bool {
	return f >= SoilPH && f < SoilTypeFeature
}

func (f Feature) String() string {
	return f.Name()
}
