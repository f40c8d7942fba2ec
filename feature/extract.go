package feature

import (
	"math/rand"
	"strings"
)

// Regional defaults used when a description says nothing about a value.
const (
	DefaultSoilPH      = 6.5
	DefaultNitrogen    = 70.0
	DefaultPhosphorus  = 45.0
	DefaultPotassium   = 40.0
	DefaultTemperature = 26.0
	DefaultHumidity    = 70.0
	DefaultRainfall    = 120.0
)

var soilKeywords = []struct {
	keyword string
	soil    SoilType
}{
	{"sandy", Sandy},
	{"clay", Clay},
	{"red", Red},
	{"black", Black},
	{"alluvial", Alluvial},
}

/*
FromDescription takes a free-text land description and a random source and
returns a Vector for it. The soil type is detected from keywords, first match
wins, falling back to Loamy. Numeric values are drawn around the regional
defaults since descriptions rarely quantify them.
*/
func FromDescription(description string, rng *rand.Rand) Vector {
	desc := strings.ToLower(description)
	soil := Loamy
	for _, sk := range soilKeywords {
		if strings.Contains(desc, sk.keyword) {
			soil = sk.soil
			break
		}
	}
	return Vector{
		SoilPH:      DefaultSoilPH + (rng.Float64()-0.5)*0.5,
		Nitrogen:    DefaultNitrogen + rng.Float64()*30,
		Phosphorus:  DefaultPhosphorus + rng.Float64()*20,
		Potassium:   DefaultPotassium + rng.Float64()*20,
		Temperature: DefaultTemperature + (rng.Float64()-0.5)*4,
		Humidity:    DefaultHumidity + (rng.Float64()-0.5)*15,
		Rainfall:    DefaultRainfall + (rng.Float64()-0.5)*40,
		SoilType:    soil,
	}
}
