package feature

import (
	"fmt"
	"strings"
)

// SoilType is the categorical soil classification of a piece of land.
type SoilType string

// Soil types found in the region.
const (
	Sandy    SoilType = "Sandy"
	Loamy    SoilType = "Loamy"
	Clay     SoilType = "Clay"
	Red      SoilType = "Red"
	Black    SoilType = "Black"
	Alluvial SoilType = "Alluvial"
)

var soilTypes = []SoilType{Sandy, Loamy, Clay, Red, Black, Alluvial}

// SoilTypes returns a new slice with the six valid soil types.
func SoilTypes() []SoilType {
	return append([]SoilType(nil), soilTypes...)
}

/*
ParseSoilType takes a string and returns the matching SoilType, comparing
case-insensitively, or an error if it names none of the valid soil types.
*/
func ParseSoilType(s string) (SoilType, error) {
	for _, st := range soilTypes {
		if strings.EqualFold(string(st), strings.TrimSpace(s)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown soil type %q, expected one of %v", s, soilTypes)
}

// Valid reports whether st is one of the six soil types.
func (st SoilType) Valid() bool {
	for _, v := range soilTypes {
		if v == st {
			return true
		}
	}
	return false
}
