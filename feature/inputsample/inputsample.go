/*
Package inputsample provides a way to read a feature.Vector from an
io.Reader, asking for each value before reading it.
*/
package inputsample

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pbanos/cropforest/feature"
)

/*
FeatureValueRequester represents a way to ask
for feature values and reject the given values.
*/
type FeatureValueRequester interface {
	RequestValueFor(feature.Feature) error
	RejectValueFor(feature.Feature, string) error
}

/*
Read takes an io.Reader and a FeatureValueRequester and returns a
feature.Vector with a value for every feature or an error.

Each value is expected on its own line. For numeric features lines are
read until one holds a finite float64 number; for the soil type until
one names a valid soil type. Every non accepted line is rejected with the
FeatureValueRequester's RejectValueFor method. Running out of input
before all values are read returns an error.
*/
func Read(r io.Reader, fvr FeatureValueRequester) (feature.Vector, error) {
	scanner := bufio.NewScanner(r)
	var v feature.Vector
	for _, f := range feature.All() {
		if err := fvr.RequestValueFor(f); err != nil {
			return v, err
		}
		var err error
		if f.IsNumeric() {
			var x float64
			x, err = readNumeric(scanner, f, fvr)
			v = v.With(f, x)
		} else {
			v.SoilType, err = readSoilType(scanner, f, fvr)
		}
		if err != nil {
			return v, err
		}
	}
	return v, nil
}

func readNumeric(scanner *bufio.Scanner, f feature.Feature, fvr FeatureValueRequester) (float64, error) {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		value, err := strconv.ParseFloat(line, 64)
		if err == nil && !math.IsNaN(value) && !math.IsInf(value, 0) {
			return value, nil
		}
		if err := fvr.RejectValueFor(f, line); err != nil {
			return 0, err
		}
	}
	return 0, scanErr(scanner, f)
}

func readSoilType(scanner *bufio.Scanner, f feature.Feature, fvr FeatureValueRequester) (feature.SoilType, error) {
	for scanner.Scan() {
		line := scanner.Text()
		st, err := feature.ParseSoilType(line)
		if err == nil {
			return st, nil
		}
		if err := fvr.RejectValueFor(f, line); err != nil {
			return "", err
		}
	}
	return "", scanErr(scanner, f)
}

func scanErr(scanner *bufio.Scanner, f feature.Feature) error {
	if err := scanner.Err(); err != nil {
		return err
	}
	return fmt.Errorf("EOF when requesting value for %s", f.Name())
}
