/*
Package yaml provides methods to parse crop profile catalogs and jitter
specifications from YAML documents.
*/
package yaml

import (
	"fmt"
	"io/ioutil"

	"github.com/pbanos/cropforest/dataset"
	"github.com/pbanos/cropforest/feature"
	yaml "gopkg.in/yaml.v2"
)

type profile struct {
	Name           string             `yaml:"name"`
	Label          string             `yaml:"label"`
	Seasons        []string           `yaml:"seasons"`
	Duration       string             `yaml:"duration"`
	PreferredSoils []string           `yaml:"preferred_soils"`
	Means          map[string]float64 `yaml:"means"`
}

type catalog struct {
	Crops  []profile          `yaml:"crops"`
	Jitter map[string]float64 `yaml:"jitter"`
}

/*
ReadCatalog takes a slice of bytes with a catalog in YAML and returns the
crop profiles and jitter parsed from it or an error.
The YAML is expected to be an object with a "crops" list, each crop having
a name, optional label, seasons, duration and preferred_soils, and a "means"
object with a value for every numeric feature keyed by feature name. An
optional "jitter" object keyed by feature name overrides the default noise
widths.
*/
func ReadCatalog(data []byte) ([]dataset.Profile, dataset.Jitter, error) {
	c := catalog{}
	err := yaml.Unmarshal(data, &c)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing yml catalog: %v", err)
	}
	if len(c.Crops) == 0 {
		return nil, nil, fmt.Errorf("catalog has no crop information")
	}
	profiles := make([]dataset.Profile, 0, len(c.Crops))
	for _, cp := range c.Crops {
		p, err := cp.toProfile()
		if err != nil {
			return nil, nil, err
		}
		profiles = append(profiles, p)
	}
	jitter := dataset.DefaultJitter()
	for name, w := range c.Jitter {
		f, err := numericFeature(name)
		if err != nil {
			return nil, nil, fmt.Errorf("parsing jitter: %v", err)
		}
		jitter[f] = w
	}
	return profiles, jitter, nil
}

/*
ReadCatalogFromFile takes a filepath string, reads its contents and uses
ReadCatalog to parse them.
*/
func ReadCatalogFromFile(filepath string) ([]dataset.Profile, dataset.Jitter, error) {
	data, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, nil, fmt.Errorf("reading catalog yml file %s: %v", filepath, err)
	}
	profiles, jitter, err := ReadCatalog(data)
	if err != nil {
		err = fmt.Errorf("parsing catalog yml file %s: %v", filepath, err)
	}
	return profiles, jitter, err
}

func (cp profile) toProfile() (dataset.Profile, error) {
	p := dataset.Profile{
		Name:     cp.Name,
		Label:    cp.Label,
		Seasons:  cp.Seasons,
		Duration: cp.Duration,
		Means:    make(map[feature.Feature]float64),
	}
	if p.Label == "" {
		p.Label = p.Name
	}
	for _, s := range cp.PreferredSoils {
		st, err := feature.ParseSoilType(s)
		if err != nil {
			return p, fmt.Errorf("crop %s: %v", cp.Name, err)
		}
		p.PreferredSoils = append(p.PreferredSoils, st)
	}
	for name, m := range cp.Means {
		f, err := numericFeature(name)
		if err != nil {
			return p, fmt.Errorf("crop %s: %v", cp.Name, err)
		}
		p.Means[f] = m
	}
	return p, p.Validate()
}

func numericFeature(name string) (feature.Feature, error) {
	f, err := feature.Parse(name)
	if err != nil {
		return f, err
	}
	if !f.IsNumeric() {
		return f, fmt.Errorf("feature %s is not numeric", name)
	}
	return f, nil
}
