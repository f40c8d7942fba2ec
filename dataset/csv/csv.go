/*
Package csv reads and writes datasets as CSV streams.

The first row of a CSV dataset is a header naming the columns: "label" and
the name of every feature, in any order. The rest of the rows hold one
sample each.
*/
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pbanos/cropforest/dataset"
	"github.com/pbanos/cropforest/feature"
)

// LabelColumn is the header of the column holding sample labels.
const LabelColumn = "label"

/*
Writer is an interface for a set to which samples
can be written to.
*/
type Writer interface {
	// Write writes the given samples and returns the
	// number of samples actually written and an error
	// if not all of them could be written.
	Write([]dataset.Sample) (int, error)
	// Count returns the total number of samples written
	// to the writer
	Count() int
	// Flush ensures any pending written operations finish
	// before returning. It returns an error if that cannot
	// be ensured.
	Flush() error
}

type csvWriter struct {
	count int
	w     *csv.Writer
}

/*
NewWriter takes an io.Writer, writes the CSV header on it and returns a
Writer to dump samples onto it, or an error if the header cannot be written.
*/
func NewWriter(w io.Writer) (Writer, error) {
	cw := csv.NewWriter(w)
	header := []string{LabelColumn}
	for _, f := range feature.All() {
		header = append(header, f.Name())
	}
	if err := cw.Write(header); err != nil {
		return nil, fmt.Errorf("writing header: %v", err)
	}
	return &csvWriter{w: cw}, nil
}

func (cw *csvWriter) Write(samples []dataset.Sample) (int, error) {
	for i, s := range samples {
		row := []string{s.Label}
		for _, f := range feature.Numeric() {
			x, _ := s.Vector.ValueFor(f)
			row = append(row, strconv.FormatFloat(x, 'g', -1, 64))
		}
		row = append(row, string(s.Vector.SoilType))
		if err := cw.w.Write(row); err != nil {
			return i, err
		}
		cw.count++
	}
	return len(samples), nil
}

func (cw *csvWriter) Count() int {
	return cw.count
}

func (cw *csvWriter) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}

/*
WriteDataset takes an io.Writer and a dataset and writes the dataset
as CSV onto the writer.
*/
func WriteDataset(w io.Writer, ds dataset.Dataset) error {
	cw, err := NewWriter(w)
	if err != nil {
		return err
	}
	if _, err = cw.Write(ds); err != nil {
		return err
	}
	return cw.Flush()
}

/*
ReadDataset takes an io.Reader for a CSV stream and returns the dataset
parsed from it or an error.
*/
func ReadDataset(reader io.Reader) (dataset.Dataset, error) {
	var samples []dataset.Sample
	err := ReadDatasetBySample(reader, func(_ int, s dataset.Sample) (bool, error) {
		samples = append(samples, s)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return dataset.New(samples), nil
}

/*
ReadDatasetBySample takes an io.Reader for a CSV stream and a lambda
function on an integer and a dataset.Sample that returns a boolean value.
It parses the samples from the reader and for each it calls the lambda
function with the sample and its index as parameters. If the lambda
function returns true, it will continue processing the next sample,
otherwise it will stop. An error is returned if something goes wrong when
reading the stream or parsing a sample.
*/
func ReadDatasetBySample(reader io.Reader, lambda func(int, dataset.Sample) (bool, error)) error {
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("reading header: %v", err)
	}
	columns, err := parseHeader(header)
	if err != nil {
		return err
	}
	for l := 2; ; l++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading body: %v", err)
		}
		sample, err := parseRow(row, columns)
		if err != nil {
			return fmt.Errorf("parsing line %d: %v", l, err)
		}
		ok, err := lambda(l-2, sample)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return nil
}

/*
ReadDatasetFromFilePath takes a filepath string, opens the file it points to
(os.Stdin if it is "") and uses ReadDataset to return the dataset in it.
*/
func ReadDatasetFromFilePath(filepath string) (dataset.Dataset, error) {
	f := os.Stdin
	if filepath != "" {
		var err error
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("reading dataset: %v", err)
		}
		defer f.Close()
	}
	ds, err := ReadDataset(f)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %v", filepath, err)
	}
	return ds, err
}

// columns maps each expected column to its index in the CSV rows.
type columns struct {
	label    int
	features map[feature.Feature]int
}

func parseHeader(header []string) (*columns, error) {
	cols := &columns{label: -1, features: make(map[feature.Feature]int)}
	for i, name := range header {
		if name == LabelColumn {
			cols.label = i
			continue
		}
		f, err := feature.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("parsing header: %v", err)
		}
		cols.features[f] = i
	}
	if cols.label < 0 {
		return nil, fmt.Errorf("parsing header: missing %q column", LabelColumn)
	}
	for _, f := range feature.All() {
		if _, ok := cols.features[f]; !ok {
			return nil, fmt.Errorf("parsing header: missing %q column", f.Name())
		}
	}
	return cols, nil
}

func parseRow(row []string, cols *columns) (dataset.Sample, error) {
	var v feature.Vector
	for f, i := range cols.features {
		if i >= len(row) {
			return dataset.Sample{}, fmt.Errorf("missing value for %s", f.Name())
		}
		if !f.IsNumeric() {
			st, err := feature.ParseSoilType(row[i])
			if err != nil {
				return dataset.Sample{}, err
			}
			v.SoilType = st
			continue
		}
		x, err := strconv.ParseFloat(row[i], 64)
		if err != nil {
			return dataset.Sample{}, fmt.Errorf("parsing %s value %q: %v", f.Name(), row[i], err)
		}
		v = v.With(f, x)
	}
	if cols.label >= len(row) {
		return dataset.Sample{}, fmt.Errorf("missing label")
	}
	s := dataset.NewSample(v, row[cols.label])
	if err := s.Validate(); err != nil {
		return dataset.Sample{}, err
	}
	return s, nil
}
