// Package recording reads and writes triad recordings as CSV.
//
// Each row is one sample:
//
//	timestamp_ns,kind,frame,x,y,z[,bx,by,bz][,accuracy][,variant]
//
// Columns are located by header name. The bias columns are written empty
// when a sample carries no bias; accuracy and variant fall back to unknown
// and the kind's calibrated variant. An optional unit column (g, degps,
// gauss, ...) converts value and bias to SI on read. Writer always emits SI
// values without a unit column.
package recording

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/banshee-data/inertial.conditioner/internal/measurement"
	"github.com/banshee-data/inertial.conditioner/internal/units"
	"gonum.org/v1/gonum/spatial/r3"
)

// Header is the column order written by Writer.
var Header = []string{"timestamp_ns", "kind", "frame", "x", "y", "z", "bx", "by", "bz", "accuracy", "variant"}

var requiredColumns = []string{"timestamp_ns", "kind", "frame", "x", "y", "z"}

// ErrMissingColumn is returned when a required column is absent from the
// header.
var ErrMissingColumn = errors.New("missing required column")

// Reader decodes triads from CSV.
type Reader struct {
	csv     *csv.Reader
	columns map[string]int
}

// NewReader reads the header row from r.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}
	return &Reader{csv: cr, columns: columns}, nil
}

// Read returns the next triad, or io.EOF after the last row.
func (r *Reader) Read() (measurement.Triad, error) {
	record, err := r.csv.Read()
	if err != nil {
		return measurement.Triad{}, err
	}
	m, err := r.decode(record)
	if err != nil {
		line, _ := r.csv.FieldPos(0)
		return measurement.Triad{}, fmt.Errorf("line %d: %w", line, err)
	}
	return m, nil
}

// ReadAll returns every remaining triad.
func (r *Reader) ReadAll() ([]measurement.Triad, error) {
	var out []measurement.Triad
	for {
		m, err := r.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, m)
	}
}

func (r *Reader) field(record []string, name string) string {
	i, ok := r.columns[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

func (r *Reader) decode(record []string) (measurement.Triad, error) {
	var m measurement.Triad
	var err error

	if m.Timestamp, err = strconv.ParseInt(r.field(record, "timestamp_ns"), 10, 64); err != nil {
		return m, fmt.Errorf("invalid timestamp_ns: %w", err)
	}
	if m.Kind, err = measurement.ParseKind(r.field(record, "kind")); err != nil {
		return m, err
	}
	if m.Kind == measurement.KindAttitude {
		return m, errors.New("attitude rows are not triads")
	}
	if m.Frame, err = measurement.ParseFrame(r.field(record, "frame")); err != nil {
		return m, err
	}
	if m.Value, err = r.vec(record, "x", "y", "z"); err != nil {
		return m, err
	}

	if r.field(record, "bx") != "" {
		bias, err := r.vec(record, "bx", "by", "bz")
		if err != nil {
			return m, err
		}
		m.Bias = measurement.Some(bias)
	}

	if unit := r.field(record, "unit"); unit != "" {
		if err := convertToSI(&m, unit); err != nil {
			return m, err
		}
	}

	if m.Accuracy, err = measurement.ParseAccuracy(r.field(record, "accuracy")); err != nil {
		return m, err
	}

	m.Variant = measurement.Variant(r.field(record, "variant"))
	if m.Variant == "" {
		m.Variant = measurement.DefaultVariant(m.Kind)
	}
	return m, nil
}

func (r *Reader) vec(record []string, x, y, z string) (r3.Vec, error) {
	var v [3]float64
	for i, name := range []string{x, y, z} {
		f, err := strconv.ParseFloat(r.field(record, name), 64)
		if err != nil {
			return r3.Vec{}, fmt.Errorf("invalid %s: %w", name, err)
		}
		v[i] = f
	}
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}, nil
}

func convertToSI(m *measurement.Triad, unit string) error {
	si := units.SIUnit(string(m.Kind))
	convert := func(v r3.Vec) (r3.Vec, error) {
		var out [3]float64
		for i, c := range [3]float64{v.X, v.Y, v.Z} {
			f, err := units.Convert(c, unit, si)
			if err != nil {
				return r3.Vec{}, err
			}
			out[i] = f
		}
		return r3.Vec{X: out[0], Y: out[1], Z: out[2]}, nil
	}

	v, err := convert(m.Value)
	if err != nil {
		return err
	}
	m.Value = v
	if m.Bias.Valid {
		if m.Bias.Value, err = convert(m.Bias.Value); err != nil {
			return err
		}
	}
	return nil
}

// Writer encodes triads as CSV.
type Writer struct {
	csv           *csv.Writer
	headerWritten bool
}

// NewWriter returns a Writer that emits Header before the first row.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// Write encodes one triad.
func (w *Writer) Write(m measurement.Triad) error {
	if !w.headerWritten {
		if err := w.csv.Write(Header); err != nil {
			return err
		}
		w.headerWritten = true
	}

	row := []string{
		strconv.FormatInt(m.Timestamp, 10),
		string(m.Kind),
		string(m.Frame),
		formatFloat(m.Value.X),
		formatFloat(m.Value.Y),
		formatFloat(m.Value.Z),
		"", "", "",
		m.Accuracy.String(),
		string(m.Variant),
	}
	if b, ok := m.Bias.Get(); ok {
		row[6], row[7], row[8] = formatFloat(b.X), formatFloat(b.Y), formatFloat(b.Z)
	}
	return w.csv.Write(row)
}

// Flush writes buffered rows and reports any write error.
func (w *Writer) Flush() error {
	w.csv.Flush()
	return w.csv.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
