package xref

import (
	"github.com/pkg/errors"

	"github.com/tsawler/xrefix/core"
)

// PredictorPNGUp is the only predictor accepted on cross-reference streams
const PredictorPNGUp = 12

// regenerated are the keys rewritten on output and dropped from Retained
var regenerated = map[string]bool{
	"Size":        true,
	"Length":      true,
	"W":           true,
	"Filter":      true,
	"DecodeParms": true,
	"Index":       true,
}

// Dictionary is the parsed cross-reference stream dictionary
type Dictionary struct {
	Size      int // -1 when absent
	Root      string
	Filters   []string
	Predictor int // 0 when absent
	Columns   int
	Widths    [3]int

	// Retained is the dictionary body (without "<<" and ">>") with every
	// regenerated key removed. All other bytes are kept verbatim.
	Retained []byte
}

// RowWidth returns the width in bytes of one table row
func (d *Dictionary) RowWidth() int {
	return d.Widths[0] + d.Widths[1] + d.Widths[2]
}

// ParseDictionary parses the raw dictionary text of an XRef stream object,
// "<<" and ">>" included.
func ParseDictionary(raw []byte) (*Dictionary, error) {
	dict, layout, err := core.ParseDictBytes(raw)
	if err != nil {
		return nil, err
	}

	d := &Dictionary{Size: -1}

	if d.Widths, err = parseWidths(dict); err != nil {
		return nil, err
	}

	rootEntry, ok := layout.Entry("Root")
	if !ok {
		return nil, errors.Wrap(core.ErrMalformedDictionary, "missing /Root")
	}
	d.Root = string(raw[rootEntry.KeyPos:rootEntry.ValueEnd])

	if size, ok := dict.GetInt("Size"); ok {
		d.Size = int(size)
	} else if dict.Has("Size") {
		return nil, errors.Wrapf(core.ErrMalformedDictionary, "/Size is %v", dict.Get("Size"))
	}

	if d.Filters, err = parseFilters(dict.Get("Filter")); err != nil {
		return nil, err
	}
	if err := parseIndex(dict); err != nil {
		return nil, err
	}
	if err := d.parsePredictor(dict.Get("DecodeParms")); err != nil {
		return nil, err
	}

	d.Retained = retain(raw, layout)
	return d, nil
}

func parseWidths(dict core.Dict) ([3]int, error) {
	var w [3]int
	if !dict.Has("W") {
		return w, errors.Wrap(core.ErrUnsupported, "missing /W")
	}
	arr, ok := dict.GetArray("W")
	if !ok || len(arr) != 3 {
		return w, errors.Wrapf(core.ErrMalformedDictionary, "/W must be an array of three integers, got %v", dict.Get("W"))
	}
	ints, err := arr.Ints()
	if err != nil {
		return w, errors.Wrapf(core.ErrMalformedDictionary, "/W: %v", err)
	}
	for i, v := range ints {
		switch {
		case v < 0:
			return w, errors.Wrapf(core.ErrMalformedDictionary, "/W field %d is negative", i)
		case v > 8:
			return w, errors.Wrapf(core.ErrUnsupported, "/W field %d is %d bytes wide", i, v)
		}
		w[i] = int(v)
	}
	if w[0]+w[1]+w[2] == 0 {
		return w, errors.Wrap(core.ErrUnsupported, "/W [0 0 0]")
	}
	return w, nil
}

func parseFilters(obj core.Object) ([]string, error) {
	switch v := obj.(type) {
	case nil:
		return nil, nil
	case core.Name:
		return []string{string(v)}, nil
	case core.Array:
		names := make([]string, 0, len(v))
		for _, item := range v {
			name, ok := item.(core.Name)
			if !ok {
				return nil, errors.Wrapf(core.ErrMalformedDictionary, "/Filter element %v is not a name", item)
			}
			names = append(names, string(name))
		}
		return names, nil
	}
	return nil, errors.Wrapf(core.ErrMalformedDictionary, "/Filter is %v", obj)
}

// parseIndex accepts only a single subsection starting at object 0, since
// row i always describes object i.
func parseIndex(dict core.Dict) error {
	if !dict.Has("Index") {
		return nil
	}
	arr, ok := dict.GetArray("Index")
	if !ok {
		return errors.Wrapf(core.ErrMalformedDictionary, "/Index is %v", dict.Get("Index"))
	}
	ints, err := arr.Ints()
	if err != nil || len(ints)%2 != 0 {
		return errors.Wrapf(core.ErrMalformedDictionary, "/Index %v", arr)
	}
	if len(ints) != 2 || ints[0] != 0 {
		return errors.Wrapf(core.ErrUnsupported, "/Index %v: only [0 n] is supported", arr)
	}
	return nil
}

// parsePredictor takes /Predictor and /Columns from /DecodeParms, which may
// be a dictionary or an array with one entry per filter.
func (d *Dictionary) parsePredictor(obj core.Object) error {
	var parms core.Dict
	switch v := obj.(type) {
	case nil:
	case core.Dict:
		parms = v
	case core.Array:
		for _, item := range v {
			if p, ok := item.(core.Dict); ok && p.Has("Predictor") {
				parms = p
				break
			}
		}
	default:
		return errors.Wrapf(core.ErrMalformedDictionary, "/DecodeParms is %v", obj)
	}

	if parms == nil || !parms.Has("Predictor") {
		return nil
	}
	predictor, ok := parms.GetInt("Predictor")
	if !ok {
		return errors.Wrapf(core.ErrMalformedDictionary, "/Predictor is %v", parms.Get("Predictor"))
	}
	if predictor != PredictorPNGUp {
		return errors.Wrapf(core.ErrUnsupported, "predictor %d", predictor)
	}
	d.Predictor = int(predictor)

	d.Columns = d.RowWidth()
	if parms.Has("Columns") {
		columns, ok := parms.GetInt("Columns")
		if !ok || columns <= 0 {
			return errors.Wrapf(core.ErrMalformedDictionary, "/Columns is %v", parms.Get("Columns"))
		}
		d.Columns = int(columns)
	}
	return nil
}

// retain copies the dictionary body, skipping each regenerated entry from
// its key up to the next key (or the closing ">>").
func retain(raw []byte, layout *core.DictLayout) []byte {
	out := make([]byte, 0, layout.Close-layout.Start)
	pos := layout.Start + 2
	for i, e := range layout.Entries {
		if !regenerated[e.Key] {
			continue
		}
		end := layout.Close
		if i+1 < len(layout.Entries) {
			end = layout.Entries[i+1].KeyPos
		}
		out = append(out, raw[pos:e.KeyPos]...)
		pos = end
	}
	return append(out, raw[pos:layout.Close]...)
}
