package xref

import (
	"github.com/pkg/errors"

	"github.com/tsawler/xrefix/core"
	"github.com/tsawler/xrefix/internal/filters"
)

// fieldDefaults are the values implied by a field of width 0
var fieldDefaults = Row{TypeInUse, 0, 0}

// EncodeRows writes one row per entry as big-endian fields of the given
// widths. A value that does not fit its field is an error.
func EncodeRows(table Table, w [3]int) ([]byte, error) {
	width := w[0] + w[1] + w[2]
	out := make([]byte, 0, len(table)*width)
	for i, e := range table {
		r := e.Row()
		for f := 0; f < 3; f++ {
			if !fits(r[f], w[f], fieldDefaults[f]) {
				return nil, errors.Wrapf(core.ErrUnsupported,
					"object %d: field %d value %d does not fit in %d bytes", i, f, r[f], w[f])
			}
			for s := w[f] - 1; s >= 0; s-- {
				out = append(out, byte(r[f]>>(8*uint(s))))
			}
		}
	}
	return out, nil
}

func fits(v uint64, width int, def uint64) bool {
	if width == 0 {
		return v == def
	}
	return ByteLen(v) <= width
}

// Encode serializes the table, applies the PNG Up predictor and compresses
// the result at the given zlib level.
func Encode(table Table, w [3]int, level int) ([]byte, error) {
	rows, err := EncodeRows(table, w)
	if err != nil {
		return nil, err
	}
	predicted, err := filters.EncodePNGUp(rows, w[0]+w[1]+w[2])
	if err != nil {
		return nil, err
	}
	return filters.FlateEncode(predicted, level)
}
