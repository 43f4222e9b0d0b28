package xref

import (
	"github.com/pkg/errors"

	"github.com/tsawler/xrefix/core"
	"github.com/tsawler/xrefix/internal/filters"
)

// Decode turns the stream payload into the flat row bytes: the /Filter chain
// is applied first, then the PNG predictor when /Predictor is set.
func Decode(d *Dictionary, stream []byte) ([]byte, error) {
	data, err := filters.Decode(stream, d.Filters)
	if err != nil {
		return nil, errors.WithMessage(err, "xref stream")
	}
	if d.Predictor == 0 {
		return data, nil
	}

	data, err = filters.Unpredict(data, filters.Predictor{
		Predictor: d.Predictor,
		Columns:   d.Columns,
	})
	if err != nil {
		return nil, errors.WithMessage(err, "xref stream")
	}
	return data, nil
}

// ParseRows splits the decoded table into rows of big-endian fields. A type
// field of width 0 makes every row type 1.
func ParseRows(data []byte, w [3]int) ([]Row, error) {
	width := w[0] + w[1] + w[2]
	if width == 0 {
		return nil, errors.Wrap(core.ErrUnsupported, "zero row width")
	}
	if len(data)%width != 0 {
		return nil, errors.Wrapf(core.ErrStructural, "table of %d bytes is not a whole number of %d byte rows", len(data), width)
	}

	rows := make([]Row, len(data)/width)
	for i := range rows {
		b := data[i*width : (i+1)*width]
		var r Row
		for f := 0; f < 3; f++ {
			r[f] = readField(b[:w[f]])
			b = b[w[f]:]
		}
		if w[0] == 0 {
			r[0] = TypeInUse
		}
		rows[i] = r
	}
	return rows, nil
}

func readField(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}
