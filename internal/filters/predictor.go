package filters

import (
	"github.com/pkg/errors"

	"github.com/tsawler/xrefix/core"
)

// PNG row filter tags.
const (
	PNGNone    byte = 0
	PNGSub     byte = 1
	PNGUp      byte = 2
	PNGAverage byte = 3
	PNGPaeth   byte = 4
)

// Predictor holds the /DecodeParms values that control prediction.
// Zero Colors and BitsPerComponent mean the PDF defaults (1 and 8).
type Predictor struct {
	Predictor        int
	Columns          int
	Colors           int
	BitsPerComponent int
}

func (p Predictor) bytesPerPixel() int {
	if p.Colors <= 0 {
		return 1
	}
	return p.Colors
}

func (p Predictor) rowLength() int {
	return p.Columns * p.bytesPerPixel()
}

// Unpredict reverses the predictor transform on already-decompressed data.
// Predictor 1 (or 0) is identity and 10-15 select the PNG predictors, where
// every row carries its own leading tag byte. Other predictors are rejected.
func Unpredict(data []byte, p Predictor) ([]byte, error) {
	switch {
	case p.Predictor <= 1:
		return data, nil
	case p.Predictor >= 10 && p.Predictor <= 15:
		return decodePNG(data, p)
	}
	return nil, errors.Wrapf(core.ErrUnsupported, "predictor %d", p.Predictor)
}

// decodePNG strips the tag byte from every row and reconstructs the row from
// its filter and the previously reconstructed row.
func decodePNG(data []byte, p Predictor) ([]byte, error) {
	if p.BitsPerComponent != 0 && p.BitsPerComponent != 8 {
		return nil, errors.Wrapf(core.ErrUnsupported, "PNG predictor with %d bits per component", p.BitsPerComponent)
	}
	rowLength := p.rowLength()
	if rowLength <= 0 {
		return nil, errors.Wrapf(core.ErrUnsupported, "PNG predictor with %d columns", p.Columns)
	}
	stride := rowLength + 1
	if len(data)%stride != 0 {
		return nil, errors.Wrapf(core.ErrUnsupported, "predicted data size %d is not a multiple of row size %d", len(data), stride)
	}

	bpp := p.bytesPerPixel()
	rows := len(data) / stride
	out := make([]byte, rows*rowLength)
	prev := make([]byte, rowLength) // row -1 is all zeros

	for row := 0; row < rows; row++ {
		tag := data[row*stride]
		src := data[row*stride+1 : (row+1)*stride]
		dst := out[row*rowLength : (row+1)*rowLength]

		for i := range src {
			var left, upLeft byte
			if i >= bpp {
				left = dst[i-bpp]
				upLeft = prev[i-bpp]
			}
			up := prev[i]

			switch tag {
			case PNGNone:
				dst[i] = src[i]
			case PNGSub:
				dst[i] = src[i] + left
			case PNGUp:
				dst[i] = src[i] + up
			case PNGAverage:
				dst[i] = src[i] + byte((int(left)+int(up))/2)
			case PNGPaeth:
				dst[i] = src[i] + paethPredictor(left, up, upLeft)
			default:
				return nil, errors.Wrapf(core.ErrUnsupported, "row %d: unknown PNG filter tag %d", row, tag)
			}
		}
		prev = dst
	}

	return out, nil
}

// EncodePNGUp applies the PNG "Up" filter to rows of the given width: each
// row gets tag byte 2, row 0 keeps its bytes, and every later byte becomes
// the wraparound difference from the same column of the previous raw row.
func EncodePNGUp(data []byte, columns int) ([]byte, error) {
	if columns <= 0 {
		return nil, errors.Wrapf(core.ErrUnsupported, "PNG predictor with %d columns", columns)
	}
	if len(data)%columns != 0 {
		return nil, errors.Errorf("data size %d is not a multiple of row size %d", len(data), columns)
	}

	rows := len(data) / columns
	out := make([]byte, 0, rows*(columns+1))
	for row := 0; row < rows; row++ {
		cur := data[row*columns : (row+1)*columns]
		out = append(out, PNGUp)
		if row == 0 {
			out = append(out, cur...)
			continue
		}
		prev := data[(row-1)*columns : row*columns]
		for i := range cur {
			out = append(out, cur[i]-prev[i])
		}
	}
	return out, nil
}

// paethPredictor picks whichever of left, above or upper-left is closest to
// left+above-upperLeft.
func paethPredictor(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))

	if pa <= pb && pa <= pc {
		return a
	} else if pb <= pc {
		return b
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
