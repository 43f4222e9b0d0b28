// Package pdftest builds small PDF documents with cross-reference streams
// for tests.
package pdftest

import (
	"bytes"
	"compress/zlib"
	"fmt"
)

// Builder lays out numbered objects one after another and records where
// each one starts.
type Builder struct {
	buf     bytes.Buffer
	offsets map[int]int
}

// New starts a document with the given header line, e.g. "%PDF-1.5"
func New(header string) *Builder {
	b := &Builder{offsets: make(map[int]int)}
	if header != "" {
		b.buf.WriteString(header + "\n")
	}
	return b
}

// Raw appends bytes verbatim
func (b *Builder) Raw(s string) *Builder {
	b.buf.WriteString(s)
	return b
}

// Object appends "<num> 0 obj\n<body>\nendobj\n"
func (b *Builder) Object(num int, body string) *Builder {
	b.offsets[num] = b.buf.Len()
	fmt.Fprintf(&b.buf, "%d 0 obj\n%s\nendobj\n", num, body)
	return b
}

// Offset returns the offset at which object num was written
func (b *Builder) Offset(num int) int {
	return b.offsets[num]
}

// Len returns the current document length
func (b *Builder) Len() int {
	return b.buf.Len()
}

// XRef describes a cross-reference stream object. Dict holds the extra
// dictionary entries (at least /Root); the builder adds /Type /XRef, /Size,
// /W, /Filter, /DecodeParms and /Length.
type XRef struct {
	Number    int
	W         [3]int
	Rows      [][3]uint64
	Dict      string
	Predictor bool // PNG Up with tag 2 on every row
	Raw       bool // leave the stream uncompressed
}

// XRef appends the cross-reference stream object followed by startxref and
// the end-of-file marker.
func (b *Builder) XRef(x XRef) *Builder {
	data := Rows(x.Rows, x.W)
	width := x.W[0] + x.W[1] + x.W[2]

	dict := fmt.Sprintf("/Type/XRef/Size %d/W[%d %d %d]%s", len(x.Rows), x.W[0], x.W[1], x.W[2], x.Dict)
	if x.Predictor {
		data = PredictUp(data, width)
		dict += fmt.Sprintf("/DecodeParms<</Columns %d/Predictor 12>>", width)
	}
	if !x.Raw {
		data = Deflate(data)
		dict += "/Filter/FlateDecode"
	}
	dict += fmt.Sprintf("/Length %d", len(data))

	off := b.buf.Len()
	b.offsets[x.Number] = off
	fmt.Fprintf(&b.buf, "%d 0 obj\n<<%s>>\nstream\n", x.Number, dict)
	b.buf.Write(data)
	fmt.Fprintf(&b.buf, "\nendstream\nendobj\nstartxref\n%d\n%%%%EOF\n", off)
	return b
}

// Bytes returns the document built so far
func (b *Builder) Bytes() []byte {
	return append([]byte(nil), b.buf.Bytes()...)
}

// Rows serializes table rows as big-endian fields of the given widths
func Rows(rows [][3]uint64, w [3]int) []byte {
	var out []byte
	for _, row := range rows {
		for f := 0; f < 3; f++ {
			for i := w[f] - 1; i >= 0; i-- {
				out = append(out, byte(row[f]>>(8*uint(i))))
			}
		}
	}
	return out
}

// PredictUp applies the PNG Up filter with tag 2 on each row
func PredictUp(data []byte, width int) []byte {
	var out []byte
	prev := make([]byte, width)
	for i := 0; i+width <= len(data); i += width {
		row := data[i : i+width]
		out = append(out, 2)
		for j := range row {
			out = append(out, row[j]-prev[j])
		}
		prev = row
	}
	return out
}

// Deflate compresses data with zlib at the default level
func Deflate(data []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	w.Write(data)
	w.Close()
	return buf.Bytes()
}

// Simple builds the three-object document used throughout the tests:
// a catalog (1), a pages node (2) and the xref stream (3) with /W [1 2 1]
// whose table records the actual offsets of objects 1 and 2.
func Simple() (*Builder, XRef) {
	b := New("%PDF-1.5")
	b.Object(1, "<</Type/Catalog/Pages 2 0 R>>")
	b.Object(2, "<</Type/Pages/Kids[]/Count 0>>")
	x := XRef{
		Number: 3,
		W:      [3]int{1, 2, 1},
		Rows: [][3]uint64{
			{0, 0, 255},
			{1, uint64(b.Offset(1)), 0},
			{1, uint64(b.Offset(2)), 0},
		},
		Dict:      "/Root 1 0 R",
		Predictor: true,
	}
	return b, x
}
