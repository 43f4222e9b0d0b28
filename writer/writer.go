package writer

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"

	"github.com/tsawler/xrefix/core"
)

// Document describes the rebuilt cross-reference stream object
type Document struct {
	// Prefix is the original document up to the old xref object
	Prefix []byte

	Number   int
	Retained []byte // dictionary body kept from the old object
	Widths   [3]int
	Size     int
	Stream   []byte // compressed, predicted table
}

// Build returns Prefix followed by the new xref object, startxref pointing
// at it and the end-of-file marker.
func Build(doc Document) []byte {
	var buf bytes.Buffer
	columns := doc.Widths[0] + doc.Widths[1] + doc.Widths[2]
	buf.Grow(len(doc.Prefix) + len(doc.Retained) + len(doc.Stream) + 160)

	buf.Write(doc.Prefix)
	buf.WriteString(strconv.Itoa(doc.Number))
	buf.WriteString(" 0 obj\r<<")
	buf.Write(doc.Retained)
	buf.WriteString("/DecodeParms<</Columns ")
	buf.WriteString(strconv.Itoa(columns))
	buf.WriteString("/Predictor 12>>/Filter/FlateDecode/Size ")
	buf.WriteString(strconv.Itoa(doc.Size))
	buf.WriteString("/Length ")
	buf.WriteString(strconv.Itoa(len(doc.Stream)))
	buf.WriteString("/W[")
	buf.WriteString(strconv.Itoa(doc.Widths[0]))
	buf.WriteByte(' ')
	buf.WriteString(strconv.Itoa(doc.Widths[1]))
	buf.WriteByte(' ')
	buf.WriteString(strconv.Itoa(doc.Widths[2]))
	buf.WriteString("]>>stream\r\n")
	buf.Write(doc.Stream)
	buf.WriteString("\r\nendstream\rendobj\rstartxref\r\n")
	buf.WriteString(strconv.Itoa(len(doc.Prefix)))
	buf.WriteString("\r\n%%EOF\r\n")
	return buf.Bytes()
}

// WriteFile writes data to path through a temporary file in the same
// directory, so a failed write leaves no partial output behind.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(core.ErrIO, err.Error())
	}
	name := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return errors.Wrap(core.ErrIO, err.Error())
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return errors.Wrap(core.ErrIO, err.Error())
	}
	if err := os.Chmod(name, 0o644); err != nil {
		os.Remove(name)
		return errors.Wrap(core.ErrIO, err.Error())
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return errors.Wrap(core.ErrIO, err.Error())
	}
	return nil
}
