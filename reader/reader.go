package reader

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
	"github.com/tdewolff/parse/v2/strconv"
	"golang.org/x/exp/mmap"

	"github.com/tsawler/xrefix/core"
)

// headerWindow is how far into the file the %PDF- marker may appear
const headerWindow = 1024

// PDFVersion represents a PDF version
type PDFVersion struct {
	Major int
	Minor int
}

// String returns the version as a string (e.g., "1.7")
func (v PDFVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Reader holds the bytes of one input document
type Reader struct {
	m         *mmap.ReaderAt
	data      []byte
	version   PDFVersion
	hasHeader bool
}

// Open memory-maps filename and copies its contents into memory
func Open(filename string) (*Reader, error) {
	m, err := mmap.Open(filename)
	if err != nil {
		return nil, errors.Wrap(core.ErrIO, err.Error())
	}

	data := make([]byte, m.Len())
	if _, err := m.ReadAt(data, 0); err != nil && len(data) > 0 {
		m.Close()
		return nil, errors.Wrapf(core.ErrIO, "read %s: %v", filename, err)
	}

	r := Load(data)
	r.m = m
	return r, nil
}

// Load wraps an in-memory document. The slice is used as is.
func Load(data []byte) *Reader {
	r := &Reader{data: data}
	r.version, r.hasHeader = parseHeader(data)
	return r
}

// Bytes returns the document contents
func (r *Reader) Bytes() []byte {
	return r.data
}

// Len returns the document length in bytes
func (r *Reader) Len() int {
	return len(r.data)
}

// Version returns the version from the %PDF-x.y header, and false when the
// document has no recognizable header.
func (r *Reader) Version() (PDFVersion, bool) {
	return r.version, r.hasHeader
}

// Close releases the memory mapping, if any. It is safe to call Close
// multiple times.
func (r *Reader) Close() error {
	if r.m == nil {
		return nil
	}
	err := r.m.Close()
	r.m = nil
	if err != nil {
		return errors.Wrap(core.ErrIO, err.Error())
	}
	return nil
}

// parseHeader finds "%PDF-<major>.<minor>" in the first bytes of data
func parseHeader(data []byte) (PDFVersion, bool) {
	window := data
	if len(window) > headerWindow {
		window = window[:headerWindow]
	}
	i := bytes.Index(window, []byte("%PDF-"))
	if i < 0 {
		return PDFVersion{}, false
	}
	rest := data[i+5:]

	major, n := strconv.ParseUint(rest)
	if n == 0 || n >= len(rest) || rest[n] != '.' {
		return PDFVersion{}, false
	}
	minor, m := strconv.ParseUint(rest[n+1:])
	if m == 0 {
		return PDFVersion{}, false
	}
	return PDFVersion{Major: int(major), Minor: int(minor)}, true
}
