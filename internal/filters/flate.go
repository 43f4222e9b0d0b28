package filters

import (
	"bytes"
	"compress/zlib"
	"io"

	"github.com/pkg/errors"

	"github.com/tsawler/xrefix/core"
)

// FlateDecode decompresses Flate (zlib/deflate) compressed data.
//
// Bytes after the end of the zlib stream are ignored; PDF writers commonly
// leave an end-of-line before "endstream" that ends up inside the payload.
func FlateDecode(data []byte) ([]byte, error) {
	reader, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(core.ErrUnsupported, "flate: "+err.Error())
	}
	defer reader.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return nil, errors.Wrap(core.ErrUnsupported, "flate: "+err.Error())
	}
	return buf.Bytes(), nil
}

// FlateEncode compresses data into a zlib stream at the given level
// (zlib.BestCompression is what the rebuilder uses).
func FlateEncode(data []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, errors.Wrapf(core.ErrUnsupported, "flate: compression level %d", level)
	}
	if _, err := w.Write(data); err != nil {
		return nil, errors.Wrap(err, "flate: compress")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "flate: finish stream")
	}
	return buf.Bytes(), nil
}
