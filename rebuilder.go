package xrefix

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/tsawler/xrefix/core"
	"github.com/tsawler/xrefix/logging"
	"github.com/tsawler/xrefix/reader"
	"github.com/tsawler/xrefix/report"
	"github.com/tsawler/xrefix/scan"
	"github.com/tsawler/xrefix/writer"
	"github.com/tsawler/xrefix/xref"
)

// Rebuilder provides a fluent interface for rebuilding or inspecting a
// document's cross-reference stream. Each configuration method returns a
// new Rebuilder, so a configured value can be shared and reused.
type Rebuilder struct {
	// Source
	filename string
	data     []byte
	haveData bool

	// Configuration
	options Options
}

// clone creates a copy of the Rebuilder with a copy of options.
func (r *Rebuilder) clone() *Rebuilder {
	return &Rebuilder{
		filename: r.filename,
		data:     r.data,
		haveData: r.haveData,
		options:  r.options.clone(),
	}
}

// ============================================================================
// Configuration Methods (return new Rebuilder instance)
// ============================================================================

// CompressionLevel sets the zlib level of the rebuilt stream. The default
// is zlib.BestCompression; levels outside zlib.HuffmanOnly..BestCompression
// make terminal operations fail with core.ErrUnsupported.
//
// Example:
//
//	out, _, err := xrefix.FromBytes(data).CompressionLevel(zlib.BestSpeed).Rebuild()
func (r *Rebuilder) CompressionLevel(level int) *Rebuilder {
	n := r.clone()
	n.options.compressionLevel = level
	return n
}

// Logger sets the logger for this rebuild instead of logging.Logger().
//
// Example:
//
//	out, _, err := xrefix.FromBytes(data).Logger(slog.Default()).Rebuild()
func (r *Rebuilder) Logger(l *slog.Logger) *Rebuilder {
	n := r.clone()
	n.options.logger = l
	return n
}

// StrictHeader makes a missing %PDF- header a core.ErrStructural error
// instead of a warning.
//
// Example:
//
//	_, err := xrefix.Open("in.pdf").StrictHeader().WriteFile("out.pdf")
func (r *Rebuilder) StrictHeader() *Rebuilder {
	n := r.clone()
	n.options.strictHeader = true
	return n
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Rebuild returns the rewritten document: the original bytes up to the old
// XRef stream object followed by a new one covering every scanned object.
//
// Example:
//
//	out, warnings, err := xrefix.FromBytes(data).Rebuild()
func (r *Rebuilder) Rebuild() ([]byte, []Warning, error) {
	var out []byte
	warnings, err := r.run(func(a *analysis) error {
		var err error
		out, err = r.encode(a)
		return err
	})
	if err != nil {
		return nil, warnings, err
	}
	return out, warnings, nil
}

// WriteFile rebuilds the document and writes it to path. Nothing is written
// when the rebuild fails.
//
// Example:
//
//	warnings, err := xrefix.Open("in.pdf").WriteFile("out.pdf")
func (r *Rebuilder) WriteFile(path string) ([]Warning, error) {
	out, warnings, err := r.Rebuild()
	if err != nil {
		return warnings, err
	}
	if err := writer.WriteFile(path, out); err != nil {
		return warnings, errors.WithMessagef(err, "write %s", path)
	}
	r.logger().Debug("wrote document", slog.String("path", path), slog.Int("bytes", len(out)))
	return warnings, nil
}

// Inspect prints the root reference and the location of every object in the
// merged table to w. No width planning or encoding takes place.
//
// Example:
//
//	_, err := xrefix.Open("in.pdf").Inspect(os.Stdout)
func (r *Rebuilder) Inspect(w io.Writer) ([]Warning, error) {
	return r.run(func(a *analysis) error {
		return report.Write(w, a.dict.Root, a.table)
	})
}

// ============================================================================
// Pipeline
// ============================================================================

// analysis is the state shared by the terminal operations once the table
// has been decoded and merged.
type analysis struct {
	data  []byte
	scan  *scan.Result
	dict  *xref.Dictionary
	table xref.Table
}

func (r *Rebuilder) logger() *slog.Logger {
	if r.options.logger != nil {
		return r.options.logger
	}
	return logging.Logger()
}

// run loads the document, analyzes it and hands the result to fn
func (r *Rebuilder) run(fn func(*analysis) error) ([]Warning, error) {
	if !validLevel(r.options.compressionLevel) {
		return nil, errors.Wrapf(core.ErrUnsupported, "compression level %d", r.options.compressionLevel)
	}

	src, err := r.load()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	a, warnings, err := r.analyze(src)
	if err != nil {
		return warnings, err
	}
	return warnings, fn(a)
}

// load opens the source document
func (r *Rebuilder) load() (*reader.Reader, error) {
	if r.haveData {
		return reader.Load(r.data), nil
	}
	if r.filename == "" {
		return nil, errors.Wrap(core.ErrIO, "no filename specified")
	}
	src, err := reader.Open(r.filename)
	if err != nil {
		return nil, errors.WithMessagef(err, "open %s", r.filename)
	}
	return src, nil
}

// analyze scans the document, decodes its XRef stream and merges the
// scanned offsets into the table.
func (r *Rebuilder) analyze(src *reader.Reader) (*analysis, []Warning, error) {
	log := r.logger()
	var warnings []Warning

	if v, ok := src.Version(); ok {
		log.Debug("header", slog.String("version", v.String()))
	} else if r.options.strictHeader {
		return nil, nil, errors.Wrap(core.ErrStructural, "missing %PDF- header")
	} else {
		warnings = append(warnings, Warning{Kind: WarnMissingHeader, Object: -1, Message: "no %PDF-x.y header"})
	}

	data := src.Bytes()
	res, err := scan.Scan(data)
	if err != nil {
		return nil, warnings, err
	}
	log.Debug("scanned", slog.Int("objects", len(res.Objects)), slog.Int("xref_object", res.XRef.Number),
		slog.Int("xref_offset", res.XRef.Offset))

	dict, err := xref.ParseDictionary(res.XRef.Dict)
	if err != nil {
		return nil, warnings, errors.WithMessagef(err, "xref object %d", res.XRef.Number)
	}
	raw, err := xref.Decode(dict, res.XRef.Stream)
	if err != nil {
		return nil, warnings, errors.WithMessagef(err, "xref object %d", res.XRef.Number)
	}
	rows, err := xref.ParseRows(raw, dict.Widths)
	if err != nil {
		return nil, warnings, errors.WithMessagef(err, "xref object %d", res.XRef.Number)
	}
	table, err := xref.NewTable(rows)
	if err != nil {
		return nil, warnings, errors.WithMessagef(err, "xref object %d", res.XRef.Number)
	}
	log.Debug("decoded", slog.Int("entries", len(table)), slog.Any("widths", dict.Widths))

	if dict.Size >= 0 && dict.Size != len(rows) {
		warnings = append(warnings, Warning{
			Kind:    WarnSizeMismatch,
			Object:  res.XRef.Number,
			Message: fmt.Sprintf("/Size %d but the stream holds %d rows", dict.Size, len(rows)),
		})
	}

	merged, overwrites := xref.Merge(table, res.Objects)
	for _, o := range overwrites {
		log.Warn("compressed entry overwritten", slog.Int("object", o.Object), slog.Uint64("container", o.Was.Container))
		warnings = append(warnings, Warning{
			Kind:    WarnCompressedOverwritten,
			Object:  o.Object,
			Message: fmt.Sprintf("was index %d of object %d, now located by scan", o.Was.Index, o.Was.Container),
		})
	}
	log.Debug("merged", slog.Int("entries", len(merged)))

	return &analysis{data: data, scan: res, dict: dict, table: merged}, warnings, nil
}

// encode plans widths, re-encodes the merged table and assembles the output
func (r *Rebuilder) encode(a *analysis) ([]byte, error) {
	prefix := a.data[:a.scan.XRef.Offset]
	widths := xref.PlanWidths(a.table, a.dict.Widths, len(prefix))

	stream, err := xref.Encode(a.table, widths, r.options.compressionLevel)
	if err != nil {
		return nil, errors.WithMessagef(err, "encode xref object %d", a.scan.XRef.Number)
	}
	r.logger().Debug("encoded", slog.Any("widths", widths), slog.Int("compressed_bytes", len(stream)))

	return writer.Build(writer.Document{
		Prefix:   prefix,
		Number:   a.scan.XRef.Number,
		Retained: a.dict.Retained,
		Widths:   widths,
		Size:     len(a.table),
		Stream:   stream,
	}), nil
}
