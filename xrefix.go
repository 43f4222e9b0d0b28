// Package xrefix rebuilds the cross-reference stream of a PDF file.
//
// The document is scanned for its indirect objects, the existing XRef stream
// is decoded, every scanned object's real offset is merged into the table and
// the table is written back as a new XRef stream at the end of the file.
//
// Basic usage:
//
//	warnings, err := xrefix.Open("edited.pdf").WriteFile("fixed.pdf")
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", xrefix.FormatWarnings(warnings))
//	}
//
// Printing the resolved table instead of writing a file:
//
//	_, err := xrefix.Open("edited.pdf").Inspect(os.Stdout)
//
// With options:
//
//	out, _, err := xrefix.FromBytes(data).
//	    CompressionLevel(zlib.BestSpeed).
//	    StrictHeader().
//	    Rebuild()
package xrefix

// Open returns a Rebuilder for the named file. The file is read when a
// terminal operation such as Rebuild, WriteFile or Inspect runs.
//
// Example:
//
//	warnings, err := xrefix.Open("in.pdf").WriteFile("out.pdf")
func Open(filename string) *Rebuilder {
	return &Rebuilder{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromBytes returns a Rebuilder over a document already in memory. The
// slice is never modified.
//
// Example:
//
//	out, warnings, err := xrefix.FromBytes(data).Rebuild()
func FromBytes(data []byte) *Rebuilder {
	return &Rebuilder{
		data:     data,
		haveData: true,
		options:  defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	warnings := xrefix.Must(xrefix.Open("in.pdf").WriteFile("out.pdf"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustRebuild is like Must for Rebuild: it discards warnings and panics on
// error.
//
// Example:
//
//	out := xrefix.MustRebuild(xrefix.FromBytes(data).Rebuild())
func MustRebuild(out []byte, _ []Warning, err error) []byte {
	if err != nil {
		panic(err)
	}
	return out
}
