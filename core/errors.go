package core

import "github.com/pkg/errors"

// Error kinds shared by every stage of the rebuild pipeline. Callers classify
// a failure with errors.Is; the wrapped message carries the detail.
var (
	// ErrStructural reports a document layout problem: an object after the
	// cross-reference stream, a duplicated object number, or a marker that
	// cannot be read.
	ErrStructural = errors.New("structural error")

	// ErrUnsupported reports a well-formed input that uses a feature the
	// rebuilder does not handle (a predictor other than 12, an unknown entry
	// type, a missing /W array).
	ErrUnsupported = errors.New("unsupported format")

	// ErrMalformedDictionary reports dictionary text that cannot be parsed
	// or whose fields have the wrong type.
	ErrMalformedDictionary = errors.New("malformed dictionary")

	// ErrIO reports a failure reading the input or writing the output.
	ErrIO = errors.New("i/o error")
)
