package xrefix

import (
	"fmt"
	"strings"
)

// WarningKind classifies a Warning
type WarningKind int

const (
	// WarnMissingHeader means the document has no %PDF-x.y header
	WarnMissingHeader WarningKind = iota
	// WarnCompressedOverwritten means a scanned object replaced an entry
	// that pointed into an object stream
	WarnCompressedOverwritten
	// WarnSizeMismatch means /Size disagrees with the number of decoded rows
	WarnSizeMismatch
)

func (k WarningKind) String() string {
	switch k {
	case WarnMissingHeader:
		return "missing header"
	case WarnCompressedOverwritten:
		return "compressed entry overwritten"
	case WarnSizeMismatch:
		return "size mismatch"
	}
	return "unknown"
}

// Warning is a non-fatal issue found while rebuilding. Object is the object
// number concerned, or -1.
type Warning struct {
	Kind    WarningKind
	Object  int
	Message string
}

func (w Warning) String() string {
	if w.Object < 0 {
		return fmt.Sprintf("%s: %s", w.Kind, w.Message)
	}
	return fmt.Sprintf("%s: object %d: %s", w.Kind, w.Object, w.Message)
}

// FormatWarnings joins warnings into one line each
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
