// Package report prints a resolved cross-reference table as text.
package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/tsawler/xrefix/xref"
)

// Write prints the root reference followed by one line per located object:
//
//	/Root 1 0 R
//	Object 1 at offset 9
//	Object 4 in index 0 of object 3
//
// Free entries are skipped.
func Write(w io.Writer, root string, table xref.Table) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, root)
	for n, e := range table {
		switch e := e.(type) {
		case xref.InUse:
			fmt.Fprintf(bw, "Object %d at offset %d\n", n, e.Offset)
		case xref.Compressed:
			fmt.Fprintf(bw, "Object %d in index %d of object %d\n", n, e.Index, e.Container)
		}
	}
	return errors.Wrap(bw.Flush(), "write report")
}
