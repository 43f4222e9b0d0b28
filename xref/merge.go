package xref

import (
	"github.com/tsawler/xrefix/scan"
)

// Overwrite records a Compressed entry replaced by a scanned object
type Overwrite struct {
	Object int
	Was    Compressed
}

// Merge returns a copy of table extended to cover every scanned object, with
// each scanned object set to InUse at its scanned offset and generation 0.
// New slots no object claims hold Placeholder. Compressed entries are
// replaced like any other and reported as overwrites.
func Merge(table Table, objects []scan.Object) (Table, []Overwrite) {
	size := len(table)
	for _, obj := range objects {
		if obj.Number+1 > size {
			size = obj.Number + 1
		}
	}

	merged := make(Table, size)
	copy(merged, table)
	for i := len(table); i < size; i++ {
		merged[i] = Placeholder
	}

	var overwrites []Overwrite
	for _, obj := range objects {
		if c, ok := merged[obj.Number].(Compressed); ok {
			overwrites = append(overwrites, Overwrite{Object: obj.Number, Was: c})
		}
		merged[obj.Number] = InUse{Offset: uint64(obj.Offset), Generation: 0}
	}
	return merged, overwrites
}
