package xref

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/tsawler/xrefix/core"
)

// Entry types as stored in the first field of a row
const (
	TypeFree       = 0
	TypeInUse      = 1
	TypeCompressed = 2
)

// SentinelGeneration marks a free slot that is never meant to be reused
const SentinelGeneration = 65535

// Row is one decoded table row: type, field 1 and field 2
type Row [3]uint64

// Entry is one object-number slot of the table. It is one of Free, InUse
// or Compressed.
type Entry interface {
	Row() Row
	String() string
}

// Free is a type 0 entry
type Free struct {
	Next       uint64
	Generation uint64
}

func (f Free) Row() Row { return Row{TypeFree, f.Next, f.Generation} }
func (f Free) String() string {
	return fmt.Sprintf("free (next %d, generation %d)", f.Next, f.Generation)
}

// InUse is a type 1 entry locating an object by byte offset
type InUse struct {
	Offset     uint64
	Generation uint64
}

func (u InUse) Row() Row { return Row{TypeInUse, u.Offset, u.Generation} }
func (u InUse) String() string {
	return fmt.Sprintf("offset %d, generation %d", u.Offset, u.Generation)
}

// Compressed is a type 2 entry locating an object inside an object stream
type Compressed struct {
	Container uint64
	Index     uint64
}

func (c Compressed) Row() Row { return Row{TypeCompressed, c.Container, c.Index} }
func (c Compressed) String() string {
	return fmt.Sprintf("index %d of object %d", c.Index, c.Container)
}

// Placeholder is the entry used for slots no table or scan describes
var Placeholder Entry = Free{Next: 0, Generation: SentinelGeneration}

// EntryFromRow converts a row to its entry variant
func EntryFromRow(r Row) (Entry, error) {
	switch r[0] {
	case TypeFree:
		return Free{Next: r[1], Generation: r[2]}, nil
	case TypeInUse:
		return InUse{Offset: r[1], Generation: r[2]}, nil
	case TypeCompressed:
		return Compressed{Container: r[1], Index: r[2]}, nil
	}
	return nil, errors.Wrapf(core.ErrUnsupported, "entry type %d", r[0])
}

// Table is the cross-reference table indexed by object number
type Table []Entry

// NewTable converts rows to entries; row i becomes object i
func NewTable(rows []Row) (Table, error) {
	table := make(Table, len(rows))
	for i, r := range rows {
		e, err := EntryFromRow(r)
		if err != nil {
			return nil, errors.WithMessagef(err, "object %d", i)
		}
		table[i] = e
	}
	return table, nil
}

// HasSentinel reports whether any entry's last field is 65535
func (t Table) HasSentinel() bool {
	for _, e := range t {
		if e.Row()[2] == SentinelGeneration {
			return true
		}
	}
	return false
}
