package report

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/xrefix/xref"
)

func TestWrite(t *testing.T) {
	table := xref.Table{
		xref.Free{Generation: 65535},
		xref.InUse{Offset: 9},
		xref.InUse{Offset: 45},
		xref.Placeholder,
		xref.Compressed{Container: 6, Index: 2},
	}

	var sb strings.Builder
	require.NoError(t, Write(&sb, "/Root 1 0 R", table))
	assert.Equal(t, "/Root 1 0 R\n"+
		"Object 1 at offset 9\n"+
		"Object 2 at offset 45\n"+
		"Object 4 in index 2 of object 6\n", sb.String())
}

func TestWriteEmptyTable(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, Write(&sb, "/Root 2 0 R", nil))
	assert.Equal(t, "/Root 2 0 R\n", sb.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteError(t *testing.T) {
	err := Write(failingWriter{}, "/Root 1 0 R", xref.Table{xref.InUse{Offset: 9}})
	assert.ErrorContains(t, err, "disk full")
}
