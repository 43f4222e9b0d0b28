package xref

import "math/bits"

// PlanWidths widens the decoded /W so the new table fits. The offset field
// must hold any offset below truncatedLen, the length of the document once
// the old table is cut off, and the generation field must hold 65535 when a
// sentinel entry is present. The type field is never widened.
func PlanWidths(table Table, w [3]int, truncatedLen int) [3]int {
	planned := w
	if n := ByteLen(uint64(truncatedLen)); n > planned[1] {
		planned[1] = n
	}
	if table.HasSentinel() && planned[2] < 2 {
		planned[2] = 2
	}
	return planned
}

// ByteLen returns the number of bytes needed to hold v, 0 for v == 0
func ByteLen(v uint64) int {
	return (bits.Len64(v) + 7) / 8
}
