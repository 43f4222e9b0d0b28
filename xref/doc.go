// Package xref decodes, merges and re-encodes cross-reference streams.
//
// The pipeline mirrors the life of a table:
//
//   - [ParseDictionary] reads /W, /Root, /Filter and /DecodeParms and keeps
//     the rest of the dictionary text for re-emission.
//   - [Decode] undoes the filters and the PNG predictor, [ParseRows] splits
//     the result into rows and [NewTable] turns rows into [Entry] values.
//   - [Merge] forces every scanned object to [InUse] at its scanned offset.
//   - [PlanWidths] widens /W where the new values need it.
//   - [EncodeRows] and [Encode] write the table back out, always with the
//     PNG Up predictor and Flate compression.
//
// Row i of a table always describes object i.
package xref
