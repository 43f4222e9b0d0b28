// Package filters implements the stream codecs needed to read and rewrite a
// cross-reference stream.
//
// # Decoding
//
// Decode runs a /Filter chain by name:
//
//	raw, err := filters.Decode(payload, []string{"FlateDecode"})
//
// FlateDecode, ASCIIHexDecode and ASCII85Decode (and their abbreviations) are
// supported. Prediction is a separate step, matching the /DecodeParms split:
//
//	rows, err := filters.Unpredict(raw, filters.Predictor{Predictor: 12, Columns: 5})
//
// Predictors 10-15 select the PNG filters; every row starts with a tag byte
// (0 None, 1 Sub, 2 Up, 3 Average, 4 Paeth) which is honoured per row.
//
// # Encoding
//
// The rebuilder always writes PNG "Up" rows compressed with Flate:
//
//	predicted, err := filters.EncodePNGUp(rows, width)
//	payload, err := filters.FlateEncode(predicted, zlib.BestCompression)
package filters
