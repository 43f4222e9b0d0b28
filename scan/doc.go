// Package scan locates the top-level indirect objects of a PDF buffer.
//
// The scan is textual: every "<n> 0 obj" marker followed by whitespace opens
// an object that ends at the next "endobj". Nothing in between is parsed
// except the dictionary of an object mentioning /XRef, which identifies the
// cross-reference stream:
//
//	res, err := scan.Scan(data)
//	if err != nil {
//	    return err
//	}
//	for _, obj := range res.Objects {
//	    fmt.Println(obj.Number, obj.Offset)
//	}
//
// The cross-reference stream must be the last object in the buffer and no
// object number may appear twice; both are reported as core.ErrStructural.
package scan
