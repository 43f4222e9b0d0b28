// Package writer assembles the rewritten document.
//
// The original bytes are cut where the old cross-reference stream object
// began and the new object is appended in its place:
//
//	<prefix><n> 0 obj\r<<...>>stream\r\n<data>\r\nendstream\rendobj\rstartxref\r\n<len(prefix)>\r\n%%EOF\r\n
//
// Build never modifies its input; WriteFile is the only function that
// touches the file system.
package writer
