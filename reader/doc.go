// Package reader loads the input document.
//
// Use [Open] to read a file through a memory mapping, or [Load] for bytes
// already in memory:
//
//	r, err := reader.Open("document.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	if v, ok := r.Version(); ok {
//	    fmt.Println("PDF", v)
//	}
//
// The %PDF-x.y header is optional; documents without one load normally and
// report ok == false from Version.
package reader
