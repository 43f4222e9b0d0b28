package scan

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/tdewolff/parse/v2/strconv"

	"github.com/tsawler/xrefix/core"
)

var (
	objMarker       = []byte(" 0 obj")
	endobjMarker    = []byte("endobj")
	streamMarker    = []byte("stream")
	endstreamMarker = []byte("endstream")
	xrefName        = []byte("/XRef")
)

// Object is one top-level indirect object found by the scanner
type Object struct {
	Number int
	Offset int
}

// XRefObject is the cross-reference stream object. Dict holds the raw
// dictionary text including "<<" and ">>", Stream the undecoded payload.
type XRefObject struct {
	Number int
	Offset int
	Dict   []byte
	Stream []byte
}

// Result holds the objects found by Scan, in file order
type Result struct {
	Objects []Object
	XRef    *XRefObject
}

// MaxNumber returns the highest scanned object number, or -1 when no object
// was found.
func (r *Result) MaxNumber() int {
	max := -1
	for _, obj := range r.Objects {
		if obj.Number > max {
			max = obj.Number
		}
	}
	return max
}

// Scan finds every "<n> 0 obj ... endobj" in data and the single XRef stream
// object among them, which must be the last object in the buffer.
func Scan(data []byte) (*Result, error) {
	res := &Result{}
	seen := make(map[int]bool)

	pos := 0
	for pos < len(data) {
		m, ok := nextObject(data, pos)
		if !ok {
			break
		}
		pos = m.end

		if res.XRef != nil {
			return nil, errors.Wrapf(core.ErrStructural,
				"object %d at offset %d follows xref stream object %d", m.number, m.start, res.XRef.Number)
		}
		if seen[m.number] {
			return nil, errors.Wrapf(core.ErrStructural, "object %d defined twice (second at offset %d)", m.number, m.start)
		}
		seen[m.number] = true
		res.Objects = append(res.Objects, Object{Number: m.number, Offset: m.start})

		xref, err := xrefObject(data, m)
		if err != nil {
			return nil, err
		}
		res.XRef = xref
	}

	if res.XRef == nil {
		return nil, errors.Wrap(core.ErrStructural, "no xref stream object found")
	}
	return res, nil
}

// match is one object marker and its extent: start is the first digit of
// the object number, body the first byte after "obj" and its whitespace
// byte, endobj the offset of "endobj" and end the offset just past it.
type match struct {
	number int
	start  int
	body   int
	endobj int
	end    int
}

// nextObject finds the leftmost object at or after pos. The object number is
// the longest run of digits immediately before " 0 obj" that does not reach
// back past pos, and "obj" must be followed by whitespace.
func nextObject(data []byte, pos int) (match, bool) {
	from := pos
	for {
		i := bytes.Index(data[from:], objMarker)
		if i < 0 {
			return match{}, false
		}
		k := from + i
		from = k + 1

		start := k
		for start > pos && isDigit(data[start-1]) {
			start--
		}
		if start == k {
			continue
		}
		after := k + len(objMarker)
		if after >= len(data) || !core.IsWhitespace(data[after]) {
			continue
		}

		body := after + 1
		e := bytes.Index(data[body:], endobjMarker)
		if e < 0 {
			return match{}, false
		}

		num, n := strconv.ParseUint(data[start:k])
		if n != k-start || num > uint64(maxObjectNumber) {
			continue
		}
		return match{
			number: int(num),
			start:  start,
			body:   body,
			endobj: body + e,
			end:    body + e + len(endobjMarker),
		}, true
	}
}

const maxObjectNumber = 1<<31 - 1

// xrefObject returns the object's dictionary and stream when it is tagged
// /Type /XRef, and nil otherwise.
func xrefObject(data []byte, m match) (*XRefObject, error) {
	body := data[m.body:m.endobj]
	if !bytes.Contains(body, xrefName) {
		return nil, nil
	}
	i := skipWhitespace(data, m.body)
	if !bytes.HasPrefix(data[i:m.endobj], []byte("<<")) {
		return nil, nil
	}

	p := core.NewParserAt(data[:m.endobj], i)
	dict, layout, err := p.ParseDict()
	if err != nil {
		return nil, errors.Wrapf(core.ErrMalformedDictionary, "object %d: %v", m.number, err)
	}
	if t, ok := dict.GetName("Type"); !ok || t != "XRef" {
		return nil, nil
	}

	stream, err := streamPayload(data, m, layout.End, dict)
	if err != nil {
		return nil, err
	}
	return &XRefObject{
		Number: m.number,
		Offset: m.start,
		Dict:   data[layout.Start:layout.End],
		Stream: stream,
	}, nil
}

// streamPayload locates the bytes between "stream" and "endstream". A direct
// /Length is used when it ends on "endstream"; otherwise the payload runs to
// the last "endstream" in the object, less one end-of-line.
func streamPayload(data []byte, m match, dictEnd int, dict core.Dict) ([]byte, error) {
	i := skipWhitespace(data, dictEnd)
	if !bytes.HasPrefix(data[i:m.endobj], streamMarker) {
		return nil, errors.Wrapf(core.ErrStructural, "xref object %d has no stream", m.number)
	}
	start := i + len(streamMarker)
	switch {
	case bytes.HasPrefix(data[start:], []byte("\r\n")):
		start += 2
	case start < len(data) && (data[start] == '\n' || data[start] == '\r'):
		start++
	}

	if length, ok := dict.GetInt("Length"); ok && length >= 0 {
		end := start + int(length)
		if end <= m.endobj && bytes.HasPrefix(data[skipWhitespace(data, end):m.endobj], endstreamMarker) {
			return data[start:end], nil
		}
	}

	e := bytes.LastIndex(data[start:m.endobj], endstreamMarker)
	if e < 0 {
		return nil, errors.Wrapf(core.ErrStructural, "xref object %d: stream has no endstream", m.number)
	}
	end := start + e
	switch {
	case end-2 >= start && data[end-2] == '\r' && data[end-1] == '\n':
		end -= 2
	case end-1 >= start && (data[end-1] == '\n' || data[end-1] == '\r'):
		end--
	}
	return data[start:end], nil
}

func skipWhitespace(data []byte, i int) int {
	for i < len(data) && core.IsWhitespace(data[i]) {
		i++
	}
	return i
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
