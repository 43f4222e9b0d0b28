package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/xrefix/core"
	"github.com/tsawler/xrefix/internal/pdftest"
)

func TestScanSimpleDocument(t *testing.T) {
	b, x := pdftest.Simple()
	data := b.XRef(x).Bytes()

	res, err := Scan(data)
	require.NoError(t, err)

	require.Len(t, res.Objects, 3)
	assert.Equal(t, Object{Number: 1, Offset: b.Offset(1)}, res.Objects[0])
	assert.Equal(t, Object{Number: 2, Offset: b.Offset(2)}, res.Objects[1])
	assert.Equal(t, Object{Number: 3, Offset: b.Offset(3)}, res.Objects[2])
	assert.Equal(t, 3, res.MaxNumber())

	require.NotNil(t, res.XRef)
	assert.Equal(t, 3, res.XRef.Number)
	assert.Equal(t, b.Offset(3), res.XRef.Offset)
	assert.Equal(t, byte('<'), res.XRef.Dict[0])
	assert.Equal(t, ">>", string(res.XRef.Dict[len(res.XRef.Dict)-2:]))
	assert.Contains(t, string(res.XRef.Dict), "/Root 1 0 R")

	payload := pdftest.Deflate(pdftest.PredictUp(pdftest.Rows(x.Rows, x.W), 4))
	assert.Equal(t, payload, res.XRef.Stream)
}

func TestScanObjectNumbers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Object
	}{
		{
			name:  "multi-digit number",
			input: "%PDF-1.5\n123 0 obj\n(x)\nendobj\n",
			want:  []Object{{Number: 123, Offset: 9}},
		},
		{
			name:  "no whitespace after obj",
			input: "1 0 obj(x)endobj 2 0 obj (y) endobj",
			want:  []Object{{Number: 2, Offset: 17}},
		},
		{
			name:  "marker without number",
			input: "x 0 obj\n(x)\nendobj 4 0 obj\rnull endobj",
			want:  []Object{{Number: 4, Offset: 19}},
		},
		{
			name:  "non-zero generation is not an object",
			input: "5 1 obj\nnull\nendobj\n",
			want:  nil,
		},
		{
			name:  "body spans lines",
			input: "7 0 obj\n<<\n/A 1\n>>\nendobj",
			want:  []Object{{Number: 7, Offset: 0}},
		},
		{
			name:  "unterminated object",
			input: "8 0 obj\nnull\n",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []Object
			pos := 0
			data := []byte(tt.input)
			for {
				m, ok := nextObject(data, pos)
				if !ok {
					break
				}
				got = append(got, Object{Number: m.number, Offset: m.start})
				pos = m.end
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScanRejectsObjectAfterXRef(t *testing.T) {
	b, x := pdftest.Simple()
	b.XRef(x).Object(4, "<</Type/Annot>>")

	res, err := Scan(b.Bytes())
	assert.Nil(t, res)
	assert.ErrorIs(t, err, core.ErrStructural)
}

func TestScanRejectsDuplicateObject(t *testing.T) {
	b := pdftest.New("%PDF-1.5")
	b.Object(1, "<</Type/Catalog>>")
	b.Object(1, "<</Type/Catalog>>")
	b.XRef(pdftest.XRef{Number: 2, W: [3]int{1, 1, 1}, Dict: "/Root 1 0 R"})

	_, err := Scan(b.Bytes())
	assert.ErrorIs(t, err, core.ErrStructural)
}

func TestScanWithoutXRef(t *testing.T) {
	data := pdftest.New("%PDF-1.4").Object(1, "<</Type/Catalog>>").Bytes()

	_, err := Scan(data)
	assert.ErrorIs(t, err, core.ErrStructural)

	_, err = Scan(nil)
	assert.ErrorIs(t, err, core.ErrStructural)
}

func TestScanXRefWithoutStream(t *testing.T) {
	data := pdftest.New("%PDF-1.5").Object(1, "<</Type/XRef/W[1 1 1]/Root 1 0 R>>").Bytes()

	_, err := Scan(data)
	assert.ErrorIs(t, err, core.ErrStructural)
}

func TestScanMalformedXRefDictionary(t *testing.T) {
	data := pdftest.New("%PDF-1.5").Object(1, "<</Type/XRef/W[1 2 1>>\nstream\n\nendstream").Bytes()

	_, err := Scan(data)
	assert.ErrorIs(t, err, core.ErrMalformedDictionary)
}

func TestScanIgnoresOtherXRefMentions(t *testing.T) {
	b := pdftest.New("%PDF-1.5")
	b.Object(1, "<</Type/Catalog/Note/XRef>>")
	b.Object(2, "[/XRef]")
	b.XRef(pdftest.XRef{Number: 3, W: [3]int{1, 1, 1}, Dict: "/Root 1 0 R"})

	res, err := Scan(b.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 3, res.XRef.Number)
	assert.Len(t, res.Objects, 3)
}

func TestStreamPayloadBounds(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "length lands on endstream",
			body: "<</Type/XRef/Length 5>>\nstream\nab\ncd\nendstream",
			want: "ab\ncd",
		},
		{
			name: "length too short falls back to last endstream",
			body: "<</Type/XRef/Length 2>>\nstream\nab\ncd\nendstream",
			want: "ab\ncd",
		},
		{
			name: "indirect length",
			body: "<</Type/XRef/Length 9 0 R>>\r\nstream\r\nabcd\r\nendstream",
			want: "abcd",
		},
		{
			name: "payload contains endstream text",
			body: "<</Type/XRef/Length 13>>\nstream\nxxendstreamyy\nendstream",
			want: "xxendstreamyy",
		},
		{
			name: "lone carriage returns",
			body: "<</Type/XRef>>stream\rabcd\rendstream",
			want: "abcd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := pdftest.New("").Object(1, tt.body).Bytes()
			res, err := Scan(data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(res.XRef.Stream))
		})
	}
}

func TestMaxNumberEmpty(t *testing.T) {
	assert.Equal(t, -1, (&Result{}).MaxNumber())
}
