package filters

import (
	"bytes"
	"encoding/ascii85"
	"encoding/hex"

	"github.com/pkg/errors"

	"github.com/tsawler/xrefix/core"
)

// ASCIIHexDecode decodes ASCII hexadecimal encoded data.
// Whitespace is ignored, > marks end of data, and an odd final digit is
// treated as if followed by 0.
func ASCIIHexDecode(data []byte) ([]byte, error) {
	digits := make([]byte, 0, len(data))
	for _, c := range data {
		if c == '>' {
			break
		}
		if core.IsWhitespace(c) {
			continue
		}
		digits = append(digits, c)
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}

	out := make([]byte, hex.DecodedLen(len(digits)))
	if _, err := hex.Decode(out, digits); err != nil {
		return nil, errors.Wrap(core.ErrUnsupported, "ASCIIHexDecode: "+err.Error())
	}
	return out, nil
}

// ASCII85Decode decodes ASCII base-85 encoded data. An optional <~ prefix
// and the ~> end marker are honoured; 'z' expands to four zero bytes.
func ASCII85Decode(data []byte) ([]byte, error) {
	data = bytes.TrimLeftFunc(data, func(r rune) bool { return r < 0x80 && core.IsWhitespace(byte(r)) })
	data = bytes.TrimPrefix(data, []byte("<~"))
	if end := bytes.Index(data, []byte("~>")); end >= 0 {
		data = data[:end]
	}

	out := make([]byte, 4*len(data))
	n, _, err := ascii85.Decode(out, data, true)
	if err != nil {
		return nil, errors.Wrap(core.ErrUnsupported, "ASCII85Decode: "+err.Error())
	}
	return out[:n], nil
}
