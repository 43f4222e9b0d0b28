package filters

import (
	"github.com/pkg/errors"

	"github.com/tsawler/xrefix/core"
)

// Decode applies the named filters in order, as listed in a stream's /Filter
// entry. Abbreviated names are accepted. Prediction is not applied here; see
// Unpredict.
func Decode(data []byte, names []string) ([]byte, error) {
	for i, name := range names {
		var err error
		switch name {
		case "FlateDecode", "Fl":
			data, err = FlateDecode(data)
		case "ASCIIHexDecode", "AHx":
			data, err = ASCIIHexDecode(data)
		case "ASCII85Decode", "A85":
			data, err = ASCII85Decode(data)
		default:
			return nil, errors.Wrapf(core.ErrUnsupported, "filter %d: %s", i, name)
		}
		if err != nil {
			return nil, errors.WithMessagef(err, "filter %d (%s)", i, name)
		}
	}
	return data, nil
}
