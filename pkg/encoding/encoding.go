// Package encoding converts legacy-encoded text, such as bounds files saved
// by older authoring tools, to UTF-8.
package encoding

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// ErrUnknownEncoding is returned for a name Decode does not recognize.
var ErrUnknownEncoding = errors.New("unknown text encoding")

// Decode converts data from the named encoding to UTF-8. Names follow the
// WHATWG encoding labels ("euc-kr", "shift_jis", "utf-16le", ...). An empty
// name or "utf-8" returns data unchanged.
func Decode(data []byte, name string) ([]byte, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "utf-8" || name == "utf8" {
		return data, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return out, nil
}
