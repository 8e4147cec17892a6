// Package codec centralizes report encoding.
//
// Reports written by earlier versions stay readable with either codec: both
// produce and accept plain JSON.
package codec

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCodec is returned by ByName for names outside Names().
var ErrUnknownCodec = errors.New("codec: unknown codec")

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// builtin lists the selectable codecs, preferred first.
var builtin = []Codec{GoJSON{}, JSON{}}

// Names returns the selectable codec names, preferred first.
func Names() []string {
	names := make([]string, len(builtin))
	for i, c := range builtin {
		names[i] = c.Name()
	}
	return names
}

// ByName returns the codec registered under name.
func ByName(name string) (Codec, error) {
	for _, c := range builtin {
		if c.Name() == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w %q (want %s)", ErrUnknownCodec, name, strings.Join(Names(), " or "))
}
