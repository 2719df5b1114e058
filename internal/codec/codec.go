package codec

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/rolodex/internal/contacts"
	kerrors "github.com/PolarWolf314/rolodex/internal/errors"
)

// Format tags a serialization format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatGob  Format = "gob"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatCSV, FormatGob}

// Codec encodes and decodes a store in one format.
type Codec interface {
	Encode(store *contacts.Store) ([]byte, error)
	Decode(data []byte) (*contacts.Store, error)
}

var registry = map[Format]Codec{
	FormatJSON: jsonCodec{},
	FormatCSV:  csvCodec{},
	FormatGob:  gobCodec{},
}

// ParseFormat resolves a format tag case-insensitively.
func ParseFormat(tag string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(tag)))
	if _, ok := registry[f]; !ok {
		return "", fmt.Errorf("%w: %q (expected one of %s)", kerrors.ErrUnsupportedFormat, tag, formatList())
	}
	return f, nil
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: cannot infer format from %q", kerrors.ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}

// Lookup returns the codec registered for f.
func Lookup(f Format) (Codec, error) {
	c, ok := registry[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", kerrors.ErrUnsupportedFormat, string(f))
	}
	return c, nil
}

// Encode serializes the store in the given format.
func Encode(store *contacts.Store, f Format) ([]byte, error) {
	c, err := Lookup(f)
	if err != nil {
		return nil, err
	}
	return c.Encode(store)
}

// Decode parses data in the given format into a new store.
func Decode(data []byte, f Format) (*contacts.Store, error) {
	c, err := Lookup(f)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return contacts.NewStore(), nil
	}
	return c.Decode(data)
}

func formatList() string {
	tags := make([]string, len(Formats))
	for i, f := range Formats {
		tags[i] = string(f)
	}
	return strings.Join(tags, ", ")
}
