package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/rolodex/internal/contacts"
	kerrors "github.com/PolarWolf314/rolodex/internal/errors"
)

type jsonCodec struct{}

func (jsonCodec) Encode(store *contacts.Store) ([]byte, error) {
	doc := newDocument(store)
	if doc.Contacts == nil {
		doc.Contacts = []contacts.Contact{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding json: %w", err)
	}
	return append(data, '\n'), nil
}

func (jsonCodec) Decode(data []byte) (*contacts.Store, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: json: %v", kerrors.ErrCorruptData, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: json: trailing data after document", kerrors.ErrCorruptData)
	}
	return doc.store()
}
