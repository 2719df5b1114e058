package codec

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/PolarWolf314/rolodex/internal/contacts"
	kerrors "github.com/PolarWolf314/rolodex/internal/errors"
)

type gobCodec struct{}

func (gobCodec) Encode(store *contacts.Store) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(newDocument(store)); err != nil {
		return nil, fmt.Errorf("encoding gob: %w", err)
	}
	return buf.Bytes(), nil
}

func (gobCodec) Decode(data []byte) (*contacts.Store, error) {
	var doc document
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: gob: %v", kerrors.ErrCorruptData, err)
	}
	return doc.store()
}
