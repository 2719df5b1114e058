package codec

import (
	"fmt"

	"github.com/PolarWolf314/rolodex/internal/contacts"
	kerrors "github.com/PolarWolf314/rolodex/internal/errors"
)

// documentVersion is bumped whenever the envelope layout changes.
const documentVersion = 1

// document is the envelope shared by the json and gob formats.
type document struct {
	Version  int                `json:"version"`
	NextID   contacts.ID        `json:"next_id"`
	Contacts []contacts.Contact `json:"contacts"`
}

func newDocument(store *contacts.Store) document {
	return document{
		Version:  documentVersion,
		NextID:   store.NextID(),
		Contacts: store.List(),
	}
}

func (d document) store() (*contacts.Store, error) {
	if d.Version != documentVersion {
		return nil, fmt.Errorf("%w: unknown document version %d", kerrors.ErrCorruptData, d.Version)
	}
	return contacts.Restore(d.Contacts, d.NextID)
}
