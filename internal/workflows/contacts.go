package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/rolodex/internal/audit"
	"github.com/PolarWolf314/rolodex/internal/contacts"
	kerrors "github.com/PolarWolf314/rolodex/internal/errors"
)

// Add stores a new contact and returns it with its assigned id.
//
// Returns ErrValidation if the name is empty or a field is malformed.
func (b *Book) Add(ctx context.Context, c contacts.Contact) (contacts.Contact, error) {
	var added contacts.Contact
	_, err := b.mutate(ctx, func(store *contacts.Store) error {
		id, err := store.Add(c)
		if err != nil {
			return err
		}
		added, err = store.Get(id)
		return err
	})
	if err != nil {
		return contacts.Contact{}, err
	}

	b.Logger.Infof("Added contact %d (%s)", added.ID, added.Name)
	b.Audit.Record(audit.Entry{
		Operation:   audit.OpAdd,
		ContactID:   uint64(added.ID),
		ContactName: added.Name,
	})
	return added, nil
}

// Get returns the contact with the given id.
//
// Returns ErrNotFound if no such contact exists.
func (b *Book) Get(ctx context.Context, id contacts.ID) (contacts.Contact, error) {
	store, err := b.load(ctx)
	if err != nil {
		return contacts.Contact{}, err
	}
	return store.Get(id)
}

// List returns every contact in insertion order.
func (b *Book) List(ctx context.Context) ([]contacts.Contact, error) {
	store, err := b.load(ctx)
	if err != nil {
		return nil, err
	}
	return store.List(), nil
}

// Search returns the contacts matching q in insertion order.
func (b *Book) Search(ctx context.Context, q contacts.Query) ([]contacts.Contact, error) {
	store, err := b.load(ctx)
	if err != nil {
		return nil, err
	}
	results := store.Search(q)
	b.Logger.Debugf("Search %q in %q matched %d contacts", q.Text, q.Field, len(results))
	return results, nil
}

// Update applies a patch to an existing contact and returns the result.
//
// Returns ErrNotFound if no such contact exists and ErrValidation if the
// patch is empty or would leave the contact invalid.
func (b *Book) Update(ctx context.Context, id contacts.ID, f contacts.Fields) (contacts.Contact, error) {
	if f.IsEmpty() {
		return contacts.Contact{}, fmt.Errorf("%w: nothing to update", kerrors.ErrValidation)
	}

	var updated contacts.Contact
	_, err := b.mutate(ctx, func(store *contacts.Store) error {
		var err error
		updated, err = store.Update(id, f)
		return err
	})
	if err != nil {
		return contacts.Contact{}, err
	}

	b.Logger.Infof("Updated contact %d (%s)", updated.ID, updated.Name)
	b.Audit.Record(audit.Entry{
		Operation:   audit.OpUpdate,
		ContactID:   uint64(updated.ID),
		ContactName: updated.Name,
	})
	return updated, nil
}

// Delete removes a contact and returns the removed record.
//
// Returns ErrNotFound if no such contact exists.
func (b *Book) Delete(ctx context.Context, id contacts.ID) (contacts.Contact, error) {
	var removed contacts.Contact
	_, err := b.mutate(ctx, func(store *contacts.Store) error {
		var err error
		if removed, err = store.Get(id); err != nil {
			return err
		}
		return store.Delete(id)
	})
	if err != nil {
		return contacts.Contact{}, err
	}

	b.Logger.Infof("Deleted contact %d (%s)", removed.ID, removed.Name)
	b.Audit.Record(audit.Entry{
		Operation:   audit.OpDelete,
		ContactID:   uint64(removed.ID),
		ContactName: removed.Name,
	})
	return removed, nil
}
