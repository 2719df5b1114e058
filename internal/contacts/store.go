package contacts

import (
	"fmt"
	"slices"
	"time"

	kerrors "github.com/PolarWolf314/rolodex/internal/errors"
)

// Store is an in-memory ordered collection of contacts with O(1) lookup by id.
type Store struct {
	index    map[ID]int
	contacts []Contact
	nextID   ID
	now      func() time.Time
}

// NewStore returns an empty store whose first id is 1.
func NewStore() *Store {
	return &Store{
		index:  make(map[ID]int),
		nextID: 1,
		now:    time.Now,
	}
}

// Restore rebuilds a store from decoded records, keeping their ids and
// timestamps. nextID is a hint; the store never hands out an id at or
// below the largest restored one. Duplicate ids, zero ids and empty names
// are reported as corrupt data.
func Restore(records []Contact, nextID ID) (*Store, error) {
	s := NewStore()
	for i, c := range records {
		if c.ID == 0 {
			return nil, fmt.Errorf("%w: record %d has no id", kerrors.ErrCorruptData, i+1)
		}
		if _, exists := s.index[c.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate contact id %d", kerrors.ErrCorruptData, c.ID)
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", kerrors.ErrCorruptData, i+1, err)
		}
		s.index[c.ID] = len(s.contacts)
		s.contacts = append(s.contacts, c)
		if c.ID >= s.nextID {
			s.nextID = c.ID + 1
		}
	}
	if nextID > s.nextID {
		s.nextID = nextID
	}
	return s, nil
}

// SetClock replaces the time source used for created/updated timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}

// Add validates c, assigns it the next id and fresh timestamps, and appends
// it to the store. Any id or timestamps on c are ignored.
func (s *Store) Add(c Contact) (ID, error) {
	c = c.normalize()
	if err := c.Validate(); err != nil {
		return 0, err
	}

	ts := s.timestamp()
	c.ID = s.nextID
	c.CreatedAt = ts
	c.UpdatedAt = ts

	s.nextID++
	s.index[c.ID] = len(s.contacts)
	s.contacts = append(s.contacts, c)
	return c.ID, nil
}

// Get returns a copy of the contact with the given id.
func (s *Store) Get(id ID) (Contact, error) {
	i, ok := s.index[id]
	if !ok {
		return Contact{}, fmt.Errorf("contact %d: %w", id, kerrors.ErrNotFound)
	}
	return s.contacts[i], nil
}

// Update applies the patch to the contact with the given id and refreshes
// its updated timestamp. The stored contact is unchanged if the patched
// record fails validation.
func (s *Store) Update(id ID, f Fields) (Contact, error) {
	i, ok := s.index[id]
	if !ok {
		return Contact{}, fmt.Errorf("contact %d: %w", id, kerrors.ErrNotFound)
	}

	updated := f.apply(s.contacts[i]).normalize()
	if err := updated.Validate(); err != nil {
		return Contact{}, err
	}
	updated.UpdatedAt = s.timestamp()

	s.contacts[i] = updated
	return updated, nil
}

// Delete removes the contact with the given id.
func (s *Store) Delete(id ID) error {
	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("contact %d: %w", id, kerrors.ErrNotFound)
	}

	delete(s.index, id)
	s.contacts = slices.Delete(s.contacts, i, i+1)
	for j := i; j < len(s.contacts); j++ {
		s.index[s.contacts[j].ID] = j
	}
	return nil
}

// List returns every contact in insertion order.
func (s *Store) List() []Contact {
	return slices.Clone(s.contacts)
}

// Len returns the number of contacts.
func (s *Store) Len() int {
	return len(s.contacts)
}

// NextID returns the id the next Add will assign.
func (s *Store) NextID() ID {
	return s.nextID
}

// Filter returns the contacts for which keep returns true, in insertion order.
func (s *Store) Filter(keep func(Contact) bool) []Contact {
	var out []Contact
	for _, c := range s.contacts {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// Equal reports whether both stores hold the same contacts in the same order.
func (s *Store) Equal(o *Store) bool {
	if len(s.contacts) != len(o.contacts) {
		return false
	}
	for i := range s.contacts {
		if !s.contacts[i].Equal(o.contacts[i]) {
			return false
		}
	}
	return true
}
