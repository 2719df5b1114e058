// Package contacts holds the contact record and the in-memory store.
//
// A Store is an ordered collection of Contacts keyed by ID. Listing and
// search results follow insertion order. The Store owns its records:
// every accessor returns copies, so callers can never mutate stored
// contacts except through Update.
//
// IDs are positive integers assigned from a counter that only moves
// forward, so an ID is never reused within the lifetime of a Store.
//
// # Usage
//
//	store := contacts.NewStore()
//	id, err := store.Add(contacts.Contact{Name: "Ann Lee", Phone: "555-1234"})
//	c, err := store.Update(id, contacts.Fields{Phone: contacts.StringField("555-9999")})
//	matches := store.Search(contacts.Query{Text: "lee"})
package contacts
