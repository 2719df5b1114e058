// Package codec serializes a contact store to bytes and back.
//
// Three formats are supported, forming a closed set:
//
//   - json: structured text, an envelope object with a version, the next id
//     and the contact records
//   - csv: tabular text with a fixed header row, one contact per row
//   - gob: binary object encoding of the same envelope as json
//
// Each format is registered in a dispatch table keyed by Format. Every
// codec satisfies the round-trip law: decoding the output of Encode yields a
// store equal to the original, field for field.
//
// Empty input decodes to an empty store for every format. Malformed input
// fails with errors.ErrCorruptData; unknown tags fail with
// errors.ErrUnsupportedFormat.
package codec
