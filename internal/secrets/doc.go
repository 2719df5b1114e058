// Package secrets provides the symmetric cipher and key files for rolodex.
//
// # Encryption
//
// Contact data is sealed with NaCl secretbox (XSalsa20-Poly1305) under a
// 32-byte key. A random 24-byte nonce is prepended to the ciphertext, so
// re-encrypting the same data produces different output.
//
// Decryption fails closed: a wrong key, any modified byte or a truncated
// file yields errors.ErrAuthentication and no plaintext.
//
// # Key Files
//
// Keys live in a TOML key file (mode 0600), by default
// $XDG_CONFIG_HOME/rolodex/key.toml, of one of two kinds:
//
//   - random: the file holds the base64 key itself
//   - passphrase: the file holds a scrypt salt; the key is derived from a
//     passphrase read from the terminal every time it is needed
//
// Losing the key file (or the passphrase) makes the contact file
// unrecoverable. Backups are sealed with the same key.
package secrets
