// Package utils provides shared utility functions for the rolodex application.
//
// This package contains general-purpose helpers used across multiple packages.
// Functions are organized into logical groups:
//
// # Filesystem Utilities
//
// Functions for writing files safely:
//   - AtomicWriteFile: writes to a temp file and renames it over the target
//   - CopyFile: copies a file atomically, preserving nothing but content
//   - FileExists: reports whether a regular file exists
//   - FormatPaths: formats file paths for human-readable output
//
// # System Utilities
//
// Functions for interacting with the operating system:
//   - GetUsername: returns the current system username
//
// # String Utilities
//
// Functions for validation and formatting:
//   - IsValidEmail: checks an email address looks like local@domain.tld
//
// # I/O Utilities
//
// Functions for reading piped input:
//   - ReadInput: reads all piped data from a command's standard input
//
// # Terminal Utilities
//
// Functions for terminal detection and interaction:
//   - IsTerminal: checks if stdin is a terminal
//   - IsOutputTerminal: checks if stdout is a terminal
//   - ReadPassphrase: reads a passphrase without echo
package utils
