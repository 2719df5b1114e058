// Package logger provides leveled logging for rolodex commands.
//
// A Logger is an explicitly constructed value. Commands build one in their
// PersistentPreRun from the --verbose and --debug flags and pass it to the
// workflows and the interactive shell; nothing in the application reads a
// package-level logger.
//
// # Verbosity Levels
//
//   - --verbose: Shows info messages
//   - --debug: Shows info and debug messages
//
// Warnings and errors are always shown.
//
// # Activity Log
//
// When File is set, every info, warning and error line is also appended to
// it with a timestamp, regardless of console verbosity:
//
//	2024-03-01 12:00:00 - INFO - Added contact 1 (Ann Lee)
//
// Debug lines reach the file only with --debug.
//
// # Usage
//
//	f, err := logger.OpenFile(path)
//	log := logger.Logger{Verbose: verbose, Debug: debug, File: f}
//	defer f.Close()
//	log.Infof("Loaded %d contacts", n)
package logger
