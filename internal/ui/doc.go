// Package ui provides semantic text formatting for CLI output.
//
// This package defines formatters for different types of content (commands,
// paths, contact names, errors) that render appropriately based on terminal
// capabilities. When colors are available, content is colorized. When
// NO_COLOR is set or the terminal doesn't support colors, text-based
// decorations (backticks, quotes) are used instead.
//
// # Semantic Formatters
//
//	ui.Code.Sprint("rolodex contacts add")   // Commands
//	ui.Path.Sprint("contacts.rolodex")       // File paths
//	ui.Success.Sprint("✓")                   // Success indicators
//	ui.Error.Sprint("✗")                     // Error indicators
//	ui.Warning.Sprint("⚠")                   // Warnings
//	ui.Info.Sprint("→")                      // Hints and menu numbers
//	ui.Highlight.Sprint("Ann Lee")           // User values
//	ui.Label.Sprint("Phone:")                // Field labels
//	ui.Muted.Sprint("none")                  // De-emphasized text
//
// Table renders aligned columns for contact listings.
package ui
