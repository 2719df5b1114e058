// Package shell implements the interactive contact book menu.
//
// The menu is a finite state machine. Machine.Step consumes one line of
// input and returns the text to show next, so every transition can be
// tested without a console. Run drives a Machine from a reader until the
// user exits or the input ends.
//
// Errors from the workflows are reported in the output and the machine
// returns to the main menu; they never end the session.
package shell
