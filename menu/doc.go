// Package menu is the text front end of the record keeper.
//
// It drives the role loop (administrator or customer), collects and parses operator input,
// calls the command and query handlers, and renders their outcomes as text or JSON.
// Domain errors are rendered and the loop continues; only I/O failures end Run.
package menu
