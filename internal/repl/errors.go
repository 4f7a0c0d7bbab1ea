package repl

import "errors"

// ErrUnknownCommand is returned when a command line's first token does
// not match the command surface.
var ErrUnknownCommand = errors.New("repl: unknown command")

// ErrUnknownVariable is returned by getvar for a name outside the
// documented intermediate set.
var ErrUnknownVariable = errors.New("repl: unknown variable")

// ErrNoGraph is returned by commands that require a loaded graph
// (gsearch, getvar graph) before one has been built by gload.
var ErrNoGraph = errors.New("repl: no graph loaded")
