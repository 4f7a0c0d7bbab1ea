package logctl

import "errors"

// ErrSinkBusy is returned by SetOutput when a Sink token acquired via
// Controller.Acquire has not yet been released.
var ErrSinkBusy = errors.New("logctl: sink busy")

// ErrInvalidSpec is returned by SetSpec when the debug-spec grammar is
// malformed.
var ErrInvalidSpec = errors.New("logctl: invalid spec")

// ErrInvalidLevel is returned when a level character outside {x,e,w,i,t}
// is used in a debug spec.
var ErrInvalidLevel = errors.New("logctl: invalid level")
