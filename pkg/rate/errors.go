package rate

import "errors"

// ErrInvalidInstrument is returned when an instrument name does not match
// the "A_B" form with two non-empty tokens.
var ErrInvalidInstrument = errors.New("invalid instrument")

// ErrInvalidRate is returned when bid or ask is non-positive.
var ErrInvalidRate = errors.New("invalid rate")
