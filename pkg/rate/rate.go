// Package rate defines the immutable instrument-quote record consumed by
// the graph engine.
package rate

import (
	"fmt"
	"strings"
)

// Rate is a single bid/ask quote for a currency pair instrument named
// "A_B", where A and B are short currency codes separated by one
// underscore. Well-formed input has Bid <= Ask, but callers downstream of
// Split must not assume it.
type Rate struct {
	Instrument string
	Bid        float64
	Ask        float64
}

// Split parses the instrument name into its two currency tokens. It
// returns an error if the name does not split into exactly two non-empty
// tokens around a single underscore.
func (r Rate) Split() (base, quote string, err error) {
	return Split(r.Instrument)
}

// Split parses an "A_B" instrument string into its two currency tokens.
func Split(instrument string) (base, quote string, err error) {
	idx := strings.IndexByte(instrument, '_')
	if idx <= 0 || idx == len(instrument)-1 {
		return "", "", fmt.Errorf("rate: invalid instrument %q: %w", instrument, ErrInvalidInstrument)
	}
	base = instrument[:idx]
	quote = instrument[idx+1:]
	if strings.IndexByte(quote, '_') >= 0 {
		return "", "", fmt.Errorf("rate: invalid instrument %q: %w", instrument, ErrInvalidInstrument)
	}
	return base, quote, nil
}

// Validate checks that Bid and Ask are strictly positive and that the
// instrument name is well-formed.
func (r Rate) Validate() error {
	if _, _, err := r.Split(); err != nil {
		return err
	}
	if r.Bid <= 0 || r.Ask <= 0 {
		return fmt.Errorf("rate: instrument %q has non-positive bid/ask (bid=%v, ask=%v): %w",
			r.Instrument, r.Bid, r.Ask, ErrInvalidRate)
	}
	return nil
}

// String implements fmt.Stringer for log-friendly printing.
func (r Rate) String() string {
	return fmt.Sprintf("%s(bid=%.6f,ask=%.6f)", r.Instrument, r.Bid, r.Ask)
}
