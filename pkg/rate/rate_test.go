package rate

import (
	"errors"
	"testing"
)

func TestSplit(t *testing.T) {
	cases := []struct {
		instrument string
		base       string
		quote      string
		wantErr    bool
	}{
		{"A_B", "A", "B", false},
		{"USD_EUR", "USD", "EUR", false},
		{"_B", "", "", true},
		{"A_", "", "", true},
		{"AB", "", "", true},
		{"A_B_C", "", "", true},
		{"", "", "", true},
	}

	for _, c := range cases {
		base, quote, err := Split(c.instrument)
		if c.wantErr {
			if err == nil {
				t.Errorf("Split(%q): expected error, got none", c.instrument)
			}
			if !errors.Is(err, ErrInvalidInstrument) {
				t.Errorf("Split(%q): expected ErrInvalidInstrument, got %v", c.instrument, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Split(%q): unexpected error %v", c.instrument, err)
		}
		if base != c.base || quote != c.quote {
			t.Errorf("Split(%q) = (%q, %q), want (%q, %q)", c.instrument, base, quote, c.base, c.quote)
		}
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		r       Rate
		wantErr error
	}{
		{"well-formed", Rate{Instrument: "A_B", Bid: 1.0, Ask: 1.1}, nil},
		{"zero bid", Rate{Instrument: "A_B", Bid: 0, Ask: 1.1}, ErrInvalidRate},
		{"negative ask", Rate{Instrument: "A_B", Bid: 1.0, Ask: -1.0}, ErrInvalidRate},
		{"bad instrument", Rate{Instrument: "AB", Bid: 1.0, Ask: 1.1}, ErrInvalidInstrument},
	}

	for _, c := range cases {
		err := c.r.Validate()
		if c.wantErr == nil {
			if err != nil {
				t.Errorf("%s: unexpected error %v", c.name, err)
			}
			continue
		}
		if !errors.Is(err, c.wantErr) {
			t.Errorf("%s: got %v, want %v", c.name, err, c.wantErr)
		}
	}
}

func TestRateString(t *testing.T) {
	r := Rate{Instrument: "A_B", Bid: 1.5, Ask: 1.6}
	got := r.String()
	if got == "" {
		t.Fatal("String() returned empty string")
	}
}
