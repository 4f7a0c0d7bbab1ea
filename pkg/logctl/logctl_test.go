package logctl

import (
	"bytes"
	"errors"
	"testing"
)

func TestSetSpecAndLevelFor(t *testing.T) {
	c := New(&bytes.Buffer{})
	if err := c.SetSpec("graph:pruner=i,repl.gsearch=t,=e"); err != nil {
		t.Fatalf("SetSpec: %v", err)
	}

	cases := []struct {
		scope string
		want  Level
	}{
		{"graph", Info},
		{"graph.reload", Info}, // inherits from "graph"
		{"pruner", Info},
		{"repl.gsearch", Trace},
		{"repl.gsearch.detail", Trace}, // inherits from "repl.gsearch"
		{"repl", Err},                  // falls back to root override
		{"unconfigured", Err},          // falls back to root override
	}
	for _, tc := range cases {
		if got := c.levelFor(tc.scope); got != tc.want {
			t.Errorf("levelFor(%q) = %v, want %v", tc.scope, got, tc.want)
		}
	}
}

// TestLevelForMaxOverAncestors covers the case a nearest-ancestor walk
// gets wrong: a verbose root must still win over a quieter descendant
// override for any scope that override doesn't directly cover.
func TestLevelForMaxOverAncestors(t *testing.T) {
	c := New(&bytes.Buffer{})
	if err := c.SetSpec("=t,graph=e"); err != nil {
		t.Fatalf("SetSpec: %v", err)
	}

	if got := c.levelFor("graph.reload"); got != Trace {
		t.Fatalf("levelFor(graph.reload) = %v, want %v (root's Trace must win over graph's Err)", got, Trace)
	}
	if got := c.levelFor("graph"); got != Trace {
		t.Fatalf("levelFor(graph) = %v, want %v (root's Trace dominates graph's own Err override)", got, Trace)
	}
	if got := c.levelFor("unrelated"); got != Trace {
		t.Fatalf("levelFor(unrelated) = %v, want %v (root level)", got, Trace)
	}
}

func TestLevelForDefaultsWithNoSpec(t *testing.T) {
	c := New(&bytes.Buffer{})
	if got := c.levelFor("anything.at.all"); got != DefaultLevel {
		t.Fatalf("levelFor = %v, want %v", got, DefaultLevel)
	}
}

func TestSetSpecInvalid(t *testing.T) {
	c := New(&bytes.Buffer{})
	if err := c.SetSpec("graph=zz"); !errors.Is(err, ErrInvalidLevel) {
		t.Fatalf("SetSpec: got %v, want ErrInvalidLevel", err)
	}
	if err := c.SetSpec("graph=i=t"); !errors.Is(err, ErrInvalidSpec) {
		t.Fatalf("SetSpec: got %v, want ErrInvalidSpec", err)
	}
}

func TestSetSpecEmptyIsNoop(t *testing.T) {
	c := New(&bytes.Buffer{})
	if err := c.SetSpec("  "); err != nil {
		t.Fatalf("SetSpec(empty): %v", err)
	}
	if got := c.levelFor(""); got != DefaultLevel {
		t.Fatalf("levelFor(root) = %v, want unchanged default %v", got, DefaultLevel)
	}
}

func TestAcquireReleaseSetOutput(t *testing.T) {
	c := New(&bytes.Buffer{})

	sink, err := c.Acquire()
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	if _, err := c.Acquire(); !errors.Is(err, ErrSinkBusy) {
		t.Fatalf("second Acquire: got %v, want ErrSinkBusy", err)
	}

	var next bytes.Buffer
	if err := c.SetOutput(&next); !errors.Is(err, ErrSinkBusy) {
		t.Fatalf("SetOutput while held: got %v, want ErrSinkBusy", err)
	}

	sink.Release()
	sink.Release() // second Release must be a no-op, not a panic or double-unlock

	if err := c.SetOutput(&next); err != nil {
		t.Fatalf("SetOutput after release: %v", err)
	}

	sink2, err := c.Acquire()
	if err != nil {
		t.Fatalf("Acquire after release: %v", err)
	}
	if sink2.Writer() != &next {
		t.Fatalf("Sink.Writer() = %v, want the reconfigured output", sink2.Writer())
	}
	sink2.Release()
}

func TestScopedTagsScope(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf)
	logger := c.Scoped("graph.reload")
	if logger.GetLevel() != Warn.zerolog() {
		t.Fatalf("Scoped level = %v, want %v", logger.GetLevel(), Warn.zerolog())
	}
	logger.Warn().Msg("probe")
	if !bytes.Contains(buf.Bytes(), []byte(`"scope":"graph.reload"`)) {
		t.Fatalf("Scoped output = %q, want a scope field of graph.reload", buf.String())
	}
}
