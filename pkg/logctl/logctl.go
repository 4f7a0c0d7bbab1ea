// Package logctl implements the engine's scoped, leveled logging
// facility: a small tree of named scopes, each resolving its effective
// level as the maximum configured level along its root-to-scope path,
// backed by github.com/rs/zerolog for the actual structured output.
package logctl

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Level is one of the engine's five logging severities, ordered from
// least to most verbose.
type Level int

const (
	Silent Level = iota
	Err
	Warn
	Info
	Trace
)

// DefaultLevel is the level new Controllers resolve to for any scope
// with no configured ancestor.
const DefaultLevel = Warn

func (l Level) zerolog() zerolog.Level {
	switch l {
	case Silent:
		return zerolog.Disabled
	case Err:
		return zerolog.ErrorLevel
	case Warn:
		return zerolog.WarnLevel
	case Info:
		return zerolog.InfoLevel
	case Trace:
		return zerolog.TraceLevel
	default:
		return zerolog.WarnLevel
	}
}

func parseLevelChar(c byte) (Level, error) {
	switch c {
	case 'x':
		return Silent, nil
	case 'e':
		return Err, nil
	case 'w':
		return Warn, nil
	case 'i':
		return Info, nil
	case 't':
		return Trace, nil
	default:
		return 0, fmt.Errorf("logctl: level %q: %w", string(c), ErrInvalidLevel)
	}
}

// Controller owns the scope-level map and the current output sink. Scope
// names are dot-joined paths ("graph.reload"); the root scope is "".
type Controller struct {
	mu     sync.Mutex
	out    io.Writer
	levels map[string]Level
	busy   bool
}

// New returns a Controller writing to out, with every scope defaulting
// to DefaultLevel until configured otherwise.
func New(out io.Writer) *Controller {
	return &Controller{
		out:    out,
		levels: map[string]Level{"": DefaultLevel},
	}
}

// SetLevel configures the level for scope. Everything beneath scope
// resolves to at least this level, since a scope's effective level is the
// maximum configured along its root-to-scope path.
func (c *Controller) SetLevel(scope string, lvl Level) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.levels[scope] = lvl
}

// SetSpec parses the REPL/CLI "setd" grammar: comma-separated clauses of
// the form "scope1:scope2=LVL", where LVL is one of x,e,w,i,t. Each
// scope named in a clause is set to that clause's level. An empty scope
// name before "=" addresses the root scope.
func (c *Controller) SetSpec(spec string) error {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil
	}
	for _, clause := range strings.Split(spec, ",") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		parts := strings.SplitN(clause, "=", 2)
		if len(parts) != 2 || strings.Contains(parts[1], "=") {
			return fmt.Errorf("logctl: clause %q: %w", clause, ErrInvalidSpec)
		}
		if len(parts[1]) != 1 {
			return fmt.Errorf("logctl: level %q: %w", parts[1], ErrInvalidLevel)
		}
		lvl, err := parseLevelChar(parts[1][0])
		if err != nil {
			return err
		}
		for _, scope := range strings.Split(parts[0], ":") {
			c.SetLevel(scope, lvl)
		}
	}
	return nil
}

// levelFor resolves scope's effective level as the maximum configured
// level along the root-to-scope path, not merely the nearest configured
// ancestor: a verbose root with a quieter sub-scope override still lets
// an uncovered grandchild through at the root's level. Mirrors d.cc's
// D_get, which folds std::max over the path from the root down,
// saturating (returning early) once Trace is reached.
func (c *Controller) levelFor(scope string) Level {
	c.mu.Lock()
	defer c.mu.Unlock()

	lvl := DefaultLevel
	if v, ok := c.levels[""]; ok {
		lvl = v
	}
	if scope == "" || lvl == Trace {
		return lvl
	}

	prefix := ""
	for _, seg := range strings.Split(scope, ".") {
		if prefix == "" {
			prefix = seg
		} else {
			prefix += "." + seg
		}
		if v, ok := c.levels[prefix]; ok && v > lvl {
			lvl = v
			if lvl == Trace {
				return lvl
			}
		}
	}
	return lvl
}

// Scoped returns a zerolog.Logger for name, pre-filtered to its resolved
// level and tagged with a "scope" field.
func (c *Controller) Scoped(name string) zerolog.Logger {
	c.mu.Lock()
	out := c.out
	c.mu.Unlock()

	lvl := c.levelFor(name)
	return zerolog.New(out).Level(lvl.zerolog()).With().Str("scope", name).Timestamp().Logger()
}

// Sink is a token pinning the controller's current output writer for
// the duration of some operation that must not see it change underfoot
// (the "delay" mechanism: evaluate current_sink() once, reuse it).
type Sink struct {
	c      *Controller
	writer io.Writer
	once   sync.Once
}

// Writer returns the pinned writer.
func (s *Sink) Writer() io.Writer {
	return s.writer
}

// Release frees the sink, allowing SetOutput to reconfigure the
// controller again. Calling Release more than once is a no-op.
func (s *Sink) Release() {
	s.once.Do(func() {
		s.c.mu.Lock()
		s.c.busy = false
		s.c.mu.Unlock()
	})
}

// Acquire pins the controller's current output writer and returns a
// token for it. Only one Sink may be outstanding at a time; Acquire
// fails with ErrSinkBusy if one already is.
func (c *Controller) Acquire() (*Sink, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return nil, ErrSinkBusy
	}
	c.busy = true
	return &Sink{c: c, writer: c.out}, nil
}

// SetOutput reconfigures the controller's output writer. It fails with
// ErrSinkBusy while a Sink token remains outstanding.
func (c *Controller) SetOutput(w io.Writer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return ErrSinkBusy
	}
	c.out = w
	return nil
}
