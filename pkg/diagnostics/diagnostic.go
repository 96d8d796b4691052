package diagnostics

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Level represents the severity of a diagnostic message.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warning", "warn":
		return LevelWarning, nil
	case "error", "err":
		return LevelError, nil
	default:
		return LevelDebug, fmt.Errorf("unknown level: %s", s)
	}
}

// Diagnostic is a single finding about a site file, the registry or a copy.
type Diagnostic struct {
	Level   Level
	Check   string // schema, props, registry, assets...
	Source  string // file path or other context
	Message string
	Err     error
}

func (d Diagnostic) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] ", d.Level)
	if d.Source != "" {
		b.WriteString(d.Source)
		b.WriteString(": ")
	}
	b.WriteString(d.Message)
	if d.Err != nil {
		b.WriteString(": ")
		b.WriteString(d.Err.Error())
	}
	return b.String()
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}

// Sink receives diagnostics.
type Sink interface {
	Report(d Diagnostic)
	Diagnostics() []Diagnostic
	HasLevel(level Level) bool
	MaxLevel() Level
}

// Collector is the default thread-safe Sink.
type Collector struct {
	mu          sync.RWMutex
	diagnostics []Diagnostic
	minLevel    Level

	// OnReport is an optional callback for real-time streaming.
	OnReport func(Diagnostic)
}

type CollectorOption func(*Collector)

// WithMinLevel drops diagnostics below level.
func WithMinLevel(level Level) CollectorOption {
	return func(c *Collector) {
		c.minLevel = level
	}
}

// WithOnReport sets a callback called outside the lock for every kept diagnostic.
func WithOnReport(fn func(Diagnostic)) CollectorOption {
	return func(c *Collector) {
		c.OnReport = fn
	}
}

func NewCollector(opts ...CollectorOption) *Collector {
	c := &Collector{minLevel: LevelDebug}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Collector) Report(d Diagnostic) {
	if d.Level < c.minLevel {
		return
	}

	c.mu.Lock()
	c.diagnostics = append(c.diagnostics, d)
	callback := c.OnReport
	c.mu.Unlock()

	if callback != nil {
		callback(d)
	}
}

// Diagnostics returns a copy of everything collected.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.diagnostics)
}

// AtLevel returns diagnostics at or above level.
func (c *Collector) AtLevel(level Level) []Diagnostic {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []Diagnostic
	for _, d := range c.diagnostics {
		if d.Level >= level {
			out = append(out, d)
		}
	}
	return out
}

func (c *Collector) HasLevel(level Level) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, d := range c.diagnostics {
		if d.Level >= level {
			return true
		}
	}
	return false
}

// MaxLevel returns the highest level reported, or -1 if empty.
func (c *Collector) MaxLevel() Level {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.diagnostics) == 0 {
		return Level(-1)
	}
	highest := LevelDebug
	for _, d := range c.diagnostics {
		highest = max(highest, d.Level)
	}
	return highest
}

func (c *Collector) Clear() {
	c.mu.Lock()
	c.diagnostics = nil
	c.mu.Unlock()
}

func (c *Collector) countByLevel() map[Level]int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	counts := make(map[Level]int)
	for _, d := range c.diagnostics {
		counts[d.Level]++
	}
	return counts
}

// Summary returns e.g. "2 error(s), 1 warning(s)".
func (c *Collector) Summary() string {
	counts := c.countByLevel()
	if len(counts) == 0 {
		return "no diagnostics"
	}

	var parts []string
	for _, level := range []Level{LevelError, LevelWarning, LevelInfo, LevelDebug} {
		if n := counts[level]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s(s)", n, level))
		}
	}
	return strings.Join(parts, ", ")
}

type noopSink struct{}

func (noopSink) Report(Diagnostic)         {}
func (noopSink) Diagnostics() []Diagnostic { return nil }
func (noopSink) HasLevel(Level) bool       { return false }
func (noopSink) MaxLevel() Level           { return Level(-1) }

// NoopSink discards all diagnostics.
func NoopSink() Sink {
	return noopSink{}
}
