// Package rangeexpr evaluates compact index and range expressions over a
// bounded list of positions.
//
// An expression such as "1-3,last" or "inv(2-4)" selects positions by
// 1-based number, by placeholder (first, second, third, last, last_1, last_2)
// or, when names are given, by name.
//
// # Basic Usage
//
// Expand a range with a known maximum:
//
//	positions := rangeexpr.Positions("2-4,last", 10)
//	// positions == []int{1, 2, 3, 9}
//
// # With Names
//
// Address the columns of a header row by name:
//
//	ev := rangeexpr.New(rangeexpr.WithNames(rangeexpr.Names{"id", "first_name", "score"}))
//	defer ev.Close()
//
//	result, err := ev.Range(`"first_name"-score`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Indices) // [1 2]
package rangeexpr

import (
	"fmt"

	"github.com/praetorian-inc/rangeexpr/pkg/engine"
	"github.com/praetorian-inc/rangeexpr/pkg/index"
	"github.com/praetorian-inc/rangeexpr/pkg/names"
	"github.com/praetorian-inc/rangeexpr/pkg/ranges"
	"github.com/praetorian-inc/rangeexpr/pkg/types"
)

// Re-export commonly used types for convenience.
// Users can import just "github.com/praetorian-inc/rangeexpr" without subpackages.
type (
	// Range is an ordered, deduplicated set of positions, optionally inverted.
	Range = ranges.Range

	// UnorderedRange keeps segment order and duplicates.
	UnorderedRange = ranges.UnorderedRange

	// Index addresses a single position.
	Index = index.Index

	// SubRange is a single position or an inclusive interval.
	SubRange = types.SubRange

	// Segment is an inclusive [from, to] pair of 0-based positions.
	Segment = types.Segment

	// NameSource provides the names that expressions may refer to.
	NameSource = types.NameSource

	// Names is a static NameSource.
	Names = types.Names

	// Result is the evaluation of one expression.
	Result = engine.Result
)

// All selects every position.
const All = ranges.All

// Re-export sentinel errors.
var (
	ErrInvalidMaximum   = types.ErrInvalidMaximum
	ErrNotAPlaceholder  = types.ErrNotAPlaceholder
	ErrOutOfRange       = types.ErrOutOfRange
	ErrMalformedSegment = types.ErrMalformedSegment
	ErrUnresolvableName = types.ErrUnresolvableName
)

// Evaluator evaluates expressions with a fixed configuration.
type Evaluator struct {
	core   *engine.Core
	config *evaluatorConfig
}

// evaluatorConfig holds evaluator configuration.
type evaluatorConfig struct {
	max       int
	names     types.Names
	unordered bool
	logger    engine.DebugLogger
}

// Option configures an Evaluator.
type Option func(*evaluatorConfig)

// WithMax sets the number of positions. When names are given as well, max
// overrides their count.
func WithMax(max int) Option {
	return func(c *evaluatorConfig) {
		c.max = max
	}
}

// WithNames enables name references. The names are copied from src once.
func WithNames(src NameSource) Option {
	return func(c *evaluatorConfig) {
		c.names = types.CollectNames(src)
	}
}

// WithUnordered makes Range evaluate unordered ranges: segment order and
// duplicates are kept and inversion is not available.
func WithUnordered() Option {
	return func(c *evaluatorConfig) {
		c.unordered = true
	}
}

// WithLogger sets a debug logger.
func WithLogger(logger engine.DebugLogger) Option {
	return func(c *evaluatorConfig) {
		c.logger = logger
	}
}

// New creates a new Evaluator with the given options.
//
// By default, the evaluator:
//   - has no maximum, so expressions are cleaned but select nothing
//   - resolves numbers and placeholders only
//   - evaluates ordered ranges
func New(opts ...Option) *Evaluator {
	config := &evaluatorConfig{}
	for _, opt := range opts {
		opt(config)
	}

	return &Evaluator{
		core:   engine.NewCoreWithNames(config.names, config.logger),
		config: config,
	}
}

// Range evaluates a range expression.
func (e *Evaluator) Range(expr string) (*Result, error) {
	kind := engine.KindRange
	if e.config.unordered {
		kind = engine.KindUnordered
	}
	return e.evaluate(expr, kind)
}

// Index evaluates a single index expression.
func (e *Evaluator) Index(expr string) (*Result, error) {
	return e.evaluate(expr, engine.KindIndex)
}

// Valid reports whether expr is a canonical, fully resolvable range.
func (e *Evaluator) Valid(expr string) bool {
	result, err := e.Range(expr)
	return err == nil && result.Valid
}

// Max returns the configured maximum, or the number of names when no
// maximum was set.
func (e *Evaluator) Max() int {
	if e.config.max > 0 || e.config.names == nil {
		return e.config.max
	}
	return len(e.config.names)
}

// Close releases cached results.
func (e *Evaluator) Close() {
	e.core.Close()
}

func (e *Evaluator) evaluate(expr, kind string) (*Result, error) {
	result, err := e.core.Evaluate(engine.Request{
		Expression: expr,
		Kind:       kind,
		Max:        e.config.max,
	})
	if err != nil {
		return nil, fmt.Errorf("evaluating %q: %w", expr, err)
	}
	return result, nil
}

// Positions returns the 0-based positions selected by a range expression
// with the given maximum. Malformed segments are skipped.
func Positions(expr string, max int) []int {
	return ranges.NewWithMax(expr, max).IntIndices()
}

// Compact encodes 0-based positions as a minimal range expression.
func Compact(positions []int) string {
	return ranges.Compact(positions)
}

// IsValid reports whether expr is a canonical range expression that fully
// resolves within max.
func IsValid(expr string, max int) bool {
	return ranges.IsValid(expr, max)
}

// LoadNamesFile loads a YAML name list:
//
//	names:
//	  - id
//	  - "first name"
func LoadNamesFile(path string) (Names, error) {
	return names.NewLoader().LoadFile(path)
}
