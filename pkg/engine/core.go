// Package engine evaluates index and range expressions on behalf of the CLI
// and the streaming server.
package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/praetorian-inc/rangeexpr/pkg/index"
	"github.com/praetorian-inc/rangeexpr/pkg/names"
	"github.com/praetorian-inc/rangeexpr/pkg/ranges"
	"github.com/praetorian-inc/rangeexpr/pkg/types"
)

// Core evaluates expressions, optionally against a default list of names,
// and caches the results.
type Core struct {
	names  types.Names
	cache  *ResultCache
	logger DebugLogger
}

// NewCore creates a new Core.
// namesYAML can be:
// - "" for plain numeric/placeholder expressions
// - a YAML document with a "names:" list used when a request brings no names
func NewCore(namesYAML string, logger DebugLogger) (*Core, error) {
	if logger == nil {
		logger = NoopLogger{}
	}

	logger.Log("NewCore starting...")

	var defaults types.Names
	if namesYAML != "" {
		logger.Log("Parsing default names YAML...")
		var err error
		defaults, err = names.NewLoader().Load([]byte(namesYAML))
		if err != nil {
			logger.Log("names.Load failed: %v", err)
			return nil, err
		}
		logger.Log("Loaded %d default names", len(defaults))
	}

	logger.Log("NewCore complete")
	return NewCoreWithNames(defaults, logger), nil
}

// NewCoreWithNames creates a Core using defaults as the names for requests
// that bring none. nil disables names.
func NewCoreWithNames(defaults types.Names, logger DebugLogger) *Core {
	if logger == nil {
		logger = NoopLogger{}
	}
	return &Core{
		names:  defaults,
		cache:  NewResultCache(),
		logger: logger,
	}
}

// Names returns the default names, nil if none.
func (c *Core) Names() types.Names {
	return c.names
}

// Evaluate evaluates a single expression. Malformed expressions are not an
// error: they yield a result with Valid false and the dropped segments in
// Errors. Only an unknown kind fails.
func (c *Core) Evaluate(req Request) (*Result, error) {
	kind, err := normalizeKind(req.Kind)
	if err != nil {
		return nil, err
	}
	req.Kind = kind
	if req.Names == nil && c.names != nil {
		req.Names = c.names
	}

	if cached := c.cache.Get(req); cached != nil {
		c.logger.Log("cache hit for %s %q", kind, req.Expression)
		return cached.clone(), nil
	}

	var result *Result
	switch kind {
	case KindIndex:
		result = evaluateIndex(req)
	case KindUnordered:
		result = evaluateUnordered(req)
	default:
		result = evaluateRange(req)
	}
	c.logger.Log("evaluated %s %q: %d positions, %d errors", kind, req.Expression, len(result.Indices), len(result.Errors))

	c.cache.Set(req, result)
	return result.clone(), nil
}

// EvaluateBatch evaluates multiple expressions
func (c *Core) EvaluateBatch(reqs []Request) (*BatchResult, error) {
	results := make([]Result, 0, len(reqs))
	total := 0

	for _, req := range reqs {
		result, err := c.Evaluate(req)
		if err != nil {
			// Skip requests that fail to evaluate
			c.logger.Log("skipping %q: %v", req.Expression, err)
			continue
		}
		results = append(results, *result)
		total += len(result.Indices)
	}

	return &BatchResult{
		Results: results,
		Total:   total,
	}, nil
}

// Compact encodes 0-based positions as a range expression. With ordered set
// the positions are listed in the order given, as an unordered range.
func (c *Core) Compact(positions []int, ordered bool) *CompactResult {
	if ordered {
		return &CompactResult{Range: ranges.Explicit(positions), Ordered: true}
	}
	return &CompactResult{Range: ranges.Compact(positions)}
}

// Validate reports whether the expression is canonical and fully resolvable.
func (c *Core) Validate(req Request) (bool, error) {
	result, err := c.Evaluate(req)
	if err != nil {
		return false, err
	}
	return result.Valid, nil
}

// Select matches the default names against include/exclude patterns and
// returns the matching positions as a compact range expression.
func (c *Core) Select(cfg names.FilterConfig) (*CompactResult, error) {
	if c.names == nil {
		return nil, fmt.Errorf("no names loaded")
	}
	positions, err := names.Select(c.names, cfg)
	if err != nil {
		return nil, err
	}
	return c.Compact(positions, false), nil
}

// CacheSize returns the number of cached results.
func (c *Core) CacheSize() int {
	return c.cache.Len()
}

// Close releases cached results
func (c *Core) Close() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// =============================================================================
// HELPERS
// =============================================================================

func normalizeKind(kind string) (string, error) {
	switch strings.ToLower(kind) {
	case "", KindRange:
		return KindRange, nil
	case KindUnordered:
		return KindUnordered, nil
	case KindIndex:
		return KindIndex, nil
	}
	return "", fmt.Errorf("unknown kind: %s", kind)
}

func evaluateRange(req Request) *Result {
	var r *ranges.Range
	if req.Names != nil {
		d := ranges.NewDataRangeWithData(req.Expression, types.Names(req.Names))
		if req.Max > 0 {
			d.SetMax(req.Max)
		}
		r = d.AsRange()
	} else {
		r = ranges.NewWithMax(req.Expression, req.Max)
	}

	indices := r.IntIndices()
	return &Result{
		Expression: req.Expression,
		Kind:       req.Kind,
		Clean:      r.Range(),
		Max:        r.Max(),
		Inverted:   r.IsInverted(),
		Indices:    indices,
		Segments:   r.IntSegments(),
		Explicit:   r.ToExplicitRange(),
		Compact:    ranges.Compact(indices),
		Valid:      r.Valid(),
		Errors:     errorStrings(r.Errors()),
	}
}

func evaluateUnordered(req Request) *Result {
	var r *ranges.UnorderedRange
	if req.Names != nil {
		d := ranges.NewDataUnorderedRangeWithData(req.Expression, types.Names(req.Names))
		if req.Max > 0 {
			d.SetMax(req.Max)
		}
		r = d.AsUnorderedRange()
	} else {
		r = ranges.NewUnorderedWithMax(req.Expression, req.Max)
	}

	indices := r.IntIndices()
	return &Result{
		Expression: req.Expression,
		Kind:       req.Kind,
		Clean:      r.Range(),
		Max:        r.Max(),
		Indices:    indices,
		Segments:   r.IntSegments(),
		Explicit:   r.ToExplicitRange(),
		Compact:    ranges.Explicit(indices),
		Valid:      r.Valid(),
		Errors:     errorStrings(r.Errors()),
	}
}

func evaluateIndex(req Request) *Result {
	var idx *index.Index
	if req.Names != nil {
		d := index.NewDataIndexWithData(req.Expression, types.Names(req.Names))
		if req.Max > 0 {
			d.SetMax(req.Max)
		}
		idx = d.AsIndex()
	} else {
		idx = index.NewWithMax(req.Expression, req.Max)
	}

	result := &Result{
		Expression: req.Expression,
		Kind:       req.Kind,
		Clean:      idx.Index(),
		Max:        idx.Max(),
		Indices:    []int{},
	}

	pos, err := idx.Resolve()
	if err != nil {
		result.Errors = []string{err.Error()}
		return result
	}
	result.Indices = []int{pos}
	result.Explicit = strconv.Itoa(pos + 1)
	result.Compact = result.Explicit
	result.Valid = result.Clean == req.Expression
	return result
}

func errorStrings(errs []error) []string {
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, len(errs))
	for i, err := range errs {
		out[i] = err.Error()
	}
	return out
}
