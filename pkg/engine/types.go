package engine

import (
	"slices"

	"github.com/praetorian-inc/rangeexpr/pkg/types"
)

// Expression kinds.
const (
	KindRange     = "range"
	KindUnordered = "unordered"
	KindIndex     = "index"
)

// Request is one expression to evaluate.
type Request struct {
	Expression string   `json:"expression"`
	Kind       string   `json:"kind,omitempty"`  // "range" (default) | "unordered" | "index"
	Max        int      `json:"max,omitempty"`   // overrides the number of names when both are given
	Names      []string `json:"names,omitempty"` // enables names; falls back to the core's default names
}

// Result is the evaluation of a Request.
type Result struct {
	Expression string          `json:"expression"`
	Kind       string          `json:"kind"`
	Clean      string          `json:"clean"`
	Max        int             `json:"max"`
	Inverted   bool            `json:"inverted,omitempty"`
	Indices    []int           `json:"indices"`
	Segments   []types.Segment `json:"segments,omitempty"`
	Explicit   string          `json:"explicit"`
	Compact    string          `json:"compact"`
	Valid      bool            `json:"valid"`
	Errors     []string        `json:"errors,omitempty"`
}

// clone returns a copy that shares no slices with r.
func (r *Result) clone() *Result {
	out := *r
	out.Indices = slices.Clone(r.Indices)
	out.Segments = slices.Clone(r.Segments)
	out.Errors = slices.Clone(r.Errors)
	return &out
}

// BatchResult holds the results of EvaluateBatch.
type BatchResult struct {
	Results []Result `json:"results"`
	Total   int      `json:"total"` // positions over all results
}

// CompactResult is the result of Compact.
type CompactResult struct {
	Range   string `json:"range"`
	Ordered bool   `json:"ordered"`
}

// DebugLogger provides platform-specific logging
type DebugLogger interface {
	Log(format string, args ...interface{})
}

// NoopLogger is a no-op logger
type NoopLogger struct{}

func (NoopLogger) Log(format string, args ...interface{}) {}
