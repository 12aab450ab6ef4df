package serve

import (
	"encoding/json"

	"github.com/praetorian-inc/rangeexpr/pkg/engine"
)

// Request represents an incoming NDJSON request
type Request struct {
	Type    string          `json:"type"` // "eval" | "eval_batch" | "compact" | "validate" | "select" | "close"
	Payload json.RawMessage `json:"payload"`
}

// EvalPayload is the payload for "eval" and "validate" requests
type EvalPayload = engine.Request

// EvalBatchPayload is the payload for "eval_batch" requests
type EvalBatchPayload struct {
	Items []engine.Request `json:"items"`
}

// CompactPayload is the payload for "compact" requests.
// Positions are 0-based.
type CompactPayload struct {
	Positions []int `json:"positions"`
	Ordered   bool  `json:"ordered,omitempty"`
}

// SelectPayload is the payload for "select" requests
type SelectPayload struct {
	Include []string `json:"include,omitempty"`
	Exclude []string `json:"exclude,omitempty"`
}

// ValidateData is the data field for "validate" responses
type ValidateData struct {
	Expression string `json:"expression"`
	Valid      bool   `json:"valid"`
}

// Response represents an outgoing NDJSON response
type Response struct {
	Success bool            `json:"success"`
	Type    string          `json:"type"` // "ready" | request type | "decode" | "unknown"
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ReadyData is the data field for "ready" responses
type ReadyData struct {
	Version string `json:"version"`
	Names   int    `json:"names"` // number of default names loaded
}
