// Package serve runs the expression engine as an NDJSON server over a pair of
// streams, one request per line in and one response per line out.
package serve

import (
	"bufio"
	"context"
	"encoding/json"
	"io"

	"github.com/praetorian-inc/rangeexpr/pkg/engine"
	"github.com/praetorian-inc/rangeexpr/pkg/names"
)

// Version is the server protocol version
const Version = "1.0.0"

// Server manages the streaming evaluator
type Server struct {
	core    *engine.Core
	encoder *json.Encoder
	decoder *json.Decoder
}

// NewServer creates a new streaming server
func NewServer(core *engine.Core, in io.Reader, out io.Writer) *Server {
	return &Server{
		core:    core,
		encoder: json.NewEncoder(out),
		decoder: json.NewDecoder(bufio.NewReader(in)),
	}
}

// Run starts the server main loop
func (s *Server) Run(ctx context.Context) error {
	s.sendReady()

	reqChan := make(chan Request, 1)
	errChan := make(chan error, 1)

	go func() {
		for {
			var req Request
			if err := s.decoder.Decode(&req); err != nil {
				errChan <- err
				return
			}
			select {
			case reqChan <- req:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Process requests until input closes or context cancels
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errChan:
			// Drain any pending requests before handling EOF
			for {
				select {
				case req := <-reqChan:
					if s.processRequest(req) {
						return nil
					}
				default:
					if err == io.EOF {
						return nil
					}
					s.sendError("decode", err.Error())
					return nil
				}
			}
		case req := <-reqChan:
			if s.processRequest(req) {
				return nil
			}
		}
	}
}

// processRequest handles a single request and returns true if the server should exit
func (s *Server) processRequest(req Request) bool {
	switch req.Type {
	case "eval":
		s.handleEval(req.Payload)
	case "eval_batch":
		s.handleEvalBatch(req.Payload)
	case "compact":
		s.handleCompact(req.Payload)
	case "validate":
		s.handleValidate(req.Payload)
	case "select":
		s.handleSelect(req.Payload)
	case "close":
		return true
	default:
		s.sendError("unknown", "unknown request type: "+req.Type)
	}
	return false
}

func (s *Server) sendReady() {
	s.sendData("ready", ReadyData{Version: Version, Names: len(s.core.Names())})
}

func (s *Server) handleEval(payload json.RawMessage) {
	var p EvalPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("eval", err.Error())
		return
	}

	result, err := s.core.Evaluate(p)
	if err != nil {
		s.sendError("eval", err.Error())
		return
	}
	s.sendData("eval", result)
}

func (s *Server) handleEvalBatch(payload json.RawMessage) {
	var p EvalBatchPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("eval_batch", err.Error())
		return
	}

	result, err := s.core.EvaluateBatch(p.Items)
	if err != nil {
		s.sendError("eval_batch", err.Error())
		return
	}
	s.sendData("eval_batch", result)
}

func (s *Server) handleCompact(payload json.RawMessage) {
	var p CompactPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("compact", err.Error())
		return
	}
	s.sendData("compact", s.core.Compact(p.Positions, p.Ordered))
}

func (s *Server) handleValidate(payload json.RawMessage) {
	var p EvalPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("validate", err.Error())
		return
	}

	valid, err := s.core.Validate(p)
	if err != nil {
		s.sendError("validate", err.Error())
		return
	}
	s.sendData("validate", ValidateData{Expression: p.Expression, Valid: valid})
}

func (s *Server) handleSelect(payload json.RawMessage) {
	var p SelectPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("select", err.Error())
		return
	}

	result, err := s.core.Select(names.FilterConfig{Include: p.Include, Exclude: p.Exclude})
	if err != nil {
		s.sendError("select", err.Error())
		return
	}
	s.sendData("select", result)
}

func (s *Server) sendData(respType string, v any) {
	data, _ := json.Marshal(v)
	s.encoder.Encode(Response{
		Success: true,
		Type:    respType,
		Data:    data,
	})
}

func (s *Server) sendError(reqType, msg string) {
	s.encoder.Encode(Response{
		Success: false,
		Type:    reqType,
		Error:   msg,
	})
}
