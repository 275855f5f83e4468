// Package mcpserver exposes feature tokenizing and model conversion as
// agent tools, both over the Model Context Protocol (mark3labs/mcp-go) and
// as a plain JSON request/response call.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/njchilds90/explicitize"
	"github.com/njchilds90/explicitize/config"
	"github.com/njchilds90/explicitize/export"
	"github.com/njchilds90/explicitize/feature"
	"github.com/njchilds90/explicitize/pipeline"
)

// Tool names.
const (
	ToolTokenize    = "tokenize_feature"
	ToolReformat    = "reformat_features"
	ToolExplicitize = "explicitize_model"
	ToolSpecName    = "mcp_spec"
)

// ============================================================
// Tool implementations
// ============================================================

// Tokenize returns the tokens of one feature string.
func Tokenize(f string) []string {
	toks := feature.Tokenize(f)
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.String()
	}
	return out
}

// Reformat returns the product form of every feature, in input order.
func Reformat(features []string) []string {
	return feature.Reformat(features)
}

// Failure is one row that produced no model.
type Failure struct {
	Model  int    `json:"model"`
	Reason string `json:"reason"`
}

// Report is the JSON answer of explicitize_model.
type Report struct {
	RunID    string           `json:"run_id"`
	Models   []export.Record  `json:"models"`
	Failures []Failure        `json:"failures"`
	Summary  pipeline.Summary `json:"summary"`
}

// Explicitize converts a YAML or JSON model document with cfg.
func Explicitize(ctx context.Context, logger *zap.Logger, doc []byte, cfg config.Config) (*Report, error) {
	m, err := config.ParseModel(doc)
	if err != nil {
		return nil, err
	}
	res, err := explicitize.Convert(ctx, m, cfg, pipeline.WithOutput(io.Discard), pipeline.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	rep := &Report{
		RunID:    res.RunID,
		Models:   res.Records,
		Failures: []Failure{},
		Summary:  res.Summary,
	}
	if rep.Models == nil {
		rep.Models = []export.Record{}
	}
	for _, o := range res.Outcomes {
		if o.Failed() {
			rep.Failures = append(rep.Failures, Failure{Model: o.Index, Reason: o.Err.Error()})
		}
	}
	return rep, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ============================================================
// JSON tool call
// ============================================================

// ToolRequest is a tool name with its parameters.
type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

// ToolResponse carries either a result or an error message.
type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// HandleToolCall runs one tool call. Errors are reported in the response,
// never returned.
func HandleToolCall(ctx context.Context, logger *zap.Logger, req ToolRequest) ToolResponse {
	if logger == nil {
		logger = zap.NewNop()
	}
	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", fmt.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("param %s must be a string", key)
		}
		return s, nil
	}
	getStrings := func(key string) ([]string, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		switch val := v.(type) {
		case string:
			return splitList(val), nil
		case []interface{}:
			out := make([]string, len(val))
			for i, item := range val {
				s, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("param %s[%d] must be a string", key, i)
				}
				out[i] = s
			}
			return out, nil
		}
		return nil, fmt.Errorf("param %s must be a string or an array of strings", key)
	}
	getNumber := func(key string) (float64, bool, error) {
		v, ok := req.Params[key]
		if !ok {
			return 0, false, nil
		}
		f, ok := v.(float64)
		if !ok {
			return 0, false, fmt.Errorf("param %s must be a number", key)
		}
		return f, true, nil
	}

	switch req.Tool {
	case ToolTokenize:
		f, err := getString("feature")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		toks := Tokenize(f)
		return ToolResponse{Result: toks, String: strings.Join(toks, ", ")}

	case ToolReformat:
		fs, err := getStrings("features")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		out := Reformat(fs)
		return ToolResponse{Result: out, String: strings.Join(out, ", ")}

	case ToolExplicitize:
		var doc []byte
		switch m := req.Params["model"].(type) {
		case nil:
			return ToolResponse{Error: "missing param: model"}
		case string:
			doc = []byte(m)
		default:
			b, err := json.Marshal(m)
			if err != nil {
				return ToolResponse{Error: err.Error()}
			}
			doc = b
		}
		cfg := config.Default()
		if tol, ok, err := getNumber("tolerance"); err != nil {
			return ToolResponse{Error: err.Error()}
		} else if ok {
			cfg.Tolerance = tol
		}
		if sig, ok, err := getNumber("sig_digits"); err != nil {
			return ToolResponse{Error: err.Error()}
		} else if ok {
			cfg.SigDigits = int(sig)
		}
		if target, ok := req.Params["target"].(string); ok {
			cfg.Target = target
		}
		rep, err := Explicitize(ctx, logger, doc, cfg)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{Result: rep, String: fmt.Sprintf("%d of %d models obtained", rep.Summary.Succeeded, rep.Summary.Total)}

	case ToolSpecName:
		return ToolResponse{Result: ToolSpec(), String: "MCP tool specification"}
	}

	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

// ToolSpec returns the JSON schema of every tool for agent registration.
func ToolSpec() string {
	tools := []map[string]interface{}{
		ts(ToolTokenize, "Split a feature string such as x0x1x2_dot into variable tokens", []string{"feature"}, map[string]string{"feature": "string"}),
		ts(ToolReformat, "Rewrite features as products of powers, e.g. x0x0x1 -> x0^2*x1", []string{"features"}, map[string]string{"features": "array"}),
		ts(ToolExplicitize, "Solve an implicit model document for its derivative symbol", []string{"model"},
			map[string]string{"model": "string", "tolerance": "number", "sig_digits": "integer", "target": "string"}),
		ts(ToolSpecName, "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
