package server

import (
	"context"
	"encoding/json"

	"github.com/broady/abi2ts/abi"
	"github.com/broady/abi2ts/abigen"
	"github.com/broady/abi2ts/abigen/ir"
	"github.com/broady/abi2ts/abigen/naming"
	"github.com/broady/abi2ts/abigen/typescript"
)

// TransformRequest carries an ABI document and optional generation
// options. Omitted options take their defaults.
type TransformRequest struct {
	ABI     json.RawMessage `json:"abi" validate:"required"`
	Options json.RawMessage `json:"options,omitempty"`
}

// TransformResponse is the generated output.
type TransformResponse struct {
	Lines    []string `json:"lines"`
	Structs  int      `json:"structs"`
	Variants int      `json:"variants"`
	Aliases  int      `json:"aliases"`
}

// ResolveRequest asks for the resolved form of one type expression.
type ResolveRequest struct {
	ABI     json.RawMessage `json:"abi" validate:"required"`
	Type    string          `json:"type" validate:"required"`
	Options json.RawMessage `json:"options,omitempty"`
}

// ResolveResponse describes a resolved type expression.
type ResolveResponse struct {
	// Kind is the outermost descriptor kind, e.g. "Array".
	Kind string `json:"kind"`

	// Descriptor is the nested descriptor, e.g. "Array(Primitive(uint64))".
	Descriptor string `json:"descriptor"`

	// Target is the primitive or declaration the expression bottoms out at.
	Target string `json:"target"`

	// TypeScript is the expression as it would appear in generated output.
	TypeScript string `json:"typescript"`
}

// CheckRequest carries an ABI document to validate.
type CheckRequest struct {
	ABI json.RawMessage `json:"abi" validate:"required"`
}

// CheckProblem is one resolution failure.
type CheckProblem struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CheckResponse lists every resolution failure in a document.
type CheckResponse struct {
	Valid    bool           `json:"valid"`
	Problems []CheckProblem `json:"problems"`
}

// FormatRequest formats one identifier. It is decoded from the query string.
type FormatRequest struct {
	Name   string `schema:"name" validate:"required"`
	Naming string `schema:"naming" validate:"omitempty,oneof=pascal camel snake"`
	Prefix string `schema:"prefix"`
}

// FormatResponse is a formatted identifier.
type FormatResponse struct {
	Identifier string `json:"identifier"`
}

// Mount registers the generator endpoints on app:
//
//	POST /Abi/Transform
//	POST /Abi/Resolve
//	POST /Abi/Check
//	GET  /Naming/Format
func Mount(app *App) {
	abiSvc := app.Service("Abi")
	abiSvc.Register("Transform", Exec(Transform))
	abiSvc.Register("Resolve", Exec(Resolve))
	abiSvc.Register("Check", Exec(Check))

	app.Service("Naming").Register("Format", Query(Format))
}

func decodeOptions(raw json.RawMessage) (abigen.Options, error) {
	opts := abigen.DefaultOptions()
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &opts); err != nil {
			return opts, Errorf(CodeInvalidArgument, "failed to decode options: %v", err)
		}
	}
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// Transform generates declarations for an ABI document.
func Transform(ctx context.Context, req *TransformRequest) (*TransformResponse, error) {
	opts, err := decodeOptions(req.Options)
	if err != nil {
		return nil, err
	}

	res, err := abigen.FromJSON(req.ABI).WithOptions(opts).Generate()
	if err != nil {
		return nil, err
	}
	lines := res.Lines
	if lines == nil {
		lines = []string{}
	}
	return &TransformResponse{
		Lines:    lines,
		Structs:  res.Structs,
		Variants: res.Variants,
		Aliases:  res.Aliases,
	}, nil
}

// Resolve resolves one type expression against an ABI document.
func Resolve(ctx context.Context, req *ResolveRequest) (*ResolveResponse, error) {
	opts, err := decodeOptions(req.Options)
	if err != nil {
		return nil, err
	}
	doc, err := abi.Parse(req.ABI)
	if err != nil {
		return nil, err
	}

	index := ir.NewIndex(doc)
	td, err := index.Resolve(req.Type)
	if err != nil {
		return nil, err
	}
	emitter, err := typescript.NewEmitter(index, opts.Config())
	if err != nil {
		return nil, err
	}
	return &ResolveResponse{
		Kind:       td.Kind().String(),
		Descriptor: td.String(),
		Target:     ir.Target(td),
		TypeScript: emitter.EmitTypeExpr(td),
	}, nil
}

// Check reports every resolution failure in an ABI document. A malformed
// document is an error; unresolvable declarations are problems.
func Check(ctx context.Context, req *CheckRequest) (*CheckResponse, error) {
	doc, err := abi.Parse(req.ABI)
	if err != nil {
		return nil, err
	}

	errs := abigen.FromDocument(doc).Check()
	resp := &CheckResponse{Valid: len(errs) == 0, Problems: []CheckProblem{}}
	for _, err := range errs {
		p := CheckProblem{Message: err.Error()}
		if e := DefaultErrorTransformer(err); e != nil {
			if reason, ok := e.Details["reason"].(string); ok {
				p.Code = reason
			}
		}
		resp.Problems = append(resp.Problems, p)
	}
	return resp, nil
}

// Format applies a naming convention and prefix to one identifier.
func Format(ctx context.Context, req FormatRequest) (*FormatResponse, error) {
	conv, err := naming.ParseConvention(req.Naming)
	if err != nil {
		return nil, Errorf(CodeInvalidArgument, "%v", err)
	}
	return &FormatResponse{Identifier: naming.Formatter(conv, req.Prefix)(req.Name)}, nil
}
