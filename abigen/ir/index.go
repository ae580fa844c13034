package ir

import (
	"fmt"
	"slices"
	"strings"

	"github.com/broady/abi2ts/abi"
)

// Index is the lookup table built once per document: aliases, structs and
// variants by name. It is read-only after NewIndex returns, so a single
// Index may be shared by concurrent resolutions.
type Index struct {
	aliases  map[string]string
	structs  map[string]*abi.Struct
	variants map[string]*abi.Variant
}

// NewIndex indexes the declarations of doc in one pass over types, structs
// and variants. When a name is declared twice, the later declaration wins.
func NewIndex(doc *abi.Document) *Index {
	idx := &Index{
		aliases:  make(map[string]string, len(doc.Types)),
		structs:  make(map[string]*abi.Struct, len(doc.Structs)),
		variants: make(map[string]*abi.Variant, len(doc.Variants)),
	}
	for _, t := range doc.Types {
		idx.aliases[t.NewTypeName] = t.Type
	}
	for i := range doc.Structs {
		idx.structs[doc.Structs[i].Name] = &doc.Structs[i]
	}
	for i := range doc.Variants {
		idx.variants[doc.Variants[i].Name] = &doc.Variants[i]
	}
	return idx
}

// Alias returns the type expression an alias stands for.
func (x *Index) Alias(name string) (string, bool) {
	t, ok := x.aliases[name]
	return t, ok
}

// Struct returns the struct declared with name.
func (x *Index) Struct(name string) (*abi.Struct, bool) {
	s, ok := x.structs[name]
	return s, ok
}

// Variant returns the variant declared with name.
func (x *Index) Variant(name string) (*abi.Variant, bool) {
	v, ok := x.variants[name]
	return v, ok
}

// Resolve parses a type expression into a TypeDescriptor.
//
// Suffix markers are stripped from the end one at a time, each adding one
// level of nesting: "?" (Optional), "[]" (Array) and "$" (Extension). The
// remaining bare name is looked up as an alias, then as a struct or variant,
// then as a built-in scalar.
func (x *Index) Resolve(expr string) (TypeDescriptor, error) {
	if expr == "" {
		return nil, &Error{Code: CodeMalformedType, Name: expr}
	}
	return x.resolve(expr, expr, nil)
}

// resolve threads the alias path of the current top-level call; top is the
// original expression, reported when the expression is malformed.
func (x *Index) resolve(expr, top string, path []string) (TypeDescriptor, error) {
	var wrap func(TypeDescriptor) TypeDescriptor
	rest := expr
	switch {
	case strings.HasSuffix(expr, "?"):
		rest = expr[:len(expr)-1]
		wrap = func(td TypeDescriptor) TypeDescriptor { return Optional(td) }
	case strings.HasSuffix(expr, "[]"):
		rest = expr[:len(expr)-2]
		wrap = func(td TypeDescriptor) TypeDescriptor { return Array(td) }
	case strings.HasSuffix(expr, "$"):
		rest = expr[:len(expr)-1]
		wrap = func(td TypeDescriptor) TypeDescriptor { return Extension(td) }
	}

	if wrap != nil {
		if rest == "" {
			return nil, &Error{Code: CodeMalformedType, Name: top}
		}
		inner, err := x.resolve(rest, top, path)
		if err != nil {
			return nil, err
		}
		return wrap(inner), nil
	}

	if strings.Trim(expr, "?[]$") == "" {
		return nil, &Error{Code: CodeMalformedType, Name: top}
	}

	if target, ok := x.aliases[expr]; ok {
		if slices.Contains(path, expr) {
			return nil, &Error{Code: CodeCyclicAlias, Name: expr, Path: append(slices.Clone(path), expr)}
		}
		if target == "" {
			return nil, &Error{Code: CodeMalformedType, Name: target,
				Message: fmt.Sprintf("alias %q has an empty type expression", expr)}
		}
		return x.resolve(target, target, append(slices.Clone(path), expr))
	}

	if _, ok := x.structs[expr]; ok {
		return Ref(expr), nil
	}
	if _, ok := x.variants[expr]; ok {
		return Ref(expr), nil
	}
	if p, ok := Primitive(expr); ok {
		return p, nil
	}
	return nil, &Error{Code: CodeUnknownType, Name: expr}
}

// FieldDescriptor is one member of a struct's effective field list.
type FieldDescriptor struct {
	// Name is the declared (unformatted) field name.
	Name string

	// TypeExpr is the type expression as written in the ABI.
	TypeExpr string

	// Type is the resolved TypeExpr.
	Type TypeDescriptor

	// DeclaredIn names the struct in the base chain that declares the field.
	DeclaredIn string
}

// EffectiveFields returns the inheritance-flattened, resolved fields of the
// named struct: the base's effective fields first, then the struct's own.
//
// A base may be named through an alias. The chain is walked with a visited
// set local to this call.
func (x *Index) EffectiveFields(name string) ([]FieldDescriptor, error) {
	s, ok := x.structs[name]
	if !ok {
		return nil, &Error{Code: CodeUnknownType, Name: name,
			Message: fmt.Sprintf("unknown struct %q", name)}
	}
	return x.Flatten(s)
}

// Flatten is EffectiveFields for a specific declaration. When a struct
// name is declared twice, each declaration keeps its own fields; only base
// lookups go through the index.
func (x *Index) Flatten(s *abi.Struct) ([]FieldDescriptor, error) {
	chain, err := x.baseChain(s)
	if err != nil {
		return nil, err
	}

	var fields []FieldDescriptor
	for i := len(chain) - 1; i >= 0; i-- {
		s := chain[i]
		for _, f := range s.Fields {
			td, err := x.Resolve(f.Type)
			if err != nil {
				return nil, fmt.Errorf("struct %s field %s: %w", s.Name, f.Name, err)
			}
			fields = append(fields, FieldDescriptor{
				Name:       f.Name,
				TypeExpr:   f.Type,
				Type:       td,
				DeclaredIn: s.Name,
			})
		}
	}
	return fields, nil
}

// baseChain returns s followed by its ancestors, nearest first.
func (x *Index) baseChain(s *abi.Struct) ([]*abi.Struct, error) {
	visited := []string{s.Name}
	chain := []*abi.Struct{s}
	for s.Base != "" {
		baseName, err := x.bareAlias(s.Base)
		if err != nil {
			return nil, err
		}
		base, ok := x.structs[baseName]
		if !ok {
			return nil, &Error{Code: CodeMissingBase, Name: s.Base,
				Message: fmt.Sprintf("struct %q has undeclared base %q", s.Name, s.Base)}
		}
		if slices.Contains(visited, base.Name) {
			return nil, &Error{Code: CodeInheritanceCycle, Name: base.Name, Path: append(visited, base.Name)}
		}
		visited = append(visited, base.Name)
		chain = append(chain, base)
		s = base
	}
	return chain, nil
}

// bareAlias follows alias declarations from name until it reaches a name
// that is not an alias. Aliases carrying suffix markers are returned as is,
// so they fail the struct lookup as missing bases.
func (x *Index) bareAlias(name string) (string, error) {
	var path []string
	for {
		target, ok := x.aliases[name]
		if !ok {
			return name, nil
		}
		if slices.Contains(path, name) {
			return "", &Error{Code: CodeCyclicAlias, Name: name, Path: append(path, name)}
		}
		path = append(path, name)
		name = target
	}
}

// Validate resolves every declaration reachable from the document and
// returns all errors found, not just the first: struct fields and bases,
// variant members, alias targets, and the row and argument types of tables,
// actions and action results.
func (x *Index) Validate(doc *abi.Document) []error {
	var errs []error
	for _, t := range doc.Types {
		if _, err := x.Resolve(t.NewTypeName); err != nil {
			errs = append(errs, fmt.Errorf("type %s: %w", t.NewTypeName, err))
		}
	}
	for i := range doc.Structs {
		if _, err := x.Flatten(&doc.Structs[i]); err != nil {
			errs = append(errs, err)
		}
	}
	for _, v := range doc.Variants {
		for _, t := range v.Types {
			if _, err := x.Resolve(t); err != nil {
				errs = append(errs, fmt.Errorf("variant %s: %w", v.Name, err))
			}
		}
	}
	for _, t := range doc.Tables {
		if _, err := x.Resolve(t.Type); err != nil {
			errs = append(errs, fmt.Errorf("table %s: %w", t.Name, err))
		}
	}
	for _, a := range doc.Actions {
		if _, err := x.Resolve(a.Type); err != nil {
			errs = append(errs, fmt.Errorf("action %s: %w", a.Name, err))
		}
	}
	for _, r := range doc.ActionResults {
		if _, err := x.Resolve(r.ResultType); err != nil {
			errs = append(errs, fmt.Errorf("action result %s: %w", r.Name, err))
		}
	}
	return errs
}
