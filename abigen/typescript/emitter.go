package typescript

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/broady/abi2ts/abi"
	"github.com/broady/abi2ts/abigen/ir"
)

// Emitter renders ABI declarations as TypeScript, one slice of lines per
// declaration.
type Emitter struct {
	index  *ir.Index
	config Config
}

// NewEmitter returns an emitter resolving names through index.
func NewEmitter(index *ir.Index, cfg Config) (*Emitter, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	return &Emitter{index: index, config: cfg}, nil
}

// tsExpr is a rendered type expression. union marks top-level "|" so that
// wrapping constructs can parenthesise it.
type tsExpr struct {
	text  string
	union bool
}

// TypeName returns the formatted, sanitized declaration name for an ABI name.
func (e *Emitter) TypeName(name string) string {
	return sanitizeIdentifier(e.config.TypeFormatter(name))
}

// EmitStruct emits a struct as an interface with its effective fields.
// Base structs are flattened into the member list, never emitted as extends.
func (e *Emitter) EmitStruct(s *abi.Struct) ([]string, error) {
	fields, err := e.index.Flatten(s)
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(fields)+2)
	lines = append(lines, e.modifiers()+"interface "+e.TypeName(s.Name)+" {")
	for _, f := range fields {
		lines = append(lines, e.config.Indent+e.member(f))
	}
	lines = append(lines, "}")
	return lines, nil
}

// member renders "name: type;" for one field. An outermost optional or
// binary extension becomes an optional property.
func (e *Emitter) member(f ir.FieldDescriptor) string {
	var buf strings.Builder

	name := e.config.TypeFormatter(f.Name)
	if needsQuoting(name) {
		buf.WriteString(strconv.Quote(name))
	} else {
		buf.WriteString(name)
	}

	td := f.Type
	switch td.Kind() {
	case ir.KindOptional, ir.KindExtension:
		buf.WriteString("?")
		td = ir.Elem(td)
	}

	buf.WriteString(": ")
	buf.WriteString(e.expr(td).text)
	buf.WriteString(";")
	return buf.String()
}

// EmitVariant emits a variant as a union over its member types, in
// declaration order. Members are never reordered or deduplicated since the
// position is the wire tag.
func (e *Emitter) EmitVariant(v *abi.Variant) ([]string, error) {
	members := make([]string, 0, len(v.Types))
	for _, t := range v.Types {
		td, err := e.index.Resolve(t)
		if err != nil {
			return nil, fmt.Errorf("variant %s: %w", v.Name, err)
		}
		switch e.config.VariantStyle {
		case VariantTagged:
			members = append(members, "["+strconv.Quote(t)+", "+e.expr(td).text+"]")
		default:
			members = append(members, e.expr(td).text)
		}
	}

	body := "never"
	if len(members) > 0 {
		body = strings.Join(members, " | ")
	}
	return []string{e.modifiers() + "type " + e.TypeName(v.Name) + " = " + body + ";"}, nil
}

// EmitAlias emits an ABI type alias as a type alias.
func (e *Emitter) EmitAlias(t abi.TypeDef) ([]string, error) {
	td, err := e.index.Resolve(t.NewTypeName)
	if err != nil {
		return nil, fmt.Errorf("type %s: %w", t.NewTypeName, err)
	}
	return []string{e.modifiers() + "type " + e.TypeName(t.NewTypeName) + " = " + e.expr(td).text + ";"}, nil
}

// EmitTypeExpr renders a resolved type descriptor in expression position.
func (e *Emitter) EmitTypeExpr(td ir.TypeDescriptor) string {
	return e.expr(td).text
}

func (e *Emitter) expr(td ir.TypeDescriptor) tsExpr {
	switch t := td.(type) {
	case *ir.PrimitiveDescriptor:
		text := e.primitive(t)
		return tsExpr{text: text, union: strings.Contains(text, "|")}
	case *ir.ReferenceDescriptor:
		return tsExpr{text: e.TypeName(t.Name)}
	case *ir.OptionalDescriptor:
		return e.absent(t.Element)
	case *ir.ExtensionDescriptor:
		return e.absent(t.Element)
	case *ir.ArrayDescriptor:
		elem := e.expr(t.Element)
		if elem.union {
			return tsExpr{text: "(" + elem.text + ")[]"}
		}
		return tsExpr{text: elem.text + "[]"}
	default:
		return tsExpr{text: "unknown"}
	}
}

// absent renders a value that may be missing in a nested position, where
// no optional property marker is available.
func (e *Emitter) absent(elem ir.TypeDescriptor) tsExpr {
	inner := e.expr(elem)
	return tsExpr{text: inner.text + " | undefined", union: true}
}

func (e *Emitter) primitive(p *ir.PrimitiveDescriptor) string {
	if mapped, ok := e.config.TypeMappings[p.Name]; ok {
		return mapped
	}
	return PrimitiveType(p)
}

func (e *Emitter) modifiers() string {
	if e.config.ExportDeclarations {
		return "export "
	}
	return ""
}

// Transform renders the declarations of doc as TypeScript lines: structs in
// document order, then variants, then (with EmitAliases) type aliases.
// Declarations are separated by one empty line. Any resolution error aborts
// the whole transform and no lines are returned.
func Transform(doc *abi.Document, cfg Config) ([]string, error) {
	if doc == nil {
		return nil, fmt.Errorf("nil ABI document")
	}
	e, err := NewEmitter(ir.NewIndex(doc), cfg)
	if err != nil {
		return nil, err
	}

	var blocks [][]string
	if len(e.config.Header) > 0 {
		lines := lo.FlatMap(e.config.Header, func(h string, _ int) []string {
			return strings.Split(h, "\n")
		})
		blocks = append(blocks, lo.Map(lines, func(h string, _ int) string {
			return strings.TrimRight("// "+h, " \r")
		}))
	}
	for i := range doc.Structs {
		lines, err := e.EmitStruct(&doc.Structs[i])
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, lines)
	}
	for i := range doc.Variants {
		lines, err := e.EmitVariant(&doc.Variants[i])
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, lines)
	}
	if e.config.EmitAliases {
		for _, t := range doc.Types {
			lines, err := e.EmitAlias(t)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, lines)
		}
	}

	var out []string
	for i, block := range blocks {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, block...)
	}
	return out, nil
}
