package ir

import "slices"

// PrimitiveKind identifies how a built-in ABI scalar is represented in JSON.
type PrimitiveKind int

const (
	PrimitiveBool   PrimitiveKind = iota
	PrimitiveInt                  // Integer that fits a JSON number exactly (see BitSize)
	PrimitiveBigInt               // 64-bit integer: JSON number or decimal string
	PrimitiveFloat                // Floating point (see BitSize)
	PrimitiveString               // Text and text-encoded scalars (name, asset, keys, 128-bit values)
	PrimitiveBytes                // Hex encoded binary
	PrimitiveTime                 // ISO 8601 timestamp string
	PrimitiveObject               // Structured scalar (extended_asset)
)

// String returns the string representation of the primitive kind.
func (k PrimitiveKind) String() string {
	switch k {
	case PrimitiveBool:
		return "Bool"
	case PrimitiveInt:
		return "Int"
	case PrimitiveBigInt:
		return "BigInt"
	case PrimitiveFloat:
		return "Float"
	case PrimitiveString:
		return "String"
	case PrimitiveBytes:
		return "Bytes"
	case PrimitiveTime:
		return "Time"
	case PrimitiveObject:
		return "Object"
	default:
		return "Unknown"
	}
}

// PrimitiveDescriptor represents a built-in ABI scalar.
type PrimitiveDescriptor struct {
	// Name is the ABI scalar name, e.g. "uint64".
	Name string

	PrimitiveKind PrimitiveKind

	// BitSize is the width of numeric kinds; 0 otherwise.
	BitSize int
}

// Kind returns KindPrimitive.
func (d *PrimitiveDescriptor) Kind() DescriptorKind { return KindPrimitive }

func (d *PrimitiveDescriptor) String() string { return "Primitive(" + d.Name + ")" }

func (*PrimitiveDescriptor) sealed() {}

type builtin struct {
	kind    PrimitiveKind
	bitSize int
}

// builtins lists the scalars understood by the eosio ABI serializer.
var builtins = map[string]builtin{
	"bool":                 {PrimitiveBool, 0},
	"int8":                 {PrimitiveInt, 8},
	"uint8":                {PrimitiveInt, 8},
	"int16":                {PrimitiveInt, 16},
	"uint16":               {PrimitiveInt, 16},
	"int32":                {PrimitiveInt, 32},
	"uint32":               {PrimitiveInt, 32},
	"varint32":             {PrimitiveInt, 32},
	"varuint32":            {PrimitiveInt, 32},
	"int64":                {PrimitiveBigInt, 64},
	"uint64":               {PrimitiveBigInt, 64},
	"int128":               {PrimitiveString, 128},
	"uint128":              {PrimitiveString, 128},
	"float32":              {PrimitiveFloat, 32},
	"float64":              {PrimitiveFloat, 64},
	"float128":             {PrimitiveString, 128},
	"time_point":           {PrimitiveTime, 0},
	"time_point_sec":       {PrimitiveTime, 0},
	"block_timestamp_type": {PrimitiveTime, 0},
	"name":                 {PrimitiveString, 0},
	"bytes":                {PrimitiveBytes, 0},
	"string":               {PrimitiveString, 0},
	"checksum160":          {PrimitiveString, 0},
	"checksum256":          {PrimitiveString, 0},
	"checksum512":          {PrimitiveString, 0},
	"public_key":           {PrimitiveString, 0},
	"signature":            {PrimitiveString, 0},
	"symbol":               {PrimitiveString, 0},
	"symbol_code":          {PrimitiveString, 0},
	"asset":                {PrimitiveString, 0},
	"extended_asset":       {PrimitiveObject, 0},
}

// Primitive returns the descriptor for a built-in scalar name.
// The second result is false if name is not a built-in.
func Primitive(name string) (*PrimitiveDescriptor, bool) {
	b, ok := builtins[name]
	if !ok {
		return nil, false
	}
	return &PrimitiveDescriptor{Name: name, PrimitiveKind: b.kind, BitSize: b.bitSize}, true
}

// IsPrimitive reports whether name is a built-in scalar.
func IsPrimitive(name string) bool {
	_, ok := builtins[name]
	return ok
}

// Primitives returns the built-in scalar names in sorted order.
func Primitives() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
