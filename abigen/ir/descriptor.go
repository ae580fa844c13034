// Package ir defines the resolved form of ABI type expressions.
// A TypeDescriptor is produced by Index.Resolve from an expression such as
// "asset[]?" and is consumed by the target language emitters.
package ir

// DescriptorKind identifies the category of a type descriptor.
type DescriptorKind int

const (
	KindPrimitive DescriptorKind = iota // Built-in ABI scalar
	KindOptional                        // Trailing "?"
	KindArray                           // Trailing "[]"
	KindExtension                       // Trailing "$" (binary extension)
	KindReference                       // Declared struct or variant
)

// String returns the string representation of the descriptor kind.
func (k DescriptorKind) String() string {
	switch k {
	case KindPrimitive:
		return "Primitive"
	case KindOptional:
		return "Optional"
	case KindArray:
		return "Array"
	case KindExtension:
		return "Extension"
	case KindReference:
		return "Reference"
	default:
		return "Unknown"
	}
}

// TypeDescriptor is the base interface for all resolved type descriptors.
type TypeDescriptor interface {
	// Kind returns the descriptor kind for type switching.
	Kind() DescriptorKind

	// String renders the descriptor tree, e.g. "Array(Primitive(uint64))".
	String() string

	// Ensure only types in this package can implement TypeDescriptor.
	sealed()
}

// Elem returns the wrapped descriptor of an Optional, Array or Extension,
// or nil for descriptors that wrap nothing.
func Elem(td TypeDescriptor) TypeDescriptor {
	switch d := td.(type) {
	case *OptionalDescriptor:
		return d.Element
	case *ArrayDescriptor:
		return d.Element
	case *ExtensionDescriptor:
		return d.Element
	}
	return nil
}

// Target returns the declaration name or primitive name a descriptor
// bottoms out at.
func Target(td TypeDescriptor) string {
	for {
		switch d := td.(type) {
		case *PrimitiveDescriptor:
			return d.Name
		case *ReferenceDescriptor:
			return d.Name
		case nil:
			return ""
		}
		td = Elem(td)
	}
}
