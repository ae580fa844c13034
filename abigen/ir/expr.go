package ir

// OptionalDescriptor represents a value that may be absent ("T?").
type OptionalDescriptor struct {
	Element TypeDescriptor
}

// Kind returns KindOptional.
func (d *OptionalDescriptor) Kind() DescriptorKind { return KindOptional }

func (d *OptionalDescriptor) String() string { return "Optional(" + d.Element.String() + ")" }

func (*OptionalDescriptor) sealed() {}

// Optional returns an OptionalDescriptor wrapping element.
func Optional(element TypeDescriptor) *OptionalDescriptor {
	return &OptionalDescriptor{Element: element}
}

// ArrayDescriptor represents a variable-length sequence ("T[]").
type ArrayDescriptor struct {
	Element TypeDescriptor
}

// Kind returns KindArray.
func (d *ArrayDescriptor) Kind() DescriptorKind { return KindArray }

func (d *ArrayDescriptor) String() string { return "Array(" + d.Element.String() + ")" }

func (*ArrayDescriptor) sealed() {}

// Array returns an ArrayDescriptor wrapping element.
func Array(element TypeDescriptor) *ArrayDescriptor {
	return &ArrayDescriptor{Element: element}
}

// ExtensionDescriptor represents a binary extension field ("T$"): the value
// is omitted entirely from data encoded before the field was added.
//
// Emitters treat it like OptionalDescriptor. It is kept distinct so that a
// generator can tell "never sent" apart from "explicitly absent" if needed.
type ExtensionDescriptor struct {
	Element TypeDescriptor
}

// Kind returns KindExtension.
func (d *ExtensionDescriptor) Kind() DescriptorKind { return KindExtension }

func (d *ExtensionDescriptor) String() string { return "Extension(" + d.Element.String() + ")" }

func (*ExtensionDescriptor) sealed() {}

// Extension returns an ExtensionDescriptor wrapping element.
func Extension(element TypeDescriptor) *ExtensionDescriptor {
	return &ExtensionDescriptor{Element: element}
}

// ReferenceDescriptor refers to a struct or variant declared in the document.
type ReferenceDescriptor struct {
	// Name is the declared (unformatted) name.
	Name string
}

// Kind returns KindReference.
func (d *ReferenceDescriptor) Kind() DescriptorKind { return KindReference }

func (d *ReferenceDescriptor) String() string { return "Reference(" + d.Name + ")" }

func (*ReferenceDescriptor) sealed() {}

// Ref returns a ReferenceDescriptor for a declared name.
func Ref(name string) *ReferenceDescriptor {
	return &ReferenceDescriptor{Name: name}
}
