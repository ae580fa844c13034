// Package abi defines the contract ABI document model.
//
// A Document is the decoded form of the JSON produced by contract toolchains
// (eosio::abi/1.x). Only the declaration sections matter for type generation;
// the remaining sections are decoded so that round-tripping tools can keep them.
package abi

// Document is a parsed ABI. It is treated as immutable once parsed.
type Document struct {
	Version          string            `json:"version" validate:"required"`
	Types            []TypeDef         `json:"types,omitempty" validate:"dive"`
	Structs          []Struct          `json:"structs,omitempty" validate:"dive"`
	Actions          []Action          `json:"actions,omitempty" validate:"dive"`
	Tables           []Table           `json:"tables,omitempty" validate:"dive"`
	RicardianClauses []RicardianClause `json:"ricardian_clauses,omitempty"`
	ErrorMessages    []ErrorMessage    `json:"error_messages,omitempty"`
	Extensions       []Extension       `json:"abi_extensions,omitempty"`
	Variants         []Variant         `json:"variants,omitempty" validate:"dive"`
	ActionResults    []ActionResult    `json:"action_results,omitempty" validate:"dive"`
}

// TypeDef declares NewTypeName as a synonym for the type expression Type.
type TypeDef struct {
	NewTypeName string `json:"new_type_name" validate:"required"`
	Type        string `json:"type"`
}

// Struct is a record declaration. Base, when set, names the parent struct
// whose fields precede Fields.
type Struct struct {
	Name   string  `json:"name" validate:"required"`
	Base   string  `json:"base"`
	Fields []Field `json:"fields" validate:"dive"`
}

// Field is a single named member of a Struct.
type Field struct {
	Name string `json:"name" validate:"required"`
	Type string `json:"type"`
}

// Action binds an action name to the struct carrying its arguments.
type Action struct {
	Name              string `json:"name" validate:"required"`
	Type              string `json:"type"`
	RicardianContract string `json:"ricardian_contract"`
}

// Table describes a keyed collection whose rows are of type Type.
type Table struct {
	Name      string   `json:"name" validate:"required"`
	Type      string   `json:"type"`
	IndexType string   `json:"index_type"`
	KeyNames  []string `json:"key_names"`
	KeyTypes  []string `json:"key_types"`
}

// Variant is a tagged union; the wire tag is the position in Types.
type Variant struct {
	Name  string   `json:"name" validate:"required"`
	Types []string `json:"types"`
}

// RicardianClause is a named legal clause attached to the contract.
type RicardianClause struct {
	ID   string `json:"id"`
	Body string `json:"body"`
}

// ErrorMessage maps a contract error code to its message.
type ErrorMessage struct {
	ErrorCode Scalar `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// Extension is an opaque ABI extension entry. Value is hex encoded.
type Extension struct {
	Tag   Scalar `json:"tag"`
	Value string `json:"value"`
}

// ActionResult declares the return type of an action (eosio::abi/1.2).
type ActionResult struct {
	Name       string `json:"name" validate:"required"`
	ResultType string `json:"result_type"`
}

// FindStruct returns the first struct declared with the given name.
func (d *Document) FindStruct(name string) *Struct {
	for i := range d.Structs {
		if d.Structs[i].Name == name {
			return &d.Structs[i]
		}
	}
	return nil
}

// FindVariant returns the first variant declared with the given name.
func (d *Document) FindVariant(name string) *Variant {
	for i := range d.Variants {
		if d.Variants[i].Name == name {
			return &d.Variants[i]
		}
	}
	return nil
}
