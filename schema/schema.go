// Package schema defines the syntax-tree node families the generator emits
// code for.
//
// The schema is static, process-lifetime configuration: each family is an
// ordered list of node definitions, and each node an ordered list of typed
// fields. Nothing in this package is mutated during a generation run, which
// is what makes (backend, family) units safe to generate in parallel.
package schema

// Kind discriminates the abstract field type vocabulary. Every backend's
// type mapper must cover all six kinds or fail generation.
type Kind int

const (
	// Self references a node of the same family (e.g. a sub-expression
	// inside a binary expression).
	Self Kind = iota
	// FamilyRef references a node of another, fixed family by name.
	FamilyRef
	// VariantRef references one concrete node definition rather than a
	// whole family (e.g. a superclass restricted to a bare name lookup).
	VariantRef
	// Token references an external lexical token, opaque to the generator.
	Token
	// Object is a family-agnostic runtime value of unknown concrete type.
	Object
	// Sequence is an ordered list of an element type.
	Sequence
)

// FieldType is the abstract type of a node field.
type FieldType struct {
	Kind Kind
	Name string     // family name for FamilyRef, node name for VariantRef
	Elem *FieldType // element type for Sequence
}

// Convenience values for the payload-free kinds.
var (
	SelfType   = FieldType{Kind: Self}
	TokenType  = FieldType{Kind: Token}
	ObjectType = FieldType{Kind: Object}
)

// FamilyType references another family by name.
func FamilyType(name string) FieldType {
	return FieldType{Kind: FamilyRef, Name: name}
}

// VariantType references a single node definition by name.
func VariantType(name string) FieldType {
	return FieldType{Kind: VariantRef, Name: name}
}

// ListType wraps elem in an ordered sequence.
func ListType(elem FieldType) FieldType {
	e := elem
	return FieldType{Kind: Sequence, Elem: &e}
}

// Field is one typed member of a node definition. Declaration order is the
// emitted member order.
type Field struct {
	Name string
	Type FieldType
}

// NodeDef names one node kind and its fields. Note, when present, is
// rendered as a leading comment on the emitted definition.
type NodeDef struct {
	Name   string
	Fields []Field
	Note   string
}

// ResultKind is an abstract visitor result type. Backends resolve each kind
// to a concrete target type through their type mapper.
type ResultKind string

const (
	// ResultText is a textual rendering of a node (printers, debuggers).
	ResultText ResultKind = "Text"
	// ResultValue is a runtime value produced by evaluation.
	ResultValue ResultKind = "Value"
)

// Family is a set of node kinds sharing one visitor dispatch surface.
// Results declares which result types visitors over the family may produce;
// more than one entry means the visitor surface is generic over them.
type Family struct {
	Name    string
	Results []ResultKind
	Nodes   []NodeDef
}

// Node returns the definition with the given name, if any.
func (f *Family) Node(name string) (*NodeDef, bool) {
	for i := range f.Nodes {
		if f.Nodes[i].Name == name {
			return &f.Nodes[i], true
		}
	}
	return nil, false
}

// Schema is the full set of families generated in one run.
type Schema struct {
	Families []*Family
}

// Family returns the family with the given name, if any.
func (s *Schema) Family(name string) (*Family, bool) {
	for _, f := range s.Families {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Resolve finds the node definition a VariantRef points at, searching all
// families. The second return is the family owning the node.
func (s *Schema) Resolve(variant string) (*NodeDef, *Family, bool) {
	for _, f := range s.Families {
		if n, ok := f.Node(variant); ok {
			return n, f, true
		}
	}
	return nil, nil, false
}
