// Package astgen generates syntax-tree node types and visitor dispatch code
// for multiple target languages from the static schema in the schema package.
//
// The split of responsibilities is fixed: backends only supply syntax (four
// emission hooks plus a type mapper), while Generate owns the orchestration.
// Every backend therefore produces structurally parallel output, with the
// same families, node coverage, and visitor shape, even though the emitted
// text differs completely.
package astgen

import (
	"github.com/teranos/astgen/errors"
	"github.com/teranos/astgen/schema"
)

// ErrUnmappedType is returned by a type mapper that has no rule for an
// abstract type in a given family. It surfaces before any output is written.
var ErrUnmappedType = errors.New("no type mapping rule for abstract type")

// TypeMapper resolves abstract schema types to concrete target-language
// syntax. Implementations are pure functions over static inputs: identical
// calls return identical results, which keeps generation deterministic and
// lets (backend, family) units run concurrently.
type TypeMapper interface {
	// Map renders the declaration syntax for a field of the given abstract
	// type inside fam. Fails with ErrUnmappedType when no rule applies.
	Map(fam *schema.Family, ft schema.FieldType) (string, error)

	// Result renders the concrete type a visitor over fam produces for the
	// given abstract result kind.
	Result(fam *schema.Family, kind schema.ResultKind) (string, error)
}

// Backend emits source text for one target language. Generate drives the
// four emission hooks in a fixed order; backends never control orchestration.
type Backend interface {
	// Language is the backend identifier used on the command line ("go").
	Language() string

	// FileExtension is the extension of generated files, without dot ("go").
	FileExtension() string

	// OutputDir is the directory generated files are written into,
	// relative to the output root ("golox").
	OutputDir() string

	// FormatCmd is the command template run on each written file, with the
	// file path appended as its sole argument ("gofmt -w"). Empty disables
	// formatting for this backend.
	FormatCmd() string

	// GenericMethods reports whether the target language can attach a
	// type-parameterized method to a concrete receiver type. Targets that
	// cannot get acceptor wrapper types for multi-result families (see
	// PerResultFacilitated).
	GenericMethods() bool

	// Mapper returns the backend's type mapper.
	Mapper() TypeMapper

	// Header opens the file: generated-file marker, package/module clause,
	// imports.
	Header(fam *schema.Family) string

	// FamilyInterface declares the family's shared dispatch surface.
	FamilyInterface(fam *schema.Family) (string, error)

	// NodeDefinition declares one node type and its accept method(s).
	NodeDefinition(fam *schema.Family, node *schema.NodeDef) (string, error)

	// VisitorSurface declares the visitor interface(s) and, for targets
	// without generic methods, the acceptor wrapper types. Emitted last so
	// every node type is already declared.
	VisitorSurface(fam *schema.Family, nodes []schema.NodeDef) (string, error)
}
