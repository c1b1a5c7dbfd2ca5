package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/astgen/errors"
)

func TestValidateLox(t *testing.T) {
	require.NoError(t, Validate(Lox()))
}

func TestValidateUnresolvedVariant(t *testing.T) {
	sch := &Schema{Families: []*Family{
		{
			Name:    "Statement",
			Results: []ResultKind{ResultValue},
			Nodes: []NodeDef{
				{Name: "Class", Fields: []Field{
					{Name: "superclass", Type: VariantType("SuperclassReference")},
				}},
			},
		},
	}}

	err := Validate(sch)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnresolvedVariant))
	assert.Contains(t, err.Error(), "SuperclassReference")
}

func TestValidateUnresolvedVariantInsideSequence(t *testing.T) {
	sch := &Schema{Families: []*Family{
		{
			Name:    "Statement",
			Results: []ResultKind{ResultValue},
			Nodes: []NodeDef{
				{Name: "Class", Fields: []Field{
					{Name: "methods", Type: ListType(VariantType("Missing"))},
				}},
			},
		},
	}}

	err := Validate(sch)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnresolvedVariant))
}

func TestValidateZeroResultKinds(t *testing.T) {
	sch := &Schema{Families: []*Family{
		{Name: "Expression", Nodes: []NodeDef{{Name: "Literal"}}},
	}}

	err := Validate(sch)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidResultConstraint))
}

func TestValidateUnknownFamilyRef(t *testing.T) {
	sch := &Schema{Families: []*Family{
		{
			Name:    "Statement",
			Results: []ResultKind{ResultValue},
			Nodes: []NodeDef{
				{Name: "Expression", Fields: []Field{
					{Name: "expression", Type: FamilyType("Expression")},
				}},
			},
		},
	}}

	err := Validate(sch)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownFamily))
}

func TestValidateDuplicateNames(t *testing.T) {
	dupNode := &Schema{Families: []*Family{
		{
			Name:    "Expression",
			Results: []ResultKind{ResultValue},
			Nodes:   []NodeDef{{Name: "Literal"}, {Name: "Literal"}},
		},
	}}
	err := Validate(dupNode)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate node name")

	dupField := &Schema{Families: []*Family{
		{
			Name:    "Expression",
			Results: []ResultKind{ResultValue},
			Nodes: []NodeDef{{Name: "Binary", Fields: []Field{
				{Name: "left", Type: SelfType},
				{Name: "left", Type: SelfType},
			}}},
		},
	}}
	err = Validate(dupField)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate field name")
}

func TestValidateFamilyStopsBeforeNodes(t *testing.T) {
	// A zero-constraint family reports the constraint defect even when node
	// definitions are also broken, since constraint checks run first.
	fam := &Family{
		Name:  "Expression",
		Nodes: []NodeDef{{Name: "X", Fields: []Field{{Name: "f", Type: VariantType("Missing")}}}},
	}
	sch := &Schema{Families: []*Family{fam}}

	err := ValidateFamily(sch, fam)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidResultConstraint))
}
