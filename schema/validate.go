package schema

import (
	"github.com/teranos/astgen/errors"
)

// Schema-authoring defects. All of them must surface before any output byte
// is written for the affected family.
var (
	// ErrUnresolvedVariant marks a VariantRef whose name matches no node
	// definition in any family.
	ErrUnresolvedVariant = errors.New("unresolved variant reference")
	// ErrUnknownFamily marks a FamilyRef to a family the schema does not declare.
	ErrUnknownFamily = errors.New("unknown family reference")
	// ErrInvalidResultConstraint marks a family declaring zero result kinds.
	ErrInvalidResultConstraint = errors.New("family declares no result kinds")
)

// Validate checks every family in the schema. The first defect found is
// returned; a valid schema returns nil.
func Validate(s *Schema) error {
	for _, fam := range s.Families {
		if err := ValidateFamily(s, fam); err != nil {
			return err
		}
	}
	return nil
}

// ValidateFamily checks one family's invariants. Variant references may
// point into any family, so resolution consults the whole schema.
func ValidateFamily(s *Schema, fam *Family) error {
	if len(fam.Results) == 0 {
		return errors.Wrapf(ErrInvalidResultConstraint, "family %s", fam.Name)
	}

	nodeNames := make(map[string]bool, len(fam.Nodes))
	for i := range fam.Nodes {
		node := &fam.Nodes[i]
		if nodeNames[node.Name] {
			return errors.Newf("family %s: duplicate node name %q", fam.Name, node.Name)
		}
		nodeNames[node.Name] = true

		fieldNames := make(map[string]bool, len(node.Fields))
		for _, field := range node.Fields {
			if fieldNames[field.Name] {
				return errors.Newf("family %s: node %s: duplicate field name %q",
					fam.Name, node.Name, field.Name)
			}
			fieldNames[field.Name] = true

			if err := validateFieldType(s, fam, node, field.Name, field.Type); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateFieldType(s *Schema, fam *Family, node *NodeDef, fieldName string, ft FieldType) error {
	switch ft.Kind {
	case Self, Token, Object:
		return nil
	case FamilyRef:
		if _, ok := s.Family(ft.Name); !ok {
			return errors.Wrapf(ErrUnknownFamily,
				"family %s: node %s: field %s references family %q",
				fam.Name, node.Name, fieldName, ft.Name)
		}
		return nil
	case VariantRef:
		if _, _, ok := s.Resolve(ft.Name); !ok {
			return errors.Wrapf(ErrUnresolvedVariant,
				"family %s: node %s: field %s references node %q",
				fam.Name, node.Name, fieldName, ft.Name)
		}
		return nil
	case Sequence:
		if ft.Elem == nil {
			return errors.Newf("family %s: node %s: field %s: sequence without element type",
				fam.Name, node.Name, fieldName)
		}
		return validateFieldType(s, fam, node, fieldName, *ft.Elem)
	default:
		return errors.Newf("family %s: node %s: field %s: unknown type kind %d",
			fam.Name, node.Name, fieldName, ft.Kind)
	}
}
