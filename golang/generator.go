// Package golang emits the Go rendition of the syntax-tree schema.
//
// Go cannot attach a type-parameterized method to a concrete receiver, so
// the backend reports GenericMethods() == false. A single-result family
// gets a plain visitor interface and one fixed Accept method per node. A
// multi-result family gets the generic visitor interface with a union
// constraint, one non-generic accept per result type on each node, and a
// generic acceptor wrapper per node whose instantiations are the per
// (node, result type) dispatch facilitators.
package golang

import (
	"fmt"
	"strings"

	"github.com/teranos/astgen"
	"github.com/teranos/astgen/errors"
	"github.com/teranos/astgen/schema"
	"github.com/teranos/astgen/util"
)

// Generator implements astgen.Backend for Go.
type Generator struct {
	mapper *TypeMapper
}

// NewGenerator creates a Go backend over the given schema. The schema is
// needed to resolve variant references to their concrete type names.
func NewGenerator(sch *schema.Schema) *Generator {
	return &Generator{mapper: &TypeMapper{sch: sch}}
}

// Language returns "go"
func (g *Generator) Language() string { return "go" }

// FileExtension returns "go"
func (g *Generator) FileExtension() string { return "go" }

// OutputDir returns "golox"
func (g *Generator) OutputDir() string { return "golox" }

// FormatCmd returns the gofmt invocation run on each generated file
func (g *Generator) FormatCmd() string { return "gofmt -w" }

// GenericMethods reports false: Go methods cannot take type parameters.
func (g *Generator) GenericMethods() bool { return false }

// Mapper returns the Go type mapper
func (g *Generator) Mapper() astgen.TypeMapper { return g.mapper }

// Header emits the generated-file marker and package clause. Generated
// files live next to the hand-written interpreter in package main.
func (g *Generator) Header(fam *schema.Family) string {
	return "/* This file is autogenerated, DO NOT MODIFY */\npackage main\n"
}

// FamilyInterface declares the family's dispatch surface: one fixed Accept
// for a single-result family, one accept per result type otherwise.
func (g *Generator) FamilyInterface(fam *schema.Family) (string, error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\ntype %s interface {\n", fam.Name))

	switch astgen.StrategyFor(fam, g.GenericMethods()) {
	case astgen.SingleFixed:
		result, err := g.mapper.Result(fam, fam.Results[0])
		if err != nil {
			return "", err
		}
		sb.WriteString(fmt.Sprintf("\tAccept(visitor %sVisitor) (%s, error)\n", fam.Name, result))
	default:
		for _, kind := range fam.Results {
			result, err := g.mapper.Result(fam, kind)
			if err != nil {
				return "", err
			}
			sb.WriteString(fmt.Sprintf("\tAccept%s(visitor %sVisitor[%s]) (%s, error)\n",
				acceptSuffix(result), fam.Name, result, result))
		}
	}

	sb.WriteString("}\n")
	return sb.String(), nil
}

// NodeDefinition declares the node struct and its accept method(s).
func (g *Generator) NodeDefinition(fam *schema.Family, node *schema.NodeDef) (string, error) {
	typeName := node.Name + fam.Name

	var sb strings.Builder
	sb.WriteString("\n")
	if node.Note != "" {
		sb.WriteString("// " + node.Note + "\n")
	}
	sb.WriteString(fmt.Sprintf("type %s struct {\n", typeName))
	for _, field := range node.Fields {
		mapped, err := g.mapper.Map(fam, field.Type)
		if err != nil {
			return "", err
		}
		sb.WriteString(fmt.Sprintf("\t%s %s\n", util.ToPascalCase(field.Name), mapped))
	}
	sb.WriteString("}\n")

	switch astgen.StrategyFor(fam, g.GenericMethods()) {
	case astgen.SingleFixed:
		result, err := g.mapper.Result(fam, fam.Results[0])
		if err != nil {
			return "", err
		}
		sb.WriteString(fmt.Sprintf(
			"\nfunc (e *%s) Accept(visitor %sVisitor) (%s, error) {\n\treturn visitor.Visit%s(e)\n}\n",
			typeName, fam.Name, result, typeName))
	default:
		for _, kind := range fam.Results {
			result, err := g.mapper.Result(fam, kind)
			if err != nil {
				return "", err
			}
			sb.WriteString(fmt.Sprintf(
				"\nfunc (e *%s) Accept%s(visitor %sVisitor[%s]) (%s, error) {\n\treturn visitor.Visit%s(e)\n}\n",
				typeName, acceptSuffix(result), fam.Name, result, result, typeName))
		}
	}

	return sb.String(), nil
}

// VisitorSurface declares the visitor interface(s) and, for multi-result
// families, the acceptor wrappers.
func (g *Generator) VisitorSurface(fam *schema.Family, nodes []schema.NodeDef) (string, error) {
	var sb strings.Builder
	param := strings.ToLower(fam.Name)

	switch astgen.StrategyFor(fam, g.GenericMethods()) {
	case astgen.SingleFixed:
		result, err := g.mapper.Result(fam, fam.Results[0])
		if err != nil {
			return "", err
		}
		sb.WriteString(fmt.Sprintf("\ntype %sVisitor interface {\n", fam.Name))
		for _, node := range nodes {
			sb.WriteString(fmt.Sprintf("\tVisit%s(%s *%s) (%s, error)\n",
				node.Name+fam.Name, param, node.Name+fam.Name, result))
		}
		sb.WriteString("}\n")

	default:
		results := make([]string, len(fam.Results))
		for i, kind := range fam.Results {
			result, err := g.mapper.Result(fam, kind)
			if err != nil {
				return "", err
			}
			results[i] = result
		}

		sb.WriteString(fmt.Sprintf("\ntype %sVisitorConstraint interface {\n\t%s\n}\n",
			fam.Name, strings.Join(results, " | ")))

		sb.WriteString(fmt.Sprintf("\ntype %sVisitor[T %sVisitorConstraint] interface {\n",
			fam.Name, fam.Name))
		for _, node := range nodes {
			sb.WriteString(fmt.Sprintf("\tVisit%s(%s *%s) (T, error)\n",
				node.Name+fam.Name, param, node.Name+fam.Name))
		}
		sb.WriteString("}\n")

		// Acceptor wrappers give generic code a uniform Accept entry point,
		// since Go methods cannot take type parameters. Each wrapper holds
		// the node and performs the single visitor dispatch for it.
		for _, node := range nodes {
			typeName := node.Name + fam.Name
			sb.WriteString(fmt.Sprintf(
				"\ntype %sAcceptor[T %sVisitorConstraint] struct {\n\tNode *%s\n}\n",
				typeName, fam.Name, typeName))
			sb.WriteString(fmt.Sprintf(
				"\nfunc (a %sAcceptor[T]) Accept(visitor %sVisitor[T]) (T, error) {\n\treturn visitor.Visit%s(a.Node)\n}\n",
				typeName, fam.Name, typeName))
		}
	}

	return sb.String(), nil
}

// acceptSuffix names the per-result accept method: "string" -> AcceptString,
// "Value" -> AcceptValue.
func acceptSuffix(result string) string {
	return util.ToPascalCase(strings.TrimPrefix(result, "*"))
}

// TypeMapper resolves abstract schema types to Go declaration syntax.
type TypeMapper struct {
	sch *schema.Schema
}

// Map implements astgen.TypeMapper.
func (m *TypeMapper) Map(fam *schema.Family, ft schema.FieldType) (string, error) {
	switch ft.Kind {
	case schema.Self:
		return fam.Name, nil
	case schema.FamilyRef:
		return ft.Name, nil
	case schema.VariantRef:
		node, owner, ok := m.sch.Resolve(ft.Name)
		if !ok {
			return "", errors.Wrapf(schema.ErrUnresolvedVariant, "variant %q", ft.Name)
		}
		return "*" + node.Name + owner.Name, nil
	case schema.Token:
		return "*Token", nil
	case schema.Object:
		return "LiteralValue", nil
	case schema.Sequence:
		elem, err := m.Map(fam, *ft.Elem)
		if err != nil {
			return "", err
		}
		return "[]" + elem, nil
	default:
		return "", errors.Wrapf(astgen.ErrUnmappedType, "go: kind %d", ft.Kind)
	}
}

// Result implements astgen.TypeMapper. A single-result family keeps the
// pointer result so visitors can return nil; the multi-result family needs
// value types usable inside a union constraint.
func (m *TypeMapper) Result(fam *schema.Family, kind schema.ResultKind) (string, error) {
	switch kind {
	case schema.ResultText:
		return "string", nil
	case schema.ResultValue:
		if len(fam.Results) > 1 {
			return "Value", nil
		}
		return "*Value", nil
	default:
		return "", errors.Wrapf(astgen.ErrUnmappedType, "go: result kind %q", kind)
	}
}
