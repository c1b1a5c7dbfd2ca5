// Package typescript emits the TypeScript rendition of the syntax-tree
// schema: one class per node with readonly constructor-parameter fields,
// plus the visitor interfaces.
//
// TypeScript methods can be generic, so the backend reports
// GenericMethods() == true and multi-result families get a single generic
// accept dispatching through a generic visitor interface. No acceptor
// wrappers are ever needed.
package typescript

import (
	"fmt"
	"sort"
	"strings"

	"github.com/teranos/astgen"
	"github.com/teranos/astgen/errors"
	"github.com/teranos/astgen/schema"
	"github.com/teranos/astgen/util"
)

// tsReserved are words that cannot name a constructor parameter. Escaped
// with a trailing underscore, matching the Python backend's convention.
var tsReserved = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true,
	"do": true, "else": true, "enum": true, "export": true, "extends": true,
	"false": true, "finally": true, "for": true, "function": true, "if": true,
	"import": true, "in": true, "instanceof": true, "new": true, "null": true,
	"return": true, "super": true, "switch": true, "this": true, "throw": true,
	"true": true, "try": true, "typeof": true, "var": true, "void": true,
	"while": true, "with": true,
}

// Generator implements astgen.Backend for TypeScript.
type Generator struct {
	sch    *schema.Schema
	mapper *TypeMapper
}

// NewGenerator creates a TypeScript backend over the given schema.
func NewGenerator(sch *schema.Schema) *Generator {
	return &Generator{sch: sch, mapper: &TypeMapper{sch: sch}}
}

// Language returns "typescript"
func (g *Generator) Language() string { return "typescript" }

// FileExtension returns "ts"
func (g *Generator) FileExtension() string { return "ts" }

// OutputDir returns "tslox"
func (g *Generator) OutputDir() string { return "tslox" }

// FormatCmd returns the prettier invocation run on each generated file
func (g *Generator) FormatCmd() string { return "prettier --write" }

// GenericMethods reports true: TypeScript class methods can be generic.
func (g *Generator) GenericMethods() bool { return true }

// Mapper returns the TypeScript type mapper
func (g *Generator) Mapper() astgen.TypeMapper { return g.mapper }

// Header emits the generated-file marker and the import lines the family's
// fields require. Imports are computed from the schema, never hard-coded.
func (g *Generator) Header(fam *schema.Family) string {
	var sb strings.Builder
	sb.WriteString("/* This file is autogenerated, DO NOT MODIFY */\n")

	needsToken := false
	needsValue := false
	for _, kind := range fam.Results {
		if kind == schema.ResultValue {
			needsValue = true
		}
	}
	foreign := map[string]map[string]bool{} // family name -> imported symbols

	var walk func(ft schema.FieldType)
	walk = func(ft schema.FieldType) {
		switch ft.Kind {
		case schema.Token:
			needsToken = true
		case schema.Object:
			needsValue = true
		case schema.FamilyRef:
			if ft.Name != fam.Name {
				addImport(foreign, ft.Name, ft.Name)
			}
		case schema.VariantRef:
			if node, owner, ok := g.sch.Resolve(ft.Name); ok && owner.Name != fam.Name {
				addImport(foreign, owner.Name, node.Name+owner.Name)
			}
		case schema.Sequence:
			if ft.Elem != nil {
				walk(*ft.Elem)
			}
		}
	}
	for i := range fam.Nodes {
		for _, field := range fam.Nodes[i].Fields {
			walk(field.Type)
		}
	}

	if needsToken {
		sb.WriteString("\nimport type { Token } from './token';")
	}
	if needsValue {
		sb.WriteString("\nimport type { RuntimeValue } from './value';")
	}
	families := make([]string, 0, len(foreign))
	for name := range foreign {
		families = append(families, name)
	}
	sort.Strings(families)
	for _, name := range families {
		symbols := make([]string, 0, len(foreign[name]))
		for sym := range foreign[name] {
			symbols = append(symbols, sym)
		}
		sort.Strings(symbols)
		sb.WriteString(fmt.Sprintf("\nimport type { %s } from './%s';",
			strings.Join(symbols, ", "), strings.ToLower(name)))
	}
	if needsToken || needsValue || len(families) > 0 {
		sb.WriteString("\n")
	}

	return sb.String()
}

func addImport(foreign map[string]map[string]bool, family, symbol string) {
	if foreign[family] == nil {
		foreign[family] = map[string]bool{}
	}
	foreign[family][symbol] = true
}

// FamilyInterface declares the family interface and, for multi-result
// families, the result union type the generic visitor ranges over.
func (g *Generator) FamilyInterface(fam *schema.Family) (string, error) {
	var sb strings.Builder

	switch astgen.StrategyFor(fam, g.GenericMethods()) {
	case astgen.PerResultGeneric:
		results := make([]string, len(fam.Results))
		for i, kind := range fam.Results {
			result, err := g.mapper.Result(fam, kind)
			if err != nil {
				return "", err
			}
			results[i] = result
		}
		sb.WriteString(fmt.Sprintf("\nexport type %sResult = %s;\n",
			fam.Name, strings.Join(results, " | ")))
		sb.WriteString(fmt.Sprintf(
			"\nexport interface %s {\n  accept<R extends %sResult>(visitor: %sVisitor<R>): R;\n}\n",
			fam.Name, fam.Name, fam.Name))
	default:
		result, err := g.mapper.Result(fam, fam.Results[0])
		if err != nil {
			return "", err
		}
		sb.WriteString(fmt.Sprintf(
			"\nexport interface %s {\n  accept(visitor: %sVisitor): %s;\n}\n",
			fam.Name, fam.Name, result))
	}

	return sb.String(), nil
}

// NodeDefinition declares the node class with its fields and accept method.
func (g *Generator) NodeDefinition(fam *schema.Family, node *schema.NodeDef) (string, error) {
	typeName := node.Name + fam.Name

	var sb strings.Builder
	sb.WriteString("\n")
	if node.Note != "" {
		sb.WriteString("// " + node.Note + "\n")
	}
	sb.WriteString(fmt.Sprintf("export class %s implements %s {\n", typeName, fam.Name))
	sb.WriteString("  constructor(\n")
	for _, field := range node.Fields {
		mapped, err := g.mapper.Map(fam, field.Type)
		if err != nil {
			return "", err
		}
		name := util.Escape(util.ToCamelCase(field.Name), tsReserved)
		sb.WriteString(fmt.Sprintf("    readonly %s: %s,\n", name, mapped))
	}
	sb.WriteString("  ) {}\n")

	switch astgen.StrategyFor(fam, g.GenericMethods()) {
	case astgen.PerResultGeneric:
		sb.WriteString(fmt.Sprintf(
			"\n  accept<R extends %sResult>(visitor: %sVisitor<R>): R {\n    return visitor.visit%s(this);\n  }\n",
			fam.Name, fam.Name, typeName))
	default:
		result, err := g.mapper.Result(fam, fam.Results[0])
		if err != nil {
			return "", err
		}
		sb.WriteString(fmt.Sprintf(
			"\n  accept(visitor: %sVisitor): %s {\n    return visitor.visit%s(this);\n  }\n",
			fam.Name, result, typeName))
	}

	sb.WriteString("}\n")
	return sb.String(), nil
}

// VisitorSurface declares the visitor interface: generic over the result
// union for multi-result families, fixed otherwise.
func (g *Generator) VisitorSurface(fam *schema.Family, nodes []schema.NodeDef) (string, error) {
	var sb strings.Builder
	param := strings.ToLower(fam.Name)

	switch astgen.StrategyFor(fam, g.GenericMethods()) {
	case astgen.PerResultGeneric:
		sb.WriteString(fmt.Sprintf("\nexport interface %sVisitor<R extends %sResult> {\n",
			fam.Name, fam.Name))
		for _, node := range nodes {
			sb.WriteString(fmt.Sprintf("  visit%s(%s: %s): R;\n",
				node.Name+fam.Name, param, node.Name+fam.Name))
		}
		sb.WriteString("}\n")
	default:
		result, err := g.mapper.Result(fam, fam.Results[0])
		if err != nil {
			return "", err
		}
		sb.WriteString(fmt.Sprintf("\nexport interface %sVisitor {\n", fam.Name))
		for _, node := range nodes {
			sb.WriteString(fmt.Sprintf("  visit%s(%s: %s): %s;\n",
				node.Name+fam.Name, param, node.Name+fam.Name, result))
		}
		sb.WriteString("}\n")
	}

	return sb.String(), nil
}

// TypeMapper resolves abstract schema types to TypeScript syntax.
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
		return node.Name + owner.Name, nil
	case schema.Token:
		return "Token", nil
	case schema.Object:
		return "RuntimeValue", nil
	case schema.Sequence:
		elem, err := m.Map(fam, *ft.Elem)
		if err != nil {
			return "", err
		}
		return elem + "[]", nil
	default:
		return "", errors.Wrapf(astgen.ErrUnmappedType, "typescript: kind %d", ft.Kind)
	}
}

// Result implements astgen.TypeMapper.
func (m *TypeMapper) Result(fam *schema.Family, kind schema.ResultKind) (string, error) {
	switch kind {
	case schema.ResultText:
		return "string", nil
	case schema.ResultValue:
		return "RuntimeValue", nil
	default:
		return "", errors.Wrapf(astgen.ErrUnmappedType, "typescript: result kind %q", kind)
	}
}
