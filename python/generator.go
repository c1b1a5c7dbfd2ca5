// Package python emits the Python rendition of the syntax-tree schema:
// frozen dataclasses for nodes and ABC visitor classes.
//
// Python functions take type parameters freely (a value-constrained TypeVar
// stands in for the result constraint set), so the backend reports
// GenericMethods() == true.
package python

import (
	"fmt"
	"sort"
	"strings"

	"github.com/teranos/astgen"
	"github.com/teranos/astgen/errors"
	"github.com/teranos/astgen/schema"
	"github.com/teranos/astgen/util"
)

// pythonKeywords are reserved words that need the trailing-underscore
// escape when they appear as field names (e.g. "else" -> "else_").
var pythonKeywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
}

// Generator implements astgen.Backend for Python.
type Generator struct {
	sch    *schema.Schema
	mapper *TypeMapper
}

// NewGenerator creates a Python backend over the given schema.
func NewGenerator(sch *schema.Schema) *Generator {
	return &Generator{sch: sch, mapper: &TypeMapper{sch: sch}}
}

// Language returns "python"
func (g *Generator) Language() string { return "python" }

// FileExtension returns "py"
func (g *Generator) FileExtension() string { return "py" }

// OutputDir returns "pylox"
func (g *Generator) OutputDir() string { return "pylox" }

// FormatCmd returns the black invocation run on each generated file
func (g *Generator) FormatCmd() string { return "black -q" }

// GenericMethods reports true: Python methods dispatch generically.
func (g *Generator) GenericMethods() bool { return true }

// Mapper returns the Python type mapper
func (g *Generator) Mapper() astgen.TypeMapper { return g.mapper }

// Header emits the generated-file marker and the import lines the family
// needs, computed from the schema.
func (g *Generator) Header(fam *schema.Family) string {
	var sb strings.Builder
	sb.WriteString("# This file is autogenerated, DO NOT MODIFY\n")
	sb.WriteString("\nfrom __future__ import annotations\n")
	sb.WriteString("\nfrom abc import ABC, abstractmethod\nfrom dataclasses import dataclass\n")

	if astgen.StrategyFor(fam, g.GenericMethods()) == astgen.PerResultGeneric {
		sb.WriteString("from typing import Generic, TypeVar\n")
	}

	needsToken := false
	needsValue := false
	for _, kind := range fam.Results {
		if kind == schema.ResultValue {
			needsValue = true
		}
	}
	foreign := map[string]map[string]bool{}

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

	if needsToken || needsValue || len(foreign) > 0 {
		sb.WriteString("\n")
	}
	if needsToken {
		sb.WriteString("from .token import Token\n")
	}
	if needsValue {
		sb.WriteString("from .value import Value\n")
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
		sb.WriteString(fmt.Sprintf("from .%s import %s\n",
			strings.ToLower(name), strings.Join(symbols, ", ")))
	}

	return sb.String()
}

func addImport(foreign map[string]map[string]bool, family, symbol string) {
	if foreign[family] == nil {
		foreign[family] = map[string]bool{}
	}
	foreign[family][symbol] = true
}

// FamilyInterface declares the abstract base class and, for multi-result
// families, the constrained TypeVar encoding the result constraint set.
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
		sb.WriteString(fmt.Sprintf("\nR = TypeVar(\"R\", %s)\n", strings.Join(results, ", ")))
		sb.WriteString(fmt.Sprintf(
			"\n\nclass %s(ABC):\n    @abstractmethod\n    def accept(self, visitor: %sVisitor[R]) -> R: ...\n",
			fam.Name, fam.Name))
	default:
		result, err := g.mapper.Result(fam, fam.Results[0])
		if err != nil {
			return "", err
		}
		sb.WriteString(fmt.Sprintf(
			"\n\nclass %s(ABC):\n    @abstractmethod\n    def accept(self, visitor: %sVisitor) -> %s: ...\n",
			fam.Name, fam.Name, result))
	}

	return sb.String(), nil
}

// NodeDefinition declares the node dataclass and its accept method.
func (g *Generator) NodeDefinition(fam *schema.Family, node *schema.NodeDef) (string, error) {
	typeName := node.Name + fam.Name

	var sb strings.Builder
	sb.WriteString("\n\n")
	if node.Note != "" {
		sb.WriteString("# " + node.Note + "\n")
	}
	sb.WriteString("@dataclass(frozen=True)\n")
	sb.WriteString(fmt.Sprintf("class %s(%s):\n", typeName, fam.Name))
	for _, field := range node.Fields {
		mapped, err := g.mapper.Map(fam, field.Type)
		if err != nil {
			return "", err
		}
		name := util.Escape(field.Name, pythonKeywords)
		sb.WriteString(fmt.Sprintf("    %s: %s\n", name, mapped))
	}

	visit := "visit_" + util.ToSnakeCase(typeName)
	switch astgen.StrategyFor(fam, g.GenericMethods()) {
	case astgen.PerResultGeneric:
		sb.WriteString(fmt.Sprintf(
			"\n    def accept(self, visitor: %sVisitor[R]) -> R:\n        return visitor.%s(self)\n",
			fam.Name, visit))
	default:
		result, err := g.mapper.Result(fam, fam.Results[0])
		if err != nil {
			return "", err
		}
		sb.WriteString(fmt.Sprintf(
			"\n    def accept(self, visitor: %sVisitor) -> %s:\n        return visitor.%s(self)\n",
			fam.Name, result, visit))
	}

	return sb.String(), nil
}

// VisitorSurface declares the visitor ABC, generic over the result TypeVar
// for multi-result families.
func (g *Generator) VisitorSurface(fam *schema.Family, nodes []schema.NodeDef) (string, error) {
	var sb strings.Builder
	param := strings.ToLower(fam.Name)

	generic := astgen.StrategyFor(fam, g.GenericMethods()) == astgen.PerResultGeneric
	if generic {
		sb.WriteString(fmt.Sprintf("\n\nclass %sVisitor(ABC, Generic[R]):\n", fam.Name))
	} else {
		sb.WriteString(fmt.Sprintf("\n\nclass %sVisitor(ABC):\n", fam.Name))
	}

	result := "R"
	if !generic {
		var err error
		result, err = g.mapper.Result(fam, fam.Results[0])
		if err != nil {
			return "", err
		}
	}

	for i, node := range nodes {
		if i > 0 {
			sb.WriteString("\n")
		}
		visit := "visit_" + util.ToSnakeCase(node.Name+fam.Name)
		sb.WriteString(fmt.Sprintf("    @abstractmethod\n    def %s(self, %s: %s) -> %s: ...\n",
			visit, param, node.Name+fam.Name, result))
	}

	return sb.String(), nil
}

// TypeMapper resolves abstract schema types to Python annotations.
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
		return "Value", nil
	case schema.Sequence:
		elem, err := m.Map(fam, *ft.Elem)
		if err != nil {
			return "", err
		}
		return "list[" + elem + "]", nil
	default:
		return "", errors.Wrapf(astgen.ErrUnmappedType, "python: kind %d", ft.Kind)
	}
}

// Result implements astgen.TypeMapper.
func (m *TypeMapper) Result(fam *schema.Family, kind schema.ResultKind) (string, error) {
	switch kind {
	case schema.ResultText:
		return "str", nil
	case schema.ResultValue:
		return "Value", nil
	default:
		return "", errors.Wrapf(astgen.ErrUnmappedType, "python: result kind %q", kind)
	}
}
