package golang

import (
	"strings"
	"testing"

	"github.com/teranos/astgen/schema"
)

// render drives the four hooks in emission order, like the engine does.
func render(t *testing.T, sch *schema.Schema, fam *schema.Family) string {
	t.Helper()
	g := NewGenerator(sch)

	var sb strings.Builder
	sb.WriteString(g.Header(fam))
	text, err := g.FamilyInterface(fam)
	if err != nil {
		t.Fatalf("FamilyInterface failed: %v", err)
	}
	sb.WriteString(text)
	for i := range fam.Nodes {
		text, err := g.NodeDefinition(fam, &fam.Nodes[i])
		if err != nil {
			t.Fatalf("NodeDefinition(%s) failed: %v", fam.Nodes[i].Name, err)
		}
		sb.WriteString(text)
	}
	text, err = g.VisitorSurface(fam, fam.Nodes)
	if err != nil {
		t.Fatalf("VisitorSurface failed: %v", err)
	}
	sb.WriteString(text)
	return sb.String()
}

func assertContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Errorf("output missing %q", want)
	}
}

func assertCount(t *testing.T, output, substr string, want int) {
	t.Helper()
	if got := strings.Count(output, substr); got != want {
		t.Errorf("output contains %q %d times, want %d", substr, got, want)
	}
}

func TestStatementFile(t *testing.T) {
	sch := schema.Lox()
	out := render(t, sch, sch.Families[1])

	if !strings.HasPrefix(out, "/* This file is autogenerated, DO NOT MODIFY */\npackage main\n") {
		t.Error("missing generated-file header")
	}

	// Single result kind: one plain visitor interface and one fixed Accept.
	assertContains(t, out, "type Statement interface {\n\tAccept(visitor StatementVisitor) (*Value, error)\n}")
	assertContains(t, out, "func (e *VarStatement) Accept(visitor StatementVisitor) (*Value, error) {\n\treturn visitor.VisitVarStatement(e)\n}")
	assertCount(t, out, "type StatementVisitor interface", 1)
	if strings.Contains(out, "AcceptString") || strings.Contains(out, "Acceptor[") {
		t.Error("single-result family must not get per-result accepts or acceptor wrappers")
	}

	// The note renders as a leading comment on the definition.
	assertContains(t, out, "// For statement desugars to a While statement\ntype WhileStatement struct")
}

func TestStatementVisitorCoversEveryNodeOnce(t *testing.T) {
	sch := schema.Lox()
	stmt := sch.Families[1]
	out := render(t, sch, stmt)

	surface := out[strings.Index(out, "type StatementVisitor interface"):]
	for _, node := range stmt.Nodes {
		assertCount(t, surface, "Visit"+node.Name+"Statement(", 1)
	}
}

func TestStatementFieldMappings(t *testing.T) {
	sch := schema.Lox()
	out := render(t, sch, sch.Families[1])

	// VariantRef resolves to the one concrete type, cross-family included.
	assertContains(t, out, "Superclass *VariableExpression")
	assertContains(t, out, "Methods []*FunctionStatement")
	assertContains(t, out, "Params []*Token")
	assertContains(t, out, "Body []Statement")
	assertContains(t, out, "Condition Expression")
}

func TestExpressionFile(t *testing.T) {
	sch := schema.Lox()
	expr := sch.Families[0]
	out := render(t, sch, expr)

	// Two result kinds and no generic methods in Go: per-result accepts on
	// the family interface and on every node.
	assertContains(t, out, "type Expression interface {\n\tAcceptString(visitor ExpressionVisitor[string]) (string, error)\n\tAcceptValue(visitor ExpressionVisitor[Value]) (Value, error)\n}")
	assertContains(t, out, "type ExpressionVisitorConstraint interface {\n\tstring | Value\n}")
	assertContains(t, out, "type ExpressionVisitor[T ExpressionVisitorConstraint] interface")

	for _, node := range expr.Nodes {
		typeName := node.Name + "Expression"
		assertCount(t, out, "func (e *"+typeName+") AcceptString(", 1)
		assertCount(t, out, "func (e *"+typeName+") AcceptValue(", 1)
	}
}

func TestExpressionVisitorCoversEveryNodeOnce(t *testing.T) {
	sch := schema.Lox()
	expr := sch.Families[0]
	out := render(t, sch, expr)

	surface := out[strings.Index(out, "type ExpressionVisitor[T"):]
	surface = surface[:strings.Index(surface, "Acceptor[")]
	for _, node := range expr.Nodes {
		assertCount(t, surface, "Visit"+node.Name+"Expression(", 1)
	}
}

func TestExpressionAcceptorWrappers(t *testing.T) {
	sch := schema.Lox()
	expr := sch.Families[0]
	out := render(t, sch, expr)

	// One generic acceptor wrapper per node; its instantiations are the
	// per (node, result type) facilitators. The body is the single
	// dispatch and nothing else.
	for _, node := range expr.Nodes {
		typeName := node.Name + "Expression"
		assertContains(t, out,
			"type "+typeName+"Acceptor[T ExpressionVisitorConstraint] struct {\n\tNode *"+typeName+"\n}")
		assertContains(t, out,
			"func (a "+typeName+"Acceptor[T]) Accept(visitor ExpressionVisitor[T]) (T, error) {\n\treturn visitor.Visit"+typeName+"(a.Node)\n}")
	}
	assertCount(t, out, "Acceptor[T ExpressionVisitorConstraint] struct", len(expr.Nodes))
}

func TestFieldsEmittedInDeclaredOrder(t *testing.T) {
	sch := schema.Lox()
	out := render(t, sch, sch.Families[0])

	structStart := strings.Index(out, "type BinaryExpression struct")
	structEnd := structStart + strings.Index(out[structStart:], "}")
	body := out[structStart:structEnd]

	left := strings.Index(body, "Left Expression")
	operator := strings.Index(body, "Operator *Token")
	right := strings.Index(body, "Right Expression")
	if left == -1 || operator == -1 || right == -1 {
		t.Fatalf("missing fields in %q", body)
	}
	if !(left < operator && operator < right) {
		t.Error("fields not emitted in declaration order")
	}
}

func TestLiteralUsesLiteralValue(t *testing.T) {
	sch := schema.Lox()
	out := render(t, sch, sch.Families[0])

	assertContains(t, out, "type LiteralExpression struct {\n\tValue LiteralValue\n}")
}

func TestSingleResultTextFamily(t *testing.T) {
	// The documented example scenario: Binary and Literal with one Text
	// result kind yields one visitor interface with two methods and one
	// fixed accept per node returning string.
	sch := &schema.Schema{Families: []*schema.Family{
		{
			Name:    "Expression",
			Results: []schema.ResultKind{schema.ResultText},
			Nodes: []schema.NodeDef{
				{Name: "Binary", Fields: []schema.Field{
					{Name: "left", Type: schema.SelfType},
					{Name: "operator", Type: schema.TokenType},
					{Name: "right", Type: schema.SelfType},
				}},
				{Name: "Literal", Fields: []schema.Field{
					{Name: "value", Type: schema.ObjectType},
				}},
			},
		},
	}}
	out := render(t, sch, sch.Families[0])

	assertCount(t, out, "type ExpressionVisitor interface", 1)
	assertCount(t, out, "VisitBinaryExpression(", 2)  // interface + accept body
	assertCount(t, out, "VisitLiteralExpression(", 2) // interface + accept body
	assertContains(t, out, "func (e *BinaryExpression) Accept(visitor ExpressionVisitor) (string, error)")
	if strings.Contains(out, "VisitorConstraint") {
		t.Error("single-result family must not get a constraint union")
	}
}
