package schema

// Lox returns the node families of the Lox syntax tree. The tables are the
// single source of truth for every backend; regenerating after an edit here
// rewrites all target files.
func Lox() *Schema {
	return &Schema{Families: []*Family{Expressions(), Statements()}}
}

// Expressions is the expression family. It supports visitors yielding a
// textual representation (printers) and visitors yielding a runtime value
// (the interpreter), hence the two result kinds.
func Expressions() *Family {
	return &Family{
		Name:    "Expression",
		Results: []ResultKind{ResultText, ResultValue},
		Nodes: []NodeDef{
			{Name: "Assign", Fields: []Field{
				{Name: "name", Type: TokenType},
				{Name: "value", Type: SelfType},
			}},
			{Name: "Binary", Fields: []Field{
				{Name: "left", Type: SelfType},
				{Name: "operator", Type: TokenType},
				{Name: "right", Type: SelfType},
			}},
			{Name: "Call", Fields: []Field{
				{Name: "callee", Type: SelfType},
				{Name: "paren", Type: TokenType},
				{Name: "arguments", Type: ListType(SelfType)},
			}},
			{Name: "Get", Fields: []Field{
				{Name: "object", Type: SelfType},
				{Name: "name", Type: TokenType},
			}},
			{Name: "Grouping", Fields: []Field{
				{Name: "expression", Type: SelfType},
			}},
			{Name: "Literal", Fields: []Field{
				{Name: "value", Type: ObjectType},
			}},
			{Name: "Logical", Fields: []Field{
				{Name: "left", Type: SelfType},
				{Name: "operator", Type: TokenType},
				{Name: "right", Type: SelfType},
			}},
			{Name: "Set", Fields: []Field{
				{Name: "object", Type: SelfType},
				{Name: "name", Type: TokenType},
				{Name: "value", Type: SelfType},
			}},
			{Name: "Super", Fields: []Field{
				{Name: "keyword", Type: TokenType},
				{Name: "method", Type: TokenType},
			}},
			{Name: "This", Fields: []Field{
				{Name: "keyword", Type: TokenType},
			}},
			{Name: "Ternary", Fields: []Field{
				{Name: "condition", Type: SelfType},
				{Name: "true", Type: SelfType},
				{Name: "false", Type: SelfType},
			}},
			{Name: "Unary", Fields: []Field{
				{Name: "operator", Type: TokenType},
				{Name: "right", Type: SelfType},
			}},
			{Name: "Variable", Fields: []Field{
				{Name: "name", Type: TokenType},
			}},
		},
	}
}

// Statements is the statement family. Statement visitors only ever produce
// a runtime value, so a single result kind suffices.
func Statements() *Family {
	return &Family{
		Name:    "Statement",
		Results: []ResultKind{ResultValue},
		Nodes: []NodeDef{
			{Name: "Block", Fields: []Field{
				{Name: "statements", Type: ListType(SelfType)},
			}},
			{Name: "Break", Fields: []Field{
				{Name: "keyword", Type: TokenType},
			}},
			{Name: "Class", Fields: []Field{
				{Name: "name", Type: TokenType},
				{Name: "superclass", Type: VariantType("Variable")},
				{Name: "methods", Type: ListType(VariantType("Function"))},
			}},
			{Name: "Continue", Fields: []Field{
				{Name: "keyword", Type: TokenType},
			}},
			{Name: "Expression", Fields: []Field{
				{Name: "expression", Type: FamilyType("Expression")},
			}},
			{Name: "Function", Fields: []Field{
				{Name: "name", Type: TokenType},
				{Name: "params", Type: ListType(TokenType)},
				{Name: "body", Type: ListType(SelfType)},
			}},
			{Name: "If", Fields: []Field{
				{Name: "condition", Type: FamilyType("Expression")},
				{Name: "then", Type: SelfType},
				{Name: "else", Type: SelfType},
			}},
			{Name: "Print", Fields: []Field{
				{Name: "expression", Type: FamilyType("Expression")},
			}},
			{Name: "Return", Fields: []Field{
				{Name: "keyword", Type: TokenType},
				{Name: "value", Type: FamilyType("Expression")},
			}},
			{Name: "Var", Fields: []Field{
				{Name: "name", Type: TokenType},
				{Name: "initializer", Type: FamilyType("Expression")},
			}},
			{Name: "While", Fields: []Field{
				{Name: "condition", Type: FamilyType("Expression")},
				{Name: "body", Type: SelfType},
			}, Note: "For statement desugars to a While statement"},
		},
	}
}
