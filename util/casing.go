// Package util holds identifier helpers shared by the language backends.
package util

import (
	"strings"
	"unicode"
)

// ToPascalCase converts a lower-case, snake_case or kebab-case schema
// identifier to PascalCase ("left" -> "Left", "class_name" -> "ClassName").
func ToPascalCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var b strings.Builder
	for _, part := range parts {
		runes := []rune(part)
		if len(runes) == 0 {
			continue
		}
		b.WriteRune(unicode.ToUpper(runes[0]))
		b.WriteString(string(runes[1:]))
	}
	return b.String()
}

// ToCamelCase converts a schema identifier to camelCase.
func ToCamelCase(s string) string {
	pascal := ToPascalCase(s)
	if pascal == "" {
		return pascal
	}
	runes := []rune(pascal)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// ToSnakeCase converts PascalCase or camelCase to snake_case
// ("BinaryExpression" -> "binary_expression").
func ToSnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && !unicode.IsUpper(runes[i-1]) {
			b.WriteRune('_')
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

// Escape appends an underscore when name collides with a reserved word of
// the target language, e.g. "else" -> "else_".
func Escape(name string, reserved map[string]bool) string {
	if reserved[name] {
		return name + "_"
	}
	return name
}
