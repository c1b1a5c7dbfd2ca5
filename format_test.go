package astgen

import (
	"strings"
	"testing"
)

func TestExecFormatterEmptyTemplateIsNoop(t *testing.T) {
	if err := (ExecFormatter{}).Format("", "some/file.go"); err != nil {
		t.Errorf("empty template should be a no-op, got %v", err)
	}
}

func TestExecFormatterRejectsBadQuoting(t *testing.T) {
	err := (ExecFormatter{}).Format(`gofmt -w "unterminated`, "some/file.go")
	if err == nil {
		t.Fatal("expected error for unterminated quote")
	}
	if !strings.Contains(err.Error(), "invalid format command") {
		t.Errorf("err = %v, want invalid format command", err)
	}
}

func TestExecFormatterReportsMissingBinary(t *testing.T) {
	err := (ExecFormatter{}).Format("astgen-formatter-that-does-not-exist", "some/file.go")
	if err == nil {
		t.Fatal("expected error for missing formatter binary")
	}
}
