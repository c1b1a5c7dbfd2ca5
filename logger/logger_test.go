package logger

import (
	"testing"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
	}{
		{name: "JSON output mode", jsonOutput: true},
		{name: "Console output mode", jsonOutput: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger = nil
			JSONOutput = false

			if err := Initialize(tt.jsonOutput); err != nil {
				t.Fatalf("Initialize() error = %v", err)
			}

			if Logger == nil {
				t.Error("Initialize() left Logger nil")
			}
			if JSONOutput != tt.jsonOutput {
				t.Errorf("JSONOutput = %v, want %v", JSONOutput, tt.jsonOutput)
			}
		})
	}
}

func TestLoggerUsableBeforeInitialize(t *testing.T) {
	// init() installs a no-op logger, so logging before Initialize must not panic.
	if Logger == nil {
		t.Fatal("package init left Logger nil")
	}
	Logger.Infow("usable before Initialize", "key", "value")
}
