package astgen

import (
	"testing"

	"github.com/teranos/astgen/schema"
)

func TestStrategyFor(t *testing.T) {
	single := &schema.Family{Name: "Statement", Results: []schema.ResultKind{schema.ResultValue}}
	multi := &schema.Family{Name: "Expression", Results: []schema.ResultKind{schema.ResultText, schema.ResultValue}}

	tests := []struct {
		name           string
		fam            *schema.Family
		genericMethods bool
		want           DispatchStrategy
	}{
		{"single constraint, generic methods", single, true, SingleGeneric},
		{"single constraint, no generic methods", single, false, SingleFixed},
		{"multiple constraints, generic methods", multi, true, PerResultGeneric},
		{"multiple constraints, no generic methods", multi, false, PerResultFacilitated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StrategyFor(tt.fam, tt.genericMethods); got != tt.want {
				t.Errorf("StrategyFor() = %d, want %d", got, tt.want)
			}
		})
	}
}
