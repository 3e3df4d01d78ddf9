package validation

import (
	"errors"
	"math"
	"strings"
	"testing"
)

// TestConfigValidator_CollectsAllErrors tests that every failing rule is reported
func TestConfigValidator_CollectsAllErrors(t *testing.T) {
	cv := NewConfigValidator("cfg").
		Required("name", "").
		RangeInt("steps", 0, 1, 10).
		PositiveFloat("ratio", 0).
		RangeFloat("warn", 1.5, 0, 1).
		OneOf("mode", "bogus", []string{"a", "b"})

	if !cv.HasErrors() {
		t.Fatal("HasErrors() = false, want true")
	}
	if got := len(cv.Errors()); got != 5 {
		t.Errorf("len(Errors()) = %d, want 5", got)
	}

	err := cv.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	for _, field := range []string{"cfg.name", "cfg.steps", "cfg.ratio", "cfg.warn", "cfg.mode"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("Validate() error missing %q: %v", field, err)
		}
	}
}

// TestConfigValidator_Valid tests that passing rules produce no error
func TestConfigValidator_Valid(t *testing.T) {
	err := NewConfigValidator("cfg").
		Required("name", "x").
		RangeInt("steps", 5, 1, 10).
		PositiveFloat("ratio", 0.1).
		RangeFloat("warn", 0.8, 0, 1).
		OneOf("mode", "a", []string{"a", "b"}).
		Validate()
	if err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

// TestConfigValidator_FloatEdgeCases tests non-finite inputs
func TestConfigValidator_FloatEdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		value float64
	}{
		{"nan", math.NaN()},
		{"inf", math.Inf(1)},
		{"negative", -0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !NewConfigValidator("cfg").PositiveFloat("v", tt.value).HasErrors() {
				t.Errorf("PositiveFloat(%v) accepted", tt.value)
			}
		})
	}
}

// TestConfigValidator_Custom tests that custom errors are wrapped
func TestConfigValidator_Custom(t *testing.T) {
	sentinel := errors.New("boom")
	err := NewConfigValidator("cfg").Custom("thing", func() error { return sentinel }).Validate()
	if !errors.Is(err, sentinel) {
		t.Errorf("Validate() = %v, want wrapped %v", err, sentinel)
	}
}

// TestDefaultOr tests zero-value fallback
func TestDefaultOr(t *testing.T) {
	if got := DefaultOr(0, 20); got != 20 {
		t.Errorf("DefaultOr(0, 20) = %d, want 20", got)
	}
	if got := DefaultOr(5, 20); got != 5 {
		t.Errorf("DefaultOr(5, 20) = %d, want 5", got)
	}
	if got := DefaultOr("", "info"); got != "info" {
		t.Errorf("DefaultOr(\"\", \"info\") = %q, want info", got)
	}
}

// TestValidateConfig_Nil tests nil handling
func TestValidateConfig_Nil(t *testing.T) {
	if err := ValidateConfig(nil); err == nil {
		t.Error("ValidateConfig(nil) = nil, want error")
	}
}
