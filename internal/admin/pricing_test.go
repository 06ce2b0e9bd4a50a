package admin

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCostFor(t *testing.T) {
	// gpt-4o-mini: 0.15 in / 0.6 out per 1M tokens.
	got := CostFor("gpt-4o-mini", 1_000_000, 1_000_000)
	if !almostEqual(got, 0.75) {
		t.Errorf("CostFor(gpt-4o-mini, 1M, 1M) = %f, want 0.75", got)
	}

	// Prefixed and bare identifiers price identically.
	if CostFor("openai/gpt-4o", 1000, 1000) != CostFor("gpt-4o", 1000, 1000) {
		t.Error("prefixed model should price like the bare identifier")
	}

	got = CostFor("anthropic/claude-3.5-sonnet", 2_000_000, 0)
	if !almostEqual(got, 6.0) {
		t.Errorf("CostFor(claude-3.5-sonnet, 2M, 0) = %f, want 6.0", got)
	}
}

func TestCostForUnknownModelFallsBack(t *testing.T) {
	// Unknown models bill at gpt-4o-mini rates, never zero.
	got := CostFor("mistral/unknown-model", 1000, 1000)
	want := CostFor("gpt-4o-mini", 1000, 1000)
	if !almostEqual(got, want) {
		t.Errorf("unknown model cost = %f, want fallback %f", got, want)
	}
	if got == 0 {
		t.Error("unknown model with nonzero tokens should not cost zero")
	}
}

func TestCostZeroTokens(t *testing.T) {
	if got := CostFor("gpt-4o", 0, 0); got != 0 {
		t.Errorf("zero tokens should cost zero, got %f", got)
	}
}
