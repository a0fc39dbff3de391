package app

import (
	"testing"

	"medassist/pkg/domain"
)

func assertFallback(t *testing.T, got domain.AIResponse) {
	t.Helper()
	if len(got.PossibleConditions) != 1 {
		t.Fatalf("fallback possibleConditions len = %d, want 1", len(got.PossibleConditions))
	}
	first := got.PossibleConditions[0]
	if first.Condition != "Analysis Available" {
		t.Fatalf("fallback condition = %q", first.Condition)
	}
	if first.Probability != 50 {
		t.Fatalf("fallback probability = %d, want 50", first.Probability)
	}
	if first.Severity != domain.SeverityMedium {
		t.Fatalf("fallback severity = %q, want medium", first.Severity)
	}
	if len(got.Recommendations) != 3 {
		t.Fatalf("fallback recommendations len = %d, want 3", len(got.Recommendations))
	}
	if len(got.EmergencyWarnings) != 2 {
		t.Fatalf("fallback emergencyWarnings len = %d, want 2", len(got.EmergencyWarnings))
	}
}

func TestNormalizeExtractsEmbeddedObject(t *testing.T) {
	raw := `prefix {"possibleConditions":[],"recommendations":["r"],"emergencyWarnings":[]} suffix`
	got := NormalizeAIResponse(raw)
	if got.PossibleConditions == nil || len(got.PossibleConditions) != 0 {
		t.Fatalf("possibleConditions = %#v, want present and empty", got.PossibleConditions)
	}
	if len(got.Recommendations) != 1 || got.Recommendations[0] != "r" {
		t.Fatalf("recommendations = %v, want [r]", got.Recommendations)
	}
}

func TestNormalizeParsesMarkdownFencedJSON(t *testing.T) {
	raw := "```json\n{\"possibleConditions\":[{\"condition\":\"Migraine\",\"probability\":70,\"description\":\"d\",\"recommendation\":\"r\",\"severity\":\"medium\"}],\"recommendations\":[],\"emergencyWarnings\":[]}\n```"
	got := NormalizeAIResponse(raw)
	if len(got.PossibleConditions) != 1 || got.PossibleConditions[0].Condition != "Migraine" {
		t.Fatalf("possibleConditions = %+v", got.PossibleConditions)
	}
	if got.PossibleConditions[0].Severity != domain.SeverityMedium {
		t.Fatalf("severity = %q, want medium", got.PossibleConditions[0].Severity)
	}
}

func TestNormalizeNoJSONFallsBack(t *testing.T) {
	assertFallback(t, NormalizeAIResponse("no json here"))
}

func TestNormalizeTwoBlocksSpansOuterBraces(t *testing.T) {
	// Extraction always spans from the first '{' to the last '}'. With two
	// separate blocks the outer span is not valid JSON, so the fallback wins
	// even though the second block alone would have parsed.
	assertFallback(t, NormalizeAIResponse(`{a}{"possibleConditions":[]}`))

	// When the outermost braces are the object's own braces, nested blocks
	// inside prose parse fine.
	got := NormalizeAIResponse(`{"possibleConditions":[{"condition":"Flu","probability":40,"description":"d","recommendation":"r","severity":"low"}],"recommendations":[],"emergencyWarnings":[]}`)
	if len(got.PossibleConditions) != 1 || got.PossibleConditions[0].Condition != "Flu" {
		t.Fatalf("possibleConditions = %+v", got.PossibleConditions)
	}
}

func TestNormalizeMissingPossibleConditionsFallsBack(t *testing.T) {
	assertFallback(t, NormalizeAIResponse(`{"recommendations":["r"],"emergencyWarnings":[]}`))
	assertFallback(t, NormalizeAIResponse(`{"possibleConditions":null}`))
}

func TestNormalizeUnbalancedBracesFallBack(t *testing.T) {
	assertFallback(t, NormalizeAIResponse(`{"possibleConditions":[`))
	assertFallback(t, NormalizeAIResponse(`} {`))
}
