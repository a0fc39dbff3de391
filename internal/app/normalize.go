package app

import (
	"encoding/json"
	"strings"

	"medassist/pkg/domain"
)

// NormalizeAIResponse converts raw model output into a well-formed analysis.
// Models often wrap the JSON object in prose or markdown fences, so the span
// from the first '{' to the last '}' is extracted and parsed. When the span
// is missing, unparsable, or lacks possibleConditions, the fixed fallback is
// returned instead. This function never fails.
func NormalizeAIResponse(raw string) domain.AIResponse {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		var parsed domain.AIResponse
		if err := json.Unmarshal([]byte(raw[start:end+1]), &parsed); err == nil && parsed.PossibleConditions != nil {
			return parsed
		}
	}
	return fallbackResponse()
}

// fallbackResponse is returned whenever the model output cannot be parsed,
// so callers always receive a structurally valid analysis.
func fallbackResponse() domain.AIResponse {
	return domain.AIResponse{
		PossibleConditions: []domain.DiagnosticResult{
			{
				Condition:      "Analysis Available",
				Probability:    50,
				Description:    "The AI provided analysis but in an unexpected format. Please consult a healthcare professional for proper evaluation.",
				Recommendation: "Seek professional medical advice",
				Severity:       domain.SeverityMedium,
			},
		},
		Recommendations: []string{
			"Consult with a healthcare professional",
			"Monitor symptoms closely",
			"Seek immediate care if symptoms worsen",
		},
		EmergencyWarnings: []string{
			"Seek immediate medical attention if you experience severe symptoms",
			"Call emergency services for life-threatening conditions",
		},
	}
}
