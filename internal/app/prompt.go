package app

import (
	"fmt"
	"strings"

	"medassist/pkg/domain"
)

const systemInstruction = "You are a medical AI assistant. Provide diagnostic suggestions for informational purposes only. Always emphasize that this is not a substitute for professional medical advice."

const diagnosticPromptTemplate = `You are a medical AI assistant providing diagnostic suggestions for informational purposes only.

Patient Information:
- Age: %d
- Gender: %s
- Primary Symptoms: %s
- Additional Symptoms: %s
- Duration: %s
- Severity (1-10): %d
- Medical History: %s

Please provide a structured analysis in the following JSON format:
{
  "possibleConditions": [
    {
      "condition": "condition name",
      "probability": number (0-100),
      "description": "brief description",
      "recommendation": "brief recommendation",
      "severity": "low|medium|high"
    }
  ],
  "recommendations": [
    "general care recommendations"
  ],
  "emergencyWarnings": [
    "when to seek immediate care"
  ]
}

Focus on common conditions that match the symptoms. Always emphasize the need for professional medical consultation.`

// diagnosticPrompt renders every intake field into the analysis prompt.
// Absent optional fields become explicit placeholders rather than being
// silently dropped.
func diagnosticPrompt(a domain.Assessment) string {
	additional := "None"
	if len(a.AdditionalSymptoms) > 0 {
		additional = strings.Join(a.AdditionalSymptoms, ", ")
	}
	history := a.MedicalHistory
	if strings.TrimSpace(history) == "" {
		history = "None provided"
	}
	return fmt.Sprintf(diagnosticPromptTemplate,
		a.Age,
		a.Gender,
		a.PrimarySymptoms,
		additional,
		a.Duration,
		a.Severity,
		history,
	)
}
