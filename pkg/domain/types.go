package domain

import "time"

// ResultSeverity grades how urgent a suggested condition is.
type ResultSeverity string

const (
	SeverityLow    ResultSeverity = "low"
	SeverityMedium ResultSeverity = "medium"
	SeverityHigh   ResultSeverity = "high"
)

// Chat message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// AssessmentInput holds the caller-supplied symptom intake fields.
type AssessmentInput struct {
	PrimarySymptoms    string   `json:"primarySymptoms"`
	AdditionalSymptoms []string `json:"additionalSymptoms"`
	Duration           string   `json:"duration"`
	Severity           int      `json:"severity"`
	MedicalHistory     string   `json:"medicalHistory"`
	Age                int      `json:"age"`
	Gender             string   `json:"gender"`
}

// Assessment is a stored symptom intake record plus its optional AI analysis.
// Input fields never change after creation; AIResponse starts nil and is set
// (or replaced) by a diagnosis run.
type Assessment struct {
	ID                 int         `json:"id"`
	PrimarySymptoms    string      `json:"primarySymptoms"`
	AdditionalSymptoms []string    `json:"additionalSymptoms"`
	Duration           string      `json:"duration"`
	Severity           int         `json:"severity"`
	MedicalHistory     string      `json:"medicalHistory,omitempty"`
	Age                int         `json:"age"`
	Gender             string      `json:"gender"`
	AIResponse         *AIResponse `json:"aiResponse"`
	CreatedAt          time.Time   `json:"createdAt"`
}

// DiagnosticResult is one suggested condition inside an AI analysis.
type DiagnosticResult struct {
	Condition      string         `json:"condition"`
	Probability    int            `json:"probability"`
	Description    string         `json:"description"`
	Recommendation string         `json:"recommendation"`
	Severity       ResultSeverity `json:"severity"`
}

// AIResponse is the normalized diagnostic analysis for an assessment.
type AIResponse struct {
	PossibleConditions []DiagnosticResult `json:"possibleConditions"`
	Recommendations    []string           `json:"recommendations"`
	EmergencyWarnings  []string           `json:"emergencyWarnings"`
}

// Message is a single chat turn.
type Message struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Clone returns a deep copy so callers never alias stored slices.
func (r AIResponse) Clone() AIResponse {
	out := AIResponse{
		PossibleConditions: make([]DiagnosticResult, len(r.PossibleConditions)),
		Recommendations:    append([]string(nil), r.Recommendations...),
		EmergencyWarnings:  append([]string(nil), r.EmergencyWarnings...),
	}
	copy(out.PossibleConditions, r.PossibleConditions)
	return out
}

// Clone returns a deep copy of the assessment.
func (a Assessment) Clone() Assessment {
	out := a
	out.AdditionalSymptoms = append([]string(nil), a.AdditionalSymptoms...)
	if a.AIResponse != nil {
		cloned := a.AIResponse.Clone()
		out.AIResponse = &cloned
	}
	return out
}
