package app

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"medassist/pkg/ai"
	"medassist/pkg/domain"
	"medassist/pkg/store"
)

const minPrimarySymptomsLen = 10

// Config wires the coordinator's dependencies.
type Config struct {
	Store store.Store
	// Generator may be nil when no inference credential is configured;
	// diagnosis and chat requests then fail with ErrAINotConfigured.
	Generator ai.ChatGenerator
}

// App coordinates the assessment lifecycle: create, request external
// analysis, merge the normalized result back into the record.
type App struct {
	store     store.Store
	generator ai.ChatGenerator
}

// New constructs the coordinator.
func New(cfg Config) (*App, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store required")
	}
	return &App{
		store:     cfg.Store,
		generator: cfg.Generator,
	}, nil
}

// SubmitAssessment validates the intake fields and stores a new assessment.
func (a *App) SubmitAssessment(input domain.AssessmentInput) (domain.Assessment, error) {
	if err := validateInput(input); err != nil {
		return domain.Assessment{}, err
	}
	created, err := a.store.CreateAssessment(input)
	if err != nil {
		return domain.Assessment{}, fmt.Errorf("create assessment: %w", err)
	}
	return created, nil
}

// GetAssessment returns a single assessment by id.
func (a *App) GetAssessment(id int) (domain.Assessment, error) {
	assessment, ok, err := a.store.GetAssessment(id)
	if err != nil {
		return domain.Assessment{}, fmt.Errorf("load assessment: %w", err)
	}
	if !ok {
		return domain.Assessment{}, ErrAssessmentNotFound
	}
	return assessment, nil
}

// ListAssessments returns all assessments, most recent first.
func (a *App) ListAssessments() ([]domain.Assessment, error) {
	items, err := a.store.ListAssessments()
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	return items, nil
}

// RequestAnalysis asks the inference provider for a diagnostic analysis of an
// existing assessment and stores the normalized result. Re-running analysis
// on an already analyzed record replaces the previous result.
func (a *App) RequestAnalysis(ctx context.Context, id int) (domain.Assessment, error) {
	assessment, ok, err := a.store.GetAssessment(id)
	if err != nil {
		return domain.Assessment{}, fmt.Errorf("load assessment: %w", err)
	}
	if !ok {
		return domain.Assessment{}, ErrAssessmentNotFound
	}
	if a.generator == nil {
		return domain.Assessment{}, ErrAINotConfigured
	}

	raw, err := a.generator.GenerateChat(ctx, systemInstruction, []ai.Turn{
		{Role: domain.RoleUser, Content: diagnosticPrompt(assessment)},
	})
	if err != nil {
		return domain.Assessment{}, &UpstreamError{Err: err}
	}

	result := NormalizeAIResponse(raw)
	updated, ok, err := a.store.UpdateAssessmentResult(id, result)
	if err != nil {
		return domain.Assessment{}, fmt.Errorf("store analysis: %w", err)
	}
	if !ok {
		return domain.Assessment{}, ErrAssessmentNotFound
	}
	return updated, nil
}

// SendMessage stores a chat turn, asks the inference provider for a reply
// using the full prior conversation, and stores the assistant's answer.
// The user message is kept even when the upstream call fails.
func (a *App) SendMessage(ctx context.Context, content, role string) (domain.Message, domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Message{}, domain.Message{}, &ValidationError{Field: "content", Message: "is required"}
	}
	if role == "" {
		role = domain.RoleUser
	}
	if role != domain.RoleUser && role != domain.RoleAssistant {
		return domain.Message{}, domain.Message{}, &ValidationError{Field: "role", Message: "must be user or assistant"}
	}

	history, err := a.store.ListMessages()
	if err != nil {
		return domain.Message{}, domain.Message{}, fmt.Errorf("load history: %w", err)
	}
	userMessage, err := a.store.CreateMessage(content, role)
	if err != nil {
		return domain.Message{}, domain.Message{}, fmt.Errorf("save user message: %w", err)
	}
	if a.generator == nil {
		return domain.Message{}, domain.Message{}, ErrAINotConfigured
	}

	turns := make([]ai.Turn, 0, len(history)+1)
	for _, msg := range history {
		turns = append(turns, ai.Turn{Role: msg.Role, Content: msg.Content})
	}
	turns = append(turns, ai.Turn{Role: role, Content: content})

	reply, err := a.generator.GenerateChat(ctx, systemInstruction, turns)
	if err != nil {
		return domain.Message{}, domain.Message{}, &UpstreamError{Err: err}
	}
	assistantMessage, err := a.store.CreateMessage(reply, domain.RoleAssistant)
	if err != nil {
		return domain.Message{}, domain.Message{}, fmt.Errorf("save assistant message: %w", err)
	}
	return userMessage, assistantMessage, nil
}

// ListMessages returns the conversation in chronological order.
func (a *App) ListMessages() ([]domain.Message, error) {
	items, err := a.store.ListMessages()
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return items, nil
}

func validateInput(in domain.AssessmentInput) error {
	if utf8.RuneCountInString(strings.TrimSpace(in.PrimarySymptoms)) < minPrimarySymptomsLen {
		return &ValidationError{Field: "primarySymptoms", Message: fmt.Sprintf("must be at least %d characters", minPrimarySymptomsLen)}
	}
	if strings.TrimSpace(in.Duration) == "" {
		return &ValidationError{Field: "duration", Message: "is required"}
	}
	if in.Severity < 1 || in.Severity > 10 {
		return &ValidationError{Field: "severity", Message: "must be between 1 and 10"}
	}
	if in.Age < 1 || in.Age > 120 {
		return &ValidationError{Field: "age", Message: "must be between 1 and 120"}
	}
	if strings.TrimSpace(in.Gender) == "" {
		return &ValidationError{Field: "gender", Message: "is required"}
	}
	return nil
}
