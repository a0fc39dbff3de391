package store

import "medassist/pkg/domain"

// Store defines persistence operations for assessments and chat messages.
// Implementations own all record state; every read returns a value copy so
// callers can never mutate stored records in place.
type Store interface {
	// assessments
	CreateAssessment(input domain.AssessmentInput) (domain.Assessment, error)
	GetAssessment(id int) (domain.Assessment, bool, error)
	UpdateAssessmentResult(id int, result domain.AIResponse) (domain.Assessment, bool, error)
	ListAssessments() ([]domain.Assessment, error)

	// chat
	CreateMessage(content, role string) (domain.Message, error)
	ListMessages() ([]domain.Message, error)
}
