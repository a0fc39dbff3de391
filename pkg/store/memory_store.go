package store

import (
	"sort"
	"sync"
	"time"

	"medassist/pkg/domain"
)

// MemoryStore keeps assessments and messages in-process. It is the default
// persistence layer: restart loses all data.
type MemoryStore struct {
	mu               sync.RWMutex
	assessments      map[int]domain.Assessment
	messages         map[int]domain.Message
	nextAssessmentID int
	nextMessageID    int
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		assessments:      make(map[int]domain.Assessment),
		messages:         make(map[int]domain.Message),
		nextAssessmentID: 1,
		nextMessageID:    1,
	}
}

// CreateAssessment assigns the next id, stamps the creation time and stores
// the record. Id assignment and insertion happen under one lock so concurrent
// creators never share an id.
func (m *MemoryStore) CreateAssessment(input domain.AssessmentInput) (domain.Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := domain.Assessment{
		ID:                 m.nextAssessmentID,
		PrimarySymptoms:    input.PrimarySymptoms,
		AdditionalSymptoms: append([]string(nil), input.AdditionalSymptoms...),
		Duration:           input.Duration,
		Severity:           input.Severity,
		MedicalHistory:     input.MedicalHistory,
		Age:                input.Age,
		Gender:             input.Gender,
		AIResponse:         nil,
		CreatedAt:          time.Now().UTC(),
	}
	m.nextAssessmentID++
	m.assessments[a.ID] = a
	return a.Clone(), nil
}

// GetAssessment retrieves an assessment by id.
func (m *MemoryStore) GetAssessment(id int) (domain.Assessment, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.assessments[id]
	if !ok {
		return domain.Assessment{}, false, nil
	}
	return a.Clone(), true, nil
}

// UpdateAssessmentResult replaces the AI analysis of an existing assessment.
// All input fields are left untouched.
func (m *MemoryStore) UpdateAssessmentResult(id int, result domain.AIResponse) (domain.Assessment, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assessments[id]
	if !ok {
		return domain.Assessment{}, false, nil
	}
	stored := result.Clone()
	a.AIResponse = &stored
	m.assessments[id] = a
	return a.Clone(), true, nil
}

// ListAssessments returns all assessments, most recent first. Ties on the
// creation time fall back to descending id, which matches creation order.
func (m *MemoryStore) ListAssessments() ([]domain.Assessment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Assessment, 0, len(m.assessments))
	for _, a := range m.assessments {
		res = append(res, a.Clone())
	}
	sort.Slice(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.After(res[j].CreatedAt)
		}
		return res[i].ID > res[j].ID
	})
	return res, nil
}

// CreateMessage assigns the next message id and stores the chat turn.
func (m *MemoryStore) CreateMessage(content, role string) (domain.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg := domain.Message{
		ID:        m.nextMessageID,
		Content:   content,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	m.nextMessageID++
	m.messages[msg.ID] = msg
	return msg, nil
}

// ListMessages returns all messages in conversation order (oldest first).
func (m *MemoryStore) ListMessages() ([]domain.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Message, 0, len(m.messages))
	for _, msg := range m.messages {
		res = append(res, msg)
	}
	sort.Slice(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.Before(res[j].CreatedAt)
		}
		return res[i].ID < res[j].ID
	})
	return res, nil
}
