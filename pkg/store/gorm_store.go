package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"medassist/pkg/domain"
)

// GormStore implements Store using GORM + Postgres. Autoincrement primary
// keys keep ids monotonic across the table lifetime, the same guarantee the
// in-memory counters give.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations.
func NewGormStore(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(&AssessmentModel{}, &MessageModel{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// CreateAssessment inserts a new record; the database assigns the id.
func (s *GormStore) CreateAssessment(input domain.AssessmentInput) (domain.Assessment, error) {
	symptoms, err := json.Marshal(input.AdditionalSymptoms)
	if err != nil {
		return domain.Assessment{}, fmt.Errorf("marshal additional symptoms: %w", err)
	}
	model := AssessmentModel{
		PrimarySymptoms:    input.PrimarySymptoms,
		AdditionalSymptoms: symptoms,
		Duration:           input.Duration,
		Severity:           input.Severity,
		MedicalHistory:     input.MedicalHistory,
		Age:                input.Age,
		Gender:             input.Gender,
		CreatedAt:          time.Now().UTC(),
	}
	if err := s.db.Create(&model).Error; err != nil {
		return domain.Assessment{}, fmt.Errorf("create assessment: %w", err)
	}
	return assessmentFromModel(model)
}

// GetAssessment retrieves an assessment by id.
func (s *GormStore) GetAssessment(id int) (domain.Assessment, bool, error) {
	var model AssessmentModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Assessment{}, false, nil
		}
		return domain.Assessment{}, false, err
	}
	a, err := assessmentFromModel(model)
	if err != nil {
		return domain.Assessment{}, false, err
	}
	return a, true, nil
}

// UpdateAssessmentResult replaces the stored AI analysis.
func (s *GormStore) UpdateAssessmentResult(id int, result domain.AIResponse) (domain.Assessment, bool, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return domain.Assessment{}, false, fmt.Errorf("marshal ai response: %w", err)
	}
	tx := s.db.Model(&AssessmentModel{}).Where("id = ?", id).Update("ai_response", payload)
	if tx.Error != nil {
		return domain.Assessment{}, false, tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.Assessment{}, false, nil
	}
	return s.GetAssessment(id)
}

// ListAssessments returns all assessments, most recent first.
func (s *GormStore) ListAssessments() ([]domain.Assessment, error) {
	var models []AssessmentModel
	if err := s.db.Order("created_at DESC, id DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Assessment, 0, len(models))
	for _, m := range models {
		a, err := assessmentFromModel(m)
		if err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, nil
}

// CreateMessage inserts a chat turn; the database assigns the id.
func (s *GormStore) CreateMessage(content, role string) (domain.Message, error) {
	model := MessageModel{
		Content:   content,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.Create(&model).Error; err != nil {
		return domain.Message{}, fmt.Errorf("create message: %w", err)
	}
	return messageFromModel(model), nil
}

// ListMessages returns all messages in conversation order.
func (s *GormStore) ListMessages() ([]domain.Message, error) {
	var models []MessageModel
	if err := s.db.Order("created_at ASC, id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Message, 0, len(models))
	for _, m := range models {
		res = append(res, messageFromModel(m))
	}
	return res, nil
}
