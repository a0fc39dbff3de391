package store

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"medassist/pkg/domain"
)

// GORM models used for persistence.
type AssessmentModel struct {
	ID                 int            `gorm:"primaryKey;autoIncrement"`
	PrimarySymptoms    string         `gorm:"not null"`
	AdditionalSymptoms datatypes.JSON `gorm:"not null"`
	Duration           string         `gorm:"not null"`
	Severity           int            `gorm:"not null"`
	MedicalHistory     string
	Age                int            `gorm:"not null"`
	Gender             string         `gorm:"not null"`
	AIResponse         datatypes.JSON `gorm:"column:ai_response"`
	CreatedAt          time.Time      `gorm:"not null;index"`
}

func (AssessmentModel) TableName() string { return "assessments" }

type MessageModel struct {
	ID        int       `gorm:"primaryKey;autoIncrement"`
	Content   string    `gorm:"not null"`
	Role      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;index"`
}

func (MessageModel) TableName() string { return "messages" }

func assessmentFromModel(m AssessmentModel) (domain.Assessment, error) {
	a := domain.Assessment{
		ID:              m.ID,
		PrimarySymptoms: m.PrimarySymptoms,
		Duration:        m.Duration,
		Severity:        m.Severity,
		MedicalHistory:  m.MedicalHistory,
		Age:             m.Age,
		Gender:          m.Gender,
		CreatedAt:       m.CreatedAt,
	}
	if len(m.AdditionalSymptoms) > 0 {
		if err := json.Unmarshal(m.AdditionalSymptoms, &a.AdditionalSymptoms); err != nil {
			return domain.Assessment{}, fmt.Errorf("unmarshal additional symptoms: %w", err)
		}
	}
	if len(m.AIResponse) > 0 {
		var result domain.AIResponse
		if err := json.Unmarshal(m.AIResponse, &result); err != nil {
			return domain.Assessment{}, fmt.Errorf("unmarshal ai response: %w", err)
		}
		a.AIResponse = &result
	}
	return a, nil
}

func messageFromModel(m MessageModel) domain.Message {
	return domain.Message{
		ID:        m.ID,
		Content:   m.Content,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
	}
}
